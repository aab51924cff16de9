// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

// Package store is the typed adapter over the external keyed cache owned by
// the gateway. Keys follow the {kind}:{scopeId...} scheme; scan patterns use
// Redis-style wildcards ('*' matches any run, '?' one character).
//
// Absence is a normal outcome, not an error: Get and ScanOne report it
// through their boolean return. Decode failures are fatal and wrap
// ErrMalformed.
package store

import "context"

// Store provides typed read access to the keyed cache.
type Store interface {
	// Get fetches and decodes one record by exact key.
	Get(ctx context.Context, key string) (Record, bool, error)

	// ScanOne returns the first record whose key matches the wildcard
	// pattern, used when the exact scope identifier is unknown.
	ScanOne(ctx context.Context, pattern string) (Record, bool, error)

	// ScanAll returns every record whose key matches the wildcard pattern.
	ScanAll(ctx context.Context, pattern string) ([]Record, error)
}
