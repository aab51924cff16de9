// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package store

import "strings"

// Match reports whether key matches the Redis-style wildcard pattern.
// '*' matches any run of characters (including ':'), '?' matches exactly
// one character. This mirrors the subset of MATCH semantics the key scheme
// relies on.
func Match(pattern, key string) bool {
	p, k := 0, 0
	star, kStar := -1, 0
	for k < len(key) {
		switch {
		case p < len(pattern) && (pattern[p] == '?' || pattern[p] == key[k]):
			p++
			k++
		case p < len(pattern) && pattern[p] == '*':
			star, kStar = p, k
			p++
		case star >= 0:
			// Backtrack: let the last '*' consume one more character.
			p = star + 1
			kStar++
			k = kStar
		default:
			return false
		}
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}

// literalPrefix returns the pattern's leading literal segment, used to bound
// iterator range before per-key matching.
func literalPrefix(pattern string) string {
	if i := strings.IndexAny(pattern, "*?"); i >= 0 {
		return pattern[:i]
	}
	return pattern
}
