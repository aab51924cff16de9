// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

// Package gateway is the push-connection adapter: it consumes gateway event
// envelopes from NATS, decodes them, and feeds them to the reconciler in
// arrival order. It also provides the notification sinks the reconciler
// dispatches into.
package gateway

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/MaxOhn/twilight-dispatch/internal/store"
)

// OpDispatch is the only opcode carrying a dispatch event; everything else
// is connection plumbing handled upstream.
const OpDispatch = 0

// oldItemsKey carries array-valued prior state (bulk deletes, emoji lists)
// inside a record, since handlers take records, not bare arrays.
const oldItemsKey = "items"

// Envelope is one forwarded gateway frame: the raw event plus the previously
// cached copy of the affected record, attached upstream before the cache was
// mutated.
type Envelope struct {
	Op   int             `json:"op"`
	Type string          `json:"t"`
	Data json.RawMessage `json:"d"`
	Old  json.RawMessage `json:"old"`
}

// ParseEnvelope decodes one frame.
func ParseEnvelope(payload []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, nil
}

// DataRecord decodes the event payload. A missing or null payload yields an
// empty record so handlers can probe fields uniformly.
func (e *Envelope) DataRecord() (store.Record, error) {
	if len(e.Data) == 0 {
		return store.Record{}, nil
	}
	var rec store.Record
	if err := json.Unmarshal(e.Data, &rec); err != nil {
		return nil, fmt.Errorf("decode event payload: %w", err)
	}
	if rec == nil {
		rec = store.Record{}
	}
	return rec, nil
}

// OldRecord decodes the prior cached state. null yields nil ("nothing was
// cached"). Array-valued priors are wrapped into a record under "items".
func (e *Envelope) OldRecord() (store.Record, error) {
	if len(e.Old) == 0 {
		return nil, nil
	}
	var value any
	if err := json.Unmarshal(e.Old, &value); err != nil {
		return nil, fmt.Errorf("decode prior state: %w", err)
	}
	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return store.Record(v), nil
	case []any:
		return store.Record{oldItemsKey: v}, nil
	default:
		return nil, fmt.Errorf("decode prior state: unexpected %T", value)
	}
}
