// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package gateway

import (
	"context"
	"testing"

	"github.com/goccy/go-json"

	"github.com/MaxOhn/twilight-dispatch/internal/state"
	"github.com/MaxOhn/twilight-dispatch/internal/store"
)

func TestParseEnvelope(t *testing.T) {
	payload := []byte(`{"op":0,"t":"MESSAGE_CREATE","d":{"id":"40"},"old":null}`)
	env, err := ParseEnvelope(payload)
	if err != nil {
		t.Fatal(err)
	}
	if env.Op != OpDispatch || env.Type != "MESSAGE_CREATE" {
		t.Errorf("unexpected envelope %+v", env)
	}
	data, err := env.DataRecord()
	if err != nil {
		t.Fatal(err)
	}
	if data.Int64("id") != 40 {
		t.Errorf("unexpected data %v", data)
	}
	old, err := env.OldRecord()
	if err != nil {
		t.Fatal(err)
	}
	if old != nil {
		t.Errorf("null prior state must decode to nil, got %v", old)
	}
}

func TestParseEnvelope_Malformed(t *testing.T) {
	if _, err := ParseEnvelope([]byte(`{`)); err == nil {
		t.Error("expected decode error")
	}
}

func TestOldRecord_ObjectAndArray(t *testing.T) {
	env := &Envelope{Old: json.RawMessage(`{"content":"a"}`)}
	old, err := env.OldRecord()
	if err != nil {
		t.Fatal(err)
	}
	if old.Str("content") != "a" {
		t.Errorf("unexpected object prior %v", old)
	}

	env = &Envelope{Old: json.RawMessage(`[{"id":"1"},{"id":"2"}]`)}
	old, err = env.OldRecord()
	if err != nil {
		t.Fatal(err)
	}
	items := old.Slice(oldItemsKey)
	if len(items) != 2 || items[1].Int64("id") != 2 {
		t.Errorf("array prior not wrapped: %v", old)
	}

	env = &Envelope{Old: json.RawMessage(`"nope"`)}
	if _, err = env.OldRecord(); err == nil {
		t.Error("scalar prior state must be rejected")
	}
}

func TestDataRecord_AbsentYieldsEmpty(t *testing.T) {
	env := &Envelope{}
	data, err := env.DataRecord()
	if err != nil {
		t.Fatal(err)
	}
	if data == nil || len(data) != 0 {
		t.Errorf("expected empty record, got %v", data)
	}
}

func TestConsumer_ProcessFiltersAndDispatches(t *testing.T) {
	var events []string
	st := state.New(store.NewMemoryStore(), func(event string, args ...any) {
		events = append(events, event)
	}, nil, state.Options{})
	c := NewConsumer(nil, "gateway.recv", st)

	// Non-dispatch opcodes and undecodable frames never reach the reconciler.
	c.process(context.Background(), []byte(`{"op":10,"t":"MESSAGE_CREATE","d":{"id":"1"}}`))
	c.process(context.Background(), []byte(`{`))
	if len(events) != 0 {
		t.Fatalf("expected no notifications, got %v", events)
	}

	c.process(context.Background(), []byte(`{"op":0,"t":"MESSAGE_CREATE","d":{"id":"1","channel_id":"2"}}`))
	if len(events) != 1 || events[0] != "message" {
		t.Errorf("expected message notification, got %v", events)
	}
}

type fakePublisher struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return f.err
}

func TestPublishingSink(t *testing.T) {
	pub := &fakePublisher{}
	sink := NewPublishingSink(pub, "dispatch")
	sink.Dispatch("guild_join", map[string]any{"id": 1})

	if len(pub.subjects) != 1 || pub.subjects[0] != "dispatch.guild_join" {
		t.Fatalf("unexpected subjects %v", pub.subjects)
	}
	var got notification
	if err := json.Unmarshal(pub.payloads[0], &got); err != nil {
		t.Fatal(err)
	}
	if got.Event != "guild_join" || len(got.Args) != 1 {
		t.Errorf("unexpected notification %+v", got)
	}
}

func TestCombineSinks_Order(t *testing.T) {
	var order []string
	first := func(event string, args ...any) { order = append(order, "first:"+event) }
	second := func(event string, args ...any) { order = append(order, "second:"+event) }
	combined := CombineSinks(state.Dispatcher(first), state.Dispatcher(second))
	combined("ready")

	if len(order) != 2 || order[0] != "first:ready" || order[1] != "second:ready" {
		t.Errorf("unexpected order %v", order)
	}
}
