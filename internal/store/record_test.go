// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package store

import (
	"errors"
	"testing"
)

func TestDecodeRecord_AugmentsKey(t *testing.T) {
	rec, err := DecodeRecord("guild:123", []byte(`{"id":"123","name":"test"}`))
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if rec.Key() != "guild:123" {
		t.Errorf("expected key guild:123, got %q", rec.Key())
	}
	scopes := rec.Scopes()
	if len(scopes) != 1 || scopes[0] != 123 {
		t.Errorf("expected scopes [123], got %v", scopes)
	}
}

func TestDecodeRecord_Malformed(t *testing.T) {
	_, err := DecodeRecord("guild:123", []byte(`{not json`))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestDecodeRecord_NormalizesOverwrites(t *testing.T) {
	raw := []byte(`{"id":"5","permission_overwrites":[
		{"id":"10","type":0,"allow":"2048","deny":"0"},
		{"id":"11","type":1,"allow":1024,"deny":"8"}
	]}`)
	rec, err := DecodeRecord("channel:1:5", raw)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	overwrites := rec.Slice("permission_overwrites")
	if len(overwrites) != 2 {
		t.Fatalf("expected 2 overwrites, got %d", len(overwrites))
	}
	if got := overwrites[0].Str("type"); got != "role" {
		t.Errorf("expected type role, got %q", got)
	}
	if got := overwrites[0].Int64("allow"); got != 2048 {
		t.Errorf("expected allow 2048, got %d", got)
	}
	if got := overwrites[1].Str("type"); got != "member" {
		t.Errorf("expected type member, got %q", got)
	}
	if got := overwrites[1].Int64("deny"); got != 8 {
		t.Errorf("expected deny 8, got %d", got)
	}
}

func TestDecodeRecord_BadOverwrite(t *testing.T) {
	raw := []byte(`{"permission_overwrites":[{"id":"10","type":0,"allow":"abc","deny":"0"}]}`)
	_, err := DecodeRecord("channel:1:5", raw)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for non-numeric allow, got %v", err)
	}
}

func TestRecord_NilTolerance(t *testing.T) {
	var rec Record
	if rec.Str("a") != "" || rec.Int64("a") != 0 || rec.Bool("a") {
		t.Error("nil record accessors must return zero values")
	}
	if rec.Map("a") != nil || rec.Slice("a") != nil || rec.Key() != "" {
		t.Error("nil record container accessors must return nil")
	}
	if _, ok := rec.BoolOK("a"); ok {
		t.Error("nil record BoolOK must report absent")
	}
}

func TestRecord_Int64Encodings(t *testing.T) {
	rec := Record{"str": "9007199254740993", "num": float64(42)}
	if got := rec.Int64("str"); got != 9007199254740993 {
		t.Errorf("string snowflake parsed as %d", got)
	}
	if got := rec.Int64("num"); got != 42 {
		t.Errorf("number parsed as %d", got)
	}
	if got := rec.Int64("missing"); got != 0 {
		t.Errorf("missing field parsed as %d", got)
	}
}

func TestRecord_BoolOK(t *testing.T) {
	rec := Record{"unavailable": false}
	v, ok := rec.BoolOK("unavailable")
	if !ok || v {
		t.Errorf("expected explicit false, got v=%v ok=%v", v, ok)
	}
	if _, ok := rec.BoolOK("other"); ok {
		t.Error("absent field must not report present")
	}
}

func TestApplyDelta_Pure(t *testing.T) {
	old := Record{
		"content": "a",
		"author":  map[string]any{"id": "1", "username": "u"},
		"_key":    "message:1:2",
	}
	patch := Record{"content": "b", "edited_timestamp": "2026-01-01T00:00:00Z"}

	merged := ApplyDelta(old, patch)

	if got := merged.Str("content"); got != "b" {
		t.Errorf("expected merged content b, got %q", got)
	}
	if got := old.Str("content"); got != "a" {
		t.Errorf("old record mutated: content %q", got)
	}
	if merged.Key() != "message:1:2" {
		t.Errorf("merged record lost its key: %q", merged.Key())
	}

	// Nested containers must not alias.
	merged.Map("author")["username"] = "changed"
	if got := old.Map("author").Str("username"); got != "u" {
		t.Errorf("nested container aliased: %q", got)
	}
}

func TestApplyDelta_NilInputs(t *testing.T) {
	merged := ApplyDelta(nil, Record{"a": "b"})
	if merged.Str("a") != "b" {
		t.Error("nil old should yield patch copy")
	}
	merged = ApplyDelta(Record{"a": "b"}, nil)
	if merged.Str("a") != "b" {
		t.Error("nil patch should yield old copy")
	}
}

func TestRecord_Time(t *testing.T) {
	rec := Record{"joined_at": "2026-03-01T12:30:00.000000+00:00"}
	ts, ok := rec.Time("joined_at")
	if !ok {
		t.Fatal("expected timestamp to parse")
	}
	if ts.UTC().Hour() != 12 {
		t.Errorf("unexpected hour %d", ts.UTC().Hour())
	}
	if _, ok := rec.Time("missing"); ok {
		t.Error("missing timestamp must not parse")
	}
}
