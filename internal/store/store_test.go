// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package store

import (
	"context"
	"errors"
	"testing"
)

// writableStore is the seeding surface shared by both implementations.
type writableStore interface {
	Store
	put(t *testing.T, key string, raw string)
}

type memAdapter struct{ *MemoryStore }

func (m memAdapter) put(t *testing.T, key, raw string) {
	t.Helper()
	m.PutRaw(key, []byte(raw))
}

type badgerAdapter struct{ *BadgerStore }

func (b badgerAdapter) put(t *testing.T, key, raw string) {
	t.Helper()
	if err := b.Set(context.Background(), key, []byte(raw)); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

func storeImpls(t *testing.T) map[string]writableStore {
	t.Helper()
	bs, err := OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = bs.Close() })
	return map[string]writableStore{
		"memory": memAdapter{NewMemoryStore()},
		"badger": badgerAdapter{bs},
	}
}

func TestStore_GetAbsent(t *testing.T) {
	for name, s := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			rec, found, err := s.Get(context.Background(), "guild:404")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if found || rec != nil {
				t.Error("expected absent record")
			}
		})
	}
}

func TestStore_GetDecodes(t *testing.T) {
	for name, s := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			s.put(t, "guild:123", `{"id":"123","name":"test guild"}`)

			rec, found, err := s.Get(context.Background(), "guild:123")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if !found {
				t.Fatal("expected record")
			}
			if rec.Str("name") != "test guild" || rec.Key() != "guild:123" {
				t.Errorf("unexpected record %v", rec)
			}
		})
	}
}

func TestStore_GetMalformed(t *testing.T) {
	for name, s := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			s.put(t, "guild:123", `{broken`)

			_, _, err := s.Get(context.Background(), "guild:123")
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestStore_ScanOne(t *testing.T) {
	for name, s := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			s.put(t, "member:1:42", `{"user":{"id":"42","username":"a"}}`)
			s.put(t, "member:2:42", `{"user":{"id":"42","username":"b"}}`)
			s.put(t, "member:1:99", `{"user":{"id":"99","username":"c"}}`)

			rec, found, err := s.ScanOne(context.Background(), "member:*:42")
			if err != nil {
				t.Fatalf("ScanOne: %v", err)
			}
			if !found {
				t.Fatal("expected a match")
			}
			if rec.Map("user").Int64("id") != 42 {
				t.Errorf("matched wrong record: %v", rec)
			}
		})
	}
}

func TestStore_ScanOne_NoMatch(t *testing.T) {
	for name, s := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			s.put(t, "member:1:42", `{"user":{"id":"42"}}`)

			rec, found, err := s.ScanOne(context.Background(), "member:*:77")
			if err != nil {
				t.Fatalf("ScanOne: %v", err)
			}
			if found || rec != nil {
				t.Error("expected absent, not an empty record")
			}
		})
	}
}

func TestStore_ScanAll(t *testing.T) {
	for name, s := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			s.put(t, "guild:1", `{"id":"1"}`)
			s.put(t, "guild:2", `{"id":"2"}`)
			s.put(t, "member:1:5", `{"user":{"id":"5"}}`)

			records, err := s.ScanAll(context.Background(), "guild:*")
			if err != nil {
				t.Fatalf("ScanAll: %v", err)
			}
			if len(records) != 2 {
				t.Fatalf("expected 2 guilds, got %d", len(records))
			}
		})
	}
}

func TestStore_ScanAll_Empty(t *testing.T) {
	for name, s := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			records, err := s.ScanAll(context.Background(), "emoji:*:*")
			if err != nil {
				t.Fatalf("ScanAll: %v", err)
			}
			if len(records) != 0 {
				t.Errorf("expected no records, got %d", len(records))
			}
		})
	}
}
