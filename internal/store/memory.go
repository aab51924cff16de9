// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package store

import (
	"context"
	"sort"
	"sync"

	"github.com/goccy/go-json"
)

// MemoryStore is a map-backed Store used in tests and embedded setups. It
// stores raw JSON so reads exercise the same decode/normalize path as the
// Badger implementation. Scans iterate in key order for determinism.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

// Put marshals value and stores it under key.
func (s *MemoryStore) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.PutRaw(key, raw)
	return nil
}

// PutRaw stores pre-encoded JSON under key.
func (s *MemoryStore) PutRaw(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = raw
}

// Delete removes key.
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, key string) (Record, bool, error) {
	s.mu.RLock()
	raw, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	rec, err := DecodeRecord(key, raw)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

// ScanOne implements Store.
func (s *MemoryStore) ScanOne(ctx context.Context, pattern string) (Record, bool, error) {
	for _, key := range s.matchingKeys(pattern) {
		return s.Get(ctx, key)
	}
	return nil, false, nil
}

// ScanAll implements Store.
func (s *MemoryStore) ScanAll(ctx context.Context, pattern string) ([]Record, error) {
	var records []Record
	for _, key := range s.matchingKeys(pattern) {
		rec, ok, err := s.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (s *MemoryStore) matchingKeys(pattern string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		if Match(pattern, key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
