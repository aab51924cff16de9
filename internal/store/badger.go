// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MaxOhn/twilight-dispatch/internal/metrics"
)

// BadgerStore implements Store over a BadgerDB database shared with the
// gateway process. All operations are synchronous reads; writes belong to
// the cache owner.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens the cache database at path.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store at %s: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

// OpenBadgerInMemory opens a non-persistent cache database.
func OpenBadgerInMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStore wraps an already-open database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Set writes one record as JSON. The reconciler itself never writes; this
// exists for the cache owner side of deployments that embed both halves,
// and for tests.
func (s *BadgerStore) Set(ctx context.Context, key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Delete removes one record.
func (s *BadgerStore) Delete(ctx context.Context, key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Get implements Store.
func (s *BadgerStore) Get(ctx context.Context, key string) (Record, bool, error) {
	timer := prometheus.NewTimer(metrics.StoreOpDuration.WithLabelValues("get"))
	defer timer.ObserveDuration()

	var rec Record
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			decoded, err := DecodeRecord(key, val)
			if err != nil {
				return err
			}
			rec = decoded
			found = true
			return nil
		})
	})
	if err != nil {
		return nil, false, err
	}
	return rec, found, nil
}

// ScanOne implements Store.
func (s *BadgerStore) ScanOne(ctx context.Context, pattern string) (Record, bool, error) {
	timer := prometheus.NewTimer(metrics.StoreOpDuration.WithLabelValues("scan_one"))
	defer timer.ObserveDuration()

	var rec Record
	found := false
	err := s.scan(ctx, pattern, func(key string, val []byte) (bool, error) {
		decoded, err := DecodeRecord(key, val)
		if err != nil {
			return false, err
		}
		rec = decoded
		found = true
		return false, nil
	})
	if err != nil {
		return nil, false, err
	}
	return rec, found, nil
}

// ScanAll implements Store.
func (s *BadgerStore) ScanAll(ctx context.Context, pattern string) ([]Record, error) {
	timer := prometheus.NewTimer(metrics.StoreOpDuration.WithLabelValues("scan_all"))
	defer timer.ObserveDuration()

	var records []Record
	err := s.scan(ctx, pattern, func(key string, val []byte) (bool, error) {
		decoded, err := DecodeRecord(key, val)
		if err != nil {
			return false, err
		}
		records = append(records, decoded)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// scan iterates keys matching pattern in key order, invoking fn for each
// match until it returns false.
func (s *BadgerStore) scan(ctx context.Context, pattern string, fn func(key string, val []byte) (bool, error)) error {
	prefix := []byte(literalPrefix(pattern))
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			key := string(item.Key())
			if !Match(pattern, key) {
				continue
			}
			more := true
			err := item.Value(func(val []byte) error {
				cont, err := fn(key, val)
				more = cont
				return err
			})
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
		}
		return nil
	})
}
