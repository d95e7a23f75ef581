// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

package behavior

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// behaviorKeyPrefix namespaces behavior blobs within the BadgerDB keyspace.
const behaviorKeyPrefix = "behavior:"

// BadgerStore implements Store using BadgerDB for durable storage.
// Suitable for production use with persistence across restarts.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a Store over an already-open BadgerDB.
// The caller retains ownership of the database handle.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadgerStore opens a BadgerDB at the given path and wraps it in a
// BadgerStore. Close releases the database.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for behavior: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Get returns the stored blob for a session, or ErrNotFound.
func (s *BadgerStore) Get(_ context.Context, sessionID string) ([]byte, error) {
	var data []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(behaviorKeyPrefix + sessionID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get behavior blob: %w", err)
		}

		return item.Value(func(val []byte) error {
			data = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Set overwrites the stored blob for a session.
func (s *BadgerStore) Set(_ context.Context, sessionID string, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(behaviorKeyPrefix+sessionID), data); err != nil {
			return fmt.Errorf("set behavior blob: %w", err)
		}
		return nil
	})
}

// Close closes the underlying BadgerDB.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
