// ShopIntel - Storefront Personalization and Checkout Intelligence
// Copyright 2026 Rare&Magic
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raremagic/shopintel

package behavior

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Store.Get when no blob exists for a session.
// First use of a session is expected to hit this; the tracker treats it as
// an empty record.
var ErrNotFound = errors.New("behavior: record not found")

// Store is the persistence capability injected into the tracker: a single
// get/set of one serialized blob per session. Whether storage is available
// at all is decided by the host at construction time, not probed per call.
//
// Set overwrites unconditionally; concurrent writers for the same session
// resolve last-write-wins.
type Store interface {
	// Get returns the stored blob for a session, or ErrNotFound.
	Get(ctx context.Context, sessionID string) ([]byte, error)

	// Set overwrites the stored blob for a session.
	Set(ctx context.Context, sessionID string, data []byte) error
}

// MemoryStore is an in-memory Store. It backs tests and hosts that run
// without durable storage.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Get returns the stored blob for a session, or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, sessionID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// Set overwrites the stored blob for a session.
func (s *MemoryStore) Set(_ context.Context, sessionID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[sessionID] = cp
	return nil
}
