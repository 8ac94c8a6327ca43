// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/taibuivan/hortus/internal/platform/constants"
)

// MemoryStore keeps the session entries for the lifetime of the process.
//
// It behaves like browser storage: raw string entries under fixed keys.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
	logger  *slog.Logger
}

// NewMemoryStore constructs an empty [MemoryStore].
func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{entries: make(map[string]string), logger: logger}
}

// Save implements [Store].
func (store *MemoryStore) Save(_ context.Context, user *User, token string) error {
	if err := checkSave(user, token); err != nil {
		return err
	}
	raw, err := encodeUser(user)
	if err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	store.entries[constants.StorageKeyToken] = token
	store.entries[constants.StorageKeyUser] = raw
	return nil
}

// LoadUser implements [Store].
func (store *MemoryStore) LoadUser(ctx context.Context) (*User, error) {
	raw, _ := store.Get(constants.StorageKeyUser)
	return loadUserEntry(ctx, store.logger, "memory", raw), nil
}

// LoadToken implements [Store].
func (store *MemoryStore) LoadToken(context.Context) (string, error) {
	token, _ := store.Get(constants.StorageKeyToken)
	return token, nil
}

// Clear implements [Store].
func (store *MemoryStore) Clear(context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.entries, constants.StorageKeyToken)
	delete(store.entries, constants.StorageKeyUser)
	return nil
}

// Get returns a raw entry.
func (store *MemoryStore) Get(key string) (string, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	value, ok := store.entries[key]
	return value, ok
}

// Set writes a raw entry, bypassing validation. Seeds fixtures and imports.
func (store *MemoryStore) Set(key, value string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.entries[key] = value
}

// Len returns the number of entries held.
func (store *MemoryStore) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.entries)
}
