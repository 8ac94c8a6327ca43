// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/taibuivan/hortus/internal/platform/constants"
)

// FileStore keeps the session entries in a small JSON document on disk.
//
// The document is a flat key/value map, one file per API origin. Writes go
// through a temporary file and a rename so a crash never leaves half a session.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewFileStore constructs a [FileStore] at path. The file is created on first Save.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the session file location.
func (store *FileStore) Path() string {
	return store.path
}

// Save implements [Store].
func (store *FileStore) Save(ctx context.Context, user *User, token string) error {
	if err := checkSave(user, token); err != nil {
		return err
	}
	raw, err := encodeUser(user)
	if err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	entries, err := store.read(ctx)
	if err != nil {
		return err
	}
	entries[constants.StorageKeyToken] = token
	entries[constants.StorageKeyUser] = raw

	return store.write(entries)
}

// LoadUser implements [Store].
func (store *FileStore) LoadUser(ctx context.Context) (*User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entries, err := store.read(ctx)
	if err != nil {
		return nil, err
	}
	return loadUserEntry(ctx, store.logger, "file", entries[constants.StorageKeyUser]), nil
}

// LoadToken implements [Store].
func (store *FileStore) LoadToken(ctx context.Context) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entries, err := store.read(ctx)
	if err != nil {
		return "", err
	}
	return entries[constants.StorageKeyToken], nil
}

// Clear implements [Store].
func (store *FileStore) Clear(ctx context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	entries, err := store.read(ctx)
	if err != nil {
		return err
	}
	delete(entries, constants.StorageKeyToken)
	delete(entries, constants.StorageKeyUser)

	if len(entries) > 0 {
		return store.write(entries)
	}

	if err := os.Remove(store.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("auth: remove session file: %w", err)
	}
	return nil
}

// read loads the document. A missing file is empty; an unparseable one is
// logged and treated as empty.
func (store *FileStore) read(ctx context.Context) (map[string]string, error) {
	entries := make(map[string]string)

	raw, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth: read session file: %w", err)
	}

	if err := json.Unmarshal(raw, &entries); err != nil {
		store.logger.WarnContext(ctx, "session_file_corrupt",
			slog.String("path", store.path),
			slog.Any("error", err),
		)
		return make(map[string]string), nil
	}
	return entries, nil
}

// write replaces the document atomically.
func (store *FileStore) write(entries map[string]string) error {
	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("auth: create session dir: %w", err)
	}

	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("auth: encode session file: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("auth: create temp session file: %w", err)
	}
	tempName := temp.Name()
	defer os.Remove(tempName)

	if _, err := temp.Write(raw); err != nil {
		_ = temp.Close()
		return fmt.Errorf("auth: write session file: %w", err)
	}
	if err := temp.Sync(); err != nil {
		_ = temp.Close()
		return fmt.Errorf("auth: sync session file: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("auth: close session file: %w", err)
	}
	if err := os.Chmod(tempName, 0o600); err != nil {
		return fmt.Errorf("auth: chmod session file: %w", err)
	}

	if err := os.Rename(tempName, store.path); err != nil {
		return fmt.Errorf("auth: replace session file: %w", err)
	}
	return nil
}
