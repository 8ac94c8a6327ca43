// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// # Session Persistence

// Store is the durable home of the session across restarts.
//
// Two entries are kept: the bearer token and the JSON-serialized user. Only
// the [Manager] writes to a Store; the transport reads the token.
type Store interface {

	/*
		Save writes both entries. Readers observe both or neither.

		Parameters:
		  - ctx: context.Context
		  - user: *User (required)
		  - token: string (required)

		Returns:
		  - error: Backend write failures
	*/
	Save(ctx context.Context, user *User, token string) error

	/*
		LoadUser returns the persisted user.

		Returns:
		  - *User: nil when absent, or when the stored JSON is unparseable (logged)
		  - error: Backend read failures only
	*/
	LoadUser(ctx context.Context) (*User, error)

	/*
		LoadToken returns the persisted bearer token.

		Returns:
		  - string: "" when absent
		  - error: Backend read failures only
	*/
	LoadToken(ctx context.Context) (string, error)

	/*
		Clear removes both entries. Succeeds when they are already absent.
	*/
	Clear(ctx context.Context) error
}

// errIncompleteSession is returned by Save when either half is missing.
var errIncompleteSession = errors.New("auth: session requires both user and token")

// errCorruptUser marks a stored user entry that is not a valid user document.
var errCorruptUser = errors.New("auth: stored user is not valid JSON")

// checkSave validates the Save arguments shared by every backend.
func checkSave(user *User, token string) error {
	if user == nil || strings.TrimSpace(token) == "" {
		return errIncompleteSession
	}
	return nil
}

// encodeUser serializes user for the user entry.
func encodeUser(user *User) (string, error) {
	raw, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("auth: encode user: %w", err)
	}
	return string(raw), nil
}

// decodeUser parses the user entry. A document without a username is not a user.
func decodeUser(raw string) (*User, error) {
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptUser, err)
	}
	if strings.TrimSpace(user.Username) == "" {
		return nil, fmt.Errorf("%w: missing username", errCorruptUser)
	}
	return &user, nil
}

// loadUserEntry turns a raw entry into a user, logging and dropping corrupt data.
func loadUserEntry(ctx context.Context, logger *slog.Logger, backend, raw string) *User {
	if raw == "" {
		return nil
	}
	user, err := decodeUser(raw)
	if err != nil {
		logger.WarnContext(ctx, "session_user_corrupt",
			slog.String("backend", backend),
			slog.Any("error", err),
		)
		return nil
	}
	return user
}
