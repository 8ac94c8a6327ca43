// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/hortus/internal/platform/constants"
	"github.com/taibuivan/hortus/internal/platform/sec"
)

// RedisStore keeps the session entries in Redis so every shell on the host
// shares one sign-in.
//
// Keys are scoped by API origin: "hortus:session:<origin>:token" and
// "hortus:session:<origin>:user". When the token is a JWT, both keys expire
// with it.
type RedisStore struct {
	client    redis.UniversalClient
	prefix    string
	inspector *sec.TokenInspector
	logger    *slog.Logger
}

// NewRedisStore constructs a [RedisStore] for the given origin.
func NewRedisStore(client redis.UniversalClient, origin string, logger *slog.Logger) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{
		client:    client,
		prefix:    constants.RedisPrefixSession + origin + ":",
		inspector: sec.NewTokenInspector(),
		logger:    logger,
	}
}

func (store *RedisStore) key(name string) string {
	return store.prefix + name
}

/*
Save writes both keys in one MULTI/EXEC transaction.

Parameters:
  - ctx: context.Context
  - user: *User
  - token: string

Returns:
  - error: Execution errors
*/
func (store *RedisStore) Save(ctx context.Context, user *User, token string) error {
	if err := checkSave(user, token); err != nil {
		return err
	}
	raw, err := encodeUser(user)
	if err != nil {
		return err
	}

	ttl := store.ttl(token)

	_, err = store.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, store.key(constants.StorageKeyToken), token, ttl)
		pipe.Set(ctx, store.key(constants.StorageKeyUser), raw, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}
	return nil
}

// LoadUser implements [Store].
func (store *RedisStore) LoadUser(ctx context.Context) (*User, error) {
	raw, err := store.get(ctx, constants.StorageKeyUser)
	if err != nil {
		return nil, err
	}
	return loadUserEntry(ctx, store.logger, "redis", raw), nil
}

// LoadToken implements [Store].
func (store *RedisStore) LoadToken(ctx context.Context) (string, error) {
	return store.get(ctx, constants.StorageKeyToken)
}

// Clear implements [Store]. Deleting absent keys is not an error.
func (store *RedisStore) Clear(ctx context.Context) error {
	err := store.client.Del(ctx,
		store.key(constants.StorageKeyToken),
		store.key(constants.StorageKeyUser),
	).Err()
	if err != nil {
		return fmt.Errorf("redis_session_clear_failed: %w", err)
	}
	return nil
}

// get reads one entry, mapping a missing key to "".
func (store *RedisStore) get(ctx context.Context, name string) (string, error) {
	value, err := store.client.Get(ctx, store.key(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis_session_get_failed: %w", err)
	}
	return value, nil
}

// ttl derives the key lifetime from the token's expiry. Zero keeps the keys
// until cleared, which is also used for tokens already past their expiry so
// that Restore can observe and purge them.
func (store *RedisStore) ttl(token string) time.Duration {
	remaining, ok := store.inspector.ExpiresIn(token)
	if !ok || remaining <= 0 {
		return 0
	}
	return remaining
}
