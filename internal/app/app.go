// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package app is the composition root shared by the web shell and the CLI.

# Wiring Order

 1. Session store, picked by SESSION_BACKEND (file, redis or memory).
 2. Transport: reads the token from the store, reports 401s to the manager
    and the navigator.
 3. REST client over the transport.
 4. Auth gateway and session manager.
 5. Domain services (plants, reference data).

No business logic lives here. All wiring is explicit constructor injection.
*/
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/hortus/internal/core/plant"
	"github.com/taibuivan/hortus/internal/core/reference"
	"github.com/taibuivan/hortus/internal/platform/apiclient"
	"github.com/taibuivan/hortus/internal/platform/config"
	"github.com/taibuivan/hortus/internal/platform/constants"
	"github.com/taibuivan/hortus/internal/platform/navigation"
	redisstore "github.com/taibuivan/hortus/internal/platform/redis"
	"github.com/taibuivan/hortus/internal/platform/transport"
	"github.com/taibuivan/hortus/internal/users/auth"
)

// App holds the wired front-end.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	Store     auth.Store
	Client    *apiclient.Client
	Manager   *auth.Manager
	Plants    *plant.Service
	Reference *reference.Service

	// Redis is set only for the redis session backend.
	Redis goredis.UniversalClient
}

// # Logging

// NewLogger builds the JSON logger tagged with the app name.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	rawLog := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	return rawLog.With(slog.String("app", constants.AppName))
}

// # Construction

/*
New wires the front-end.

Parameters:
  - ctx: Bounds the Redis connection check
  - cfg: Validated configuration
  - logger: Structured logger
  - navigator: Where a rejected session sends the operator (web: History, CLI: a hint)

Returns:
  - *App: Ready to [App.Restore]
  - error: Backend connection failures
*/
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, navigator navigation.Navigator) (*App, error) {
	app := &App{Config: cfg, Logger: logger}

	// ── 1. Session store ──────────────────────────────────────────────────
	store, err := app.newStore(ctx)
	if err != nil {
		return nil, err
	}
	app.Store = store

	// ── 2. Transport ──────────────────────────────────────────────────────
	// The manager is built after the client it depends on; the invalidator
	// resolves it at call time.
	var manager *auth.Manager
	roundTripper := transport.New(store,
		transport.WithInvalidator(transport.InvalidatorFunc(func(ctx context.Context) {
			manager.Invalidate(ctx)
		})),
		transport.WithNavigator(navigator),
		transport.WithRateLimit(cfg.APIRateLimitRPS, cfg.APIRateLimitBurst),
		transport.WithLogger(logger),
	)

	// ── 3. REST client ────────────────────────────────────────────────────
	client, err := apiclient.New(cfg.APIBaseURL, &http.Client{
		Transport: roundTripper,
		Timeout:   cfg.APITimeout,
	}, logger)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Client = client

	// ── 4. Session manager ────────────────────────────────────────────────
	manager = auth.NewManager(store, auth.NewAPIGateway(client), logger)
	app.Manager = manager

	// ── 5. Domain services ────────────────────────────────────────────────
	app.Plants = plant.NewService(plant.NewAPIRepository(client), logger)
	app.Reference = reference.NewService(reference.NewAPIRepository(client), logger)

	return app, nil
}

// newStore builds the configured session backend.
func (app *App) newStore(ctx context.Context) (auth.Store, error) {
	switch app.Config.SessionBackend {
	case config.BackendRedis:
		client, err := redisstore.NewClient(ctx, app.Config.RedisURL, app.Logger)
		if err != nil {
			return nil, fmt.Errorf("app: session backend: %w", err)
		}
		app.Redis = client
		return auth.NewRedisStore(client, app.Config.Origin(), app.Logger), nil

	case config.BackendMemory:
		return auth.NewMemoryStore(app.Logger), nil

	default:
		return auth.NewFileStore(app.Config.SessionPath(), app.Logger), nil
	}
}

// Restore runs the startup session restore and logs its outcome.
func (app *App) Restore(ctx context.Context) auth.Outcome {
	outcome := app.Manager.Restore(ctx)

	attributes := []any{
		slog.String("status", outcome.Status.String()),
		slog.String("kind", outcome.Kind.String()),
	}
	if outcome.Err != nil {
		attributes = append(attributes, slog.Any("error", outcome.Err))
	}
	app.Logger.InfoContext(ctx, "session_restored", attributes...)

	return outcome
}

// CheckCache pings Redis, or returns nil when Redis is not in use.
func (app *App) CheckCache(ctx context.Context) error {
	if app.Redis == nil {
		return nil
	}
	return redisstore.Ping(ctx, app.Redis)
}

// Close releases backend connections.
func (app *App) Close() {
	if app.Redis == nil {
		return
	}
	app.Logger.Info("closing redis client")
	if err := app.Redis.Close(); err != nil {
		app.Logger.Error("redis close error", slog.Any("error", err))
	}
}
