// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/hortus/internal/core/plant"
	"github.com/taibuivan/hortus/internal/core/reference"
	"github.com/taibuivan/hortus/internal/platform/constants"
	"github.com/taibuivan/hortus/internal/platform/navigation"
	"github.com/taibuivan/hortus/internal/users/auth"
	"github.com/taibuivan/hortus/internal/web"
)

func newServeCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local web shell",
		Long: `Run the local web shell on SERVER_PORT.

The persisted session is restored in the background; pages behind a guard
answer 503 with Retry-After until the restore settles.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, options)
		},
	}
}

/*
runServe wires the web shell and blocks until a signal or a server error.

# Startup Sequence

 1. Configuration, session store and API client (bootstrap).
 2. Health handlers wired with the real dependency checks.
 3. Page handlers and the HTTP server.
 4. Session restore in the background.
 5. Graceful shutdown.
*/
func runServe(cmd *cobra.Command, options *rootOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// ── 1. Wiring ─────────────────────────────────────────────────────────
	history := navigation.NewHistory()
	wired, err := bootstrap(cmd, options, slog.LevelInfo, history)
	if err != nil {
		return err
	}
	defer wired.Close()

	log := wired.Logger
	log.Info("configuration_loaded",
		slog.String("environment", wired.Config.Environment),
		slog.String("port", wired.Config.ServerPort),
		slog.String("session_backend", wired.Config.SessionBackend),
	)

	// ── 2. Health handlers ────────────────────────────────────────────────
	dependencies := web.HealthDependencies{CheckAPI: wired.Client.Ping}
	if wired.Redis != nil {
		dependencies.CheckCache = wired.CheckCache
	}
	liveness, readiness := web.NewHealthHandlers(dependencies, log)

	// ── 3. HTTP server ────────────────────────────────────────────────────
	server := web.NewServer(ctx, wired.Config, log, web.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Session:   wired.Manager,
		History:   history,
		Auth:      auth.NewHandler(wired.Manager),
		Plant:     plant.NewHandler(wired.Plants, wired.Manager),
		Reference: reference.NewHandler(wired.Reference, wired.Manager),
	})

	// ── 4. Session restore ────────────────────────────────────────────────
	go wired.Restore(ctx)

	// ── 5. Graceful shutdown ──────────────────────────────────────────────
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
		return err
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		return err
	}

	log.Info("server stopped cleanly")
	return nil
}

