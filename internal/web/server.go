// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package web wires the local web shell: the chi router, the middleware chain
and every page handler, served by one [http.Server].

Architecture:

  - This package is the topmost presentation boundary of the front-end.
  - Pages are JSON views; a browser UI or script renders them.
  - Only this package and cmd/hortus start net/http servers.
*/
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/hortus/internal/core/plant"
	"github.com/taibuivan/hortus/internal/core/reference"
	"github.com/taibuivan/hortus/internal/guard"
	"github.com/taibuivan/hortus/internal/platform/config"
	"github.com/taibuivan/hortus/internal/platform/constants"
	"github.com/taibuivan/hortus/internal/platform/middleware"
	"github.com/taibuivan/hortus/internal/platform/navigation"
	"github.com/taibuivan/hortus/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups the page handler sets and the shared session plumbing.
type Handlers struct {
	// Liveness is the /health handler. It answers 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It answers 200 when the API and cache respond.
	Readiness http.HandlerFunc

	// Session is the read side of the session manager, consulted by every guard.
	Session guard.SessionSource

	// History holds the detour recorded by the transport after a 401.
	History *navigation.History

	// Auth serves login, registration and logout.
	Auth *auth.Handler

	// Plant serves the catalogue, observations and reports.
	Plant *plant.Handler

	// Reference serves families and locations.
	Reference *reference.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all page groups. ctx bounds the rate limiter's sweeper.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	identity := func() string { return h.Session.Session().Username() }
	limiter := middleware.NewRateLimiter(ctx, constants.DefaultShellRateLimitRPS, constants.DefaultShellRateLimitBurst)

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log, identity))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(limiter.Handler)
	r.Use(middleware.PanicRecovery(log))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Probes stay outside the navigation detour.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Pages
	r.Group(func(pages chi.Router) {
		pages.Use(navigation.Follow(h.History))

		registerPages(pages, h.Session)
		h.Auth.RegisterRoutes(pages)
		h.Plant.RegisterRoutes(pages)
		h.Reference.RegisterRoutes(pages)
	})

	// Unknown pages fall back to the home page.
	r.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, constants.PathHome, http.StatusSeeOther)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the root router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
