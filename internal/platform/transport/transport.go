// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package transport wraps every outgoing garden API call.

It is an [http.RoundTripper] that sits between the REST client and the
network and applies the front-end's cross-cutting request policy.

Standard Stack:

  - Trace: X-Request-ID on every call (UUID v7), reused from the page request when present.
  - Auth: Bearer token read from the persisted session store.
  - Throttle: Optional client-side token bucket so a runaway page cannot flood the API.
  - Invalidate: A 401 signs the operator out and sends them to the login page.

The transport never retries and never backs off. Every status other than 401
reaches the caller untouched.
*/
package transport

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/taibuivan/hortus/internal/platform/constants"
	"github.com/taibuivan/hortus/internal/platform/ctxutil"
	"github.com/taibuivan/hortus/internal/platform/navigation"
)

// # Collaborators

// TokenSource yields the bearer token currently persisted, or "" when none.
type TokenSource interface {
	LoadToken(ctx context.Context) (string, error)
}

// Invalidator ends the current session after the API rejected its token.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// InvalidatorFunc adapts a plain function to [Invalidator].
type InvalidatorFunc func(ctx context.Context)

// Invalidate implements [Invalidator].
func (fn InvalidatorFunc) Invalidate(ctx context.Context) { fn(ctx) }

// # Transport

// Transport is the authenticated [http.RoundTripper] used by the REST client.
type Transport struct {
	base        http.RoundTripper
	tokens      TokenSource
	invalidator Invalidator
	navigator   navigation.Navigator
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// Option configures a [Transport].
type Option func(*Transport)

// WithBase sets the underlying round tripper. Defaults to [http.DefaultTransport].
func WithBase(base http.RoundTripper) Option {
	return func(transport *Transport) { transport.base = base }
}

// WithInvalidator sets who is told about a rejected token.
func WithInvalidator(invalidator Invalidator) Option {
	return func(transport *Transport) { transport.invalidator = invalidator }
}

// WithNavigator sets where the operator is sent after a rejected token.
func WithNavigator(navigator navigation.Navigator) Option {
	return func(transport *Transport) { transport.navigator = navigator }
}

// WithRateLimit enables the client-side token bucket. A non-positive rps disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(transport *Transport) {
		if rps <= 0 {
			transport.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		transport.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(transport *Transport) { transport.logger = logger }
}

// New constructs a [Transport] that reads bearer tokens from tokens.
func New(tokens TokenSource, options ...Option) *Transport {
	transport := &Transport{
		base:   http.DefaultTransport,
		tokens: tokens,
		logger: slog.Default(),
	}
	for _, option := range options {
		option(transport)
	}
	return transport
}

// # Per-request State

// handledKey marks a context whose 401 has already been acted upon.
type handledKey struct{}

// handled is shared by a request and every request issued while reacting to
// its 401, and by nothing else.
type handled struct {
	done atomic.Bool
}

// WithoutInvalidation marks ctx so that a 401 on its requests leaves the
// session and navigation untouched. Probes such as the readiness ping use it.
func WithoutInvalidation(ctx context.Context) context.Context {
	flag := &handled{}
	flag.done.Store(true)
	return context.WithValue(ctx, handledKey{}, flag)
}

// UnauthorizedHandled reports whether ctx belongs to a request whose 401
// has already triggered the sign-out.
func UnauthorizedHandled(ctx context.Context) bool {
	flag, ok := ctx.Value(handledKey{}).(*handled)
	return ok && flag.done.Load()
}

// # Round Trip

// RoundTrip implements [http.RoundTripper].
func (transport *Transport) RoundTrip(request *http.Request) (*http.Response, error) {
	ctx := request.Context()

	// ── 1. Per-request 401 flag ───────────────────────────────────────────
	flag, ok := ctx.Value(handledKey{}).(*handled)
	if !ok {
		flag = &handled{}
		ctx = context.WithValue(ctx, handledKey{}, flag)
	}

	// ── 2. Client-side throttle ───────────────────────────────────────────
	if transport.limiter != nil {
		if err := transport.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	// ── 3. Decorate a clone; RoundTrippers must not mutate the caller's request
	outgoing := request.Clone(ctx)
	requestID := transport.requestID(ctx, outgoing)
	outgoing.Header.Set(constants.HeaderXRequestID, requestID)
	transport.authorize(ctx, outgoing)

	// ── 4. Send ───────────────────────────────────────────────────────────
	startTime := time.Now()
	response, err := transport.base.RoundTrip(outgoing)
	if err != nil {
		transport.logger.DebugContext(ctx, "api_request_failed",
			slog.String("request_id", requestID),
			slog.String("method", outgoing.Method),
			slog.String("path", outgoing.URL.Path),
			slog.Any("error", err),
		)
		return nil, err
	}

	transport.logger.DebugContext(ctx, "api_request_finished",
		slog.String("request_id", requestID),
		slog.String("method", outgoing.Method),
		slog.String("path", outgoing.URL.Path),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	// ── 5. Session invalidation, once per request ─────────────────────────
	if response.StatusCode == http.StatusUnauthorized && flag.done.CompareAndSwap(false, true) {
		transport.unauthorized(ctx, outgoing, requestID)
	}

	return response, nil
}

// authorize attaches the persisted bearer token, if any.
func (transport *Transport) authorize(ctx context.Context, outgoing *http.Request) {
	if transport.tokens == nil {
		return
	}

	token, err := transport.tokens.LoadToken(ctx)
	if err != nil {
		// An unreadable store means no usable session; the API decides.
		transport.logger.WarnContext(ctx, "session_token_unreadable", slog.Any("error", err))
		return
	}
	if token == "" {
		outgoing.Header.Del(constants.HeaderAuthorization)
		return
	}

	outgoing.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
}

// unauthorized signs the operator out and redirects them to the login page.
func (transport *Transport) unauthorized(ctx context.Context, outgoing *http.Request, requestID string) {
	transport.logger.WarnContext(ctx, "api_session_rejected",
		slog.String("request_id", requestID),
		slog.String("method", outgoing.Method),
		slog.String("path", outgoing.URL.Path),
	)

	if transport.invalidator != nil {
		transport.invalidator.Invalidate(ctx)
	}

	if transport.navigator != nil {
		transport.navigator.NavigateTo(constants.PathLogin, navigation.Options{
			PreserveOrigin: ctxutil.GetLocation(ctx),
		})
	}
}

// requestID reuses the caller's correlation ID or mints a UUID v7.
func (transport *Transport) requestID(ctx context.Context, outgoing *http.Request) string {
	if id := outgoing.Header.Get(constants.HeaderXRequestID); id != "" {
		return id
	}
	if id := ctxutil.GetRequestID(ctx); id != "" {
		return id
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
