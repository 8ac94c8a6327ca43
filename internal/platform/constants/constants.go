// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire front-end.

It defines timeouts, navigation targets, storage keys, and header names that are
shared between the transport, the session manager, and the web shell.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the local web shell.
  - Navigation: Fixed destinations the guard and transport redirect to.
  - Storage: Key names of the persisted session entries.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "hortus"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Exports stream through the shell, so this is longer than the API timeout.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for a page request, API calls included.
	GlobalRequestTimeout = 45 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 10 * time.Second

	// StartupTimeout bounds Redis connection and session restore at startup.
	StartupTimeout = 30 * time.Second
)

// # Inbound Throttle

const (
	// DefaultShellRateLimitRPS is the sustained page request rate per client.
	DefaultShellRateLimitRPS = 10

	// DefaultShellRateLimitBurst is the page request burst per client.
	DefaultShellRateLimitBurst = 30

	// RateLimitCleanupInterval is how often idle client buckets are swept.
	RateLimitCleanupInterval = time.Minute

	// RateLimitClientTTL is how long an idle client bucket is kept.
	RateLimitClientTTL = 3 * time.Minute
)

// # Navigation

const (
	// PathHome is the public landing page.
	PathHome = "/"

	// PathLogin is the login entry point used by the guard and the 401 handler.
	PathLogin = "/login"

	// PathRegister is the account creation page.
	PathRegister = "/register"

	// PathForbidden is the fixed "access denied" destination.
	PathForbidden = "/forbidden"

	// QueryFrom carries the originally requested location through the login page.
	QueryFrom = "from"
)

// # Session Storage

const (
	// StorageKeyToken is the key of the persisted bearer token.
	StorageKeyToken = "token"

	// StorageKeyUser is the key of the persisted, JSON-serialized user profile.
	StorageKeyUser = "user"

	// RedisPrefixSession namespaces persisted sessions in Redis.
	RedisPrefixSession = "hortus:session:"
)

// # Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderContentType   = "Content-Type"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "

	ContentTypeJSON = "application/json"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)
