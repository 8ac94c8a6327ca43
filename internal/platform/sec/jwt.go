// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec holds the client-side security primitives: the role catalogue
// used for route gating and bearer token inspection.
//
// # Architecture
//
// The front-end never verifies token signatures (it has no key material). It
// only peeks at the claims the API put inside the token so it can skip a
// doomed validation call when the token is already past its expiry.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned when the bearer credential is not a JWT.
var ErrOpaqueToken = errors.New("sec: token is not a JWT")

// TokenClaims is the subset of claims the front-end reads from a bearer token.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Optional application claims some API deployments embed.
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Expired reports whether the token carries an expiry that is at or before now.
// Tokens without an exp claim never expire client-side.
func (claims *TokenClaims) Expired(now time.Time) bool {
	if claims == nil || claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(now)
}

// TokenInspector reads bearer token claims without verifying the signature.
type TokenInspector struct {
	parser *jwt.Parser
	now    func() time.Time
}

// NewTokenInspector creates a [TokenInspector] using the wall clock.
func NewTokenInspector() *TokenInspector {
	return &TokenInspector{
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

// Inspect decodes the claims of a JWT bearer token.
//
// # Returns
//   - [ErrOpaqueToken] if the token is not a JWT (opaque API tokens are legal).
func (inspector *TokenInspector) Inspect(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	if _, _, err := inspector.parser.ParseUnverified(tokenString, claims); err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrOpaqueToken
		}
		return nil, fmt.Errorf("sec: inspect token: %w", err)
	}
	return claims, nil
}

// IsExpired reports whether tokenString is a JWT whose expiry has passed.
// Opaque or undecodable tokens are never considered expired here; the API
// remains the authority for those.
func (inspector *TokenInspector) IsExpired(tokenString string) bool {
	claims, err := inspector.Inspect(tokenString)
	if err != nil {
		return false
	}
	return claims.Expired(inspector.now())
}

// ExpiresIn returns how long tokenString remains valid. The boolean is false
// when the token carries no usable expiry.
func (inspector *TokenInspector) ExpiresIn(tokenString string) (time.Duration, bool) {
	claims, err := inspector.Inspect(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return 0, false
	}
	return claims.ExpiresAt.Sub(inspector.now()), true
}
