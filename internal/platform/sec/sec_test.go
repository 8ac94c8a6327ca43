// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hortus/internal/platform/sec"
)

/*
TestRole_In verifies that role checks are exact set membership.
*/
func TestRole_In(t *testing.T) {
	tests := []struct {
		name    string
		role    sec.Role
		allowed []sec.Role
		want    bool
	}{
		{"member", sec.RoleBotanist, []sec.Role{sec.RoleAdmin, sec.RoleBotanist}, true},
		{"admin_does_not_imply_botanist", sec.RoleAdmin, []sec.Role{sec.RoleBotanist}, false},
		{"viewer_not_admin", sec.RoleViewer, []sec.Role{sec.RoleAdmin}, false},
		{"empty_set", sec.RoleAdmin, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.In(tt.allowed...))
		})
	}
}

/*
TestParseRole checks case-insensitive role parsing.
*/
func TestParseRole(t *testing.T) {
	role, ok := sec.ParseRole(" researcher ")
	require.True(t, ok)
	assert.Equal(t, sec.RoleResearcher, role)

	_, ok = sec.ParseRole("gardener")
	assert.False(t, ok)

	assert.True(t, sec.RoleViewer.Valid())
	assert.False(t, sec.Role("root").Valid())
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := sec.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: "bot",
		Role:     "Botanist",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

/*
TestTokenInspector_Inspect reads claims without verifying the signature.
*/
func TestTokenInspector_Inspect(t *testing.T) {
	inspector := sec.NewTokenInspector()

	claims, err := inspector.Inspect(signedToken(t, time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "bot", claims.Username)
	assert.Equal(t, "Botanist", claims.Role)
}

/*
TestTokenInspector_IsExpired covers JWT and opaque tokens.
*/
func TestTokenInspector_IsExpired(t *testing.T) {
	inspector := sec.NewTokenInspector()

	assert.False(t, inspector.IsExpired(signedToken(t, time.Now().Add(time.Hour))))
	assert.True(t, inspector.IsExpired(signedToken(t, time.Now().Add(-time.Minute))))

	// Opaque API tokens are left to the server.
	assert.False(t, inspector.IsExpired("opaque-token-value"))

	_, err := inspector.Inspect("opaque-token-value")
	assert.ErrorIs(t, err, sec.ErrOpaqueToken)
}

/*
TestTokenInspector_ExpiresIn reports the remaining lifetime of JWTs only.
*/
func TestTokenInspector_ExpiresIn(t *testing.T) {
	inspector := sec.NewTokenInspector()

	remaining, ok := inspector.ExpiresIn(signedToken(t, time.Now().Add(time.Hour)))
	require.True(t, ok)
	assert.InDelta(t, time.Hour.Seconds(), remaining.Seconds(), 5)

	_, ok = inspector.ExpiresIn("opaque-token-value")
	assert.False(t, ok)
}
