// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/hortus/internal/guard"
	"github.com/taibuivan/hortus/internal/platform/apperr"
	"github.com/taibuivan/hortus/internal/platform/navigation"
	"github.com/taibuivan/hortus/internal/platform/sec"
	"github.com/taibuivan/hortus/internal/users/auth"
)

func signedIn(role sec.Role) auth.Session {
	return auth.Session{
		User:            &auth.User{ID: 1, Username: "op", Role: role},
		Token:           "tok",
		IsAuthenticated: true,
		Status:          auth.StatusAuthenticated,
	}
}

func anonymous() auth.Session {
	return auth.Session{Status: auth.StatusAnonymous}
}

/*
TestDecide_Pending makes no decision while the session resolves.
*/
func TestDecide_Pending(t *testing.T) {
	session := signedIn(sec.RoleAdmin)
	session.IsLoading = true

	assert.Equal(t, guard.Pending, guard.Decide(session, "/admin", sec.RoleAdmin).Outcome)
	assert.Equal(t, guard.Pending, guard.Decide(auth.Session{IsLoading: true}, "/plants").Outcome)
}

/*
TestDecide_RoleGate checks exact role membership.
*/
func TestDecide_RoleGate(t *testing.T) {
	tests := []struct {
		name     string
		role     sec.Role
		required []sec.Role
		want     guard.Outcome
	}{
		{"viewer_on_admin", sec.RoleViewer, []sec.Role{sec.RoleAdmin}, guard.RedirectForbidden},
		{"admin_on_admin", sec.RoleAdmin, []sec.Role{sec.RoleAdmin}, guard.Allow},
		{"botanist_on_add", sec.RoleBotanist, []sec.Role{sec.RoleAdmin, sec.RoleBotanist}, guard.Allow},
		{"researcher_on_add", sec.RoleResearcher, []sec.Role{sec.RoleAdmin, sec.RoleBotanist}, guard.RedirectForbidden},
		{"admin_not_implied", sec.RoleAdmin, []sec.Role{sec.RoleViewer}, guard.RedirectForbidden},
		{"any_signed_in", sec.RoleViewer, nil, guard.Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := guard.Decide(signedIn(tt.role), "/admin", tt.required...)
			assert.Equal(t, tt.want, decision.Outcome)

			if tt.want == guard.RedirectForbidden {
				assert.Equal(t, "/forbidden", decision.Target.URL())
			}
		})
	}
}

/*
TestDecide_Unauthenticated always sends an anonymous session to login.
*/
func TestDecide_Unauthenticated(t *testing.T) {
	for _, required := range [][]sec.Role{nil, {sec.RoleAdmin}, {sec.RoleViewer, sec.RoleBotanist}} {
		decision := guard.Decide(anonymous(), "/plants/add?x=1", required...)

		assert.Equal(t, guard.RedirectLogin, decision.Outcome)
		assert.Equal(t, "/login", decision.Target.Path)
		assert.Equal(t, "/plants/add?x=1", decision.Target.From)
	}

	// An error left by a failed login does not change the verdict.
	session := anonymous()
	session.Error = "Invalid credentials"
	assert.Equal(t, guard.RedirectLogin, guard.Decide(session, "/map").Outcome)
}

/*
TestDecide_NotCached reflects a session change between two evaluations.
*/
func TestDecide_NotCached(t *testing.T) {
	session := signedIn(sec.RoleAdmin)
	assert.Equal(t, guard.Allow, guard.Decide(session, "/admin", sec.RoleAdmin).Outcome)

	session = anonymous()
	assert.Equal(t, guard.RedirectLogin, guard.Decide(session, "/admin", sec.RoleAdmin).Outcome)
}

/*
TestDecision_Navigate forwards redirects to the navigator only.
*/
func TestDecision_Navigate(t *testing.T) {
	var got []navigation.Target
	navigator := navigation.Func(func(path string, options navigation.Options) {
		got = append(got, navigation.Target{Path: path, From: options.PreserveOrigin})
	})

	assert.True(t, guard.Decide(anonymous(), "/map").Navigate(navigator))
	assert.True(t, guard.Decide(signedIn(sec.RoleViewer), "/admin", sec.RoleAdmin).Navigate(navigator))
	assert.False(t, guard.Decide(signedIn(sec.RoleAdmin), "/admin", sec.RoleAdmin).Navigate(navigator))

	assert.Equal(t, []navigation.Target{
		{Path: "/login", From: "/map"},
		{Path: "/forbidden"},
	}, got)
}

/*
TestDecision_Err maps denials onto error codes for the CLI.
*/
func TestDecision_Err(t *testing.T) {
	assert.NoError(t, guard.Decide(signedIn(sec.RoleViewer), "/plants").Err())
	assert.Equal(t, 401, apperr.Status(guard.Decide(anonymous(), "/plants").Err()))
	assert.Equal(t, 403, apperr.Status(guard.Decide(signedIn(sec.RoleViewer), "/admin", sec.RoleAdmin).Err()))
	assert.ErrorIs(t, guard.Decide(auth.Session{IsLoading: true}, "/plants").Err(), guard.ErrPending)
}
