// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guard decides whether the operator may enter a protected location.

The decision is a pure function of the session snapshot and the required
roles. It is evaluated on every navigation and never cached, since the
session can change between two page loads (after a logout for instance).

# Outcomes

  - Pending: The session is still being resolved. Show a neutral loading view.
  - RedirectLogin: Not signed in. Send to /login, preserving the location.
  - RedirectForbidden: Signed in without a required role. Send to /forbidden.
  - Allow: Render the location.

Role checks are exact set membership. No role implies another.
*/
package guard

import (
	"net/http"

	"github.com/taibuivan/hortus/internal/platform/apperr"
	"github.com/taibuivan/hortus/internal/platform/constants"
	"github.com/taibuivan/hortus/internal/platform/navigation"
	"github.com/taibuivan/hortus/internal/platform/sec"
	"github.com/taibuivan/hortus/internal/users/auth"
)

// Outcome is the verdict of a guard evaluation.
type Outcome int

const (
	Pending Outcome = iota
	RedirectLogin
	RedirectForbidden
	Allow
)

// String returns a stable name for logs and views.
func (outcome Outcome) String() string {
	switch outcome {
	case Pending:
		return "pending"
	case RedirectLogin:
		return "redirect_login"
	case RedirectForbidden:
		return "redirect_forbidden"
	case Allow:
		return "allow"
	}
	return "unknown"
}

// Decision is the result of [Decide].
type Decision struct {
	Outcome Outcome

	// Target is the destination of a redirect outcome.
	Target navigation.Target
}

// ErrPending is returned by [Decision.Err] while the session is still resolving.
var ErrPending = &apperr.AppError{
	Code:       "SESSION_PENDING",
	Message:    "The session is still loading",
	HTTPStatus: http.StatusServiceUnavailable,
}

// SessionSource exposes the current session snapshot. [auth.Manager] implements it.
type SessionSource interface {
	Session() auth.Session
}

/*
Decide evaluates access to location for session.

Parameters:
  - session: auth.Session snapshot
  - location: The requested location, preserved on a login redirect
  - required: Roles allowed to enter. Empty means any signed-in operator.

Returns:
  - Decision: The outcome and, for redirects, where to go
*/
func Decide(session auth.Session, location string, required ...sec.Role) Decision {

	// ── 1. Still resolving ────────────────────────────────────────────────
	if session.IsLoading {
		return Decision{Outcome: Pending}
	}

	// ── 2. Not signed in ──────────────────────────────────────────────────
	if !session.IsAuthenticated {
		return Decision{
			Outcome: RedirectLogin,
			Target:  navigation.Target{Path: constants.PathLogin, From: location},
		}
	}

	// ── 3. Role gate ──────────────────────────────────────────────────────
	if len(required) > 0 && !session.Role().In(required...) {
		return Decision{
			Outcome: RedirectForbidden,
			Target:  navigation.Target{Path: constants.PathForbidden},
		}
	}

	return Decision{Outcome: Allow}
}

// Navigate hands a redirect decision to navigator. Other outcomes do nothing.
// It reports whether a navigation was issued.
func (decision Decision) Navigate(navigator navigation.Navigator) bool {
	switch decision.Outcome {
	case RedirectLogin, RedirectForbidden:
		navigator.NavigateTo(decision.Target.Path, navigation.Options{PreserveOrigin: decision.Target.From})
		return true
	}
	return false
}

// Err expresses a denial as an [apperr.AppError] for shells that cannot
// redirect, such as the CLI. Allow yields nil.
func (decision Decision) Err() error {
	switch decision.Outcome {
	case Pending:
		return ErrPending
	case RedirectLogin:
		return apperr.Unauthorized("Authentication required")
	case RedirectForbidden:
		return apperr.Forbidden("You do not have the required role for this page")
	}
	return nil
}
