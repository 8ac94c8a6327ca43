// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "github.com/taibuivan/hortus/internal/platform/sec"

// Status is the state machine position of the session.
type Status int

const (
	StatusUninitialized Status = iota
	StatusRestoring
	StatusAnonymous
	StatusAuthenticated
	StatusLoggingIn
	StatusRegistering
	StatusLoggingOut
)

// String returns a stable name for logs and views.
func (status Status) String() string {
	switch status {
	case StatusUninitialized:
		return "uninitialized"
	case StatusRestoring:
		return "restoring"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	case StatusLoggingIn:
		return "logging_in"
	case StatusRegistering:
		return "registering"
	case StatusLoggingOut:
		return "logging_out"
	}
	return "unknown"
}

// MarshalText renders the status by name in JSON views.
func (status Status) MarshalText() ([]byte, error) {
	return []byte(status.String()), nil
}

// InFlight reports whether the status belongs to a running operation.
func (status Status) InFlight() bool {
	switch status {
	case StatusUninitialized, StatusRestoring, StatusLoggingIn, StatusRegistering, StatusLoggingOut:
		return true
	}
	return false
}

// Session is a read-only snapshot of the authentication state.
//
// A snapshot never changes after it is returned; call [Manager.Session]
// again to observe later transitions.
type Session struct {
	User            *User  `json:"user"`
	Token           string `json:"-"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"isLoading"`
	Error           string `json:"error,omitempty"`
	Status          Status `json:"status"`
}

// Role returns the operator's role, or "" when signed out.
func (session Session) Role() sec.Role {
	if session.User == nil {
		return ""
	}
	return session.User.Role
}

// Username returns the operator's username, or "" when signed out.
func (session Session) Username() string {
	if session.User == nil {
		return ""
	}
	return session.User.Username
}

// HasToken reports whether a bearer token is held.
func (session Session) HasToken() bool {
	return session.Token != ""
}
