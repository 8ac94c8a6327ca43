// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # API Endpoints

const (
	EndpointLogin       = "/auth/login"
	EndpointRegister    = "/auth/register"
	EndpointLogout      = "/auth/logout"
	EndpointCurrentUser = "/auth/me"
)

// # Operator Messages

const (
	// MsgSessionExpired is shown after a stored session failed validation.
	MsgSessionExpired = "Session expired. Please sign in again."

	// MsgLoginFailed is the fallback when the API gives no reason for a failed login.
	MsgLoginFailed = "Error while signing in"

	// MsgRegisterFailed is the fallback when the API gives no reason for a failed registration.
	MsgRegisterFailed = "Error while registering"

	// MsgPersistFailed is shown when the API accepted the operator but the session could not be stored.
	MsgPersistFailed = "Unable to persist session"
)

// # Form Constraints

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
	MaxNameLength     = 100
)
