// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth owns the operator's authentication session.

It holds the identity entities exchanged with the garden API, the persisted
session store, and the [Manager] that is the sole authority for session state
transitions.

# Architecture

  - Entities: User, Credentials, RegisterInput, AuthResponse.
  - Store: Durable token and user entries (file, Redis or memory backends).
  - Gateway: The four auth calls of the REST API.
  - Manager: Restore, Login, Register, Logout and 401 invalidation.

Only the Manager writes to the Store. Everything else reads the [Session]
snapshot or, for the transport, the persisted token.
*/
package auth

import (
	"strings"

	"github.com/taibuivan/hortus/internal/platform/sec"
)

// # Domain Entities

// User is the signed-in operator as described by the garden API.
type User struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Role      sec.Role `json:"role"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	IsActive  bool     `json:"isActive"`
}

// DisplayName returns "First Last" when known, the username otherwise.
func (user *User) DisplayName() string {
	full := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if full == "" {
		return user.Username
	}
	return full
}

// clone returns a copy that callers may keep without aliasing Manager state.
func (user *User) clone() *User {
	if user == nil {
		return nil
	}
	copied := *user
	return &copied
}

// Credentials are the login form fields.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterInput are the account creation form fields.
type RegisterInput struct {
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Role      sec.Role `json:"role,omitempty"`
}

// AuthResponse is what the API returns for a successful login or registration.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// # Field Identifiers

// Field names used in validation errors of the auth forms.
const (
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldEmail     = "email"
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldRole      = "role"
	FieldFrom      = "from"
)
