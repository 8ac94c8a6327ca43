// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/taibuivan/hortus/internal/platform/apiclient"
	"github.com/taibuivan/hortus/internal/platform/apperr"
)

// # Remote Collaborator

// Gateway is the set of auth calls the garden API offers.
//
// Implementations authenticate FetchCurrentUser and Logout with the persisted
// token through the transport; callers never pass it explicitly.
type Gateway interface {
	Login(ctx context.Context, credentials Credentials) (*AuthResponse, error)
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Logout(ctx context.Context) error
	FetchCurrentUser(ctx context.Context) (*User, error)
}

// errMalformedAuthResponse is returned when a 2xx auth response lacks a user or token.
var errMalformedAuthResponse = errors.New("auth: response is missing the user or the token")

// APIGateway implements [Gateway] over the REST client.
type APIGateway struct {
	client *apiclient.Client
}

// NewAPIGateway constructs an [APIGateway].
func NewAPIGateway(client *apiclient.Client) *APIGateway {
	return &APIGateway{client: client}
}

// Login calls POST /auth/login.
func (gateway *APIGateway) Login(ctx context.Context, credentials Credentials) (*AuthResponse, error) {
	return gateway.authenticate(ctx, EndpointLogin, credentials)
}

// Register calls POST /auth/register.
func (gateway *APIGateway) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	return gateway.authenticate(ctx, EndpointRegister, input)
}

// Logout calls POST /auth/logout.
func (gateway *APIGateway) Logout(ctx context.Context) error {
	return gateway.client.Post(ctx, EndpointLogout, nil, nil)
}

// FetchCurrentUser calls GET /auth/me.
func (gateway *APIGateway) FetchCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := gateway.client.Get(ctx, EndpointCurrentUser, nil, &user); err != nil {
		return nil, err
	}
	if strings.TrimSpace(user.Username) == "" {
		return nil, apperr.Unavailable(errMalformedAuthResponse)
	}
	return &user, nil
}

// authenticate posts a login or registration payload and checks the answer.
func (gateway *APIGateway) authenticate(ctx context.Context, path string, payload any) (*AuthResponse, error) {
	var response AuthResponse
	if err := gateway.client.Post(ctx, path, payload, &response); err != nil {
		return nil, err
	}
	if response.User == nil || response.Token == "" {
		return nil, apperr.Unavailable(errMalformedAuthResponse)
	}
	return &response, nil
}
