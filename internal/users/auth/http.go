// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hortus/internal/platform/constants"
	"github.com/taibuivan/hortus/internal/platform/navigation"
	requestutil "github.com/taibuivan/hortus/internal/platform/request"
	"github.com/taibuivan/hortus/internal/platform/respond"
	"github.com/taibuivan/hortus/internal/platform/sec"
)

// # Definitions & Constructors

// Handler serves the sign-in pages of the local web shell.
//
// Views are JSON documents; the login form renders the session error and
// the preserved "from" location.
type Handler struct {
	manager   *Manager
	inspector *sec.TokenInspector
}

// NewHandler constructs a new [Handler] around the session manager.
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager, inspector: sec.NewTokenInspector()}
}

// RegisterRoutes mounts the auth pages on the shell's root router.
//
// # Endpoints
//   - GET  /login    : Login form view (error, from).
//   - POST /login    : Sign in, then 303 to "from".
//   - GET  /register : Registration form view.
//   - POST /register : Create account, then 303 to "from".
//   - POST /logout   : Sign out, then 303 to /login.
//   - GET  /session  : Current session snapshot.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get(constants.PathLogin, handler.loginView)
	router.Post(constants.PathLogin, handler.login)
	router.Get(constants.PathRegister, handler.registerView)
	router.Post(constants.PathRegister, handler.register)
	router.Post("/logout", handler.logout)
	router.Get("/session", handler.session)
}

// # Views

// formView is the payload of the login and registration pages.
type formView struct {
	Session Session  `json:"session"`
	From    string   `json:"from,omitempty"`
	Roles   []string `json:"roles,omitempty"`
}

// sessionView adds token metadata to the snapshot without exposing the token.
type sessionView struct {
	Session
	HasToken       bool       `json:"hasToken"`
	TokenExpiresAt *time.Time `json:"tokenExpiresAt,omitempty"`
}

/*
GET /login.

Response:
  - 200: formView: Current session and the preserved location
  - 303: Already signed in, sent on to "from"
*/
func (handler *Handler) loginView(writer http.ResponseWriter, request *http.Request) {
	from := request.URL.Query().Get(constants.QueryFrom)

	session := handler.manager.Session()
	if session.IsAuthenticated {
		respond.SeeOther(writer, request, navigation.SafeReturn(from))
		return
	}

	respond.OK(writer, formView{Session: session, From: from})
}

/*
GET /register.

Response:
  - 200: formView: Current session and the selectable roles
*/
func (handler *Handler) registerView(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, formView{
		Session: handler.manager.Session(),
		From:    request.URL.Query().Get(constants.QueryFrom),
		Roles:   sec.RoleNames(),
	})
}

// # Actions

type loginRequest struct {
	Credentials
	From string `json:"from"`
}

type registerRequest struct {
	RegisterInput
	From string `json:"from"`
}

/*
POST /login.

Request:
  - Body: loginRequest (username, password, from)
  - Query: from (used when the body does not carry it)

Response:
  - 303: Signed in, redirected to the preserved location
  - 400: Missing fields
  - 4xx/502: AUTH_FAILED with the message now on the session
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := ValidateCredentials(input.Credentials); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.manager.Login(request.Context(), input.Credentials); err != nil {
		handler.fail(writer, request, err)
		return
	}

	respond.SeeOther(writer, request, navigation.SafeReturn(handler.from(request, input.From)))
}

/*
POST /register.

Request:
  - Body: registerRequest (username, password, email, firstName, lastName, role, from)

Response:
  - 303: Account created and signed in
  - 400: Missing or malformed fields
  - 4xx/502: AUTH_FAILED with the message now on the session
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := ValidateRegistration(&input.RegisterInput); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.manager.Register(request.Context(), input.RegisterInput); err != nil {
		handler.fail(writer, request, err)
		return
	}

	respond.SeeOther(writer, request, navigation.SafeReturn(handler.from(request, input.From)))
}

/*
POST /logout.

Response:
  - 303: Always, to the login page
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.manager.Logout(request.Context())
	respond.SeeOther(writer, request, constants.PathLogin)
}

/*
GET /session.

Response:
  - 200: sessionView: Snapshot with token presence and expiry, never the token itself
*/
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	session := handler.manager.Session()
	view := sessionView{Session: session, HasToken: session.HasToken()}

	if session.HasToken() {
		if claims, err := handler.inspector.Inspect(session.Token); err == nil && claims.ExpiresAt != nil {
			expiresAt := claims.ExpiresAt.Time
			view.TokenExpiresAt = &expiresAt
		}
	}

	respond.OK(writer, view)
}

// # Helpers

// from picks the body's return location, falling back to the query string.
func (handler *Handler) from(request *http.Request, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	return request.URL.Query().Get(constants.QueryFrom)
}

// fail renders a failed login or registration.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error) {
	var authError *Error
	if errors.As(err, &authError) {
		respond.Error(writer, request, authError.AppError())
		return
	}
	respond.Error(writer, request, err)
}
