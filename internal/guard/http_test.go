// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/hortus/internal/guard"
	"github.com/taibuivan/hortus/internal/platform/sec"
	"github.com/taibuivan/hortus/internal/users/auth"
)

// staticSource serves a fixed session, swappable between requests.
type staticSource struct {
	session auth.Session
}

func (source *staticSource) Session() auth.Session { return source.session }

func guardedRouter(source guard.SessionSource) http.Handler {
	router := chi.NewRouter()
	ok := func(writer http.ResponseWriter, _ *http.Request) { writer.WriteHeader(http.StatusOK) }

	router.With(guard.Require(source)).Get("/plants", ok)
	router.With(guard.Require(source, sec.RoleAdmin)).Get("/admin", ok)
	router.Get("/forbidden", guard.ForbiddenView)
	return router
}

func serve(router http.Handler, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

/*
TestRequire_Outcomes covers every verdict at the HTTP level.
*/
func TestRequire_Outcomes(t *testing.T) {
	source := &staticSource{session: auth.Session{IsLoading: true}}
	router := guardedRouter(source)

	// ── Pending ──────────────────────────────────────────────────────────
	recorder := serve(router, "/plants")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, "1", recorder.Header().Get("Retry-After"))
	assert.Contains(t, recorder.Body.String(), "pending")

	// ── Anonymous ────────────────────────────────────────────────────────
	source.session = anonymous()
	recorder = serve(router, "/plants?page=2")
	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/login?from=%2Fplants%3Fpage%3D2", recorder.Header().Get("Location"))

	// ── Wrong role ───────────────────────────────────────────────────────
	source.session = signedIn(sec.RoleViewer)
	recorder = serve(router, "/admin")
	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/forbidden", recorder.Header().Get("Location"))

	assert.Equal(t, http.StatusOK, serve(router, "/plants").Code)

	// ── Admin ────────────────────────────────────────────────────────────
	source.session = signedIn(sec.RoleAdmin)
	assert.Equal(t, http.StatusOK, serve(router, "/admin").Code)
}

/*
TestForbiddenView renders the access denied page.
*/
func TestForbiddenView(t *testing.T) {
	recorder := serve(guardedRouter(&staticSource{}), "/forbidden")

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "required role")
}
