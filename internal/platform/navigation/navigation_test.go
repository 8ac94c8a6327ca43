// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package navigation_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hortus/internal/platform/ctxutil"
	"github.com/taibuivan/hortus/internal/platform/navigation"
)

/*
TestTarget_URL preserves the origin in the query string.
*/
func TestTarget_URL(t *testing.T) {
	tests := []struct {
		name   string
		target navigation.Target
		want   string
	}{
		{"no_origin", navigation.Target{Path: "/login"}, "/login"},
		{"with_origin", navigation.Target{Path: "/login", From: "/plants?page=2"}, "/login?from=%2Fplants%3Fpage%3D2"},
		{"origin_is_target", navigation.Target{Path: "/login", From: "/login"}, "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.target.URL())
		})
	}
}

/*
TestHistory_TakeConsumes verifies that a pending navigation is delivered once.
*/
func TestHistory_TakeConsumes(t *testing.T) {
	history := navigation.NewHistory()

	_, ok := history.Take()
	assert.False(t, ok)

	history.NavigateTo("/login", navigation.Options{PreserveOrigin: "/map"})

	pending, ok := history.Pending()
	require.True(t, ok)
	assert.Equal(t, "/map", pending.From)

	target, ok := history.Take()
	require.True(t, ok)
	assert.Equal(t, navigation.Target{Path: "/login", From: "/map"}, target)

	_, ok = history.Take()
	assert.False(t, ok)
}

/*
TestFollow_RedirectsOnce redirects to the pending target, then lets requests through.
*/
func TestFollow_RedirectsOnce(t *testing.T) {
	history := navigation.NewHistory()
	var seenLocation string
	handler := navigation.Follow(history)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seenLocation = ctxutil.GetLocation(request.Context())
		writer.WriteHeader(http.StatusOK)
	}))

	history.NavigateTo("/login", navigation.Options{PreserveOrigin: "/plants"})

	// 1. First request is sent to the login page
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/map", nil))
	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/login?from=%2Fplants", recorder.Header().Get("Location"))

	// 2. The detour is consumed; the next request renders normally
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/map?zoom=3", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "/map?zoom=3", seenLocation)
}

/*
TestFollow_AlreadyThere does not redirect when the browser is already on the target.
*/
func TestFollow_AlreadyThere(t *testing.T) {
	history := navigation.NewHistory()
	handler := navigation.Follow(history)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))

	history.NavigateTo("/login", navigation.Options{})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	_, ok := history.Pending()
	assert.False(t, ok)
}

/*
TestSafeReturn only honours local paths.
*/
func TestSafeReturn(t *testing.T) {
	tests := []struct {
		from string
		want string
	}{
		{"", "/"},
		{"/plants?page=2", "/plants?page=2"},
		{"/admin", "/admin"},
		{"https://evil.example/phish", "/"},
		{"//evil.example", "/"},
		{`/\evil.example`, "/"},
		{"plants", "/"},
		{"/login?from=/admin", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.from, func(t *testing.T) {
			assert.Equal(t, tt.want, navigation.SafeReturn(tt.from))
		})
	}
}

/*
TestHistory_AlreadyAtDestination drops a detour issued from the destination itself.
*/
func TestHistory_AlreadyAtDestination(t *testing.T) {
	history := navigation.NewHistory()

	history.NavigateTo("/login", navigation.Options{PreserveOrigin: "/login?from=%2Fadmin"})

	_, ok := history.Pending()
	assert.False(t, ok)
}
