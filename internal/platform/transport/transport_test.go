// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transport_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hortus/internal/platform/ctxutil"
	"github.com/taibuivan/hortus/internal/platform/navigation"
	"github.com/taibuivan/hortus/internal/platform/transport"
)

// tokenStore is a minimal persisted-store double.
type tokenStore struct {
	mu    sync.Mutex
	token string
	err   error
}

func (store *tokenStore) LoadToken(context.Context) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token, store.err
}

func (store *tokenStore) clear() {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = ""
}

// navigations records every NavigateTo call.
type navigations struct {
	mu    sync.Mutex
	calls []navigation.Target
}

func (recorder *navigations) NavigateTo(path string, options navigation.Options) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.calls = append(recorder.calls, navigation.Target{Path: path, From: options.PreserveOrigin})
}

func (recorder *navigations) count() int {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return len(recorder.calls)
}

/*
TestRoundTrip_AttachesBearer sends the persisted token and nothing when absent.
*/
func TestRoundTrip_AttachesBearer(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = append(seen, request.Header.Get("Authorization"))
		assert.NotEmpty(t, request.Header.Get("X-Request-ID"))
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store := &tokenStore{token: "tok-1"}
	client := &http.Client{Transport: transport.New(store)}

	// 1. With a stored token
	response, err := client.Get(server.URL + "/plants")
	require.NoError(t, err)
	response.Body.Close()

	// 2. Without one
	store.clear()
	response, err = client.Get(server.URL + "/plants")
	require.NoError(t, err)
	response.Body.Close()

	assert.Equal(t, []string{"Bearer tok-1", ""}, seen)
}

/*
TestRoundTrip_DoesNotMutateCaller leaves the caller's request untouched.
*/
func TestRoundTrip_DoesNotMutateCaller(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	defer server.Close()

	client := &http.Client{Transport: transport.New(&tokenStore{token: "tok-1"})}
	request, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	response, err := client.Do(request)
	require.NoError(t, err)
	response.Body.Close()

	assert.Empty(t, request.Header.Get("Authorization"))
	assert.Empty(t, request.Header.Get("X-Request-ID"))
}

/*
TestRoundTrip_ReusesRequestID forwards the page request's correlation ID.
*/
func TestRoundTrip_ReusesRequestID(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = request.Header.Get("X-Request-ID")
	}))
	defer server.Close()

	client := &http.Client{Transport: transport.New(&tokenStore{})}
	ctx := ctxutil.WithRequestID(context.Background(), "rid-123")
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	response, err := client.Do(request)
	require.NoError(t, err)
	response.Body.Close()

	assert.Equal(t, "rid-123", seen)
}

/*
TestRoundTrip_UnauthorizedOnce clears the session and navigates to /login exactly once.
*/
func TestRoundTrip_UnauthorizedOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := &tokenStore{token: "stale"}
	recorder := &navigations{}
	invalidations := 0
	client := &http.Client{}
	client.Transport = transport.New(store,
		transport.WithNavigator(recorder),
		transport.WithInvalidator(transport.InvalidatorFunc(func(ctx context.Context) {
			invalidations++
			store.clear()

			// A follow-up call made while reacting must not re-trigger the handler.
			nested, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/auth/me", nil)
			require.NoError(t, err)
			response, err := client.Do(nested)
			require.NoError(t, err)
			response.Body.Close()

			assert.True(t, transport.UnauthorizedHandled(ctx))
		})),
	)

	ctx := ctxutil.WithLocation(context.Background(), "/plants?page=2")
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/plants", nil)
	require.NoError(t, err)

	response, err := client.Do(request)
	require.NoError(t, err)
	response.Body.Close()

	// The caller still sees the 401 itself.
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
	assert.Equal(t, 1, invalidations)
	require.Equal(t, 1, recorder.count())
	assert.Equal(t, navigation.Target{Path: "/login", From: "/plants?page=2"}, recorder.calls[0])

	token, _ := store.LoadToken(context.Background())
	assert.Empty(t, token)
}

/*
TestRoundTrip_UnauthorizedNotGloballySuppressed reacts again to a later, unrelated 401.
*/
func TestRoundTrip_UnauthorizedNotGloballySuppressed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	recorder := &navigations{}
	client := &http.Client{Transport: transport.New(&tokenStore{token: "t"}, transport.WithNavigator(recorder))}

	for range 2 {
		response, err := client.Get(server.URL)
		require.NoError(t, err)
		response.Body.Close()
	}

	assert.Equal(t, 2, recorder.count())
}

/*
TestRoundTrip_WithoutInvalidation ignores a 401 on a marked context only.
*/
func TestRoundTrip_WithoutInvalidation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	recorder := &navigations{}
	var invalidations int
	client := &http.Client{Transport: transport.New(&tokenStore{token: "t"},
		transport.WithNavigator(recorder),
		transport.WithInvalidator(transport.InvalidatorFunc(func(context.Context) { invalidations++ })),
	)}

	// 1. Marked: the 401 reaches the caller and nothing else
	request, err := http.NewRequestWithContext(transport.WithoutInvalidation(context.Background()), http.MethodHead, server.URL, nil)
	require.NoError(t, err)
	response, err := client.Do(request)
	require.NoError(t, err)
	response.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
	assert.Zero(t, recorder.count())
	assert.Zero(t, invalidations)

	// 2. Unmarked requests still sign out
	response, err = client.Get(server.URL)
	require.NoError(t, err)
	response.Body.Close()

	assert.Equal(t, 1, recorder.count())
	assert.Equal(t, 1, invalidations)
}

/*
TestRoundTrip_OtherStatusesPassThrough leaves non-401 failures to the caller.
*/
func TestRoundTrip_OtherStatusesPassThrough(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		calls++
		writer.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	recorder := &navigations{}
	client := &http.Client{Transport: transport.New(&tokenStore{token: "t"}, transport.WithNavigator(recorder))}

	response, err := client.Get(server.URL)
	require.NoError(t, err)
	response.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, response.StatusCode)
	assert.Equal(t, 1, calls, "no retries")
	assert.Zero(t, recorder.count())
}

/*
TestRoundTrip_UnreadableStoreSendsAnonymous falls back to an unauthenticated call.
*/
func TestRoundTrip_UnreadableStoreSendsAnonymous(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = request.Header.Get("Authorization")
	}))
	defer server.Close()

	store := &tokenStore{token: "t", err: errors.New("redis: connection refused")}
	client := &http.Client{Transport: transport.New(store)}

	response, err := client.Get(server.URL)
	require.NoError(t, err)
	response.Body.Close()

	assert.Empty(t, seen)
}

/*
TestRoundTrip_RateLimitHonoursContext aborts a throttled call when the context ends.
*/
func TestRoundTrip_RateLimitHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	defer server.Close()

	client := &http.Client{Transport: transport.New(&tokenStore{}, transport.WithRateLimit(0.001, 1))}

	// 1. The burst admits the first call
	response, err := client.Get(server.URL)
	require.NoError(t, err)
	response.Body.Close()

	// 2. The second would wait far beyond the deadline
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	_, err = client.Do(request)
	assert.Error(t, err)
}
