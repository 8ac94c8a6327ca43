// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package app_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hortus/internal/app"
	"github.com/taibuivan/hortus/internal/core/plant"
	"github.com/taibuivan/hortus/internal/platform/config"
	"github.com/taibuivan/hortus/internal/platform/navigation"
	"github.com/taibuivan/hortus/internal/users/auth"
	"github.com/taibuivan/hortus/pkg/pagination"
)

func memoryConfig(apiURL string) *config.Config {
	return &config.Config{
		APIBaseURL:     apiURL,
		SessionBackend: config.BackendMemory,
	}
}

/*
TestNew_EndToEndSession logs in, then loses the session to a 401 on a later call.
*/
func TestNew_EndToEndSession(t *testing.T) {
	var rejected atomic.Bool
	api := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/auth/login":
			_, _ = writer.Write([]byte(`{"user":{"id":1,"username":"bot","role":"Botanist"},"token":"tok-1"}`))
		case "/api/plants":
			if rejected.Load() {
				writer.WriteHeader(http.StatusUnauthorized)
				return
			}
			assert.Equal(t, "Bearer tok-1", request.Header.Get("Authorization"))
			_, _ = writer.Write([]byte(`{"data":[],"pagination":{"total":0,"page":1,"limit":10,"totalPages":0}}`))
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer api.Close()

	history := navigation.NewHistory()
	wired, err := app.New(context.Background(), memoryConfig(api.URL+"/api"), app.NewLogger(io.Discard, slog.LevelError), history)
	require.NoError(t, err)
	defer wired.Close()

	ctx := context.Background()
	assert.Equal(t, auth.StatusAnonymous, wired.Restore(ctx).Status)

	require.NoError(t, wired.Manager.Login(ctx, auth.Credentials{Username: "bot", Password: "pw"}))
	_, err = wired.Plants.ListPlants(ctx, defaultPage(), defaultFilters())
	require.NoError(t, err)

	// The API revokes the token.
	rejected.Store(true)
	_, err = wired.Plants.ListPlants(ctx, defaultPage(), defaultFilters())
	require.Error(t, err)

	session := wired.Manager.Session()
	assert.False(t, session.IsAuthenticated)
	assert.Equal(t, auth.MsgSessionExpired, session.Error)

	token, err := wired.Store.LoadToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	target, ok := history.Pending()
	require.True(t, ok)
	assert.Equal(t, "/login", target.Path)
}

/*
TestClient_PingKeepsSession polls an API root that answers 401 and expects the
session and the navigation to stay as they were.
*/
func TestClient_PingKeepsSession(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/api/auth/login" {
			_, _ = writer.Write([]byte(`{"user":{"id":1,"username":"bot","role":"Botanist"},"token":"tok-1"}`))
			return
		}
		writer.WriteHeader(http.StatusUnauthorized)
	}))
	defer api.Close()

	history := navigation.NewHistory()
	wired, err := app.New(context.Background(), memoryConfig(api.URL+"/api"), app.NewLogger(io.Discard, slog.LevelError), history)
	require.NoError(t, err)
	defer wired.Close()

	ctx := context.Background()
	wired.Restore(ctx)
	require.NoError(t, wired.Manager.Login(ctx, auth.Credentials{Username: "bot", Password: "pw"}))

	assert.NoError(t, wired.Client.Ping(ctx))

	_, pending := history.Pending()
	assert.False(t, pending)
	assert.True(t, wired.Manager.Session().IsAuthenticated)

	token, err := wired.Store.LoadToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

/*
TestNew_RedisBackend connects to Redis and reports it healthy.
*/
func TestNew_RedisBackend(t *testing.T) {
	server := miniredis.RunT(t)

	cfg := memoryConfig("http://127.0.0.1:1/api")
	cfg.SessionBackend = config.BackendRedis
	cfg.RedisURL = "redis://" + server.Addr() + "/0"

	wired, err := app.New(context.Background(), cfg, app.NewLogger(io.Discard, slog.LevelError), navigation.NewHistory())
	require.NoError(t, err)
	defer wired.Close()

	assert.IsType(t, &auth.RedisStore{}, wired.Store)
	assert.NoError(t, wired.CheckCache(context.Background()))
}

/*
TestNew_FileBackendDefault keeps the session in a file under SESSION_DIR.
*/
func TestNew_FileBackendDefault(t *testing.T) {
	cfg := memoryConfig("http://127.0.0.1:1/api")
	cfg.SessionBackend = config.BackendFile
	cfg.SessionDir = t.TempDir()

	wired, err := app.New(context.Background(), cfg, app.NewLogger(io.Discard, slog.LevelError), navigation.NewHistory())
	require.NoError(t, err)

	store, ok := wired.Store.(*auth.FileStore)
	require.True(t, ok)
	assert.Equal(t, cfg.SessionPath(), store.Path())
	assert.NoError(t, wired.CheckCache(context.Background()))
}

func defaultPage() pagination.Params { return pagination.Params{} }

func defaultFilters() plant.Filters { return plant.Filters{} }
