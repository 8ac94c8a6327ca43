// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hortus/internal/platform/config"
)

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

/*
TestLoad_Defaults verifies the defaults applied when nothing is set.
*/
func TestLoad_Defaults(t *testing.T) {
	unsetenv(t, "HORTUS_API_URL", "SESSION_BACKEND", "SERVER_PORT", "ENVIRONMENT", "SESSION_ORIGIN", "API_RATE_LIMIT_RPS", "API_RATE_LIMIT_BURST")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, config.BackendFile, cfg.SessionBackend)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost:5000", cfg.Origin())
	assert.True(t, cfg.IsDevelopment())
}

/*
TestLoad_RedisRequiresURL rejects a redis backend without REDIS_URL.
*/
func TestLoad_RedisRequiresURL(t *testing.T) {
	unsetenv(t, "REDIS_URL", "HORTUS_API_URL")
	t.Setenv("SESSION_BACKEND", "redis")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

/*
TestConfig_Validate covers backend and URL validation.
*/
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"file_backend", config.Config{SessionBackend: "file", APIBaseURL: "http://api.local"}, false},
		{"memory_backend", config.Config{SessionBackend: "memory", APIBaseURL: "https://api.local/v1"}, false},
		{"redis_with_url", config.Config{SessionBackend: "redis", RedisURL: "redis://localhost:6379/0", APIBaseURL: "http://api.local"}, false},
		{"unknown_backend", config.Config{SessionBackend: "cookie", APIBaseURL: "http://api.local"}, true},
		{"relative_api_url", config.Config{SessionBackend: "file", APIBaseURL: "/api"}, true},
		{"negative_rate", config.Config{SessionBackend: "file", APIBaseURL: "http://api.local", APIRateLimitRPS: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestConfig_SessionPath scopes the session file by origin.
*/
func TestConfig_SessionPath(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{APIBaseURL: "http://garden.local:5000/api", SessionDir: dir}

	assert.Equal(t, filepath.Join(dir, "garden.local_5000.session.json"), cfg.SessionPath())

	cfg.SessionOrigin = "staging"
	assert.Equal(t, filepath.Join(dir, "staging.session.json"), cfg.SessionPath())
}
