// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to the composition root, never read globally.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Session Backends

const (
	// BackendFile keeps the session in a JSON file under SessionDir.
	BackendFile = "file"

	// BackendRedis keeps the session in Redis, shared by every shell on the host.
	BackendRedis = "redis"

	// BackendMemory keeps the session for the lifetime of the process only.
	BackendMemory = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the Hortus front-end.
type Config struct {

	// Local web shell
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Garden REST API
	APIBaseURL string        `env:"HORTUS_API_URL"  envDefault:"http://localhost:5000/api"`
	APITimeout time.Duration `env:"API_TIMEOUT"     envDefault:"15s"`

	// Client-side throttle on outbound API calls. Zero RPS disables it.
	APIRateLimitRPS   float64 `env:"API_RATE_LIMIT_RPS"   envDefault:"20"`
	APIRateLimitBurst int     `env:"API_RATE_LIMIT_BURST" envDefault:"40"`

	// Persisted session
	SessionBackend string `env:"SESSION_BACKEND" envDefault:"file"`
	SessionDir     string `env:"SESSION_DIR"`

	// SessionOrigin scopes the stored session. Defaults to the API host.
	SessionOrigin string `env:"SESSION_ORIGIN"`

	// Key-Value store (Redis), required for the redis backend only
	RedisURL string `env:"REDIS_URL"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required when SESSION_BACKEND=%s", BackendRedis)
		}
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.SessionBackend)
	}

	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: HORTUS_API_URL must be an absolute URL, got %q", c.APIBaseURL)
	}

	if c.APIRateLimitRPS < 0 || c.APIRateLimitBurst < 0 {
		return fmt.Errorf("config: API rate limit values must not be negative")
	}

	return nil
}

// Origin returns the scope under which the session is persisted.
//
// Like browser storage, a session saved against one API host is invisible
// to a shell pointed at another.
func (c *Config) Origin() string {
	if c.SessionOrigin != "" {
		return c.SessionOrigin
	}
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || parsed.Host == "" {
		return "default"
	}
	return parsed.Host
}

// SessionPath returns the file used by the file session backend.
func (c *Config) SessionPath() string {
	dir := c.SessionDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = os.TempDir()
		}
		dir = filepath.Join(base, "hortus")
	}
	return filepath.Join(dir, sanitize(c.Origin())+".session.json")
}

// IsDevelopment reports whether the shell is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the shell is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// sanitize turns an origin like "api.garden.local:5000" into a file-safe name.
func sanitize(origin string) string {
	replacer := strings.NewReplacer(":", "_", "/", "_", "\\", "_")
	return replacer.Replace(origin)
}
