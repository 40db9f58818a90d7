// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
//
// The storage and admin variables keep their deployment-platform names
// (they are injected by the hosting provider); service-level settings
// use the EVENTSITE_ prefix.
type Config struct {
	// Managed key-value service (request/response API). Presence of
	// KVRestURL selects this backend.
	KVRestURL   string `env:"KV_REST_API_URL"`
	KVRestToken string `env:"KV_REST_API_TOKEN"`

	// Connection-based backend, used when the managed service is not
	// configured.
	RedisURL string `env:"REDIS_URL"`

	// AdminToken gates the admin endpoints. Empty means ungated.
	AdminToken string `env:"ADMIN_TOKEN"`

	ServerHost string `env:"EVENTSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"EVENTSITE_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"EVENTSITE_ENV" envDefault:"development"`
	LogLevel   string `env:"EVENTSITE_LOG_LEVEL" envDefault:"info"`

	// KeyPrefix is prepended to every storage key.
	KeyPrefix string `env:"EVENTSITE_KEY_PREFIX" envDefault:""`

	// ListMax caps the registrations page size.
	ListMax int `env:"EVENTSITE_LIST_MAX" envDefault:"500"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseManagedKV returns true if the managed key-value service is configured.
func (c Config) UseManagedKV() bool {
	return c.KVRestURL != ""
}

// UseRedis returns true if the Redis backend is configured.
func (c Config) UseRedis() bool {
	return c.RedisURL != ""
}

// StorageConfigured returns true if any storage backend is configured.
func (c Config) StorageConfigured() bool {
	return c.UseManagedKV() || c.UseRedis()
}

// AdminGated returns true if admin endpoints require a token.
func (c Config) AdminGated() bool {
	return c.AdminToken != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.UseManagedKV() && cfg.KVRestToken == "" {
		return nil, fmt.Errorf("KV_REST_API_URL is set but KV_REST_API_TOKEN is missing")
	}
	if cfg.ListMax < 1 {
		return nil, fmt.Errorf("EVENTSITE_LIST_MAX must be positive, got %d", cfg.ListMax)
	}

	return cfg, nil
}
