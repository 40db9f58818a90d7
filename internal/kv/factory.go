// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"time"
)

// Config holds configuration for store creation.
type Config struct {
	// RESTURL is the managed service endpoint. When set (together with
	// RESTToken) the managed backend is selected.
	RESTURL string

	// RESTToken is the bearer token for the managed service.
	RESTToken string

	// RedisURL selects the connection-based backend when no managed
	// service is configured.
	RedisURL string

	// Prefix is prepended to every key.
	Prefix string

	// RequestTimeout bounds managed-service round-trips.
	RequestTimeout time.Duration
}

// New creates a store from configuration. Selection happens once, here:
// the managed backend wins when configured, then the Redis URL, and
// with neither present the unconfigured store is returned (not an
// error — read paths must still serve "nothing published").
func New(cfg Config) (Store, error) {
	switch {
	case cfg.RESTURL != "":
		return NewRESTStore(RESTStoreOptions{
			URL:            cfg.RESTURL,
			Token:          cfg.RESTToken,
			Prefix:         cfg.Prefix,
			RequestTimeout: cfg.RequestTimeout,
		})
	case cfg.RedisURL != "":
		return NewRedisStoreFromURL(cfg.RedisURL, cfg.Prefix)
	default:
		return NewUnconfiguredStore(), nil
	}
}
