// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package kv provides the key-value storage layer for the event site.
package kv

import (
	"context"
)

// Store defines the operations the repositories need from a key-value
// backend. All implementations must be thread-safe.
// Values are strings on the wire; both backends store hash fields and
// plain keys as strings.
type Store interface {
	// Get retrieves a plain string value.
	// Returns ErrNil if the key does not exist.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a plain string value with no expiry.
	Set(ctx context.Context, key, value string) error

	// Del removes one or more keys. Missing keys are not an error.
	Del(ctx context.Context, keys ...string) error

	// HSet writes the given fields into a hash.
	HSet(ctx context.Context, key string, fields map[string]string) error

	// HGetAll returns all fields of a hash.
	// Returns an empty map if the key does not exist.
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	// ZAdd adds a member with the given score to a sorted set.
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZRange returns members by ascending score in the index range
	// [start, stop]. Negative indexes count from the end.
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// ZRevRange returns members by descending score in the index range
	// [start, stop].
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// ZRem removes members from a sorted set. Missing members are not an error.
	ZRem(ctx context.Context, key string, members ...string) error

	// ZCard returns the cardinality of a sorted set (0 if absent).
	ZCard(ctx context.Context, key string) (int64, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// Error represents an error type for store operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNil indicates the key was not found.
	ErrNil Error = "kv: nil"

	// ErrNotConfigured indicates no storage backend is configured.
	// Write paths must surface this; read paths degrade to absent.
	ErrNotConfigured Error = "storage not configured"

	// ErrClosed indicates the store has been closed.
	ErrClosed Error = "kv: store closed"
)
