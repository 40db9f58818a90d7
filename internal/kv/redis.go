// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the connection-based backend reached by URL.
// It holds one shared client for the process lifetime.
type RedisStore struct {
	client *redis.Client
	prefix string
	closed atomic.Bool
}

// RedisStoreOptions configures the Redis store.
type RedisStoreOptions struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Prefix is prepended to all keys (e.g., "eventsite:")
	Prefix string

	// PoolSize is the maximum number of connections (0 = use default)
	PoolSize int

	// ConnectTimeout is the timeout for establishing a connection
	ConnectTimeout time.Duration

	// ReadTimeout is the timeout for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for write operations
	WriteTimeout time.Duration
}

// DefaultRedisStoreOptions returns sensible defaults.
func DefaultRedisStoreOptions() RedisStoreOptions {
	return RedisStoreOptions{
		PoolSize:       10,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
	}
}

// NewRedisStore creates a Redis store with the given options and
// verifies the connection with a ping.
func NewRedisStore(opts RedisStoreOptions) (*RedisStore, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}

	if opts.PoolSize > 0 {
		redisOpts.PoolSize = opts.PoolSize
	}
	if opts.ConnectTimeout > 0 {
		redisOpts.DialTimeout = opts.ConnectTimeout
	}
	if opts.ReadTimeout > 0 {
		redisOpts.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		redisOpts.WriteTimeout = opts.WriteTimeout
	}

	client := redis.NewClient(redisOpts)

	pingTimeout := opts.ConnectTimeout
	if pingTimeout == 0 {
		pingTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisStore{
		client: client,
		prefix: opts.Prefix,
	}, nil
}

// NewRedisStoreFromURL creates a Redis store from just a URL with default options.
func NewRedisStoreFromURL(url, prefix string) (*RedisStore, error) {
	opts := DefaultRedisStoreOptions()
	opts.URL = url
	opts.Prefix = prefix
	return NewRedisStore(opts)
}

// prefixKey adds the store prefix to a key.
func (s *RedisStore) prefixKey(key string) string {
	return s.prefix + key
}

// Get retrieves a plain string value.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	if s.closed.Load() {
		return "", ErrClosed
	}

	val, err := s.client.Get(ctx, s.prefixKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNil
		}
		return "", err
	}
	return val, nil
}

// Set stores a plain string value with no expiry.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.client.Set(ctx, s.prefixKey(key), value, 0).Err()
}

// Del removes one or more keys.
func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.prefixKey(k)
	}
	return s.client.Del(ctx, prefixed...).Err()
}

// HSet writes the given fields into a hash. Empty-string values are
// stripped before the write; Redis hashes treat an empty field value
// the same as a present one, which would defeat the repositories'
// "empty means unset" convention on read-back.
func (s *RedisStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	filtered := stripEmptyFields(fields)
	if len(filtered) == 0 {
		return nil
	}
	return s.client.HSet(ctx, s.prefixKey(key), filtered).Err()
}

// stripEmptyFields drops fields whose value is the empty string.
func stripEmptyFields(fields map[string]string) map[string]string {
	filtered := make(map[string]string, len(fields))
	for k, v := range fields {
		if v == "" {
			continue
		}
		filtered[k] = v
	}
	return filtered
}

// HGetAll returns all fields of a hash. Absent keys yield an empty map.
func (s *RedisStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	return s.client.HGetAll(ctx, s.prefixKey(key)).Result()
}

// ZAdd adds a member with the given score to a sorted set.
func (s *RedisStore) ZAdd(ctx context.Context, key string, score float64, member string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.client.ZAdd(ctx, s.prefixKey(key), redis.Z{Score: score, Member: member}).Err()
}

// ZRange returns members by ascending score in [start, stop].
func (s *RedisStore) ZRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	return s.client.ZRange(ctx, s.prefixKey(key), start, stop).Result()
}

// ZRevRange returns members by descending score in [start, stop].
func (s *RedisStore) ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	return s.client.ZRevRange(ctx, s.prefixKey(key), start, stop).Result()
}

// ZRem removes members from a sorted set.
func (s *RedisStore) ZRem(ctx context.Context, key string, members ...string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if len(members) == 0 {
		return nil
	}

	args := make([]any, len(members))
	for i, m := range members {
		args[i] = m
	}
	return s.client.ZRem(ctx, s.prefixKey(key), args...).Err()
}

// ZCard returns the cardinality of a sorted set.
func (s *RedisStore) ZCard(ctx context.Context, key string) (int64, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	return s.client.ZCard(ctx, s.prefixKey(key)).Result()
}

// Ping checks if the Redis connection is healthy.
func (s *RedisStore) Ping(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		return s.client.Close()
	}
	return nil
}

// Client returns the underlying Redis client for advanced operations.
// Use with caution.
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
