// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"
)

// RESTStore is the managed request/response backend. It speaks the
// Upstash-style REST protocol used by hosted key-value services: each
// command is a JSON array POSTed to the service URL with a bearer
// token, and the reply carries a single "result" field.
type RESTStore struct {
	url    string
	token  string
	prefix string
	client *http.Client
	closed atomic.Bool
}

// RESTStoreOptions configures the REST store.
type RESTStoreOptions struct {
	// URL is the service endpoint (e.g., https://us1-xxxx.upstash.io)
	URL string

	// Token is the bearer token for the service.
	Token string

	// Prefix is prepended to all keys.
	Prefix string

	// RequestTimeout bounds each command round-trip.
	RequestTimeout time.Duration
}

// restMaxResponseLen caps how much of an unexpected response body is read.
const restMaxResponseLen = 1 << 20

// NewRESTStore creates a REST store. The service is request/response;
// no connection is held, so no ping is performed at construction.
func NewRESTStore(opts RESTStoreOptions) (*RESTStore, error) {
	if opts.URL == "" {
		return nil, errors.New("kv REST URL is required")
	}
	if opts.Token == "" {
		return nil, errors.New("kv REST token is required")
	}

	timeout := opts.RequestTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &RESTStore{
		url:    opts.URL,
		token:  opts.Token,
		prefix: opts.Prefix,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// restReply is the service's response envelope.
type restReply struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

// do sends one command and returns the raw result.
func (s *RESTStore) do(ctx context.Context, cmd ...any) (json.RawMessage, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	body, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("encoding command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, restMaxResponseLen))
	if err != nil {
		return nil, err
	}

	var reply restReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, fmt.Errorf("decoding reply (status %d): %w", resp.StatusCode, err)
	}
	if reply.Error != "" {
		return nil, fmt.Errorf("kv command failed: %s", reply.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kv service returned status %d", resp.StatusCode)
	}

	return reply.Result, nil
}

// prefixKey adds the store prefix to a key.
func (s *RESTStore) prefixKey(key string) string {
	return s.prefix + key
}

// resultString decodes a string result. Null means absent.
func resultString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", ErrNil
	}
	var val string
	if err := json.Unmarshal(raw, &val); err != nil {
		return "", err
	}
	return val, nil
}

// resultInt decodes an integer result.
func resultInt(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var val int64
	if err := json.Unmarshal(raw, &val); err != nil {
		return 0, err
	}
	return val, nil
}

// resultStrings decodes an array-of-strings result.
func resultStrings(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var vals []string
	if err := json.Unmarshal(raw, &vals); err != nil {
		return nil, err
	}
	return vals, nil
}

// Get retrieves a plain string value.
func (s *RESTStore) Get(ctx context.Context, key string) (string, error) {
	raw, err := s.do(ctx, "GET", s.prefixKey(key))
	if err != nil {
		return "", err
	}
	return resultString(raw)
}

// Set stores a plain string value with no expiry.
func (s *RESTStore) Set(ctx context.Context, key, value string) error {
	_, err := s.do(ctx, "SET", s.prefixKey(key), value)
	return err
}

// Del removes one or more keys.
func (s *RESTStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	cmd := make([]any, 0, len(keys)+1)
	cmd = append(cmd, "DEL")
	for _, k := range keys {
		cmd = append(cmd, s.prefixKey(k))
	}
	_, err := s.do(ctx, cmd...)
	return err
}

// HSet writes the given fields into a hash. The managed backend
// tolerates empty values natively, so nothing is stripped here.
func (s *RESTStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	cmd := make([]any, 0, len(fields)*2+2)
	cmd = append(cmd, "HSET", s.prefixKey(key))
	for k, v := range fields {
		cmd = append(cmd, k, v)
	}
	_, err := s.do(ctx, cmd...)
	return err
}

// HGetAll returns all fields of a hash. The service replies with a
// flat [field, value, field, value, ...] array.
func (s *RESTStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	raw, err := s.do(ctx, "HGETALL", s.prefixKey(key))
	if err != nil {
		return nil, err
	}

	flat, err := resultStrings(raw)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		fields[flat[i]] = flat[i+1]
	}
	return fields, nil
}

// ZAdd adds a member with the given score to a sorted set.
func (s *RESTStore) ZAdd(ctx context.Context, key string, score float64, member string) error {
	_, err := s.do(ctx, "ZADD", s.prefixKey(key), strconv.FormatFloat(score, 'f', -1, 64), member)
	return err
}

// ZRange returns members by ascending score in [start, stop].
func (s *RESTStore) ZRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	raw, err := s.do(ctx, "ZRANGE", s.prefixKey(key), start, stop)
	if err != nil {
		return nil, err
	}
	return resultStrings(raw)
}

// ZRevRange returns members by descending score in [start, stop].
func (s *RESTStore) ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	raw, err := s.do(ctx, "ZRANGE", s.prefixKey(key), start, stop, "REV")
	if err != nil {
		return nil, err
	}
	return resultStrings(raw)
}

// ZRem removes members from a sorted set.
func (s *RESTStore) ZRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	cmd := make([]any, 0, len(members)+2)
	cmd = append(cmd, "ZREM", s.prefixKey(key))
	for _, m := range members {
		cmd = append(cmd, m)
	}
	_, err := s.do(ctx, cmd...)
	return err
}

// ZCard returns the cardinality of a sorted set.
func (s *RESTStore) ZCard(ctx context.Context, key string) (int64, error) {
	raw, err := s.do(ctx, "ZCARD", s.prefixKey(key))
	if err != nil {
		return 0, err
	}
	return resultInt(raw)
}

// Ping checks that the service answers commands.
func (s *RESTStore) Ping(ctx context.Context) error {
	raw, err := s.do(ctx, "PING")
	if err != nil {
		return err
	}
	if _, err := resultString(raw); err != nil && !errors.Is(err, ErrNil) {
		return err
	}
	return nil
}

// Close marks the store closed. There is no connection to release.
func (s *RESTStore) Close() error {
	s.closed.Store(true)
	return nil
}

// Ensure RESTStore implements Store.
var _ Store = (*RESTStore)(nil)
