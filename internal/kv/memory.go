// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
)

// MemoryStore is a thread-safe in-memory Store implementation.
// It backs tests and local development without external storage.
type MemoryStore struct {
	mu      sync.RWMutex
	strings map[string]string
	hashes  map[string]map[string]string
	zsets   map[string]map[string]float64
	closed  atomic.Bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		strings: make(map[string]string),
		hashes:  make(map[string]map[string]string),
		zsets:   make(map[string]map[string]float64),
	}
}

// Get retrieves a plain string value.
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	if s.closed.Load() {
		return "", ErrClosed
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.strings[key]
	if !ok {
		return "", ErrNil
	}
	return val, nil
}

// Set stores a plain string value.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.strings[key] = value
	return nil
}

// Del removes keys of any type.
func (s *MemoryStore) Del(_ context.Context, keys ...string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.strings, k)
		delete(s.hashes, k)
		delete(s.zsets, k)
	}
	return nil
}

// HSet writes fields into a hash, creating it if needed.
func (s *MemoryStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hashes[key]
	if !ok {
		h = make(map[string]string, len(fields))
		s.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

// HGetAll returns a copy of all fields of a hash.
func (s *MemoryStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.hashes[key]
	if !ok {
		return map[string]string{}, nil
	}
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out, nil
}

// ZAdd adds or updates a member in a sorted set.
func (s *MemoryStore) ZAdd(_ context.Context, key string, score float64, member string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	z, ok := s.zsets[key]
	if !ok {
		z = make(map[string]float64)
		s.zsets[key] = z
	}
	z[member] = score
	return nil
}

// sortedMembers returns the members of a sorted set ordered by
// ascending score, ties broken lexically (Redis ordering).
func (s *MemoryStore) sortedMembers(key string) []string {
	z := s.zsets[key]
	members := make([]string, 0, len(z))
	for m := range z {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		si, sj := z[members[i]], z[members[j]]
		if si != sj {
			return si < sj
		}
		return members[i] < members[j]
	})
	return members
}

// rangeSlice applies Redis-style [start, stop] index semantics,
// including negative indexes, to an ordered member slice.
func rangeSlice(members []string, start, stop int64) []string {
	n := int64(len(members))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start > stop || start >= n {
		return nil
	}
	return members[start : stop+1]
}

// ZRange returns members by ascending score in [start, stop].
func (s *MemoryStore) ZRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return rangeSlice(s.sortedMembers(key), start, stop), nil
}

// ZRevRange returns members by descending score in [start, stop].
func (s *MemoryStore) ZRevRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	asc := s.sortedMembers(key)
	desc := make([]string, len(asc))
	for i, m := range asc {
		desc[len(asc)-1-i] = m
	}
	return rangeSlice(desc, start, stop), nil
}

// ZRem removes members from a sorted set.
func (s *MemoryStore) ZRem(_ context.Context, key string, members ...string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	z, ok := s.zsets[key]
	if !ok {
		return nil
	}
	for _, m := range members {
		delete(z, m)
	}
	if len(z) == 0 {
		delete(s.zsets, key)
	}
	return nil
}

// ZCard returns the cardinality of a sorted set.
func (s *MemoryStore) ZCard(_ context.Context, key string) (int64, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.zsets[key])), nil
}

// Ping always succeeds while the store is open.
func (s *MemoryStore) Ping(_ context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.closed.Store(true)
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
