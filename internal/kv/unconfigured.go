// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"
)

// UnconfiguredStore is the backend of last resort when no storage is
// configured. Every write fails with ErrNotConfigured so callers can
// report the condition; reads degrade to "nothing stored" so public
// pages keep working without a backend.
type UnconfiguredStore struct{}

// NewUnconfiguredStore returns the no-backend store.
func NewUnconfiguredStore() *UnconfiguredStore {
	return &UnconfiguredStore{}
}

func (*UnconfiguredStore) Get(context.Context, string) (string, error) {
	return "", ErrNil
}

func (*UnconfiguredStore) Set(context.Context, string, string) error {
	return ErrNotConfigured
}

func (*UnconfiguredStore) Del(context.Context, ...string) error {
	return ErrNotConfigured
}

func (*UnconfiguredStore) HSet(context.Context, string, map[string]string) error {
	return ErrNotConfigured
}

func (*UnconfiguredStore) HGetAll(context.Context, string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (*UnconfiguredStore) ZAdd(context.Context, string, float64, string) error {
	return ErrNotConfigured
}

func (*UnconfiguredStore) ZRange(context.Context, string, int64, int64) ([]string, error) {
	return nil, nil
}

func (*UnconfiguredStore) ZRevRange(context.Context, string, int64, int64) ([]string, error) {
	return nil, nil
}

func (*UnconfiguredStore) ZRem(context.Context, string, ...string) error {
	return ErrNotConfigured
}

func (*UnconfiguredStore) ZCard(context.Context, string) (int64, error) {
	return 0, nil
}

func (*UnconfiguredStore) Ping(context.Context) error {
	return ErrNotConfigured
}

func (*UnconfiguredStore) Close() error {
	return nil
}

// Ensure UnconfiguredStore implements Store.
var _ Store = (*UnconfiguredStore)(nil)
