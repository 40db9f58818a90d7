// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides the content and registration repositories on
// top of the key-value storage layer.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hackthethrone/eventsite/internal/kv"
	"github.com/hackthethrone/eventsite/internal/model"
)

// Storage keys for the content singleton.
const (
	keyContent          = "content:current"
	keyContentUpdatedAt = "content:updatedAt"
)

// ContentRepo reads and writes the singleton event document.
type ContentRepo struct {
	kv kv.Store
}

// NewContentRepo creates a content repository on the given store.
func NewContentRepo(store kv.Store) *ContentRepo {
	return &ContentRepo{kv: store}
}

// Read fetches the published document. Returns (nil, nil) when nothing
// has been published; that is an expected state, not an error.
func (r *ContentRepo) Read(ctx context.Context) (*model.Content, error) {
	raw, err := r.kv.Get(ctx, keyContent)
	if errors.Is(err, kv.ErrNil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}

	var content model.Content
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	content.Normalize()
	return &content, nil
}

// Write overwrites the document and the last-updated marker. The caller
// validates; last writer wins.
func (r *ContentRepo) Write(ctx context.Context, content *model.Content) error {
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encoding content: %w", err)
	}
	if err := r.kv.Set(ctx, keyContent, string(data)); err != nil {
		return fmt.Errorf("writing content: %w", err)
	}
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if err := r.kv.Set(ctx, keyContentUpdatedAt, now); err != nil {
		return fmt.Errorf("writing content timestamp: %w", err)
	}
	return nil
}

// UpdatedAt returns the millisecond timestamp of the last write, or
// zero when no write has happened.
func (r *ContentRepo) UpdatedAt(ctx context.Context) (int64, error) {
	raw, err := r.kv.Get(ctx, keyContentUpdatedAt)
	if errors.Is(err, kv.ErrNil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing content timestamp: %w", err)
	}
	return ts, nil
}
