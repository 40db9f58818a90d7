// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a custom slog handler that mirrors WARN and
// ERROR level logs into the KV store for later inspection.
package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hackthethrone/eventsite/internal/kv"
)

// keyEventLog is the sorted set holding mirrored log entries, scored by
// timestamp in milliseconds.
const keyEventLog = "events:log"

// maxEventLogEntries caps the mirrored log. Oldest entries are trimmed
// once the cap is exceeded.
const maxEventLogEntries = 1000

// eventEntry is the stored shape of one mirrored log record.
type eventEntry struct {
	Time    string            `json:"time"`
	Level   string            `json:"level"`
	Message string            `json:"message"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

// EventLogHandler is a slog.Handler that wraps another handler and also
// writes WARN and ERROR level logs to the KV store.
type EventLogHandler struct {
	inner slog.Handler
	store kv.Store
	level slog.Level
}

// NewEventLogHandler creates a handler that forwards everything to
// inner and mirrors records at WARN level and above into the store.
func NewEventLogHandler(inner slog.Handler, store kv.Store) *EventLogHandler {
	return &EventLogHandler{
		inner: inner,
		store: store,
		level: slog.LevelWarn,
	}
}

// NewEventLogHandlerWithLevel creates a handler with a custom minimum
// mirroring level.
func NewEventLogHandlerWithLevel(inner slog.Handler, store kv.Store, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner: inner,
		store: store,
		level: level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.mirror(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner: h.inner.WithAttrs(attrs),
		store: h.store,
		level: h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner: h.inner.WithGroup(name),
		store: h.store,
		level: h.level,
	}
}

// mirror writes one record into the sorted set and trims the oldest
// entries past the cap. Mirroring is best-effort: a store failure here
// must never fail the log call, and with storage unconfigured every
// write is a silent no-op. A background context is used so the entry
// lands even when the request context is already cancelled.
func (h *EventLogHandler) mirror(r slog.Record) {
	entry := eventEntry{
		Time:    r.Time.UTC().Format(time.RFC3339Nano),
		Level:   r.Level.String(),
		Message: r.Message,
	}
	if r.NumAttrs() > 0 {
		entry.Attrs = make(map[string]string, r.NumAttrs())
		r.Attrs(func(a slog.Attr) bool {
			entry.Attrs[a.Key] = a.Value.String()
			return true
		})
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.store.ZAdd(ctx, keyEventLog, float64(r.Time.UnixMilli()), string(payload)); err != nil {
		return
	}
	h.trim(ctx)
}

// trim drops the oldest entries once the set exceeds the cap.
func (h *EventLogHandler) trim(ctx context.Context) {
	n, err := h.store.ZCard(ctx, keyEventLog)
	if err != nil || n <= maxEventLogEntries {
		return
	}

	overflow := n - maxEventLogEntries
	oldest, err := h.store.ZRange(ctx, keyEventLog, 0, overflow-1)
	if err != nil || len(oldest) == 0 {
		return
	}
	_ = h.store.ZRem(ctx, keyEventLog, oldest...)
}
