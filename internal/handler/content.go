// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hackthethrone/eventsite/internal/kv"
	"github.com/hackthethrone/eventsite/internal/model"
	"github.com/hackthethrone/eventsite/internal/store"
)

// ContentHandler serves the landing page content document.
type ContentHandler struct {
	repo *store.ContentRepo
}

// NewContentHandler creates a new content handler.
func NewContentHandler(repo *store.ContentRepo) *ContentHandler {
	return &ContentHandler{repo: repo}
}

// Get handles GET /api/content. A missing document is a 404 so the
// frontend can fall back to its bundled defaults.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	content, err := h.repo.Read(r.Context())
	if err != nil {
		if errors.Is(err, kv.ErrNotConfigured) {
			writeJSONError(w, http.StatusInternalServerError, "Storage not configured")
			return
		}
		slog.Error("failed to read content", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load content")
		return
	}
	if content == nil {
		writeJSONStatus(w, http.StatusNotFound, map[string]any{
			"ok":      false,
			"message": "No content stored",
		})
		return
	}

	resp := map[string]any{"content": content}
	if ts, err := h.repo.UpdatedAt(r.Context()); err == nil && ts > 0 {
		resp["updatedAt"] = ts
	}
	writeJSONSuccess(w, resp)
}

// Update handles POST /api/content, replacing the stored document.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var content model.Content
	if err := decodeBody(w, r, &content); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	content.Normalize()
	if err := content.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.Write(r.Context(), &content); err != nil {
		if errors.Is(err, kv.ErrNotConfigured) {
			writeJSONError(w, http.StatusInternalServerError, "Storage not configured")
			return
		}
		slog.Error("failed to write content", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to save content")
		return
	}
	writeJSONSuccess(w, nil)
}
