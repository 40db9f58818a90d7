// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hackthethrone/eventsite/internal/kv"
	"github.com/hackthethrone/eventsite/internal/registration"
)

// RegisterHandler accepts team registration submissions.
type RegisterHandler struct {
	svc *registration.Service
}

// NewRegisterHandler creates a new registration handler.
func NewRegisterHandler(svc *registration.Service) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

// Register handles POST /api/register.
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload registration.Payload
	if err := decodeBody(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.svc.Register(r.Context(), &payload)
	if err != nil {
		var vErr *registration.ValidationError
		if errors.As(err, &vErr) {
			writeJSONError(w, http.StatusBadRequest, vErr.Message)
			return
		}
		var cErr *registration.ConflictError
		if errors.As(err, &cErr) {
			// A duplicate USN inside one submission is a form mistake,
			// not a conflict with stored state.
			status := http.StatusConflict
			if cErr.InTeam {
				status = http.StatusBadRequest
			}
			writeJSONStatus(w, status, map[string]any{
				"ok":    false,
				"error": cErr.Message,
			})
			return
		}
		if errors.Is(err, kv.ErrNotConfigured) {
			writeJSONError(w, http.StatusInternalServerError, "Storage not configured")
			return
		}
		slog.Error("failed to save registration", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Registration failed. Please try again.")
		return
	}

	slog.Info("team registered",
		"id", rec.ID,
		"team", rec.TeamName,
		"tag", rec.TeamTag,
		"track", rec.Track)
	writeJSONSuccess(w, map[string]any{
		"id":      rec.ID,
		"teamTag": rec.TeamTag,
		"track":   rec.Track,
	})
}
