// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hackthethrone/eventsite/internal/kv"
	"github.com/hackthethrone/eventsite/internal/model"
	"github.com/hackthethrone/eventsite/internal/store"
)

// defaultListLimit is applied when the list request carries no limit.
const defaultListLimit = 100

// RegistrationsHandler serves the admin registration endpoints.
type RegistrationsHandler struct {
	repo    *store.RegistrationRepo
	listMax int
}

// NewRegistrationsHandler creates a new admin registrations handler.
// listMax caps the page size for list requests.
func NewRegistrationsHandler(repo *store.RegistrationRepo, listMax int) *RegistrationsHandler {
	if listMax < 1 {
		listMax = defaultListLimit
	}
	return &RegistrationsHandler{repo: repo, listMax: listMax}
}

// parseLimit clamps the limit query parameter to [1, listMax].
func (h *RegistrationsHandler) parseLimit(r *http.Request) int {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > h.listMax {
		limit = h.listMax
	}
	return limit
}

// List handles GET /api/registrations, newest first.
func (h *RegistrationsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := h.parseLimit(r)

	regs, err := h.repo.List(r.Context(), int64(limit))
	if err != nil {
		if errors.Is(err, kv.ErrNotConfigured) {
			writeJSONError(w, http.StatusInternalServerError, "Storage not configured")
			return
		}
		slog.Error("failed to list registrations", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load registrations")
		return
	}

	total := h.repo.Count(r.Context())

	if regs == nil {
		regs = []*model.Registration{}
	}
	writeJSONSuccess(w, map[string]any{
		"registrations": regs,
		"count":         len(regs),
		"total":         total,
	})
}

// Delete handles DELETE /api/registrations. With ?all=true every
// registration and the index are removed; otherwise ?id= names a
// single record. Deleting an absent id is a no-op success.
func (h *RegistrationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") == "true" {
		deleted, err := h.repo.DeleteAll(r.Context())
		if err != nil {
			if errors.Is(err, kv.ErrNotConfigured) {
				writeJSONError(w, http.StatusInternalServerError, "Storage not configured")
				return
			}
			slog.Error("failed to delete registrations", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to delete registrations")
			return
		}
		slog.Info("all registrations deleted", "count", deleted)
		writeJSONSuccess(w, map[string]any{"deleted": deleted})
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing id")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, kv.ErrNotConfigured) {
			writeJSONError(w, http.StatusInternalServerError, "Storage not configured")
			return
		}
		slog.Error("failed to delete registration", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete registration")
		return
	}
	writeJSONSuccess(w, map[string]any{"deleted": id})
}

// csvHeader is the export column order. Member columns repeat in
// name/usn/hackathons triples for slots 1 through 5.
var csvHeader = []string{
	"id", "createdAt", "teamTag", "teamName", "track", "advancedMembers",
	"leaderName", "leaderSection", "leaderUSN", "leaderWhatsapp", "leaderEmail", "leaderHackathons",
	"member1Name", "member1USN", "member1Hackathons",
	"member2Name", "member2USN", "member2Hackathons",
	"member3Name", "member3USN", "member3Hackathons",
	"member4Name", "member4USN", "member4Hackathons",
	"member5Name", "member5USN", "member5Hackathons",
}

// Export handles GET /api/registrations/export, streaming every
// registration as CSV, newest first.
func (h *RegistrationsHandler) Export(w http.ResponseWriter, r *http.Request) {
	regs, err := h.repo.ListAll(r.Context())
	if err != nil {
		if errors.Is(err, kv.ErrNotConfigured) {
			writeJSONError(w, http.StatusInternalServerError, "Storage not configured")
			return
		}
		slog.Error("failed to export registrations", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to export registrations")
		return
	}

	filename := fmt.Sprintf("registrations-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		slog.Error("failed to write csv header", "error", err)
		return
	}
	for _, reg := range regs {
		if err := cw.Write(csvRow(reg)); err != nil {
			slog.Error("failed to write csv row", "id", reg.ID, "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("failed to flush csv", "error", err)
	}
}

// csvRow flattens a registration into the export column order.
func csvRow(reg *model.Registration) []string {
	createdAt := time.UnixMilli(reg.CreatedAt).UTC().Format(time.RFC3339)
	row := []string{
		reg.ID, createdAt, reg.TeamTag, reg.TeamName, reg.Track,
		strconv.Itoa(reg.AdvancedMembers),
		reg.LeaderName, reg.LeaderSection, reg.LeaderUSN,
		reg.LeaderWhatsapp, reg.LeaderEmail, reg.LeaderHackathons,
	}
	for _, m := range []struct{ name, usn, hackathons string }{
		{reg.Member1Name, reg.Member1USN, reg.Member1Hackathons},
		{reg.Member2Name, reg.Member2USN, reg.Member2Hackathons},
		{reg.Member3Name, reg.Member3USN, reg.Member3Hackathons},
		{reg.Member4Name, reg.Member4USN, reg.Member4Hackathons},
		{reg.Member5Name, reg.Member5USN, reg.Member5Hackathons},
	} {
		row = append(row, m.name, m.usn, m.hackathons)
	}
	return row
}
