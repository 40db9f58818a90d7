// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hackthethrone/eventsite/internal/kv"
	"github.com/hackthethrone/eventsite/internal/testutil"
)

func TestHealthHealthy(t *testing.T) {
	h := NewHealthHandler(testutil.TestStore(t))

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := decodeJSON(t, rec)
	if body["status"] != "healthy" {
		t.Errorf("status = %v", body["status"])
	}
	checks := body["checks"].(map[string]any)
	storeCheck := checks["store"].(map[string]any)
	if storeCheck["status"] != "healthy" {
		t.Errorf("store check = %v", storeCheck)
	}
	if body["system"] != nil {
		t.Error("system info should be absent without verbose")
	}
}

func TestHealthVerbose(t *testing.T) {
	h := NewHealthHandler(testutil.TestStore(t))

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health?verbose=true", nil))

	body := decodeJSON(t, rec)
	system, ok := body["system"].(map[string]any)
	if !ok {
		t.Fatal("system info missing with verbose=true")
	}
	if system["go_version"] == "" {
		t.Error("go_version missing")
	}
}

func TestHealthDegradedWhenUnconfigured(t *testing.T) {
	h := NewHealthHandler(kv.NewUnconfiguredStore())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["status"] != "degraded" {
		t.Errorf("status = %v", body["status"])
	}
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(kv.NewUnconfiguredStore())

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["status"] != "alive" {
		t.Errorf("status = %v", body["status"])
	}
}

func TestReadinessWithStore(t *testing.T) {
	h := NewHealthHandler(testutil.TestStore(t))

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["status"] != "ready" {
		t.Errorf("status = %v", body["status"])
	}
}

func TestReadinessUnconfiguredStillReady(t *testing.T) {
	h := NewHealthHandler(kv.NewUnconfiguredStore())

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, unconfigured storage must not fail readiness", rec.Code)
	}
}

func TestReadinessClosedStoreNotReady(t *testing.T) {
	store := kv.NewMemoryStore()
	_ = store.Close()
	h := NewHealthHandler(store)

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["status"] != "not_ready" {
		t.Errorf("status = %v", body["status"])
	}
}
