// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the eventsite project.
package testutil

import (
	"testing"

	"github.com/hackthethrone/eventsite/internal/kv"
	"github.com/hackthethrone/eventsite/internal/registration"
)

// TestStore creates an in-memory KV store, closed when the test ends.
func TestStore(t *testing.T) *kv.MemoryStore {
	t.Helper()

	store := kv.NewMemoryStore()
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// ValidPayload returns a minimal valid registration submission. Tests
// mutate the fields they care about.
func ValidPayload() *registration.Payload {
	return &registration.Payload{
		TeamName:          "Byte Knights",
		LeaderName:        "Asha Rao",
		LeaderSection:     "A",
		LeaderUSN:         "1AB23CS001",
		LeaderWhatsapp:    "9876543210",
		LeaderEmail:       "asha@example.com",
		LeaderHackathons:  "1",
		Member1Name:       "Ravi Kumar",
		Member1USN:        "1AB23CS002",
		Member1Hackathons: "0",
		Member2Name:       "Neha Shetty",
		Member2USN:        "1AB23CS003",
		Member2Hackathons: "0",
		Member3Name:       "Arjun Patil",
		Member3USN:        "1AB23CS004",
		Member3Hackathons: "1",
	}
}
