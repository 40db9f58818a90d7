// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"reflect"
	"testing"
)

func TestNormalizeUSN(t *testing.T) {
	tests := []struct{ in, want string }{
		{"1ab23cs001", "1AB23CS001"},
		{"  1AB23CS001  ", "1AB23CS001"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeUSN(tt.in); got != tt.want {
			t.Errorf("NormalizeUSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeTeamName(t *testing.T) {
	if got := NormalizeTeamName("  Byte Knights "); got != "byte knights" {
		t.Errorf("NormalizeTeamName = %q", got)
	}
}

func TestRegistrationUSNs(t *testing.T) {
	r := Registration{
		LeaderUSN:  "1ab23cs001",
		Member1USN: "1AB23CS002",
		Member2USN: " 1ab23cs003 ",
		Member3USN: "1AB23CS004",
		// slots 4 and 5 unset
	}

	want := []string{"1AB23CS001", "1AB23CS002", "1AB23CS003", "1AB23CS004"}
	if got := r.USNs(); !reflect.DeepEqual(got, want) {
		t.Errorf("USNs = %v, want %v", got, want)
	}
}

func TestRegistrationFieldsRoundTrip(t *testing.T) {
	orig := &Registration{
		ID:              "abc-123",
		CreatedAt:       1767187200000,
		TeamName:        "Byte Knights",
		TeamTag:         "HTTA7B",
		Track:           TrackAdvanced,
		AdvancedMembers: 2,

		LeaderName:       "Asha Rao",
		LeaderSection:    "A",
		LeaderUSN:        "1AB23CS001",
		LeaderWhatsapp:   "9876543210",
		LeaderEmail:      "asha@example.com",
		LeaderHackathons: "3",

		Member1Name:       "Ravi Kumar",
		Member1USN:        "1AB23CS002",
		Member1Hackathons: "2",
		Member2Name:       "Neha Shetty",
		Member2USN:        "1AB23CS003",
		Member2Hackathons: "0",
		Member3Name:       "Arjun Patil",
		Member3USN:        "1AB23CS004",
		Member3Hackathons: "1",
	}

	got := RegistrationFromFields(orig.Fields())
	if !reflect.DeepEqual(got, orig) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, orig)
	}
}

func TestRegistrationFromFieldsMissingOptional(t *testing.T) {
	// The Redis backend strips empty fields on write; rebuilding from
	// a partial hash must yield unset optional slots, not errors.
	fields := map[string]string{
		"id":        "abc",
		"createdAt": "1767187200000",
		"teamName":  "Alpha",
		"track":     TrackBasic,
	}

	r := RegistrationFromFields(fields)
	if r.ID != "abc" || r.CreatedAt != 1767187200000 {
		t.Errorf("core fields lost: %+v", r)
	}
	if r.Member4Name != "" || r.Member5USN != "" {
		t.Errorf("optional slots should be empty: %+v", r)
	}
	if r.AdvancedMembers != 0 {
		t.Errorf("AdvancedMembers = %d, want 0", r.AdvancedMembers)
	}
}

func TestHackathonCounts(t *testing.T) {
	r := Registration{
		LeaderHackathons:  "3",
		Member1Hackathons: "0",
		Member3Hackathons: "2",
	}

	got := r.HackathonCounts()
	if len(got) != MemberSlots+1 {
		t.Fatalf("len = %d, want %d", len(got), MemberSlots+1)
	}
	if got[0] != "3" || got[1] != "0" || got[3] != "2" || got[5] != "" {
		t.Errorf("HackathonCounts = %v", got)
	}
}
