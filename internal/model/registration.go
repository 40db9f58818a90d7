// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strconv"
	"strings"
)

// Track classifications for a registered team.
const (
	TrackBasic    = "Basic"
	TrackAdvanced = "Advanced"
)

// TagPrefix starts every generated team tag.
const TagPrefix = "HTT"

// MemberSlots is the number of member sub-records besides the leader.
const MemberSlots = 5

// RequiredMembers is how many of those slots are mandatory.
const RequiredMembers = 3

// Registration is one submitted team, immutable once written. The flat
// field layout mirrors the storage hash: every value is a string so the
// record survives the hash round-trip unchanged, with empty strings
// standing for unset optional fields.
type Registration struct {
	ID              string `json:"id"`
	CreatedAt       int64  `json:"createdAt"`
	TeamName        string `json:"teamName"`
	TeamTag         string `json:"teamTag"`
	Track           string `json:"track"`
	AdvancedMembers int    `json:"advancedMembers"`

	LeaderName       string `json:"leaderName"`
	LeaderSection    string `json:"leaderSection"`
	LeaderUSN        string `json:"leaderUSN"`
	LeaderWhatsapp   string `json:"leaderWhatsapp"`
	LeaderEmail      string `json:"leaderEmail"`
	LeaderHackathons string `json:"leaderHackathons"`

	Member1Name       string `json:"member1Name"`
	Member1USN        string `json:"member1USN"`
	Member1Hackathons string `json:"member1Hackathons"`

	Member2Name       string `json:"member2Name"`
	Member2USN        string `json:"member2USN"`
	Member2Hackathons string `json:"member2Hackathons"`

	Member3Name       string `json:"member3Name"`
	Member3USN        string `json:"member3USN"`
	Member3Hackathons string `json:"member3Hackathons"`

	Member4Name       string `json:"member4Name,omitempty"`
	Member4USN        string `json:"member4USN,omitempty"`
	Member4Hackathons string `json:"member4Hackathons,omitempty"`

	Member5Name       string `json:"member5Name,omitempty"`
	Member5USN        string `json:"member5USN,omitempty"`
	Member5Hackathons string `json:"member5Hackathons,omitempty"`
}

// NormalizeUSN canonicalizes a member identifier for uniqueness checks.
func NormalizeUSN(usn string) string {
	return strings.ToUpper(strings.TrimSpace(usn))
}

// NormalizeTeamName canonicalizes a team name for uniqueness checks.
func NormalizeTeamName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// USNs returns the normalized identifiers of every present member,
// leader first.
func (r *Registration) USNs() []string {
	raw := []string{
		r.LeaderUSN,
		r.Member1USN, r.Member2USN, r.Member3USN,
		r.Member4USN, r.Member5USN,
	}
	usns := make([]string, 0, len(raw))
	for _, u := range raw {
		if n := NormalizeUSN(u); n != "" {
			usns = append(usns, n)
		}
	}
	return usns
}

// HackathonCounts returns the raw prior-hackathon values of every slot,
// leader first. Absent slots yield empty strings.
func (r *Registration) HackathonCounts() []string {
	return []string{
		r.LeaderHackathons,
		r.Member1Hackathons, r.Member2Hackathons, r.Member3Hackathons,
		r.Member4Hackathons, r.Member5Hackathons,
	}
}

// Fields flattens the record into storage hash fields.
func (r *Registration) Fields() map[string]string {
	return map[string]string{
		"id":              r.ID,
		"createdAt":       strconv.FormatInt(r.CreatedAt, 10),
		"teamName":        r.TeamName,
		"teamTag":         r.TeamTag,
		"track":           r.Track,
		"advancedMembers": strconv.Itoa(r.AdvancedMembers),

		"leaderName":       r.LeaderName,
		"leaderSection":    r.LeaderSection,
		"leaderUSN":        r.LeaderUSN,
		"leaderWhatsapp":   r.LeaderWhatsapp,
		"leaderEmail":      r.LeaderEmail,
		"leaderHackathons": r.LeaderHackathons,

		"member1Name":       r.Member1Name,
		"member1USN":        r.Member1USN,
		"member1Hackathons": r.Member1Hackathons,

		"member2Name":       r.Member2Name,
		"member2USN":        r.Member2USN,
		"member2Hackathons": r.Member2Hackathons,

		"member3Name":       r.Member3Name,
		"member3USN":        r.Member3USN,
		"member3Hackathons": r.Member3Hackathons,

		"member4Name":       r.Member4Name,
		"member4USN":        r.Member4USN,
		"member4Hackathons": r.Member4Hackathons,

		"member5Name":       r.Member5Name,
		"member5USN":        r.Member5USN,
		"member5Hackathons": r.Member5Hackathons,
	}
}

// RegistrationFromFields rebuilds a record from storage hash fields.
// Missing fields come back as zero values, matching the Redis backend's
// empty-field stripping on write.
func RegistrationFromFields(fields map[string]string) *Registration {
	createdAt, _ := strconv.ParseInt(fields["createdAt"], 10, 64)
	advanced, _ := strconv.Atoi(fields["advancedMembers"])

	return &Registration{
		ID:              fields["id"],
		CreatedAt:       createdAt,
		TeamName:        fields["teamName"],
		TeamTag:         fields["teamTag"],
		Track:           fields["track"],
		AdvancedMembers: advanced,

		LeaderName:       fields["leaderName"],
		LeaderSection:    fields["leaderSection"],
		LeaderUSN:        fields["leaderUSN"],
		LeaderWhatsapp:   fields["leaderWhatsapp"],
		LeaderEmail:      fields["leaderEmail"],
		LeaderHackathons: fields["leaderHackathons"],

		Member1Name:       fields["member1Name"],
		Member1USN:        fields["member1USN"],
		Member1Hackathons: fields["member1Hackathons"],

		Member2Name:       fields["member2Name"],
		Member2USN:        fields["member2USN"],
		Member2Hackathons: fields["member2Hackathons"],

		Member3Name:       fields["member3Name"],
		Member3USN:        fields["member3USN"],
		Member3Hackathons: fields["member3Hackathons"],

		Member4Name:       fields["member4Name"],
		Member4USN:        fields["member4USN"],
		Member4Hackathons: fields["member4Hackathons"],

		Member5Name:       fields["member5Name"],
		Member5USN:        fields["member5USN"],
		Member5Hackathons: fields["member5Hackathons"],
	}
}
