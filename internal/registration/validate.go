// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package registration

import (
	"fmt"
	"regexp"
	"strings"
)

// Field format rules for the registration form.
var (
	sectionRe = regexp.MustCompile(`^[A-Da-d]$`)
	usnRe     = regexp.MustCompile(`^[A-Za-z0-9]{10}$`)
	phoneRe   = regexp.MustCompile(`^\d{10}$`)
	digitsRe  = regexp.MustCompile(`^\d+$`)
	emailRe   = regexp.MustCompile(`^[A-Za-z0-9.+_-]+@[A-Za-z0-9.-]+\.[A-Za-z0-9.-]+$`)
)

// Payload is the submitted registration form. The leader and the first
// three members are mandatory; slots 4 and 5 are optional, with empty
// strings meaning absent.
type Payload struct {
	TeamName string `json:"teamName"`

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

	Member4Name       string `json:"member4Name"`
	Member4USN        string `json:"member4USN"`
	Member4Hackathons string `json:"member4Hackathons"`

	Member5Name       string `json:"member5Name"`
	Member5USN        string `json:"member5USN"`
	Member5Hackathons string `json:"member5Hackathons"`
}

// normalize trims every field in place. Optional fields that trim to
// empty become unset.
func (p *Payload) normalize() {
	for _, f := range []*string{
		&p.TeamName,
		&p.LeaderName, &p.LeaderSection, &p.LeaderUSN,
		&p.LeaderWhatsapp, &p.LeaderEmail, &p.LeaderHackathons,
		&p.Member1Name, &p.Member1USN, &p.Member1Hackathons,
		&p.Member2Name, &p.Member2USN, &p.Member2Hackathons,
		&p.Member3Name, &p.Member3USN, &p.Member3Hackathons,
		&p.Member4Name, &p.Member4USN, &p.Member4Hackathons,
		&p.Member5Name, &p.Member5USN, &p.Member5Hackathons,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// fieldRule validates a single value; empty message means valid.
type fieldRule struct {
	field    string
	value    string
	optional bool
	check    func(string) string
}

func checkName(v string) string {
	if len(v) < 2 {
		return "Name is required"
	}
	return ""
}

func checkSection(v string) string {
	if !sectionRe.MatchString(v) {
		return "Section must be A, B, C, or D"
	}
	return ""
}

func checkUSN(v string) string {
	if !usnRe.MatchString(v) {
		return "USN must be 10 alphanumeric characters"
	}
	return ""
}

func checkWhatsapp(v string) string {
	if !phoneRe.MatchString(v) {
		return "WhatsApp must be 10 digits"
	}
	return ""
}

func checkEmail(v string) string {
	if !emailRe.MatchString(v) {
		return "Email can only use letters, numbers, ., -, _, + and must contain @ and a domain"
	}
	return ""
}

func checkHackathons(v string) string {
	if !digitsRe.MatchString(v) {
		return "Enter a number (0 if none)"
	}
	return ""
}

// Validate normalizes the payload and checks every declared field rule,
// short-circuiting on the first failure. Optional fields are only
// checked when present.
func (p *Payload) Validate() error {
	p.normalize()

	rules := []fieldRule{
		{field: "teamName", value: p.TeamName, check: func(v string) string {
			if len(v) < 2 {
				return "Team name is required"
			}
			return ""
		}},

		{field: "leaderName", value: p.LeaderName, check: checkName},
		{field: "leaderSection", value: p.LeaderSection, check: checkSection},
		{field: "leaderUSN", value: p.LeaderUSN, check: checkUSN},
		{field: "leaderWhatsapp", value: p.LeaderWhatsapp, check: checkWhatsapp},
		{field: "leaderEmail", value: p.LeaderEmail, check: checkEmail},
		{field: "leaderHackathons", value: p.LeaderHackathons, check: checkHackathons},
	}
	rules = append(rules, memberRules(1, p.Member1Name, p.Member1USN, p.Member1Hackathons, false)...)
	rules = append(rules, memberRules(2, p.Member2Name, p.Member2USN, p.Member2Hackathons, false)...)
	rules = append(rules, memberRules(3, p.Member3Name, p.Member3USN, p.Member3Hackathons, false)...)
	rules = append(rules, memberRules(4, p.Member4Name, p.Member4USN, p.Member4Hackathons, true)...)
	rules = append(rules, memberRules(5, p.Member5Name, p.Member5USN, p.Member5Hackathons, true)...)

	for _, r := range rules {
		if r.optional && r.value == "" {
			continue
		}
		if msg := r.check(r.value); msg != "" {
			return &ValidationError{Field: r.field, Message: msg}
		}
	}
	return nil
}

// memberRules builds the rules for one member slot.
func memberRules(n int, name, usn, hackathons string, optional bool) []fieldRule {
	prefix := fmt.Sprintf("member%d", n)
	return []fieldRule{
		{field: prefix + "Name", value: name, optional: optional, check: checkName},
		{field: prefix + "USN", value: usn, optional: optional, check: checkUSN},
		{field: prefix + "Hackathons", value: hackathons, optional: optional, check: checkHackathons},
	}
}
