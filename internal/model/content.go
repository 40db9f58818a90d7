// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
)

// Hero is the landing page masthead.
type Hero struct {
	Title   string   `json:"title"`
	Tagline string   `json:"tagline"`
	Badges  []string `json:"badges"`
}

// Detail is one event detail card.
type Detail struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ScheduleEntry is one timetable row.
type ScheduleEntry struct {
	Time  string `json:"time"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// TeamMember is one organizer credit.
type TeamMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// FAQ is one question/answer pair.
type FAQ struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Stat is one optional stat card.
type Stat struct {
	Title   string `json:"title"`
	Value   string `json:"value"`
	Caption string `json:"caption"`
}

// Content is the singleton published event document. It is overwritten
// wholesale on each admin save; there is no versioning.
type Content struct {
	Hero         Hero            `json:"hero"`
	Details      []Detail        `json:"details"`
	Schedule     []ScheduleEntry `json:"schedule"`
	Team         []TeamMember    `json:"team"`
	FAQs         []FAQ           `json:"faqs"`
	Stats        []Stat          `json:"stats,omitempty"`
	RegisterNote string          `json:"registerNote,omitempty"`
}

// UnmarshalJSON accepts the current shape plus the legacy "faq" key
// used by early deployments.
func (c *Content) UnmarshalJSON(data []byte) error {
	type alias Content
	aux := struct {
		*alias
		LegacyFAQs []FAQ `json:"faq"`
	}{alias: (*alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(c.FAQs) == 0 && len(aux.LegacyFAQs) > 0 {
		c.FAQs = aux.LegacyFAQs
	}
	return nil
}

// Normalize replaces nil collections with empty ones so the document
// round-trips with every optional array present.
func (c *Content) Normalize() {
	if c.Hero.Badges == nil {
		c.Hero.Badges = []string{}
	}
	if c.Details == nil {
		c.Details = []Detail{}
	}
	if c.Schedule == nil {
		c.Schedule = []ScheduleEntry{}
	}
	if c.Team == nil {
		c.Team = []TeamMember{}
	}
	if c.FAQs == nil {
		c.FAQs = []FAQ{}
	}
}

// Validate checks the document shape before it is persisted.
func (c *Content) Validate() error {
	if c.Hero.Title == "" {
		return fmt.Errorf("hero.title is required")
	}
	if c.Hero.Tagline == "" {
		return fmt.Errorf("hero.tagline is required")
	}
	for i, d := range c.Details {
		if d.Title == "" {
			return fmt.Errorf("details[%d].title is required", i)
		}
	}
	for i, e := range c.Schedule {
		if e.Title == "" {
			return fmt.Errorf("schedule[%d].title is required", i)
		}
	}
	for i, m := range c.Team {
		if m.Name == "" {
			return fmt.Errorf("team[%d].name is required", i)
		}
	}
	for i, f := range c.FAQs {
		if f.Q == "" {
			return fmt.Errorf("faqs[%d].q is required", i)
		}
	}
	return nil
}

// DefaultContent returns the seed document for a fresh deployment.
func DefaultContent() *Content {
	return &Content{
		Hero: Hero{
			Title:   "Hack The Throne",
			Tagline: "Build together at AIT CSE. Open only to 2nd Year CSE students.",
			Badges:  []string{"AIT CSE campus", "On-campus", "2nd Year CSE only", "Mentors on-call"},
		},
		Details: []Detail{
			{Title: "Venue", Body: "AIT CSE Campus"},
			{Title: "Eligibility", Body: "2nd Year CSE students only"},
			{Title: "Tracks", Body: "Basic · Advanced"},
			{Title: "Team rules", Body: "Teams of 4-6\nFresh work only"},
		},
		Schedule: []ScheduleEntry{},
		Team: []TeamMember{
			{Name: "Ayush Kaushik", Role: "Lead Organizer"},
			{Name: "Ethan Dsouza", Role: "Tech Lead (Co-Organizer)"},
			{Name: "Ayush Mallick", Role: "Logistics & Marketing Lead"},
			{Name: "Dhanush V P", Role: "Tech & Organizing Coordinator"},
			{Name: "Abhay Emmanuel", Role: "Tech & Organizing Coordinator"},
		},
		FAQs: []FAQ{
			{Q: "What's a hackathon?", A: "A fast-paced event where teams build and demo solutions in a short time (often 24-48 hours)."},
			{Q: "What do we do there?", A: "Form teams, pick a problem, design, code, ship a demo, and present to judges."},
			{Q: "Prerequisite skills?", A: "Basics help: coding or no-code, Git, slides/storytelling, and collaboration. Mixed skills win."},
		},
		Stats: []Stat{
			{Title: "Eligibility", Value: "2nd Year CSE", Caption: "AIT Department of CSE"},
			{Title: "Mode", Value: "On-campus", Caption: "AIT CSE Campus"},
			{Title: "Support", Value: "Mentors", Caption: "Product · AI/ML · DevOps"},
		},
		RegisterNote: "Open only to 2nd Year CSE students. Confirm your details for review.",
	}
}
