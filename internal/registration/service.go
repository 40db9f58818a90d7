// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package registration

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hackthethrone/eventsite/internal/model"
	"github.com/hackthethrone/eventsite/internal/store"
)

// AdvancedThreshold is the prior-hackathon count that marks one member
// as experienced; a team with at least AdvancedTeamMin such members is
// classified into the Advanced track.
const (
	AdvancedThreshold = 2
	AdvancedTeamMin   = 2
)

// Service runs the registration workflow. It holds no state of its own;
// every decision is a function of the payload and the stored set.
type Service struct {
	repo *store.RegistrationRepo
}

// NewService creates a registration service on the given repository.
func NewService(repo *store.RegistrationRepo) *Service {
	return &Service{repo: repo}
}

// Register validates the payload against the declared schema and the
// stored registrations, classifies the team, generates its tag, and
// persists the record. The returned record carries the assigned tag.
//
// The uniqueness checks and the count-then-tag step are pre-checks, not
// transactional guarantees: near-simultaneous submissions can race.
// Accepted at this system's scale.
func (s *Service) Register(ctx context.Context, p *Payload) (*model.Registration, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByTeamName(ctx, p.TeamName)
	if err != nil {
		return nil, fmt.Errorf("checking team name: %w", err)
	}
	if exists {
		return nil, &ConflictError{Message: "Team name already registered"}
	}

	rec := s.assemble(p)

	// Within-submission duplicates first so the conflict names the
	// right scope.
	seen := make(map[string]bool)
	for _, usn := range rec.USNs() {
		if seen[usn] {
			return nil, &ConflictError{
				InTeam:  true,
				Message: fmt.Sprintf("USN %s is duplicated within this team", usn),
			}
		}
		seen[usn] = true
	}

	used, err := s.repo.UsedUSNs(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking member identifiers: %w", err)
	}
	for _, usn := range rec.USNs() {
		if _, taken := used[usn]; taken {
			return nil, &ConflictError{
				Message: fmt.Sprintf("USN %s is already registered", usn),
			}
		}
	}

	rec.AdvancedMembers = countAdvanced(rec.HackathonCounts())
	if rec.AdvancedMembers >= AdvancedTeamMin {
		rec.Track = model.TrackAdvanced
	} else {
		rec.Track = model.TrackBasic
	}
	rec.TeamTag = s.tag(ctx, rec)

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// assemble builds the record from a validated payload.
func (s *Service) assemble(p *Payload) *model.Registration {
	return &model.Registration{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UnixMilli(),
		TeamName:  p.TeamName,

		LeaderName:       p.LeaderName,
		LeaderSection:    strings.ToUpper(p.LeaderSection),
		LeaderUSN:        p.LeaderUSN,
		LeaderWhatsapp:   p.LeaderWhatsapp,
		LeaderEmail:      p.LeaderEmail,
		LeaderHackathons: p.LeaderHackathons,

		Member1Name:       p.Member1Name,
		Member1USN:        p.Member1USN,
		Member1Hackathons: p.Member1Hackathons,

		Member2Name:       p.Member2Name,
		Member2USN:        p.Member2USN,
		Member2Hackathons: p.Member2Hackathons,

		Member3Name:       p.Member3Name,
		Member3USN:        p.Member3USN,
		Member3Hackathons: p.Member3Hackathons,

		Member4Name:       p.Member4Name,
		Member4USN:        p.Member4USN,
		Member4Hackathons: p.Member4Hackathons,

		Member5Name:       p.Member5Name,
		Member5USN:        p.Member5USN,
		Member5Hackathons: p.Member5Hackathons,
	}
}

// countAdvanced counts slots reporting AdvancedThreshold or more prior
// hackathons. Unparseable or absent values count as zero.
func countAdvanced(counts []string) int {
	advanced := 0
	for _, raw := range counts {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil && n >= AdvancedThreshold {
			advanced++
		}
	}
	return advanced
}

// tag composes the human-readable team tag: prefix, leader section,
// next sequence number, track code. The count is read best-effort; it
// never blocks a submission.
func (s *Service) tag(ctx context.Context, rec *model.Registration) string {
	seq := s.repo.Count(ctx) + 1
	trackCode := "B"
	if rec.Track == model.TrackAdvanced {
		trackCode = "A"
	}
	return fmt.Sprintf("%s%s%d%s", model.TagPrefix, rec.LeaderSection, seq, trackCode)
}
