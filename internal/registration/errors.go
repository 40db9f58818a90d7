// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package registration implements the signup workflow: schema
// validation, duplicate detection, track classification, and tag
// generation.
package registration

// ValidationError reports the first malformed or missing field.
// Validation short-circuits: one submission yields at most one of these.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError reports a duplicate team name or member identifier.
// InTeam distinguishes duplicates inside the submission itself from
// collisions with previously stored teams.
type ConflictError struct {
	InTeam  bool
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
