// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hackthethrone/eventsite/internal/kv"
	"github.com/hackthethrone/eventsite/internal/model"
)

// Storage keys for registration records.
const (
	keyRegistrationPrefix = "registration:"
	keyRegistrationIndex  = "registration:index"
)

// registrationKey returns the hash key for a record.
func registrationKey(id string) string {
	return keyRegistrationPrefix + id
}

// RegistrationRepo persists registration records as one hash per record
// plus a time-scored index for recent-first listing. Records are
// append-only: there is no update, only delete.
type RegistrationRepo struct {
	kv kv.Store
}

// NewRegistrationRepo creates a registration repository on the given store.
func NewRegistrationRepo(store kv.Store) *RegistrationRepo {
	return &RegistrationRepo{kv: store}
}

// Save writes the record hash and adds its identifier to the index with
// score = creation timestamp. Fails loudly when storage is unconfigured.
func (r *RegistrationRepo) Save(ctx context.Context, rec *model.Registration) error {
	if err := r.kv.HSet(ctx, registrationKey(rec.ID), rec.Fields()); err != nil {
		return fmt.Errorf("saving registration %s: %w", rec.ID, err)
	}
	if err := r.kv.ZAdd(ctx, keyRegistrationIndex, float64(rec.CreatedAt), rec.ID); err != nil {
		return fmt.Errorf("indexing registration %s: %w", rec.ID, err)
	}
	return nil
}

// Count returns the index cardinality. A backend error degrades to 0:
// the count feeds tag generation and must never block a submission on a
// transient read failure.
func (r *RegistrationRepo) Count(ctx context.Context) int64 {
	n, err := r.kv.ZCard(ctx, keyRegistrationIndex)
	if err != nil {
		slog.Warn("registration count unavailable", "error", err)
		return 0
	}
	return n
}

// List returns up to limit records, most recent first. Index entries
// whose hash is missing are skipped; index/hash drift must not fail the
// whole call.
func (r *RegistrationRepo) List(ctx context.Context, limit int64) ([]*model.Registration, error) {
	if limit < 1 {
		return nil, nil
	}

	ids, err := r.kv.ZRevRange(ctx, keyRegistrationIndex, 0, limit-1)
	if err != nil {
		return nil, fmt.Errorf("listing registration index: %w", err)
	}

	records := make([]*model.Registration, 0, len(ids))
	for _, id := range ids {
		fields, err := r.kv.HGetAll(ctx, registrationKey(id))
		if err != nil {
			return nil, fmt.Errorf("loading registration %s: %w", id, err)
		}
		if len(fields) == 0 {
			continue
		}
		records = append(records, model.RegistrationFromFields(fields))
	}
	return records, nil
}

// Delete removes the record hash and its index entry. Deleting an
// absent record is a no-op.
func (r *RegistrationRepo) Delete(ctx context.Context, id string) error {
	if err := r.kv.Del(ctx, registrationKey(id)); err != nil {
		return fmt.Errorf("deleting registration %s: %w", id, err)
	}
	if err := r.kv.ZRem(ctx, keyRegistrationIndex, id); err != nil {
		return fmt.Errorf("unindexing registration %s: %w", id, err)
	}
	return nil
}

// DeleteAll enumerates the index, bulk-deletes every record hash, then
// clears the index. Returns the number of records removed. Not atomic:
// a crash mid-operation can leave orphaned hashes, acceptable for an
// operator-triggered action.
func (r *RegistrationRepo) DeleteAll(ctx context.Context) (int, error) {
	ids, err := r.kv.ZRange(ctx, keyRegistrationIndex, 0, -1)
	if err != nil {
		return 0, fmt.Errorf("enumerating registrations: %w", err)
	}

	if len(ids) > 0 {
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = registrationKey(id)
		}
		if err := r.kv.Del(ctx, keys...); err != nil {
			return 0, fmt.Errorf("deleting registrations: %w", err)
		}
	}

	if err := r.kv.Del(ctx, keyRegistrationIndex); err != nil {
		return 0, fmt.Errorf("clearing registration index: %w", err)
	}
	return len(ids), nil
}

// ListAll loads every indexed record, most recent first. Used for CSV
// export, which must not be bounded by the list page size.
func (r *RegistrationRepo) ListAll(ctx context.Context) ([]*model.Registration, error) {
	records, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// all loads every indexed record in ascending time order, skipping
// drifted entries.
func (r *RegistrationRepo) all(ctx context.Context) ([]*model.Registration, error) {
	ids, err := r.kv.ZRange(ctx, keyRegistrationIndex, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("scanning registration index: %w", err)
	}

	records := make([]*model.Registration, 0, len(ids))
	for _, id := range ids {
		fields, err := r.kv.HGetAll(ctx, registrationKey(id))
		if err != nil {
			return nil, fmt.Errorf("loading registration %s: %w", id, err)
		}
		if len(fields) == 0 {
			continue
		}
		records = append(records, model.RegistrationFromFields(fields))
	}
	return records, nil
}

// ExistsByTeamName reports whether any stored record's team name
// matches the candidate after trim+lowercase normalization. Linear in
// total registrations, bounded by the event's scale.
func (r *RegistrationRepo) ExistsByTeamName(ctx context.Context, name string) (bool, error) {
	want := model.NormalizeTeamName(name)
	records, err := r.all(ctx)
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if model.NormalizeTeamName(rec.TeamName) == want {
			return true, nil
		}
	}
	return false, nil
}

// UsedUSNs collects every member identifier across all stored records,
// normalized, mapped to the owning team name.
func (r *RegistrationRepo) UsedUSNs(ctx context.Context) (map[string]string, error) {
	records, err := r.all(ctx)
	if err != nil {
		return nil, err
	}

	used := make(map[string]string)
	for _, rec := range records {
		for _, usn := range rec.USNs() {
			used[usn] = rec.TeamName
		}
	}
	return used, nil
}
