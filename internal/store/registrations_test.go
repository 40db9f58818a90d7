// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/hackthethrone/eventsite/internal/kv"
	"github.com/hackthethrone/eventsite/internal/model"
)

func testRegistration(i int) *model.Registration {
	return &model.Registration{
		ID:        fmt.Sprintf("id-%03d", i),
		CreatedAt: int64(1767187200000 + i*1000),
		TeamName:  fmt.Sprintf("Team %d", i),
		TeamTag:   fmt.Sprintf("HTTA%dB", i),
		Track:     model.TrackBasic,

		LeaderName:       fmt.Sprintf("Leader %d", i),
		LeaderSection:    "A",
		LeaderUSN:        fmt.Sprintf("1AB23CS%03d", i*10),
		LeaderWhatsapp:   "9876543210",
		LeaderEmail:      "leader@example.com",
		LeaderHackathons: "0",

		Member1Name:       "M1",
		Member1USN:        fmt.Sprintf("1AB23CS%03d", i*10+1),
		Member1Hackathons: "0",
		Member2Name:       "M2",
		Member2USN:        fmt.Sprintf("1AB23CS%03d", i*10+2),
		Member2Hackathons: "0",
		Member3Name:       "M3",
		Member3USN:        fmt.Sprintf("1AB23CS%03d", i*10+3),
		Member3Hackathons: "0",
	}
}

func TestRegistrationRepoSaveList(t *testing.T) {
	repo := NewRegistrationRepo(kv.NewMemoryStore())
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := repo.Save(ctx, testRegistration(i)); err != nil {
			t.Fatalf("Save(%d): %v", i, err)
		}
	}

	if n := repo.Count(ctx); n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}

	// Newest first
	regs, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(regs) != 3 {
		t.Fatalf("List = %d records, want 3", len(regs))
	}
	if regs[0].ID != "id-003" || regs[2].ID != "id-001" {
		t.Errorf("List order = [%s %s %s], want newest first", regs[0].ID, regs[1].ID, regs[2].ID)
	}

	// Limit respected
	regs, err = repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List(2): %v", err)
	}
	if len(regs) != 2 {
		t.Errorf("List(2) = %d records", len(regs))
	}
}

func TestRegistrationRepoListAll(t *testing.T) {
	repo := NewRegistrationRepo(kv.NewMemoryStore())
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := repo.Save(ctx, testRegistration(i)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	regs, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(regs) != 3 || regs[0].ID != "id-003" {
		t.Errorf("ListAll = %d records, first %s, want newest first", len(regs), regs[0].ID)
	}
}

func TestRegistrationRepoDelete(t *testing.T) {
	repo := NewRegistrationRepo(kv.NewMemoryStore())
	ctx := context.Background()

	if err := repo.Save(ctx, testRegistration(1)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete(ctx, "id-001"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n := repo.Count(ctx); n != 0 {
		t.Errorf("Count after Delete = %d, want 0", n)
	}

	// Deleting an absent record is a no-op
	if err := repo.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing): %v", err)
	}
}

func TestRegistrationRepoDeleteAll(t *testing.T) {
	store := kv.NewMemoryStore()
	repo := NewRegistrationRepo(store)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		if err := repo.Save(ctx, testRegistration(i)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	deleted, err := repo.DeleteAll(ctx)
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if deleted != 4 {
		t.Errorf("deleted = %d, want 4", deleted)
	}
	if n := repo.Count(ctx); n != 0 {
		t.Errorf("Count after DeleteAll = %d, want 0", n)
	}

	// Record hashes are gone too, not just the index
	fields, err := store.HGetAll(ctx, "registration:id-001")
	if err != nil {
		t.Fatalf("HGetAll: %v", err)
	}
	if len(fields) != 0 {
		t.Error("record hash should be deleted")
	}
}

func TestRegistrationRepoDeleteAllEmpty(t *testing.T) {
	repo := NewRegistrationRepo(kv.NewMemoryStore())

	deleted, err := repo.DeleteAll(context.Background())
	if err != nil {
		t.Fatalf("DeleteAll on empty: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}

func TestRegistrationRepoExistsByTeamName(t *testing.T) {
	repo := NewRegistrationRepo(kv.NewMemoryStore())
	ctx := context.Background()

	rec := testRegistration(1)
	rec.TeamName = "Byte Knights"
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tests := []struct {
		name string
		want bool
	}{
		{"Byte Knights", true},
		{"byte knights", true},
		{"  BYTE KNIGHTS  ", true},
		{"Other Team", false},
	}
	for _, tt := range tests {
		got, err := repo.ExistsByTeamName(ctx, tt.name)
		if err != nil {
			t.Fatalf("ExistsByTeamName(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("ExistsByTeamName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRegistrationRepoUsedUSNs(t *testing.T) {
	repo := NewRegistrationRepo(kv.NewMemoryStore())
	ctx := context.Background()

	rec := testRegistration(1)
	rec.LeaderUSN = "1ab23cs001"
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	used, err := repo.UsedUSNs(ctx)
	if err != nil {
		t.Fatalf("UsedUSNs: %v", err)
	}
	if team, ok := used["1AB23CS001"]; !ok || team != rec.TeamName {
		t.Errorf("used[1AB23CS001] = %q, %v; want %q", team, ok, rec.TeamName)
	}
	// Leader plus three members
	if len(used) != 4 {
		t.Errorf("len(used) = %d, want 4", len(used))
	}
}

func TestRegistrationRepoSkipsDriftedIndexEntries(t *testing.T) {
	store := kv.NewMemoryStore()
	repo := NewRegistrationRepo(store)
	ctx := context.Background()

	if err := repo.Save(ctx, testRegistration(1)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Simulate index/hash drift: index entry without a record hash
	if err := store.ZAdd(ctx, "registration:index", 9e12, "ghost"); err != nil {
		t.Fatalf("ZAdd: %v", err)
	}

	regs, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(regs) != 1 || regs[0].ID != "id-001" {
		t.Errorf("List = %v, drifted entry must be skipped", regs)
	}
}
