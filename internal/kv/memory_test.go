// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreGetSet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNil) {
		t.Errorf("Get(missing) error = %v, want ErrNil", err)
	}

	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}

	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNil) {
		t.Errorf("Get after Del error = %v, want ErrNil", err)
	}
}

func TestMemoryStoreDelMultiple(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		if err := s.Set(ctx, k, "x"); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	if err := s.Del(ctx, "a", "b", "missing"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrNil) {
		t.Error("a should be deleted")
	}
	if _, err := s.Get(ctx, "c"); err != nil {
		t.Error("c should survive")
	}
}

func TestMemoryStoreHash(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	got, err := s.HGetAll(ctx, "missing")
	if err != nil {
		t.Fatalf("HGetAll(missing): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("HGetAll(missing) = %v, want empty", got)
	}

	fields := map[string]string{"name": "Alpha", "track": "Basic"}
	if err := s.HSet(ctx, "h", fields); err != nil {
		t.Fatalf("HSet: %v", err)
	}
	got, err = s.HGetAll(ctx, "h")
	if err != nil {
		t.Fatalf("HGetAll: %v", err)
	}
	if got["name"] != "Alpha" || got["track"] != "Basic" {
		t.Errorf("HGetAll = %v", got)
	}

	// Returned map must be a copy
	got["name"] = "mutated"
	again, _ := s.HGetAll(ctx, "h")
	if again["name"] != "Alpha" {
		t.Error("HGetAll must return a copy")
	}
}

func TestMemoryStoreSortedSet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i, m := range []string{"first", "second", "third"} {
		if err := s.ZAdd(ctx, "z", float64(i), m); err != nil {
			t.Fatalf("ZAdd(%s): %v", m, err)
		}
	}

	n, err := s.ZCard(ctx, "z")
	if err != nil {
		t.Fatalf("ZCard: %v", err)
	}
	if n != 3 {
		t.Errorf("ZCard = %d, want 3", n)
	}

	tests := []struct {
		name        string
		rev         bool
		start, stop int64
		want        []string
	}{
		{"full ascending", false, 0, -1, []string{"first", "second", "third"}},
		{"full descending", true, 0, -1, []string{"third", "second", "first"}},
		{"first two descending", true, 0, 1, []string{"third", "second"}},
		{"negative start", false, -2, -1, []string{"second", "third"}},
		{"out of range", false, 5, 9, nil},
		{"inverted range", false, 2, 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			var err error
			if tt.rev {
				got, err = s.ZRevRange(ctx, "z", tt.start, tt.stop)
			} else {
				got, err = s.ZRange(ctx, "z", tt.start, tt.stop)
			}
			if err != nil {
				t.Fatalf("range: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestMemoryStoreZRem(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.ZAdd(ctx, "z", 1, "a")
	_ = s.ZAdd(ctx, "z", 2, "b")

	if err := s.ZRem(ctx, "z", "a", "missing"); err != nil {
		t.Fatalf("ZRem: %v", err)
	}
	n, _ := s.ZCard(ctx, "z")
	if n != 1 {
		t.Errorf("ZCard after ZRem = %d, want 1", n)
	}

	// Removing from an absent key is not an error
	if err := s.ZRem(ctx, "nope", "a"); err != nil {
		t.Errorf("ZRem on absent key: %v", err)
	}
}

func TestMemoryStoreZAddUpdatesScore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.ZAdd(ctx, "z", 1, "a")
	_ = s.ZAdd(ctx, "z", 2, "b")
	_ = s.ZAdd(ctx, "z", 3, "a") // re-add moves a to the end

	got, err := s.ZRange(ctx, "z", 0, -1)
	if err != nil {
		t.Fatalf("ZRange: %v", err)
	}
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("ZRange = %v, want [b a]", got)
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Set(ctx, "k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close error = %v, want ErrClosed", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after Close error = %v, want ErrClosed", err)
	}
	// Double close is safe
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
