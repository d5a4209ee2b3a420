package repository

import (
	"context"
	"testing"

	"github.com/chickenkicker/highscores/pkg/entity"
)

func TestFallbackIsDeterministic(t *testing.T) {
	repo := NewFallbackRepository()

	first, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	second, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}

	if len(first) != 15 || len(second) != 15 {
		t.Fatalf("expected 15 synthetic accounts, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("dataset changed between scans at index %d", i)
		}
	}
	if first[0].Username != "ChickenSlayer99" || first[0].ChickensKilled != 15420 {
		t.Fatalf("unexpected top entry: %+v", first[0])
	}
}

func TestFallbackIsFlagged(t *testing.T) {
	repo := NewFallbackRepository()
	if repo.Source() != entity.SourceFallback {
		t.Fatalf("expected fallback source, got %s", repo.Source())
	}
}

func TestFallbackRankLookup(t *testing.T) {
	repo := NewFallbackRepository()

	ranked, err := repo.FindRanked(context.Background(), "featherhunter")
	if err != nil {
		t.Fatalf("find ranked: %v", err)
	}
	if ranked.Username != "FeatherHunter" {
		t.Fatalf("expected case-insensitive match, got %s", ranked.Username)
	}
	if ranked.Rank != 3 {
		t.Fatalf("expected rank 3, got %d", ranked.Rank)
	}

	if _, err := repo.FindRanked(context.Background(), "NoSuchPlayer"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFallbackRejectsWrites(t *testing.T) {
	repo := NewFallbackRepository()

	if _, err := repo.Insert(context.Background(), "X", "x", 1, nil); err != ErrUnavailable {
		t.Fatalf("expected ErrUnavailable on insert, got %v", err)
	}
	if _, err := repo.Increment(context.Background(), "x", 1); err != ErrUnavailable {
		t.Fatalf("expected ErrUnavailable on increment, got %v", err)
	}
}
