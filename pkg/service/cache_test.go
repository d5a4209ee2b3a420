package service

import (
	"testing"
	"time"

	"github.com/chickenkicker/highscores/pkg/entity"
)

func TestCacheStartsEmpty(t *testing.T) {
	cache := newLeaderboardCache(time.Minute)
	now := time.Now()

	if !cache.isStale(now) {
		t.Fatal("empty cache should be stale")
	}
	if _, ok := cache.get(now); ok {
		t.Fatal("empty cache should not serve entries")
	}
}

func TestCacheFreshWithinWindow(t *testing.T) {
	cache := newLeaderboardCache(time.Minute)
	base := time.Now()
	entries := []entity.LeaderboardEntry{{Username: "Alice", ChickensKilled: 10}}

	cache.set(entries, base)

	got, ok := cache.get(base.Add(59 * time.Second))
	if !ok {
		t.Fatal("cache should be fresh within the window")
	}
	if len(got) != 1 || got[0].Username != "Alice" {
		t.Fatalf("unexpected cached entries: %+v", got)
	}
}

func TestCacheStaleByClockElapse(t *testing.T) {
	cache := newLeaderboardCache(time.Minute)
	base := time.Now()

	cache.set([]entity.LeaderboardEntry{}, base)

	if cache.isStale(base.Add(30 * time.Second)) {
		t.Fatal("cache should still be fresh at 30s")
	}
	if !cache.isStale(base.Add(time.Minute)) {
		t.Fatal("cache should be stale exactly at the window boundary")
	}
	if _, ok := cache.get(base.Add(2 * time.Minute)); ok {
		t.Fatal("stale cache should not serve entries")
	}
}

func TestCacheSetRestartsWindow(t *testing.T) {
	cache := newLeaderboardCache(time.Minute)
	base := time.Now()

	cache.set([]entity.LeaderboardEntry{}, base)
	cache.set([]entity.LeaderboardEntry{}, base.Add(50*time.Second))

	if cache.isStale(base.Add(100 * time.Second)) {
		t.Fatal("window should restart from the second set")
	}
}
