package service

import (
	"sync"
	"time"

	"github.com/chickenkicker/highscores/pkg/entity"
)

// leaderboardCache memoizes one fixed-parameters leaderboard view. It starts
// empty, turns fresh on set, and goes stale purely by clock elapse; writes to
// the store never invalidate it. The mutex only guards the fields: refreshes
// happen outside the lock, so concurrent readers that both see a stale view
// may both recompute. That is accepted, the computation is pure.
type leaderboardCache struct {
	mu            sync.RWMutex
	entries       []entity.LeaderboardEntry
	lastRefreshed time.Time
	ttl           time.Duration
}

func newLeaderboardCache(ttl time.Duration) *leaderboardCache {
	return &leaderboardCache{ttl: ttl}
}

// isStale reports whether the view needs recomputing as of now. An empty
// cache is always stale.
func (c *leaderboardCache) isStale(now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries == nil || now.Sub(c.lastRefreshed) >= c.ttl
}

// get returns the cached view, or ok=false when empty or stale as of now
func (c *leaderboardCache) get(now time.Time) ([]entity.LeaderboardEntry, bool) {
	if c.isStale(now) {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries, true
}

// set stores a freshly computed view and restarts the freshness window
func (c *leaderboardCache) set(entries []entity.LeaderboardEntry, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	c.lastRefreshed = now
}
