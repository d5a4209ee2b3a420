package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/chickenkicker/highscores/pkg/logger"
	"github.com/lithammer/shortuuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "submit_rate:"

// Limiter bounds score submissions per client IP over a sliding window,
// backed by a redis sorted set of submission timestamps. A nil Limiter
// allows everything.
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

// New creates a limiter allowing limit submissions per window. Returns nil
// when limit is non-positive or no redis client is available, which disables
// limiting.
func New(rdb *redis.Client, limit int, window time.Duration) *Limiter {
	if rdb == nil || limit <= 0 {
		return nil
	}

	return &Limiter{rdb: rdb, limit: limit, window: window}
}

// Allow records one submission for ip and reports whether it stays within
// the window's budget. The limiter fails open: a redis error never blocks a
// submission.
func (l *Limiter) Allow(ctx context.Context, ip string) bool {
	if l == nil {
		return true
	}

	now := time.Now()
	key := keyPrefix + ip
	windowStart := strconv.FormatInt(now.Add(-l.window).UnixNano(), 10)
	member := strconv.FormatInt(now.UnixNano(), 10) + ":" + shortuuid.New()

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", windowStart)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, l.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("rate limiter unavailable, allowing submission: %v", err)
		return true
	}

	return count.Val() <= int64(l.limit)
}
