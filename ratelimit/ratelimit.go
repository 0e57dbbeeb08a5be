// Package ratelimit caps how many frames a single connection may send within a
// fixed window, using Redis counters.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SatyamS-71/rmcs/domain"
)

const keyPrefix = "rmcs:ratelimit"

type Limiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

func NewLimiter(rdb *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{redis: rdb, limit: limit, window: window}
}

// Allow returns domain.ErrRateLimited once key has used up its window. The
// window's expiry is set in the same transaction that creates the counter, and
// Redis failures let the frame through.
func (l *Limiter) Allow(ctx context.Context, key string) error {
	if l == nil || l.redis == nil || l.limit <= 0 {
		return nil
	}

	k := fmt.Sprintf("%s:%s", keyPrefix, key)
	var incr *redis.IntCmd
	_, err := l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, l.window)
		incr = pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		slog.Warn("rate limit check failed", "clientId", key, "error", err)
		return nil
	}

	if incr.Val() > int64(l.limit) {
		return domain.ErrRateLimited
	}
	return nil
}
