package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	limitWindow = time.Hour
	limitCap    = 50
	minSpacing  = 2 * time.Second
)

// RateLimiter is a fixed-window counter shared across replicas, keyed
// by service name so horizontally scaled deployments draw from a single
// upstream quota. Semantics match the in-process limiter: at most
// limitCap requests per window, never two requests closer than
// minSpacing apart.
type RateLimiter struct {
	client *redis.Client
	name   string
}

// NewRateLimiter creates a RateLimiter for the named external service.
func NewRateLimiter(client *redis.Client, name string) *RateLimiter {
	return &RateLimiter{client: client, name: name}
}

// Allow reports whether a request may proceed and, if so, records it.
// The spacing guard is an atomic SET NX with a minSpacing TTL, so
// concurrent callers across processes cannot race past it.
func (l *RateLimiter) Allow(ctx context.Context) (bool, error) {
	countKey := fmt.Sprintf("ratelimit:%s:count", l.name)
	spacingKey := fmt.Sprintf("ratelimit:%s:last", l.name)

	ok, err := l.client.SetNX(ctx, spacingKey, "1", minSpacing).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit spacing: %w", err)
	}
	if !ok {
		return false, nil
	}

	count, err := l.client.Incr(ctx, countKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit count: %w", err)
	}
	if count == 1 {
		// First hit opens the window.
		if err := l.client.Expire(ctx, countKey, limitWindow).Err(); err != nil {
			return false, fmt.Errorf("rate limit window: %w", err)
		}
	}

	return count <= limitCap, nil
}
