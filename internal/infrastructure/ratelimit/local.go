// Package ratelimit provides the in-process rate limiter used when no
// shared counter store is configured. It protects the reader service's
// quota with a fixed one-hour window and a minimum spacing between
// calls, intentionally tighter than the provider's own limit.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	window     = time.Hour
	maxPerHour = 50
	minSpacing = 2 * time.Second
)

// LocalLimiter is a mutex-guarded fixed-window counter. Safe for
// concurrent use within one process; replicas each carry their own
// window, which under-protects a shared quota — deploy the Redis-backed
// limiter when running more than one instance.
type LocalLimiter struct {
	mu          sync.Mutex
	windowStart time.Time
	count       int
	lastRequest time.Time
	now         func() time.Time
}

func NewLocalLimiter() *LocalLimiter {
	return &LocalLimiter{now: time.Now}
}

// Allow reports whether a request may proceed and, if so, records it.
func (l *LocalLimiter) Allow(_ context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if now.Sub(l.windowStart) > window {
		l.windowStart = now
		l.count = 0
	}

	if l.count >= maxPerHour {
		return false, nil
	}
	if !l.lastRequest.IsZero() && now.Sub(l.lastRequest) < minSpacing {
		return false, nil
	}

	l.count++
	l.lastRequest = now
	return true, nil
}
