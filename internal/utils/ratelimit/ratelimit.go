// Package ratelimit provides a small in-memory fixed-window rate limiter.
//
// Counters are per-process: there is no coordination across server
// instances and no persistence across restarts. That makes the budget "best
// effort" rather than exact, which is an accepted limitation for the
// abuse-protection paths it guards.
package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	count   int
	resetAt time.Time
}

// FixedWindowLimiter counts requests per key in fixed windows.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	buckets map[string]bucket

	// now is swappable in tests.
	now func() time.Time
}

// NewFixedWindowLimiter creates an empty limiter.
func NewFixedWindowLimiter() *FixedWindowLimiter {
	return &FixedWindowLimiter{
		buckets: make(map[string]bucket),
		now:     time.Now,
	}
}

// Allow records one request against key and reports whether it fits within
// limit for the current window. A missing or elapsed window starts a new one
// of the given length. Rejected requests still count toward the window.
func (l *FixedWindowLimiter) Allow(key string, limit int, window time.Duration) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		b = bucket{count: 0, resetAt: now.Add(window)}
	}
	b.count++
	l.buckets[key] = b
	return b.count <= limit
}
