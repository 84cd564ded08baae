package services

import (
	"sync"
	"time"
)

type windowEntry struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a fixed-window counter keyed by caller identity. Windows
// are anchored to the first action, not calendar-aligned. State lives in
// process memory only: a restart or a second instance starts fresh.
type RateLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string]*windowEntry
	now     func() time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		max:     max,
		window:  window,
		entries: map[string]*windowEntry{},
		now:     time.Now,
	}
}

// Allow consumes one slot for key. The read-modify-write is atomic per key;
// a denied call does not advance the counter.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[key]
	if !ok || now.After(entry.resetAt) {
		l.entries[key] = &windowEntry{count: 1, resetAt: now.Add(l.window)}
		return true
	}

	if entry.count >= l.max {
		return false
	}
	entry.count++
	return true
}

// RetryAfter reports how long the caller has to wait once denied.
func (l *RateLimiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		return 0
	}
	remaining := entry.resetAt.Sub(l.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}
