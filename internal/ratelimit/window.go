// Package ratelimit bounds per-subject request rates for the OTP send
// endpoints.
package ratelimit

import (
	"sync"
	"time"

	"github.com/fixitworks/fixit/internal/clock"
)

// Limiter is a fixed-window counter keyed by subject (phone number, email).
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clock   clock.Clock
	entries map[string]*entry
}

type entry struct {
	count       int
	windowStart time.Time
}

func NewLimiter(limit int, window time.Duration, clk clock.Clock) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		clock:   clk,
		entries: make(map[string]*entry),
	}
}

// Allow reports whether the subject may proceed and counts the attempt.
func (l *Limiter) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || now.Sub(e.windowStart) >= l.window {
		l.entries[key] = &entry{count: 1, windowStart: now}
		l.prune(now)
		return true
	}
	if e.count >= l.limit {
		return false
	}
	e.count++
	return true
}

// prune drops stale windows so the map does not grow unbounded. Called with
// the lock held.
func (l *Limiter) prune(now time.Time) {
	if len(l.entries) < 1024 {
		return
	}
	for k, e := range l.entries {
		if now.Sub(e.windowStart) >= l.window {
			delete(l.entries, k)
		}
	}
}
