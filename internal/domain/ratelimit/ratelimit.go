package ratelimit

import (
	"fmt"
	"math"
	"time"
)

// Defaults for the fixed window.
const (
	DefaultWindow      = 60 * time.Second
	DefaultMaxRequests = 10
)

// UnknownClient is the key used when no client address can be derived.
const UnknownClient = "unknown"

// Policy is a fixed-window admission rule.
type Policy struct {
	Window      time.Duration
	MaxRequests int
}

// DefaultPolicy returns 10 requests per 60 seconds.
func DefaultPolicy() Policy {
	return Policy{Window: DefaultWindow, MaxRequests: DefaultMaxRequests}
}

// Validate checks the policy bounds.
func (p Policy) Validate() error {
	if p.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %s", p.Window)
	}
	if p.MaxRequests <= 0 {
		return fmt.Errorf("rate limit max requests must be positive, got %d", p.MaxRequests)
	}
	return nil
}

// Entry is the per-client window state.
type Entry struct {
	Count   int
	ResetAt time.Time
}

// Expired reports whether the window has rolled over at now.
func (e Entry) Expired(now time.Time) bool {
	return !now.Before(e.ResetAt)
}

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfterSeconds returns whole seconds until the window resets, rounded up, never negative.
func (d Decision) RetryAfterSeconds(now time.Time) int {
	left := d.ResetAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Seconds()))
}

// RetryAfterMinutes rounds RetryAfterSeconds up to whole minutes.
func (d Decision) RetryAfterMinutes(now time.Time) int {
	secs := d.RetryAfterSeconds(now)
	return (secs + 59) / 60
}

// Apply runs the fixed-window transition for one request.
// A missing (zero) or expired entry starts a fresh window with count 1.
// A full window rejects without incrementing.
func Apply(e Entry, now time.Time, p Policy) (Entry, Decision) {
	if e.Count == 0 || e.Expired(now) {
		next := Entry{Count: 1, ResetAt: now.Add(p.Window)}
		return next, Decision{
			Allowed:   true,
			Limit:     p.MaxRequests,
			Remaining: p.MaxRequests - 1,
			ResetAt:   next.ResetAt,
		}
	}
	if e.Count >= p.MaxRequests {
		return e, Decision{
			Allowed:   false,
			Limit:     p.MaxRequests,
			Remaining: 0,
			ResetAt:   e.ResetAt,
		}
	}
	e.Count++
	return e, Decision{
		Allowed:   true,
		Limit:     p.MaxRequests,
		Remaining: p.MaxRequests - e.Count,
		ResetAt:   e.ResetAt,
	}
}
