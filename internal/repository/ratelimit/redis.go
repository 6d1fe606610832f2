package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain/ratelimit"
)

// windowCounter is the consumer interface for server-side windows (ISP).
type windowCounter interface {
	IncrWindow(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (db.WindowResult, error)
}

// RedisStore shares window state across replicas. Keys expire after one window.
type RedisStore struct {
	counter windowCounter
	prefix  string
}

// NewRedisStore creates a Redis-backed store. prefix is prepended to every client key.
func NewRedisStore(c windowCounter, prefix string) *RedisStore {
	return &RedisStore{counter: c, prefix: prefix}
}

// Hit applies one fixed-window step for key atomically on the server.
func (s *RedisStore) Hit(
	ctx context.Context, key string, now time.Time, p ratelimit.Policy,
) (ratelimit.Decision, error) {
	res, err := s.counter.IncrWindow(ctx, s.prefix+key, now, p.Window, p.MaxRequests)
	if err != nil {
		return ratelimit.Decision{}, fmt.Errorf("rate limit window %s: %w", key, err)
	}

	d := ratelimit.Decision{
		Allowed: res.Admitted,
		Limit:   p.MaxRequests,
		ResetAt: res.ResetAt,
	}
	if res.Admitted {
		d.Remaining = max(0, p.MaxRequests-int(res.Count))
	}
	return d, nil
}
