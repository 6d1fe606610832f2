package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/domain/ratelimit"
)

const shardCount = 32

type shard struct {
	mu      sync.Mutex
	entries map[string]ratelimit.Entry
}

// MemoryStore keeps window entries in process memory.
// Keys are spread over mutex-guarded shards so unrelated clients do not contend.
type MemoryStore struct {
	shards [shardCount]shard
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	for i := range s.shards {
		s.shards[i].entries = make(map[string]ratelimit.Entry)
	}
	return s
}

func (s *MemoryStore) shardFor(key string) *shard {
	return &s.shards[xxhash.Sum64String(key)%shardCount]
}

// Hit applies one fixed-window step for key. The read-modify-write holds the shard lock.
func (s *MemoryStore) Hit(
	_ context.Context, key string, now time.Time, p ratelimit.Policy,
) (ratelimit.Decision, error) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	next, d := ratelimit.Apply(sh.entries[key], now, p)
	sh.entries[key] = next
	return d, nil
}

// Sweep drops entries whose window has rolled over. Returns the number removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	removed := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		for k, e := range sh.entries {
			if e.Expired(now) {
				delete(sh.entries, k)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

// Len returns the number of tracked clients.
func (s *MemoryStore) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		n += len(sh.entries)
		sh.mu.Unlock()
	}
	return n
}

// RunSweeper sweeps every interval until ctx is cancelled.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.Sweep(now); n > 0 {
				logger.Debug("Rate limit entries swept", zap.Int("removed", n), zap.Int("remaining", s.Len()))
			}
		}
	}
}
