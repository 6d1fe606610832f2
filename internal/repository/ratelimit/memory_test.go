package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/domain/ratelimit"
)

var t0 = time.Unix(1_700_000_000, 0)

func TestMemoryStore_WindowLifecycle(t *testing.T) {
	s := NewMemoryStore()
	p := ratelimit.DefaultPolicy()
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		d, err := s.Hit(ctx, "1.2.3.4", t0.Add(time.Duration(i)*time.Second), p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !d.Allowed || d.Remaining != 10-i {
			t.Fatalf("request %d: %+v", i, d)
		}
	}

	d, _ := s.Hit(ctx, "1.2.3.4", t0.Add(20*time.Second), p)
	if d.Allowed || d.Remaining != 0 {
		t.Fatalf("11th request should be rejected: %+v", d)
	}
	if !d.ResetAt.Equal(t0.Add(time.Second + p.Window)) {
		t.Errorf("ResetAt = %v", d.ResetAt)
	}

	d, _ = s.Hit(ctx, "1.2.3.4", d.ResetAt, p)
	if !d.Allowed || d.Remaining != 9 {
		t.Fatalf("request at reset should open a fresh window: %+v", d)
	}
}

func TestMemoryStore_KeysIndependent(t *testing.T) {
	s := NewMemoryStore()
	p := ratelimit.Policy{Window: time.Minute, MaxRequests: 1}
	ctx := context.Background()

	if d, _ := s.Hit(ctx, "a", t0, p); !d.Allowed {
		t.Fatal("a should be admitted")
	}
	if d, _ := s.Hit(ctx, "a", t0, p); d.Allowed {
		t.Fatal("a second hit should be rejected")
	}
	if d, _ := s.Hit(ctx, "b", t0, p); !d.Allowed {
		t.Fatal("b should be admitted independently")
	}
}

func TestMemoryStore_ConcurrentHitsAdmitExactlyCap(t *testing.T) {
	s := NewMemoryStore()
	p := ratelimit.Policy{Window: time.Minute, MaxRequests: 10}
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, _ := s.Hit(ctx, "shared", t0, p)
			if d.Allowed {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != 10 {
		t.Errorf("admitted = %d, want exactly 10", admitted)
	}
}

func TestMemoryStore_Sweep(t *testing.T) {
	s := NewMemoryStore()
	p := ratelimit.Policy{Window: time.Minute, MaxRequests: 5}
	ctx := context.Background()

	for i := range 20 {
		_, _ = s.Hit(ctx, fmt.Sprintf("old-%d", i), t0, p)
	}
	_, _ = s.Hit(ctx, "fresh", t0.Add(50*time.Second), p)

	if s.Len() != 21 {
		t.Fatalf("Len() = %d", s.Len())
	}

	removed := s.Sweep(t0.Add(time.Minute))
	if removed != 20 {
		t.Errorf("removed = %d, want 20", removed)
	}
	if s.Len() != 1 {
		t.Errorf("Len() after sweep = %d, want 1", s.Len())
	}
}

func TestMemoryStore_RunSweeperStops(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.RunSweeper(ctx, time.Millisecond, zap.NewNop())
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on cancel")
	}
}
