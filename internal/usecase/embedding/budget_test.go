package embedding

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestTracker(daily, monthly int64, action BudgetAction, clock *fakeClock) *BudgetTracker {
	return NewBudgetTracker("openai", daily, monthly, action, zap.NewNop(), WithBudgetClock(clock.Now))
}

func TestBudgetTracker_Check(t *testing.T) {
	tests := []struct {
		name    string
		daily   int64
		monthly int64
		action  BudgetAction
		record  int64
		wantErr bool
	}{
		{"below daily limit", 1000, 10000, BudgetActionReject, 500, false},
		{"daily spent, reject", 100, 0, BudgetActionReject, 100, true},
		{"monthly spent, reject", 0, 500, BudgetActionReject, 500, true},
		{"spent, warn allows", 100, 0, BudgetActionWarn, 200, false},
		{"unlimited", 0, 0, BudgetActionReject, 1 << 40, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clock := &fakeClock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
			bt := newTestTracker(tc.daily, tc.monthly, tc.action, clock)
			bt.Record(tc.record)

			err := bt.Check(context.Background())
			if tc.wantErr && !errors.Is(err, domain.ErrEmbeddingQuotaExceeded) {
				t.Fatalf("expected ErrEmbeddingQuotaExceeded, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestBudgetTracker_Remaining(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	bt := newTestTracker(1000, 10000, BudgetActionWarn, clock)
	bt.Record(300)

	if got := bt.RemainingDaily(); got != 700 {
		t.Errorf("RemainingDaily = %d, want 700", got)
	}
	if got := bt.RemainingMonthly(); got != 9700 {
		t.Errorf("RemainingMonthly = %d, want 9700", got)
	}

	bt.Record(5000)
	if got := bt.RemainingDaily(); got != 0 {
		t.Errorf("overspent RemainingDaily = %d, want 0", got)
	}

	unlimited := newTestTracker(0, 0, BudgetActionWarn, clock)
	if unlimited.RemainingDaily() != -1 || unlimited.RemainingMonthly() != -1 {
		t.Error("unlimited budget should report -1")
	}
}

func TestBudgetTracker_RollsOverAtUTCBoundaries(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 31, 23, 59, 0, 0, time.UTC)}
	bt := newTestTracker(100, 1000, BudgetActionReject, clock)
	bt.Record(100)

	if err := bt.Check(context.Background()); err == nil {
		t.Fatal("expected daily budget to be spent")
	}

	clock.t = time.Date(2026, 11, 1, 0, 0, 1, 0, time.UTC)
	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("new day should reset the budget: %v", err)
	}
	u := bt.Usage()
	if u.DailyUsed != 0 || u.MonthlyUsed != 0 {
		t.Errorf("usage after month rollover = %+v", u)
	}
}

func TestBudgetTracker_DayRolloverKeepsMonth(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 17, 23, 0, 0, 0, time.UTC)}
	bt := newTestTracker(100, 1000, BudgetActionWarn, clock)
	bt.Record(60)

	clock.t = clock.t.Add(2 * time.Hour)
	u := bt.Usage()
	if u.DailyUsed != 0 {
		t.Errorf("DailyUsed = %d, want 0", u.DailyUsed)
	}
	if u.MonthlyUsed != 60 {
		t.Errorf("MonthlyUsed = %d, want 60", u.MonthlyUsed)
	}
}

type mockBudgetStore struct {
	mu     sync.Mutex
	data   map[string]int64
	getErr error
	setErr error
}

func newMockBudgetStore() *mockBudgetStore {
	return &mockBudgetStore{data: make(map[string]int64)}
}

func (m *mockBudgetStore) IncrBy(_ context.Context, key string, val int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] += val
	return nil
}

func (m *mockBudgetStore) Get(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return 0, m.getErr
	}
	return m.data[key], nil
}

func (m *mockBudgetStore) value(key string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

func TestBudgetTracker_WithStore_LoadsCounters(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	store := newMockBudgetStore()
	store.data["docsearch:budget:openai:daily:2026-10-18"] = 300
	store.data["docsearch:budget:openai:monthly:2026-10"] = 5000

	bt := newTestTracker(1000, 10000, BudgetActionReject, clock).WithStore(context.Background(), store)

	u := bt.Usage()
	if u.DailyUsed != 300 || u.MonthlyUsed != 5000 {
		t.Errorf("usage = %+v", u)
	}
}

func TestBudgetTracker_Record_WritesBehind(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	store := newMockBudgetStore()
	bt := newTestTracker(10000, 100000, BudgetActionWarn, clock).WithStore(context.Background(), store)

	bt.Record(100)
	bt.Record(200)

	if got := store.value("docsearch:budget:openai:daily:2026-10-18"); got != 300 {
		t.Errorf("stored daily = %d, want 300", got)
	}
	if got := store.value("docsearch:budget:openai:monthly:2026-10"); got != 300 {
		t.Errorf("stored monthly = %d, want 300", got)
	}
}

func TestBudgetTracker_StoreErrorsAreNotFatal(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	store := newMockBudgetStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("write timeout")

	bt := newTestTracker(1000, 10000, BudgetActionWarn, clock).WithStore(context.Background(), store)
	bt.Record(50)

	if got := bt.Usage().DailyUsed; got != 50 {
		t.Errorf("DailyUsed = %d, want 50", got)
	}
}
