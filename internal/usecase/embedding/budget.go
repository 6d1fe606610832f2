package embedding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

// BudgetAction selects what happens once a token budget is spent.
type BudgetAction string

const (
	// BudgetActionWarn logs and lets the request through.
	BudgetActionWarn BudgetAction = "warn"
	// BudgetActionReject fails with domain.ErrEmbeddingQuotaExceeded; search degrades to keyword-only.
	BudgetActionReject BudgetAction = "reject"
)

// BudgetStore persists counters across restarts.
type BudgetStore interface {
	IncrBy(ctx context.Context, key string, val int64) error
	Get(ctx context.Context, key string) (int64, error)
}

// BudgetUsage is a point-in-time view of the tracker, used by health reporting.
type BudgetUsage struct {
	DailyUsed    int64
	DailyLimit   int64
	MonthlyUsed  int64
	MonthlyLimit int64
}

// BudgetTracker counts embedding tokens per UTC day and month.
// Check is served from memory; Record persists write-behind when a store is attached.
type BudgetTracker struct {
	mu           sync.Mutex
	provider     string
	dailyLimit   int64
	monthlyLimit int64
	action       BudgetAction
	dailyUsed    int64
	monthlyUsed  int64
	day          time.Time
	month        time.Time
	now          func() time.Time
	store        BudgetStore
	logger       *zap.Logger
}

// BudgetOption configures a BudgetTracker.
type BudgetOption func(*BudgetTracker)

// WithBudgetClock overrides the wall clock.
func WithBudgetClock(now func() time.Time) BudgetOption {
	return func(b *BudgetTracker) { b.now = now }
}

// NewBudgetTracker creates a tracker. A zero limit means unlimited.
func NewBudgetTracker(
	provider string, dailyLimit, monthlyLimit int64,
	action BudgetAction, logger *zap.Logger, opts ...BudgetOption,
) *BudgetTracker {
	b := &BudgetTracker{
		provider:     provider,
		dailyLimit:   dailyLimit,
		monthlyLimit: monthlyLimit,
		action:       action,
		now:          time.Now,
		logger:       logger,
	}
	for _, o := range opts {
		o(b)
	}
	now := b.now().UTC()
	b.day, b.month = startOfDay(now), startOfMonth(now)
	return b
}

// WithStore attaches persistence and seeds the in-memory counters from it.
func (b *BudgetTracker) WithStore(ctx context.Context, store BudgetStore) *BudgetTracker {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.store = store
	now := b.now().UTC()

	if v, err := store.Get(ctx, b.dailyKey(now)); err == nil {
		b.dailyUsed = v
	} else {
		b.logger.Warn("Failed to load daily embedding budget", zap.Error(err))
	}
	if v, err := store.Get(ctx, b.monthlyKey(now)); err == nil {
		b.monthlyUsed = v
	} else {
		b.logger.Warn("Failed to load monthly embedding budget", zap.Error(err))
	}

	b.logger.Info("Embedding budget loaded",
		zap.String("provider", b.provider),
		zap.Int64("daily_used", b.dailyUsed),
		zap.Int64("monthly_used", b.monthlyUsed),
	)
	return b
}

func (b *BudgetTracker) dailyKey(t time.Time) string {
	return fmt.Sprintf("%sbudget:%s:daily:%s", domain.KeyPrefix, b.provider, t.Format("2006-01-02"))
}

func (b *BudgetTracker) monthlyKey(t time.Time) string {
	return fmt.Sprintf("%sbudget:%s:monthly:%s", domain.KeyPrefix, b.provider, t.Format("2006-01"))
}

// Check reports whether another embedding call may be made.
func (b *BudgetTracker) Check(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roll()

	overDaily := b.dailyLimit > 0 && b.dailyUsed >= b.dailyLimit
	overMonthly := b.monthlyLimit > 0 && b.monthlyUsed >= b.monthlyLimit
	if !overDaily && !overMonthly {
		return nil
	}
	if b.action == BudgetActionReject {
		return domain.ErrEmbeddingQuotaExceeded
	}

	b.logger.Warn("Embedding token budget exceeded",
		zap.String("provider", b.provider),
		zap.Int64("daily_used", b.dailyUsed),
		zap.Int64("daily_limit", b.dailyLimit),
		zap.Int64("monthly_used", b.monthlyUsed),
		zap.Int64("monthly_limit", b.monthlyLimit),
	)
	return nil
}

// Record adds consumed tokens. Store writes happen after the lock is released.
func (b *BudgetTracker) Record(tokens int64) {
	b.mu.Lock()
	b.roll()
	b.dailyUsed += tokens
	b.monthlyUsed += tokens
	store := b.store
	now := b.now().UTC()
	b.mu.Unlock()

	if store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, key := range []string{b.dailyKey(now), b.monthlyKey(now)} {
		if err := store.IncrBy(ctx, key, tokens); err != nil {
			b.logger.Warn("Failed to persist embedding budget", zap.String("key", key), zap.Error(err))
		}
	}
}

// RemainingDaily returns tokens left today, or -1 when unlimited.
func (b *BudgetTracker) RemainingDaily() int64 {
	u := b.Usage()
	return remaining(u.DailyLimit, u.DailyUsed)
}

// RemainingMonthly returns tokens left this month, or -1 when unlimited.
func (b *BudgetTracker) RemainingMonthly() int64 {
	u := b.Usage()
	return remaining(u.MonthlyLimit, u.MonthlyUsed)
}

// Usage returns current counters and limits.
func (b *BudgetTracker) Usage() BudgetUsage {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roll()
	return BudgetUsage{
		DailyUsed:    b.dailyUsed,
		DailyLimit:   b.dailyLimit,
		MonthlyUsed:  b.monthlyUsed,
		MonthlyLimit: b.monthlyLimit,
	}
}

// roll zeroes counters when the UTC day or month changes. Caller holds mu.
func (b *BudgetTracker) roll() {
	now := b.now().UTC()
	if d := startOfDay(now); d.After(b.day) {
		b.dailyUsed, b.day = 0, d
	}
	if m := startOfMonth(now); m.After(b.month) {
		b.monthlyUsed, b.month = 0, m
	}
}

func remaining(limit, used int64) int64 {
	if limit == 0 {
		return -1
	}
	return max(limit-used, 0)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
