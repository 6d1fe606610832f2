package ratelimit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/domain/ratelimit"
	"github.com/kailas-cloud/docsearch/internal/metrics"
)

// Limiter admits or rejects requests per client key under a fixed-window policy.
type Limiter struct {
	store  Store
	policy ratelimit.Policy
	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New creates a limiter. The policy must be valid.
func New(store Store, policy ratelimit.Policy, logger *zap.Logger, opts ...Option) (*Limiter, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	l := &Limiter{
		store:  store,
		policy: policy,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Policy returns the configured window and cap.
func (l *Limiter) Policy() ratelimit.Policy { return l.policy }

// Admit records one request for key.
// A store failure fails open: the decision admits and the store error is returned alongside it.
func (l *Limiter) Admit(ctx context.Context, key string) (ratelimit.Decision, error) {
	now := l.now()

	d, err := l.store.Hit(ctx, key, now, l.policy)
	if err != nil {
		metrics.RateLimitDecisionsTotal.WithLabelValues("error").Inc()
		l.logger.Warn("Rate limit store failed, admitting request",
			zap.String("client", key),
			zap.Error(err),
		)
		return ratelimit.Decision{
			Allowed:   true,
			Limit:     l.policy.MaxRequests,
			Remaining: l.policy.MaxRequests - 1,
			ResetAt:   now.Add(l.policy.Window),
		}, fmt.Errorf("rate limit store: %w", err)
	}

	if d.Allowed {
		metrics.RateLimitDecisionsTotal.WithLabelValues("allowed").Inc()
	} else {
		metrics.RateLimitDecisionsTotal.WithLabelValues("rejected").Inc()
	}
	return d, nil
}

// Now returns the limiter clock reading, used to render retry hints consistently.
func (l *Limiter) Now() time.Time { return l.now() }
