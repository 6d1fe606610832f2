package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/docsearch/internal/domain/usage"
)

// Service reports embedding token consumption.
type Service struct {
	br  BudgetReader
	now func() time.Time
}

// New creates a Service. br can be nil (no budget configured).
func New(br BudgetReader) *Service {
	return &Service{br: br, now: time.Now}
}

// Report builds the usage report for the period containing now.
func (s *Service) Report(_ context.Context, period domusage.Period) domusage.Report {
	start, end := period.Bounds(s.now())
	r := domusage.Report{
		Period:      period,
		PeriodStart: start,
		PeriodEnd:   end,
		Remaining:   -1,
	}
	if s.br == nil {
		return r
	}

	u := s.br.Usage()
	if period == domusage.PeriodMonth {
		r.TokensUsed, r.TokensLimit = u.MonthlyUsed, u.MonthlyLimit
	} else {
		r.TokensUsed, r.TokensLimit = u.DailyUsed, u.DailyLimit
	}
	if r.TokensLimit > 0 {
		r.Remaining = max(r.TokensLimit-r.TokensUsed, 0)
	}
	return r
}
