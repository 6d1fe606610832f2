package usage

import (
	"fmt"
	"time"
)

// Period is the budget window a report covers.
type Period string

// Period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
)

// ParsePeriod accepts "day" or "month". Empty defaults to day.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodDay:
		return PeriodDay, nil
	case PeriodMonth:
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("unknown usage period %q (want day or month)", s)
	}
}

// Bounds returns the UTC window containing now.
func (p Period) Bounds(now time.Time) (start, end time.Time) {
	now = now.UTC()
	if p == PeriodMonth {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	}
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// Report is the embedding token consumption for one period.
// A zero limit means unlimited; Remaining is then -1.
type Report struct {
	Period      Period
	PeriodStart time.Time
	PeriodEnd   time.Time
	TokensUsed  int64
	TokensLimit int64
	Remaining   int64
}

// Exhausted reports whether a limited budget has no tokens left.
func (r Report) Exhausted() bool {
	return r.TokensLimit > 0 && r.Remaining <= 0
}
