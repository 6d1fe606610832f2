package chi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/ratelimit"
)

// ClientKey identifies the caller for rate limiting: the first X-Forwarded-For
// entry, then X-Real-IP, then "unknown".
func ClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return ratelimit.UnknownClient
}

func setRateLimitHeaders(w http.ResponseWriter, d ratelimit.Decision) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
}

func rateLimitError(d ratelimit.Decision, now time.Time) *domain.RateLimitError {
	return &domain.RateLimitError{
		Limit:      d.Limit,
		ResetAt:    d.ResetAt,
		RetryAfter: d.RetryAfterSeconds(now),
	}
}

// rateLimitedHandler renders ErrRateLimited with the back-off details.
func rateLimitedHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrRateLimited) {
		return false
	}
	var rle *domain.RateLimitError
	if !errors.As(err, &rle) {
		writeError(w, http.StatusTooManyRequests, CodeRateLimited, msg)
		return true
	}

	minutes := (rle.RetryAfter + 59) / 60
	w.Header().Set("Retry-After", strconv.Itoa(rle.RetryAfter))
	writeJSON(w, http.StatusTooManyRequests, RateLimitedResponse{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Please try again in %d minute(s).", minutes),
		RetryAfter: rle.RetryAfter,
		Limit:      rle.Limit,
		Remaining:  0,
		ResetAt:    rle.ResetAt.UTC().Format(time.RFC3339),
	})
	return true
}
