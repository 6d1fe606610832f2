package ratelimit

import (
	"context"
	"time"

	"github.com/kailas-cloud/docsearch/internal/domain/ratelimit"
)

// Store is the window state backend (memory or Redis).
// Hit must apply the fixed-window step atomically per key.
type Store interface {
	Hit(ctx context.Context, key string, now time.Time, p ratelimit.Policy) (ratelimit.Decision, error)
}
