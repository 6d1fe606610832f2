package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

// DefaultTimeout bounds one query embedding so a slow provider only costs keyword-only results.
const DefaultTimeout = 5 * time.Second

// TimeoutEmbedder bounds each Embed call with a deadline.
type TimeoutEmbedder struct {
	inner   domain.Embedder
	timeout time.Duration
}

// NewTimeoutEmbedder wraps inner. A non-positive timeout uses DefaultTimeout.
func NewTimeoutEmbedder(inner domain.Embedder, timeout time.Duration) *TimeoutEmbedder {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TimeoutEmbedder{inner: inner, timeout: timeout}
}

// Embed runs inner under the deadline. A deadline hit is reported as a provider error.
func (t *TimeoutEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	res, err := t.inner.Embed(ctx, text)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrEmbeddingProviderError) {
			return domain.EmbeddingResult{}, fmt.Errorf("embedding timed out after %s: %w: %w",
				t.timeout, domain.ErrEmbeddingProviderError, err)
		}
		return domain.EmbeddingResult{}, err
	}
	return res, nil
}
