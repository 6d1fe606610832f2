package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidQuery signals a query that failed validation.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrRateLimited signals a rejected request from a client over its window cap.
	ErrRateLimited = errors.New("rate limited")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidDocument signals a document or document filter that violates invariants.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidCorpus signals corpus-level violations (duplicate ids, empty content file).
	ErrInvalidCorpus = errors.New("invalid corpus")
	// ErrIndexUnavailable signals that the embedding index could not be loaded.
	ErrIndexUnavailable = errors.New("embedding index unavailable")

	// ErrEmbeddingQuotaExceeded signals an exhausted embedding budget.
	ErrEmbeddingQuotaExceeded = errors.New("embedding quota exceeded")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmbeddingDisabled signals that no embedding credential is configured.
	ErrEmbeddingDisabled = errors.New("embedding disabled")
)

// RateLimitError wraps ErrRateLimited with the window state the client needs to back off.
type RateLimitError struct {
	Limit      int
	ResetAt    time.Time
	RetryAfter int // seconds
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: retry after %ds", ErrRateLimited.Error(), e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }
