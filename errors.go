package docsearch

import "github.com/kailas-cloud/docsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery           = domain.ErrInvalidQuery
	ErrInvalidDocument        = domain.ErrInvalidDocument
	ErrInvalidCorpus          = domain.ErrInvalidCorpus
	ErrIndexUnavailable       = domain.ErrIndexUnavailable
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
)
