package search

import (
	"context"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/domain/embindex"
)

// Corpus provides the documents to rank.
type Corpus interface {
	Documents(ctx context.Context) ([]document.Document, error)
}

// IndexSource provides the precomputed document vectors. ok=false means no usable index.
type IndexSource interface {
	Load(ctx context.Context) (*embindex.Index, bool)
}

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
