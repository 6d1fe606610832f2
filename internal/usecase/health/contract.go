package health

import (
	"context"

	"github.com/kailas-cloud/docsearch/internal/domain/embindex"
)

// Corpus reports how many documents are searchable.
type Corpus interface {
	Len() int
}

// IndexSource loads the embedding index.
type IndexSource interface {
	Load(ctx context.Context) (*embindex.Index, bool)
}

// DBPinger checks Redis availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
