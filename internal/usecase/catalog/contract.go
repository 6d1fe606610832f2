package catalog

import (
	"context"

	"github.com/kailas-cloud/docsearch/internal/domain/document"
)

// Corpus provides the document set.
type Corpus interface {
	Documents(ctx context.Context) ([]document.Document, error)
}
