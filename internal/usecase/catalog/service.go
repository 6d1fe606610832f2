package catalog

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/document"
)

// Service lists and fetches corpus documents.
type Service struct {
	corpus Corpus
}

// New creates a catalog service.
func New(corpus Corpus) *Service {
	return &Service{corpus: corpus}
}

// List returns documents in corpus order. An empty type returns all of them.
func (s *Service) List(ctx context.Context, typ string) ([]document.Document, error) {
	t := document.Type(typ)
	if typ != "" && !t.IsValid() {
		return nil, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidDocument, typ)
	}

	docs, err := s.corpus.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	if typ == "" {
		return docs, nil
	}

	out := make([]document.Document, 0, len(docs))
	for i := range docs {
		if docs[i].Type() == t {
			out = append(out, docs[i])
		}
	}
	return out, nil
}

// Get returns the document with the given id.
func (s *Service) Get(ctx context.Context, id string) (document.Document, error) {
	docs, err := s.corpus.Documents(ctx)
	if err != nil {
		return document.Document{}, fmt.Errorf("read corpus: %w", err)
	}
	for i := range docs {
		if docs[i].ID() == id {
			return docs[i], nil
		}
	}
	return document.Document{}, fmt.Errorf("document %q: %w", id, domain.ErrDocumentNotFound)
}
