package corpus

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/document"
)

// Static serves a corpus fixed at construction. Safe for concurrent reads.
type Static struct {
	docs []document.Document
	byID map[string]int
}

// NewStatic validates docs and indexes them by id.
func NewStatic(docs []document.Document) (*Static, error) {
	if err := document.ValidateCorpus(docs); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCorpus, err)
	}
	cp := make([]document.Document, len(docs))
	copy(cp, docs)

	byID := make(map[string]int, len(cp))
	for i := range cp {
		byID[cp[i].ID()] = i
	}
	return &Static{docs: cp, byID: byID}, nil
}

// Documents returns the corpus in its canonical order.
// Callers must not modify the returned slice.
func (s *Static) Documents(_ context.Context) ([]document.Document, error) {
	return s.docs, nil
}

// ByType returns documents of one type, preserving corpus order.
func (s *Static) ByType(t document.Type) []document.Document {
	var out []document.Document
	for i := range s.docs {
		if s.docs[i].Type() == t {
			out = append(out, s.docs[i])
		}
	}
	return out
}

// ByID looks a document up by id.
func (s *Static) ByID(id string) (document.Document, bool) {
	i, ok := s.byID[id]
	if !ok {
		return document.Document{}, false
	}
	return s.docs[i], true
}

// Len returns the corpus size.
func (s *Static) Len() int { return len(s.docs) }
