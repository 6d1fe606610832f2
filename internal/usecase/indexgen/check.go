package indexgen

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/domain/embindex"
)

// ErrStale signals an index older than its content or missing documents.
var ErrStale = errors.New("embedding index is stale")

// Freshness describes how an index file relates to its content file.
type Freshness struct {
	IndexModTime   time.Time
	ContentModTime time.Time
	Missing        []string
}

// Stale reports whether the index needs regenerating.
func (f Freshness) Stale() bool {
	return f.IndexModTime.Before(f.ContentModTime) || len(f.Missing) > 0
}

// Err returns ErrStale with the reason, or nil when fresh.
func (f Freshness) Err() error {
	switch {
	case f.IndexModTime.Before(f.ContentModTime):
		return fmt.Errorf("%w: last updated %s, content changed %s", ErrStale,
			f.IndexModTime.UTC().Format(time.RFC3339), f.ContentModTime.UTC().Format(time.RFC3339))
	case len(f.Missing) > 0:
		return fmt.Errorf("%w: %d document(s) without a vector: %v", ErrStale, len(f.Missing), f.Missing)
	}
	return nil
}

// Check compares the index file against the content file and the built corpus.
// A missing or unreadable index is an error, not a stale result.
func Check(contentPath, indexPath string, docs []document.Document) (Freshness, error) {
	indexInfo, err := os.Stat(indexPath)
	if err != nil {
		return Freshness{}, fmt.Errorf("embedding index not found at %s: %w", indexPath, err)
	}
	contentInfo, err := os.Stat(contentPath)
	if err != nil {
		return Freshness{}, fmt.Errorf("content file not found at %s: %w", contentPath, err)
	}

	data, err := os.ReadFile(indexPath)
	if err != nil {
		return Freshness{}, fmt.Errorf("read index: %w", err)
	}
	idx, _, err := embindex.Parse(data)
	if err != nil {
		return Freshness{}, fmt.Errorf("parse index: %w", err)
	}

	ids := make([]string, len(docs))
	for i := range docs {
		ids[i] = docs[i].ID()
	}

	return Freshness{
		IndexModTime:   indexInfo.ModTime(),
		ContentModTime: contentInfo.ModTime(),
		Missing:        idx.Missing(ids),
	}, nil
}
