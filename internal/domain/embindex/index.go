package embindex

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

// Defaults for generated artifacts.
const (
	FormatVersion    = "1.0"
	DefaultModel     = "text-embedding-3-small"
	DefaultDimension = 1536
)

// Index maps document ids to precomputed embedding vectors. Read-only after construction.
type Index struct {
	version     string
	model       string
	dimension   int
	generatedAt time.Time
	embeddings  map[string][]float32
}

// file is the on-disk JSON shape.
type file struct {
	Version     string               `json:"version"`
	Model       string               `json:"model"`
	Dimension   int                  `json:"dimension"`
	GeneratedAt string               `json:"generatedAt"`
	Embeddings  map[string][]float32 `json:"embeddings"`
}

// New builds an index, dropping vectors whose length differs from dimension.
// Returns the dropped ids sorted.
func New(
	version, model string, dimension int, generatedAt time.Time,
	embeddings map[string][]float32,
) (*Index, []string, error) {
	if version == "" {
		return nil, nil, fmt.Errorf("%w: version is required", domain.ErrIndexUnavailable)
	}
	if model == "" {
		return nil, nil, fmt.Errorf("%w: model is required", domain.ErrIndexUnavailable)
	}
	if dimension <= 0 {
		return nil, nil, fmt.Errorf("%w: dimension must be positive, got %d", domain.ErrIndexUnavailable, dimension)
	}
	if embeddings == nil {
		return nil, nil, fmt.Errorf("%w: embeddings object is required", domain.ErrIndexUnavailable)
	}

	kept := make(map[string][]float32, len(embeddings))
	var dropped []string
	for id, vec := range embeddings {
		if len(vec) != dimension {
			dropped = append(dropped, id)
			continue
		}
		kept[id] = vec
	}
	sort.Strings(dropped)

	return &Index{
		version:     version,
		model:       model,
		dimension:   dimension,
		generatedAt: generatedAt,
		embeddings:  kept,
	}, dropped, nil
}

// Parse decodes and validates an index file.
// An unparsable generatedAt is tolerated and yields the zero time.
func Parse(data []byte) (*Index, []string, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("%w: decode: %w", domain.ErrIndexUnavailable, err)
	}
	var generatedAt time.Time
	if f.GeneratedAt != "" {
		if ts, err := time.Parse(time.RFC3339Nano, f.GeneratedAt); err == nil {
			generatedAt = ts
		}
	}
	return New(f.Version, f.Model, f.Dimension, generatedAt, f.Embeddings)
}

// Encode serializes the index into its indented on-disk form.
func (x *Index) Encode() ([]byte, error) {
	f := file{
		Version:     x.version,
		Model:       x.model,
		Dimension:   x.dimension,
		GeneratedAt: x.generatedAt.UTC().Format(time.RFC3339Nano),
		Embeddings:  x.embeddings,
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode index: %w", err)
	}
	return data, nil
}

// Version returns the artifact format version.
func (x *Index) Version() string { return x.version }

// Model returns the embedding model that produced the vectors.
func (x *Index) Model() string { return x.model }

// Dimension returns the vector length shared by every entry.
func (x *Index) Dimension() int { return x.dimension }

// GeneratedAt returns the generation timestamp, zero if unknown.
func (x *Index) GeneratedAt() time.Time { return x.generatedAt }

// Len returns the number of vectors.
func (x *Index) Len() int { return len(x.embeddings) }

// Vector returns the embedding for a document id.
func (x *Index) Vector(id string) ([]float32, bool) {
	v, ok := x.embeddings[id]
	return v, ok
}

// Missing returns ids from the list that have no vector, in input order.
func (x *Index) Missing(ids []string) []string {
	var out []string
	for _, id := range ids {
		if _, ok := x.embeddings[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
