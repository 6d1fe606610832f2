package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/document"
)

// LoadFile reads a YAML content file and flattens it into documents.
func LoadFile(path string) ([]document.Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	c, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	docs, err := Build(c)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return docs, nil
}

// Decode parses content YAML strictly: unknown keys are errors.
func Decode(data []byte) (Content, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Content
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return Content{}, fmt.Errorf("%w: content file is empty", domain.ErrInvalidCorpus)
		}
		return Content{}, fmt.Errorf("%w: %w", domain.ErrInvalidCorpus, err)
	}
	return c, nil
}
