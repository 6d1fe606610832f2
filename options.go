package docsearch

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Engine.
type Option interface {
	apply(*engineConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	docs        []Document
	contentFile string
	indexFile   string

	embedder Embedder

	semanticWeight float64
	keywordWeight  float64

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithDocuments sets the corpus directly. Takes precedence over WithContentFile.
func WithDocuments(docs []Document) Option {
	return optionFunc(func(c *engineConfig) {
		c.docs = docs
	})
}

// WithContentFile builds the corpus from a YAML content file.
func WithContentFile(path string) Option {
	return optionFunc(func(c *engineConfig) {
		c.contentFile = path
	})
}

// WithIndexFile points at the precomputed embedding index.
// Without it every search runs keyword-only.
func WithIndexFile(path string) Option {
	return optionFunc(func(c *engineConfig) {
		c.indexFile = path
	})
}

// WithEmbedder sets the query embedding provider.
// Without it every search runs keyword-only.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *engineConfig) {
		c.embedder = e
	})
}

// WithWeights overrides the semantic and keyword blend weights.
// Defaults: 0.7 semantic, 0.3 keyword.
func WithWeights(semantic, keyword float64) Option {
	return optionFunc(func(c *engineConfig) {
		c.semanticWeight = semantic
		c.keywordWeight = keyword
	})
}

// WithLogger enables structured logging. Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *engineConfig) {
		c.logger = l
	})
}

// WithPrometheus registers engine metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *engineConfig) {
		c.metricsReg = reg
	})
}
