package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/domain/search/method"
	"github.com/kailas-cloud/docsearch/internal/domain/search/query"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
	"github.com/kailas-cloud/docsearch/internal/logger"
	"github.com/kailas-cloud/docsearch/internal/metrics"
)

// Default blend weights.
const (
	DefaultSemanticWeight = 0.7
	DefaultKeywordWeight  = 0.3
)

// Options tunes one search. Zero values take the defaults.
type Options struct {
	Limit          int
	SemanticWeight float64
	KeywordWeight  float64
}

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = query.DefaultLimit
	}
	if o.SemanticWeight == 0 && o.KeywordWeight == 0 {
		o.SemanticWeight = DefaultSemanticWeight
		o.KeywordWeight = DefaultKeywordWeight
	}
	return o
}

// Outcome is a ranked result list plus the path that produced it.
type Outcome struct {
	Results []result.Result
	Method  method.Method
	Reason  method.Reason
}

// Service blends keyword and semantic relevance, falling back to keyword-only
// whenever the semantic path is unavailable.
type Service struct {
	corpus Corpus
	index  IndexSource
	embed  Embedder
	logger *zap.Logger
}

// New creates a search service. index and embed may be nil; searches then run keyword-only.
func New(corpus Corpus, index IndexSource, embed Embedder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{corpus: corpus, index: index, embed: embed, logger: logger}
}

// Search ranks the corpus for q. Semantic failures degrade to keyword-only
// and are reported in Outcome.Reason; the only error is a corpus read failure.
func (s *Service) Search(ctx context.Context, q string, opts Options) (Outcome, error) {
	docs, err := s.corpus.Documents(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("read corpus: %w", err)
	}

	start := time.Now()
	out := s.rank(ctx, q, docs, opts.withDefaults())

	metrics.SearchRequestsTotal.WithLabelValues(string(out.Method)).Inc()
	metrics.SearchDuration.WithLabelValues(string(out.Method)).Observe(time.Since(start).Seconds())
	if out.Reason != method.ReasonNone {
		metrics.SearchDegradedTotal.WithLabelValues(string(out.Reason)).Inc()
	}
	return out, nil
}

func (s *Service) rank(ctx context.Context, q string, docs []document.Document, opts Options) Outcome {
	if strings.TrimSpace(q) == "" {
		n := min(opts.Limit, len(docs))
		results := make([]result.Result, n)
		for i := range n {
			results[i] = result.New(docs[i], 0)
		}
		return Outcome{Results: results, Method: method.KeywordOnly, Reason: method.ReasonEmptyQuery}
	}

	terms := queryTerms(q)
	log := logger.FromContextOr(ctx, s.logger)

	if s.index == nil {
		return s.keywordOnly(log, terms, docs, opts, method.ReasonIndexUnavailable, nil)
	}
	idx, ok := s.index.Load(ctx)
	if !ok {
		return s.keywordOnly(log, terms, docs, opts, method.ReasonIndexUnavailable, nil)
	}
	if s.embed == nil {
		return s.keywordOnly(log, terms, docs, opts, method.ReasonCredentialMissing, nil)
	}

	emb, err := s.embed.Embed(ctx, q)
	if err != nil {
		return s.keywordOnly(log, terms, docs, opts, method.ReasonEmbeddingFailed, err)
	}
	if len(emb.Embedding) != idx.Dimension() {
		err = fmt.Errorf("query vector has %d dimensions, index has %d", len(emb.Embedding), idx.Dimension())
		return s.keywordOnly(log, terms, docs, opts, method.ReasonDimensionMismatch, err)
	}

	return Outcome{
		Results: blend(terms, emb.Embedding, idx, docs, opts),
		Method:  method.Hybrid,
	}
}

func (s *Service) keywordOnly(
	log *zap.Logger, terms []string, docs []document.Document,
	opts Options, reason method.Reason, cause error,
) Outcome {
	fields := []zap.Field{zap.String("reason", string(reason))}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	if reason == method.ReasonCredentialMissing {
		log.Debug("Semantic search disabled, using keyword-only", fields...)
	} else {
		log.Warn("Semantic search unavailable, using keyword-only", fields...)
	}

	return Outcome{
		Results: topResults(docs, keywordScores(terms, docs), opts.Limit),
		Method:  method.KeywordOnly,
		Reason:  reason,
	}
}
