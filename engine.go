package docsearch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/domain/search/query"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
	"github.com/kailas-cloud/docsearch/internal/repository/corpus"
	embindexrepo "github.com/kailas-cloud/docsearch/internal/repository/embindex"
	searchuc "github.com/kailas-cloud/docsearch/internal/usecase/search"
)

// Engine searches one corpus. Safe for concurrent use.
type Engine struct {
	corpus *corpus.Static
	loader *embindexrepo.Loader
	search *searchuc.Service
	opts   searchuc.Options
	obs    *observer
}

// New builds the corpus and wires the search pipeline. The index file is read lazily.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	docs, err := buildCorpus(cfg)
	if err != nil {
		return nil, err
	}
	static, err := corpus.NewStatic(docs)
	if err != nil {
		return nil, fmt.Errorf("docsearch: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	// Pass nil interfaces (not typed nil pointers) for missing dependencies.
	var index searchuc.IndexSource
	var loader *embindexrepo.Loader
	if cfg.indexFile != "" {
		loader = embindexrepo.NewLoader(cfg.indexFile, logger)
		index = loader
	}
	var embedder searchuc.Embedder
	if cfg.embedder != nil {
		embedder = &embedderAdapter{inner: cfg.embedder}
	}

	return &Engine{
		corpus: static,
		loader: loader,
		search: searchuc.New(static, index, embedder, logger),
		opts: searchuc.Options{
			SemanticWeight: cfg.semanticWeight,
			KeywordWeight:  cfg.keywordWeight,
		},
		obs: obs,
	}, nil
}

func buildCorpus(cfg *engineConfig) ([]document.Document, error) {
	if cfg.docs != nil {
		docs := make([]document.Document, 0, len(cfg.docs))
		for _, d := range cfg.docs {
			doc, err := toDomain(d)
			if err != nil {
				return nil, fmt.Errorf("docsearch: %w: %w", domain.ErrInvalidDocument, err)
			}
			docs = append(docs, doc)
		}
		return docs, nil
	}
	if cfg.contentFile == "" {
		return nil, errors.New("docsearch: corpus required (use WithDocuments or WithContentFile)")
	}
	docs, err := corpus.LoadFile(cfg.contentFile)
	if err != nil {
		return nil, fmt.Errorf("docsearch: %w", err)
	}
	return docs, nil
}

// Search validates the query and ranks the corpus. limit 0 takes the default of 10;
// otherwise it must be between 1 and 100. Validation errors wrap ErrInvalidQuery.
func (e *Engine) Search(ctx context.Context, q string, limit int) (Response, error) {
	start := time.Now()

	if err := query.Validate(q, true); err != nil {
		e.obs.observe("search", "", start, err)
		return Response{}, err
	}
	if limit == 0 {
		limit = query.DefaultLimit
	}
	if limit < query.MinLimit || limit > query.MaxLimit {
		err := &query.Error{Message: query.MsgBadLimit}
		e.obs.observe("search", "", start, err)
		return Response{}, err
	}

	opts := e.opts
	opts.Limit = limit
	out, err := e.search.Search(ctx, strings.TrimSpace(q), opts)
	if err != nil {
		e.obs.observe("search", "", start, err)
		return Response{}, fmt.Errorf("docsearch: %w", err)
	}

	docs := result.Documents(out.Results)
	resp := Response{
		Results: fromDomainList(docs),
		Method:  string(out.Method),
		Count:   len(docs),
	}
	e.obs.observe("search", resp.Method, start, nil)
	return resp, nil
}

// Documents returns the whole corpus in canonical order.
func (e *Engine) Documents() []Document {
	docs, _ := e.corpus.Documents(context.Background())
	return fromDomainList(docs)
}

// ReloadIndex drops the memoized index and reads the file again.
// Fails with ErrIndexUnavailable when no index file is configured or the file is unusable.
func (e *Engine) ReloadIndex(ctx context.Context) (IndexInfo, error) {
	start := time.Now()

	if e.loader == nil {
		err := fmt.Errorf("docsearch: %w: no index file configured", domain.ErrIndexUnavailable)
		e.obs.observe("reload_index", "", start, err)
		return IndexInfo{}, err
	}

	idx, err := e.loader.Reload(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrIndexUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
		}
		err = fmt.Errorf("docsearch: %w", err)
		e.obs.observe("reload_index", "", start, err)
		return IndexInfo{}, err
	}

	e.obs.observe("reload_index", "", start, nil)
	return IndexInfo{Model: idx.Model(), Dimension: idx.Dimension(), Documents: idx.Len()}, nil
}
