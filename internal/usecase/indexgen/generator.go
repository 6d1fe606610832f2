package indexgen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/domain/embindex"
)

// Defaults for a generation run.
const (
	DefaultBatchSize = 64
	DefaultWorkers   = 2
)

// Options tunes a generation run. Zero values take the defaults; RPS <= 0 disables pacing.
type Options struct {
	Model     string
	Dimension int
	BatchSize int
	Workers   int
	RPS       float64
}

func (o Options) withDefaults() Options {
	if o.Model == "" {
		o.Model = embindex.DefaultModel
	}
	if o.Dimension <= 0 {
		o.Dimension = embindex.DefaultDimension
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	return o
}

// Generator embeds a whole corpus into an index artifact.
type Generator struct {
	embedder domain.Embedder
	opts     Options
	now      func() time.Time
	logger   *zap.Logger
}

// New creates a generator. embedder should support batching; plain embedders are called per text.
func New(embedder domain.Embedder, opts Options, logger *zap.Logger) *Generator {
	return &Generator{
		embedder: embedder,
		opts:     opts.withDefaults(),
		now:      time.Now,
		logger:   logger,
	}
}

// Generate embeds every document text and returns the index.
// Fails on the first batch error, on any vector of the wrong dimension,
// or when the vector count differs from the corpus size.
func (g *Generator) Generate(ctx context.Context, docs []document.Document) (*embindex.Index, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents to embed", domain.ErrInvalidCorpus)
	}

	pool, err := ants.NewPool(g.opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	limit := rate.Inf
	if g.opts.RPS > 0 {
		limit = rate.Limit(g.opts.RPS)
	}
	pacer := rate.NewLimiter(limit, 1)

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		embeddings = make(map[string][]float32, len(docs))
		tokens     int
		done       int
	)

	for start := 0; start < len(docs); start += g.opts.BatchSize {
		batch := docs[start:min(start+g.opts.BatchSize, len(docs))]

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()

			vecs, used, err := g.embedBatch(ctx, pacer, batch)
			if err != nil {
				cancel(err)
				return
			}

			mu.Lock()
			defer mu.Unlock()
			for i := range batch {
				embeddings[batch[i].ID()] = vecs[i]
			}
			tokens += used
			done += len(batch)
			g.logger.Info("Batch embedded",
				zap.Int("done", done),
				zap.Int("total", len(docs)),
			)
		})
		if err != nil {
			wg.Done()
			cancel(fmt.Errorf("submit batch: %w", err))
			break
		}
	}
	wg.Wait()

	if err := context.Cause(ctx); err != nil {
		return nil, err
	}
	if len(embeddings) != len(docs) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(docs), len(embeddings))
	}

	idx, _, err := embindex.New(embindex.FormatVersion, g.opts.Model, g.opts.Dimension, g.now().UTC(), embeddings)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	g.logger.Info("Embedding index generated",
		zap.String("model", g.opts.Model),
		zap.Int("dimension", g.opts.Dimension),
		zap.Int("documents", idx.Len()),
		zap.Int("total_tokens", tokens),
	)
	return idx, nil
}

func (g *Generator) embedBatch(
	ctx context.Context, pacer *rate.Limiter, batch []document.Document,
) ([][]float32, int, error) {
	if err := pacer.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("wait for rate limit: %w", err)
	}

	texts := make([]string, len(batch))
	for i := range batch {
		texts[i] = batch[i].Text()
	}

	res, err := domain.EmbedAll(ctx, g.embedder, texts)
	if err != nil {
		return nil, 0, fmt.Errorf("embed documents %s..%s: %w", batch[0].ID(), batch[len(batch)-1].ID(), err)
	}

	for i, vec := range res.Embeddings {
		if len(vec) != g.opts.Dimension {
			return nil, 0, fmt.Errorf("document %q: %w", batch[i].ID(),
				errDimension(g.opts.Dimension, len(vec)))
		}
	}
	return res.Embeddings, res.TotalTokens, nil
}

// ErrDimensionMismatch signals a provider vector of unexpected length.
var ErrDimensionMismatch = errors.New("unexpected embedding dimension")

func errDimension(want, got int) error {
	return fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, want, got)
}
