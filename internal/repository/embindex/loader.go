package embindex

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/docsearch/internal/domain/embindex"
	"github.com/kailas-cloud/docsearch/internal/metrics"
)

const flightKey = "index"

// Loader reads the embedding index file once and memoizes the first success.
// Concurrent first loads share one read. Failures are not memoized.
// A read that started before Invalidate never repopulates the cell.
type Loader struct {
	path     string
	readFile func(string) ([]byte, error)
	cell     atomic.Pointer[embindex.Index]
	group    singleflight.Group
	logger   *zap.Logger

	mu  sync.Mutex // guards gen together with cell writes
	gen uint64
}

// Option configures a Loader.
type Option func(*Loader)

// WithReadFile overrides the file reader.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(l *Loader) { l.readFile = fn }
}

// NewLoader creates a loader for the index at path. Nothing is read until Load.
func NewLoader(path string, logger *zap.Logger, opts ...Option) *Loader {
	l := &Loader{
		path:     path,
		readFile: os.ReadFile,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the index file location.
func (l *Loader) Path() string { return l.path }

// Load returns the memoized index, loading it on first use.
// Any read, parse or validation failure yields (nil, false) and is logged.
func (l *Loader) Load(ctx context.Context) (*embindex.Index, bool) {
	idx, err := l.load(ctx)
	if err != nil {
		l.logger.Warn("Embedding index unavailable", zap.String("path", l.path), zap.Error(err))
		return nil, false
	}
	return idx, true
}

// Current returns the memoized index without triggering a load.
func (l *Loader) Current() (*embindex.Index, bool) {
	idx := l.cell.Load()
	return idx, idx != nil
}

// Invalidate drops the memoized index; the next Load reads the file again.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.gen++
	l.cell.Store(nil)
	metrics.EmbeddingIndexLoaded.Set(0)
	metrics.EmbeddingIndexDocuments.Set(0)
	l.mu.Unlock()
	l.group.Forget(flightKey)
}

// Reload invalidates and loads again, returning the failure cause.
func (l *Loader) Reload(ctx context.Context) (*embindex.Index, error) {
	l.Invalidate()
	return l.load(ctx)
}

func (l *Loader) load(ctx context.Context) (*embindex.Index, error) {
	if idx := l.cell.Load(); idx != nil {
		return idx, nil
	}

	ch := l.group.DoChan(flightKey, func() (any, error) {
		if idx := l.cell.Load(); idx != nil {
			return idx, nil
		}
		l.mu.Lock()
		gen := l.gen
		l.mu.Unlock()

		idx, err := l.read()
		if err != nil {
			metrics.EmbeddingIndexLoadsTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		metrics.EmbeddingIndexLoadsTotal.WithLabelValues("ok").Inc()
		l.publish(gen, idx)
		return idx, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load embedding index: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		idx, _ := res.Val.(*embindex.Index)
		return idx, nil
	}
}

// publish memoizes idx unless the loader was invalidated since gen was taken.
func (l *Loader) publish(gen uint64, idx *embindex.Index) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen != gen {
		l.logger.Debug("Discarding index read superseded by invalidation", zap.String("path", l.path))
		return
	}
	if !l.cell.CompareAndSwap(nil, idx) {
		return
	}
	metrics.EmbeddingIndexLoaded.Set(1)
	metrics.EmbeddingIndexDocuments.Set(float64(idx.Len()))
}

func (l *Loader) read() (*embindex.Index, error) {
	data, err := l.readFile(filepath.Clean(l.path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}

	idx, dropped, err := embindex.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.path, err)
	}
	if len(dropped) > 0 {
		l.logger.Warn("Dropped embeddings with wrong dimension",
			zap.Int("dimension", idx.Dimension()),
			zap.Strings("ids", dropped),
		)
	}

	l.logger.Info("Embedding index loaded",
		zap.String("path", l.path),
		zap.String("model", idx.Model()),
		zap.Int("dimension", idx.Dimension()),
		zap.Int("documents", idx.Len()),
		zap.Time("generated_at", idx.GeneratedAt()),
	)
	return idx, nil
}
