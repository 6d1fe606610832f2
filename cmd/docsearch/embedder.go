package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/config"
	"github.com/kailas-cloud/docsearch/internal/db"
	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/metrics"
	budgetrepo "github.com/kailas-cloud/docsearch/internal/repository/budget"
	"github.com/kailas-cloud/docsearch/internal/repository/embcache"
	openaiEmb "github.com/kailas-cloud/docsearch/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/docsearch/internal/usecase/embedding"
)

// embedderChain keeps the provider reachable for health checks next to the decorated query embedder.
type embedderChain struct {
	provider *openaiEmb.Embedder
	query    domain.Embedder
	budget   *embeddinguc.BudgetTracker
}

// buildEmbedder assembles OpenAI -> Cached -> Instrumented -> Timeout.
// Returns nil without a credential: search then runs keyword-only.
func buildEmbedder(
	ctx context.Context, cfg config.EmbeddingConfig, store db.Store, logger *zap.Logger,
) *embedderChain {
	if cfg.APIKey == "" {
		logger.Warn("No embedding credential configured, search runs keyword-only")
		return nil
	}

	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Provider:   cfg.Provider,
		Logger:     logger,
	})

	var embedder domain.Embedder = base
	if store != nil && cfg.CacheTTLSec > 0 {
		embedder = embcache.New(base, store, cfg.Model,
			time.Duration(cfg.CacheTTLSec)*time.Second, metrics.EmbeddingCacheTotal, logger)
	}

	budget := buildBudget(ctx, cfg, store, logger)

	// Pass nil interface (not typed nil pointer!) if budget is not configured.
	var budgetChecker embeddinguc.BudgetChecker
	if budget != nil {
		budgetChecker = budget
	}
	embedder = embeddinguc.NewInstrumentedEmbedder(embedder, cfg.Provider, cfg.Model, budgetChecker, logger)

	logger.Info("Query embedder created",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Int("dimensions", cfg.Dimensions),
		zap.Bool("cache", store != nil && cfg.CacheTTLSec > 0),
	)

	return &embedderChain{
		provider: base,
		query:    embeddinguc.NewTimeoutEmbedder(embedder, time.Duration(cfg.TimeoutMS)*time.Millisecond),
		budget:   budget,
	}
}

// buildBudget returns nil when no limit is configured.
// Counters are loaded from and persisted to Redis when a store is available.
func buildBudget(
	ctx context.Context, cfg config.EmbeddingConfig, store db.Store, logger *zap.Logger,
) *embeddinguc.BudgetTracker {
	b := cfg.Budget
	if b.DailyTokenLimit <= 0 && b.MonthlyTokenLimit <= 0 {
		return nil
	}

	action := embeddinguc.BudgetActionWarn
	if b.Action == "reject" {
		action = embeddinguc.BudgetActionReject
	}
	tracker := embeddinguc.NewBudgetTracker(cfg.Provider, b.DailyTokenLimit, b.MonthlyTokenLimit, action, logger)
	if store != nil {
		tracker.WithStore(ctx, budgetrepo.New(store, 0, 0))
	}
	return tracker
}
