package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/config"
	"github.com/kailas-cloud/docsearch/internal/db"
	dbRedis "github.com/kailas-cloud/docsearch/internal/db/redis"
	"github.com/kailas-cloud/docsearch/internal/domain/ratelimit"
	logpkg "github.com/kailas-cloud/docsearch/internal/logger"
	"github.com/kailas-cloud/docsearch/internal/metrics"
	"github.com/kailas-cloud/docsearch/internal/repository/corpus"
	embindexrepo "github.com/kailas-cloud/docsearch/internal/repository/embindex"
	ratelimitrepo "github.com/kailas-cloud/docsearch/internal/repository/ratelimit"
	chiTransport "github.com/kailas-cloud/docsearch/internal/transport/chi"
	cataloguc "github.com/kailas-cloud/docsearch/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/docsearch/internal/usecase/health"
	ratelimituc "github.com/kailas-cloud/docsearch/internal/usecase/ratelimit"
	searchuc "github.com/kailas-cloud/docsearch/internal/usecase/search"
	usageuc "github.com/kailas-cloud/docsearch/internal/usecase/usage"
	"github.com/kailas-cloud/docsearch/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, logpkg.Options{
		Level:    cfg.Logging.Level,
		Encoding: cfg.Logging.Encoding,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("rate_limit_driver", cfg.RateLimit.Driver),
		zap.Bool("redis", cfg.Redis.Enabled()),
		zap.Bool("semantic", cfg.Embedding.APIKey != ""),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Redis is optional: it backs the shared limiter, the query cache and budget persistence.
	var store db.Store
	if cfg.Redis.Enabled() {
		rs, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Redis.Addrs,
			Password: cfg.Redis.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
		defer rs.Close()

		if err := rs.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Redis not ready", zap.Error(err))
		}
		store = rs
		logger.Info("Connected to redis")
	}

	metrics.RegisterSearchMetrics()
	metrics.RegisterEmbeddingMetrics()

	docs, err := corpus.LoadFile(cfg.Search.CorpusFile)
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.String("path", cfg.Search.CorpusFile), zap.Error(err))
	}
	static, err := corpus.NewStatic(docs)
	if err != nil {
		logger.Fatal("Invalid corpus", zap.Error(err))
	}
	logger.Info("Corpus loaded", zap.Int("documents", static.Len()))

	loader := embindexrepo.NewLoader(cfg.Search.IndexFile, logger)
	if idx, ok := loader.Load(ctx); ok {
		logger.Info("Embedding index loaded",
			zap.String("model", idx.Model()),
			zap.Int("dimension", idx.Dimension()),
			zap.Int("documents", idx.Len()),
		)
	}
	if cfg.Search.WatchIndex {
		go func() {
			if err := loader.Watch(ctx); err != nil {
				logger.Warn("Index watcher stopped", zap.Error(err))
			}
		}()
	}

	chain := buildEmbedder(ctx, cfg.Embedding, store, logger)

	limiter := buildLimiter(ctx, cfg.RateLimit, store, logger)

	// Pass nil interfaces (not typed nil pointers) for disabled dependencies.
	var searchEmbedder searchuc.Embedder
	var embeddingHealth healthuc.EmbeddingChecker
	if chain != nil {
		searchEmbedder = chain.query
		embeddingHealth = chain.provider
	}
	var redisPinger healthuc.DBPinger
	if store != nil {
		redisPinger = store
	}
	var rateLimiter chiTransport.RateLimiter
	if limiter != nil {
		rateLimiter = limiter
	}

	searchSvc := searchuc.New(static, loader, searchEmbedder, logger)
	catalogSvc := cataloguc.New(static)
	healthSvc := healthuc.New(static, loader, embeddingHealth, redisPinger)

	server := chiTransport.NewServer(searchSvc, catalogSvc, healthSvc, rateLimiter, loader,
		chiTransport.SearchSettings{
			DefaultLimit:   cfg.Search.DefaultLimit,
			MaxLimit:       cfg.Search.MaxLimit,
			MaxQueryLength: cfg.Search.MaxQueryLength,
			SemanticWeight: cfg.Search.SemanticWeight,
			KeywordWeight:  cfg.Search.KeywordWeight,
		}, logger)
	if chain != nil && chain.budget != nil {
		server.WithUsage(usageuc.New(chain.budget))
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r, cfg.Auth.APIKeys)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildLimiter returns nil when rate limiting is disabled.
// The memory store gets a background sweeper; Redis keys expire on their own.
func buildLimiter(
	ctx context.Context, cfg config.RateLimitConfig, store db.Store, logger *zap.Logger,
) *ratelimituc.Limiter {
	if !cfg.IsEnabled() {
		logger.Warn("Rate limiting disabled")
		return nil
	}

	var backend ratelimituc.Store
	switch cfg.Driver {
	case "redis":
		backend = ratelimitrepo.NewRedisStore(store, cfg.KeyPrefix)
	default:
		mem := ratelimitrepo.NewMemoryStore()
		go mem.RunSweeper(ctx, time.Duration(cfg.SweepIntervalSec)*time.Second, logger)
		backend = mem
	}

	limiter, err := ratelimituc.New(backend, ratelimit.Policy{
		Window:      time.Duration(cfg.WindowSec) * time.Second,
		MaxRequests: cfg.MaxRequests,
	}, logger)
	if err != nil {
		logger.Fatal("Invalid rate limit policy", zap.Error(err))
	}
	return limiter
}
