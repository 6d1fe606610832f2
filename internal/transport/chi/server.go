package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/domain"
	"github.com/kailas-cloud/docsearch/internal/domain/embindex"
	"github.com/kailas-cloud/docsearch/internal/domain/ratelimit"
	"github.com/kailas-cloud/docsearch/internal/domain/search/query"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
	"github.com/kailas-cloud/docsearch/internal/domain/usage"
	"github.com/kailas-cloud/docsearch/internal/logger"
	cataloguc "github.com/kailas-cloud/docsearch/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/docsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/docsearch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// RateLimiter admits requests per client key.
type RateLimiter interface {
	Admit(ctx context.Context, key string) (ratelimit.Decision, error)
	Now() time.Time
}

// IndexReloader re-reads the embedding index from disk.
type IndexReloader interface {
	Reload(ctx context.Context) (*embindex.Index, error)
}

// UsageReporter reports embedding token consumption.
type UsageReporter interface {
	Report(ctx context.Context, period usage.Period) usage.Report
}

// SearchSettings are the request-level search knobs from config.
type SearchSettings struct {
	DefaultLimit   int
	MaxLimit       int
	MaxQueryLength int
	SemanticWeight float64
	KeywordWeight  float64
}

// Server serves the search, catalog, health and admin endpoints.
type Server struct {
	search        *searchuc.Service
	catalog       *cataloguc.Service
	health        *healthuc.Service
	limiter       RateLimiter
	index         IndexReloader
	usage         UsageReporter
	settings      SearchSettings
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server. limiter and index may be nil.
func NewServer(
	search *searchuc.Service,
	catalog *cataloguc.Service,
	health *healthuc.Service,
	limiter RateLimiter,
	index IndexReloader,
	settings SearchSettings,
	logger *zap.Logger,
) *Server {
	if settings.DefaultLimit <= 0 {
		settings.DefaultLimit = query.DefaultLimit
	}
	if settings.MaxLimit <= 0 || settings.MaxLimit > query.MaxLimit {
		settings.MaxLimit = query.MaxLimit
	}
	if settings.MaxQueryLength <= 0 {
		settings.MaxQueryLength = query.MaxLength
	}

	s := &Server{
		search:   search,
		catalog:  catalog,
		health:   health,
		limiter:  limiter,
		index:    index,
		settings: settings,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		rateLimitedHandler,
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidDocument, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, CodeDocumentNotFound),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, CodeIndexUnavailable),
	}
	return s
}

// WithUsage enables GET /admin/usage.
func (s *Server) WithUsage(u UsageReporter) *Server {
	s.usage = u
	return s
}

// Routes mounts every endpoint on r. The admin routes require one of apiKeys.
func (s *Server) Routes(r chirouter.Router, apiKeys []string) {
	r.Get("/api/search", s.Search)
	r.Get("/api/docs", s.ListDocuments)
	r.Get("/api/docs/{id}", s.GetDocument)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Group(func(r chirouter.Router) {
		r.Use(BearerAuthMiddleware(apiKeys))
		r.Post("/admin/index/reload", s.ReloadIndex)
		r.Get("/admin/usage", s.GetUsage)
	})
}

// Search handles GET /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.limiter != nil {
		// Store failures are logged by the limiter and come back as an admitting decision.
		d, _ := s.limiter.Admit(ctx, ClientKey(r))
		setRateLimitHeaders(w, d)
		if !d.Allowed {
			s.handleDomainError(w, r, rateLimitError(d, s.limiter.Now()))
			return
		}
	}

	params := r.URL.Query()
	raw := params.Get("q")
	if err := query.ValidateMax(raw, params.Has("q"), s.settings.MaxQueryLength); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	limit, err := s.parseLimit(params.Get("limit"), params.Has("limit"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(ctx)
	out, err := s.search.Search(ctx, strings.TrimSpace(raw), searchuc.Options{
		Limit:          limit,
		SemanticWeight: s.settings.SemanticWeight,
		KeywordWeight:  s.settings.KeywordWeight,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setEmbeddingHeaders(w, usage)
	docs := result.Documents(out.Results)
	writeJSON(w, http.StatusOK, SearchResponse{
		Results: documentsToResponse(docs),
		Method:  string(out.Method),
		Count:   len(docs),
	})
}

func (s *Server) parseLimit(raw string, present bool) (int, error) {
	if !present || raw == "" {
		return s.settings.DefaultLimit, nil
	}
	n, err := query.ParseLimit(raw, present)
	if err != nil {
		return 0, err
	}
	return min(n, s.settings.MaxLimit), nil
}

// ListDocuments handles GET /api/docs.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.catalog.List(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DocListResponse{
		Docs:  documentsToResponse(docs),
		Count: len(docs),
	})
}

// GetDocument handles GET /api/docs/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.catalog.Get(r.Context(), chirouter.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToResponse(&doc))
}

// HealthCheck handles GET /health. Only a fatal report maps to 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ReloadIndex handles POST /admin/index/reload.
func (s *Server) ReloadIndex(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		writeError(w, http.StatusServiceUnavailable, CodeServiceDisabled, "embedding index is not configured")
		return
	}

	idx, err := s.index.Reload(r.Context())
	if err != nil {
		if !errors.Is(err, domain.ErrIndexUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
		}
		s.handleDomainError(w, r, err)
		return
	}

	logger.FromContextOr(r.Context(), s.logger).Info("Embedding index reloaded",
		zap.String("model", idx.Model()),
		zap.Int("documents", idx.Len()),
	)
	writeJSON(w, http.StatusOK, ReloadResponse{
		Loaded:    true,
		Model:     idx.Model(),
		Dimension: idx.Dimension(),
		Documents: idx.Len(),
	})
}

// GetUsage handles GET /admin/usage?period=day|month.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	if s.usage == nil {
		writeError(w, http.StatusServiceUnavailable, CodeServiceDisabled, "embedding is not configured")
		return
	}
	period, err := usage.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, usageToResponse(s.usage.Report(r.Context(), period)))
}

func setEmbeddingHeaders(w http.ResponseWriter, u *domain.EmbeddingUsage) {
	if u != nil && u.Used {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(u.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrRateLimited,
		domain.ErrInvalidDocument,
		domain.ErrDocumentNotFound,
		domain.ErrIndexUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler passes query validation messages through verbatim.
func validationHandler(w http.ResponseWriter, err error, _ string) bool {
	var qe *query.Error
	if !errors.As(err, &qe) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeValidationFailed, qe.Message)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Info("request rejected", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
