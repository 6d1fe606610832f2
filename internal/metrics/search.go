package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and admission metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_requests_total",
			Help:      "Searches served, by method actually used",
		},
		[]string{"method"},
	)

	SearchDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_degraded_total",
			Help:      "Searches that fell back to keyword-only, by reason",
		},
		[]string{"reason"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Blend duration in seconds, including the query embedding call",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method"},
	)

	RateLimitDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ratelimit_decisions_total",
			Help:      "Rate limiter decisions (allowed, rejected, error)",
		},
		[]string{"result"},
	)

	EmbeddingIndexLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "embedding_index_loaded",
			Help:      "1 when the embedding index is loaded, 0 otherwise",
		},
	)

	EmbeddingIndexDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "embedding_index_documents",
			Help:      "Number of vectors in the loaded embedding index",
		},
	)

	EmbeddingIndexLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "embedding_index_loads_total",
			Help:      "Embedding index load attempts, by result",
		},
		[]string{"result"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search, rate limit and index metrics. Idempotent.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(
		SearchRequestsTotal,
		SearchDegradedTotal,
		SearchDuration,
		RateLimitDecisionsTotal,
		EmbeddingIndexLoaded,
		EmbeddingIndexDocuments,
		EmbeddingIndexLoadsTotal,
	)
	searchMetricsRegistered = true
}
