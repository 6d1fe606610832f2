package health

import "context"

// Status is the aggregated health status.
type Status string

const (
	// Healthy means every component is operational.
	Healthy Status = "ok"
	// Degraded means search works but runs keyword-only or without shared rate limits.
	Degraded Status = "degraded"
	// Unhealthy means search cannot serve results.
	Unhealthy Status = "error"
)

// CheckResult is one component's outcome.
type CheckResult string

const (
	// CheckOK indicates a passing check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing check.
	CheckError CheckResult = "error"
	// CheckDisabled marks a component that is not configured.
	CheckDisabled CheckResult = "disabled"
)

// Component names in Report.Checks.
const (
	ComponentCorpus    = "corpus"
	ComponentIndex     = "index"
	ComponentEmbedding = "embedding"
	ComponentRedis     = "redis"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	corpus    Corpus
	index     IndexSource
	embedding EmbeddingChecker
	redis     DBPinger
}

// New creates a Service. embedding and redis may be nil.
func New(corpus Corpus, index IndexSource, embedding EmbeddingChecker, redis DBPinger) *Service {
	return &Service{corpus: corpus, index: index, embedding: embedding, redis: redis}
}

// Check runs every check. An empty corpus is fatal; anything else only degrades.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 4)

	checks[ComponentCorpus] = result(s.corpus != nil && s.corpus.Len() > 0)

	if s.index != nil {
		_, ok := s.index.Load(ctx)
		checks[ComponentIndex] = result(ok)
	} else {
		checks[ComponentIndex] = CheckDisabled
	}

	if s.embedding != nil {
		checks[ComponentEmbedding] = result(s.embedding.HealthCheck(ctx) == nil)
	} else {
		checks[ComponentEmbedding] = CheckDisabled
	}

	if s.redis != nil {
		checks[ComponentRedis] = result(s.redis.Ping(ctx) == nil)
	}

	status := Healthy
	for name, v := range checks {
		if v != CheckError {
			continue
		}
		if name == ComponentCorpus {
			status = Unhealthy
			break
		}
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

func result(ok bool) CheckResult {
	if ok {
		return CheckOK
	}
	return CheckError
}
