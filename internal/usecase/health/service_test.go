package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/docsearch/internal/domain/embindex"
)

// --- Mocks ---

type mockCorpus struct{ n int }

func (m mockCorpus) Len() int { return m.n }

type mockIndex struct{ ok bool }

func (m mockIndex) Load(_ context.Context) (*embindex.Index, bool) {
	if !m.ok {
		return nil, false
	}
	idx, _, _ := embindex.New("1.0", "m", 1, time.Time{}, map[string][]float32{"a": {1}})
	return idx, true
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockEmbeddingChecker struct{ err error }

func (m *mockEmbeddingChecker) HealthCheck(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck(t *testing.T) {
	down := errors.New("down")

	tests := []struct {
		name      string
		corpus    Corpus
		index     IndexSource
		embedding EmbeddingChecker
		redis     DBPinger
		want      Status
		checks    map[string]CheckResult
	}{
		{
			name:   "all healthy",
			corpus: mockCorpus{3}, index: mockIndex{true},
			embedding: &mockEmbeddingChecker{}, redis: &mockPinger{},
			want: Healthy,
			checks: map[string]CheckResult{
				ComponentCorpus: CheckOK, ComponentIndex: CheckOK,
				ComponentEmbedding: CheckOK, ComponentRedis: CheckOK,
			},
		},
		{
			name:   "no credential, no redis",
			corpus: mockCorpus{3}, index: mockIndex{true},
			want: Healthy,
			checks: map[string]CheckResult{
				ComponentCorpus: CheckOK, ComponentIndex: CheckOK, ComponentEmbedding: CheckDisabled,
			},
		},
		{
			name:   "index missing degrades",
			corpus: mockCorpus{3}, index: mockIndex{false}, embedding: &mockEmbeddingChecker{},
			want: Degraded,
			checks: map[string]CheckResult{
				ComponentCorpus: CheckOK, ComponentIndex: CheckError, ComponentEmbedding: CheckOK,
			},
		},
		{
			name:   "provider down degrades",
			corpus: mockCorpus{3}, index: mockIndex{true}, embedding: &mockEmbeddingChecker{err: down},
			want: Degraded,
			checks: map[string]CheckResult{
				ComponentCorpus: CheckOK, ComponentIndex: CheckOK, ComponentEmbedding: CheckError,
			},
		},
		{
			name:   "redis down degrades",
			corpus: mockCorpus{3}, index: mockIndex{true}, redis: &mockPinger{err: down},
			want: Degraded,
			checks: map[string]CheckResult{
				ComponentCorpus: CheckOK, ComponentIndex: CheckOK,
				ComponentEmbedding: CheckDisabled, ComponentRedis: CheckError,
			},
		},
		{
			name:   "empty corpus is fatal",
			corpus: mockCorpus{0}, index: mockIndex{false}, embedding: &mockEmbeddingChecker{err: down},
			want: Unhealthy,
			checks: map[string]CheckResult{
				ComponentCorpus: CheckError, ComponentIndex: CheckError, ComponentEmbedding: CheckError,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(tc.corpus, tc.index, tc.embedding, tc.redis).Check(context.Background())
			if r.Status != tc.want {
				t.Errorf("status = %q, want %q", r.Status, tc.want)
			}
			if len(r.Checks) != len(tc.checks) {
				t.Errorf("checks = %v, want %v", r.Checks, tc.checks)
			}
			for k, v := range tc.checks {
				if r.Checks[k] != v {
					t.Errorf("checks[%s] = %q, want %q", k, r.Checks[k], v)
				}
			}
		})
	}
}
