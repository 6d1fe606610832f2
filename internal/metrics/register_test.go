package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegister_Idempotent(t *testing.T) {
	RegisterEmbeddingMetrics()
	RegisterEmbeddingMetrics()
	RegisterSearchMetrics()
	RegisterSearchMetrics()

	SearchDegradedTotal.WithLabelValues("index_unavailable").Inc()
	if v := testutil.ToFloat64(SearchDegradedTotal.WithLabelValues("index_unavailable")); v < 1 {
		t.Errorf("expected degraded counter >= 1, got %f", v)
	}
}
