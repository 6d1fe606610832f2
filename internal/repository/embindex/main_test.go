package embindex

import (
	"os"
	"testing"

	"github.com/kailas-cloud/docsearch/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterSearchMetrics()
	os.Exit(m.Run())
}
