package usage

import embeddinguc "github.com/kailas-cloud/docsearch/internal/usecase/embedding"

// BudgetReader exposes the shared token budget counters.
type BudgetReader interface {
	Usage() embeddinguc.BudgetUsage
}
