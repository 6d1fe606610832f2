package search

import (
	"github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/domain/embindex"
	"github.com/kailas-cloud/docsearch/internal/domain/search/result"
	"github.com/kailas-cloud/docsearch/internal/domain/vector"
)

// blend scores every doc as ws*semantic + wk*keyword and returns the top limit.
// Semantic similarity is mapped from [-1,1] to [0,1]; docs without a usable
// vector get 0. Keyword scores are divided by the batch maximum.
func blend(
	terms []string, query []float32, idx *embindex.Index,
	docs []document.Document, opts Options,
) []result.Result {
	kw := keywordScores(terms, docs)
	var maxKW float64
	for _, s := range kw {
		maxKW = max(maxKW, s)
	}

	final := make([]float64, len(docs))
	for i := range docs {
		var kwNorm float64
		if maxKW > 0 {
			kwNorm = kw[i] / maxKW
		}
		final[i] = opts.SemanticWeight*semanticScore(query, idx, docs[i].ID()) +
			opts.KeywordWeight*kwNorm
	}

	return topResults(docs, final, opts.Limit)
}

func semanticScore(query []float32, idx *embindex.Index, id string) float64 {
	v, ok := idx.Vector(id)
	if !ok {
		return 0
	}
	sim, err := vector.Cosine(query, v)
	if err != nil {
		return 0
	}
	return max(0, (sim+1)/2)
}

// topResults keeps positive scores, sorts them stably and truncates to limit.
func topResults(docs []document.Document, scores []float64, limit int) []result.Result {
	order := rankedIndices(scores)
	if len(order) > limit {
		order = order[:limit]
	}
	out := make([]result.Result, len(order))
	for i, j := range order {
		out[i] = result.New(docs[j], scores[j])
	}
	return out
}
