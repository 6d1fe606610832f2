package search

import (
	"slices"
	"strings"

	"github.com/kailas-cloud/docsearch/internal/domain/document"
)

// Term weights.
const (
	textWeight  = 1.0
	titleWeight = 2.0
	tagWeight   = 1.5
)

// KeywordSearch ranks docs by exact-term relevance.
// A blank query returns docs unchanged. Docs scoring 0 are dropped;
// ties keep corpus order. No truncation.
func KeywordSearch(query string, docs []document.Document) []document.Document {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return docs
	}

	scores := keywordScores(terms, docs)
	idx := rankedIndices(scores)

	out := make([]document.Document, len(idx))
	for i, j := range idx {
		out[i] = docs[j]
	}
	return out
}

// queryTerms lower-cases the query and splits it on whitespace.
func queryTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// keywordScores returns the raw score of every doc, aligned with docs.
func keywordScores(terms []string, docs []document.Document) []float64 {
	scores := make([]float64, len(docs))
	for i := range docs {
		scores[i] = keywordScore(terms, &docs[i])
	}
	return scores
}

func keywordScore(terms []string, doc *document.Document) float64 {
	text := strings.ToLower(doc.Text())
	title := strings.ToLower(doc.Title())

	var tags []string
	if len(doc.Tags()) > 0 {
		tags = make([]string, len(doc.Tags()))
		for i, t := range doc.Tags() {
			tags[i] = strings.ToLower(t)
		}
	}

	var score float64
	for _, term := range terms {
		score += textWeight * float64(strings.Count(text, term))
		score += titleWeight * float64(strings.Count(title, term))
		for _, tag := range tags {
			if strings.Contains(tag, term) {
				score += tagWeight
			}
		}
	}
	return score
}

// rankedIndices returns indices with a positive score, highest first, stable on ties.
func rankedIndices(scores []float64) []int {
	idx := make([]int, 0, len(scores))
	for i, s := range scores {
		if s > 0 {
			idx = append(idx, i)
		}
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case scores[a] > scores[b]:
			return -1
		case scores[a] < scores[b]:
			return 1
		}
		return 0
	})
	return idx
}
