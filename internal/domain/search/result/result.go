package result

import "github.com/kailas-cloud/docsearch/internal/domain/document"

// Result is a ranked document with its blended score. Transient, never stored.
type Result struct {
	doc   document.Document
	score float64
}

// New creates a search result.
func New(doc document.Document, score float64) Result {
	return Result{doc: doc, score: score}
}

// Document returns the matched document.
func (r *Result) Document() document.Document { return r.doc }

// ID returns the document identifier.
func (r *Result) ID() string { return r.doc.ID() }

// Score returns the relevance score.
func (r *Result) Score() float64 { return r.score }

// Documents strips scores, keeping order.
func Documents(rs []Result) []document.Document {
	out := make([]document.Document, len(rs))
	for i := range rs {
		out[i] = rs[i].doc
	}
	return out
}
