package method

// Method is the retrieval path actually used for a response.
type Method string

// Method constants.
const (
	// Hybrid blends keyword and semantic scores.
	Hybrid Method = "hybrid"
	// KeywordOnly ranks by exact-term relevance alone.
	KeywordOnly Method = "keyword-only"
)

// IsValid checks if the method is one of the supported values.
func (m Method) IsValid() bool {
	return m == Hybrid || m == KeywordOnly
}

// Reason explains why a search fell back to keyword-only.
type Reason string

// Degrade reasons. Empty means the hybrid path ran.
const (
	ReasonNone              Reason = ""
	ReasonEmptyQuery        Reason = "empty_query"
	ReasonIndexUnavailable  Reason = "index_unavailable"
	ReasonCredentialMissing Reason = "credential_missing"
	ReasonEmbeddingFailed   Reason = "embedding_failed"
	ReasonDimensionMismatch Reason = "dimension_mismatch"
)
