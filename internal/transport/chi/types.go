package chi

import (
	"time"

	"github.com/kailas-cloud/docsearch/internal/domain/document"
	"github.com/kailas-cloud/docsearch/internal/domain/usage"
)

// ErrorCode is the machine-readable error identifier in error responses.
type ErrorCode string

// Error codes.
const (
	CodeValidationFailed  ErrorCode = "validation_failed"
	CodeRateLimited       ErrorCode = "rate_limited"
	CodeDocumentNotFound  ErrorCode = "document_not_found"
	CodeIndexUnavailable  ErrorCode = "index_unavailable"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeInternalError     ErrorCode = "internal_error"
	CodeServiceDisabled   ErrorCode = "service_disabled"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// RateLimitedResponse is the 429 body.
type RateLimitedResponse struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	RetryAfter int       `json:"retry_after"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    string    `json:"reset_at"`
}

// DocumentResponse is the wire shape of a document.
type DocumentResponse struct {
	ID    string            `json:"id"`
	Type  string            `json:"type"`
	Title string            `json:"title"`
	URL   string            `json:"url"`
	Text  string            `json:"text"`
	Tags  []string          `json:"tags,omitempty"`
	Date  string            `json:"date,omitempty"`
	Meta  map[string]string `json:"meta,omitempty"`
}

// SearchResponse is the /api/search body.
type SearchResponse struct {
	Results []DocumentResponse `json:"results"`
	Method  string             `json:"method"`
	Count   int                `json:"count"`
}

// DocListResponse is the /api/docs body.
type DocListResponse struct {
	Docs  []DocumentResponse `json:"docs"`
	Count int                `json:"count"`
}

// HealthResponse is the /health body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ReloadResponse is the /admin/index/reload body.
type ReloadResponse struct {
	Loaded    bool   `json:"loaded"`
	Model     string `json:"model"`
	Dimension int    `json:"dimension"`
	Documents int    `json:"documents"`
}

func documentToResponse(d *document.Document) DocumentResponse {
	return DocumentResponse{
		ID:    d.ID(),
		Type:  string(d.Type()),
		Title: d.Title(),
		URL:   d.URL(),
		Text:  d.Text(),
		Tags:  d.Tags(),
		Date:  d.Date(),
		Meta:  d.Meta(),
	}
}

func documentsToResponse(docs []document.Document) []DocumentResponse {
	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = documentToResponse(&docs[i])
	}
	return out
}

// UsageResponse is the GET /admin/usage body. remaining is -1 when unlimited.
type UsageResponse struct {
	Period      string `json:"period"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	TokensUsed  int64  `json:"tokens_used"`
	TokensLimit int64  `json:"tokens_limit"`
	Remaining   int64  `json:"remaining"`
	Exhausted   bool   `json:"exhausted"`
}

func usageToResponse(r usage.Report) UsageResponse {
	return UsageResponse{
		Period:      string(r.Period),
		PeriodStart: r.PeriodStart.Format(time.RFC3339),
		PeriodEnd:   r.PeriodEnd.Format(time.RFC3339),
		TokensUsed:  r.TokensUsed,
		TokensLimit: r.TokensLimit,
		Remaining:   r.Remaining,
		Exhausted:   r.Exhausted(),
	}
}
