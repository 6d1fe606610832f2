package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

// Query and limit bounds.
const (
	// MaxLength is the maximum query length, counted in Unicode code points (runes),
	// not bytes or UTF-16 code units: one emoji counts as 1.
	MaxLength    = 500
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 100
)

// Validation messages. They reach clients verbatim.
const (
	MsgMissing  = "Query must be a non-empty string"
	MsgEmpty    = "Query cannot be empty"
	MsgTooLong  = "Query too long (max 500 characters)"
	MsgBadLimit = "Limit must be a number between 1 and 100"
)

// Error is a validation failure with a client-facing message.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap lets errors.Is match domain.ErrInvalidQuery.
func (e *Error) Unwrap() error { return domain.ErrInvalidQuery }

// Validate checks a raw query string. present is false when the
// parameter was absent from the request. The query is not normalized:
// the length check applies to the untrimmed value.
func Validate(raw string, present bool) error {
	return ValidateMax(raw, present, MaxLength)
}

// ValidateMax is Validate with a configurable length cap.
func ValidateMax(raw string, present bool, maxLen int) error {
	if !present {
		return &Error{Message: MsgMissing}
	}
	if strings.TrimSpace(raw) == "" {
		return &Error{Message: MsgEmpty}
	}
	if maxLen <= 0 {
		maxLen = MaxLength
	}
	if utf8.RuneCountInString(raw) > maxLen {
		if maxLen == MaxLength {
			return &Error{Message: MsgTooLong}
		}
		return &Error{Message: fmt.Sprintf("Query too long (max %d characters)", maxLen)}
	}
	return nil
}

// ParseLimit parses the optional limit parameter.
// Absent yields DefaultLimit; anything outside [MinLimit, MaxLimit] or non-integer is rejected.
func ParseLimit(raw string, present bool) (int, error) {
	if !present || raw == "" {
		return DefaultLimit, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < MinLimit || n > MaxLimit {
		return 0, &Error{Message: MsgBadLimit}
	}
	return n, nil
}
