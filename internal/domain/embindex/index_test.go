package embindex

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

func TestParse_Valid(t *testing.T) {
	data := []byte(`{
		"version": "1.0",
		"model": "text-embedding-3-small",
		"dimension": 3,
		"generatedAt": "2025-01-02T03:04:05.000Z",
		"embeddings": {"a": [0.1, 0.2, 0.3], "b": [1, 0, 0]}
	}`)

	idx, dropped, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dropped) != 0 {
		t.Errorf("dropped = %v", dropped)
	}
	if idx.Model() != "text-embedding-3-small" || idx.Dimension() != 3 || idx.Version() != "1.0" {
		t.Errorf("unexpected header: %s %d %s", idx.Model(), idx.Dimension(), idx.Version())
	}
	if idx.Len() != 2 {
		t.Errorf("Len() = %d", idx.Len())
	}
	want := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	if !idx.GeneratedAt().Equal(want) {
		t.Errorf("GeneratedAt() = %v", idx.GeneratedAt())
	}
	if v, ok := idx.Vector("b"); !ok || v[0] != 1 {
		t.Errorf("Vector(b) = %v, %v", v, ok)
	}
	if _, ok := idx.Vector("zzz"); ok {
		t.Error("unexpected vector for unknown id")
	}
}

func TestParse_DropsWrongDimension(t *testing.T) {
	data := []byte(`{"version":"1.0","model":"m","dimension":2,
		"embeddings":{"ok":[1,2],"short":[1],"long":[1,2,3]}}`)

	idx, dropped, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", idx.Len())
	}
	if strings.Join(dropped, ",") != "long,short" {
		t.Errorf("dropped = %v", dropped)
	}
}

func TestParse_BadGeneratedAtTolerated(t *testing.T) {
	data := []byte(`{"version":"1.0","model":"m","dimension":1,"generatedAt":"yesterday","embeddings":{}}`)
	idx, _, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !idx.GeneratedAt().IsZero() {
		t.Errorf("expected zero time, got %v", idx.GeneratedAt())
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{oops`},
		{"missing version", `{"model":"m","dimension":1,"embeddings":{}}`},
		{"missing model", `{"version":"1.0","dimension":1,"embeddings":{}}`},
		{"zero dimension", `{"version":"1.0","model":"m","dimension":0,"embeddings":{}}`},
		{"missing embeddings", `{"version":"1.0","model":"m","dimension":1}`},
		{"embeddings not object", `{"version":"1.0","model":"m","dimension":1,"embeddings":[1,2]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tc.data))
			if !errors.Is(err, domain.ErrIndexUnavailable) {
				t.Fatalf("expected ErrIndexUnavailable, got %v", err)
			}
		})
	}
}

func TestEncode_RoundTripHeader(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	idx, _, err := New(FormatVersion, DefaultModel, 2, at, map[string][]float32{"x": {0.5, 0.5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := idx.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"generatedAt": "2025-06-01T12:00:00Z"`) {
		t.Errorf("unexpected encoding: %s", data)
	}

	back, _, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Dimension() != 2 || !back.GeneratedAt().Equal(at) {
		t.Errorf("unexpected decoded index: dim=%d at=%v", back.Dimension(), back.GeneratedAt())
	}
}

func TestMissing(t *testing.T) {
	idx, _, _ := New("1.0", "m", 1, time.Time{}, map[string][]float32{"a": {1}, "c": {1}})
	got := idx.Missing([]string{"a", "b", "c", "d"})
	if strings.Join(got, ",") != "b,d" {
		t.Errorf("Missing() = %v", got)
	}
}
