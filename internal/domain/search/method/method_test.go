package method

import "testing"

func TestIsValid(t *testing.T) {
	for _, m := range []Method{Hybrid, KeywordOnly} {
		if !m.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", m)
		}
	}
	for _, m := range []Method{"", "keyword", "semantic", "HYBRID"} {
		if m.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", m)
		}
	}
}

func TestWireValues(t *testing.T) {
	if Hybrid != "hybrid" {
		t.Errorf("Hybrid = %q", Hybrid)
	}
	if KeywordOnly != "keyword-only" {
		t.Errorf("KeywordOnly = %q", KeywordOnly)
	}
}
