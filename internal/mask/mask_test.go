package mask

import (
	"strings"
	"testing"

	"github.com/redactlab/maskcore/internal/span"
)

func TestMaskFragmentStability(t *testing.T) {
	s := NewSession("<<", ">>")

	text := "a@b.co sent to a@b.co"
	spans := []span.Span{
		{Label: "EMAIL", Start: 0, End: 6, Text: "a@b.co"},
		{Label: "EMAIL", Start: 15, End: 21, Text: "a@b.co"},
	}

	out, err := s.MaskFragment(text, spans)
	if err != nil {
		t.Fatalf("MaskFragment: %v", err)
	}

	m := s.Map()
	if m.Len() != 1 {
		t.Fatalf("expected 1 distinct placeholder for repeated identical text, got %d", m.Len())
	}

	placeholder := m.Entries()[0].Placeholder
	if got := strings.Count(out, placeholder); got != 2 {
		t.Fatalf("expected placeholder to appear 2 times, got %d in %q", got, out)
	}
}

func TestMaskDistinctValuesDistinctPlaceholders(t *testing.T) {
	s := NewSession("<<", ">>")
	text := "a@b.co and c@d.co"
	spans := []span.Span{
		{Label: "EMAIL", Start: 0, End: 6, Text: "a@b.co"},
		{Label: "EMAIL", Start: 11, End: 17, Text: "c@d.co"},
	}

	if _, err := s.MaskFragment(text, spans); err != nil {
		t.Fatalf("MaskFragment: %v", err)
	}

	m := s.Map()
	if m.Len() != 2 {
		t.Fatalf("expected 2 distinct placeholders, got %d", m.Len())
	}
	if m.Entries()[0].Placeholder == m.Entries()[1].Placeholder {
		t.Fatalf("distinct values produced the same placeholder")
	}
	if m.Entries()[0].Ordinal != 1 || m.Entries()[1].Ordinal != 2 || m.Entries()[0].OriginalText != "a@b.co" {
		t.Fatalf("expected ordinals 1 and 2 in first-appearance order, got %+v", m.Entries())
	}
}

func TestRehydrateRoundTrip(t *testing.T) {
	s := NewSession("<<", ">>")
	text := "Contact john.doe@example.com or 555-123-4567"
	spans := []span.Span{
		{Label: "EMAIL", Start: 8, End: 28, Text: "john.doe@example.com"},
		{Label: "PHONE", Start: 32, End: 44, Text: "555-123-4567"},
	}

	out, err := s.MaskFragment(text, spans)
	if err != nil {
		t.Fatalf("MaskFragment: %v", err)
	}

	got := Rehydrate(out, s.Map())
	if got != text {
		t.Fatalf("round trip failed: got %q, want %q", got, text)
	}
}

func TestRehydrateIdempotent(t *testing.T) {
	s := NewSession("<<", ">>")
	text := "a@b.co"
	spans := []span.Span{{Label: "EMAIL", Start: 0, End: 6, Text: "a@b.co"}}
	out, _ := s.MaskFragment(text, spans)

	once := Rehydrate(out, s.Map())
	twice := Rehydrate(once, s.Map())
	if once != twice {
		t.Fatalf("rehydrate is not idempotent: %q != %q", once, twice)
	}
}

func TestRehydrateLongestPlaceholderFirst(t *testing.T) {
	m := NewRehydrationMap()
	m.add(RehydrationEntry{Placeholder: "<<EMAIL_AAAAAA_1>>", OriginalText: "x@y.co", Label: "EMAIL", Ordinal: 1})
	m.add(RehydrationEntry{Placeholder: "<<EMAIL_AAAAAA_10>>", OriginalText: "z@y.co", Label: "EMAIL", Ordinal: 10})

	text := "<<EMAIL_AAAAAA_10>> and <<EMAIL_AAAAAA_1>>"
	got := Rehydrate(text, m)
	want := "z@y.co and x@y.co"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestValidFormat(t *testing.T) {
	m := NewRehydrationMap()
	m.add(RehydrationEntry{Placeholder: "<<EMAIL_AAAAAA_1>>", OriginalText: "x@y.co"})
	if !ValidFormat(m, "<<", ">>") {
		t.Fatalf("expected valid format")
	}

	bad := NewRehydrationMap()
	bad.add(RehydrationEntry{Placeholder: "[[EMAIL_AAAAAA_1]]", OriginalText: "x@y.co"})
	if ValidFormat(bad, "<<", ">>") {
		t.Fatalf("expected invalid format to be rejected")
	}
}
