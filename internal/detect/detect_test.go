package detect

import (
	"context"
	"testing"

	"github.com/redactlab/maskcore/internal/patterns"
	"github.com/redactlab/maskcore/internal/span"
)

func mustRegistry(t *testing.T) *patterns.Registry {
	t.Helper()
	reg, err := patterns.Load([]string{"default"}, nil)
	if err != nil {
		t.Fatalf("patterns.Load: %v", err)
	}
	return reg
}

func TestDetectEmailAndPhone(t *testing.T) {
	engine := New(mustRegistry(t), nil)

	text := "Contact john.doe@example.com or 555-123-4567"
	spans, _, err := engine.Detect(context.Background(), text, Config{RegexOnly: true})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	var sawEmail, sawPhone bool
	for _, s := range spans {
		if s.Label == "EMAIL" && s.Text == "john.doe@example.com" {
			sawEmail = true
		}
		if s.Label == "PHONE" && s.Text == "555-123-4567" {
			sawPhone = true
		}
	}
	if !sawEmail {
		t.Fatalf("expected EMAIL span, got %+v", spans)
	}
	if !sawPhone {
		t.Fatalf("expected PHONE span, got %+v", spans)
	}

	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].End {
			t.Fatalf("overlapping spans in result: %+v", spans)
		}
	}
}

func TestDetectDegradesWithoutRecognizer(t *testing.T) {
	engine := New(mustRegistry(t), nil)

	_, degr, err := engine.Detect(context.Background(), "hello world", Config{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if degr == nil {
		t.Fatalf("expected a degradation when no recognizer is configured")
	}
}

func TestDetectLuhnStrictValidation(t *testing.T) {
	engine := New(mustRegistry(t), nil)

	text := "Card 4111111111111111 and 4111111111111112"
	spans, _, err := engine.Detect(context.Background(), text, Config{RegexOnly: true, StrictValidation: true})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	count := 0
	for _, s := range spans {
		if s.Label == "CREDIT_CARD_NUMBER" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 valid card span under strict validation, got %d: %+v", count, spans)
	}
}

func TestDetectLuhnStrictValidationDashedGroups(t *testing.T) {
	engine := New(mustRegistry(t), nil)

	text := "Card 4111-1111-1111-1111 and 4111-1111-1111-1112"
	spans, _, err := engine.Detect(context.Background(), text, Config{RegexOnly: true, StrictValidation: true})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	count := 0
	for _, s := range spans {
		if s.Label == "CREDIT_CARD_NUMBER" {
			count++
			if s.Text != "4111-1111-1111-1111" {
				t.Fatalf("unexpected card span text: %q", s.Text)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 valid card span under strict validation, got %d: %+v", count, spans)
	}
}

func TestDetectWhitelist(t *testing.T) {
	engine := New(mustRegistry(t), nil)

	text := "Write to support@company.com and to alice@company.com"
	cfg := Config{
		RegexOnly: true,
		Whitelist: map[string]bool{"support@company.com": true},
	}
	spans, _, err := engine.Detect(context.Background(), text, cfg)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	for _, s := range spans {
		if s.Text == "support@company.com" {
			t.Fatalf("whitelisted text was not filtered: %+v", spans)
		}
	}
	var sawAlice bool
	for _, s := range spans {
		if s.Text == "alice@company.com" {
			sawAlice = true
		}
	}
	if !sawAlice {
		t.Fatalf("expected alice@company.com to be detected, got %+v", spans)
	}
}

func TestDetectMaskTypesFilter(t *testing.T) {
	engine := New(mustRegistry(t), nil)

	text := "Contact john.doe@example.com or 555-123-4567"
	cfg := Config{RegexOnly: true, MaskTypes: map[string]bool{"PHONE": true}}
	spans, _, err := engine.Detect(context.Background(), text, cfg)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	for _, s := range spans {
		if s.Label != "PHONE" {
			t.Fatalf("mask_types filter let through %s", s.Label)
		}
	}
}

func TestResolveConflictsOverlap(t *testing.T) {
	spans := resolveConflicts([]span.Span{
		{Label: "A", Start: 0, End: 10, RuleTier: 2},
		{Label: "B", Start: 0, End: 10, RuleTier: 1},
	})
	if len(spans) != 1 || spans[0].Label != "B" {
		t.Fatalf("expected tier-1 span to win tie, got %+v", spans)
	}
}
