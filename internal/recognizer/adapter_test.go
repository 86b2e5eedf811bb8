package recognizer

import "testing"

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"B-PER", "NAME", true},
		{"I-ORG", "ORGANIZATION", true},
		{"LOC", "LOCATION", true},
		{"O", "", false},
		{"B-MISC", "", false},
	}
	for _, c := range cases {
		got, ok := normalizeLabel(c.raw)
		if ok != c.ok || got != c.want {
			t.Errorf("normalizeLabel(%q) = (%q, %v), want (%q, %v)", c.raw, got, ok, c.want, c.ok)
		}
	}
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("John  Doe\tworks")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %+v", len(tokens), tokens)
	}
	if tokens[0].text != "John" || tokens[1].text != "Doe" || tokens[2].text != "works" {
		t.Fatalf("unexpected token text: %+v", tokens)
	}
}

func TestMergeBIOSpans(t *testing.T) {
	text := "John Doe works at Acme"
	tokens := tokenize(text)
	labels := []TokenLabel{
		{Label: "B-PER", Confidence: 0.9},
		{Label: "I-PER", Confidence: 0.8},
		{Label: "O", Confidence: 0.99},
		{Label: "O", Confidence: 0.99},
		{Label: "B-ORG", Confidence: 0.7},
	}

	spans := mergeBIOSpans(text, tokens, labels)
	if len(spans) != 2 {
		t.Fatalf("expected 2 merged spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Label != "NAME" || spans[0].Text != "John Doe" || spans[0].Confidence != 0.8 {
		t.Fatalf("unexpected name span: %+v", spans[0])
	}
	if spans[1].Label != "ORGANIZATION" || spans[1].Text != "Acme" {
		t.Fatalf("unexpected org span: %+v", spans[1])
	}
}

func TestAdapterUnavailableWithoutBackend(t *testing.T) {
	a := &Adapter{}
	if a.Available() {
		t.Fatal("expected adapter with nil backend to be unavailable")
	}
	spans, err := a.LabelText(nil, "text")
	if err != nil || spans != nil {
		t.Fatalf("expected no-op on unavailable adapter, got spans=%v err=%v", spans, err)
	}
}
