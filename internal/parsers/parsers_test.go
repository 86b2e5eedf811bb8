package parsers

import (
	"reflect"
	"strings"
	"testing"
)

func TestPlainRoundTrip(t *testing.T) {
	p := PlainParser{}
	fragments, err := p.Parse("hello world")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(fragments) != 1 || fragments[0].Text != "hello world" {
		t.Fatalf("unexpected fragments: %+v", fragments)
	}

	out, err := p.Reconstruct("hello world", fragments, []string{"hello <<NAME_1>>"})
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if out != "hello <<NAME_1>>" {
		t.Fatalf("got %q", out)
	}
}

func TestStructuredParseAndReconstruct(t *testing.T) {
	input := map[string]any{
		"user": map[string]any{
			"email":  "a@b.co",
			"email2": "a@b.co",
		},
		"count": float64(3),
	}

	p := StructuredParser{}
	fragments, err := p.Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(fragments) != 2 {
		t.Fatalf("expected 2 string-leaf fragments, got %d", len(fragments))
	}

	replacements := make([]string, len(fragments))
	for i := range replacements {
		replacements[i] = "<<EMAIL_ABC123_1>>"
	}

	out, err := p.Reconstruct(input, fragments, replacements)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	got := out.(map[string]any)
	user := got["user"].(map[string]any)
	if user["email"] != "<<EMAIL_ABC123_1>>" || user["email2"] != "<<EMAIL_ABC123_1>>" {
		t.Fatalf("unexpected reconstruction: %+v", user)
	}
	if got["count"] != float64(3) {
		t.Fatalf("non-string leaf mutated: %+v", got["count"])
	}

	// original input must be untouched (Reconstruct deep-copies).
	if input["user"].(map[string]any)["email"] != "a@b.co" {
		t.Fatalf("Reconstruct mutated the original input")
	}
}

func TestStructuredDepthExceeded(t *testing.T) {
	var nest any = "leaf"
	for i := 0; i < MaxStructuredDepth+5; i++ {
		nest = map[string]any{"k": nest}
	}

	p := StructuredParser{}
	_, err := p.Parse(nest)
	if err == nil {
		t.Fatal("expected depth exceeded error")
	}
	if _, ok := err.(*DepthExceededError); !ok {
		t.Fatalf("expected *DepthExceededError, got %T", err)
	}
}

func TestStructuredArrayPath(t *testing.T) {
	input := map[string]any{
		"tags": []any{"one", "two"},
	}
	p := StructuredParser{}
	fragments, err := p.Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(fragments) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(fragments))
	}

	out, err := p.Reconstruct(input, fragments, []string{"ONE", "TWO"})
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	got := out.(map[string]any)["tags"].([]any)
	if !reflect.DeepEqual(got, []any{"ONE", "TWO"}) {
		t.Fatalf("got %+v", got)
	}
}

func TestMarkupParseTextAndAttributes(t *testing.T) {
	input := `<p title="Hi John">Contact <b>john.doe@example.com</b> now</p>`
	p := MarkupParser{}
	fragments, err := p.Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var sawAttr, sawText bool
	for _, f := range fragments {
		loc := f.Locator.(MarkupLocator)
		if loc.Attribute == "title" {
			sawAttr = true
			if f.Text != "Hi John" {
				t.Fatalf("unexpected attribute text %q", f.Text)
			}
		}
		if f.Text == "john.doe@example.com" {
			sawText = true
		}
	}
	if !sawAttr || !sawText {
		t.Fatalf("missing expected fragments: %+v", fragments)
	}
}

func TestMarkupReconstructPreservesTags(t *testing.T) {
	input := `<p title="Hi John">Contact john.doe@example.com now</p>`
	p := MarkupParser{}
	fragments, err := p.Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	replacements := make([]string, len(fragments))
	for i, f := range fragments {
		if f.Text == "Hi John" {
			replacements[i] = "Hi <<NAME_AAAAAA_1>>"
		} else {
			replacements[i] = "Contact <<EMAIL_BBBBBB_1>> now"
		}
	}

	out, err := p.Reconstruct(input, fragments, replacements)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	text := out.(string)
	if !strings.Contains(text, `<p title="Hi <<NAME_AAAAAA_1>>">`) {
		t.Fatalf("attribute not rewritten correctly: %q", text)
	}
	if !strings.Contains(text, "</p>") {
		t.Fatalf("tag structure lost: %q", text)
	}
}

func TestMarkupFallsBackOnNonMarkup(t *testing.T) {
	p := MarkupParser{}
	_, err := p.Parse("just some < angle bracket but no real tags >")
	if err == nil {
		t.Fatal("expected fallback error")
	}
	if _, ok := err.(*FallbackError); !ok {
		t.Fatalf("expected *FallbackError, got %T", err)
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		input any
		want  Kind
	}{
		{"plain text", KindPlain},
		{"<p>hi</p>", KindMarkup},
		{map[string]any{"a": "b"}, KindStructured},
	}
	for _, c := range cases {
		if got := Detect(c.input); got != c.want {
			t.Errorf("Detect(%v) = %s, want %s", c.input, got, c.want)
		}
	}
}
