package recognizer

import (
	"context"
	"unicode"

	"github.com/redactlab/maskcore/internal/logger"
	"github.com/redactlab/maskcore/internal/span"
)

// Adapter is the Entity Recognizer Adapter contract consumed by the
// Detection Engine: available() and label_text() from spec.md §4.2. It
// owns tokenization and BIO-span merging so the Detection Engine only
// ever sees whole-entity spans, never raw per-token labels.
type Adapter struct {
	backend TokenClassifier
	logger  *logger.Logger
}

// New builds an Adapter. The backend is resolved by the build tag in
// effect (backend_onnx.go or backend_stub.go); a nil or not-ready
// backend leaves the Adapter permanently unavailable.
func New(cfg Config, log *logger.Logger) *Adapter {
	backend := NewTokenClassifier(log, cfg.ModelPath, cfg.MaxLength)
	return &Adapter{backend: backend, logger: log}
}

// Available reports whether a model is loaded and ready for inference.
func (a *Adapter) Available() bool {
	return a.backend != nil && a.backend.IsReady()
}

// Close releases the backend's native resources, if any.
func (a *Adapter) Close() error {
	if a.backend == nil {
		return nil
	}
	return a.backend.Close()
}

// token is one whitespace-delimited run of text with its byte offsets
// in the original input, the unit the backend classifies.
type token struct {
	text       string
	start, end int
}

// tokenize splits text on whitespace boundaries, tracking byte offsets.
// This is a simple word tokenizer, not the model's own subword
// tokenizer; the backend turns each word into an input id itself (see
// backend_onnx.go, which hashes words rather than looking them up in a
// vocabulary).
func tokenize(text string) []token {
	var tokens []token
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, token{text: text[start:i], start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: text[start:], start: start, end: len(text)})
	}
	return tokens
}

// LabelText produces model-sourced spans for text. It returns an error
// only when the backend itself fails; an unavailable backend should be
// checked with Available before calling.
func (a *Adapter) LabelText(ctx context.Context, text string) ([]span.Span, error) {
	if !a.Available() {
		return nil, nil
	}

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	words := make([]string, len(tokens))
	for i, tk := range tokens {
		words[i] = tk.text
	}

	labels, err := a.backend.ClassifyTokens(ctx, words)
	if err != nil {
		return nil, err
	}

	return mergeBIOSpans(text, tokens, labels), nil
}

// mergeBIOSpans coalesces consecutive tokens carrying the same
// canonical label into one Span per entity, using the minimum
// per-token confidence as the span's confidence (the weakest link in
// the run is what a caller's min_confidence threshold should see).
func mergeBIOSpans(text string, tokens []token, labels []TokenLabel) []span.Span {
	var spans []span.Span

	var cur *span.Span
	prevIdx := -1
	flush := func() {
		if cur != nil {
			cur.Text = text[cur.Start:cur.End]
			spans = append(spans, *cur)
			cur = nil
		}
	}

	n := len(labels)
	if n > len(tokens) {
		n = len(tokens)
	}

	for i := 0; i < n; i++ {
		canonical, ok := normalizeLabel(labels[i].Label)
		if !ok {
			flush()
			prevIdx = -1
			continue
		}

		continuation := cur != nil && cur.Label == canonical && i == prevIdx+1
		if continuation {
			cur.End = tokens[i].end
			if labels[i].Confidence < cur.Confidence {
				cur.Confidence = labels[i].Confidence
			}
			prevIdx = i
			continue
		}

		flush()
		cur = &span.Span{
			Label:      canonical,
			Start:      tokens[i].start,
			End:        tokens[i].end,
			Confidence: labels[i].Confidence,
			Source:     span.SourceModel,
		}
		prevIdx = i
	}
	flush()

	return spans
}
