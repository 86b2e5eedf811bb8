// Package detect implements the Detection Engine: it runs the Pattern
// Registry's compiled regex rules and, optionally, the Entity
// Recognizer Adapter over a fragment of text, applies validators and
// filters, and resolves overlapping candidates into a single
// deterministically ordered, non-overlapping span list.
package detect

import (
	"context"

	"github.com/redactlab/maskcore/internal/patterns"
	"github.com/redactlab/maskcore/internal/recognizer"
	"github.com/redactlab/maskcore/internal/span"
)

// Config controls one detect() call. It is the subset of the
// orchestrator's merged sanitizer config that the Detection Engine
// itself needs.
type Config struct {
	RegexOnly        bool
	MinConfidence    float64
	StrictValidation bool
	Whitelist        map[string]bool // normalized (lower-cased) exact-match set
	MaskTypes        map[string]bool // empty means "no filter"
}

// Engine runs detection against a shared, read-only Pattern Registry
// and an optional Entity Recognizer Adapter. Both may be shared safely
// across concurrent Detect calls; Detect itself allocates only
// per-call state.
type Engine struct {
	registry   *patterns.Registry
	recognizer *recognizer.Adapter
}

// New builds an Engine. recog may be nil, in which case the engine
// always runs regex-only.
func New(registry *patterns.Registry, recog *recognizer.Adapter) *Engine {
	return &Engine{registry: registry, recognizer: recog}
}

// Degradation records why a call fell back from its intended mode,
// surfaced by the orchestrator as a non-fatal warning, never as a
// failure.
type Degradation struct {
	Reason string
}

// Detect runs the detection pipeline over text and returns a
// non-overlapping, ascending-start-order span list plus any
// degradation that occurred while producing it.
func (e *Engine) Detect(ctx context.Context, text string, cfg Config) ([]span.Span, *Degradation, error) {
	var candidates []span.Span
	candidates = append(candidates, e.regexPass(text, cfg)...)

	var degradation *Degradation
	if !cfg.RegexOnly {
		modelSpans, degr, err := e.recognizerPass(ctx, text, cfg)
		if err != nil {
			return nil, nil, err
		}
		candidates = append(candidates, modelSpans...)
		degradation = degr
	}

	candidates = whitelistFilter(candidates, cfg.Whitelist)
	candidates = typeFilter(candidates, cfg.MaskTypes)
	resolved := resolveConflicts(candidates)

	return resolved, degradation, nil
}
