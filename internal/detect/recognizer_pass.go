package detect

import (
	"context"

	"github.com/redactlab/maskcore/internal/span"
)

// recognizerPass consults the Entity Recognizer Adapter, dropping spans
// below min_confidence or labels outside the recognizer's canonical
// set. A recognizer error or an unavailable adapter degrades the call
// to regex-only rather than failing it.
func (e *Engine) recognizerPass(ctx context.Context, text string, cfg Config) ([]span.Span, *Degradation, error) {
	if e.recognizer == nil {
		return nil, &Degradation{Reason: "entity recognizer not configured"}, nil
	}
	if !e.recognizer.Available() {
		return nil, &Degradation{Reason: "entity recognizer unavailable"}, nil
	}

	spans, err := e.recognizer.LabelText(ctx, text)
	if err != nil {
		return nil, &Degradation{Reason: "entity recognizer inference failed: " + err.Error()}, nil
	}

	filtered := spans[:0]
	for _, s := range spans {
		if s.Confidence < cfg.MinConfidence {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered, nil, nil
}
