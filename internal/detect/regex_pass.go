package detect

import (
	"github.com/redactlab/maskcore/internal/span"
)

// regexPass scans text once per compiled rule's regexes, grounded on
// original_source/maskingengine/detectors/regex_detector.py's detect():
// collect every match first, validate, then let resolveConflicts do the
// deduplication instead of a per-rule dedup pass.
func (e *Engine) regexPass(text string, cfg Config) []span.Span {
	var spans []span.Span
	if e.registry == nil {
		return spans
	}

	for _, rule := range e.registry.Rules() {
		for _, re := range rule.Regexes {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				start, end := loc[0], loc[1]
				matched := text[start:end]

				tier := rule.Tier
				if rule.HasValidator() {
					if rule.Validator(matched) {
						// Validated: keep rule's own tier.
					} else if cfg.StrictValidation {
						continue
					} else {
						tier = downgradeTier(tier)
					}
				}

				spans = append(spans, span.Span{
					Label:      rule.Label,
					Start:      start,
					End:        end,
					Text:       matched,
					Confidence: 1.0,
					Source:     span.SourceRegex,
					RuleTier:   tier,
					PackOrder:  rule.PackOrder,
					RuleOrder:  rule.RuleOrder,
				})
			}
		}
	}
	return spans
}

// downgradeTier marks a span low-tier when its validator failed but
// strict_validation is off: tier 1 (high-confidence) becomes tier 2
// (heuristic); an already-heuristic rule stays as-is.
func downgradeTier(tier int) int {
	if tier < 2 {
		return 2
	}
	return tier
}
