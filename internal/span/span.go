// Package span defines the Span value type shared by the Entity Recognizer
// Adapter and the Detection Engine (spec.md §3), kept in its own package so
// neither has to import the other to describe a candidate finding.
package span

// Source identifies where a Span came from.
type Source string

const (
	SourceRegex Source = "regex"
	SourceModel Source = "model"
)

// Span is a candidate finding: a half-open interval [Start, End) in a
// string, with a label and origin. Invariants: 0 <= Start < End <= len(Text
// at detection time), Text == source[Start:End] at the time of detection.
type Span struct {
	Label      string
	Start      int
	End        int
	Text       string
	Confidence float64
	Source     Source
	RuleTier   int

	// PackOrder/RuleOrder break ties deterministically among regex spans;
	// both are zero for model spans.
	PackOrder int
	RuleOrder int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}
