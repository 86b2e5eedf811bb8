// Package recognizer implements the Entity Recognizer Adapter: a thin
// contract over an optional sequence-labeling model that produces
// candidate spans for unstructured entities (names, organizations,
// locations) that regexes cannot reliably describe. Training, loading
// strategy, and device selection for the underlying model are external to
// this package (spec.md §1); it only consumes a ready model file.
package recognizer

import "time"

// Config controls whether and how the adapter loads its backing model.
type Config struct {
	ModelPath string
	MaxLength int
	Timeout   time.Duration
}

// TokenLabel is one decoded token-classification result.
type TokenLabel struct {
	Label      string // raw model label, e.g. "PER", "B-ORG"
	Confidence float64
}

// canonicalLabels maps the raw labels a model emits to the canonical,
// uppercase labels used in placeholders (spec.md §4.2). Any raw label not
// present here is dropped rather than passed through, since an
// unrecognized label cannot be trusted to mean what its name suggests.
var canonicalLabels = map[string]string{
	"PER":    "NAME",
	"PERSON": "NAME",
	"ORG":    "ORGANIZATION",
	"LOC":    "LOCATION",
	"GPE":    "LOCATION",
}

// normalizeLabel strips a leading BIO prefix ("B-"/"I-") and maps to the
// canonical label set. The second return reports whether the label is
// recognized at all.
func normalizeLabel(raw string) (string, bool) {
	if len(raw) > 2 && (raw[1] == '-') && (raw[0] == 'B' || raw[0] == 'I') {
		raw = raw[2:]
	}
	canonical, ok := canonicalLabels[raw]
	return canonical, ok
}

// CanonicalLabels returns the set of labels the recognizer can ever emit.
// Nothing in this module calls it; mask_types filters are not checked
// against it.
func CanonicalLabels() []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range canonicalLabels {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
