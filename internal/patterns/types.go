// Package patterns implements the Pattern Registry: it loads, validates and
// compiles pattern packs into a prioritized, immutable rule table that the
// Detection Engine scans against.
package patterns

import "regexp"

// Validator is a named hook resolved at pack-load time. It takes the matched
// substring and reports whether it passes (e.g. the "luhn" validator for
// card numbers).
type Validator func(text string) bool

// CompiledRule is a single detection rule after pack compilation. Rules
// within a Registry are stored in a stable, deterministic order: by pack
// load order, then by order within a pack.
type CompiledRule struct {
	Label     string
	Regexes   []*regexp.Regexp
	Tier      int // 1 = high-confidence structural, 2 = heuristic
	Validator Validator
	Language  string
	Country   string
	PackName  string
	PackOrder int
	RuleOrder int
}

// HasValidator reports whether the rule carries a validator hook.
func (r *CompiledRule) HasValidator() bool {
	return r.Validator != nil
}
