package patterns

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

//go:embed packs/*.yaml
var embeddedPacks embed.FS

// Registry holds compiled rules from one or more loaded pattern packs.
// Once Load returns, a Registry is immutable and safe for concurrent use by
// many orchestrator calls.
type Registry struct {
	rules    []*CompiledRule
	warnings []string
}

// Load resolves each pack name to a document (first checking extraDirs,
// then the embedded built-in packs), validates its schema, and compiles
// every regular expression. Failure in any pack fails the whole load.
func Load(names []string, extraDirs []string) (*Registry, error) {
	reg := &Registry{}

	for packOrder, name := range names {
		data, label, err := resolvePack(name, extraDirs)
		if err != nil {
			return nil, err
		}

		raw, warnings, err := parsePackDocument(label, data)
		if err != nil {
			return nil, err
		}
		reg.warnings = append(reg.warnings, warnings...)

		seenLabels := make(map[string]bool)
		for ruleOrder, rr := range raw.Rules {
			if rr.Label == "" {
				return nil, ruleError(label, rr.Name, "rule has no label", nil)
			}
			if seenLabels[rr.Label] {
				return nil, ruleError(label, rr.Label, "duplicate label within pack", nil)
			}
			seenLabels[rr.Label] = true

			validator, known := lookupValidator(rr.Validator)
			if !known {
				return nil, ruleError(label, rr.Label, fmt.Sprintf("unknown validator %q", rr.Validator), nil)
			}

			caseInsensitive := containsFlag(rr.Flags, "case_insensitive") || containsFlag(rr.Flags, "i")

			tier := rr.Tier
			if tier == 0 {
				tier = 1
			}

			compiled := &CompiledRule{
				Label:     rr.Label,
				Tier:      tier,
				Validator: validator,
				Language:  rr.Language,
				Country:   rr.Country,
				PackName:  label,
				PackOrder: packOrder,
				RuleOrder: ruleOrder,
			}

			for _, p := range rr.Patterns {
				pattern := p
				if caseInsensitive {
					pattern = "(?i)" + pattern
				}
				re, err := regexp.Compile(pattern)
				if err != nil {
					return nil, ruleError(label, rr.Label, "invalid regular expression", err)
				}
				compiled.Regexes = append(compiled.Regexes, re)
			}

			if len(compiled.Regexes) == 0 {
				return nil, ruleError(label, rr.Label, "rule has no patterns", nil)
			}

			reg.rules = append(reg.rules, compiled)
		}
	}

	return reg, nil
}

// Rules returns the compiled rules in stable load order: by pack load
// order, then by order within a pack.
func (r *Registry) Rules() []*CompiledRule {
	return r.rules
}

// Warnings returns non-fatal schema warnings collected while loading.
func (r *Registry) Warnings() []string {
	return r.warnings
}

// resolvePack finds a pack document by name: extraDirs are searched first
// (as "<name>.yaml" or "<name>.yml"), then the embedded built-in packs.
func resolvePack(name string, extraDirs []string) ([]byte, string, error) {
	for _, dir := range extraDirs {
		for _, ext := range []string{".yaml", ".yml"} {
			p := filepath.Join(dir, name+ext)
			if data, err := os.ReadFile(p); err == nil {
				return data, name, nil
			}
		}
	}

	data, err := embeddedPacks.ReadFile(filepath.Join("packs", name+".yaml"))
	if err != nil {
		return nil, name, packError(name, "pack not found in extra dirs or built-in packs", err)
	}
	return data, name, nil
}
