package patterns

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// rawPack and rawRule are the decoded shapes of a pattern pack document
// (spec.md §6). Loading is tolerant to benign schema extensions at the
// pattern level (unknown fields ignored with a warning) but unknown fields
// at the pack root are an error.
type rawPack struct {
	Name        string
	Description string
	Version     string
	Rules       []rawRule
}

type rawRule struct {
	Name      string
	Label     string
	Patterns  []string
	Tier      int
	Language  string
	Country   string
	Flags     []string
	Validator string
}

var packRootKeys = map[string]bool{
	"name": true, "description": true, "version": true, "patterns": true,
}

var patternKeys = map[string]bool{
	"name": true, "label": true, "patterns": true, "tier": true,
	"language": true, "country": true, "flags": true, "validator": true,
}

// parsePackDocument decodes a pattern pack YAML document, enforcing a
// strict schema at the pack root and a lenient one at the pattern level.
// It returns any non-fatal warnings about unrecognized pattern-level keys.
func parsePackDocument(packLabel string, data []byte) (*rawPack, []string, error) {
	var root map[string]interface{}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, packError(packLabel, "invalid YAML", err)
	}

	for key := range root {
		if !packRootKeys[key] {
			return nil, nil, packError(packLabel, fmt.Sprintf("unknown top-level field %q", key), nil)
		}
	}

	pack := &rawPack{
		Name:        stringField(root, "name"),
		Description: stringField(root, "description"),
		Version:     stringField(root, "version"),
	}

	rawPatterns, _ := root["patterns"].([]interface{})
	var warnings []string

	for _, item := range rawPatterns {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, nil, packError(packLabel, "pattern entry must be a mapping", nil)
		}

		for key := range entry {
			if !patternKeys[key] {
				warnings = append(warnings, fmt.Sprintf("pack %q: ignoring unknown pattern field %q", packLabel, key))
			}
		}

		rule := rawRule{
			Name:      stringField(entry, "name"),
			Label:     stringField(entry, "label"),
			Patterns:  stringSliceField(entry, "patterns"),
			Tier:      intField(entry, "tier", 1),
			Language:  stringField(entry, "language"),
			Country:   stringField(entry, "country"),
			Flags:     stringSliceField(entry, "flags"),
			Validator: stringField(entry, "validator"),
		}
		if rule.Label == "" {
			rule.Label = rule.Name
		}
		pack.Rules = append(pack.Rules, rule)
	}

	return pack, warnings, nil
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func intField(m map[string]interface{}, key string, def int) int {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		}
	}
	return def
}

func stringSliceField(m map[string]interface{}, key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func containsFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}
