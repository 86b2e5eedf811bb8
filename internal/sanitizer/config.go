package sanitizer

import "strings"

// Config is the orchestrator's own merged per-call configuration,
// matching the option table in spec.md §3. It is distinct from
// internal/config.Config, which additionally carries process-wide
// server/store wiring; this Config is what a single Sanitize call
// binds and owns exclusively for the duration of that call.
type Config struct {
	PatternPacks       []string
	RegexOnly          bool
	MinConfidence      float64
	StrictValidation   bool
	Whitelist          []string
	MaskTypes          []string
	PlaceholderPrefix  string
	PlaceholderSuffix  string
	MaxInputCharacters int
	FormatHint         string
}

// DefaultConfig returns the documented defaults (spec.md §3 and §6):
// prefix/suffix "<<"/">>", a 50,000 character cap, and min_confidence
// 0.85 for recognizer spans.
func DefaultConfig() Config {
	return Config{
		PatternPacks:       []string{"default"},
		RegexOnly:          false,
		MinConfidence:      0.85,
		StrictValidation:   false,
		PlaceholderPrefix:  "<<",
		PlaceholderSuffix:  ">>",
		MaxInputCharacters: 50000,
		FormatHint:         "auto",
	}
}

// Merge overlays non-zero fields of override onto the receiver's
// defaults, mirroring the original's "caller's config merged over
// defaults" binding step (spec.md §4.6 step 1).
func (c Config) Merge(override Config) Config {
	merged := c
	if override.PatternPacks != nil {
		merged.PatternPacks = override.PatternPacks
	}
	if override.RegexOnly {
		merged.RegexOnly = true
	}
	if override.MinConfidence != 0 {
		merged.MinConfidence = override.MinConfidence
	}
	if override.StrictValidation {
		merged.StrictValidation = true
	}
	if override.Whitelist != nil {
		merged.Whitelist = override.Whitelist
	}
	if override.MaskTypes != nil {
		merged.MaskTypes = override.MaskTypes
	}
	if override.PlaceholderPrefix != "" {
		merged.PlaceholderPrefix = override.PlaceholderPrefix
	}
	if override.PlaceholderSuffix != "" {
		merged.PlaceholderSuffix = override.PlaceholderSuffix
	}
	if override.MaxInputCharacters != 0 {
		merged.MaxInputCharacters = override.MaxInputCharacters
	}
	if override.FormatHint != "" {
		merged.FormatHint = override.FormatHint
	}
	return merged
}

// normalizedWhitelist lower-cases every whitelist entry, mirroring the
// original SanitizerConfig.normalize_whitelist: whitelist comparisons
// are always case-insensitive.
func (c Config) normalizedWhitelist() map[string]bool {
	set := make(map[string]bool, len(c.Whitelist))
	for _, w := range c.Whitelist {
		set[strings.ToLower(w)] = true
	}
	return set
}

func (c Config) maskTypeSet() map[string]bool {
	if len(c.MaskTypes) == 0 {
		return nil
	}
	set := make(map[string]bool, len(c.MaskTypes))
	for _, t := range c.MaskTypes {
		set[t] = true
	}
	return set
}
