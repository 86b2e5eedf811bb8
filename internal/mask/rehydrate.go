package mask

import (
	"sort"
	"strings"
)

// Rehydrate performs longest-placeholder-first substring replacement,
// grounded on MaskingEngine.rehydrate_text: sorting placeholders by
// descending length before replacing avoids a shorter placeholder
// being a prefix of a longer one. Unknown placeholders in text are
// left intact.
func Rehydrate(text string, m *RehydrationMap) string {
	entries := m.Entries()
	if len(entries) == 0 {
		return text
	}

	ordered := make([]RehydrationEntry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool {
		return len(ordered[i].Placeholder) > len(ordered[j].Placeholder)
	})

	out := text
	for _, e := range ordered {
		out = strings.ReplaceAll(out, e.Placeholder, e.OriginalText)
	}
	return out
}

// ValidFormat reports whether every placeholder in m is bracketed by
// prefix/suffix, a defensive check before rehydration grounded on
// MaskingEngine.validate_rehydration_map.
func ValidFormat(m *RehydrationMap, prefix, suffix string) bool {
	for _, e := range m.Entries() {
		if !strings.HasPrefix(e.Placeholder, prefix) || !strings.HasSuffix(e.Placeholder, suffix) {
			return false
		}
	}
	return true
}
