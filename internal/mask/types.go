// Package mask implements the Placeholder Engine: deterministic,
// content-addressed placeholder derivation, fragment rewriting, and
// reversal via a RehydrationMap, grounded on
// original_source/maskingengine/core/masking.py and masker.py.
package mask

// RehydrationEntry is one placeholder → original mapping produced by a
// single sanitize call.
type RehydrationEntry struct {
	Placeholder  string
	OriginalText string
	Label        string
	Ordinal      int
}

// RehydrationMap is the ordered association of RehydrationEntry keyed
// by placeholder produced by one sanitize call. Insertion order
// matches first-appearance order of each distinct (label, original)
// pair in source byte order.
type RehydrationMap struct {
	entries []RehydrationEntry
	index   map[string]int // placeholder -> index into entries
}

// NewRehydrationMap returns an empty map ready for use.
func NewRehydrationMap() *RehydrationMap {
	return &RehydrationMap{index: make(map[string]int)}
}

// Entries returns the map's entries in insertion order. The returned
// slice must not be mutated by callers.
func (m *RehydrationMap) Entries() []RehydrationEntry {
	return m.entries
}

// Lookup returns the original text for a placeholder.
func (m *RehydrationMap) Lookup(placeholder string) (string, bool) {
	i, ok := m.index[placeholder]
	if !ok {
		return "", false
	}
	return m.entries[i].OriginalText, true
}

// Len reports the number of distinct placeholders in the map.
func (m *RehydrationMap) Len() int {
	return len(m.entries)
}

func (m *RehydrationMap) add(entry RehydrationEntry) {
	m.index[entry.Placeholder] = len(m.entries)
	m.entries = append(m.entries, entry)
}

// Restore appends an entry that was produced by an earlier sanitize
// call and is being reloaded from a Store, preserving insertion order
// as recorded at persistence time.
func (m *RehydrationMap) Restore(entry RehydrationEntry) {
	m.add(entry)
}

// AsDocument renders the map as a plain key/value document (placeholder
// -> original text), the serializable shape from spec.md §6. The
// returned Go map carries no order, so callers that need the
// ordering guarantee must use Entries() instead of this convenience
// form when round-tripping through JSON.
func (m *RehydrationMap) AsDocument() map[string]string {
	doc := make(map[string]string, len(m.entries))
	for _, e := range m.entries {
		doc[e.Placeholder] = e.OriginalText
	}
	return doc
}
