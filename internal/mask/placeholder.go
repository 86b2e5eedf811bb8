package mask

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/redactlab/maskcore/internal/span"
)

const truncatedDigestLen = 6
const digestWidenStep = 4

// Session scopes placeholder derivation to one sanitize call: per-label
// ordinal counters and the hash registry used for collision widening
// both live here, never at package scope, since spec.md forbids global
// mutable state in the core.
type Session struct {
	prefix, suffix string

	ordinals    map[string]int    // label -> next ordinal to assign
	placeholder map[string]string // label+"\x00"+text -> placeholder already assigned
	hashOwner   map[string]string // label+"\x00"+digest -> text that owns that digest
	rehydMap    *RehydrationMap
}

// NewSession starts a fresh masking session with the given placeholder
// bracketing tokens.
func NewSession(prefix, suffix string) *Session {
	return &Session{
		prefix:      prefix,
		suffix:      suffix,
		ordinals:    make(map[string]int),
		placeholder: make(map[string]string),
		hashOwner:   make(map[string]string),
		rehydMap:    NewRehydrationMap(),
	}
}

// Map returns the session's accumulated RehydrationMap. Valid to call
// at any point; typically called once after all fragments are masked.
func (s *Session) Map() *RehydrationMap {
	return s.rehydMap
}

// MaskFragment rewrites one fragment's text against its spans
// (expected to already be non-overlapping and ascending by start, per
// the Detection Engine's contract) and returns the rewritten text.
// Placeholders are assigned in ascending start order, so ordinals and
// map insertion order follow first appearance in the text; spans are
// then applied in descending start order so earlier offsets remain
// valid as each replacement changes the text's length.
func (s *Session) MaskFragment(text string, spans []span.Span) (string, error) {
	if len(spans) == 0 {
		return text, nil
	}

	ordered := make([]span.Span, len(spans))
	copy(ordered, spans)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	placeholders := make([]string, len(ordered))
	for i, sp := range ordered {
		if sp.Start < 0 || sp.End > len(text) || sp.Start > sp.End {
			return "", fmt.Errorf("mask: span [%d,%d) out of range for fragment of length %d", sp.Start, sp.End, len(text))
		}
		placeholders[i] = s.placeholderFor(sp.Label, sp.Text)
	}

	out := text
	for i := len(ordered) - 1; i >= 0; i-- {
		out = out[:ordered[i].Start] + placeholders[i] + out[ordered[i].End:]
	}
	return out, nil
}

// placeholderFor derives, or reuses, the placeholder for one (label,
// text) pair, recording it in the session's RehydrationMap the first
// time it is seen.
func (s *Session) placeholderFor(label, text string) string {
	key := label + "\x00" + text

	if placeholder, known := s.placeholder[key]; known {
		return placeholder
	}

	ordinal := s.ordinals[label] + 1
	s.ordinals[label] = ordinal

	digest := s.digestFor(label, text)
	placeholder := s.format(label, digest, ordinal)
	s.placeholder[key] = placeholder

	s.rehydMap.add(RehydrationEntry{
		Placeholder:  placeholder,
		OriginalText: text,
		Label:        label,
		Ordinal:      ordinal,
	})
	return placeholder
}

// digestFor returns the truncated hex digest for text under label,
// widening it by four hex characters at a time whenever the current
// truncation already belongs to a different text (a counter-example),
// so that each digest the session hands out is backed by exactly one
// original text.
func (s *Session) digestFor(label, text string) string {
	full := sha256.Sum256([]byte(text))
	fullHex := strings.ToUpper(hex.EncodeToString(full[:]))

	length := truncatedDigestLen
	for length <= len(fullHex) {
		digest := fullHex[:length]
		ownerKey := label + "\x00" + digest
		owner, exists := s.hashOwner[ownerKey]
		if !exists {
			s.hashOwner[ownerKey] = text
			return digest
		}
		if owner == text {
			return digest
		}
		length += digestWidenStep
	}
	return fullHex
}

func (s *Session) format(label, digest string, ordinal int) string {
	return fmt.Sprintf("%s%s_%s_%d%s", s.prefix, label, digest, ordinal, s.suffix)
}
