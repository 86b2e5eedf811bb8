package detect

import (
	"strings"

	"github.com/redactlab/maskcore/internal/span"
)

// whitelistFilter drops any span whose exact text is in the configured
// whitelist, compared case-insensitively since the whitelist is
// normalized to lower-case at config-bind time.
func whitelistFilter(spans []span.Span, whitelist map[string]bool) []span.Span {
	if len(whitelist) == 0 {
		return spans
	}
	out := spans[:0]
	for _, s := range spans {
		if whitelist[strings.ToLower(s.Text)] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// typeFilter drops spans whose label is not in maskTypes, when
// maskTypes is non-empty.
func typeFilter(spans []span.Span, maskTypes map[string]bool) []span.Span {
	if len(maskTypes) == 0 {
		return spans
	}
	out := spans[:0]
	for _, s := range spans {
		if maskTypes[s.Label] {
			out = append(out, s)
		}
	}
	return out
}
