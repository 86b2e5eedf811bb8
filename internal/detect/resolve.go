package detect

import (
	"sort"

	"github.com/redactlab/maskcore/internal/span"
)

// resolveConflicts sorts candidates by (start asc, -length, tier asc,
// regex-before-model, pack order, rule order) and greedily walks them
// left to right: the first surviving span at any covered position
// wins, and a later span overlapping an accepted one is discarded. The
// result is ascending by start with no two spans overlapping.
func resolveConflicts(candidates []span.Span) []span.Span {
	if len(candidates) == 0 {
		return nil
	}

	sorted := make([]span.Span, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	var resolved []span.Span
	lastEnd := -1
	for _, s := range sorted {
		if s.Start < lastEnd {
			continue
		}
		resolved = append(resolved, s)
		lastEnd = s.End
	}
	return resolved
}

// less implements the full tie-break tuple; equal [start,end) pairs
// fall through the same comparisons, which is exactly the "ties on
// equal range" rule from spec.md §4.4.
func less(a, b span.Span) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	if la, lb := a.Len(), b.Len(); la != lb {
		return la > lb // longer match first
	}
	if a.RuleTier != b.RuleTier {
		return a.RuleTier < b.RuleTier // tier 1 beats tier 2
	}
	if a.Source != b.Source {
		return a.Source == span.SourceRegex // regex before model
	}
	if a.PackOrder != b.PackOrder {
		return a.PackOrder < b.PackOrder
	}
	return a.RuleOrder < b.RuleOrder
}
