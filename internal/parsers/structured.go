package parsers

import (
	"fmt"
	"sort"
)

// MaxStructuredDepth bounds recursion over key/value trees. The data
// model is a tree, not a graph: self-referential structures cannot
// arise from a decoded document, but a maliciously deep one can, so
// depth is capped rather than trusted.
const MaxStructuredDepth = 64

// StructuredParser walks a decoded key/value tree (as produced by
// encoding/json's `any`-typed decoding: map[string]any, []any, and
// scalars) and emits one Fragment per string leaf. Map keys are never
// masked, only values.
type StructuredParser struct {
	MaxDepth int
}

func (p StructuredParser) Kind() Kind { return KindStructured }

func (p StructuredParser) maxDepth() int {
	if p.MaxDepth > 0 {
		return p.MaxDepth
	}
	return MaxStructuredDepth
}

func (p StructuredParser) Parse(input any) ([]Fragment, error) {
	var fragments []Fragment
	if err := walkStructured(input, nil, 0, p.maxDepth(), &fragments); err != nil {
		return nil, err
	}
	return fragments, nil
}

func walkStructured(node any, path []PathElem, depth, maxDepth int, out *[]Fragment) error {
	if depth > maxDepth {
		return &DepthExceededError{MaxDepth: maxDepth}
	}

	switch v := node.(type) {
	case string:
		locPath := make([]PathElem, len(path))
		copy(locPath, path)
		*out = append(*out, Fragment{Text: v, Locator: StructuredLocator{Path: locPath}})
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := walkStructured(v[k], append(path, PathElem{Key: k}), depth+1, maxDepth, out); err != nil {
				return err
			}
		}
	case []any:
		for i, elem := range v {
			if err := walkStructured(elem, append(path, PathElem{Index: i, IsIndex: true}), depth+1, maxDepth, out); err != nil {
				return err
			}
		}
	default:
		// Numbers, booleans, nil: not string leaves, passed through
		// untouched by not emitting a Fragment for them.
	}
	return nil
}

func (p StructuredParser) Reconstruct(input any, fragments []Fragment, replacements []string) (any, error) {
	if len(fragments) != len(replacements) {
		return nil, fmt.Errorf("structured parser: %d fragments but %d replacements", len(fragments), len(replacements))
	}

	result := deepCopyStructured(input)
	for i, frag := range fragments {
		loc, ok := frag.Locator.(StructuredLocator)
		if !ok {
			return nil, fmt.Errorf("structured parser: fragment %d has locator kind %s", i, frag.Locator.parserKind())
		}
		if err := setAtPath(&result, loc.Path, replacements[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func deepCopyStructured(node any) any {
	switch v := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = deepCopyStructured(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = deepCopyStructured(val)
		}
		return out
	default:
		return v
	}
}

func setAtPath(root *any, path []PathElem, value string) error {
	if len(path) == 0 {
		*root = value
		return nil
	}

	cur := *root
	for i, elem := range path {
		last := i == len(path)-1
		if elem.IsIndex {
			slice, ok := cur.([]any)
			if !ok || elem.Index < 0 || elem.Index >= len(slice) {
				return fmt.Errorf("structured parser: invalid index path at element %d", i)
			}
			if last {
				slice[elem.Index] = value
				return nil
			}
			cur = slice[elem.Index]
		} else {
			m, ok := cur.(map[string]any)
			if !ok {
				return fmt.Errorf("structured parser: invalid key path at element %d", i)
			}
			if last {
				m[elem.Key] = value
				return nil
			}
			cur = m[elem.Key]
		}
	}
	return nil
}
