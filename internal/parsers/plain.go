package parsers

import "fmt"

// PlainParser treats the entire input as one fragment. It is also the
// parser the markup variant falls back to when its input turns out not
// to be markup; the structured variant has no fallback.
type PlainParser struct{}

func (PlainParser) Kind() Kind { return KindPlain }

func (PlainParser) Parse(input any) ([]Fragment, error) {
	text, ok := input.(string)
	if !ok {
		return nil, fmt.Errorf("plain parser requires a string input, got %T", input)
	}
	return []Fragment{{Text: text, Locator: PlainLocator{}}}, nil
}

func (PlainParser) Reconstruct(_ any, fragments []Fragment, replacements []string) (any, error) {
	if len(fragments) != 1 || len(replacements) != 1 {
		return nil, fmt.Errorf("plain parser expects exactly one fragment, got %d", len(fragments))
	}
	return replacements[0], nil
}
