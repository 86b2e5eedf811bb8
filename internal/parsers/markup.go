package parsers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// defaultRecognizedAttributes are the attribute names whose values are
// treated as maskable text, per spec: alt text, titles, form values and
// placeholders are the attributes most likely to carry free-form PII.
var defaultRecognizedAttributes = map[string]bool{
	"alt":         true,
	"title":       true,
	"value":       true,
	"placeholder": true,
}

// MarkupParser tokenizes an HTML-like document with golang.org/x/net/html
// and emits one Fragment per text run plus one Fragment per recognized
// attribute value, each carrying a byte-offset range into the original
// input so Reconstruct can rewrite in place.
type MarkupParser struct {
	RecognizedAttributes map[string]bool
}

func (p MarkupParser) Kind() Kind { return KindMarkup }

func (p MarkupParser) recognized() map[string]bool {
	if p.RecognizedAttributes != nil {
		return p.RecognizedAttributes
	}
	return defaultRecognizedAttributes
}

func (p MarkupParser) Parse(input any) ([]Fragment, error) {
	text, ok := input.(string)
	if !ok {
		return nil, fmt.Errorf("markup parser requires a string input, got %T", input)
	}

	tokenizer := html.NewTokenizer(strings.NewReader(text))
	recognized := p.recognized()

	var fragments []Fragment
	offset := 0
	sawTag := false

	for {
		tt := tokenizer.Next()
		raw := tokenizer.Raw()

		if tt == html.ErrorToken {
			if err := tokenizer.Err(); err != io.EOF {
				return nil, &FallbackError{From: KindMarkup, To: KindPlain, Reason: err.Error()}
			}
			break
		}

		switch tt {
		case html.TextToken:
			if strings.TrimSpace(string(raw)) != "" {
				fragments = append(fragments, Fragment{
					Text:    string(raw),
					Locator: MarkupLocator{Start: offset, End: offset + len(raw)},
				})
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			sawTag = true
			token := tokenizer.Token()
			rawStr := string(raw)
			for _, attr := range token.Attr {
				if !recognized[strings.ToLower(attr.Key)] || attr.Val == "" {
					continue
				}
				if idx := attrValueOffset(rawStr, attr.Val); idx >= 0 {
					fragments = append(fragments, Fragment{
						Text: attr.Val,
						Locator: MarkupLocator{
							Start:     offset + idx,
							End:       offset + idx + len(attr.Val),
							Attribute: attr.Key,
						},
					})
				}
			}
		case html.EndTagToken:
			sawTag = true
		}

		offset += len(raw)
	}

	if !sawTag {
		return nil, &FallbackError{From: KindMarkup, To: KindPlain, Reason: "no tags found"}
	}

	return fragments, nil
}

// attrValueOffset finds the byte offset of an attribute's value within
// the raw bytes of its enclosing tag, searching for the value bracketed
// by either quote style since the tokenizer does not report it directly.
func attrValueOffset(rawTag, value string) int {
	for _, quote := range []byte{'"', '\''} {
		needle := string(quote) + value + string(quote)
		if idx := strings.Index(rawTag, needle); idx >= 0 {
			return idx + 1
		}
	}
	// Unquoted attribute value.
	if idx := strings.Index(rawTag, "="+value); idx >= 0 {
		return idx + 1
	}
	return -1
}

func (p MarkupParser) Reconstruct(input any, fragments []Fragment, replacements []string) (any, error) {
	text, ok := input.(string)
	if !ok {
		return nil, fmt.Errorf("markup parser requires a string input, got %T", input)
	}
	if len(fragments) != len(replacements) {
		return nil, fmt.Errorf("markup parser: %d fragments but %d replacements", len(fragments), len(replacements))
	}

	type edit struct {
		start, end int
		text       string
	}
	edits := make([]edit, 0, len(fragments))
	for i, frag := range fragments {
		loc, ok := frag.Locator.(MarkupLocator)
		if !ok {
			return nil, fmt.Errorf("markup parser: fragment %d has locator kind %s", i, frag.Locator.parserKind())
		}
		edits = append(edits, edit{start: loc.Start, end: loc.End, text: replacements[i]})
	}

	// Applied in descending offset order so earlier ranges are
	// unaffected by the length change of a later replacement.
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })

	out := text
	for _, e := range edits {
		if e.start < 0 || e.end > len(out) || e.start > e.end {
			return nil, fmt.Errorf("markup parser: invalid byte range [%d,%d)", e.start, e.end)
		}
		out = out[:e.start] + e.text + out[e.end:]
	}
	return out, nil
}
