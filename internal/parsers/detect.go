package parsers

import "strings"

// Detect implements the auto-detection order from spec: a structured
// (non-string composite) input always uses the structured parser; a
// string beginning with '<' and containing a closing '>' uses the
// markup parser; anything else uses the plain parser.
func Detect(input any) Kind {
	text, ok := input.(string)
	if !ok {
		return KindStructured
	}

	trimmed := strings.TrimLeft(text, " \t\r\n")
	if strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, ">") {
		return KindMarkup
	}
	return KindPlain
}

// Select returns the parser for a format_hint value (spec.md §3: auto,
// text, structured, markup), or via Detect when hint is "auto" or
// empty.
func Select(hint string, input any) Parser {
	switch hint {
	case "text":
		return PlainParser{}
	case "structured":
		return StructuredParser{}
	case "markup":
		return MarkupParser{}
	default:
		switch Detect(input) {
		case KindStructured:
			return StructuredParser{}
		case KindMarkup:
			return MarkupParser{}
		default:
			return PlainParser{}
		}
	}
}
