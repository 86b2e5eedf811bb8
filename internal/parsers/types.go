// Package parsers implements the Format Parser Set: extraction of
// maskable text fragments from plain, structured (key/value tree) and
// marked-up inputs, and reconstruction of the container once the
// Detection Engine and Placeholder Engine have produced replacements.
//
// "Parser" is a closed capability set {parse, reconstruct} over three
// variants (plain, structured, markup). The set is closed and known at
// compile time, so it is modeled as a tagged interface with exactly
// three implementations rather than an open inheritance hierarchy.
package parsers

// Locator is opaque to the Detection Engine and the Placeholder Engine;
// only the parser that produced it knows how to use it during
// reconstruction.
type Locator interface {
	// parserKind ties a Locator to the parser variant that produced it,
	// so a Fragment can never be reconstructed by the wrong parser.
	parserKind() Kind
}

// Kind identifies which parser variant produced a Fragment.
type Kind string

const (
	KindPlain      Kind = "plain"
	KindStructured Kind = "structured"
	KindMarkup     Kind = "markup"
)

// PlainLocator is the trivial locator used by the plain parser: the
// fragment is the entire input.
type PlainLocator struct{}

func (PlainLocator) parserKind() Kind { return KindPlain }

// StructuredLocator addresses one leaf of a key/value tree by the
// sequence of map keys and slice indices from the root. A PathElem with
// IsIndex true addresses a slice element; otherwise it addresses a map
// key.
type StructuredLocator struct {
	Path []PathElem
}

func (StructuredLocator) parserKind() Kind { return KindStructured }

// PathElem is one step of a StructuredLocator.
type PathElem struct {
	Key     string
	Index   int
	IsIndex bool
}

// MarkupLocator addresses a half-open byte range [Start, End) in the
// original markup document, plus the attribute name when the fragment
// is an attribute value rather than a text run.
type MarkupLocator struct {
	Start     int
	End       int
	Attribute string // empty for a text-run fragment
}

func (MarkupLocator) parserKind() Kind { return KindMarkup }

// Fragment is a unit extracted by a parser: text plus enough
// information (the Locator) for that same parser to re-insert a
// replacement during reconstruction.
type Fragment struct {
	Text    string
	Locator Locator
}

// Parser is implemented by PlainParser, StructuredParser and
// MarkupParser. Parse extracts maskable fragments from input; the
// original decoded form (e.g., the tree the structured parser walked)
// is threaded back into Reconstruct by the caller, since the parser
// itself holds no per-call state.
type Parser interface {
	Kind() Kind
	Parse(input any) ([]Fragment, error)
	Reconstruct(input any, fragments []Fragment, replacements []string) (any, error)
}
