// Package sanitizer implements the Sanitizer Orchestrator: the
// end-to-end entry point that binds a Config, picks a parser, runs
// detection over every extracted fragment, masks the results, and
// reconstructs the original container — grounded on
// original_source/maskingengine/sanitizer.py's Sanitizer.sanitize.
package sanitizer

import (
	"context"
	"fmt"

	"github.com/redactlab/maskcore/internal/detect"
	"github.com/redactlab/maskcore/internal/logger"
	"github.com/redactlab/maskcore/internal/mask"
	"github.com/redactlab/maskcore/internal/parsers"
	"github.com/redactlab/maskcore/internal/patterns"
	"github.com/redactlab/maskcore/internal/recognizer"
	"github.com/redactlab/maskcore/internal/span"
)

// Sanitizer wires the Pattern Registry, Entity Recognizer Adapter,
// Format Parser Set and Placeholder Engine behind Sanitize/Rehydrate.
// A Sanitizer owns its Config, Registry and Recognizer handle
// exclusively; per-call fragment/span/map state is allocated fresh by
// every Sanitize call, so one Sanitizer is safe for concurrent use.
type Sanitizer struct {
	defaults Config
	registry *patterns.Registry
	engine   *detect.Engine
	logger   *logger.Logger
}

// New builds a Sanitizer. registry must already be loaded via
// patterns.Load; recog may be nil when no entity recognizer model is
// configured, in which case every call runs regex-only.
func New(defaults Config, registry *patterns.Registry, recog *recognizer.Adapter, log *logger.Logger) *Sanitizer {
	return &Sanitizer{
		defaults: defaults,
		registry: registry,
		engine:   detect.New(registry, recog),
		logger:   log,
	}
}

// Result is the return value of a successful Sanitize call.
type Result struct {
	Output   any
	Map      *mask.RehydrationMap
	Warnings []string
}

// Sanitize runs the full pipeline: bind config, enforce the size cap,
// pick a parser, detect and mask every fragment, reconstruct, and
// return the reconstructed container plus its RehydrationMap. A failed
// call never returns partially masked output.
func (s *Sanitizer) Sanitize(ctx context.Context, input any, override Config) (*Result, error) {
	cfg := s.defaults.Merge(override)

	if err := s.enforceSizeCap(input, cfg); err != nil {
		return nil, err
	}

	chosen := parsers.Select(cfg.FormatHint, input)
	fragments, activeParser, warnings, err := s.parse(chosen, input)
	if err != nil {
		return nil, err
	}

	session := mask.NewSession(cfg.PlaceholderPrefix, cfg.PlaceholderSuffix)
	detectCfg := detect.Config{
		RegexOnly:        cfg.RegexOnly,
		MinConfidence:    cfg.MinConfidence,
		StrictValidation: cfg.StrictValidation,
		Whitelist:        cfg.normalizedWhitelist(),
		MaskTypes:        cfg.maskTypeSet(),
	}

	replacements := make([]string, len(fragments))
	seenDegradations := make(map[string]bool)
	for i, frag := range fragments {
		spans, degr, err := s.engine.Detect(ctx, frag.Text, detectCfg)
		if err != nil {
			return nil, newError(RecognizerUnavailable, err)
		}
		if degr != nil && !seenDegradations[degr.Reason] {
			seenDegradations[degr.Reason] = true
			warnings = append(warnings, degr.Reason)
			if s.logger != nil {
				s.logger.Degraded("recognizer", degr.Reason)
			}
		}

		masked, err := session.MaskFragment(frag.Text, spans)
		if err != nil {
			return nil, fmt.Errorf("sanitize fragment %d: %w", i, err)
		}
		replacements[i] = masked

		if s.logger != nil {
			logDetections(s.logger, spans)
		}
	}

	reconstructed, err := activeParser.Reconstruct(input, fragments, replacements)
	if err != nil {
		return nil, fmt.Errorf("reconstruct: %w", err)
	}

	return &Result{Output: reconstructed, Map: session.Map(), Warnings: warnings}, nil
}

// Rehydrate is a pure function over text and a previously produced
// RehydrationMap; it never consults the registry or recognizer. cfg,
// falling back to the Sanitizer's defaults, only supplies the
// placeholder prefix/suffix for the map's format check.
func (s *Sanitizer) Rehydrate(text string, m *mask.RehydrationMap, cfg Config) (string, error) {
	prefix, suffix := cfg.PlaceholderPrefix, cfg.PlaceholderSuffix
	if prefix == "" {
		prefix = s.defaults.PlaceholderPrefix
	}
	if suffix == "" {
		suffix = s.defaults.PlaceholderSuffix
	}
	if !mask.ValidFormat(m, prefix, suffix) {
		return "", newError(PatternPackInvalid, fmt.Errorf("rehydration map contains a malformed placeholder"))
	}
	return mask.Rehydrate(text, m), nil
}

func (s *Sanitizer) enforceSizeCap(input any, cfg Config) error {
	text, ok := input.(string)
	if !ok {
		return nil // size cap applies to the character length of string inputs
	}
	if cfg.MaxInputCharacters > 0 && len([]rune(text)) > cfg.MaxInputCharacters {
		return newError(InputTooLarge, fmt.Errorf("input has %d characters, limit is %d", len([]rune(text)), cfg.MaxInputCharacters))
	}
	return nil
}

// parse runs the selected parser, falling back to the plain parser on
// a non-fatal FallbackError (recorded as a warning, never a failure).
// It returns the parser that actually produced the fragments, since
// Reconstruct must be called on that same parser.
func (s *Sanitizer) parse(p parsers.Parser, input any) ([]parsers.Fragment, parsers.Parser, []string, error) {
	fragments, err := p.Parse(input)
	if err == nil {
		return fragments, p, nil, nil
	}

	fallback, ok := err.(*parsers.FallbackError)
	if !ok {
		return nil, nil, nil, newError(ParserFallback, err)
	}

	if s.logger != nil {
		s.logger.Degraded("parser", fallback.Error())
	}
	plain := parsers.PlainParser{}
	plainFragments, plainErr := plain.Parse(input)
	if plainErr != nil {
		return nil, nil, nil, newError(ParserFallback, plainErr)
	}
	return plainFragments, plain, []string{fallback.Error()}, nil
}

func logDetections(log *logger.Logger, spans []span.Span) {
	counts := make(map[string]int)
	sources := make(map[string]string)
	for _, sp := range spans {
		counts[sp.Label]++
		sources[sp.Label] = string(sp.Source)
	}
	for label, count := range counts {
		log.Detection(label, count, sources[label])
	}
}
