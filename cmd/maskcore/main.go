package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/redactlab/maskcore/internal/config"
	"github.com/redactlab/maskcore/internal/logger"
	"github.com/redactlab/maskcore/internal/patterns"
	"github.com/redactlab/maskcore/internal/recognizer"
	"github.com/redactlab/maskcore/internal/sanitizer"
	"github.com/redactlab/maskcore/internal/store"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// This binary is a thin exerciser of the sanitization core, the way
// the teacher's cmd/sentinel is a thin wrapper around its own internal
// packages. It reads one document from stdin (or -text), sanitizes it,
// and prints the masked output plus its rehydration map as JSON; the
// HTTP/CLI surface of a production deployment is an external
// collaborator left to callers.
func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		text        = flag.String("text", "", "Text to sanitize instead of reading stdin")
		sessionID   = flag.String("session", "", "Persist the rehydration map under this session id (generated if omitted)")
		rehydrate   = flag.String("rehydrate", "", "Session id to rehydrate -text against instead of sanitizing")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("maskcore %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	sess, err := store.NewFromConfig(cfg.Store, log)
	if err != nil {
		log.Fatal("failed to initialize rehydration store", zap.Error(err))
	}
	defer sess.Close()

	san, recog, err := buildSanitizer(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize sanitizer", zap.Error(err))
	}
	if recog != nil {
		defer recog.Close()
	}

	ctx := context.Background()

	if *rehydrate != "" {
		runRehydrate(ctx, san, sess, *rehydrate, *text, log)
		return
	}

	input, err := readInput(*text)
	if err != nil {
		log.Fatal("failed to read input", zap.Error(err))
	}

	res, err := san.Sanitize(ctx, input, sanitizer.Config{})
	if err != nil {
		log.Fatal("sanitize failed", zap.Error(err))
	}

	id := *sessionID
	if id == "" {
		id = uuid.New().String()
	}
	if err := sess.Put(ctx, id, res.Map); err != nil {
		log.Error("failed to persist rehydration map", zap.Error(err))
	}

	printResult(res, id)
}

func buildSanitizer(cfg *config.Config, log *logger.Logger) (*sanitizer.Sanitizer, *recognizer.Adapter, error) {
	registry, err := patterns.Load(cfg.Patterns.Packs, cfg.Patterns.ExtraDirs)
	if err != nil {
		return nil, nil, err
	}

	var recog *recognizer.Adapter
	if cfg.Recognizer.Enabled {
		recog = recognizer.New(recognizer.Config{
			ModelPath: cfg.Recognizer.ModelPath,
			MaxLength: cfg.Recognizer.MaxLength,
		}, log)
		if !recog.Available() {
			log.Degraded("recognizer", "model unavailable at startup, continuing regex-only")
		}
	}

	defaults := sanitizer.Config{
		PatternPacks:       cfg.Patterns.Packs,
		RegexOnly:          cfg.Sanitizer.RegexOnly,
		MinConfidence:      cfg.Sanitizer.MinConfidence,
		StrictValidation:   cfg.Sanitizer.StrictValidation,
		Whitelist:          cfg.Sanitizer.Whitelist,
		MaskTypes:          cfg.Sanitizer.MaskTypes,
		PlaceholderPrefix:  cfg.Sanitizer.PlaceholderPrefix,
		PlaceholderSuffix:  cfg.Sanitizer.PlaceholderSuffix,
		MaxInputCharacters: cfg.Sanitizer.MaxInputCharacters,
		FormatHint:         cfg.Sanitizer.FormatHint,
	}

	return sanitizer.New(defaults, registry, recog, log), recog, nil
}

func readInput(textFlag string) (any, error) {
	if textFlag != "" {
		return decodeIfJSON(textFlag), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return decodeIfJSON(string(data)), nil
}

// decodeIfJSON lets a caller pipe a JSON object through stdin and have
// it sanitized as a structured input; anything that doesn't parse as a
// JSON object or array is sanitized as plain text or markup per the
// parser set's own auto-detection.
func decodeIfJSON(text string) any {
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return text
	}
	switch decoded.(type) {
	case map[string]any, []any:
		return decoded
	default:
		return text
	}
}

func printResult(res *sanitizer.Result, sessionID string) {
	out := struct {
		Session  string            `json:"session"`
		Output   any               `json:"output"`
		Map      map[string]string `json:"rehydration_map"`
		Warnings []string          `json:"warnings,omitempty"`
	}{
		Session:  sessionID,
		Output:   res.Output,
		Map:      res.Map.AsDocument(),
		Warnings: res.Warnings,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}

func runRehydrate(ctx context.Context, san *sanitizer.Sanitizer, sess store.Store, sessionID, text string, log *logger.Logger) {
	m, err := sess.Get(ctx, sessionID)
	if err != nil {
		log.Fatal("failed to load rehydration map", zap.String("session", sessionID), zap.Error(err))
	}
	out, err := san.Rehydrate(text, m, sanitizer.Config{})
	if err != nil {
		log.Fatal("rehydrate failed", zap.Error(err))
	}
	fmt.Println(out)
}
