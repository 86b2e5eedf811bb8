package recognizer

import "context"

// TokenClassifier is a pluggable backend for token-classification
// inference. Implementations may use ONNX Runtime or other engines;
// exactly one of backend_onnx.go (build tag "onnx") and backend_stub.go
// (default) is compiled into a given binary, mirroring the teacher's own
// TransformerBackend split for embeddings.
type TokenClassifier interface {
	// ClassifyTokens runs one inference over a pre-tokenized input and
	// returns one TokenLabel per input token.
	ClassifyTokens(ctx context.Context, tokens []string) ([]TokenLabel, error)
	// IsReady reports whether the backend initialized successfully.
	IsReady() bool
	// Close releases any native resources.
	Close() error
}

// NewTokenClassifier constructs a backend if supported by the current
// build. The default (no build tags) returns nil so that binaries built
// without the "onnx" tag carry no CGO dependency. Implementations live in
// backend_onnx.go and backend_stub.go.
