//go:build !onnx
// +build !onnx

package recognizer

import "github.com/redactlab/maskcore/internal/logger"

// Stub implementation used when the 'onnx' build tag is not set. The
// Detection Engine degrades to regex-only in this configuration.
func NewTokenClassifier(log *logger.Logger, modelPath string, maxLength int) TokenClassifier {
	return nil
}
