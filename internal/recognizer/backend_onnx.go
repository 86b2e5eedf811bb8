//go:build onnx
// +build onnx

package recognizer

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/zap"

	"github.com/redactlab/maskcore/internal/logger"
)

// defaultBIOLabels is used when a model ships no sidecar "<model>.labels.json"
// file naming its output classes explicitly.
var defaultBIOLabels = []string{
	"O", "B-PER", "I-PER", "B-ORG", "I-ORG", "B-LOC", "I-LOC", "B-MISC", "I-MISC",
}

// OnnxTokenClassifier implements TokenClassifier using ONNX Runtime via
// github.com/yalue/onnxruntime_go, mirroring the teacher's OnnxBackend for
// sentence embeddings but decoding per-token label logits instead of a
// pooled vector.
type OnnxTokenClassifier struct {
	session    *ort.DynamicAdvancedSession
	inputNames []string
	outputName string
	labels     []string
	maxLength  int
	logger     *logger.Logger
	ready      bool
	mu         sync.Mutex
}

var initOnce sync.Once

// NewTokenClassifier initializes the ONNX Runtime backend. Requires the
// "onnx" build tag. Returns nil on any initialization failure so the
// Detection Engine can degrade to regex-only instead of failing the call.
func NewTokenClassifier(log *logger.Logger, modelPath string, maxLength int) TokenClassifier {
	var initErr error
	initOnce.Do(func() {
		if shlib := os.Getenv("ONNXRUNTIME_SHARED_LIB"); shlib != "" {
			ort.SetSharedLibraryPath(shlib)
		}
		initErr = ort.InitializeEnvironment()
	})
	if initErr != nil {
		log.Error("ONNX Runtime environment init failed", zap.Error(initErr))
		return nil
	}

	inputsInfo, outputsInfo, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		log.Error("failed to inspect ONNX model IO", zap.Error(err))
		return nil
	}

	preferredInputs := []string{"input_ids", "attention_mask", "token_type_ids"}
	available := map[string]bool{}
	for _, ii := range inputsInfo {
		available[strings.ToLower(ii.Name)] = true
	}
	var inputNames []string
	for _, name := range preferredInputs {
		if available[name] {
			inputNames = append(inputNames, name)
		}
	}
	if len(inputNames) == 0 {
		for _, ii := range inputsInfo {
			inputNames = append(inputNames, ii.Name)
		}
	}

	if len(outputsInfo) == 0 {
		log.Error("ONNX model reports no outputs")
		return nil
	}
	outputName := outputsInfo[0].Name

	sess, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, []string{outputName}, nil)
	if err != nil {
		log.Error("ONNX Runtime session creation failed", zap.Error(err))
		return nil
	}

	labels := loadLabels(modelPath)

	log.Info("entity recognizer backend ready")
	return &OnnxTokenClassifier{
		session:    sess,
		inputNames: inputNames,
		outputName: outputName,
		labels:     labels,
		maxLength:  maxLength,
		logger:     log,
		ready:      true,
	}
}

// IsReady reports whether the backend initialized.
func (c *OnnxTokenClassifier) IsReady() bool {
	return c.ready
}

// Close releases the ONNX Runtime session.
func (c *OnnxTokenClassifier) Close() error {
	if c.session != nil {
		return c.session.Destroy()
	}
	return nil
}

// ClassifyTokens runs inference over tokens, truncated to maxLength, and
// decodes a per-token label via argmax over the output logits.
func (c *OnnxTokenClassifier) ClassifyTokens(ctx context.Context, tokens []string) ([]TokenLabel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready {
		return nil, fmt.Errorf("recognizer backend not ready")
	}

	n := len(tokens)
	if c.maxLength > 0 && n > c.maxLength {
		n = c.maxLength
	}

	// Each token's input id is its 32-bit FNV-1a hash (simpleHash), not
	// an id from the model's own vocabulary; no vocabulary lookup or
	// subword tokenization happens here.
	ids := make([]int64, n)
	mask := make([]int64, n)
	for i := 0; i < n; i++ {
		ids[i] = int64(simpleHash(tokens[i]))
		mask[i] = 1
	}

	inputShape := ort.NewShape(1, int64(n))
	idsTensor, err := ort.NewTensor(inputShape, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build input tensor: %w", err)
	}
	defer idsTensor.Destroy()

	maskTensor, err := ort.NewTensor(inputShape, mask)
	if err != nil {
		return nil, fmt.Errorf("failed to build attention mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	outputShape := ort.NewShape(1, int64(n), int64(len(c.labels)))
	output, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate output tensor: %w", err)
	}
	defer output.Destroy()

	inputs := []ort.Value{idsTensor, maskTensor}
	if len(c.inputNames) == 3 {
		typeTensor, err := ort.NewTensor(inputShape, make([]int64, n))
		if err != nil {
			return nil, fmt.Errorf("failed to build token type tensor: %w", err)
		}
		defer typeTensor.Destroy()
		inputs = append(inputs, typeTensor)
	}

	if err := c.session.Run(inputs, []ort.Value{output}); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	logits := output.GetData()
	results := make([]TokenLabel, n)
	numLabels := len(c.labels)
	for i := 0; i < n; i++ {
		offset := i * numLabels
		best, conf := argmaxSoftmax(logits[offset : offset+numLabels])
		results[i] = TokenLabel{Label: c.labels[best], Confidence: conf}
	}

	return results, nil
}

func argmaxSoftmax(logits []float32) (int, float64) {
	best := 0
	for i, v := range logits {
		if v > logits[best] {
			best = i
		}
	}

	var sum float64
	maxLogit := float64(logits[best])
	for _, v := range logits {
		sum += math.Exp(float64(v) - maxLogit)
	}
	conf := 1.0 / sum
	return best, conf
}

func simpleHash(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

func loadLabels(modelPath string) []string {
	sidecar := strings.TrimSuffix(modelPath, filepath.Ext(modelPath)) + ".labels.json"
	data, err := os.ReadFile(sidecar)
	if err != nil {
		return defaultBIOLabels
	}

	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil || len(labels) == 0 {
		return defaultBIOLabels
	}
	return labels
}
