package model

import (
	"context"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortInitOnce sync.Once
	ortInitErr  error
)

// initRuntime initializes the shared ONNX runtime environment once per
// process. The shared library location can be overridden via
// PHONOBRIDGE_ONNXRUNTIME_LIB for systems where it is not on the default
// search path.
func initRuntime() error {
	ortInitOnce.Do(func() {
		if lib := os.Getenv("PHONOBRIDGE_ONNXRUNTIME_LIB"); lib != "" {
			ort.SetSharedLibraryPath(lib)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// ONNXPredictor runs a character-level seq2seq model exported to ONNX. The
// exported graph takes a batch of token ids and returns the predicted token
// ids, so one Run call serves one Predict call.
type ONNXPredictor struct {
	session *ort.DynamicAdvancedSession
	path    string

	// onnxruntime sessions are not safe for concurrent Run calls
	mu sync.Mutex
}

// LoadONNX opens an ONNX artifact and prepares an inference session
func LoadONNX(ctx context.Context, path string) (Predictor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := initRuntime(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
	}

	inputInfo, outputInfo, err := ort.GetInputOutputInfo(path)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect model %s: %w", path, err)
	}

	inputNames := make([]string, len(inputInfo))
	for i, info := range inputInfo {
		inputNames[i] = info.Name
	}
	outputNames := make([]string, len(outputInfo))
	for i, info := range outputInfo {
		outputNames[i] = info.Name
	}

	session, err := ort.NewDynamicAdvancedSession(path, inputNames, outputNames, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create inference session for %s: %w", path, err)
	}

	return &ONNXPredictor{session: session, path: path}, nil
}

// Predict runs the model over one token sequence
func (p *ONNXPredictor) Predict(ctx context.Context, ids []int64) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("empty token sequence")
	}

	inputShape := ort.NewShape(1, int64(len(ids)))
	inputTensor, err := ort.NewTensor(inputShape, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputs := []ort.Value{nil}

	p.mu.Lock()
	err = p.session.Run([]ort.Value{inputTensor}, outputs)
	p.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("inference failed for %s: %w", p.path, err)
	}

	outputTensor, ok := outputs[0].(*ort.Tensor[int64])
	if !ok {
		outputs[0].Destroy()
		return nil, fmt.Errorf("model %s returned unexpected output type", p.path)
	}
	defer outputTensor.Destroy()

	data := outputTensor.GetData()
	result := make([]int64, len(data))
	copy(result, data)
	return result, nil
}

// Close releases the inference session
func (p *ONNXPredictor) Close() error {
	return p.session.Destroy()
}
