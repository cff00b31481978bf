package model

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// Predictor is the opaque inference collaborator. It operates purely on
// integer token sequences defined by the tokenizer; callers never inspect
// model internals.
type Predictor interface {
	Predict(ctx context.Context, ids []int64) ([]int64, error)
}

// PredictorFunc adapts a function to the Predictor interface
type PredictorFunc func(ctx context.Context, ids []int64) ([]int64, error)

// Predict implements Predictor
func (f PredictorFunc) Predict(ctx context.Context, ids []int64) ([]int64, error) {
	return f(ctx, ids)
}

// Loader loads a predictor from an artifact path. Loading may block on I/O;
// it must honor ctx cancellation.
type Loader func(ctx context.Context, path string) (Predictor, error)

// VocabSizes declares the input and output vocabulary sizes a model was
// trained against
type VocabSizes struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}

// Config is the sidecar configuration document stored next to every model
// artifact. Two artifacts with the same config hash are interchangeable.
type Config struct {
	Architecture string     `json:"architecture"`
	HiddenSize   int        `json:"hidden_size"`
	NumLayers    int        `json:"num_layers"`
	Dropout      float64    `json:"dropout"`
	VocabSizes   VocabSizes `json:"vocab_sizes"`
}

// Hash returns the deterministic digest of the config's hyperparameters,
// truncated to 8 hex characters as used in artifact names
func (c Config) Hash() string {
	canonical := fmt.Sprintf("%s|%d|%d|%g|%d|%d",
		c.Architecture, c.HiddenSize, c.NumLayers, c.Dropout,
		c.VocabSizes.Input, c.VocabSizes.Output)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])[:8]
}

// LoadConfig reads a sidecar configuration document
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read model config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse model config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes a sidecar configuration document
func SaveConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model config: %w", err)
	}

	return nil
}
