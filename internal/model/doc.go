// Package model defines the opaque inference contract for grapheme-phoneme
// models: encode, predict, decode over integer token sequences. It provides
// the sidecar configuration document with its deterministic config hash, an
// ONNX-backed predictor, and a circuit-breaker wrapper for flaky runtimes.
// Model internals and training are external concerns.
package model
