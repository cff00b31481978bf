// Package pipeline composes tokenizers, dictionaries, the model registry
// and the correspondence engine into the end-to-end translation flow:
// source word to source IPA to target-compatible IPA to target spelling.
// Requests run independently of each other; within one request the stages
// are strictly sequential. Every stage records its provenance, and every
// terminal outcome is a typed result or typed error.
package pipeline
