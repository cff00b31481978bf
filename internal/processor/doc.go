// Package processor contains the application-level coordination logic. It
// assembles tokenizers, dictionaries, the model registry, the correspondence
// engine and optional LLM re-ranking from configuration, and drives single
// word and batch translation runs. This package serves as the main
// coordinator between all other components.
package processor
