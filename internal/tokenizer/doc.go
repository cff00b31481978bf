// Package tokenizer provides character-level tokenization for pronunciation
// translation. It builds per-language, per-modality vocabularies from training
// corpora, persists them as JSON documents, and provides the encode/decode
// primitives that models and dictionaries agree on bit-for-bit.
package tokenizer
