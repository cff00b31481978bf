package tokenizer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Builder extracts character vocabularies from training corpora and writes
// tokenizer JSON documents for use at training and inference time.
type Builder struct {
	language string
	modality string
	special  SpecialTokens
	vocab    []string
}

// NewBuilder creates a builder for one (language, modality) pair
func NewBuilder(language, modality string) (*Builder, error) {
	if modality != ModalitySpelling && modality != ModalityIPA {
		return nil, fmt.Errorf("modality must be %q or %q, got %q",
			ModalitySpelling, ModalityIPA, modality)
	}

	return &Builder{
		language: language,
		modality: modality,
		special:  DefaultSpecialTokens(),
	}, nil
}

// BuildFromCorpus extracts the set of distinct characters across the corpus
// and sorts them deterministically. Empty strings are skipped.
func (b *Builder) BuildFromCorpus(corpus []string) *Builder {
	seen := make(map[string]struct{})
	for _, text := range corpus {
		for _, r := range text {
			seen[string(r)] = struct{}{}
		}
	}

	vocab := make([]string, 0, len(seen))
	for ch := range seen {
		vocab = append(vocab, ch)
	}
	sort.Strings(vocab)

	b.vocab = vocab
	return b
}

// VocabSize returns the total vocabulary size including special tokens
func (b *Builder) VocabSize() int {
	return len(b.vocab) + 4
}

// Document returns the persistence document for the built vocabulary
func (b *Builder) Document() Document {
	return Document{
		Language:      b.language,
		Modality:      b.modality,
		Vocab:         b.vocab,
		SpecialTokens: b.special,
	}
}

// Tokenizer constructs a tokenizer directly from the built vocabulary
func (b *Builder) Tokenizer() (*Tokenizer, error) {
	return New(b.Document())
}

// Save writes the tokenizer JSON document, creating parent directories as
// needed
func (b *Builder) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create tokenizer directory: %w", err)
	}

	data, err := json.MarshalIndent(b.Document(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tokenizer: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write tokenizer file: %w", err)
	}

	return nil
}
