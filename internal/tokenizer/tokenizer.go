package tokenizer

import (
	"encoding/json"
	"fmt"
	"os"
)

// Modality tags for tokenizer documents
const (
	ModalitySpelling = "spelling"
	ModalityIPA      = "ipa"
)

// Reserved token ids. These are fixed: every trained model indexes its
// embedding table with them, so they must never move.
const (
	PadID int64 = 0
	SOSID int64 = 1
	EOSID int64 = 2
	UNKID int64 = 3
)

// SpecialTokens holds the textual placeholders for the reserved tokens
type SpecialTokens struct {
	Pad string `json:"pad"`
	SOS string `json:"sos"`
	EOS string `json:"eos"`
	UNK string `json:"unk"`
}

// DefaultSpecialTokens returns the placeholder set used by all shipped
// tokenizer documents
func DefaultSpecialTokens() SpecialTokens {
	return SpecialTokens{
		Pad: "<PAD>",
		SOS: "<SOS>",
		EOS: "<EOS>",
		UNK: "<UNK>",
	}
}

// Document is the JSON persistence format for a tokenizer. The vocab field
// holds only the regular characters; the four special tokens are prepended
// on load. The character order is append-only once persisted: re-sorting
// would change token ids and silently invalidate trained models.
type Document struct {
	Language      string        `json:"language"`
	Modality      string        `json:"modality"`
	Vocab         []string      `json:"vocab"`
	SpecialTokens SpecialTokens `json:"special_tokens"`
}

// Tokenizer maps characters to integer token ids and back for one
// (language, modality) pair. It is read-only after construction and safe
// for concurrent use.
type Tokenizer struct {
	language string
	modality string
	special  SpecialTokens
	vocab    []string
	charToID map[string]int64
	idToChar map[int64]string
}

// New constructs a tokenizer from a persistence document
func New(doc Document) (*Tokenizer, error) {
	special := doc.SpecialTokens
	if special == (SpecialTokens{}) {
		special = DefaultSpecialTokens()
	}

	vocab := make([]string, 0, len(doc.Vocab)+4)
	vocab = append(vocab, special.Pad, special.SOS, special.EOS, special.UNK)
	vocab = append(vocab, doc.Vocab...)

	charToID := make(map[string]int64, len(vocab))
	idToChar := make(map[int64]string, len(vocab))
	for i, ch := range vocab {
		if _, exists := charToID[ch]; exists {
			return nil, fmt.Errorf("duplicate symbol %q in vocabulary", ch)
		}
		charToID[ch] = int64(i)
		idToChar[int64(i)] = ch
	}

	return &Tokenizer{
		language: doc.Language,
		modality: doc.Modality,
		special:  special,
		vocab:    vocab,
		charToID: charToID,
		idToChar: idToChar,
	}, nil
}

// Load reads a tokenizer JSON document from disk. Loading is pure: it has
// no side effects beyond reading the file.
func Load(path string) (*Tokenizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tokenizer file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse tokenizer file %s: %w", path, err)
	}

	return New(doc)
}

// Language returns the language code of this tokenizer
func (t *Tokenizer) Language() string { return t.language }

// Modality returns the modality tag ("spelling" or "ipa")
func (t *Tokenizer) Modality() string { return t.modality }

// VocabSize returns the total vocabulary size including special tokens
func (t *Tokenizer) VocabSize() int { return len(t.vocab) }

// Encode maps each character of text to its token id, substituting UNK for
// characters absent from the vocabulary. When addSpecialTokens is true the
// sequence is wrapped with SOS/EOS.
func (t *Tokenizer) Encode(text string, addSpecialTokens bool) []int64 {
	ids := make([]int64, 0, len(text)+2)

	if addSpecialTokens {
		ids = append(ids, SOSID)
	}

	for _, r := range text {
		if id, ok := t.charToID[string(r)]; ok {
			ids = append(ids, id)
		} else {
			ids = append(ids, UNKID)
		}
	}

	if addSpecialTokens {
		ids = append(ids, EOSID)
	}

	return ids
}

// Decode maps token ids back into text. When skipSpecialTokens is true,
// PAD/SOS/EOS markers are filtered from the output. UNK is deliberately not
// filtered: an unknown character encodes to UNK and decodes to the UNK
// placeholder, making the lossy round-trip visible instead of silent.
func (t *Tokenizer) Decode(ids []int64, skipSpecialTokens bool) string {
	var out []byte

	for _, id := range ids {
		if skipSpecialTokens && (id == PadID || id == SOSID || id == EOSID) {
			continue
		}
		if ch, ok := t.idToChar[id]; ok {
			out = append(out, ch...)
		} else {
			out = append(out, t.special.UNK...)
		}
	}

	return string(out)
}

// String implements fmt.Stringer
func (t *Tokenizer) String() string {
	return fmt.Sprintf("Tokenizer(language=%s, modality=%s, vocab_size=%d)",
		t.language, t.modality, t.VocabSize())
}
