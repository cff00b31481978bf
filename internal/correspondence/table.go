package correspondence

import (
	"encoding/json"
	"fmt"
	"os"
)

// Table stages
const (
	// StageStatic tables carry a single certain candidate per symbol
	StageStatic = "static"

	// StageRanked tables carry multiple ranked candidates with real
	// confidence scores
	StageRanked = "ranked"
)

// Candidate is one possible target symbol for a source symbol
type Candidate struct {
	Target     string  `json:"target"`
	Confidence float64 `json:"confidence"`
}

// Table maps source-language IPA symbols to ranked target candidates. It is
// the persistence document for a language pair's correspondences.
type Table struct {
	SourceLanguage string                 `json:"source_language"`
	TargetLanguage string                 `json:"target_language"`
	Stage          string                 `json:"stage"`
	Entries        map[string][]Candidate `json:"entries"`
}

// NewStaticTable builds a Stage A table from a plain symbol mapping. Every
// candidate gets confidence 1.0.
func NewStaticTable(sourceLanguage, targetLanguage string, mapping map[string]string) *Table {
	entries := make(map[string][]Candidate, len(mapping))
	for source, target := range mapping {
		entries[source] = []Candidate{{Target: target, Confidence: 1.0}}
	}

	return &Table{
		SourceLanguage: sourceLanguage,
		TargetLanguage: targetLanguage,
		Stage:          StageStatic,
		Entries:        entries,
	}
}

// LoadTable reads and validates a correspondence table document
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read correspondence table: %w", err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse correspondence table %s: %w", path, err)
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid correspondence table %s: %w", path, err)
	}

	return &table, nil
}

// Validate checks the table invariants: for each source symbol, confidence
// scores are descending and sum to at most 1.0
func (t *Table) Validate() error {
	if t.Stage != StageStatic && t.Stage != StageRanked {
		return fmt.Errorf("unknown stage %q", t.Stage)
	}

	for source, candidates := range t.Entries {
		if len(candidates) == 0 {
			return fmt.Errorf("symbol %q has no candidates", source)
		}

		sum := 0.0
		prev := 1.0
		for _, c := range candidates {
			if c.Target == "" {
				return fmt.Errorf("symbol %q has an empty target", source)
			}
			if c.Confidence <= 0 || c.Confidence > 1 {
				return fmt.Errorf("symbol %q has confidence %g outside (0, 1]", source, c.Confidence)
			}
			if c.Confidence > prev {
				return fmt.Errorf("symbol %q candidates are not ordered by descending confidence", source)
			}
			prev = c.Confidence
			sum += c.Confidence
		}

		// small epsilon for accumulated float error
		if sum > 1.0+1e-9 {
			return fmt.Errorf("symbol %q confidences sum to %g, must not exceed 1.0", source, sum)
		}
	}

	return nil
}

// Save writes the table document
func (t *Table) Save(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal correspondence table: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write correspondence table: %w", err)
	}

	return nil
}
