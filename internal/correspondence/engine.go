package correspondence

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Reranker reorders Stage B candidates for one source symbol, typically by
// consulting a language model or frequency prior
type Reranker interface {
	Rerank(ctx context.Context, sourceSymbol string, candidates []Candidate) ([]Candidate, error)
}

// MapResult is the outcome of mapping one IPA sequence
type MapResult struct {
	// TargetIPA is the remapped sequence
	TargetIPA string

	// Unmapped lists the source symbols that fell back to identity
	Unmapped []string
}

// Engine applies a correspondence table symbol by symbol. An optional
// reranker upgrades Stage B tables from table order to model-informed
// order; Stage A works without it.
type Engine struct {
	table    *Table
	reranker Reranker
}

// NewEngine creates an engine for a loaded table. reranker may be nil.
func NewEngine(table *Table, reranker Reranker) (*Engine, error) {
	if table == nil {
		return nil, fmt.Errorf("correspondence engine requires a table")
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Engine{table: table, reranker: reranker}, nil
}

// SupportsAlternatives reports whether the active table carries ranked
// alternatives (Stage B) rather than a single candidate per symbol
func (e *Engine) SupportsAlternatives() bool {
	return e.table.Stage == StageRanked
}

// SourceLanguage returns the table's source language
func (e *Engine) SourceLanguage() string { return e.table.SourceLanguage }

// TargetLanguage returns the table's target language
func (e *Engine) TargetLanguage() string { return e.table.TargetLanguage }

// Map returns the ranked candidates for one source symbol. A symbol absent
// from the table maps to itself with full confidence rather than failing.
func (e *Engine) Map(sourceSymbol string) []Candidate {
	if candidates, ok := e.table.Entries[sourceSymbol]; ok {
		return candidates
	}
	return []Candidate{{Target: sourceSymbol, Confidence: 1.0}}
}

// MapSymbols maps a segmented symbol sequence, choosing the top-ranked
// candidate per symbol. Re-ranking failures are best-effort: the table
// order stands and mapping continues.
func (e *Engine) MapSymbols(ctx context.Context, symbols []string) (MapResult, error) {
	var out strings.Builder
	var unmapped []string

	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return MapResult{}, err
		}

		candidates, known := e.table.Entries[symbol]
		if !known {
			unmapped = append(unmapped, symbol)
			out.WriteString(symbol)
			continue
		}

		if e.reranker != nil && len(candidates) > 1 {
			reranked, err := e.reranker.Rerank(ctx, symbol, candidates)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: re-ranking %q failed, keeping table order: %v\n", symbol, err)
			} else if len(reranked) > 0 {
				candidates = reranked
			}
		}

		out.WriteString(candidates[0].Target)
	}

	return MapResult{TargetIPA: out.String(), Unmapped: unmapped}, nil
}

// MapSequence segments an IPA string and maps it symbol by symbol
func (e *Engine) MapSequence(ctx context.Context, ipa string) (MapResult, error) {
	return e.MapSymbols(ctx, SplitSymbols(ipa))
}
