package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Row is a dataset row produced by an adapter. RawIPA is the unparsed
// pronunciation field; it may carry several comma-separated variants.
type Row struct {
	Word     string
	RawIPA   string
	Language string
}

// MalformedDatasetRowError reports a dataset line that does not follow the
// adapter's format. Loading skips such rows with a warning; they never abort
// the load.
type MalformedDatasetRowError struct {
	Path   string
	Line   int
	Reason string
}

func (e *MalformedDatasetRowError) Error() string {
	return fmt.Sprintf("malformed dataset row at %s:%d: %s", e.Path, e.Line, e.Reason)
}

// ValidationReport summarizes adapter-level validation of loaded rows
type ValidationReport struct {
	IsValid  bool
	Errors   []string
	Warnings []string
	Stats    Stats
}

// Adapter is the dataset adapter contract. Any dataset format satisfying it
// is pluggable.
type Adapter interface {
	// Load reads the dataset at path. When language is empty, adapters may
	// derive it from the file name.
	Load(path, language string) ([]Row, error)

	// Validate checks loaded rows and returns statistics and warnings
	Validate(rows []Row) *ValidationReport
}

// slashed pronunciations like "/həˈloʊ/, /hɛˈloʊ/"
var ipaSlashPattern = regexp.MustCompile(`/([^/]+)/`)

// ParsePronunciations extracts the individual pronunciation variants from a
// raw pronunciation field. Slash-enclosed variants are preferred; fields
// without slashes fall back to a plain comma split.
func ParsePronunciations(raw string) []string {
	var variants []string

	matches := ipaSlashPattern.FindAllStringSubmatch(strings.TrimSpace(raw), -1)
	if len(matches) > 0 {
		for _, m := range matches {
			if v := strings.TrimSpace(m[1]); v != "" {
				variants = append(variants, v)
			}
		}
		return variants
	}

	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			variants = append(variants, v)
		}
	}
	return variants
}

// IPADictAdapter loads ipa-dict format datasets: tab-separated lines of
// word and slash-enclosed pronunciations, one file per language.
type IPADictAdapter struct{}

// NewIPADictAdapter creates an adapter for the ipa-dict dataset format
func NewIPADictAdapter() *IPADictAdapter {
	return &IPADictAdapter{}
}

// Load reads an ipa-dict file. Malformed lines are skipped with a warning
// on stderr; they never abort the load.
func (a *IPADictAdapter) Load(path, language string) ([]Row, error) {
	if language == "" {
		// de.txt -> de, en_US.txt -> en_US
		language = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	var rows []Row
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) != 2 {
			rowErr := &MalformedDatasetRowError{Path: path, Line: lineNum, Reason: "expected word<TAB>pronunciations"}
			fmt.Fprintf(os.Stderr, "Warning: skipping %v\n", rowErr)
			continue
		}

		word := strings.TrimSpace(parts[0])
		raw := strings.TrimSpace(parts[1])
		if word == "" || len(ParsePronunciations(raw)) == 0 {
			rowErr := &MalformedDatasetRowError{Path: path, Line: lineNum, Reason: "no usable pronunciation"}
			fmt.Fprintf(os.Stderr, "Warning: skipping %v\n", rowErr)
			continue
		}

		rows = append(rows, Row{Word: word, RawIPA: raw, Language: language})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no valid rows found in %s", path)
	}

	return rows, nil
}

// Validate checks loaded rows for structural problems and collects basic
// statistics
func (a *IPADictAdapter) Validate(rows []Row) *ValidationReport {
	report := &ValidationReport{IsValid: true}

	if len(rows) == 0 {
		report.IsValid = false
		report.Errors = append(report.Errors, "no rows loaded")
		return report
	}

	words := make(map[string]struct{})
	languages := make(map[string]int)
	emptyWords := 0

	for _, row := range rows {
		if strings.TrimSpace(row.Word) == "" {
			emptyWords++
			continue
		}
		words[row.Word] = struct{}{}
		languages[row.Language]++
	}

	if emptyWords > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%d rows have empty words", emptyWords))
	}

	report.Stats = Stats{
		TotalEntries: len(rows),
		UniqueWords:  len(words),
		Languages:    languages,
	}

	return report
}
