package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// WordEntry represents one word of a batch run
type WordEntry struct {
	Word string
	// Language overrides the configured source language when set
	Language string
}

// ReadBatchFile reads words from a file and returns a WordEntry slice.
// Supports formats:
// - word only: "straße" (uses the configured source language)
// - with language override: "straße = de"
// Blank lines and lines starting with '#' are skipped.
func ReadBatchFile(filename string) ([]WordEntry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	var entries []WordEntry
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			word := strings.TrimSpace(parts[0])
			language := strings.TrimSpace(parts[1])

			// Ignore lines with an empty word part
			if word != "" {
				entries = append(entries, WordEntry{Word: word, Language: language})
			}
		} else {
			entries = append(entries, WordEntry{Word: line})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return entries, nil
}
