package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/phonobridge/internal"
	"codeberg.org/snonux/phonobridge/internal/dictionary"
	"codeberg.org/snonux/phonobridge/internal/tokenizer"
)

var (
	// Flags
	dictDir  string
	outDir   string
	language string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "buildtok",
	Short: "Build character tokenizers from ipa-dict files",
	Long: `buildtok extracts character vocabularies from ipa-dict dictionary
files and writes the tokenizer JSON documents the translation pipeline
and model training consume.

For every language it produces two tokenizers: one over the spelling
characters of the words, one over the IPA symbols of the pronunciations.

Example:
  buildtok --dict-dir ./dictionaries --out ./tokenizers
  buildtok --dict-dir ./dictionaries --out ./tokenizers --language de`,
	RunE:    runCommand,
	Version: internal.Version,
}

func init() {
	rootCmd.Flags().StringVar(&dictDir, "dict-dir", "./dictionaries", "Directory with ipa-dict files (<language>.txt)")
	rootCmd.Flags().StringVar(&outDir, "out", "./tokenizers", "Output directory for tokenizer JSON files")
	rootCmd.Flags().StringVar(&language, "language", "", "Build for one language only (default: every file in --dict-dir)")
}

func runCommand(cmd *cobra.Command, args []string) error {
	var files []string

	if language != "" {
		files = []string{filepath.Join(dictDir, language+".txt")}
	} else {
		entries, err := os.ReadDir(dictDir)
		if err != nil {
			return fmt.Errorf("failed to read dictionary directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
				continue
			}
			files = append(files, filepath.Join(dictDir, entry.Name()))
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("no dictionary files found in %s", dictDir)
	}

	for _, file := range files {
		if err := buildForFile(file); err != nil {
			return err
		}
	}

	fmt.Printf("\nDone! Tokenizers saved to: %s\n", outDir)
	return nil
}

func buildForFile(path string) error {
	code := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	fmt.Printf("\nBuilding tokenizers for %s\n", code)

	adapter := dictionary.NewIPADictAdapter()
	rows, err := adapter.Load(path, code)
	if err != nil {
		return err
	}

	// Spelling corpus is the words; IPA corpus is every pronunciation
	// variant so the vocabulary covers more than the canonical choice
	words := make([]string, 0, len(rows))
	var pronunciations []string
	for _, row := range rows {
		words = append(words, row.Word)
		pronunciations = append(pronunciations, dictionary.ParsePronunciations(row.RawIPA)...)
	}

	if err := buildAndSave(code, tokenizer.ModalitySpelling, words); err != nil {
		return err
	}
	return buildAndSave(code, tokenizer.ModalityIPA, pronunciations)
}

func buildAndSave(code, modality string, corpus []string) error {
	builder, err := tokenizer.NewBuilder(code, modality)
	if err != nil {
		return err
	}
	builder.BuildFromCorpus(corpus)

	path := filepath.Join(outDir, fmt.Sprintf("%s_%s.json", code, modality))
	if err := builder.Save(path); err != nil {
		return err
	}

	fmt.Printf("  %s: %d tokens -> %s\n", modality, builder.VocabSize(), path)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
