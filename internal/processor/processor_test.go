package processor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"codeberg.org/snonux/phonobridge/internal/cli"
)

// testFlags builds a flag set pointing at a temp data layout with German
// and Spanish dictionaries sharing one pronunciation
func testFlags(t *testing.T) *cli.Flags {
	t.Helper()

	dataDir := t.TempDir()
	dictDir := filepath.Join(dataDir, "dictionaries")
	modelDir := filepath.Join(dataDir, "models")
	tokDir := filepath.Join(dataDir, "tokenizers")

	for _, dir := range []string{dictDir, modelDir, tokDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dictDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	write("de.txt", "sonne\t/sol/\n")
	write("es.txt", "sol\t/sol/\n")

	flags := cli.NewFlags()
	flags.SourceLanguage = "de"
	flags.TargetLanguage = "es"
	flags.DictDir = dictDir
	flags.ModelDir = modelDir
	flags.TokenizerDir = tokDir
	return flags
}

func TestSetupAndTranslate(t *testing.T) {
	viper.Reset()

	p := NewProcessor(testFlags(t))
	if err := p.Setup(context.Background()); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer p.Close()

	result, err := p.translate(context.Background(), "sonne", "")
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}

	if result.SourceIPA != "sol" {
		t.Errorf("Expected source IPA 'sol', got '%s'", result.SourceIPA)
	}
	if result.TargetSpelling != "sol" {
		t.Errorf("Expected spelling 'sol', got '%s'", result.TargetSpelling)
	}
}

func TestSetup_InvalidPolicy(t *testing.T) {
	viper.Reset()

	flags := testFlags(t)
	flags.Policy = "alphabetical"

	p := NewProcessor(flags)
	if err := p.Setup(context.Background()); err == nil {
		t.Error("Expected error for unknown policy")
	}
}

func TestTranslate_SourceOverride(t *testing.T) {
	viper.Reset()

	flags := testFlags(t)
	flags.DictionaryOnly = true

	p := NewProcessor(flags)
	if err := p.Setup(context.Background()); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer p.Close()

	// the override routes the word through the Spanish dictionary instead
	result, err := p.translate(context.Background(), "sol", "es")
	if err != nil {
		t.Fatalf("translate with override failed: %v", err)
	}
	if result.SourceIPA != "sol" {
		t.Errorf("Expected source IPA 'sol', got '%s'", result.SourceIPA)
	}

	// without the override "sol" is not a German word
	if _, err := p.translate(context.Background(), "sol", ""); err == nil {
		t.Error("Expected dictionary miss for the default source language")
	}
}

func TestProcessBatch(t *testing.T) {
	viper.Reset()

	flags := testFlags(t)
	flags.DictionaryOnly = true

	batchFile := filepath.Join(t.TempDir(), "words.txt")
	content := "sonne\nnichtda\n"
	if err := os.WriteFile(batchFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write batch file: %v", err)
	}
	flags.BatchFile = batchFile

	p := NewProcessor(flags)
	if err := p.Setup(context.Background()); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer p.Close()

	// unknown words are skipped, never abort the batch
	if err := p.ProcessBatch(context.Background()); err != nil {
		t.Fatalf("ProcessBatch failed: %v", err)
	}
}

func TestExportDB_RoundTrip(t *testing.T) {
	viper.Reset()

	flags := testFlags(t)

	p := NewProcessor(flags)
	if err := p.Setup(context.Background()); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer p.Close()

	dbPath := filepath.Join(t.TempDir(), "dict.db")
	if err := p.ExportDB(dbPath); err != nil {
		t.Fatalf("ExportDB failed: %v", err)
	}

	// a fresh processor resolves through the exported database
	viper.Reset()
	flags2 := testFlags(t)
	flags2.DictDB = dbPath

	p2 := NewProcessor(flags2)
	if err := p2.Setup(context.Background()); err != nil {
		t.Fatalf("Setup with --dict-db failed: %v", err)
	}
	defer p2.Close()

	result, err := p2.translate(context.Background(), "sonne", "")
	if err != nil {
		t.Fatalf("translate via database failed: %v", err)
	}
	if result.TargetSpelling != "sol" {
		t.Errorf("Expected spelling 'sol', got '%s'", result.TargetSpelling)
	}
}

func TestListArtifacts_Empty(t *testing.T) {
	viper.Reset()

	p := NewProcessor(testFlags(t))
	if err := p.Setup(context.Background()); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer p.Close()

	if err := p.ListArtifacts(); err != nil {
		t.Errorf("ListArtifacts failed: %v", err)
	}
}

func TestShowStats(t *testing.T) {
	viper.Reset()

	p := NewProcessor(testFlags(t))
	if err := p.Setup(context.Background()); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer p.Close()

	if err := p.ShowStats(); err != nil {
		t.Errorf("ShowStats failed: %v", err)
	}
}
