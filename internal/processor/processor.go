package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"codeberg.org/snonux/phonobridge/internal/batch"
	"codeberg.org/snonux/phonobridge/internal/cli"
	"codeberg.org/snonux/phonobridge/internal/correspondence"
	"codeberg.org/snonux/phonobridge/internal/dictionary"
	"codeberg.org/snonux/phonobridge/internal/pipeline"
	"codeberg.org/snonux/phonobridge/internal/registry"
	"codeberg.org/snonux/phonobridge/internal/rerank"
	"codeberg.org/snonux/phonobridge/internal/tokenizer"
)

// maximum dictionary ingest warnings printed per language
const maxIngestWarnings = 10

// Processor handles the main translation logic
type Processor struct {
	flags        *cli.Flags
	registry     *registry.Registry
	orchestrator *pipeline.Orchestrator

	// in-memory stores kept for --stats
	stores map[string]*dictionary.Store

	// sqlite stores needing Close
	dbStores []*dictionary.SQLiteStore
}

// NewProcessor creates a new translation processor. Setup must be called
// before processing words.
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{
		flags:  flags,
		stores: make(map[string]*dictionary.Store),
	}
}

// Setup loads tokenizers, dictionaries, the model registry and the
// correspondence engine according to the flags and config file
func (p *Processor) Setup(ctx context.Context) error {
	policyName := p.flags.Policy
	if policyName == "last" && viper.IsSet("dictionary.policy") {
		policyName = viper.GetString("dictionary.policy")
	}
	policy, err := dictionary.PolicyFromName(policyName)
	if err != nil {
		return err
	}

	var languages []*pipeline.Language
	for _, code := range p.languageCodes() {
		lang, err := p.loadLanguage(code, policy)
		if err != nil {
			return err
		}
		languages = append(languages, lang)
	}

	cacheSize := p.flags.CacheSize
	if cacheSize == 4 && viper.IsSet("models.cache_size") {
		cacheSize = viper.GetInt("models.cache_size")
	}

	reg, err := registry.New(&registry.Config{
		Dir:           p.flags.ModelDir,
		CacheCapacity: cacheSize,
	})
	if err != nil {
		return err
	}

	discovered, err := reg.Discover()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: model discovery failed: %v\n", err)
	} else if p.flags.Verbose {
		fmt.Printf("Discovered %d model artifacts in %s\n", len(discovered), p.flags.ModelDir)
	}
	p.registry = reg

	table, err := p.loadTable()
	if err != nil {
		return err
	}

	engine, err := correspondence.NewEngine(table, p.buildReranker(table))
	if err != nil {
		return err
	}

	orch, err := pipeline.New(&pipeline.Config{
		Registry:  reg,
		Engine:    engine,
		Languages: languages,
	})
	if err != nil {
		return err
	}
	p.orchestrator = orch

	return nil
}

// Close releases database handles held by the processor
func (p *Processor) Close() error {
	var firstErr error
	for _, db := range p.dbStores {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// languageCodes returns the distinct languages of the configured pair
func (p *Processor) languageCodes() []string {
	codes := []string{p.flags.SourceLanguage}
	if p.flags.TargetLanguage != p.flags.SourceLanguage {
		codes = append(codes, p.flags.TargetLanguage)
	}
	return codes
}

// loadLanguage assembles the tokenizers and dictionary for one language.
// Missing resources disable the corresponding resolution path with a
// warning; they do not abort setup.
func (p *Processor) loadLanguage(code string, policy dictionary.Policy) (*pipeline.Language, error) {
	lang := &pipeline.Language{Code: code}

	spellingPath := filepath.Join(p.flags.TokenizerDir, code+"_spelling.json")
	if tok, err := tokenizer.Load(spellingPath); err == nil {
		lang.Spelling = tok
	} else {
		fmt.Fprintf(os.Stderr, "Warning: no spelling tokenizer for %s: %v\n", code, err)
	}

	ipaPath := filepath.Join(p.flags.TokenizerDir, code+"_ipa.json")
	if tok, err := tokenizer.Load(ipaPath); err == nil {
		lang.IPA = tok
	} else {
		fmt.Fprintf(os.Stderr, "Warning: no IPA tokenizer for %s: %v\n", code, err)
	}

	if p.flags.DictDB != "" {
		db, err := dictionary.OpenSQLiteStore(p.flags.DictDB, code)
		if err != nil {
			return nil, fmt.Errorf("failed to open dictionary database: %w", err)
		}
		p.dbStores = append(p.dbStores, db)
		lang.Dictionary = db
		return lang, nil
	}

	dictPath := filepath.Join(p.flags.DictDir, code+".txt")
	if _, err := os.Stat(dictPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: no dictionary for %s at %s\n", code, dictPath)
		return lang, nil
	}

	adapter := dictionary.NewIPADictAdapter()
	rows, err := adapter.Load(dictPath, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary for %s: %w", code, err)
	}

	store := dictionary.NewStore(code, policy)
	warnings := store.Ingest(rows)
	for i, w := range warnings {
		if i == maxIngestWarnings {
			fmt.Fprintf(os.Stderr, "Warning: %d more dictionary warnings for %s suppressed\n",
				len(warnings)-maxIngestWarnings, code)
			break
		}
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	lang.Dictionary = store
	p.stores[code] = store
	return lang, nil
}

// loadTable loads the correspondence table for the language pair. A missing
// table degrades to identity mapping with a warning.
func (p *Processor) loadTable() (*correspondence.Table, error) {
	path := p.flags.TableFile
	if path == "" && viper.IsSet("table.file") {
		path = viper.GetString("table.file")
	}
	if path == "" {
		path = filepath.Join(filepath.Dir(p.flags.DictDir), "tables",
			fmt.Sprintf("%s_%s.json", p.flags.SourceLanguage, p.flags.TargetLanguage))
	}

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: no correspondence table at %s, using identity mapping\n", path)
		return correspondence.NewStaticTable(p.flags.SourceLanguage, p.flags.TargetLanguage, nil), nil
	}

	return correspondence.LoadTable(path)
}

// buildReranker creates the optional LLM re-ranking provider. Only ranked
// tables carry the alternatives a re-ranker can work with.
func (p *Processor) buildReranker(table *correspondence.Table) correspondence.Reranker {
	provider := p.flags.RerankProvider
	if provider == "" && viper.IsSet("rerank.provider") {
		provider = viper.GetString("rerank.provider")
	}
	if provider == "" || table.Stage != correspondence.StageRanked {
		return nil
	}

	config := &rerank.Config{
		Provider:       provider,
		TargetLanguage: p.flags.TargetLanguage,
		OpenAIKey:      cli.GetOpenAIKey(),
		OpenAIModel:    p.flags.OpenAIModel,
		GeminiKey:      cli.GetGeminiKey(),
		GeminiModel:    p.flags.GeminiModel,
	}
	if p.flags.OpenAIModel == "gpt-4o-mini" && viper.IsSet("rerank.openai_model") {
		config.OpenAIModel = viper.GetString("rerank.openai_model")
	}
	if p.flags.GeminiModel == "gemini-2.0-flash" && viper.IsSet("rerank.gemini_model") {
		config.GeminiModel = viper.GetString("rerank.gemini_model")
	}

	primary, err := rerank.NewProvider(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: re-ranking disabled: %v\n", err)
		return nil
	}

	// Wire the other provider as fallback when its key is present
	fallbackConfig := *config
	switch provider {
	case "openai":
		fallbackConfig.Provider = "gemini"
	case "gemini":
		fallbackConfig.Provider = "openai"
	}
	if fallbackConfig.Provider != config.Provider {
		if fallback, err := rerank.NewProvider(&fallbackConfig); err == nil {
			return rerank.NewProviderWithFallback(primary, fallback)
		}
	}

	return primary
}

// ProcessSingleWord translates a single word from the command line
func (p *Processor) ProcessSingleWord(ctx context.Context, word string) error {
	fmt.Printf("\nTranslating %s (%s to %s)\n", word, p.flags.SourceLanguage, p.flags.TargetLanguage)

	result, err := p.translate(ctx, word, "")
	if err != nil {
		return err
	}

	p.printResult(result)
	return nil
}

// ProcessBatch translates multiple words from a batch file
func (p *Processor) ProcessBatch(ctx context.Context) error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	// Track statistics
	translatedCount := 0
	skippedCount := 0
	errorCount := 0

	for i, entry := range entries {
		fmt.Printf("\nProcessing %d/%d: %s\n", i+1, len(entries), entry.Word)

		result, err := p.translate(ctx, entry.Word, entry.Language)
		if err != nil {
			var unknown *pipeline.UnknownWordError
			if errors.As(err, &unknown) {
				fmt.Printf("  Skipping '%s', not in the %s dictionary\n", entry.Word, unknown.Language)
				skippedCount++
				continue
			}
			fmt.Fprintf(os.Stderr, "Error processing '%s': %v\n", entry.Word, err)
			errorCount++
			// Continue with next word
			continue
		}

		p.printResult(result)
		translatedCount++
	}

	// Print summary
	fmt.Printf("\n=== Batch Translation Summary ===\n")
	fmt.Printf("Total words: %d\n", len(entries))
	fmt.Printf("Translated: %d\n", translatedCount)
	fmt.Printf("Skipped (unknown words): %d\n", skippedCount)
	if errorCount > 0 {
		fmt.Printf("Errors: %d\n", errorCount)
	}
	fmt.Printf("=================================\n")

	return nil
}

func (p *Processor) translate(ctx context.Context, word, sourceOverride string) (*pipeline.Result, error) {
	source := p.flags.SourceLanguage
	if sourceOverride != "" {
		source = sourceOverride
	}

	return p.orchestrator.Translate(ctx, pipeline.Request{
		Word:           word,
		SourceLanguage: source,
		TargetLanguage: p.flags.TargetLanguage,
		DictionaryOnly: p.flags.DictionaryOnly,
		Preference: registry.Preference{
			Architecture: p.flags.Architecture,
			ConfigHash:   p.flags.ConfigHash,
		},
	})
}

func (p *Processor) printResult(result *pipeline.Result) {
	fmt.Printf("  Source IPA: /%s/\n", result.SourceIPA)
	fmt.Printf("  Target IPA: /%s/\n", result.TargetIPA)
	fmt.Printf("  Spelling:   %s\n", result.TargetSpelling)

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	if p.flags.Verbose {
		fmt.Printf("  Provenance:\n")
		for _, rec := range result.Provenance {
			line := fmt.Sprintf("    %s: %s", rec.Stage, rec.Origin)
			if rec.Model != "" {
				line += fmt.Sprintf(" (%s)", rec.Model)
			}
			if rec.Detail != "" {
				line += fmt.Sprintf(", %s", rec.Detail)
			}
			fmt.Println(line)
		}
	}
}

// ListArtifacts prints the discovered model artifacts
func (p *Processor) ListArtifacts() error {
	descriptors := p.registry.Descriptors()
	if len(descriptors) == 0 {
		fmt.Printf("No model artifacts found in %s\n", p.flags.ModelDir)
		return nil
	}

	fmt.Printf("Model artifacts in %s:\n", p.flags.ModelDir)
	for _, d := range descriptors {
		fmt.Printf("  %s/%s  %s  %d epochs  loss %.4f\n",
			d.Language, d.Direction, d.Architecture, d.Epoch, d.Loss)
	}
	return nil
}

// ExportDB imports the loaded in-memory dictionaries into a SQLite
// database that later runs can use via --dict-db
func (p *Processor) ExportDB(path string) error {
	for _, code := range p.languageCodes() {
		store, ok := p.stores[code]
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: no in-memory dictionary for %s, nothing to export\n", code)
			continue
		}

		db, err := dictionary.OpenSQLiteStore(path, code)
		if err != nil {
			return err
		}
		if err := db.Import(store); err != nil {
			db.Close()
			return fmt.Errorf("failed to export %s dictionary: %w", code, err)
		}

		count, err := db.Count()
		if err != nil {
			db.Close()
			return err
		}
		db.Close()

		fmt.Printf("Exported %d %s entries to %s\n", count, code, path)
	}
	return nil
}

// ShowStats prints statistics for the loaded dictionaries
func (p *Processor) ShowStats() error {
	for _, db := range p.dbStores {
		count, err := db.Count()
		if err != nil {
			return err
		}
		fmt.Printf("\nDictionary database entries for %s: %d\n", db.Language(), count)
	}

	for _, code := range p.languageCodes() {
		store, ok := p.stores[code]
		if !ok {
			continue
		}
		stats := store.Stats()
		fmt.Printf("\nDictionary statistics for %s:\n", code)
		fmt.Printf("  Entries:       %d\n", stats.TotalEntries)
		fmt.Printf("  Unique words:  %d\n", stats.UniqueWords)
		fmt.Printf("  Disambiguated: %d\n", stats.Disambiguated)
	}
	return nil
}
