package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/phonobridge/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "phonobridge [word]",
		Short: "Cross-language pronunciation translator",
		Long: `phonobridge translates how a word sounds from one language into
another: source word to source IPA, remapped onto the target language's
phoneme inventory, then spelled with the target orthography.

Dictionaries are ground truth; trained grapheme/phoneme models fill the
gaps for words no dictionary knows.

Examples:
  phonobridge straße                      # German pronunciation, Spanish spelling
  phonobridge --from en_US --to de hello  # pick the language pair
  phonobridge --batch words.txt           # process multiple words from file
  phonobridge --list-models               # show discovered model artifacts`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	home, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(home, ".local", "share", "phonobridge")

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.phonobridge.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.SourceLanguage, "from", flags.SourceLanguage, "Source language code (de, es, en_US, ...)")
	cmd.Flags().StringVar(&flags.TargetLanguage, "to", flags.TargetLanguage, "Target language code")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process words from file (one per line)")
	cmd.Flags().BoolVar(&flags.DictionaryOnly, "dictionary-only", false, "Fail on dictionary misses instead of falling back to models")
	cmd.Flags().BoolVar(&flags.ShowStats, "stats", false, "Show dictionary statistics and exit")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List discovered model artifacts and exit")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print the per-stage provenance trail")

	// Data locations
	cmd.Flags().StringVar(&flags.DictDir, "dict-dir", filepath.Join(defaultDataDir, "dictionaries"), "Directory with ipa-dict files (<language>.txt)")
	cmd.Flags().StringVar(&flags.DictDB, "dict-db", "", "SQLite dictionary database (overrides --dict-dir when set)")
	cmd.Flags().StringVar(&flags.ExportDB, "export-db", "", "Import the loaded dictionaries into a SQLite database and exit")
	cmd.Flags().StringVar(&flags.TokenizerDir, "tokenizer-dir", filepath.Join(defaultDataDir, "tokenizers"), "Directory with tokenizer JSON files")
	cmd.Flags().StringVar(&flags.ModelDir, "model-dir", filepath.Join(defaultDataDir, "models"), "Directory with trained model artifacts")
	cmd.Flags().StringVar(&flags.TableFile, "table", "", "Correspondence table JSON (default <dict-dir>/../tables/<from>_<to>.json)")

	// Dictionary flags
	cmd.Flags().StringVar(&flags.Policy, "policy", flags.Policy, "Pronunciation disambiguation policy: last, first or random")

	// Model selection flags
	cmd.Flags().StringVar(&flags.Architecture, "architecture", "", "Restrict model selection to one architecture (e.g. gru)")
	cmd.Flags().StringVar(&flags.ConfigHash, "config-hash", "", "Restrict model selection to one configuration hash")
	cmd.Flags().IntVar(&flags.CacheSize, "cache-size", flags.CacheSize, "Maximum number of models kept loaded")

	// Re-ranking flags
	cmd.Flags().StringVar(&flags.RerankProvider, "rerank", "", "Re-rank ambiguous correspondences with an LLM: openai or gemini")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI model for re-ranking")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model for re-ranking")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("pipeline.source", cmd.Flags().Lookup("from"))
	viper.BindPFlag("pipeline.target", cmd.Flags().Lookup("to"))
	viper.BindPFlag("dictionary.dir", cmd.Flags().Lookup("dict-dir"))
	viper.BindPFlag("dictionary.db", cmd.Flags().Lookup("dict-db"))
	viper.BindPFlag("dictionary.policy", cmd.Flags().Lookup("policy"))
	viper.BindPFlag("tokenizer.dir", cmd.Flags().Lookup("tokenizer-dir"))
	viper.BindPFlag("models.dir", cmd.Flags().Lookup("model-dir"))
	viper.BindPFlag("models.architecture", cmd.Flags().Lookup("architecture"))
	viper.BindPFlag("models.config_hash", cmd.Flags().Lookup("config-hash"))
	viper.BindPFlag("models.cache_size", cmd.Flags().Lookup("cache-size"))
	viper.BindPFlag("table.file", cmd.Flags().Lookup("table"))
	viper.BindPFlag("rerank.provider", cmd.Flags().Lookup("rerank"))
	viper.BindPFlag("rerank.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("rerank.gemini_model", cmd.Flags().Lookup("gemini-model"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".phonobridge" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".phonobridge")
	}

	// Environment variables
	viper.SetEnvPrefix("PHONOBRIDGE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("rerank.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("rerank.gemini_key")
}
