package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile        string
	SourceLanguage string
	TargetLanguage string
	BatchFile      string
	DictionaryOnly bool
	ShowStats      bool
	ListModels     bool
	Verbose        bool

	// Data locations
	DictDir      string
	DictDB       string
	ExportDB     string
	TokenizerDir string
	ModelDir     string
	TableFile    string

	// Dictionary flags
	Policy string

	// Model selection flags
	Architecture string
	ConfigHash   string
	CacheSize    int

	// Re-ranking flags
	RerankProvider string
	OpenAIModel    string
	GeminiModel    string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		SourceLanguage: "de",
		TargetLanguage: "es",
		Policy:         "last",
		CacheSize:      4,
		OpenAIModel:    "gpt-4o-mini",
		GeminiModel:    "gemini-2.0-flash",
	}
}
