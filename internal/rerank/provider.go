package rerank

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/snonux/phonobridge/internal/correspondence"
)

// Provider defines the interface for candidate re-ranking providers
type Provider interface {
	// Rerank reorders the candidates for one source symbol, best first
	Rerank(ctx context.Context, sourceSymbol string, candidates []correspondence.Candidate) ([]correspondence.Candidate, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured
	IsAvailable() error
}

// Config holds common configuration for re-ranking providers
type Config struct {
	Provider string // "openai" or "gemini"

	TargetLanguage string // language whose orthographic habits guide ranking

	OpenAIKey   string
	OpenAIModel string // e.g. "gpt-4o-mini"

	GeminiKey   string
	GeminiModel string // e.g. "gemini-2.0-flash"
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:    "openai",
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-2.0-flash",
	}
}

// NewProvider creates the appropriate re-ranking provider based on
// configuration
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "openai":
		return NewOpenAIProvider(config)
	case "gemini":
		return NewGeminiProvider(config)
	default:
		return nil, fmt.Errorf("unknown rerank provider: %s", config.Provider)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary
// if primary fails
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{primary: primary, fallback: fallback}
}

// Rerank tries the primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Rerank(ctx context.Context, sourceSymbol string, candidates []correspondence.Candidate) ([]correspondence.Candidate, error) {
	reranked, err := p.primary.Rerank(ctx, sourceSymbol, candidates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Primary rerank provider (%s) failed: %v. Falling back to %s\n",
			p.primary.Name(), err, p.fallback.Name())
		return p.fallback.Rerank(ctx, sourceSymbol, candidates)
	}
	return reranked, nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}

// reorderByResponse matches a model's preferred symbol order back onto the
// original candidates. Symbols the model did not mention keep their table
// order after the mentioned ones.
func reorderByResponse(candidates []correspondence.Candidate, preferred []string) []correspondence.Candidate {
	used := make(map[int]bool, len(candidates))
	out := make([]correspondence.Candidate, 0, len(candidates))

	for _, symbol := range preferred {
		for i, c := range candidates {
			if !used[i] && c.Target == symbol {
				out = append(out, c)
				used[i] = true
				break
			}
		}
	}

	for i, c := range candidates {
		if !used[i] {
			out = append(out, c)
		}
	}

	return out
}
