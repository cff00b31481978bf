package rerank

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/phonobridge/internal/correspondence"
)

// GeminiProvider implements Provider using Google Gemini models
type GeminiProvider struct {
	config *Config
}

// NewGeminiProvider creates a new Gemini re-ranking provider
func NewGeminiProvider(config *Config) (Provider, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	return &GeminiProvider{config: config}, nil
}

// Rerank asks the Gemini model to order the candidate symbols for the
// target language and reorders the table candidates accordingly
func (p *GeminiProvider) Rerank(ctx context.Context, sourceSymbol string, candidates []correspondence.Candidate) ([]correspondence.Candidate, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	symbols := make([]string, len(candidates))
	for i, c := range candidates {
		symbols[i] = c.Target
	}

	prompt := fmt.Sprintf(
		"Source IPA symbol: %s. Candidate replacements in the %s IPA inventory: %s. "+
			"Rank them by how natural the substitution sounds to a native speaker. "+
			"Respond with only the candidate symbols, comma-separated, best first.",
		sourceSymbol, p.config.TargetLanguage, strings.Join(symbols, ", "))

	resp, err := client.Models.GenerateContent(ctx, p.config.GeminiModel, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("no ranking returned")
	}

	return reorderByResponse(candidates, parseSymbolList(text)), nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks if the provider is properly configured
func (p *GeminiProvider) IsAvailable() error {
	if p.config.GeminiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}
