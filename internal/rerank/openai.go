package rerank

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/phonobridge/internal/correspondence"
)

// OpenAIProvider implements Provider using OpenAI chat models
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI re-ranking provider
func NewOpenAIProvider(config *Config) (Provider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAIProvider{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
	}, nil
}

// Rerank asks the chat model to order the candidate symbols for the target
// language and reorders the table candidates accordingly
func (p *OpenAIProvider) Rerank(ctx context.Context, sourceSymbol string, candidates []correspondence.Candidate) ([]correspondence.Candidate, error) {
	req := openai.ChatCompletionRequest{
		Model: p.config.OpenAIModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a phonetician ranking IPA symbol substitutions for a target language. Respond with only the candidate symbols, comma-separated, best first.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: p.prompt(sourceSymbol, candidates),
			},
		},
		MaxTokens:   50,
		Temperature: 0,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no ranking returned")
	}

	return reorderByResponse(candidates, parseSymbolList(resp.Choices[0].Message.Content)), nil
}

func (p *OpenAIProvider) prompt(sourceSymbol string, candidates []correspondence.Candidate) string {
	symbols := make([]string, len(candidates))
	for i, c := range candidates {
		symbols[i] = c.Target
	}

	return fmt.Sprintf(
		"Source IPA symbol: %s. Candidate replacements in the %s IPA inventory: %s. Rank them by how natural the substitution sounds to a native speaker.",
		sourceSymbol, p.config.TargetLanguage, strings.Join(symbols, ", "))
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

// parseSymbolList splits a comma-separated model response into symbols
func parseSymbolList(response string) []string {
	var symbols []string
	for _, part := range strings.Split(response, ",") {
		if s := strings.TrimSpace(part); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}
