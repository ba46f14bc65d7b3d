package enrich

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
)

const (
	defaultOllamaModel    = "llama3.1"
	defaultAnthropicModel = "claude-3-5-haiku-latest"
)

// langChainGenerator adapts a langchaingo model.
type langChainGenerator struct {
	llm   llms.Model
	model string
}

// NewLangChain returns a Generator for the ollama or anthropic providers.
func NewLangChain(cfg Config) (Generator, error) {
	var (
		model llms.Model
		name  = cfg.Model
		err   error
	)

	switch cfg.Provider {
	case ProviderOllama:
		if name == "" {
			name = defaultOllamaModel
		}
		opts := []ollama.Option{ollama.WithModel(name)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		model, err = ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("enrich: create ollama model: %w", err)
		}

	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("enrich: anthropic API key required")
		}
		if name == "" {
			name = defaultAnthropicModel
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.APIKey),
			anthropic.WithModel(name),
		)
		if err != nil {
			return nil, fmt.Errorf("enrich: create anthropic model: %w", err)
		}

	default:
		return nil, fmt.Errorf("enrich: provider %s is not served by langchaingo", cfg.Provider)
	}

	return &langChainGenerator{llm: model, model: name}, nil
}

func (g *langChainGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	response, err := g.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%s generate: %w", g.model, err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%s: no response choices", g.model)
	}
	return response.Choices[0].Content, nil
}
