package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider names a text generation backend.
type Provider string

const (
	ProviderNone      Provider = "none"
	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"
	ProviderAnthropic Provider = "anthropic"
)

// Config selects and configures a backend.
type Config struct {
	Provider Provider
	Model    string
	APIKey   string
	// BaseURL points the openai provider at a compatible endpoint, or the
	// ollama provider at its server.
	BaseURL string
}

// ParseProvider converts a string to a Provider, defaulting to none.
func ParseProvider(raw string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case "":
		return ProviderNone, nil
	case ProviderNone, ProviderOpenAI, ProviderOllama, ProviderAnthropic:
		return p, nil
	default:
		return ProviderNone, fmt.Errorf("enrich: unknown provider %q", raw)
	}
}

// NewGenerator builds the backend named by cfg.
func NewGenerator(cfg Config) (Generator, error) {
	switch cfg.Provider {
	case "", ProviderNone:
		return offline{}, nil
	case ProviderOpenAI:
		return NewOpenAI(cfg)
	case ProviderOllama, ProviderAnthropic:
		return NewLangChain(cfg)
	default:
		return nil, fmt.Errorf("enrich: unsupported provider: %s", cfg.Provider)
	}
}

// NewClient is a convenience for NewLLMClient(NewGenerator(cfg)).
func NewClient(cfg Config) (Client, error) {
	gen, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	return NewLLMClient(gen), nil
}

var errOffline = errors.New("no text generation provider configured")

// offline is used when no provider is configured. Every call fails, which
// drives the lifecycle through its fallbacks.
type offline struct{}

func (offline) Generate(context.Context, string, string) (string, error) {
	return "", errOffline
}
