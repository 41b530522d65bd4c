package generator

import (
	"fmt"

	"github.com/decagondev/react-component-generator/internal/config"
	"github.com/decagondev/react-component-generator/llm"
	"github.com/decagondev/react-component-generator/llm/anthropic"
	"github.com/decagondev/react-component-generator/llm/openai"
)

// NewLLMClient builds an llm.Client from the configuration and returns it
// together with the resolved provider and model names. With provider
// "auto" the Anthropic key wins if both are set.
func NewLLMClient(cfg *config.Config) (llm.Client, string, string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, "", "", err
	}

	provider := cfg.Provider
	if provider == "auto" {
		if cfg.AnthropicAPIKey != "" {
			provider = "anthropic"
		} else {
			provider = "openai"
		}
	}

	opts := llm.Options{Temperature: cfg.Temperature, MaxTokens: cfg.MaxTokens}

	switch provider {
	case "anthropic":
		model := cfg.Model
		if model == "" {
			model = "claude-sonnet-4-20250514"
		}
		return anthropic.New(cfg.AnthropicAPIKey, model, opts), provider, model, nil
	case "openai":
		model := cfg.Model
		if model == "" {
			model = "gpt-4o"
		}
		return openai.New(cfg.OpenAIAPIKey, model, opts), provider, model, nil
	default:
		return nil, "", "", fmt.Errorf("unknown provider %q", provider)
	}
}
