package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/cfpwatch/internal/model"
)

// NewProvider creates a new LLM provider based on configuration.
// An empty provider name disables the delegate and returns nil, nil.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(strings.TrimSpace(config.Provider))

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "gemini", "google":
		return NewGeminiProvider(config)

	case "":
		// No provider configured - return nil (LLM disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama, gemini)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config, filling the API key
// and base URL from the environment when they are not configured
func ConfigFromModel(modelConfig model.LLMConfig, http model.HTTPConfig) Config {
	cfg := Config{
		Provider:      modelConfig.Provider,
		Model:         modelConfig.Model,
		APIKey:        modelConfig.APIKey,
		BaseURL:       modelConfig.BaseURL,
		Timeout:       modelConfig.Timeout,
		MaxTokens:     modelConfig.MaxTokens,
		MaxInputChars: modelConfig.MaxInputChars,
		StrictSource:  modelConfig.StrictSource,
		HTTPProxy:     http.HTTPProxy,
		HTTPSProxy:    http.HTTPSProxy,
		NoProxy:       http.NoProxy,
	}
	applyEnv(&cfg, os.Getenv)
	return cfg
}

// applyEnv fills missing credentials from the provider's conventional variables
func applyEnv(cfg *Config, getenv func(string) string) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		if cfg.APIKey == "" {
			cfg.APIKey = getenv("OPENAI_API_KEY")
		}
		if cfg.BaseURL == "" {
			cfg.BaseURL = getenv("OPENAI_BASE_URL")
		}
	case "anthropic", "claude":
		if cfg.APIKey == "" {
			cfg.APIKey = getenv("ANTHROPIC_API_KEY")
		}
	case "gemini", "google":
		if cfg.APIKey == "" {
			cfg.APIKey = getenv("GEMINI_API_KEY")
		}
		if cfg.APIKey == "" {
			cfg.APIKey = getenv("GOOGLE_API_KEY")
		}
	case "ollama":
		if cfg.BaseURL == "" {
			cfg.BaseURL = getenv("OLLAMA_BASE_URL")
		}
	}
}
