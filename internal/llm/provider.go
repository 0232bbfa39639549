// Package llm implements the optional delegate extractor backed by a hosted or local model.
package llm

import (
	"context"
	"errors"
)

// ErrNoProvider is returned when a delegate is required but none is configured
var ErrNoProvider = errors.New("no LLM provider configured")

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Extract asks the model for the deadline fields of one page
	Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ExtractRequest contains the input for delegate extraction
type ExtractRequest struct {
	// PageText is the visible page text, truncated by BuildPrompt
	PageText string

	// Acronym and Year identify the target edition
	Acronym string
	Year    int

	// URL is the page the text came from
	URL string
}

// ExtractResponse is the model's answer. It is untrusted: callers re-validate every field.
type ExtractResponse struct {
	PaperDeadline    string `json:"paper_deadline"`
	SubmissionType   string `json:"submission_type"`
	AbstractDeadline string `json:"abstract_deadline,omitempty"`
	ConferenceDate   string `json:"conference_date,omitempty"`
	Location         string `json:"location,omitempty"`

	// SourceText is the page snippet the model read the deadline from
	SourceText string `json:"source_text,omitempty"`

	// Model is the model that generated the response
	Model string `json:"model,omitempty"`
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "gemini", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic/Gemini
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// MaxInputChars bounds the page text sent to the model
	MaxInputChars int

	// StrictSource rejects answers whose source_text is not on the page
	StrictSource bool

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:      "", // Disabled by default
		Timeout:       60,
		MaxTokens:     500,
		MaxInputChars: 6000,
		StrictSource:  true,
	}
}

func (c Config) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return 500
}
