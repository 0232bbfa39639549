package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider implements the Provider interface for Google Gemini models
type GeminiProvider struct {
	client *genai.Client
	config Config
}

// NewGeminiProvider creates a new Gemini provider using the Gemini API backend
func NewGeminiProvider(config Config) (*GeminiProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable reports whether a client was configured; the Gemini API has
// no free lightweight probe
func (p *GeminiProvider) IsAvailable(ctx context.Context) bool {
	return p.client != nil
}

// Extract asks Gemini for the deadline fields with a JSON response schema
func (p *GeminiProvider) Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	model := p.config.Model
	if model == "" {
		model = defaultGeminiModel
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{{Text: BuildPrompt(req, p.config.MaxInputChars)}},
			Role:  "user",
		},
	}

	resp, err := p.client.Models.GenerateContent(ctxWithTimeout, model, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SystemPrompt}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema(),
		MaxOutputTokens:   int32(p.config.maxTokens()),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	out, err := ParseResponse(resp.Text())
	if err != nil {
		return nil, err
	}
	out.Model = model
	return out, nil
}

func responseSchema() *genai.Schema {
	nullableString := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc, Nullable: genai.Ptr(true)}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"paper_deadline":    {Type: genai.TypeString, Description: "Main paper submission deadline or TBD."},
			"submission_type":   {Type: genai.TypeString, Description: "Submission type of the paper deadline."},
			"abstract_deadline": nullableString("Abstract deadline if separate."),
			"conference_date":   nullableString("Dates of the conference itself."),
			"location":          nullableString("City and country of the conference."),
			"source_text":       {Type: genai.TypeString, Description: "Verbatim page text the deadline was read from."},
		},
		Required: []string{"paper_deadline", "submission_type", "source_text"},
	}
}
