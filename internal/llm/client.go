package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client turns a rendered career-report prompt into the model's raw JSON answer. The
// report package normalizes whatever comes back, so implementations only strip fences.
type Client interface {
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel names the model a tier resolves to, for logs and metrics labels.
	GetModel(tier ModelTier) string
	Close() error
}

// NewClient returns the Gemini-backed report generator. A nil config uses DefaultConfig.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// GeminiClient generates reports through the Gemini API.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create report generator: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateJSON sends one report prompt with the JSON response MIME type set. Transport and
// empty-answer failures come back as *GenerationError carrying the model name.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	generator := c.client.GenerativeModel(modelName)
	generator.SetTemperature(c.config.Temperature)
	generator.ResponseMIMEType = "application/json"

	resp, err := generator.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &GenerationError{Model: modelName, Cause: err}
	}

	text, err := reportText(resp)
	if err != nil {
		return "", &GenerationError{Model: modelName, Cause: err}
	}

	return CleanJSONBlock(text), nil
}

func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// reportText joins the text parts of the first candidate.
func reportText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("model returned no report candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("report candidate has no content")
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("report candidate has no text parts")
	}
	return b.String(), nil
}
