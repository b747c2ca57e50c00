package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"atscheck-backend/internal/llm"
	"atscheck-backend/internal/shared/metrics"
)

const defaultModel = "gemini-2.0-flash"

// Client implements llm.Client using the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a Gemini client. The API key is required.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is required: %w", llm.ErrAuth)
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Complete sends one prompt and returns the raw model text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	temp := float32(0.3)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: 8192,
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	metrics.ObserveLLMCallMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		return "", classify(err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: empty response", llm.ErrUpstream)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: no text content in response", llm.ErrUpstream)
	}
	return text, nil
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", llm.ErrNetwork, err)
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s", llm.ClassifyStatus(apiErr.Code), apiErr.Message)
	}
	return fmt.Errorf("%w: %v", llm.ErrNetwork, err)
}

var _ llm.Client = (*Client)(nil)
