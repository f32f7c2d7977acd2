package api

import (
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"

	"google.golang.org/genai"
)

// Environment variables checked for the Gemini credential, in order
var geminiKeyEnvVars = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}

// GenAIClient is the Google Gemini backend.
type GenAIClient struct {
	client *genai.Client
}

// NewGenAIClient creates a Gemini client. baseURL is only set in tests.
func NewGenAIClient(ctx context.Context, apiKey, baseURL string, httpClient *http.Client) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, &APIKeyNotSetError{EnvVar: geminiKeyEnvVars[0]}
	}

	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIClient{client: client}, nil
}

func (c *GenAIClient) contentConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	return cfg
}

// Generate sends a non-streaming request
func (c *GenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.UserInput), c.contentConfig(req))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Stream sends a streaming request. The SDK only connects when the sequence
// is first pulled, so the first chunk is read here to surface connection
// errors to the caller.
func (c *GenAIClient) Stream(ctx context.Context, req Request) (*Stream, error) {
	seq := c.client.Models.GenerateContentStream(ctx, req.Model, genai.Text(req.UserInput), c.contentConfig(req))
	next, stop := iter.Pull2(seq)

	first, err, ok := next()
	if ok && err != nil {
		stop()
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	pending := ok
	recv := func() (string, error) {
		if pending {
			pending = false
			return textOf(first), nil
		}
		resp, err, ok := next()
		if !ok {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		return textOf(resp), nil
	}

	return NewStream(recv, func() error {
		stop()
		return nil
	}), nil
}

func textOf(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	return resp.Text()
}
