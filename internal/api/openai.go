package api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/quocvuong92/shelldon/internal/config"
)

// OpenAIClient is the OpenAI chat completions backend.
type OpenAIClient struct {
	api *openai.Client
}

// NewOpenAIClient creates an OpenAI client. An empty apiKey fails with
// ErrAPIKeyNotSet. baseURL overrides the default endpoint when set.
func NewOpenAIClient(apiKey, baseURL string, httpClient *http.Client) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, &APIKeyNotSetError{EnvVar: config.EnvOpenAIAPIKey}
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	return &OpenAIClient{api: openai.NewClientWithConfig(cfg)}, nil
}

func (c *OpenAIClient) newRequest(req Request, stream bool) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserInput,
	})

	// A zero temperature is dropped by omitempty and the server would apply
	// its default of 1. Reasoning models only accept the default.
	temperature := req.Temperature
	if temperature == 0 && !isReasoningModel(req.Model) {
		temperature = math.SmallestNonzeroFloat32
	}

	return openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: temperature,
		Stream:      stream,
	}
}

// Generate sends a non-streaming request
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, c.newRequest(req, false))
	if err != nil {
		return "", wrapOpenAIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// Stream sends a streaming request
func (c *OpenAIClient) Stream(ctx context.Context, req Request) (*Stream, error) {
	stream, err := c.api.CreateChatCompletionStream(ctx, c.newRequest(req, true))
	if err != nil {
		return nil, wrapOpenAIError(err)
	}

	recv := func() (string, error) {
		resp, err := stream.Recv()
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", nil
		}
		return resp.Choices[0].Delta.Content, nil
	}

	return NewStream(recv, func() error {
		return stream.Close()
	}), nil
}

func isReasoningModel(model string) bool {
	for _, prefix := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

// wrapOpenAIError converts SDK HTTP errors into APIError
func wrapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.HTTPStatusCode,
			Message:    fmt.Sprintf("openai API error: %s", apiErr.Message),
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &APIError{
			StatusCode: reqErr.HTTPStatusCode,
			Message:    fmt.Sprintf("openai API error: %v", reqErr.Err),
		}
	}
	return fmt.Errorf("openai request failed: %w", err)
}
