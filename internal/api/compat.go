package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/quocvuong92/shelldon/internal/logging"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents the Chat Completions API request
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	Stream      bool      `json:"stream,omitempty"`
}

// Usage represents token usage statistics
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Delta represents streaming delta content
type Delta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// Choice represents a response choice
type Choice struct {
	Index        int     `json:"index"`
	Delta        Delta   `json:"delta,omitempty"`
	Message      Message `json:"message,omitempty"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// ChatResponse represents the API response
type ChatResponse struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// GetContent extracts the content from the response
func (r *ChatResponse) GetContent() string {
	if len(r.Choices) > 0 {
		if r.Choices[0].Message.Content != "" {
			return r.Choices[0].Message.Content
		}
		return r.Choices[0].Delta.Content
	}
	return ""
}

// ErrorResponse is the error body returned by OpenAI-compatible endpoints
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// CompatClient talks to any endpoint implementing the OpenAI chat
// completions protocol (Anthropic, DeepSeek, xAI, Groq, Ollama).
//
// It sits next to OpenAIClient instead of reusing go-openai so that the
// vendor-specific parts stay in one small place: error bodies whose code may
// be a string or a number, stream chunks that omit ids or usage, and Ollama's
// unauthenticated endpoint. OpenAIClient remains the path for OpenAI itself.
type CompatClient struct {
	httpClient *http.Client
	provider   string
	baseURL    string
	apiKey     string
	log        *logging.FieldLogger
}

// NewCompatClient creates a client for baseURL. apiKey may be empty for
// endpoints that do not authenticate.
func NewCompatClient(provider, baseURL, apiKey string, httpClient *http.Client) *CompatClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &CompatClient{
		httpClient: httpClient,
		provider:   provider,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		log:        logging.DefaultLogger.WithFields(logging.Fields{"provider": provider}),
	}
}

func (c *CompatClient) endpoint() string {
	return c.baseURL + "/chat/completions"
}

func (c *CompatClient) newRequest(ctx context.Context, req Request, stream bool) (*http.Request, error) {
	messages := make([]Message, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, Message{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, Message{Role: "user", Content: req.UserInput})

	jsonData, err := json.Marshal(ChatRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		Stream:      stream,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.log.Debug("sending request", logging.Fields{"model": req.Model, "stream": stream})

	httpReq.Header.Set("Content-Type", "application/json")
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return httpReq, nil
}

// apiError builds an APIError from a non-200 response body
func (c *CompatClient) apiError(statusCode int, body []byte) error {
	var errResp ErrorResponse
	errMsg := fmt.Sprintf("status code %d", statusCode)
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		errMsg = errResp.Error.Message
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("%s API error: %s", c.provider, errMsg),
	}
}

// Generate sends a non-streaming request
func (c *CompatClient) Generate(ctx context.Context, req Request) (string, error) {
	httpReq, err := c.newRequest(ctx, req, false)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.apiError(resp.StatusCode, body)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	content := chatResp.GetContent()
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

// Stream sends a streaming request. The returned Stream owns the response body.
func (c *CompatClient) Stream(ctx context.Context, req Request) (*Stream, error) {
	httpReq, err := c.newRequest(ctx, req, true)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, c.apiError(resp.StatusCode, body)
	}

	processor := NewSSEProcessor(resp.Body)
	return NewStream(processor.Next, func() error {
		c.log.Debug("stream closed", logging.Fields{
			"response_id": processor.ResponseID(),
			"tokens":      processor.Usage().TotalTokens,
		})
		return resp.Body.Close()
	}), nil
}
