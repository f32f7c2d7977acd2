package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/quocvuong92/shelldon/internal/logging"
)

func sseChunk(content string) string {
	return fmt.Sprintf("data: {\"id\":\"c1\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n", content)
}

func TestChatResponse_GetContent(t *testing.T) {
	tests := []struct {
		name     string
		response ChatResponse
		want     string
	}{
		{
			name:     "content in message",
			response: ChatResponse{Choices: []Choice{{Message: Message{Content: "Hello World"}}}},
			want:     "Hello World",
		},
		{
			name:     "content in delta",
			response: ChatResponse{Choices: []Choice{{Delta: Delta{Content: "Hello Delta"}}}},
			want:     "Hello Delta",
		},
		{
			name: "message takes precedence",
			response: ChatResponse{Choices: []Choice{{
				Message: Message{Content: "Message Content"},
				Delta:   Delta{Content: "Delta Content"},
			}}},
			want: "Message Content",
		},
		{
			name:     "empty choices",
			response: ChatResponse{Choices: []Choice{}},
			want:     "",
		},
		{
			name:     "nil choices",
			response: ChatResponse{},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.response.GetContent(); got != tt.want {
				t.Errorf("GetContent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompatClient_Generate(t *testing.T) {
	var got ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"r1","choices":[{"index":0,"message":{"role":"assistant","content":"ls -la"}}]}`))
	}))
	defer server.Close()

	client := NewCompatClient("deepseek", server.URL+"/v1/", "test-key", server.Client())
	text, err := client.Generate(context.Background(), Request{
		Model:        "deepseek-chat",
		Temperature:  0,
		SystemPrompt: "be a shell",
		UserInput:    "list files",
	})

	require.NoError(t, err)
	assert.Equal(t, "ls -la", text)
	assert.Equal(t, "deepseek-chat", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, []Message{
		{Role: "system", Content: "be a shell"},
		{Role: "user", Content: "list files"},
	}, got.Messages)
}

func TestCompatClient_Generate_NoSystemPrompt(t *testing.T) {
	var got ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"42"}}]}`))
	}))
	defer server.Close()

	client := NewCompatClient("ollama", server.URL, "", server.Client())
	text, err := client.Generate(context.Background(), Request{Model: "llama3", UserInput: "answer?"})

	require.NoError(t, err)
	assert.Equal(t, "42", text)
	assert.Equal(t, []Message{{Role: "user", Content: "answer?"}}, got.Messages)
}

func TestCompatClient_Generate_EmptyResponse(t *testing.T) {
	bodies := []string{
		`{"choices":[]}`,
		`{"choices":[{"message":{"role":"assistant","content":""}}]}`,
		`{}`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			text, err := NewCompatClient("test", server.URL, "k", server.Client()).
				Generate(context.Background(), Request{Model: "m", UserInput: "x"})

			assert.ErrorIs(t, err, ErrEmptyResponse)
			assert.Empty(t, text)
		})
	}
}

func TestCompatClient_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","code":"invalid_api_key"}}`))
	}))
	defer server.Close()

	_, err := NewCompatClient("anthropic", server.URL, "bad", server.Client()).
		Generate(context.Background(), Request{Model: "claude-x", UserInput: "x"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "anthropic API error: invalid api key", apiErr.Message)
}

func TestCompatClient_Stream(t *testing.T) {
	var got ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "text/event-stream")
		for _, part := range []string{"Hello", " ", "World"} {
			_, _ = w.Write([]byte(sseChunk(part)))
		}
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	stream, err := NewCompatClient("xai", server.URL, "k", server.Client()).
		Stream(context.Background(), Request{Model: "grok-3", UserInput: "hi"})
	require.NoError(t, err)

	var sb strings.Builder
	for fragment := range stream.Fragments() {
		sb.WriteString(fragment)
	}

	assert.Equal(t, "Hello World", sb.String())
	assert.True(t, got.Stream)
}

func TestCompatClient_LogsCarryProvider(t *testing.T) {
	var logs bytes.Buffer
	logging.DefaultLogger.SetOutput(&logs)
	logging.SetFormat(logging.FormatJSON)
	logging.SetLevel(logging.LevelDebug)
	t.Cleanup(func() {
		logging.SetLevel(logging.LevelWarn)
		logging.SetFormat(logging.FormatText)
		logging.DefaultLogger.SetOutput(os.Stderr)
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(sseChunk("ok")))
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	stream, err := NewCompatClient("deepseek", server.URL, "k", server.Client()).
		Stream(context.Background(), Request{Model: "deepseek-chat", UserInput: "hi"})
	require.NoError(t, err)
	for range stream.Fragments() {
	}

	messages := map[string]map[string]interface{}{}
	scanner := bufio.NewScanner(&logs)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		if fields, ok := entry["fields"].(map[string]interface{}); ok {
			messages[entry["message"].(string)] = fields
		}
	}

	require.Contains(t, messages, "sending request")
	assert.Equal(t, "deepseek", messages["sending request"]["provider"])
	assert.Equal(t, "deepseek-chat", messages["sending request"]["model"])
	require.Contains(t, messages, "stream closed")
	assert.Equal(t, "deepseek", messages["stream closed"]["provider"])
	assert.Equal(t, "c1", messages["stream closed"]["response_id"])
}

func TestCompatClient_Stream_DecodeErrorTruncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(sseChunk("partial")))
		_, _ = w.Write([]byte("data: {garbage\n\n"))
		_, _ = w.Write([]byte(sseChunk("lost")))
	}))
	defer server.Close()

	stream, err := NewCompatClient("test", server.URL, "k", server.Client()).
		Stream(context.Background(), Request{Model: "m", UserInput: "x"})
	require.NoError(t, err)

	var fragments []string
	for fragment := range stream.Fragments() {
		fragments = append(fragments, fragment)
	}
	assert.Equal(t, []string{"partial"}, fragments)
}

func TestCompatClient_Stream_APIErrorIsEager(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	stream, err := NewCompatClient("test", server.URL, "k", server.Client()).
		Stream(context.Background(), Request{Model: "m", UserInput: "x"})

	assert.Nil(t, stream)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "test API error: status code 500", apiErr.Message)
}

func TestCompatClient_Stream_EarlyBreakDoesNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(sseChunk("first")))
		w.(http.Flusher).Flush()
		// Hold the stream open until the client goes away.
		<-r.Context().Done()
	}))

	transport := &http.Transport{}
	client := &http.Client{Transport: transport}

	stream, err := NewCompatClient("test", server.URL, "k", client).
		Stream(context.Background(), Request{Model: "m", UserInput: "x"})
	require.NoError(t, err)

	for fragment := range stream.Fragments() {
		assert.Equal(t, "first", fragment)
		break
	}

	transport.CloseIdleConnections()
	server.Close()
}
