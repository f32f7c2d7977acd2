package logging

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSensitiveHeader(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"Authorization", true},
		{"authorization", true},
		{"X-Api-Key", true},
		{"x-goog-api-key", true},
		{"Cookie", true},
		{"Content-Type", false},
		{"Accept", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, isSensitiveHeader(tt.header))
		})
	}
}

func TestRedactURL(t *testing.T) {
	u, err := url.Parse("https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent?key=secret123&alt=sse")
	require.NoError(t, err)

	got := redactURL(u)
	assert.NotContains(t, got, "secret123")
	assert.Contains(t, got, "REDACTED")
	assert.Contains(t, got, "alt=sse")
	assert.Equal(t, "key=secret123&alt=sse", u.RawQuery)

	plain, err := url.Parse("https://api.openai.com/v1/chat/completions")
	require.NoError(t, err)
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", redactURL(plain))
	assert.Empty(t, redactURL(nil))
}

func TestTruncateBody(t *testing.T) {
	assert.Equal(t, "short", truncateBody([]byte("short"), 10))
	assert.Equal(t, "0123...[truncated]", truncateBody([]byte("0123456789"), 4))
}

func TestRedactSensitiveFields(t *testing.T) {
	input := map[string]interface{}{
		"model":   "gpt-4o",
		"api_key": "sk-secret",
		"nested": map[string]interface{}{
			"password": "hunter2",
			"keep":     "me",
		},
		"list": []interface{}{
			map[string]interface{}{"token": "abc"},
		},
	}

	got := redactSensitiveFields(input).(map[string]interface{})

	assert.Equal(t, "gpt-4o", got["model"])
	assert.Equal(t, "[REDACTED]", got["api_key"])
	nested := got["nested"].(map[string]interface{})
	assert.Equal(t, "[REDACTED]", nested["password"])
	assert.Equal(t, "me", nested["keep"])
	list := got["list"].([]interface{})
	assert.Equal(t, "[REDACTED]", list[0].(map[string]interface{})["token"])
}

func TestRoundTripper_AddsRequestIDAndRedacts(t *testing.T) {
	var seenID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = r.Header.Get(RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatJSON, Output: &buf})
	client := NewDebugClient(logger, 5*time.Second)

	req, err := http.NewRequest(http.MethodPost, server.URL, strings.NewReader(`{"model":"m"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer sk-secret")

	resp, err := client.Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, `{"ok":true}`, string(body))
	assert.NotEmpty(t, seenID)

	out := buf.String()
	assert.Contains(t, out, seenID)
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "sk-secret")
}

func TestRoundTripper_KeepsExistingRequestID(t *testing.T) {
	var seenID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = r.Header.Get(RequestIDHeader)
	}))
	defer server.Close()

	logger := New(Options{Level: LevelNone, Output: io.Discard})
	client := NewDebugClient(logger, 5*time.Second)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "fixed-id")

	resp, err := client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "fixed-id", seenID)
}

func TestRoundTripper_StreamingBodyUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatJSON, Output: &buf})
	client := NewDebugClient(logger, 5*time.Second)

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "data: [DONE]\n\n", string(body))
	assert.NotContains(t, buf.String(), "[DONE]")
}
