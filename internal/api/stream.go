package api

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// SSEProcessor decodes an OpenAI-style Server-Sent Events body into
// content fragments.
type SSEProcessor struct {
	reader     *bufio.Reader
	responseID string
	usage      Usage
}

// NewSSEProcessor creates a new SSE stream processor
func NewSSEProcessor(r io.Reader) *SSEProcessor {
	return &SSEProcessor{
		reader: bufio.NewReader(r),
	}
}

// Next returns the next non-empty content fragment. It returns io.EOF after
// the [DONE] marker or at the end of the body, and a decode error for a
// malformed chunk.
func (p *SSEProcessor) Next() (string, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "data:") {
			if err == io.EOF {
				return "", io.EOF
			}
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			return "", io.EOF
		}

		var chunk ChatResponse
		if jsonErr := json.Unmarshal([]byte(data), &chunk); jsonErr != nil {
			return "", fmt.Errorf("failed to parse streaming chunk: %w", jsonErr)
		}

		if chunk.ID != "" {
			p.responseID = chunk.ID
		}
		if chunk.Usage.TotalTokens > 0 {
			p.usage = chunk.Usage
		}

		if content := chunk.GetContent(); content != "" {
			return content, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

// ResponseID returns the id of the last decoded chunk
func (p *SSEProcessor) ResponseID() string {
	return p.responseID
}

// Usage returns token usage if the provider sent it
func (p *SSEProcessor) Usage() Usage {
	return p.usage
}
