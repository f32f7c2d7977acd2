// Package processor binds one completion backend and forwards requests to it.
package processor

import (
	"context"

	"github.com/quocvuong92/shelldon/internal/api"
	"github.com/quocvuong92/shelldon/internal/logging"
)

// Processor forwards completions to the Generator bound at construction.
type Processor struct {
	gen api.Generator
}

// New binds gen. The binding never changes afterwards.
func New(gen api.Generator) *Processor {
	return &Processor{gen: gen}
}

func newRequest(prompt, input, model string, temperature float32) api.Request {
	logging.Debug("completion request", logging.Fields{
		"model":         model,
		"temperature":   temperature,
		"prompt_length": len(prompt),
		"input_length":  len(input),
	})
	return api.Request{
		Model:        model,
		Temperature:  temperature,
		SystemPrompt: prompt,
		UserInput:    input,
	}
}

// Generate returns the complete answer
func (p *Processor) Generate(ctx context.Context, prompt, input, model string, temperature float32) (string, error) {
	return p.gen.Generate(ctx, newRequest(prompt, input, model, temperature))
}

// GenerateStream returns the answer as a stream of fragments
func (p *Processor) GenerateStream(ctx context.Context, prompt, input, model string, temperature float32) (*api.Stream, error) {
	return p.gen.Stream(ctx, newRequest(prompt, input, model, temperature))
}
