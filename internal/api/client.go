package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"sync"

	"github.com/quocvuong92/shelldon/internal/config"
	"github.com/quocvuong92/shelldon/internal/logging"
)

// Errors shared by every provider
var (
	ErrAPIKeyNotSet  = errors.New("API key not set")
	ErrEmptyResponse = errors.New("empty response from model")
)

// APIKeyNotSetError names the environment variable that was expected to hold
// the credential.
type APIKeyNotSetError struct {
	EnvVar string
}

func (e *APIKeyNotSetError) Error() string {
	return fmt.Sprintf("API key not set: export %s", e.EnvVar)
}

func (e *APIKeyNotSetError) Is(target error) bool {
	return target == ErrAPIKeyNotSet
}

// APIError represents an error with status code
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Request is a single completion request. It is built per call and never shared.
type Request struct {
	Model        string
	Temperature  float32
	SystemPrompt string
	UserInput    string
}

// Generator is implemented by every completion backend.
type Generator interface {
	// Generate blocks until the full answer is available. A reply without
	// content fails with ErrEmptyResponse.
	Generate(ctx context.Context, req Request) (string, error)

	// Stream issues the request and returns its fragments as they arrive.
	// Errors that occur before the first fragment are returned here.
	Stream(ctx context.Context, req Request) (*Stream, error)
}

// Stream is a finite, single-consumer sequence of text fragments.
// A decode or transport error ends the sequence early without being reported
// to the consumer.
type Stream struct {
	recv      func() (string, error)
	closeFn   func() error
	closeOnce sync.Once
	closeErr  error
	used      bool
}

// NewStream builds a Stream from a receive function and a release function.
// recv returns io.EOF once the provider signals completion.
func NewStream(recv func() (string, error), closeFn func() error) *Stream {
	return &Stream{recv: recv, closeFn: closeFn}
}

// Fragments yields the fragments in generation order. The transport is
// released when the sequence ends or the consumer stops early. A second
// call yields nothing.
func (s *Stream) Fragments() iter.Seq[string] {
	return func(yield func(string) bool) {
		if s.used {
			return
		}
		s.used = true
		defer s.Close()

		for {
			fragment, err := s.recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				logging.Debug("stream ended early", logging.Fields{"error": err.Error()})
				return
			}
			if fragment == "" {
				continue
			}
			if !yield(fragment) {
				return
			}
		}
	}
}

// Close releases the underlying transport. It is safe to call more than once.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		if s.closeFn != nil {
			s.closeErr = s.closeFn()
		}
	})
	return s.closeErr
}

// NewGenerator creates the backend selected by cfg.Provider.
// The openai provider checks its credential here; the genai router checks
// each route's credential when the route is first used.
func NewGenerator(cfg *config.Config) (Generator, error) {
	httpClient := newHTTPClient(cfg)

	switch cfg.Provider {
	case config.ProviderGenAI:
		return NewRouter(RouterOptions{HTTPClient: httpClient}), nil
	case config.ProviderOpenAI, "":
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, httpClient)
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrInvalidProvider, cfg.Provider)
	}
}

// newHTTPClient returns the client shared by the providers. No overall
// timeout is set so long streams are not cut off.
func newHTTPClient(cfg *config.Config) *http.Client {
	if cfg.Debug {
		return logging.NewDebugClient(logging.DefaultLogger, 0)
	}
	return &http.Client{}
}
