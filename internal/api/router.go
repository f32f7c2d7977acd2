package api

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/quocvuong92/shelldon/internal/logging"
)

// Route names
const (
	RouteGemini    = "gemini"
	RouteAnthropic = "anthropic"
	RouteDeepSeek  = "deepseek"
	RouteXAI       = "xai"
	RouteGroq      = "groq"
	RouteOllama    = "ollama"
	RouteOpenAI    = "openai"
)

// route describes how model names are matched to a backend.
type route struct {
	name string
	// match is a model name prefix; it is stripped from the model when strip is set
	match   string
	strip   bool
	baseURL string
	keyEnv  string
}

var routes = []route{
	{name: RouteGemini, match: "gemini-"},
	{name: RouteAnthropic, match: "claude-", baseURL: "https://api.anthropic.com/v1", keyEnv: "ANTHROPIC_API_KEY"},
	{name: RouteDeepSeek, match: "deepseek-", baseURL: "https://api.deepseek.com/v1", keyEnv: "DEEPSEEK_API_KEY"},
	{name: RouteXAI, match: "grok-", baseURL: "https://api.x.ai/v1", keyEnv: "XAI_API_KEY"},
	{name: RouteGroq, match: "groq:", strip: true, baseURL: "https://api.groq.com/openai/v1", keyEnv: "GROQ_API_KEY"},
	{name: RouteOllama, match: "ollama:", strip: true, baseURL: "http://localhost:11434/v1"},
}

var defaultRoute = route{name: RouteOpenAI, baseURL: "https://api.openai.com/v1", keyEnv: "OPENAI_API_KEY"}

// resolveRoute returns the route for model and the model name to send.
func resolveRoute(model string) (route, string) {
	for _, r := range routes {
		if strings.HasPrefix(model, r.match) {
			if r.strip {
				return r, strings.TrimPrefix(model, r.match)
			}
			return r, model
		}
	}
	return defaultRoute, model
}

// RouterOptions configures a Router
type RouterOptions struct {
	HTTPClient *http.Client
	// Getenv reads credentials; defaults to os.Getenv
	Getenv func(string) string
	// BaseURLs overrides the endpoint of a route by name
	BaseURLs map[string]string
}

// Router picks a backend from the model name, so one configuration can
// address several providers. Each backend is created on first use and
// reused for the rest of the process.
type Router struct {
	opts     RouterOptions
	mu       sync.Mutex
	backends map[string]Generator
}

// NewRouter creates a router
func NewRouter(opts RouterOptions) *Router {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	return &Router{
		opts:     opts,
		backends: make(map[string]Generator),
	}
}

// backend returns the generator for model and the model name to send
func (r *Router) backend(ctx context.Context, model string) (Generator, string, error) {
	rt, name := resolveRoute(model)

	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.backends[rt.name]; ok {
		return g, name, nil
	}

	g, err := r.build(ctx, rt)
	if err != nil {
		return nil, "", err
	}
	r.backends[rt.name] = g
	logging.Debug("backend ready", logging.Fields{"route": rt.name, "model": name})
	return g, name, nil
}

func (r *Router) build(ctx context.Context, rt route) (Generator, error) {
	baseURL := rt.baseURL
	if override := r.opts.BaseURLs[rt.name]; override != "" {
		baseURL = override
	}

	switch rt.name {
	case RouteGemini:
		var key string
		for _, env := range geminiKeyEnvVars {
			if key = r.opts.Getenv(env); key != "" {
				break
			}
		}
		return NewGenAIClient(ctx, key, baseURL, r.opts.HTTPClient)
	case RouteOpenAI:
		return NewOpenAIClient(r.opts.Getenv(rt.keyEnv), r.opts.BaseURLs[rt.name], r.opts.HTTPClient)
	case RouteOllama:
		if host := r.opts.Getenv("OLLAMA_HOST"); host != "" && r.opts.BaseURLs[rt.name] == "" {
			baseURL = strings.TrimSuffix(host, "/") + "/v1"
		}
		return NewCompatClient(rt.name, baseURL, "", r.opts.HTTPClient), nil
	default:
		key := r.opts.Getenv(rt.keyEnv)
		if key == "" {
			return nil, &APIKeyNotSetError{EnvVar: rt.keyEnv}
		}
		return NewCompatClient(rt.name, baseURL, key, r.opts.HTTPClient), nil
	}
}

// Generate routes a non-streaming request
func (r *Router) Generate(ctx context.Context, req Request) (string, error) {
	g, model, err := r.backend(ctx, req.Model)
	if err != nil {
		return "", err
	}
	req.Model = model
	return g.Generate(ctx, req)
}

// Stream routes a streaming request
func (r *Router) Stream(ctx context.Context, req Request) (*Stream, error) {
	g, model, err := r.backend(ctx, req.Model)
	if err != nil {
		return nil, err
	}
	req.Model = model
	return g.Stream(ctx, req)
}

var (
	_ Generator = (*OpenAIClient)(nil)
	_ Generator = (*CompatClient)(nil)
	_ Generator = (*GenAIClient)(nil)
	_ Generator = (*Router)(nil)
)
