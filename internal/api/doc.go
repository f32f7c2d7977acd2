// Package api provides the completion backends behind one Generator contract.
//
// # Backends
//
//   - client.go: Generator interface, Request, Stream and NewGenerator
//   - openai.go: OpenAI chat completions through go-openai
//   - genai.go: Google Gemini through the genai SDK
//   - compat.go: raw HTTP client for OpenAI-compatible endpoints
//   - stream.go: Server-Sent Events decoder used by compat.go
//   - router.go: picks a backend from the model name
//
// # Usage
//
//	gen, err := api.NewGenerator(cfg)
//	if err != nil {
//	    // handle error
//	}
//	stream, err := gen.Stream(ctx, api.Request{Model: "gpt-4o", UserInput: "hi"})
//	if err != nil {
//	    // handle error
//	}
//	for fragment := range stream.Fragments() {
//	    fmt.Print(fragment)
//	}
//
// No backend retries or caches: every call performs one request and any
// failure is returned to the caller. The one exception is a stream that
// breaks after it started, which simply ends.
package api
