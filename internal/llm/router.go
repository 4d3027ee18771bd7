package llm

import (
	"context"
	"strings"
	"sync"
)

// Provider names a model backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// ProviderFor picks the backend for a model name: gemini-* models go to
// Gemini, everything else to OpenAI.
func ProviderFor(model string) Provider {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gemini-") {
		return ProviderGemini
	}
	return ProviderOpenAI
}

// Router dispatches each request to the provider its model belongs to.
// Provider clients are built lazily so an OpenAI-only run never touches
// the Gemini SDK.
type Router struct {
	apiKey string

	mu       sync.Mutex
	backends map[Provider]Transport
	factory  func(Provider, string) (Transport, error)
}

// NewRouter creates a Router that authenticates every provider with apiKey.
func NewRouter(apiKey string) *Router {
	return &Router{
		apiKey:   apiKey,
		backends: make(map[Provider]Transport),
		factory:  newBackend,
	}
}

func newBackend(p Provider, apiKey string) (Transport, error) {
	if p == ProviderGemini {
		return NewGeminiTransport(apiKey)
	}
	return NewOpenAITransport(apiKey, "")
}

// Invoke implements Transport.
func (r *Router) Invoke(ctx context.Context, req Request) (string, error) {
	backend, err := r.backend(ProviderFor(req.Model))
	if err != nil {
		return "", err
	}
	return backend.Invoke(ctx, req)
}

func (r *Router) backend(p Provider) (Transport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.backends[p]; ok {
		return t, nil
	}
	t, err := r.factory(p, r.apiKey)
	if err != nil {
		return nil, &TransportError{Kind: KindAuthFailure, Provider: string(p), Err: err}
	}
	r.backends[p] = t
	return t, nil
}
