package llm

import (
	"context"
	"errors"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// GeminiTransport calls the Gemini API. The client is created on first use
// because construction needs a context.
type GeminiTransport struct {
	apiKey string

	once   sync.Once
	client *genai.Client
	err    error
}

// NewGeminiTransport creates a transport for gemini-* models.
func NewGeminiTransport(apiKey string) (*GeminiTransport, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	return &GeminiTransport{apiKey: apiKey}, nil
}

func (t *GeminiTransport) init(ctx context.Context) (*genai.Client, error) {
	t.once.Do(func() {
		t.client, t.err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  t.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	return t.client, t.err
}

// Invoke sends the prompt as a single text part.
func (t *GeminiTransport) Invoke(ctx context.Context, req Request) (string, error) {
	cli, err := t.init(ctx)
	if err != nil {
		return "", &TransportError{Kind: KindUnknown, Provider: "gemini", Err: err}
	}
	temperature := float32(req.Temperature)
	return invokeWithTimeout(ctx, "gemini", req.Timeout, func(ctx context.Context) (string, error) {
		resp, err := cli.Models.GenerateContent(ctx, req.Model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: req.Prompt}}}},
			&genai.GenerateContentConfig{Temperature: &temperature},
		)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(resp.Text()), nil
	}, geminiStatus)
}

func geminiStatus(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	return 0, false
}
