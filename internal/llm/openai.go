package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAITransport calls the OpenAI chat completions API.
type OpenAITransport struct {
	client openai.Client
}

// NewOpenAITransport creates a transport for OpenAI models. An empty
// baseURL uses the provider default. SDK retries are disabled; retrying is
// the caller's job.
func NewOpenAITransport(apiKey, baseURL string) (*OpenAITransport, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAITransport{client: openai.NewClient(opts...)}, nil
}

// Invoke sends the prompt as a single user message.
func (t *OpenAITransport) Invoke(ctx context.Context, req Request) (string, error) {
	return invokeWithTimeout(ctx, "openai", req.Timeout, func(ctx context.Context) (string, error) {
		resp, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:       openai.ChatModel(req.Model),
			Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(req.Prompt)},
			Temperature: openai.Float(req.Temperature),
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", nil
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}, openaiStatus)
}

func openaiStatus(err error) (int, bool) {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}
