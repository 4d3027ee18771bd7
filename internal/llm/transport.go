// Package llm is the model transport: it sends one prompt to a provider and
// returns the generated text, classifying failures so callers can decide
// whether to retry.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Request is a single model invocation.
type Request struct {
	Prompt      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Transport invokes a language model.
type Transport interface {
	// Invoke returns the generated text or a *TransportError.
	Invoke(ctx context.Context, req Request) (string, error)
}

// Kind classifies a transport failure.
type Kind string

const (
	KindTimeout     Kind = "timeout"
	KindRateLimited Kind = "rate_limited"
	KindAuthFailure Kind = "auth_failure"
	KindUnknown     Kind = "unknown"
)

// Sentinel errors for transport setup.
var (
	// ErrMissingAPIKey indicates a provider client was requested without a key.
	ErrMissingAPIKey = errors.New("llm: api key is required")

	// ErrEmptyResponse indicates the provider answered without any text.
	ErrEmptyResponse = errors.New("llm: empty response")
)

// TransportError is a classified failure of a single invocation.
type TransportError struct {
	Kind     Kind
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying provider error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Permanent reports whether retrying cannot help. Only authentication
// failures are permanent.
func (e *TransportError) Permanent() bool {
	return e.Kind == KindAuthFailure
}

// KindOf returns the Kind of err, or KindUnknown when err is not a
// *TransportError.
func KindOf(err error) Kind {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUnknown
}

// kindForStatus maps an HTTP status code to a Kind.
func kindForStatus(code int) Kind {
	switch code {
	case 429:
		return KindRateLimited
	case 401, 403:
		return KindAuthFailure
	case 408, 504:
		return KindTimeout
	default:
		return KindUnknown
	}
}

// invokeWithTimeout runs call under the request timeout and classifies its
// error. A deadline hit while the parent context is still live is a
// timeout; cancellation of the parent is returned as-is.
func invokeWithTimeout(ctx context.Context, provider string, timeout time.Duration, call func(context.Context) (string, error), status func(error) (int, bool)) (string, error) {
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	text, err := call(callCtx)
	if err == nil {
		if text == "" {
			return "", &TransportError{Kind: KindUnknown, Provider: provider, Err: ErrEmptyResponse}
		}
		return text, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return "", &TransportError{Kind: KindTimeout, Provider: provider, Err: err}
	}
	if code, ok := status(err); ok {
		return "", &TransportError{Kind: kindForStatus(code), Provider: provider, Err: err}
	}
	return "", &TransportError{Kind: KindUnknown, Provider: provider, Err: err}
}
