package llm

import (
	"context"
	"sync"
)

// FakeTransport is an in-memory Transport for tests. Responses are
// consumed in order; once exhausted, Default is returned. Each step may
// carry an error instead of text.
type FakeTransport struct {
	mu       sync.Mutex
	steps    []FakeStep
	Default  FakeStep
	requests []Request
	Respond  func(Request) (string, error)
}

// FakeStep is one scripted response.
type FakeStep struct {
	Text string
	Err  error
}

// NewFakeTransport creates a fake that returns the given steps in order.
func NewFakeTransport(steps ...FakeStep) *FakeTransport {
	return &FakeTransport{steps: steps}
}

// Invoke records req and returns the next scripted step.
func (f *FakeTransport) Invoke(ctx context.Context, req Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	if f.Respond != nil {
		respond := f.Respond
		f.mu.Unlock()
		return respond(req)
	}
	step := f.Default
	if len(f.steps) > 0 {
		step = f.steps[0]
		f.steps = f.steps[1:]
	}
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return step.Text, step.Err
}

// Requests returns a copy of every request received so far.
func (f *FakeTransport) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// Calls returns the number of requests received.
func (f *FakeTransport) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}
