// Package resilience provides the bounded retry state machine used around
// model calls, with an injectable sleeper so tests run without delays.
package resilience

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Defaults for model-call retries.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 1 * time.Second
	DefaultMaxDelay    = 8 * time.Second
)

// RetryPolicy defines the retry behavior for operations.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first call.
	MaxAttempts int

	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration

	// UseJitter scales each delay by a random factor in [0.5, 1.5).
	UseJitter bool

	// Retryable decides whether an error may be retried. Nil means IsRetryable.
	Retryable func(error) bool
}

// DefaultPolicy returns three attempts with exponential backoff from 1s,
// capped at 8s.
func DefaultPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
	}
}

// Backoff is the per-operation retry state: how many attempts have been
// made and how long to wait before the next one. It is not safe for
// concurrent use.
type Backoff struct {
	policy  RetryPolicy
	attempt int
}

// NewBackoff starts a fresh retry sequence.
func NewBackoff(policy RetryPolicy) *Backoff {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	if policy.Retryable == nil {
		policy.Retryable = IsRetryable
	}
	return &Backoff{policy: policy}
}

// Attempts returns the number of failures recorded so far.
func (b *Backoff) Attempts() int {
	return b.attempt
}

// MaxAttempts returns the attempt limit.
func (b *Backoff) MaxAttempts() int {
	return b.policy.MaxAttempts
}

// Fail records a failed attempt. It reports whether another attempt is
// allowed and, if so, how long to wait first.
func (b *Backoff) Fail(err error) (time.Duration, bool) {
	b.attempt++
	if b.attempt >= b.policy.MaxAttempts || !b.policy.Retryable(err) {
		return 0, false
	}
	return CalculateBackoff(b.attempt-1, b.policy.BaseDelay, b.policy.MaxDelay, b.policy.UseJitter), true
}

// Sleeper waits between attempts.
type Sleeper interface {
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in that case.
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper sleeps on a real timer.
type TimerSleeper struct{}

// Sleep implements Sleeper.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoopSleeper returns immediately, honouring only cancellation. Tests use it.
type NoopSleeper struct{}

// Sleep implements Sleeper.
func (NoopSleeper) Sleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Retry calls fn until it succeeds, the policy gives up, or ctx is done.
// It returns the error from the last attempt, or ctx.Err() on cancellation.
func Retry(ctx context.Context, policy RetryPolicy, sleeper Sleeper, fn func(ctx context.Context) error) error {
	if sleeper == nil {
		sleeper = TimerSleeper{}
	}
	b := NewBackoff(policy)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := fn(ctx)
		if err == nil {
			return nil
		}
		delay, again := b.Fail(err)
		if !again {
			return err
		}
		if err := sleeper.Sleep(ctx, delay); err != nil {
			return err
		}
	}
}

// CalculateBackoff calculates the backoff delay for a given attempt.
// The delay grows exponentially: baseDelay * 2^attempt, capped at maxDelay.
func CalculateBackoff(attempt int, baseDelay, maxDelay time.Duration, useJitter bool) time.Duration {
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}
	if maxDelay <= 0 {
		maxDelay = 30 * time.Second
	}

	delay := baseDelay
	for range attempt {
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
			break
		}
	}

	if useJitter {
		jitterFactor := 0.5 + rand.Float64() // 0.5 to 1.5
		delay = time.Duration(float64(delay) * jitterFactor)
	}

	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

// permanent is implemented by errors that know whether they can be retried.
type permanent interface {
	Permanent() bool
}

// IsRetryable determines if an error should be retried. Errors that
// implement Permanent() decide for themselves; bare context errors are
// never retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var p permanent
	if errors.As(err, &p) {
		return !p.Permanent()
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
