package generate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/ai-readme/ai-readme/internal/core/project"
	"github.com/ai-readme/ai-readme/internal/llm"
	"github.com/ai-readme/ai-readme/internal/prompt"
	"github.com/ai-readme/ai-readme/internal/resilience"
	"github.com/ai-readme/ai-readme/internal/section"
)

// Review choices offered after each generated section.
const (
	ChoiceAccept = "Accept"
	ChoiceEdit   = "Edit"
	ChoiceSkip   = "Skip"
)

// Prompter is the interactive review capability. A nil Prompter means
// non-interactive mode: every generated section is accepted. Any error
// from a Prompter stops the run as cancelled.
type Prompter interface {
	AskChoice(title string, options []string, def string) (string, error)
	AskText(title, initial string) (string, error)
}

// Observer is notified as the run progresses. Methods are called from the
// goroutine running Run.
type Observer interface {
	SectionStarted(spec section.Spec, index, total int)
	Retrying(spec section.Spec, attempt int, delay time.Duration, err error)
	SectionFinished(result SectionResult)
}

// Options configures an Orchestrator.
type Options struct {
	Model       string
	Temperature float64
	Timeout     time.Duration

	// Policy bounds retries of a failed model call.
	Policy resilience.RetryPolicy

	// Sleeper waits between retries. Nil uses a real timer.
	Sleeper resilience.Sleeper

	// Prompter enables interactive review.
	Prompter Prompter

	// Preview shows a generated section before the review question.
	Preview func(name, text string)

	Observer Observer
	Logger   *slog.Logger
}

// Orchestrator generates a plan section by section.
type Orchestrator struct {
	transport llm.Transport
	builder   *prompt.Builder
	opts      Options
	logger    *slog.Logger
}

// New creates an Orchestrator. A zero Policy uses resilience.DefaultPolicy.
func New(transport llm.Transport, builder *prompt.Builder, opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Policy.MaxAttempts == 0 {
		opts.Policy = resilience.DefaultPolicy()
	}
	if opts.Sleeper == nil {
		opts.Sleeper = resilience.TimerSleeper{}
	}
	if builder == nil {
		builder = prompt.NewBuilder(prompt.Options{})
	}
	return &Orchestrator{transport: transport, builder: builder, opts: opts, logger: logger}
}

// Run generates every section of plan in order. Sections run strictly one
// after another because each prompt sees the text generated before it.
// A failed section never stops the run; cancellation stops it before the
// next section starts and leaves finished results untouched.
func (o *Orchestrator) Run(ctx context.Context, plan []section.Spec, facts *project.Facts) *Outcome {
	out := newOutcome(plan)
	var prior []prompt.Prior
	cancelled := false

	for i, spec := range plan {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		res := out.results[spec.Name]
		if res.Status != StatusPending {
			continue
		}

		o.notifyStarted(spec, i, len(plan))
		text, attempts, err := o.invoke(ctx, spec, o.builder.Build(spec, facts, prior))
		res.Attempts = attempts
		if err != nil {
			if ctx.Err() != nil {
				cancelled = true
				break
			}
			res.Status = StatusFailed
			res.Err = err
			o.logger.Warn("section failed", "section", spec.Name, "attempts", attempts, "error", err)
			o.notifyFinished(*res)
			continue
		}

		if o.opts.Prompter != nil {
			choice, edited, err := o.review(spec, text)
			if err != nil {
				o.logger.Debug("review aborted", "section", spec.Name, "error", err)
				cancelled = true
				break
			}
			switch choice {
			case ChoiceSkip:
				res.Status = StatusSkippedByUser
				o.notifyFinished(*res)
				continue
			case ChoiceEdit:
				text = edited
			}
		}

		res.Status = StatusGenerated
		res.Text = text
		prior = append(prior, prompt.Prior{Name: spec.Name, Text: text})
		o.logger.Debug("section generated", "section", spec.Name, "attempts", attempts, "chars", len(text))
		o.notifyFinished(*res)
	}

	out.finish(cancelled)
	o.logger.Info("generation finished",
		"status", out.Status,
		"generated", out.Count(StatusGenerated),
		"failed", out.Count(StatusFailed),
		"skipped", out.Count(StatusSkippedByUser),
	)
	return out
}

// invoke calls the transport under the retry policy. It returns the number
// of attempts made.
func (o *Orchestrator) invoke(ctx context.Context, spec section.Spec, p string) (string, int, error) {
	req := llm.Request{
		Prompt:      p,
		Model:       o.opts.Model,
		Temperature: o.opts.Temperature,
		Timeout:     o.opts.Timeout,
	}
	b := resilience.NewBackoff(o.opts.Policy)
	for {
		if err := ctx.Err(); err != nil {
			return "", b.Attempts(), err
		}
		text, err := o.transport.Invoke(ctx, req)
		if err == nil {
			return text, b.Attempts() + 1, nil
		}
		if ctx.Err() != nil {
			return "", b.Attempts() + 1, err
		}
		delay, again := b.Fail(err)
		if !again {
			return "", b.Attempts(), err
		}
		o.logger.Debug("retrying section", "section", spec.Name, "attempt", b.Attempts(), "delay", delay, "error", err)
		if o.opts.Observer != nil {
			o.opts.Observer.Retrying(spec, b.Attempts(), delay, err)
		}
		if err := o.opts.Sleeper.Sleep(ctx, delay); err != nil {
			return "", b.Attempts(), err
		}
	}
}

// review shows the section and asks what to do with it. Required sections
// cannot be skipped.
func (o *Orchestrator) review(spec section.Spec, text string) (string, string, error) {
	if o.opts.Preview != nil {
		o.opts.Preview(spec.Name, text)
	}
	options := []string{ChoiceAccept, ChoiceEdit}
	if !spec.Required {
		options = append(options, ChoiceSkip)
	}
	choice, err := o.opts.Prompter.AskChoice(fmt.Sprintf("What should happen to the %s section?", spec.Name), options, ChoiceAccept)
	if err != nil {
		return "", "", err
	}
	if choice != ChoiceEdit {
		return choice, "", nil
	}
	edited, err := o.opts.Prompter.AskText(fmt.Sprintf("Edit the %s section", spec.Name), text)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(edited) == "" {
		return ChoiceEdit, text, nil
	}
	return ChoiceEdit, edited, nil
}

func (o *Orchestrator) notifyStarted(spec section.Spec, index, total int) {
	if o.opts.Observer != nil {
		o.opts.Observer.SectionStarted(spec, index, total)
	}
}

func (o *Orchestrator) notifyFinished(res SectionResult) {
	if o.opts.Observer != nil {
		o.opts.Observer.SectionFinished(res)
	}
}
