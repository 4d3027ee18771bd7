// Package generate runs a section plan against the model transport, one
// section at a time, and records what happened to each section.
package generate

import (
	"slices"

	"github.com/ai-readme/ai-readme/internal/section"
)

// Status is the state of one section within a run.
type Status string

const (
	StatusPending       Status = "pending"
	StatusGenerated     Status = "generated"
	StatusFailed        Status = "failed"
	StatusSkippedByUser Status = "skipped"
)

// SectionResult is what happened to one planned section. Text is set only
// when Status is StatusGenerated; Err only when it is StatusFailed.
type SectionResult struct {
	ID       section.ID
	Name     string
	Required bool
	Status   Status
	Text     string
	Err      error
	Attempts int
}

// RunStatus summarizes a whole run.
type RunStatus string

const (
	// RunComplete means every planned section was generated or skipped by
	// the user, and every required one was generated.
	RunComplete RunStatus = "complete"

	// RunDegraded means every required section was generated but some
	// optional ones failed.
	RunDegraded RunStatus = "degraded"

	// RunFailed means at least one required section was not generated.
	RunFailed RunStatus = "failed"

	// RunCancelled means the run stopped before the plan finished.
	RunCancelled RunStatus = "cancelled"
)

// Success reports whether the run produced every required section.
func (s RunStatus) Success() bool {
	return s == RunComplete || s == RunDegraded
}

// ExitCode maps the status to a process exit code. Cancelled runs use the
// conventional 130 for an interrupted process.
func (s RunStatus) ExitCode() int {
	switch {
	case s.Success():
		return 0
	case s == RunCancelled:
		return 130
	default:
		return 1
	}
}

// Outcome is the result mapping of one run, keyed by section name and kept
// in plan order. Only the orchestrator mutates it.
type Outcome struct {
	Status  RunStatus
	order   []string
	results map[string]*SectionResult
}

func newOutcome(plan []section.Spec) *Outcome {
	o := &Outcome{
		order:   make([]string, 0, len(plan)),
		results: make(map[string]*SectionResult, len(plan)),
	}
	for _, spec := range plan {
		o.order = append(o.order, spec.Name)
		o.results[spec.Name] = &SectionResult{
			ID:       spec.ID,
			Name:     spec.Name,
			Required: spec.Required,
			Status:   StatusPending,
		}
	}
	return o
}

// NewOutcome builds a finished outcome from results already in plan order.
// Commands that produce a document without the orchestrator use it.
func NewOutcome(results []SectionResult) *Outcome {
	o := &Outcome{results: make(map[string]*SectionResult, len(results))}
	for i := range results {
		r := results[i]
		o.order = append(o.order, r.Name)
		o.results[r.Name] = &r
	}
	o.finish(false)
	return o
}

// Result returns a copy of the named section's result.
func (o *Outcome) Result(name string) (SectionResult, bool) {
	r, ok := o.results[name]
	if !ok {
		return SectionResult{}, false
	}
	return *r, true
}

// Results returns a copy of every result in plan order.
func (o *Outcome) Results() []SectionResult {
	out := make([]SectionResult, 0, len(o.order))
	for _, name := range o.order {
		out = append(out, *o.results[name])
	}
	return out
}

// Generated returns the generated sections in plan order.
func (o *Outcome) Generated() []SectionResult {
	var out []SectionResult
	for _, r := range o.Results() {
		if r.Status == StatusGenerated {
			out = append(out, r)
		}
	}
	return out
}

// Omitted names the planned sections missing from the document, in plan
// order. Optional sections the user chose to skip are not listed.
func (o *Outcome) Omitted() []string {
	var out []string
	for _, r := range o.Results() {
		if r.Status == StatusGenerated || (r.Status == StatusSkippedByUser && !r.Required) {
			continue
		}
		out = append(out, r.Name)
	}
	return out
}

// MissingRequired names the required sections that were not generated.
func (o *Outcome) MissingRequired() []string {
	var out []string
	for _, r := range o.Results() {
		if r.Required && r.Status != StatusGenerated {
			out = append(out, r.Name)
		}
	}
	return out
}

// Count returns how many sections ended in status s.
func (o *Outcome) Count(s Status) int {
	n := 0
	for _, r := range o.results {
		if r.Status == s {
			n++
		}
	}
	return n
}

// Names returns the planned section names in order.
func (o *Outcome) Names() []string {
	return slices.Clone(o.order)
}

func (o *Outcome) finish(cancelled bool) {
	switch {
	case cancelled && o.Count(StatusPending) > 0:
		o.Status = RunCancelled
	case len(o.MissingRequired()) > 0:
		o.Status = RunFailed
	case o.Count(StatusFailed) > 0:
		o.Status = RunDegraded
	default:
		o.Status = RunComplete
	}
}
