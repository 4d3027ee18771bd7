package ui

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/huh"
)

// Sentinel errors for interactive questions.
var (
	// ErrCancelled indicates the user aborted a question (Ctrl+C).
	ErrCancelled = errors.New("ui: cancelled by user")

	// ErrHeadless indicates a question was asked without a terminal.
	ErrHeadless = errors.New("ui: cannot prompt in headless mode")

	// ErrNoAnswer indicates a ScriptedPrompter ran out of answers.
	ErrNoAnswer = errors.New("ui: no scripted answer")
)

// Prompter asks the user questions.
type Prompter interface {
	// AskChoice asks the user to pick one of options.
	AskChoice(title string, options []string, def string) (string, error)

	// AskConfirm asks a yes/no question.
	AskConfirm(title string, def bool) (bool, error)

	// AskText asks for free text, pre-filled with initial. Multi-line input
	// is allowed.
	AskText(title, initial string) (string, error)

	// AskSecret asks for one line of input without echoing it.
	AskSecret(title string) (string, error)
}

// HuhPrompter asks questions with huh forms. Each question runs as its own
// form.
type HuhPrompter struct {
	headless *HeadlessManager
}

// NewHuhPrompter creates a HuhPrompter. Questions fail with ErrHeadless
// when hm reports a headless session.
func NewHuhPrompter(hm *HeadlessManager) *HuhPrompter {
	if hm == nil {
		hm = NewHeadlessManager()
	}
	return &HuhPrompter{headless: hm}
}

func (p *HuhPrompter) run(field huh.Field) error {
	if p.headless.IsHeadless() {
		return ErrHeadless
	}
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(huhTheme()).
		WithAccessible(false)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}

// AskChoice implements Prompter.
func (p *HuhPrompter) AskChoice(title string, options []string, def string) (string, error) {
	value := def
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}
	err := p.run(huh.NewSelect[string]().Title(title).Options(opts...).Value(&value))
	return value, err
}

// AskConfirm implements Prompter.
func (p *HuhPrompter) AskConfirm(title string, def bool) (bool, error) {
	value := def
	err := p.run(huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&value))
	return value, err
}

// AskText implements Prompter.
func (p *HuhPrompter) AskText(title, initial string) (string, error) {
	value := initial
	err := p.run(huh.NewText().Title(title).Lines(12).CharLimit(0).Value(&value))
	return value, err
}

// AskSecret implements Prompter.
func (p *HuhPrompter) AskSecret(title string) (string, error) {
	var value string
	err := p.run(huh.NewInput().Title(title).EchoMode(huh.EchoModePassword).Value(&value))
	return value, err
}

// ScriptedPrompter replays fixed answers. It records every question asked.
type ScriptedPrompter struct {
	mu        sync.Mutex
	Choices   []string
	Confirms  []bool
	Texts     []string
	Questions []string
}

func (s *ScriptedPrompter) record(title string) {
	s.Questions = append(s.Questions, title)
}

// AskChoice implements Prompter.
func (s *ScriptedPrompter) AskChoice(title string, _ []string, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(title)
	if len(s.Choices) == 0 {
		return "", ErrNoAnswer
	}
	v := s.Choices[0]
	s.Choices = s.Choices[1:]
	return v, nil
}

// AskConfirm implements Prompter.
func (s *ScriptedPrompter) AskConfirm(title string, _ bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(title)
	if len(s.Confirms) == 0 {
		return false, ErrNoAnswer
	}
	v := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return v, nil
}

// AskText implements Prompter.
func (s *ScriptedPrompter) AskText(title, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(title)
	if len(s.Texts) == 0 {
		return "", ErrNoAnswer
	}
	v := s.Texts[0]
	s.Texts = s.Texts[1:]
	return v, nil
}

// AskSecret implements Prompter. Answers come from Texts.
func (s *ScriptedPrompter) AskSecret(title string) (string, error) {
	return s.AskText(title, "")
}
