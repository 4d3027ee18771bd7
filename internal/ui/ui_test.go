package ui

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func testTheme() *Theme {
	return &Theme{NoColor: true, Colors: NewTheme(true).Colors}
}

func headless(force bool) *HeadlessManager {
	hm := NewHeadlessManager()
	hm.ForceHeadless(force)
	return hm
}

func TestHeadlessManagerForce(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	if !hm.IsHeadless() {
		t.Error("ForceHeadless(true) should report headless")
	}
	hm.ForceHeadless(false)
	if hm.IsHeadless() {
		t.Error("ForceHeadless(false) should report interactive")
	}
	hm.ClearForce()
	if hm.forced != nil {
		t.Error("ClearForce should remove the override")
	}
}

func TestHuhPrompterRefusesHeadless(t *testing.T) {
	p := NewHuhPrompter(headless(true))

	if _, err := p.AskChoice("pick", []string{"a", "b"}, "a"); !errors.Is(err, ErrHeadless) {
		t.Errorf("AskChoice error = %v, want ErrHeadless", err)
	}
	if _, err := p.AskConfirm("sure?", true); !errors.Is(err, ErrHeadless) {
		t.Errorf("AskConfirm error = %v, want ErrHeadless", err)
	}
	if _, err := p.AskText("edit", "x"); !errors.Is(err, ErrHeadless) {
		t.Errorf("AskText error = %v, want ErrHeadless", err)
	}
	if _, err := p.AskSecret("key"); !errors.Is(err, ErrHeadless) {
		t.Errorf("AskSecret error = %v, want ErrHeadless", err)
	}
}

func TestScriptedPrompter(t *testing.T) {
	s := &ScriptedPrompter{
		Choices:  []string{"Edit"},
		Confirms: []bool{true, false},
		Texts:    []string{"new text", "sk-secret"},
	}

	if got, err := s.AskChoice("q1", nil, ""); err != nil || got != "Edit" {
		t.Errorf("AskChoice = %q, %v", got, err)
	}
	if got, _ := s.AskConfirm("q2", false); !got {
		t.Error("first AskConfirm should be true")
	}
	if got, _ := s.AskConfirm("q3", true); got {
		t.Error("second AskConfirm should be false")
	}
	if got, _ := s.AskText("q4", "old"); got != "new text" {
		t.Errorf("AskText = %q", got)
	}
	if got, _ := s.AskSecret("q5"); got != "sk-secret" {
		t.Errorf("AskSecret = %q", got)
	}
	if _, err := s.AskConfirm("q6", true); !errors.Is(err, ErrNoAnswer) {
		t.Errorf("exhausted AskConfirm error = %v, want ErrNoAnswer", err)
	}
	want := []string{"q1", "q2", "q3", "q4", "q5", "q6"}
	if strings.Join(s.Questions, ",") != strings.Join(want, ",") {
		t.Errorf("Questions = %v, want %v", s.Questions, want)
	}
}

func TestHeadlessSpinnerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(testTheme(), headless(true), &buf)

	s := p.Spinner("Generating Overview")
	s.SetTitle("Retrying Overview")
	s.Stop()

	want := "Generating Overview\nRetrying Overview\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestSpinnerModelUpdate(t *testing.T) {
	m := newSpinnerModel(testTheme(), "Working")

	updated, _ := m.Update(spinnerTitleMsg("Still working"))
	if got := updated.(spinnerModel).title; got != "Still working" {
		t.Errorf("title = %q", got)
	}
	if !strings.Contains(updated.View(), "Still working") {
		t.Errorf("View() = %q", updated.View())
	}

	updated, _ = updated.Update(m.spinner.Tick())
	if _, ok := updated.(spinnerModel); !ok {
		t.Fatal("Update should return spinnerModel")
	}

	stopped, cmd := updated.Update(spinnerStopMsg{})
	if cmd == nil {
		t.Error("stop should return tea.Quit")
	}
	if stopped.View() != "" {
		t.Errorf("stopped View() = %q, want empty", stopped.View())
	}
}

func TestInteractiveSpinnerStopIsIdempotent(t *testing.T) {
	p := tea.NewProgram(newSpinnerModel(testTheme(), "Loading"),
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
	)
	s := &interactiveSpinner{program: p, once: sync.Once{}}
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()
	time.Sleep(10 * time.Millisecond)

	s.SetTitle("Loaded")
	s.Stop()
	s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("tea.Program did not exit within 2 second timeout")
	}
}

func TestStylesPlain(t *testing.T) {
	s := NewStyles(testTheme())

	if got := s.Success("done"); got != "✓ done" {
		t.Errorf("Success() = %q", got)
	}
	card := s.Card("warn", "Degraded", "Features: timeout")
	for _, want := range []string{"! Degraded", "Features: timeout", "╭"} {
		if !strings.Contains(card, want) {
			t.Errorf("Card() missing %q in %q", want, card)
		}
	}
}

func TestStylesTable(t *testing.T) {
	s := NewStyles(testTheme())
	out := s.Table([]string{"ID", "Name"}, [][]string{{"overview", "Overview"}, {"usage", "Usage"}})
	for _, want := range []string{"ID", "Name", "overview", "Usage"} {
		if !strings.Contains(out, want) {
			t.Errorf("Table() missing %q in:\n%s", want, out)
		}
	}
}

func TestMarkdownRendererPlain(t *testing.T) {
	r := NewMarkdownRenderer(testTheme(), 80)
	if got := r.Render("## Usage\n\nRun it."); got != "## Usage\n\nRun it." {
		t.Errorf("Render() = %q", got)
	}
	var nilRenderer *MarkdownRenderer
	if got := nilRenderer.Render("x"); got != "x" {
		t.Errorf("nil Render() = %q", got)
	}
}
