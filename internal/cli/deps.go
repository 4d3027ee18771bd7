// Package cli provides the Cobra command tree and dependency injection
// wiring for ai-readme. This file defines the Dependencies struct
// (Composition Root) that wires all domain modules together.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/ai-readme/ai-readme/internal/assemble"
	"github.com/ai-readme/ai-readme/internal/config"
	"github.com/ai-readme/ai-readme/internal/core/project"
	"github.com/ai-readme/ai-readme/internal/llm"
	"github.com/ai-readme/ai-readme/internal/resilience"
	"github.com/ai-readme/ai-readme/internal/template"
	"github.com/ai-readme/ai-readme/internal/ui"
)

// Dependencies holds all services used by CLI commands. This is the
// Composition Root: the only place where concrete types are instantiated
// and wired together.
type Dependencies struct {
	Analyzer project.Analyzer
	Renderer template.Renderer
	Writer   assemble.Writer
	Headless *ui.HeadlessManager
	Prompter ui.Prompter
	Theme    *ui.Theme
	Sleeper  resilience.Sleeper

	// NewTransport builds the model transport once the API key is known.
	NewTransport func(apiKey string) llm.Transport

	// Env captures the AI_README_* environment after .env files are loaded.
	Env func() map[string]string

	// LoadDotEnv loads .env files from the given directories.
	LoadDotEnv func(dirs ...string) error

	// ConfigPath returns the default config file location.
	ConfigPath func() (string, error)

	Logger *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates and wires the production dependencies.
func InitDependencies() {
	hm := ui.NewHeadlessManager()
	deps = &Dependencies{
		Analyzer: project.NewAnalyzer(nil),
		Renderer: template.NewRenderer(nil),
		Writer:   assemble.FileWriter{},
		Headless: hm,
		Prompter: ui.NewHuhPrompter(hm),
		Theme:    ui.NewTheme(false),
		Sleeper:  resilience.TimerSleeper{},
		NewTransport: func(apiKey string) llm.Transport {
			return llm.NewRouter(apiKey)
		},
		Env:        config.EnvFromOS,
		LoadDotEnv: config.LoadDotEnv,
		ConfigPath: config.DefaultPath,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// GetDeps returns the current Dependencies instance.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// configureLogging points the logger at w. --verbose selects debug level;
// otherwise AI_README_LOG_LEVEL may enable a level, and without either the
// logger discards output.
func (d *Dependencies) configureLogging(verbose bool, w io.Writer) {
	level, ok := parseLevel(os.Getenv(LogLevelEnv))
	switch {
	case verbose:
		level, ok = slog.LevelDebug, true
	case !ok:
		return
	}
	d.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	d.Analyzer = project.NewAnalyzer(d.Logger)
}
