package cli

import (
	"log/slog"
	"strings"
)

// LogLevelEnv selects a log level when --verbose is not given.
const LogLevelEnv = "AI_README_LOG_LEVEL"

// parseLevel maps debug|info|warn|error to a slog level.
func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
