// Package log is a small leveled logger for CLI diagnostics. Output goes to
// stderr so it never mixes with the jump plan printed on stdout.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Verbosity levels, one per -v flag.
const (
	LevelQuiet = iota // Default: only errors and warnings
	LevelInfo         // -v: resolved instant, backend, selected commit
	LevelDebug        // -vv: git invocations, scan counts
	LevelTrace        // -vvv: every commit read from history
)

// slogLevelTrace sits below slog's debug level.
const slogLevelTrace = slog.Level(-8)

var (
	verbosity int
	logger    *slog.Logger
)

// Initialize sets up the global logger with the specified verbosity level.
func Initialize(level int, w io.Writer) {
	verbosity = level
	logger = slog.New(newHandler(w, slogLevelFor(level)))
}

func slogLevelFor(level int) slog.Level {
	switch {
	case level >= LevelTrace:
		return slogLevelTrace
	case level >= LevelDebug:
		return slog.LevelDebug
	case level >= LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// newHandler drops the timestamp; a one-shot CLI run does not need it.
func newHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if len(groups) == 0 && a.Key == slog.LevelKey && a.Value.Any() == slogLevelTrace {
				return slog.String(slog.LevelKey, "TRACE")
			}
			return a
		},
	})
}

// Info logs at info level (-v)
func Info(msg string, args ...any) {
	if verbosity >= LevelInfo {
		logger.Info(msg, args...)
	}
}

// Debug logs at debug level (-vv)
func Debug(msg string, args ...any) {
	if verbosity >= LevelDebug {
		logger.Debug(msg, args...)
	}
}

// Trace logs at trace level (-vvv)
func Trace(msg string, args ...any) {
	if verbosity >= LevelTrace {
		logger.Log(context.Background(), slogLevelTrace, msg, args...)
	}
}

// Warn logs at warn level (always visible)
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs at error level (always visible)
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// IsDebug returns true if debug-level logging is enabled
func IsDebug() bool {
	return verbosity >= LevelDebug
}

// Verbosity returns the current verbosity level
func Verbosity() int {
	return verbosity
}

func init() {
	Initialize(LevelQuiet, os.Stderr)
}
