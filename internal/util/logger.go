// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package util

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the process-wide logger. It starts at Info level writing to
// stderr so packages may log before InitLogger runs.
var Logger = newLogger(os.Stderr, slog.LevelInfo)

// InitLogger initializes the global logger with appropriate log level
// Set TCSHELL_DEBUG=1 environment variable to enable debug logging
func InitLogger() {
	InitLoggerTo(os.Stdout, os.Getenv("TCSHELL_DEBUG") != "")
}

// InitLoggerTo points the global logger at w.
func InitLoggerTo(w io.Writer, debug bool) {
	level := slog.LevelInfo // Default: only show Info, Warn, Error
	if debug {
		level = slog.LevelDebug
	}
	Logger = newLogger(w, level)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		// Remove timestamp and level for cleaner CLI output
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(handler)
}

// Debug logs a debug message (only shown when TCSHELL_DEBUG is set)
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Warn logs a warning.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
