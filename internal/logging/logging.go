// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the structured logger shared by the widgets and
// the demo program.
//
// A Bubble Tea program owns the terminal, so logs go to a file by default.
// Widgets take a *slog.Logger option and fall back to Discard.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu       sync.Mutex
	logger   *slog.Logger
	levelVar = &slog.LevelVar{}
	logFile  *os.File
)

// Options controls Setup.
type Options struct {
	// Path is the log file. Parent directories are created. Empty disables
	// the file sink.
	Path string

	// Level is a raw level name: debug, info, warn or error.
	Level string

	// Stderr also writes to standard error.
	Stderr bool
}

// Setup (re)configures the shared logger. On a file error the logger still
// works, writing to stderr only, and the error is returned.
func Setup(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	levelVar.Set(ParseLevel(opts.Level))

	var writers []io.Writer
	var setupErr error
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			setupErr = err
		} else if f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			setupErr = err
		} else {
			logFile = f
			writers = append(writers, f)
		}
	}
	if opts.Stderr || setupErr != nil {
		writers = append(writers, os.Stderr)
	}

	var w io.Writer = io.Discard
	if len(writers) > 0 {
		w = io.MultiWriter(writers...)
	}
	logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelVar}))
	return setupErr
}

// Get returns the shared logger. Before Setup it discards everything.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = Discard()
	}
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetRawLevel changes the level of the shared logger.
func SetRawLevel(raw string) {
	levelVar.Set(ParseLevel(raw))
}

// Level returns the current level.
func Level() slog.Level {
	return levelVar.Level()
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Close releases the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
