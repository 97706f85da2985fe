// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tc := range tests {
		if got := ParseLevel(tc.raw); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestSetup_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "overlay.log")
	require.NoError(t, Setup(Options{Path: path, Level: "debug"}))
	defer Close()

	Get().Debug("menu opened", "menu", "file", "depth", 0)
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `"msg":"menu opened"`), string(data))
	require.True(t, strings.Contains(string(data), `"menu":"file"`))
}

func TestSetRawLevel(t *testing.T) {
	SetRawLevel("error")
	require.Equal(t, slog.LevelError, Level())
	SetRawLevel("info")
	require.Equal(t, slog.LevelInfo, Level())
}
