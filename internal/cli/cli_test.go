// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-overlay/internal/catalog"
	"github.com/jeranaias/rigrun-overlay/internal/storage"
)

// =============================================================================
// HELPERS
// =============================================================================

// isolate points the config directory and overrides at a temp home.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, env := range []string{"OVERLAY_LOG_LEVEL", "OVERLAY_LOG_PATH", "OVERLAY_FILTER_MODE", "OVERLAY_DB_PATH", "OVERLAY_NO_STORAGE", "OVERLAY_CATALOG"} {
		t.Setenv(env, "")
	}
	t.Setenv("OVERLAY_LOG_PATH", filepath.Join(home, "overlay.log"))
	ForceColorsEnabled(false)
	return home
}

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// =============================================================================
// TESTS
// =============================================================================

func TestVersion(t *testing.T) {
	isolate(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "overlay version "+Version)

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var resp struct {
		Success bool        `json:"success"`
		Data    VersionData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, Version, resp.Data.Version)
}

func TestCatalogInitAndValidate(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "catalog.toml")

	out, err := execute(t, "catalog", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	_, err = execute(t, "catalog", "init", path)
	assert.Error(t, err, "init must not overwrite an existing catalog")

	out, err = execute(t, "catalog", "validate", path, "--json")
	require.NoError(t, err)
	var resp struct {
		Data CatalogData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Data.Builtin)
	assert.Equal(t, catalog.Default().Roots(), resp.Data.Roots)
	assert.Equal(t, []string{"fruit", "toppings"}, resp.Data.Dropdowns)
}

func TestCatalogValidate_MissingFileUsesBuiltin(t *testing.T) {
	isolate(t)

	out, err := execute(t, "catalog", "validate", filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Contains(t, out, "built-in catalog is valid")
}

func TestCatalogValidate_Invalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[menu]]\nname = \"File\"\ncolour = \"red\"\n"), 0644))

	_, err := execute(t, "catalog", "validate", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrInvalidCatalog))
	assert.Equal(t, ExitConfigError, GetExitCode(err))
}

func TestCatalogShow_UsesCatalogFlag(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[menu]]
name = "Tools"

  [[menu.item]]
  label = "Lint"
  value = "tools.lint"
`), 0644))

	out, err := execute(t, "catalog", "show", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Tools")
	assert.Contains(t, out, "tools.lint")
}

func TestCatalogDescribe(t *testing.T) {
	isolate(t)

	out, err := execute(t, "catalog", "describe", filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Contains(t, out, "File")
	assert.Contains(t, out, "fruit")

	out, err = execute(t, "catalog", "describe", filepath.Join(t.TempDir(), "none.toml"), "--json")
	require.NoError(t, err)
	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, catalog.Default().Markdown(), resp.Data["markdown"])
}

func TestCatalogDiff(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.toml")
	newPath := filepath.Join(dir, "new.toml")
	require.NoError(t, os.WriteFile(oldPath, []byte(catalog.DefaultTOML), 0644))
	edited := strings.Replace(catalog.DefaultTOML, `label = "Banana"`, `label = "Bananas"`, 1)
	require.NoError(t, os.WriteFile(newPath, []byte(edited), 0644))

	out, err := execute(t, "catalog", "diff", oldPath, newPath)
	require.NoError(t, err)
	assert.Contains(t, out, "~ option fruit/banana: label Banana -> Bananas")
	assert.Contains(t, out, "~1")

	out, err = execute(t, "catalog", "diff", oldPath, oldPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No changes")
}

func TestHighlightTOML_PlainWithoutColors(t *testing.T) {
	ForceColorsEnabled(false)
	assert.Equal(t, catalog.DefaultTOML, highlightTOML(catalog.DefaultTOML))

	ForceColorsEnabled(true)
	defer ForceColorsEnabled(false)
	out := highlightTOML("key = \"value\"\n")
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "value")
}

func TestRequireConfirmation(t *testing.T) {
	origCan, origPrompt := canPrompt, prompter
	defer func() { canPrompt, prompter = origCan, origPrompt }()

	canPrompt = func() bool { return false }
	assert.NoError(t, requireConfirmation("Clear", true, false))
	assert.Error(t, requireConfirmation("Clear", false, false))

	canPrompt = func() bool { return true }
	assert.Error(t, requireConfirmation("Clear", false, true), "JSON mode never prompts")

	var asked string
	prompter = func(prompt string) (string, error) {
		asked = prompt
		return " Yes ", nil
	}
	assert.NoError(t, requireConfirmation("Clear", false, false))
	assert.Equal(t, "Clear? [y/N] ", asked)

	prompter = func(string) (string, error) { return "", nil }
	assert.ErrorIs(t, requireConfirmation("Clear", false, false), ErrNotConfirmed)
}

func TestConfigSetGet(t *testing.T) {
	home := isolate(t)

	_, err := execute(t, "config", "set", "dropdown.filter_mode", "fuzzy")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, ".overlay", "config.toml"))

	out, err := execute(t, "config", "get", "dropdown.filter_mode")
	require.NoError(t, err)
	assert.Equal(t, "fuzzy", strings.TrimSpace(out))

	_, err = execute(t, "config", "get", "dropdown.nope")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestConfigSet_RejectsInvalidValue(t *testing.T) {
	isolate(t)

	_, err := execute(t, "config", "set", "dropdown.filter_mode", "regex")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestSelectionsListDeleteClear(t *testing.T) {
	home := isolate(t)
	dbPath := filepath.Join(home, "selections.db")
	t.Setenv("OVERLAY_DB_PATH", dbPath)

	store, err := storage.OpenSelectionStore(dbPath)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "fruit", []string{"banana"}, false))
	require.NoError(t, store.Save(ctx, "toppings", []string{"olives", "basil"}, true))
	require.NoError(t, store.Close())

	out, err := execute(t, "selections", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "fruit")
	assert.Contains(t, out, "olives, basil")

	_, err = execute(t, "selections", "delete", "fruit")
	require.NoError(t, err)

	_, err = execute(t, "selections", "delete", "fruit")
	require.Error(t, err)
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))

	origCan := canPrompt
	canPrompt = func() bool { return false }
	defer func() { canPrompt = origCan }()
	_, err = execute(t, "sel", "clear")
	require.Error(t, err, "clear without a terminal needs --yes")
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	_, err = execute(t, "sel", "clear", "--yes")
	require.NoError(t, err)

	out, err = execute(t, "selections", "list", "--json")
	require.NoError(t, err)
	var resp struct {
		Data SelectionsData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Empty(t, resp.Data.Selections)
}

func TestDemoRequiresTerminal(t *testing.T) {
	isolate(t)
	if IsTTY() && IsStdoutTTY() {
		t.Skip("running attached to a terminal")
	}

	_, err := execute(t, "demo")
	var ttyErr *TTYRequiredError
	assert.True(t, errors.As(err, &ttyErr))
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", NewValidationError("key", "x", "unknown", ""), ExitUsageError},
		{"not found", fmt.Errorf("wrapped: %w", storage.ErrNotFound), ExitNotFoundError},
		{"catalog", fmt.Errorf("x.toml: %w", catalog.ErrInvalidCatalog), ExitConfigError},
		{"other", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestDisplayErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, NewCommandError("selections", "clear", "db locked", errors.New("busy")), true)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "command_error", out["error_type"])
	assert.Equal(t, "busy", out["underlying_error"])
}

func TestColorsEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	ForceColorsEnabled(false)
	assert.False(t, ColorsEnabled())

	ForceColorsEnabled(true)
	assert.True(t, ColorsEnabled())
	ForceColorsEnabled(false)
}
