// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigrun-overlay/internal/ui/styles"
)

// =============================================================================
// LOADING SPINNER
// =============================================================================

// LoadingSpinner is the row a menu panel shows while its items load.
type LoadingSpinner struct {
	spinner spinner.Model
	theme   *styles.Theme
	message string

	active    bool
	startTime time.Time
}

// NewLoadingSpinner creates an ASCII line spinner.
func NewLoadingSpinner(theme *styles.Theme) LoadingSpinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: styles.LineSpinner.Frames,
		FPS:    styles.LineSpinner.Duration(),
	}
	return LoadingSpinner{
		spinner: s,
		theme:   theme,
		message: "Loading",
	}
}

// SetMessage sets the text shown after the spinner.
func (s *LoadingSpinner) SetMessage(msg string) {
	s.message = msg
}

// Start activates the spinner. Starting an active spinner returns nil so only
// one tick loop runs.
func (s *LoadingSpinner) Start() tea.Cmd {
	if s.active {
		return nil
	}
	s.active = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *LoadingSpinner) Stop() {
	s.active = false
}

// IsActive returns whether the spinner is running.
func (s *LoadingSpinner) IsActive() bool {
	return s.active
}

// Elapsed returns the time since Start.
func (s *LoadingSpinner) Elapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// Update advances the animation. Ticks arriving after Stop end the loop.
func (s LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner row.
func (s LoadingSpinner) View() string {
	if !s.active {
		return ""
	}
	frame := s.theme.Spinner.Render(s.spinner.View())
	return frame + " " + s.theme.Empty.Render(s.message+"...")
}
