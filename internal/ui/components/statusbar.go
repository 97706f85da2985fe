// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-overlay/internal/ui/styles"
	"github.com/jeranaias/rigrun-overlay/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status is the state shown at the left of the status bar.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusReloaded
	StatusError
)

// String returns the display string for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusReloaded:
		return "Reloaded"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape for the status.
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return "*"
	case StatusLoading:
		return "~"
	case StatusReloaded:
		return "+"
	case StatusError:
		return "!"
	default:
		return "?"
	}
}

// StatusBar is the bottom line: status, focused widget and key help.
type StatusBar struct {
	Status  Status
	Context string // e.g. "File > Recent" or "Toppings: cheese, olives"
	Width   int

	help  help.Model
	keys  help.KeyMap
	theme *styles.Theme
}

// NewStatusBar creates a StatusBar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	h := help.New()
	h.Styles.ShortKey = theme.ShortcutKey
	h.Styles.ShortDesc = theme.ShortcutDesc
	h.Styles.ShortSeparator = theme.ShortcutDesc
	h.Styles.FullKey = theme.ShortcutKey
	h.Styles.FullDesc = theme.ShortcutDesc
	h.Styles.FullSeparator = theme.ShortcutDesc

	return &StatusBar{
		Status: StatusReady,
		Width:  80,
		help:   h,
		theme:  theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetContext describes the focused widget.
func (s *StatusBar) SetContext(ctx string) {
	s.Context = ctx
}

// SetKeyMap sets the bindings the help section lists.
func (s *StatusBar) SetKeyMap(km help.KeyMap) {
	s.keys = km
}

// ToggleHelp switches between the short and full help.
func (s *StatusBar) ToggleHelp() {
	s.help.ShowAll = !s.help.ShowAll
}

// View renders the status bar
func (s *StatusBar) View() string {
	left := s.statusStyle().Render(s.Status.Icon()+" "+s.Status.String())
	if s.Context != "" {
		left += "  " + util.TruncateWidth(s.Context, max(s.Width/2, 10))
	}

	if s.keys == nil || s.Width < 60 {
		return s.theme.StatusBar.Width(s.Width).Render(left)
	}

	s.help.Width = s.Width - lipgloss.Width(left) - 4
	right := s.help.View(s.keys)

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), right)
	return s.theme.StatusBar.Width(s.Width).Render(row)
}

func (s *StatusBar) statusStyle() lipgloss.Style {
	switch s.Status {
	case StatusError:
		return s.theme.ErrorText
	case StatusLoading:
		return s.theme.WarningText
	default:
		return lipgloss.NewStyle().Foreground(styles.Emerald)
	}
}
