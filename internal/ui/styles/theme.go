// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styles of the widget views.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION STYLES
	// ==========================================================================

	App        lipgloss.Style
	Title      lipgloss.Style
	FieldLabel lipgloss.Style

	// ==========================================================================
	// MENU BAR STYLES
	// ==========================================================================

	MenuBar       lipgloss.Style
	MenuBarItem   lipgloss.Style
	MenuBarActive lipgloss.Style

	// ==========================================================================
	// PANEL STYLES
	// ==========================================================================

	Panel        lipgloss.Style
	Item         lipgloss.Style
	ItemActive   lipgloss.Style
	ItemDisabled lipgloss.Style
	ItemPseudo   lipgloss.Style
	Match        lipgloss.Style
	Check        lipgloss.Style
	Tooltip      lipgloss.Style
	Empty        lipgloss.Style

	// ==========================================================================
	// DROPDOWN TRIGGER STYLES
	// ==========================================================================

	Trigger        lipgloss.Style
	TriggerFocused lipgloss.Style
	TriggerInvalid lipgloss.Style
	Placeholder    lipgloss.Style
	Tag            lipgloss.Style
	TagOverflow    lipgloss.Style
	FilterPrompt   lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	ErrorText    lipgloss.Style
	WarningText  lipgloss.Style
}

// NewTheme creates a theme for mode: "dark", "light" or "auto". Auto asks
// the terminal for its background.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Menu bar
	t.MenuBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextPrimary)

	t.MenuBarItem = lipgloss.NewStyle().
		Padding(0, 1)

	t.MenuBarActive = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	// Panels
	t.Panel = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay)

	t.Item = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ItemActive = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.ItemDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Strikethrough(true).
		Padding(0, 1)

	t.ItemPseudo = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true).
		Padding(0, 1)

	t.Match = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Check = lipgloss.NewStyle().
		Foreground(Emerald)

	t.Tooltip = lipgloss.NewStyle().
		Background(TooltipBg).
		Foreground(TooltipFg).
		Padding(0, 1)

	t.Empty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(0, 1)

	// Dropdown trigger
	t.Trigger = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(OverlayDim).
		Padding(0, 1)

	t.TriggerFocused = t.Trigger.
		BorderForeground(FocusRing)

	t.TriggerInvalid = t.Trigger.
		BorderForeground(Rose)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Tag = lipgloss.NewStyle().
		Background(TagBg).
		Foreground(TagFg).
		Padding(0, 1)

	t.TagOverflow = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.FilterPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	// Status
	t.Spinner = lipgloss.NewStyle().
		Foreground(Amber)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose)

	t.WarningText = lipgloss.NewStyle().
		Foreground(Amber)
}

// =============================================================================
// SPINNER ANIMATION
// =============================================================================

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// LineSpinner - Simple line rotation shown while a menu is loading
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}
