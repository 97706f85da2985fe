// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Purple - Primary accent, active item highlight
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// PurpleDeep - Darker purple for tag backgrounds
var PurpleDeep = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#4C1D95"}

// Cyan - Focus ring, filter match highlight
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Selected check marks
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Invalid state, errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Loading, catalog reload warnings
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Panel background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Menu bar and status bar
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Panel borders
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// OverlayDim - Borders of unfocused triggers
var OverlayDim = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Item labels
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Field labels, help descriptions
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Disabled items, placeholders
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on the active item highlight
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// WIDGET COLORS
// =============================================================================

// FocusRing marks the focused trigger.
var FocusRing = Cyan

// TagBg is the background of a selected-value tag.
var TagBg = lipgloss.AdaptiveColor{Light: "#EDE9FE", Dark: "#3B3655"}

// TagFg is the text of a selected-value tag.
var TagFg = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#E9E4F5"}

// TooltipBg is the background of an item tooltip.
var TooltipBg = lipgloss.AdaptiveColor{Light: "#FEF3C7", Dark: "#78350F"}

// TooltipFg is the text of an item tooltip.
var TooltipFg = lipgloss.AdaptiveColor{Light: "#92400E", Dark: "#FEF3C7"}

// =============================================================================
// ACCESSIBILITY: Shapes alongside colors
// =============================================================================

// IndicatorSet holds the ASCII glyphs that carry state without color.
type IndicatorSet struct {
	Checked       string // Selected item in multi-select
	Unchecked     string // Unselected item in multi-select
	Indeterminate string // Select All with some items selected
	Radio         string // Selected item in single-select
	RadioOff      string // Unselected item in single-select
	Submenu       string // Item that opens a sub-menu
	Invalid       string // Invalid trigger
	Caret         string // Closed trigger
	CaretOpen     string // Open trigger
}

// Indicators provides the glyphs used by the widget views.
// ACCESSIBILITY: ASCII-only for maximum terminal compatibility.
var Indicators = IndicatorSet{
	Checked:       "[x]",
	Unchecked:     "[ ]",
	Indeterminate: "[-]",
	Radio:         "(*)",
	RadioOff:      "( )",
	Submenu:       ">",
	Invalid:       "[!]",
	Caret:         "v",
	CaretOpen:     "^",
}

// ErrorHighContrast - High contrast error text
var ErrorHighContrast = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}

// WarningHighContrast - High contrast warning text
var WarningHighContrast = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}

// RenderError renders an error message with the invalid indicator.
// ACCESSIBILITY: Includes shape indicator for colorblind users.
func RenderError(message string) string {
	style := lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)
	return style.Render(Indicators.Invalid + " " + message)
}

// RenderWarning renders a warning message.
func RenderWarning(message string) string {
	style := lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)
	return style.Render("[!] " + message)
}
