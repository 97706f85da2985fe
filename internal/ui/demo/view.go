// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package demo

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-overlay/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the menu bar, the dropdown column, toasts and the status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	parts := []string{m.bar.View(), ""}
	for _, f := range m.fields {
		parts = append(parts, f.view.View(), "")
	}
	body := m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	if toasts := components.RenderToastStack(m.theme, m.toasts.Toasts(), m.width); toasts != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, toasts)
	}

	status := m.status.View()
	if pad := m.height - lipgloss.Height(body) - lipgloss.Height(status); pad > 0 {
		body = lipgloss.NewStyle().Height(lipgloss.Height(body) + pad).Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}
