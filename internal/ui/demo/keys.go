// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package demo

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/rigrun-overlay/internal/keys"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap holds the application bindings. Widget bindings live in keys.KeyMap.
type KeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Help      key.Binding
	Quit      key.Binding
	QuitBar   key.Binding
}

// DefaultKeyMap returns the default application bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "submit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		// QuitBar only applies while the menu bar has focus and is closed.
		QuitBar: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// helpKeys lists the focused widget's bindings followed by the application's.
type helpKeys struct {
	widget keys.KeyMap
	app    KeyMap
}

// ShortHelp implements help.KeyMap.
func (h helpKeys) ShortHelp() []key.Binding {
	return append(h.widget.ShortHelp(), h.app.NextField, h.app.Submit, h.app.Quit)
}

// FullHelp implements help.KeyMap.
func (h helpKeys) FullHelp() [][]key.Binding {
	return append(h.widget.FullHelp(),
		[]key.Binding{h.app.NextField, h.app.PrevField, h.app.Submit},
		[]key.Binding{h.app.Help, h.app.QuitBar, h.app.Quit},
	)
}
