// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package keys defines the key vocabulary of the overlay widgets and the
// cancelable key event used by the nested-menu redispatch protocol.
package keys

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// KEY MAP
// =============================================================================

// KeyMap holds the bindings every widget level understands.
type KeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	First    key.Binding
	Last     key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Select   key.Binding
	Close    key.Binding
	Open     key.Binding
}

// DefaultKeyMap returns the standard bindings. Meta+Arrow arrives from the
// terminal as alt+arrow.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "pgup", "alt+up"),
			key.WithHelp("home", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "pgdown", "alt+down"),
			key.WithHelp("end", "last"),
		),
		Expand: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "open sub-menu"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "close sub-menu"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", " ", "down", "up"),
			key.WithHelp("enter", "open"),
		),
	}
}

// ComboboxKeyMap returns the bindings for a level whose trigger is a text
// field. Space types into the field instead of selecting.
func ComboboxKeyMap() KeyMap {
	km := DefaultKeyMap()
	km.Select = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	)
	km.Open = key.NewBinding(
		key.WithKeys("enter", "down", "up"),
		key.WithHelp("↓", "open"),
	)
	return km
}

// Navigation reports whether msg is one of the keys an open level handles.
// These are the keys a level with an open sub-menu forwards downward.
func (k KeyMap) Navigation(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Next, k.Prev, k.First, k.Last,
		k.Expand, k.Collapse, k.Select, k.Close)
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Select, k.Close}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.First, k.Last},
		{k.Expand, k.Collapse, k.Select, k.Close},
	}
}

// =============================================================================
// EVENT
// =============================================================================

// Event is a key press travelling through a widget tree. A level that acts on
// the key prevents its default so the levels above know it was consumed.
type Event struct {
	Msg       tea.KeyMsg
	prevented bool
}

// NewEvent wraps msg.
func NewEvent(msg tea.KeyMsg) *Event {
	return &Event{Msg: msg}
}

// Synthesize returns a fresh, unprevented copy for redispatching to a child.
func (e *Event) Synthesize() *Event {
	return &Event{Msg: e.Msg}
}

// PreventDefault marks the key as consumed.
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether some level consumed the key.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// String returns the key name, e.g. "alt+down".
func (e *Event) String() string { return e.Msg.String() }

// =============================================================================
// CONSTRUCTION
// =============================================================================

var namedKeys = map[string]tea.KeyType{
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"backspace": tea.KeyBackspace,
	" ":         tea.KeySpace,
	"space":     tea.KeySpace,
}

// Msg builds the tea.KeyMsg for a key name such as "down", "alt+up", "enter"
// or a literal rune sequence. It is how scripted input and tests drive the
// widgets.
func Msg(name string) tea.KeyMsg {
	alt := false
	if strings.HasPrefix(name, "alt+") && len(name) > len("alt+") {
		alt = true
		name = strings.TrimPrefix(name, "alt+")
	}
	if kt, ok := namedKeys[name]; ok {
		return tea.KeyMsg{Type: kt, Alt: alt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name), Alt: alt}
}

// Press is shorthand for NewEvent(Msg(name)).
func Press(name string) *Event {
	return NewEvent(Msg(name))
}
