// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package menu

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/rigrun-overlay/internal/keys"
	"github.com/jeranaias/rigrun-overlay/internal/listbox"
)

// =============================================================================
// KEYBOARD
// =============================================================================

// HandleKey processes a key press delivered to this level. A level with an
// open sub-menu forwards navigation keys to it and prevents its own default
// only if the sub-menu did. Keys a level acts on are default-prevented.
func (m *Menu) HandleKey(ev *keys.Event) {
	msg := ev.Msg
	km := m.keys

	if !m.open {
		if m.Disabled() || !key.Matches(msg, km.Open) {
			return
		}
		if m.Open(listbox.OriginKeyboard) {
			if key.Matches(msg, km.Prev) {
				m.active.Last(listbox.OriginKeyboard)
			}
			ev.PreventDefault()
		}
		return
	}

	if m.Loading() && !key.Matches(msg, km.Close) {
		return
	}

	if m.openChild != nil && km.Navigation(msg) {
		inner := ev.Synthesize()
		m.openChild.HandleKey(inner)
		if inner.DefaultPrevented() {
			ev.PreventDefault()
		}
		return
	}

	switch {
	case key.Matches(msg, km.Close):
		if m.Close() {
			m.returnToParent()
			ev.PreventDefault()
		}

	case key.Matches(msg, km.Collapse):
		// The top level never closes on ArrowLeft.
		if m.parent == nil {
			return
		}
		if m.Close() {
			m.returnToParent()
			ev.PreventDefault()
		}

	case key.Matches(msg, km.Expand):
		if m.openSubmenu(m.active.Active(), listbox.OriginKeyboard, true) {
			ev.PreventDefault()
		}

	case key.Matches(msg, km.Next):
		m.active.Next(listbox.OriginKeyboard)
		ev.PreventDefault()

	case key.Matches(msg, km.Prev):
		m.active.Previous(listbox.OriginKeyboard)
		ev.PreventDefault()

	case key.Matches(msg, km.First):
		m.active.First(listbox.OriginKeyboard)
		ev.PreventDefault()

	case key.Matches(msg, km.Last):
		m.active.Last(listbox.OriginKeyboard)
		ev.PreventDefault()

	case key.Matches(msg, km.Select):
		item := m.active.Active()
		if item == nil {
			return
		}
		if m.HasSubmenu(item) {
			m.openSubmenu(item, listbox.OriginKeyboard, true)
		} else {
			m.commit(item)
		}
		ev.PreventDefault()
	}
}

// returnToParent hands active-item ownership back to the parent item after
// this level closed from the keyboard.
func (m *Menu) returnToParent() {
	if m.open || m.parent == nil {
		return
	}
	m.parent.active.Set(m.parentItem, listbox.OriginKeyboard)
}

// =============================================================================
// POINTER
// =============================================================================

// Hover activates item under the pointer. Hovering an item with a sub-menu
// opens it; hovering any other item closes an open sibling sub-menu.
func (m *Menu) Hover(item *listbox.Item) bool {
	if !m.open || m.Loading() {
		return false
	}
	if !m.active.Hover(item) {
		return false
	}
	if m.HasSubmenu(item) {
		m.openSubmenu(item, listbox.OriginPointer, false)
	} else if m.openChild != nil {
		m.openChild.forceClose()
	}
	return true
}

// Click activates item and either toggles its sub-menu or commits it.
func (m *Menu) Click(item *listbox.Item) bool {
	if !m.open || m.Loading() {
		return false
	}
	if !m.active.Set(item, listbox.OriginPointer) {
		return false
	}
	if sub := m.Submenu(item); sub != nil {
		if sub.open {
			return sub.Close()
		}
		return m.openSubmenu(item, listbox.OriginPointer, false)
	}
	return m.commit(item)
}

// PointerDown reports a press anywhere on screen. target is the level the
// press landed in, nil when it hit nothing that belongs to a menu. A press
// outside the whole tree below m closes m.
func (m *Menu) PointerDown(target *Menu) bool {
	if !m.open || m.Contains(target) {
		return false
	}
	return m.Close()
}

// =============================================================================
// COMMIT
// =============================================================================

// commit selects a leaf item and closes the whole tree.
func (m *Menu) commit(item *listbox.Item) bool {
	if !m.announce(&listbox.Intent{Kind: listbox.IntentSelect, Item: item}) {
		m.log.Debug("menu select canceled", "menu", m.name, "item", item.Label())
		return false
	}
	m.log.Info("menu item selected", "menu", m.name, "item", item.Label(), "value", item.Value())
	for l := m; l != nil; l = l.parent {
		for _, fn := range l.onSelect {
			fn(m, item)
		}
	}
	m.Root().Close()
	return true
}
