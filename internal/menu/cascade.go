// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package menu

import (
	"github.com/jeranaias/rigrun-overlay/internal/listbox"
	"github.com/jeranaias/rigrun-overlay/internal/panel"
)

// =============================================================================
// STATE
// =============================================================================

// IsOpen reports whether the level is open.
func (m *Menu) IsOpen() bool { return m.open }

// State returns the level's tri-state.
func (m *Menu) State() State {
	switch {
	case !m.open:
		return Closed
	case m.openChild != nil:
		return OpenOneSubmenuOpen
	default:
		return OpenNoSubmenuOpen
	}
}

// Disabled reports whether the trigger is disabled.
func (m *Menu) Disabled() bool {
	if m.disabled {
		return true
	}
	return m.parentItem != nil && !m.parentItem.Navigable()
}

// SetDisabled disables the trigger. Disabling an open menu closes it.
func (m *Menu) SetDisabled(disabled bool) {
	m.disabled = disabled
	if disabled && m.open {
		m.Close()
	}
}

// Loading reports whether this level or any ancestor is loading.
func (m *Menu) Loading() bool {
	for l := m; l != nil; l = l.parent {
		if l.loading {
			return true
		}
	}
	return false
}

// SetLoading marks content as not yet arrived. While loading, the level and
// everything below it ignore navigation and selection.
func (m *Menu) SetLoading(loading bool) {
	m.loading = loading
}

// =============================================================================
// OPEN / CLOSE
// =============================================================================

// Open opens the level and restores its active position. A sub-menu opens only
// while its parent is open, and closes any open sibling first. It reports
// whether the level is open afterwards.
func (m *Menu) Open(origin listbox.Origin) bool {
	return m.open || m.openWith(origin, false)
}

// Close closes the level and everything below it. It reports whether a
// transition happened.
func (m *Menu) Close() bool {
	if !m.open {
		return false
	}
	if !m.announce(&listbox.Intent{Kind: listbox.IntentClose}) {
		m.log.Debug("menu close canceled", "menu", m.name)
		return false
	}
	m.forceClose()
	return true
}

// Toggle opens a closed level or closes an open one.
func (m *Menu) Toggle(origin listbox.Origin) bool {
	if m.open {
		return m.Close()
	}
	return m.Open(origin)
}

// openWith opens m. When first is set the first enabled item becomes active
// instead of the remembered one.
func (m *Menu) openWith(origin listbox.Origin, first bool) bool {
	if m.Disabled() {
		return false
	}
	if m.parent != nil && !m.parent.open {
		return false
	}
	if !m.announce(&listbox.Intent{Kind: listbox.IntentOpen, Item: m.parentItem}) {
		m.log.Debug("menu open canceled", "menu", m.name)
		return false
	}

	if p := m.parent; p != nil {
		if p.openChild != nil && p.openChild != m {
			p.openChild.forceClose()
		}
		p.openChild = m
		p.active.Set(m.parentItem, origin)
	}

	m.open = true
	if first {
		m.active.First(origin)
	} else {
		m.active.RestoreOnOpen(origin)
	}
	m.panel.Show(m.anchor(), m.id)
	m.log.Debug("menu opened", "menu", m.name, "depth", m.Depth(), "origin", origin.String())
	return true
}

// forceClose closes m and its open descendants, deepest first, without
// asking listeners. Sibling exclusion and ancestor closes use it.
func (m *Menu) forceClose() {
	if !m.open {
		return
	}
	if m.openChild != nil {
		m.openChild.forceClose()
	}
	m.open = false
	m.active.Clear()
	m.panel.Hide(m.id)
	if p := m.parent; p != nil && p.openChild == m {
		p.openChild = nil
	}
	m.log.Debug("menu closed", "menu", m.name, "depth", m.Depth())
}

// openSubmenu opens item's sub-menu from this level.
func (m *Menu) openSubmenu(item *listbox.Item, origin listbox.Origin, first bool) bool {
	sub := m.submenus[item]
	if sub == nil {
		return false
	}
	if sub.open {
		if first {
			sub.active.First(origin)
		}
		return true
	}
	return sub.openWith(origin, first)
}

// anchor places the panel under the trigger, or beside the parent item's row.
func (m *Menu) anchor() panel.Anchor {
	if m.parent == nil {
		return panel.Anchor{Row: m.anchorRow}
	}
	row := 0
	for _, it := range m.parent.reg.AllItems() {
		if it == m.parentItem {
			break
		}
		if !it.Hidden() {
			row++
		}
	}
	return panel.Anchor{Parent: m.parent.id, Row: row}
}

// announce raises in on m and then on each ancestor, stopping at the first
// cancel.
func (m *Menu) announce(in *listbox.Intent) bool {
	for l := m; l != nil; l = l.parent {
		if !l.intents.Announce(in) {
			return false
		}
	}
	return true
}
