// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dropdown

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/rigrun-overlay/internal/keys"
	"github.com/jeranaias/rigrun-overlay/internal/listbox"
	"github.com/jeranaias/rigrun-overlay/internal/panel"
)

// =============================================================================
// OPEN / CLOSE
// =============================================================================

// IsOpen reports whether the panel is open.
func (d *Dropdown) IsOpen() bool { return d.open }

// Open opens the panel and restores the active position. It reports whether
// the panel is open afterwards.
func (d *Dropdown) Open(origin listbox.Origin) bool {
	if d.open {
		return true
	}
	if d.disabled {
		return false
	}
	if !d.intents.Announce(&listbox.Intent{Kind: listbox.IntentOpen}) {
		d.log.Debug("dropdown open canceled")
		return false
	}
	d.open = true
	d.active.RestoreOnOpen(origin)
	d.panel.Show(panel.Anchor{Row: d.anchorRow}, d.id)
	d.log.Debug("dropdown opened", "origin", origin.String(), "active", d.ActiveDescendantID())
	return true
}

// Close closes the panel and clears the filter. It reports whether a
// transition happened.
func (d *Dropdown) Close() bool {
	if !d.open {
		return false
	}
	if !d.intents.Announce(&listbox.Intent{Kind: listbox.IntentClose}) {
		d.log.Debug("dropdown close canceled")
		return false
	}
	d.open = false
	d.active.Clear()
	d.clearFilter()
	d.panel.Hide(d.id)
	d.log.Debug("dropdown closed")
	return true
}

// Toggle opens a closed panel or closes an open one.
func (d *Dropdown) Toggle(origin listbox.Origin) bool {
	if d.open {
		return d.Close()
	}
	return d.Open(origin)
}

// =============================================================================
// INPUT
// =============================================================================

// HandleKey processes a key press. Keys the dropdown acts on are
// default-prevented.
func (d *Dropdown) HandleKey(ev *keys.Event) {
	msg := ev.Msg
	km := d.keys

	if !d.open {
		if d.disabled || !key.Matches(msg, km.Open) {
			return
		}
		if d.Open(listbox.OriginKeyboard) {
			if key.Matches(msg, km.Prev) {
				d.active.Last(listbox.OriginKeyboard)
			}
			ev.PreventDefault()
		}
		return
	}

	switch {
	case key.Matches(msg, km.Close):
		d.Close()
		ev.PreventDefault()

	case key.Matches(msg, km.Next):
		d.active.Next(listbox.OriginKeyboard)
		ev.PreventDefault()

	case key.Matches(msg, km.Prev):
		d.active.Previous(listbox.OriginKeyboard)
		ev.PreventDefault()

	case key.Matches(msg, km.First):
		d.active.First(listbox.OriginKeyboard)
		ev.PreventDefault()

	case key.Matches(msg, km.Last):
		d.active.Last(listbox.OriginKeyboard)
		ev.PreventDefault()

	case key.Matches(msg, km.Select):
		if item := d.active.Active(); item != nil {
			d.Select(item)
		}
		ev.PreventDefault()
	}
}

// Hover activates item under the pointer.
func (d *Dropdown) Hover(item *listbox.Item) bool {
	if !d.open {
		return false
	}
	return d.active.Hover(item)
}

// Click activates item and runs the selection command on it.
func (d *Dropdown) Click(item *listbox.Item) bool {
	if !d.open || !d.active.Set(item, listbox.OriginPointer) {
		return false
	}
	return d.Select(item)
}

// PointerDown reports a press anywhere on screen. A press outside the trigger
// and the panel closes the dropdown.
func (d *Dropdown) PointerDown(inside bool) bool {
	if !d.open || inside {
		return false
	}
	return d.Close()
}
