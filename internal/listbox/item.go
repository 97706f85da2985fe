// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package listbox

import (
	"github.com/google/uuid"
)

// =============================================================================
// ITEM
// =============================================================================

// Item is one selectable or actionable entry.
//
// Consumer-visible attributes are changed through setters so the owning
// Collection can notify its observers. The active and tooltip flags belong to
// the engine and have no exported setters.
type Item struct {
	id       string
	label    string
	value    string
	disabled bool
	selected bool
	hidden   bool
	editable bool

	active      bool
	tooltipOpen bool

	// owner is nil until the item is added to a collection.
	owner *Collection
}

// NewItem creates an item with a fresh identity.
func NewItem(label, value string) *Item {
	return &Item{
		id:    uuid.NewString(),
		label: label,
		value: value,
	}
}

// ID returns the stable identity used for active-descendant references.
func (it *Item) ID() string { return it.id }

// Label returns the user-visible text.
func (it *Item) Label() string { return it.label }

// Value returns the submitted value. Empty when unset.
func (it *Item) Value() string { return it.value }

// Disabled reports whether the item is disabled.
func (it *Item) Disabled() bool { return it.disabled }

// Selected reports the item's selected flag.
func (it *Item) Selected() bool { return it.selected }

// Hidden reports whether filtering has hidden the item.
func (it *Item) Hidden() bool { return it.hidden }

// Editable reports whether the item is editable.
func (it *Item) Editable() bool { return it.editable }

// Active reports whether the item is the active item of its level.
func (it *Item) Active() bool { return it.active }

// TooltipOpen reports whether keyboard navigation opened the item's tooltip.
func (it *Item) TooltipOpen() bool { return it.tooltipOpen }

// Navigable reports whether navigation may land on the item.
func (it *Item) Navigable() bool { return !it.disabled && !it.hidden }

// SetLabel changes the label.
func (it *Item) SetLabel(label string) {
	if it.label == label {
		return
	}
	it.label = label
	it.notify(Change{Kind: ChangeLabel, Item: it})
}

// SetValue changes the value.
func (it *Item) SetValue(value string) {
	if it.value == value {
		return
	}
	it.value = value
	it.notify(Change{Kind: ChangeValue, Item: it})
}

// SetDisabled enables or disables the item. A disabled item is never active.
func (it *Item) SetDisabled(disabled bool) {
	if it.disabled == disabled {
		return
	}
	it.disabled = disabled
	if disabled {
		it.setActive(false)
	}
	it.notify(Change{Kind: ChangeDisabled, Item: it})
}

// SetSelected sets the selected flag.
func (it *Item) SetSelected(selected bool) {
	if it.selected == selected {
		return
	}
	it.selected = selected
	it.notify(Change{Kind: ChangeSelected, Item: it, Was: !selected})
}

// SetHidden hides or shows the item. A hidden item is never active.
func (it *Item) SetHidden(hidden bool) {
	if it.hidden == hidden {
		return
	}
	it.hidden = hidden
	if hidden {
		it.setActive(false)
	}
	it.notify(Change{Kind: ChangeHidden, Item: it})
}

// SetEditable marks the item editable.
func (it *Item) SetEditable(editable bool) {
	if it.editable == editable {
		return
	}
	it.editable = editable
	it.notify(Change{Kind: ChangeEditable, Item: it})
}

func (it *Item) setActive(active bool) {
	it.active = active
	if !active {
		it.tooltipOpen = false
	}
}

func (it *Item) notify(c Change) {
	if it.owner != nil {
		it.owner.emit(c)
	}
}
