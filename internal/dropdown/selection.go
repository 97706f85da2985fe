// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dropdown

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jeranaias/rigrun-overlay/internal/listbox"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrMultipleValues is returned when more than one value is assigned in
	// single-select mode.
	ErrMultipleValues = errors.New("multiple values in single-select mode")

	// ErrValueMissing is the validity failure of a required dropdown with no
	// selection.
	ErrValueMissing = errors.New("a selection is required")
)

// =============================================================================
// APPLY MODE
// =============================================================================

// applyMode names the bulk change the reconciler is in the middle of. Item
// notifications raised by its own writes consult it instead of re-deriving
// the committed value.
type applyMode int

const (
	applyNone applyMode = iota
	// applyFromValueSetter: the final selection list is already computed.
	applyFromValueSetter
	// applyFromSelectAll: the Select All state is recomputed once at the end.
	applyFromSelectAll
)

func (m applyMode) String() string {
	switch m {
	case applyFromValueSetter:
		return "value-setter"
	case applyFromSelectAll:
		return "select-all"
	default:
		return "none"
	}
}

// apply runs fn with the reconciler in mode.
func (d *Dropdown) apply(mode applyMode, fn func()) {
	prev := d.applying
	d.applying = mode
	defer func() { d.applying = prev }()
	fn()
}

// =============================================================================
// COMMITTED VALUE
// =============================================================================

// Value returns the committed value: the values of the selected, enabled
// items in selection order. Items with an empty value do not contribute.
func (d *Dropdown) Value() []string {
	values := make([]string, 0, len(d.selection))
	for _, it := range d.selection {
		if it.Disabled() || it.Value() == "" {
			continue
		}
		values = append(values, it.Value())
	}
	return values
}

// SelectedItems returns the selected items in selection order.
func (d *Dropdown) SelectedItems() []*listbox.Item {
	return slices.Clone(d.selection)
}

// SetValue selects exactly the items carrying values, in the given order. A
// value selects the first item carrying it that no earlier value matched, so
// duplicate values across items are selected one by one. Values no item
// carries are ignored. In single-select mode more than one value is rejected
// and nothing changes.
func (d *Dropdown) SetValue(values []string) error {
	if !d.multiple && len(values) > 1 {
		return fmt.Errorf("set value %q: %w", values, ErrMultipleValues)
	}

	all := d.reg.AllItems()
	matched := make(map[*listbox.Item]bool, len(values))
	next := make([]*listbox.Item, 0, len(values))
	for _, v := range values {
		var hit *listbox.Item
		for _, it := range all {
			if !matched[it] && it.Value() == v {
				hit = it
				break
			}
		}
		if hit == nil {
			d.log.Debug("dropdown value matches no item", "value", v)
			continue
		}
		matched[hit] = true
		next = append(next, hit)
	}

	d.apply(applyFromValueSetter, func() {
		for _, it := range all {
			it.SetSelected(matched[it])
		}
	})
	d.selection = next
	d.afterSelection()
	return nil
}

// Select is the user's selection command on item. In multi-select mode it
// toggles the item; in single-select mode it selects the item and closes the
// panel. Pseudo-items run their own commands.
func (d *Dropdown) Select(item *listbox.Item) bool {
	if item == nil || d.disabled {
		return false
	}
	switch item {
	case d.selectAll:
		return d.ToggleSelectAll()
	case d.addItem:
		return d.AddItem()
	}
	if !item.Navigable() || !d.reg.Contains(item) {
		return false
	}
	if !d.intents.Announce(&listbox.Intent{Kind: listbox.IntentSelect, Item: item}) {
		d.log.Debug("dropdown select canceled", "item", item.Label())
		return false
	}

	if d.multiple {
		item.SetSelected(!item.Selected())
		d.log.Info("dropdown item toggled", "item", item.Label(), "selected", item.Selected())
		return true
	}
	item.SetSelected(true)
	d.log.Info("dropdown item selected", "item", item.Label(), "value", item.Value())
	d.Close()
	return true
}

// RemoveTag deselects the item behind a tag through the same path a user
// deselect takes.
func (d *Dropdown) RemoveTag(item *listbox.Item) bool {
	if item == nil || d.disabled || !item.Selected() || !d.reg.Contains(item) {
		return false
	}
	if !d.intents.Announce(&listbox.Intent{Kind: listbox.IntentSelect, Item: item}) {
		return false
	}
	item.SetSelected(false)
	d.log.Info("dropdown tag removed", "item", item.Label())
	return true
}

// SetMultiple switches the selection mode. Switching to single-select keeps
// only the most recently selected enabled item. Switching to multi-select
// keeps every selection.
func (d *Dropdown) SetMultiple(multiple bool) {
	if d.multiple == multiple {
		return
	}
	d.multiple = multiple

	if !multiple {
		var keep *listbox.Item
		for i := len(d.selection) - 1; i >= 0; i-- {
			if !d.selection[i].Disabled() {
				keep = d.selection[i]
				break
			}
		}
		d.apply(applyFromValueSetter, func() {
			for _, it := range d.reg.AllItems() {
				if it != keep {
					it.SetSelected(false)
				}
			}
		})
		d.selection = d.selection[:0]
		if keep != nil {
			d.selection = append(d.selection, keep)
		}
	}

	d.refreshPseudoItems()
	d.active.Reconcile()
	d.afterSelection()
	d.log.Debug("dropdown mode switched", "multiple", multiple)
}

// =============================================================================
// SELECT ALL
// =============================================================================

// SelectAllState returns the Select All tri-state.
func (d *Dropdown) SelectAllState() SelectAllState { return d.selectAllState }

// ToggleSelectAll selects every enabled item, or deselects them all when all
// are already selected. Only available in multi-select mode.
func (d *Dropdown) ToggleSelectAll() bool {
	if !d.multiple || d.disabled {
		return false
	}
	if !d.intents.Announce(&listbox.Intent{Kind: listbox.IntentSelect, Item: d.selectAll}) {
		return false
	}

	target := d.selectAllState != SelectAllOn
	d.apply(applyFromSelectAll, func() {
		for _, it := range d.reg.AllItems() {
			if !it.Disabled() {
				it.SetSelected(target)
			}
		}
	})
	d.afterSelection()
	d.log.Info("dropdown select all", "selected", target, "count", len(d.selection))
	return true
}

// recomputeSelectAll derives the tri-state from the enabled items.
func (d *Dropdown) recomputeSelectAll() {
	if d.applying == applyFromSelectAll {
		return
	}
	selected, enabled := 0, 0
	for _, it := range d.reg.AllItems() {
		if it.Disabled() {
			continue
		}
		enabled++
		if it.Selected() {
			selected++
		}
	}

	switch {
	case enabled > 0 && selected == enabled:
		d.selectAllState = SelectAllOn
	case selected > 0:
		d.selectAllState = SelectAllIndeterminate
	default:
		d.selectAllState = SelectAllOff
	}
	d.selectAll.SetSelected(d.selectAllState == SelectAllOn)
}

// =============================================================================
// RECONCILIATION
// =============================================================================

// selectionChanged reconciles the committed value after item's selected flag
// changed.
func (d *Dropdown) selectionChanged(item *listbox.Item) {
	if item.Selected() && d.multiple && item.Disabled() {
		// A selected item is always submitted.
		item.SetDisabled(false)
	}

	if d.applying == applyFromValueSetter {
		return
	}

	switch {
	case d.multiple && item.Selected():
		if !slices.Contains(d.selection, item) {
			d.selection = append(d.selection, item)
		}

	case d.multiple:
		d.dropFromSelection(item)

	case item.Selected():
		d.selection = append(d.selection[:0], item)
		for _, other := range d.reg.AllItems() {
			if other != item && other.Selected() {
				other.SetSelected(false)
			}
		}

	default:
		d.dropFromSelection(item)
		if len(d.selection) == 0 {
			if other := d.lastFlagged(); other != nil {
				d.selection = append(d.selection, other)
			}
		}
	}

	if d.applying == applyNone {
		d.afterSelection()
	}
}

// dropFromSelection removes item from the selection list by identity, so two
// items sharing a value are removed independently.
func (d *Dropdown) dropFromSelection(item *listbox.Item) bool {
	i := slices.Index(d.selection, item)
	if i < 0 {
		return false
	}
	d.selection = slices.Delete(d.selection, i, i+1)
	return true
}

// lastFlagged returns the last item in collection order still flagged
// selected.
func (d *Dropdown) lastFlagged() *listbox.Item {
	all := d.reg.AllItems()
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Selected() {
			return all[i]
		}
	}
	return nil
}

// afterSelection refreshes everything derived from the selection.
func (d *Dropdown) afterSelection() {
	d.recomputeSelectAll()
	d.resetTags()
	if d.required && len(d.Value()) > 0 {
		d.invalid = false
	}
	d.emitIfChanged()
}

// emitIfChanged notifies change listeners when the committed value differs
// from the last one they saw.
func (d *Dropdown) emitIfChanged() {
	if d.applying != applyNone {
		return
	}
	value := d.Value()
	if slices.Equal(value, d.lastValue) {
		return
	}
	d.lastValue = value
	d.log.Debug("dropdown value changed", "value", value)
	for _, fn := range d.onChange {
		fn(slices.Clone(value))
	}
}
