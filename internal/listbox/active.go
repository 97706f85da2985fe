// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package listbox

// =============================================================================
// ORIGIN
// =============================================================================

// Origin records what caused an active-item change.
type Origin int

const (
	OriginProgrammatic Origin = iota
	OriginPointer
	OriginKeyboard
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case OriginPointer:
		return "pointer"
	case OriginKeyboard:
		return "keyboard"
	default:
		return "programmatic"
	}
}

// =============================================================================
// ACTIVE-ITEM CONTROLLER
// =============================================================================

// ChangeFunc is called after the active item changes. Either side may be nil.
type ChangeFunc func(previous, next *Item, origin Origin)

// ActiveController owns which single item of one widget level is active.
//
// None of its commands fail: when constraints make a command inapplicable
// (no items, disabled target, edge of the list) the command is a no-op.
type ActiveController struct {
	reg *Registry

	active   *Item
	previous *Item

	// lastIndex is the active item's last known registry position, used to
	// find its neighbours once it has been removed.
	lastIndex int

	keyboardDisclosure bool
	onChange           ChangeFunc
}

// ActiveOption configures an ActiveController.
type ActiveOption func(*ActiveController)

// WithKeyboardDisclosure opens the active item's tooltip when navigation came
// from the keyboard. Pointer navigation never opens it.
func WithKeyboardDisclosure() ActiveOption {
	return func(c *ActiveController) { c.keyboardDisclosure = true }
}

// WithChangeFunc registers a callback for active-item changes.
func WithChangeFunc(fn ChangeFunc) ActiveOption {
	return func(c *ActiveController) { c.onChange = fn }
}

// NewActiveController creates a controller over reg.
func NewActiveController(reg *Registry, opts ...ActiveOption) *ActiveController {
	c := &ActiveController{reg: reg, lastIndex: -1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Active returns the active item, or nil.
func (c *ActiveController) Active() *Item { return c.active }

// PreviouslyActive returns the item remembered for restoring position on
// reopen. It may no longer be enumerated.
func (c *ActiveController) PreviouslyActive() *Item { return c.previous }

// ActiveDescendantID returns the active item's id, or "" when none is active.
func (c *ActiveController) ActiveDescendantID() string {
	if c.active == nil {
		return ""
	}
	return c.active.ID()
}

// Hover activates item in response to pointer movement.
func (c *ActiveController) Hover(item *Item) bool {
	return c.Set(item, OriginPointer)
}

// Set activates item. Items that are nil, disabled, hidden or not enumerated
// are ignored.
func (c *ActiveController) Set(item *Item, origin Origin) bool {
	if item == nil || !item.Navigable() || !c.reg.Contains(item) {
		return false
	}
	c.activate(item, origin)
	return true
}

// Next activates the first navigable item after the active one. It does not
// wrap. With nothing active it behaves like First.
func (c *ActiveController) Next(origin Origin) bool {
	if c.active == nil {
		return c.First(origin)
	}
	all := c.reg.AllItems()
	idx := indexIn(all, c.active)
	if idx < 0 {
		return false
	}
	for i := idx + 1; i < len(all); i++ {
		if all[i].Navigable() {
			c.activate(all[i], origin)
			return true
		}
	}
	return false
}

// Previous activates the last navigable item before the active one. It does
// not wrap. With nothing active it behaves like Last.
func (c *ActiveController) Previous(origin Origin) bool {
	if c.active == nil {
		return c.Last(origin)
	}
	all := c.reg.AllItems()
	idx := indexIn(all, c.active)
	if idx < 0 {
		return false
	}
	for i := idx - 1; i >= 0; i-- {
		if all[i].Navigable() {
			c.activate(all[i], origin)
			return true
		}
	}
	return false
}

// First activates the first navigable item.
func (c *ActiveController) First(origin Origin) bool {
	first := c.reg.FirstEnabled()
	if first == nil {
		return false
	}
	c.activate(first, origin)
	return true
}

// Last activates the last navigable item.
func (c *ActiveController) Last(origin Origin) bool {
	last := c.reg.LastEnabled()
	if last == nil {
		return false
	}
	c.activate(last, origin)
	return true
}

// Reconcile repairs the active item after a mutation. If the active item was
// disabled, hidden or removed, the nearest following navigable item becomes
// active, then the nearest preceding one, then the first, then none.
// It reports whether the active item changed.
func (c *ActiveController) Reconcile() bool {
	if c.active == nil {
		return false
	}
	all := c.reg.AllItems()
	idx := indexIn(all, c.active)
	if idx >= 0 && c.active.Navigable() {
		c.lastIndex = idx
		return false
	}

	// A removed item leaves its successor at its old index.
	forwardFrom, backFrom := idx+1, idx-1
	if idx < 0 {
		p := c.lastIndex
		if p < 0 {
			p = 0
		}
		if p > len(all) {
			p = len(all)
		}
		forwardFrom, backFrom = p, p-1
	}

	var target *Item
	for i := forwardFrom; i < len(all) && target == nil; i++ {
		if all[i].Navigable() {
			target = all[i]
		}
	}
	for i := backFrom; i >= 0 && target == nil; i-- {
		if all[i].Navigable() {
			target = all[i]
		}
	}
	if target == nil {
		target = c.reg.FirstEnabled()
	}

	if target == nil {
		prev := c.active
		prev.setActive(false)
		c.active = nil
		c.lastIndex = -1
		c.changed(prev, nil, OriginProgrammatic)
		return true
	}
	c.activate(target, OriginProgrammatic)
	return true
}

// RestoreOnOpen reactivates the previously active item if it is still
// navigable, otherwise the first navigable item.
func (c *ActiveController) RestoreOnOpen(origin Origin) *Item {
	if c.previous != nil && c.previous.Navigable() && c.reg.Contains(c.previous) {
		c.activate(c.previous, origin)
		return c.active
	}
	c.First(origin)
	return c.active
}

// Clear deactivates the active item. The remembered position is kept.
func (c *ActiveController) Clear() {
	if c.active == nil {
		return
	}
	prev := c.active
	prev.setActive(false)
	c.active = nil
	c.changed(prev, nil, OriginProgrammatic)
}

// Forget drops the remembered position so the next open starts at the top.
func (c *ActiveController) Forget() {
	c.previous = nil
}

func (c *ActiveController) activate(item *Item, origin Origin) {
	prev := c.active
	if prev != nil && prev != item {
		prev.setActive(false)
	}
	item.setActive(true)
	item.tooltipOpen = c.keyboardDisclosure && origin == OriginKeyboard
	c.active = item
	c.previous = item
	c.lastIndex = c.reg.IndexOf(item)
	if prev != item {
		c.changed(prev, item, origin)
	}
}

func (c *ActiveController) changed(prev, next *Item, origin Origin) {
	if c.onChange != nil {
		c.onChange(prev, next, origin)
	}
}

func indexIn(items []*Item, item *Item) int {
	for i, it := range items {
		if it == item {
			return i
		}
	}
	return -1
}
