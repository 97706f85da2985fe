// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package listbox

import (
	"fmt"
)

// =============================================================================
// CHANGE NOTIFICATIONS
// =============================================================================

// ChangeKind identifies what changed in a collection.
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeRemoved
	ChangeLabel
	ChangeValue
	ChangeDisabled
	ChangeSelected
	ChangeHidden
	ChangeEditable
)

// String returns the change kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeLabel:
		return "label"
	case ChangeValue:
		return "value"
	case ChangeDisabled:
		return "disabled"
	case ChangeSelected:
		return "selected"
	case ChangeHidden:
		return "hidden"
	case ChangeEditable:
		return "editable"
	default:
		return "unknown"
	}
}

// Structural reports whether the change altered the collection's shape or
// which items navigation may land on.
func (k ChangeKind) Structural() bool {
	return k == ChangeAdded || k == ChangeRemoved || k == ChangeDisabled || k == ChangeHidden
}

// Change describes one mutation.
type Change struct {
	Kind ChangeKind
	Item *Item

	// Was holds the previous selected flag for ChangeSelected.
	Was bool

	// Index is the item's position: after insertion for ChangeAdded, before
	// removal for ChangeRemoved. Unused for attribute changes.
	Index int
}

// Observer receives change notifications synchronously.
type Observer func(Change)

// =============================================================================
// COLLECTION
// =============================================================================

// Collection is the ordered, consumer-owned sequence of items.
type Collection struct {
	items     []*Item
	observers map[int]Observer
	order     []int
	nextID    int
}

// NewCollection creates an empty collection, optionally seeded with items.
func NewCollection(items ...*Item) *Collection {
	c := &Collection{observers: make(map[int]Observer)}
	for _, it := range items {
		c.Append(it)
	}
	return c
}

// Items returns the items in order. The returned slice is a copy.
func (c *Collection) Items() []*Item {
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Collection) Len() int { return len(c.items) }

// At returns the item at index i, or nil when out of range.
func (c *Collection) At(i int) *Item {
	if i < 0 || i >= len(c.items) {
		return nil
	}
	return c.items[i]
}

// IndexOf returns the position of item, or -1.
func (c *Collection) IndexOf(item *Item) int {
	for i, it := range c.items {
		if it == item {
			return i
		}
	}
	return -1
}

// Append adds item at the end.
func (c *Collection) Append(item *Item) {
	c.Insert(len(c.items), item)
}

// Insert adds item at index i, clamped to the valid range. An item that
// already belongs to another collection is moved.
func (c *Collection) Insert(i int, item *Item) {
	if item == nil {
		return
	}
	if item.owner != nil {
		item.owner.Remove(item)
	}
	if i < 0 {
		i = 0
	}
	if i > len(c.items) {
		i = len(c.items)
	}
	c.items = append(c.items, nil)
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = item
	item.owner = c
	c.emit(Change{Kind: ChangeAdded, Item: item, Index: i})
}

// Remove detaches item from the collection.
func (c *Collection) Remove(item *Item) error {
	i := c.IndexOf(item)
	if i < 0 {
		return fmt.Errorf("remove %q: %w", item.Label(), ErrNotInCollection)
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	item.owner = nil
	item.setActive(false)
	c.emit(Change{Kind: ChangeRemoved, Item: item, Index: i})
	return nil
}

// Clear removes every item, last to first.
func (c *Collection) Clear() {
	for len(c.items) > 0 {
		_ = c.Remove(c.items[len(c.items)-1])
	}
}

// Subscribe registers an observer and returns a function that removes it.
// Observers run in subscription order.
func (c *Collection) Subscribe(obs Observer) (unsubscribe func()) {
	id := c.nextID
	c.nextID++
	c.observers[id] = obs
	c.order = append(c.order, id)
	return func() {
		delete(c.observers, id)
		for i, oid := range c.order {
			if oid == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
}

func (c *Collection) emit(ch Change) {
	// Observers may subscribe or unsubscribe while we iterate.
	ids := make([]int, len(c.order))
	copy(ids, c.order)
	for _, id := range ids {
		if obs, ok := c.observers[id]; ok {
			obs(ch)
		}
	}
}
