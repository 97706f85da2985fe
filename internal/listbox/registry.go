// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package listbox

// =============================================================================
// REGISTRY
// =============================================================================

// Source enumerates the items a widget level operates over, in order.
type Source func() []*Item

// Registry derives the ordered views navigation works on. Every call
// re-enumerates the source; item counts are small and results must reflect
// the latest mutation.
type Registry struct {
	source Source
}

// NewRegistry creates a registry over source.
func NewRegistry(source Source) *Registry {
	return &Registry{source: source}
}

// AllItems returns every item, including hidden and disabled ones.
func (r *Registry) AllItems() []*Item {
	if r.source == nil {
		return nil
	}
	return r.source()
}

// VisibleEnabledItems returns the items navigation may land on.
func (r *Registry) VisibleEnabledItems() []*Item {
	all := r.AllItems()
	out := make([]*Item, 0, len(all))
	for _, it := range all {
		if it.Navigable() {
			out = append(out, it)
		}
	}
	return out
}

// FirstEnabled returns the first navigable item, or nil.
func (r *Registry) FirstEnabled() *Item {
	for _, it := range r.AllItems() {
		if it.Navigable() {
			return it
		}
	}
	return nil
}

// LastEnabled returns the last navigable item, or nil.
func (r *Registry) LastEnabled() *Item {
	all := r.AllItems()
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Navigable() {
			return all[i]
		}
	}
	return nil
}

// IndexOf returns item's position in AllItems, or -1.
func (r *Registry) IndexOf(item *Item) int {
	if item == nil {
		return -1
	}
	for i, it := range r.AllItems() {
		if it == item {
			return i
		}
	}
	return -1
}

// Contains reports whether item is currently enumerated.
func (r *Registry) Contains(item *Item) bool {
	return r.IndexOf(item) >= 0
}

// Empty reports whether there are no items at all.
func (r *Registry) Empty() bool {
	return len(r.AllItems()) == 0
}

// HasEnabled reports whether any item is navigable.
func (r *Registry) HasEnabled() bool {
	return r.FirstEnabled() != nil
}
