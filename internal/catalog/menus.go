// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"fmt"

	"github.com/jeranaias/rigrun-overlay/internal/listbox"
	"github.com/jeranaias/rigrun-overlay/internal/menu"
)

// MenuSet is the live menu forest built from a catalog.
type MenuSet struct {
	menus map[string]*menu.Menu
	order []string
	roots []string
	opts  []menu.Option

	// trigger applies to sub-menu items that name no trigger of their own.
	trigger menu.TriggerKind
}

// NewMenuSet returns an empty set whose sub-menus default to trigger.
// Call Apply to build the menus.
func NewMenuSet(trigger menu.TriggerKind, opts ...menu.Option) *MenuSet {
	return &MenuSet{menus: make(map[string]*menu.Menu), opts: opts, trigger: trigger}
}

// BuildMenus creates every menu in c and attaches the sub-menus. Options
// apply to every level; sub-menus then inherit from their parent.
func BuildMenus(c *Catalog, opts ...menu.Option) (*MenuSet, error) {
	s := NewMenuSet(menu.TriggerItem, opts...)
	if err := s.Apply(c); err != nil {
		return nil, err
	}
	return s, nil
}

// Menu returns the live menu named name, or nil.
func (s *MenuSet) Menu(name string) *menu.Menu { return s.menus[name] }

// Roots returns the top-level menus in catalog order.
func (s *MenuSet) Roots() []*menu.Menu {
	out := make([]*menu.Menu, 0, len(s.roots))
	for _, name := range s.roots {
		out = append(out, s.menus[name])
	}
	return out
}

// Names returns every menu name in catalog order.
func (s *MenuSet) Names() []string {
	return append([]string(nil), s.order...)
}

// Apply brings the live menus in line with c. Existing levels keep their
// identity, open state and active item; items are synced in place so the
// menus reconcile exactly as they would for any other consumer mutation.
// Menus dropped from the catalog are detached and closed.
func (s *MenuSet) Apply(c *Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}

	present := make(map[string]bool, len(c.Menus))
	order := make([]string, 0, len(c.Menus))
	for _, spec := range c.Menus {
		present[spec.Name] = true
		order = append(order, spec.Name)
		if s.menus[spec.Name] == nil {
			s.menus[spec.Name] = menu.New(spec.Name, s.opts...)
		}
	}
	for name, m := range s.menus {
		if present[name] {
			continue
		}
		if p := m.Parent(); p != nil {
			p.DetachSubmenu(m.ParentItem())
		}
		m.Close()
		delete(s.menus, name)
	}

	for _, spec := range c.Menus {
		m := s.menus[spec.Name]
		SyncItems(m.Items(), spec.Items)
		if err := s.linkSubmenus(m, spec); err != nil {
			return err
		}
	}

	s.order = order
	s.roots = c.Roots()
	for _, name := range s.roots {
		if m := s.menus[name]; m.Parent() != nil {
			m.Parent().DetachSubmenu(m.ParentItem())
		}
	}
	return nil
}

// linkSubmenus attaches, moves or detaches sub-menus so they match spec.
func (s *MenuSet) linkSubmenus(m *menu.Menu, spec MenuSpec) error {
	for _, is := range spec.Items {
		item := findItem(m.Items(), is.Key())
		if item == nil {
			continue
		}
		want := s.menus[is.Submenu]
		have := m.Submenu(item)
		if have == want {
			continue
		}
		if have != nil {
			m.DetachSubmenu(item)
		}
		if want == nil {
			continue
		}
		if p := want.Parent(); p != nil {
			p.DetachSubmenu(want.ParentItem())
		}
		trigger := s.trigger
		if is.Trigger != "" {
			trigger, _ = ParseTrigger(is.Trigger)
		}
		if err := m.AttachSubmenu(item, want, trigger); err != nil {
			return fmt.Errorf("%w: menu %q item %q: %w", ErrInvalidCatalog, m.Name(), item.Label(), err)
		}
	}
	return nil
}

// SyncStats counts the changes SyncItems made.
type SyncStats struct {
	Added   int
	Removed int
	Updated int
}

// Changed reports whether anything was touched.
func (s SyncStats) Changed() bool {
	return s.Added+s.Removed+s.Updated > 0
}

// SyncItems mutates coll to match specs. Items are matched by ItemSpec.Key.
// Matched items get the spec's label and disabled flag but keep their
// selection; new items are inserted at their catalog position with the
// spec's selection; items no spec names are removed. Matched items are not
// reordered.
func SyncItems(coll *listbox.Collection, specs []ItemSpec) SyncStats {
	var stats SyncStats

	want := make(map[string]bool, len(specs))
	for _, is := range specs {
		want[is.Key()] = true
	}
	for _, it := range coll.Items() {
		if !want[itemKey(it)] {
			if coll.Remove(it) == nil {
				stats.Removed++
			}
		}
	}

	for i, is := range specs {
		it := findItem(coll, is.Key())
		if it == nil {
			coll.Insert(i, is.NewItem())
			stats.Added++
			continue
		}
		updated := false
		if it.Label() != is.Label {
			it.SetLabel(is.Label)
			updated = true
		}
		if it.Disabled() != is.Disabled {
			it.SetDisabled(is.Disabled)
			updated = true
		}
		if updated {
			stats.Updated++
		}
	}
	return stats
}

func itemKey(it *listbox.Item) string {
	if it.Value() != "" {
		return it.Value()
	}
	return it.Label()
}

func findItem(coll *listbox.Collection, key string) *listbox.Item {
	for _, it := range coll.Items() {
		if itemKey(it) == key {
			return it
		}
	}
	return nil
}
