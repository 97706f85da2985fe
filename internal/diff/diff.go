// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"fmt"
	"strings"

	"github.com/jeranaias/rigrun-overlay/internal/catalog"
)

// =============================================================================
// CHANGE TYPES
// =============================================================================

// ChangeType represents the type of a catalog change.
type ChangeType int

const (
	// ChangeAdded is a menu, dropdown or item only the new catalog has
	ChangeAdded ChangeType = iota
	// ChangeRemoved is one only the old catalog has
	ChangeRemoved
	// ChangeModified is one both have with different settings
	ChangeModified
)

// String returns the string representation of a change type.
func (t ChangeType) String() string {
	switch t {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	default:
		return "unknown"
	}
}

// MarshalText encodes the type by name.
func (t ChangeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Prefix returns the marker printed before a change of this type.
func (t ChangeType) Prefix() string {
	switch t {
	case ChangeAdded:
		return "+"
	case ChangeRemoved:
		return "-"
	case ChangeModified:
		return "~"
	default:
		return " "
	}
}

// =============================================================================
// CHANGE
// =============================================================================

// Change is one difference between two catalogs.
type Change struct {
	Type   ChangeType `json:"type"`
	Kind   string     `json:"kind"`             // "menu", "item", "dropdown" or "option"
	Parent string     `json:"parent,omitempty"` // menu name or dropdown key of an item or option
	Key    string     `json:"key"`              // name, key, or item key (value, else label)
	Detail string     `json:"detail,omitempty"` // what changed, for ChangeModified
}

// Path returns Parent/Key, or Key for menus and dropdowns.
func (c Change) Path() string {
	if c.Parent == "" {
		return c.Key
	}
	return c.Parent + "/" + c.Key
}

// Stats counts changes by type.
type Stats struct {
	Additions     int `json:"additions"`
	Deletions     int `json:"deletions"`
	Modifications int `json:"modifications"`
}

// Diff is the difference between two catalogs, in new-catalog order with
// removals after the entries that remain.
type Diff struct {
	Changes []Change `json:"changes"`
	Stats   Stats    `json:"stats"`
}

// Empty reports whether the catalogs describe the same widgets.
func (d *Diff) Empty() bool { return len(d.Changes) == 0 }

func (d *Diff) add(c Change) {
	d.Changes = append(d.Changes, c)
	switch c.Type {
	case ChangeAdded:
		d.Stats.Additions++
	case ChangeRemoved:
		d.Stats.Deletions++
	case ChangeModified:
		d.Stats.Modifications++
	}
}

// =============================================================================
// DIFF COMPUTATION
// =============================================================================

// Catalogs compares old and new. A nil catalog is treated as empty.
func Catalogs(old, new *catalog.Catalog) *Diff {
	if old == nil {
		old = &catalog.Catalog{}
	}
	if new == nil {
		new = &catalog.Catalog{}
	}
	d := &Diff{}

	oldMenus := make(map[string]catalog.MenuSpec, len(old.Menus))
	for _, m := range old.Menus {
		oldMenus[m.Name] = m
	}
	for _, m := range new.Menus {
		prev, ok := oldMenus[m.Name]
		if !ok {
			d.add(Change{Type: ChangeAdded, Kind: "menu", Key: m.Name})
			continue
		}
		delete(oldMenus, m.Name)
		d.items("item", m.Name, prev.Items, m.Items)
	}
	for _, m := range old.Menus {
		if _, gone := oldMenus[m.Name]; gone {
			d.add(Change{Type: ChangeRemoved, Kind: "menu", Key: m.Name})
		}
	}

	oldDropdowns := make(map[string]catalog.DropdownSpec, len(old.Dropdowns))
	for _, dd := range old.Dropdowns {
		oldDropdowns[dd.Key] = dd
	}
	for _, dd := range new.Dropdowns {
		prev, ok := oldDropdowns[dd.Key]
		if !ok {
			d.add(Change{Type: ChangeAdded, Kind: "dropdown", Key: dd.Key})
			continue
		}
		delete(oldDropdowns, dd.Key)
		if detail := dropdownChanges(prev, dd); detail != "" {
			d.add(Change{Type: ChangeModified, Kind: "dropdown", Key: dd.Key, Detail: detail})
		}
		d.items("option", dd.Key, prev.Options, dd.Options)
	}
	for _, dd := range old.Dropdowns {
		if _, gone := oldDropdowns[dd.Key]; gone {
			d.add(Change{Type: ChangeRemoved, Kind: "dropdown", Key: dd.Key})
		}
	}
	return d
}

// items compares the items of one menu or dropdown by item key, the way a
// reload matches live items.
func (d *Diff) items(kind, parent string, old, new []catalog.ItemSpec) {
	prev := make(map[string]catalog.ItemSpec, len(old))
	for _, it := range old {
		prev[it.Key()] = it
	}
	for _, it := range new {
		was, ok := prev[it.Key()]
		if !ok {
			d.add(Change{Type: ChangeAdded, Kind: kind, Parent: parent, Key: it.Key()})
			continue
		}
		delete(prev, it.Key())
		if detail := itemChanges(was, it); detail != "" {
			d.add(Change{Type: ChangeModified, Kind: kind, Parent: parent, Key: it.Key(), Detail: detail})
		}
	}
	for _, it := range old {
		if _, gone := prev[it.Key()]; gone {
			d.add(Change{Type: ChangeRemoved, Kind: kind, Parent: parent, Key: it.Key()})
		}
	}
}

func itemChanges(old, new catalog.ItemSpec) string {
	var parts []string
	parts = field(parts, "label", old.Label, new.Label)
	parts = field(parts, "disabled", old.Disabled, new.Disabled)
	parts = field(parts, "selected", old.Selected, new.Selected)
	parts = field(parts, "submenu", old.Submenu, new.Submenu)
	parts = field(parts, "trigger", old.Trigger, new.Trigger)
	return strings.Join(parts, ", ")
}

func dropdownChanges(old, new catalog.DropdownSpec) string {
	var parts []string
	parts = field(parts, "label", old.Label, new.Label)
	parts = field(parts, "multiple", deref(old.Multiple), deref(new.Multiple))
	parts = field(parts, "select_all", deref(old.SelectAll), deref(new.SelectAll))
	parts = field(parts, "allow_add", deref(old.AllowAdd), deref(new.AllowAdd))
	parts = field(parts, "required", deref(old.Required), deref(new.Required))
	parts = field(parts, "filter_mode", old.FilterMode, new.FilterMode)
	parts = field(parts, "placeholder", old.Placeholder, new.Placeholder)
	parts = field(parts, "max_tags", deref(old.MaxTags), deref(new.MaxTags))
	return strings.Join(parts, ", ")
}

func field[T comparable](parts []string, name string, old, new T) []string {
	if old == new {
		return parts
	}
	return append(parts, fmt.Sprintf("%s %v -> %v", name, old, new))
}

// deref renders an unset catalog setting as "default".
func deref[T any](p *T) string {
	if p == nil {
		return "default"
	}
	return fmt.Sprint(*p)
}

// =============================================================================
// FORMATTING
// =============================================================================

// Format returns one line per change, e.g. "~ option fruit/banana: label
// Banana -> Bananas".
func Format(d *Diff) string {
	var sb strings.Builder
	for _, c := range d.Changes {
		fmt.Fprintf(&sb, "%s %s %s", c.Type.Prefix(), c.Kind, c.Path())
		if c.Detail != "" {
			sb.WriteString(": " + c.Detail)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Summary returns a short count of the changes.
func (d *Diff) Summary() string {
	if d.Empty() {
		return "No changes"
	}
	var parts []string
	if d.Stats.Additions > 0 {
		parts = append(parts, fmt.Sprintf("+%d", d.Stats.Additions))
	}
	if d.Stats.Deletions > 0 {
		parts = append(parts, fmt.Sprintf("-%d", d.Stats.Deletions))
	}
	if d.Stats.Modifications > 0 {
		parts = append(parts, fmt.Sprintf("~%d", d.Stats.Modifications))
	}
	return strings.Join(parts, " ")
}
