// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/rigrun-overlay/internal/config"
	"github.com/jeranaias/rigrun-overlay/internal/dropdown"
	"github.com/jeranaias/rigrun-overlay/internal/listbox"
	"github.com/jeranaias/rigrun-overlay/internal/menu"
)

// ErrInvalidCatalog is returned for catalogs that cannot be decoded or
// describe a malformed widget tree.
var ErrInvalidCatalog = errors.New("invalid catalog")

// =============================================================================
// CATALOG STRUCTURES
// =============================================================================

// Catalog describes the menus and dropdowns of the demo.
type Catalog struct {
	Menus     []MenuSpec     `toml:"menu"`
	Dropdowns []DropdownSpec `toml:"dropdown"`
}

// MenuSpec is one menu level. A menu no item references as a sub-menu is a
// top-level menu.
type MenuSpec struct {
	Name  string     `toml:"name"`
	Items []ItemSpec `toml:"item"`
}

// ItemSpec is one menu item or dropdown option.
type ItemSpec struct {
	Label    string `toml:"label"`
	Value    string `toml:"value,omitempty"`
	Disabled bool   `toml:"disabled,omitempty"`
	Selected bool   `toml:"selected,omitempty"`

	// Submenu names the menu this item opens. Menu items only.
	Submenu string `toml:"submenu,omitempty"`
	// Trigger is "item" (default) or "button".
	Trigger string `toml:"trigger,omitempty"`
}

// Key identifies the item across reloads: the value, or the label when the
// value is empty.
func (s ItemSpec) Key() string {
	if s.Value != "" {
		return s.Value
	}
	return s.Label
}

// NewItem creates a live item from the spec.
func (s ItemSpec) NewItem() *listbox.Item {
	it := listbox.NewItem(s.Label, s.Value)
	it.SetDisabled(s.Disabled)
	it.SetSelected(s.Selected)
	return it
}

// DropdownSpec is one dropdown. Unset settings fall back to the [dropdown]
// section of the config.
type DropdownSpec struct {
	Key         string     `toml:"key"`
	Label       string     `toml:"label"`
	Multiple    *bool      `toml:"multiple,omitempty"`
	SelectAll   *bool      `toml:"select_all,omitempty"`
	AllowAdd    *bool      `toml:"allow_add,omitempty"`
	Required    *bool      `toml:"required,omitempty"`
	FilterMode  string     `toml:"filter_mode,omitempty"`
	Placeholder string     `toml:"placeholder,omitempty"`
	MaxTags     *int       `toml:"max_tags,omitempty"`
	Options     []ItemSpec `toml:"option"`
}

// Settings resolves the spec against the configured defaults.
func (d DropdownSpec) Settings(defaults config.DropdownConfig) config.DropdownConfig {
	s := defaults
	if d.Multiple != nil {
		s.Multiple = *d.Multiple
	}
	if d.SelectAll != nil {
		s.SelectAll = *d.SelectAll
	}
	if d.AllowAdd != nil {
		s.AllowAdd = *d.AllowAdd
	}
	if d.Required != nil {
		s.Required = *d.Required
	}
	if d.FilterMode != "" {
		s.FilterMode = d.FilterMode
	}
	if d.Placeholder != "" {
		s.Placeholder = d.Placeholder
	}
	if d.MaxTags != nil {
		s.MaxTags = *d.MaxTags
	}
	return s
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a TOML catalog. Unknown keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys: %s", ErrInvalidCatalog, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Encode writes the catalog as TOML.
func (c *Catalog) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ParseTrigger parses an item's trigger kind. Empty means "item".
func ParseTrigger(raw string) (menu.TriggerKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "item":
		return menu.TriggerItem, nil
	case "button":
		return menu.TriggerButton, nil
	case "input":
		return menu.TriggerInput, listbox.ErrInputTrigger
	default:
		return menu.TriggerItem, fmt.Errorf("unknown trigger %q", raw)
	}
}

// Validate reports every problem in one error wrapping ErrInvalidCatalog.
func (c *Catalog) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	names := make(map[string]bool, len(c.Menus))
	for i, m := range c.Menus {
		switch {
		case m.Name == "":
			add("menu[%d]: name is required", i)
		case names[m.Name]:
			add("menu %q: defined twice", m.Name)
		}
		names[m.Name] = true
	}

	owner := make(map[string]string)
	for _, m := range c.Menus {
		seen := make(map[string]bool, len(m.Items))
		for j, it := range m.Items {
			if it.Label == "" {
				add("menu %q item[%d]: label is required", m.Name, j)
				continue
			}
			if seen[it.Key()] {
				add("menu %q item %q: duplicate", m.Name, it.Key())
			}
			seen[it.Key()] = true
			if _, err := ParseTrigger(it.Trigger); err != nil {
				add("menu %q item %q: %v", m.Name, it.Label, err)
			}
			if it.Submenu == "" {
				continue
			}
			switch {
			case !names[it.Submenu]:
				add("menu %q item %q: unknown submenu %q", m.Name, it.Label, it.Submenu)
			case owner[it.Submenu] != "":
				add("menu %q: attached to both %q and %q", it.Submenu, owner[it.Submenu], m.Name+"/"+it.Label)
			default:
				owner[it.Submenu] = m.Name + "/" + it.Label
			}
		}
	}
	for _, name := range c.cycles() {
		add("menu %q: %v", name, listbox.ErrSubmenuCycle)
	}

	keys := make(map[string]bool, len(c.Dropdowns))
	for i, d := range c.Dropdowns {
		switch {
		case d.Key == "":
			add("dropdown[%d]: key is required", i)
		case keys[d.Key]:
			add("dropdown %q: defined twice", d.Key)
		}
		keys[d.Key] = true
		switch strings.ToLower(d.FilterMode) {
		case "", "substring", "fuzzy":
		default:
			add("dropdown %q: invalid filter_mode %q", d.Key, d.FilterMode)
		}
		if d.MaxTags != nil && *d.MaxTags < 0 {
			add("dropdown %q: max_tags must be 0 or more", d.Key)
		}
		seen := make(map[string]bool, len(d.Options))
		for j, o := range d.Options {
			if o.Label == "" {
				add("dropdown %q option[%d]: label is required", d.Key, j)
				continue
			}
			if seen[o.Key()] {
				add("dropdown %q option %q: duplicate", d.Key, o.Key())
			}
			seen[o.Key()] = true
			if o.Submenu != "" || o.Trigger != "" {
				add("dropdown %q option %q: options cannot open sub-menus", d.Key, o.Label)
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(problems, "; "))
	}
	return nil
}

// cycles returns the menus that reach themselves through sub-menu links.
func (c *Catalog) cycles() []string {
	next := make(map[string][]string)
	for _, m := range c.Menus {
		for _, it := range m.Items {
			if it.Submenu != "" {
				next[m.Name] = append(next[m.Name], it.Submenu)
			}
		}
	}

	var found []string
	for _, m := range c.Menus {
		seen := map[string]bool{}
		stack := append([]string(nil), next[m.Name]...)
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if n == m.Name {
				found = append(found, m.Name)
				break
			}
			if seen[n] {
				continue
			}
			seen[n] = true
			stack = append(stack, next[n]...)
		}
	}
	return found
}

// Roots returns the names of the top-level menus in file order.
func (c *Catalog) Roots() []string {
	referenced := make(map[string]bool)
	for _, m := range c.Menus {
		for _, it := range m.Items {
			if it.Submenu != "" {
				referenced[it.Submenu] = true
			}
		}
	}
	var roots []string
	for _, m := range c.Menus {
		if !referenced[m.Name] {
			roots = append(roots, m.Name)
		}
	}
	return roots
}

// Menu returns the named menu spec.
func (c *Catalog) Menu(name string) (MenuSpec, bool) {
	for _, m := range c.Menus {
		if m.Name == name {
			return m, true
		}
	}
	return MenuSpec{}, false
}

// Dropdown returns the dropdown spec with key.
func (c *Catalog) Dropdown(key string) (DropdownSpec, bool) {
	for _, d := range c.Dropdowns {
		if d.Key == key {
			return d, true
		}
	}
	return DropdownSpec{}, false
}

// =============================================================================
// BUILDERS
// =============================================================================

// BuildDropdown creates a dropdown from spec. Extra options are applied
// after the catalog settings.
func BuildDropdown(spec DropdownSpec, defaults config.DropdownConfig, extra ...dropdown.Option) *dropdown.Dropdown {
	s := spec.Settings(defaults)
	opts := []dropdown.Option{dropdown.WithMatchMode(dropdown.ParseMatchMode(s.FilterMode))}
	if s.Multiple {
		opts = append(opts, dropdown.WithMultiple())
	}
	if s.SelectAll {
		opts = append(opts, dropdown.WithSelectAll())
	}
	if s.AllowAdd {
		opts = append(opts, dropdown.WithAdd(func(query string) *listbox.Item {
			return listbox.NewItem(query, query)
		}))
	}
	if s.Required {
		opts = append(opts, dropdown.WithRequired())
	}
	if s.MaxTags > 0 {
		opts = append(opts, dropdown.WithMaxTags(s.MaxTags))
	}
	items := make([]*listbox.Item, len(spec.Options))
	for i, o := range spec.Options {
		items[i] = o.NewItem()
	}
	opts = append(opts, dropdown.WithItems(items...))
	opts = append(opts, extra...)
	return dropdown.New(opts...)
}

// SyncDropdown applies a reloaded spec to a live dropdown: options are synced
// in place and the mode, requiredness, tag cap and matcher follow the spec.
// Select All and Add availability are fixed at construction.
func SyncDropdown(d *dropdown.Dropdown, spec DropdownSpec, defaults config.DropdownConfig) SyncStats {
	s := spec.Settings(defaults)
	stats := SyncItems(d.Items(), spec.Options)
	if d.Multiple() != s.Multiple {
		d.SetMultiple(s.Multiple)
	}
	d.SetRequired(s.Required)
	d.SetMaxTags(s.MaxTags)
	d.SetMatchMode(dropdown.ParseMatchMode(s.FilterMode))
	return stats
}
