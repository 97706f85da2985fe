// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package menu implements the hierarchical action menu: a tree of Menu
// levels, each with its own items and active item, where at most one child
// per level is open at a time.
//
// Cascade operations travel down the tree through direct calls. Keys travel
// the other way: a level whose sub-menu is open forwards navigation keys to
// that sub-menu and only learns, through the event's default-prevented flag,
// whether something below consumed it.
package menu

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jeranaias/rigrun-overlay/internal/keys"
	"github.com/jeranaias/rigrun-overlay/internal/listbox"
	"github.com/jeranaias/rigrun-overlay/internal/logging"
	"github.com/jeranaias/rigrun-overlay/internal/panel"
)

// =============================================================================
// TYPES
// =============================================================================

// State is the open/close state of one level.
type State int

const (
	Closed State = iota
	OpenNoSubmenuOpen
	OpenOneSubmenuOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case OpenNoSubmenuOpen:
		return "open"
	case OpenOneSubmenuOpen:
		return "open-submenu"
	default:
		return "closed"
	}
}

// TriggerKind is the kind of control a sub-menu is anchored to.
type TriggerKind int

const (
	TriggerItem TriggerKind = iota
	TriggerButton
	// TriggerInput is rejected: an input control consumes the arrow keys the
	// cascade needs.
	TriggerInput
)

// SelectFunc is called after an item without a sub-menu is committed.
type SelectFunc func(m *Menu, item *listbox.Item)

// Menu is one level of a menu tree.
type Menu struct {
	id   string
	name string

	items  *listbox.Collection
	reg    *listbox.Registry
	active *listbox.ActiveController
	keys   keys.KeyMap

	open     bool
	disabled bool
	loading  bool

	parent     *Menu
	parentItem *listbox.Item
	submenus   map[*listbox.Item]*Menu
	openChild  *Menu

	panel     panel.Service
	anchorRow int

	intents  listbox.Intents
	onSelect []SelectFunc
	log      *slog.Logger
}

// Option configures a Menu.
type Option func(*Menu)

// WithPanel sets the positioning service. Sub-menus inherit it on attach.
func WithPanel(p panel.Service) Option {
	return func(m *Menu) { m.panel = p }
}

// WithLogger sets the logger. Sub-menus inherit it on attach.
func WithLogger(l *slog.Logger) Option {
	return func(m *Menu) { m.log = l }
}

// WithKeyMap replaces the default bindings. Sub-menus inherit it on attach.
func WithKeyMap(km keys.KeyMap) Option {
	return func(m *Menu) { m.keys = km }
}

// WithAnchorRow sets the trigger row a top-level menu opens under.
func WithAnchorRow(row int) Option {
	return func(m *Menu) { m.anchorRow = row }
}

// WithItems seeds the menu with items.
func WithItems(items ...*listbox.Item) Option {
	return func(m *Menu) {
		for _, it := range items {
			m.items.Append(it)
		}
	}
}

// New creates a closed menu level.
func New(name string, opts ...Option) *Menu {
	m := &Menu{
		id:       uuid.NewString(),
		name:     name,
		items:    listbox.NewCollection(),
		keys:     keys.DefaultKeyMap(),
		submenus: make(map[*listbox.Item]*Menu),
		panel:    panel.Noop{},
		log:      logging.Discard(),
	}
	m.reg = listbox.NewRegistry(m.items.Items)
	m.active = listbox.NewActiveController(m.reg, listbox.WithKeyboardDisclosure())
	m.items.Subscribe(m.itemsChanged)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ID is the panel id used with the positioning service.
func (m *Menu) ID() string { return m.id }

// Name is the menu's display name.
func (m *Menu) Name() string { return m.name }

// Items is the level's item collection.
func (m *Menu) Items() *listbox.Collection { return m.items }

// Registry is the level's item registry.
func (m *Menu) Registry() *listbox.Registry { return m.reg }

// Active returns the active item of this level.
func (m *Menu) Active() *listbox.Item { return m.active.Active() }

// ActiveDescendantID mirrors the active item's id, or "".
func (m *Menu) ActiveDescendantID() string { return m.active.ActiveDescendantID() }

// KeyMap returns the level's bindings.
func (m *Menu) KeyMap() keys.KeyMap { return m.keys }

// OnIntent registers a listener for open, close and select intents raised by
// this level or any level below it.
func (m *Menu) OnIntent(l listbox.IntentListener) { m.intents.Listen(l) }

// OnSelect registers a callback for commits at this level or below.
func (m *Menu) OnSelect(fn SelectFunc) {
	if fn != nil {
		m.onSelect = append(m.onSelect, fn)
	}
}

// =============================================================================
// TREE
// =============================================================================

// AttachSubmenu makes sub the sub-menu of item. Malformed trees are rejected
// here rather than misbehaving later.
func (m *Menu) AttachSubmenu(item *listbox.Item, sub *Menu, trigger TriggerKind) error {
	const op = "attach submenu"
	switch {
	case trigger == TriggerInput:
		return listbox.NewConfigError(op, fmt.Errorf("%s on %q: %w", sub.name, item.Label(), listbox.ErrInputTrigger))
	case m.items.IndexOf(item) < 0:
		return listbox.NewConfigError(op, fmt.Errorf("%q: %w", item.Label(), listbox.ErrNotInCollection))
	case m.submenus[item] != nil:
		return listbox.NewConfigError(op, fmt.Errorf("item %q: %w", item.Label(), listbox.ErrAlreadyAttached))
	case sub.parent != nil:
		return listbox.NewConfigError(op, fmt.Errorf("menu %s: %w", sub.name, listbox.ErrAlreadyAttached))
	case sub == m || sub.isAncestorOf(m):
		return listbox.NewConfigError(op, fmt.Errorf("menu %s: %w", sub.name, listbox.ErrSubmenuCycle))
	}

	sub.parent = m
	sub.parentItem = item
	sub.inherit(m)
	m.submenus[item] = sub
	return nil
}

// DetachSubmenu removes item's sub-menu, closing it first.
func (m *Menu) DetachSubmenu(item *listbox.Item) *Menu {
	sub := m.submenus[item]
	if sub == nil {
		return nil
	}
	sub.forceClose()
	delete(m.submenus, item)
	sub.parent = nil
	sub.parentItem = nil
	return sub
}

// Submenu returns item's sub-menu, or nil.
func (m *Menu) Submenu(item *listbox.Item) *Menu {
	if item == nil {
		return nil
	}
	return m.submenus[item]
}

// HasSubmenu reports whether item owns a sub-menu.
func (m *Menu) HasSubmenu(item *listbox.Item) bool {
	return m.Submenu(item) != nil
}

// Parent returns the parent level, or nil for the top level.
func (m *Menu) Parent() *Menu { return m.parent }

// ParentItem returns the item this level is anchored to, or nil.
func (m *Menu) ParentItem() *listbox.Item { return m.parentItem }

// Root returns the top-level menu.
func (m *Menu) Root() *Menu {
	r := m
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Depth is 0 for the top level.
func (m *Menu) Depth() int {
	d := 0
	for p := m.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// OpenChild returns the open sub-menu of this level, or nil.
func (m *Menu) OpenChild() *Menu { return m.openChild }

// Deepest returns the innermost open level, or m when nothing below is open.
func (m *Menu) Deepest() *Menu {
	d := m
	for d.openChild != nil {
		d = d.openChild
	}
	return d
}

// OpenPath returns the open levels from m down to the deepest one. Empty when
// m is closed.
func (m *Menu) OpenPath() []*Menu {
	if !m.open {
		return nil
	}
	var path []*Menu
	for l := m; l != nil; l = l.openChild {
		path = append(path, l)
	}
	return path
}

// Contains reports whether target is m or any level below it, open or not.
func (m *Menu) Contains(target *Menu) bool {
	if target == nil {
		return false
	}
	for l := target; l != nil; l = l.parent {
		if l == m {
			return true
		}
	}
	return false
}

func (m *Menu) isAncestorOf(other *Menu) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == m {
			return true
		}
	}
	return false
}

func (m *Menu) inherit(parent *Menu) {
	m.panel = parent.panel
	m.log = parent.log
	m.keys = parent.keys
	for _, sub := range m.submenus {
		sub.inherit(m)
	}
}

// itemsChanged keeps the level consistent when the consumer mutates items.
func (m *Menu) itemsChanged(c listbox.Change) {
	switch c.Kind {
	case listbox.ChangeRemoved:
		if m.submenus[c.Item] != nil {
			m.DetachSubmenu(c.Item)
		}
	case listbox.ChangeDisabled, listbox.ChangeHidden:
		if sub := m.submenus[c.Item]; sub != nil && !c.Item.Navigable() && sub.open {
			sub.forceClose()
		}
	}
	if c.Kind.Structural() && m.active.Reconcile() {
		m.log.Debug("menu active item reconciled", "menu", m.name, "change", c.Kind.String(), "active", m.ActiveDescendantID())
	}
}
