// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dropdown implements the single/multi-select combobox: an overlay
// list whose committed value is derived from the selected flags of a
// consumer-owned item collection.
//
// The committed value and the items' selected flags are two sources of truth.
// Every write to either goes through the selection reconciler, which records
// what kind of change it is currently applying so that the notifications its
// own writes trigger do not re-enter it.
package dropdown

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jeranaias/rigrun-overlay/internal/keys"
	"github.com/jeranaias/rigrun-overlay/internal/listbox"
	"github.com/jeranaias/rigrun-overlay/internal/logging"
	"github.com/jeranaias/rigrun-overlay/internal/overflow"
	"github.com/jeranaias/rigrun-overlay/internal/panel"
)

// =============================================================================
// TYPES
// =============================================================================

// SelectAllState is the tri-state of the Select All pseudo-item.
type SelectAllState int

const (
	SelectAllOff SelectAllState = iota
	SelectAllOn
	SelectAllIndeterminate
)

// String returns the state name.
func (s SelectAllState) String() string {
	switch s {
	case SelectAllOn:
		return "on"
	case SelectAllIndeterminate:
		return "indeterminate"
	default:
		return "off"
	}
}

// ChangeFunc receives the committed value after it changes.
type ChangeFunc func(values []string)

// AddFunc builds the item for an accepted add request, or returns nil to
// decline. The dropdown appends the returned item and selects it.
type AddFunc func(query string) *listbox.Item

// Dropdown is a single/multi-select combobox.
type Dropdown struct {
	id string

	items  *listbox.Collection
	reg    *listbox.Registry
	nav    *listbox.Registry
	active *listbox.ActiveController
	keys   keys.KeyMap

	open     bool
	disabled bool
	required bool
	multiple bool
	invalid  bool

	// selection holds the selected items in the order they became selected.
	selection []*listbox.Item
	lastValue []string
	applying  applyMode

	selectAll        *listbox.Item
	selectAllEnabled bool
	selectAllState   SelectAllState

	addItem  *listbox.Item
	allowAdd bool
	addFunc  AddFunc

	query     string
	filter    FilterFunc
	matchMode MatchMode
	filterSeq uint64

	tags       *overflow.Accountant
	tagMeasure overflow.Measure
	tagWidth   int
	tagStyle   lipgloss.Style
	tagGap     int
	maxTags    int

	panel     panel.Service
	anchorRow int

	intents  listbox.Intents
	onChange []ChangeFunc
	log      *slog.Logger

	seed []*listbox.Item
}

// Option configures a Dropdown.
type Option func(*Dropdown)

// WithMultiple starts the dropdown in multi-select mode.
func WithMultiple() Option {
	return func(d *Dropdown) { d.multiple = true }
}

// WithSelectAll shows the Select All pseudo-item in multi-select mode.
func WithSelectAll() Option {
	return func(d *Dropdown) { d.selectAllEnabled = true }
}

// WithAdd shows the Add pseudo-item for queries no item matches exactly.
func WithAdd(fn AddFunc) Option {
	return func(d *Dropdown) {
		d.allowAdd = true
		d.addFunc = fn
	}
}

// WithRequired requires at least one selection for validity.
func WithRequired() Option {
	return func(d *Dropdown) { d.required = true }
}

// WithFilter installs the filter hook.
func WithFilter(fn FilterFunc) Option {
	return func(d *Dropdown) { d.filter = fn }
}

// WithMatchMode sets the built-in matcher.
func WithMatchMode(mode MatchMode) Option {
	return func(d *Dropdown) { d.matchMode = mode }
}

// WithTagLayout sets how selected tags are measured: the width available to
// the tag row, the style each tag renders with, and the gap between tags.
func WithTagLayout(width int, style lipgloss.Style, gap int) Option {
	return func(d *Dropdown) {
		d.tagWidth = width
		d.tagStyle = style
		d.tagGap = gap
	}
}

// WithMaxTags caps the number of visible tags regardless of width. Zero means
// no cap.
func WithMaxTags(n int) Option {
	return func(d *Dropdown) { d.maxTags = n }
}

// WithPanel sets the positioning service.
func WithPanel(p panel.Service) Option {
	return func(d *Dropdown) { d.panel = p }
}

// WithAnchorRow sets the trigger row the panel opens under.
func WithAnchorRow(row int) Option {
	return func(d *Dropdown) { d.anchorRow = row }
}

// WithKeyMap replaces the default bindings.
func WithKeyMap(km keys.KeyMap) Option {
	return func(d *Dropdown) { d.keys = km }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dropdown) { d.log = l }
}

// WithItems seeds the collection after the other options are applied. Items
// already flagged selected are reconciled as if selected in order.
func WithItems(items ...*listbox.Item) Option {
	return func(d *Dropdown) { d.seed = append(d.seed, items...) }
}

// New creates a closed dropdown.
func New(opts ...Option) *Dropdown {
	d := &Dropdown{
		id:        uuid.NewString(),
		items:     listbox.NewCollection(),
		keys:      keys.ComboboxKeyMap(),
		selectAll: listbox.NewItem("Select all", ""),
		addItem:   listbox.NewItem("", ""),
		tagStyle:  lipgloss.NewStyle().Padding(0, 1),
		tagGap:    1,
		panel:     panel.Noop{},
		log:       logging.Discard(),
	}
	d.reg = listbox.NewRegistry(d.items.Items)
	d.nav = listbox.NewRegistry(d.navItems)
	d.active = listbox.NewActiveController(d.nav)
	d.tags = overflow.New(nil)
	d.items.Subscribe(d.itemsChanged)

	for _, opt := range opts {
		opt(d)
	}
	for _, it := range d.seed {
		d.items.Append(it)
	}
	d.seed = nil
	d.refreshPseudoItems()
	d.recomputeSelectAll()
	d.resetTags()
	return d
}

// navItems is the sequence navigation runs over: Select All, the real items,
// then Add. Pseudo-items are hidden when not offered.
func (d *Dropdown) navItems() []*listbox.Item {
	all := make([]*listbox.Item, 0, d.items.Len()+2)
	all = append(all, d.selectAll)
	all = append(all, d.items.Items()...)
	return append(all, d.addItem)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ID is the panel id used with the positioning service.
func (d *Dropdown) ID() string { return d.id }

// Items is the consumer-owned collection.
func (d *Dropdown) Items() *listbox.Collection { return d.items }

// Registry enumerates the real items.
func (d *Dropdown) Registry() *listbox.Registry { return d.reg }

// NavItems returns the sequence the panel lists, pseudo-items included.
// Hidden entries are included; callers skip them when rendering.
func (d *Dropdown) NavItems() []*listbox.Item { return d.nav.AllItems() }

// Active returns the active item, which may be a pseudo-item.
func (d *Dropdown) Active() *listbox.Item { return d.active.Active() }

// ActiveDescendantID mirrors the active item's id, or "".
func (d *Dropdown) ActiveDescendantID() string { return d.active.ActiveDescendantID() }

// KeyMap returns the bindings.
func (d *Dropdown) KeyMap() keys.KeyMap { return d.keys }

// SelectAllItem returns the Select All pseudo-item.
func (d *Dropdown) SelectAllItem() *listbox.Item { return d.selectAll }

// AddItemEntry returns the Add pseudo-item.
func (d *Dropdown) AddItemEntry() *listbox.Item { return d.addItem }

// IsPseudo reports whether item is one of the dropdown's own pseudo-items.
func (d *Dropdown) IsPseudo(item *listbox.Item) bool {
	return item == d.selectAll || item == d.addItem
}

// Multiple reports whether multi-select is on.
func (d *Dropdown) Multiple() bool { return d.multiple }

// Required reports whether a selection is required.
func (d *Dropdown) Required() bool { return d.required }

// SetRequired sets the required flag.
func (d *Dropdown) SetRequired(required bool) {
	d.required = required
	if !required {
		d.invalid = false
	}
}

// Disabled reports whether the dropdown is disabled.
func (d *Dropdown) Disabled() bool { return d.disabled }

// SetDisabled disables the dropdown. Disabling an open dropdown closes it.
func (d *Dropdown) SetDisabled(disabled bool) {
	d.disabled = disabled
	if disabled && d.open {
		d.Close()
	}
}

// OnIntent registers a listener for open, close, select and add intents.
func (d *Dropdown) OnIntent(l listbox.IntentListener) { d.intents.Listen(l) }

// OnChange registers a callback for committed value changes.
func (d *Dropdown) OnChange(fn ChangeFunc) {
	if fn != nil {
		d.onChange = append(d.onChange, fn)
	}
}

// String describes the dropdown for logs.
func (d *Dropdown) String() string {
	return fmt.Sprintf("dropdown(%s, multiple=%t, items=%d, selected=%d)",
		d.id[:8], d.multiple, d.items.Len(), len(d.selection))
}

// =============================================================================
// COLLECTION OBSERVER
// =============================================================================

// itemsChanged routes collection notifications to the reconcilers.
func (d *Dropdown) itemsChanged(c listbox.Change) {
	switch c.Kind {
	case listbox.ChangeSelected:
		d.selectionChanged(c.Item)
		return

	case listbox.ChangeAdded:
		if c.Item.Selected() {
			d.selectionChanged(c.Item)
		}

	case listbox.ChangeRemoved:
		if d.dropFromSelection(c.Item) {
			d.afterSelection()
		}

	case listbox.ChangeDisabled:
		d.recomputeSelectAll()
		if c.Item.Selected() {
			d.resetTags()
			d.emitIfChanged()
		}

	case listbox.ChangeValue:
		if c.Item.Selected() {
			d.emitIfChanged()
		}

	case listbox.ChangeLabel:
		if c.Item.Selected() {
			d.resizeTags()
		}
	}

	if c.Kind.Structural() {
		d.refreshPseudoItems()
		d.recomputeSelectAll()
		if d.active.Reconcile() {
			d.log.Debug("dropdown active item reconciled", "change", c.Kind.String(), "active", d.ActiveDescendantID())
		}
	}
}
