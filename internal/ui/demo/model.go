// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package demo is the interactive terminal demo: a menu bar and a column of
// dropdowns built from the catalog, kept in step with the catalog file and
// with their selections saved between runs.
package demo

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigrun-overlay/internal/catalog"
	"github.com/jeranaias/rigrun-overlay/internal/config"
	"github.com/jeranaias/rigrun-overlay/internal/dropdown"
	"github.com/jeranaias/rigrun-overlay/internal/keys"
	"github.com/jeranaias/rigrun-overlay/internal/logging"
	"github.com/jeranaias/rigrun-overlay/internal/menu"
	"github.com/jeranaias/rigrun-overlay/internal/panel"
	"github.com/jeranaias/rigrun-overlay/internal/storage"
	"github.com/jeranaias/rigrun-overlay/internal/ui/components"
	"github.com/jeranaias/rigrun-overlay/internal/ui/styles"
)

// QuitValue is the menu item value that ends the demo.
const QuitValue = "file.quit"

// =============================================================================
// MODEL
// =============================================================================

// Options configures the demo. Store and Watcher are optional.
type Options struct {
	Context context.Context
	Config  *config.Config
	Catalog *catalog.Catalog
	Store   *storage.SelectionStore
	Watcher *catalog.Watcher
	Theme   *styles.Theme
	Logger  *slog.Logger
}

// field is one dropdown row.
type field struct {
	key  string
	view *components.DropdownView
}

// Model is the Bubble Tea model of the demo.
type Model struct {
	ctx   context.Context
	cfg   *config.Config
	theme *styles.Theme
	log   *slog.Logger
	keys  KeyMap

	// focus is 0 for the menu bar and i+1 for fields[i].
	focus  int
	fields []*field

	cat   *catalog.Catalog
	menus *catalog.MenuSet
	bar   *components.MenuView

	saver   *saver
	changes *changeQueue
	watcher *catalog.Watcher

	status  *components.StatusBar
	toasts  *components.ToastManager
	ticking bool

	width    int
	height   int
	quitting bool
}

// New builds the menus and dropdowns of opts.Catalog.
func New(opts Options) (Model, error) {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme(opts.Config.UI.Theme)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Get()
	}

	stack := panel.NewStack()
	stack.Gap = 1
	trigger, err := catalog.ParseTrigger(opts.Config.Menu.SubmenuTrigger)
	if err != nil {
		return Model{}, fmt.Errorf("menu.submenu_trigger: %w", err)
	}
	menus := catalog.NewMenuSet(trigger,
		menu.WithPanel(stack),
		menu.WithLogger(opts.Logger),
	)
	if err := menus.Apply(opts.Catalog); err != nil {
		return Model{}, err
	}

	bar := components.NewMenuView(stack, opts.Theme)
	bar.SetRoots(menus.Roots())
	bar.SetPanelWidth(opts.Config.UI.PanelWidth)
	bar.SetTooltips(opts.Config.Menu.KeyboardTooltips)
	bar.Focus()

	m := Model{
		ctx:     opts.Context,
		cfg:     opts.Config,
		theme:   opts.Theme,
		log:     opts.Logger,
		keys:    DefaultKeyMap(),
		cat:     opts.Catalog,
		menus:   menus,
		bar:     bar,
		changes: &changeQueue{},
		watcher: opts.Watcher,
		status:  components.NewStatusBar(opts.Theme),
		toasts:  components.NewToastManager(),
		width:   80,
		height:  24,
	}
	if opts.Store != nil {
		m.saver = newSaver(opts.Store)
	}
	for _, spec := range opts.Catalog.Dropdowns {
		m.fields = append(m.fields, m.newField(spec))
	}
	m.refreshStatus()
	return m, nil
}

// newField builds the dropdown of spec and its view.
func (m Model) newField(spec catalog.DropdownSpec) *field {
	settings := spec.Settings(m.cfg.Dropdown)
	key := spec.Key

	d := catalog.BuildDropdown(spec, m.cfg.Dropdown,
		dropdown.WithKeyMap(keys.ComboboxKeyMap()),
		dropdown.WithTagLayout(0, m.theme.Tag, 1),
		dropdown.WithLogger(m.log.With("dropdown", key)),
	)
	q := m.changes
	d.OnChange(func(values []string) {
		q.push(change{key: key, values: values, multiple: d.Multiple()})
	})

	v := components.NewDropdownView(d, fieldLabel(spec), m.theme)
	v.SetPlaceholder(settings.Placeholder)
	v.SetContext(m.ctx)
	v.SetSize(m.cfg.UI.PanelWidth, m.cfg.UI.PanelHeight)
	return &field{key: key, view: v}
}

func fieldLabel(spec catalog.DropdownSpec) string {
	if spec.Label != "" {
		return spec.Label
	}
	return spec.Key
}

// Init restores saved selections and starts watching the catalog.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.saver != nil {
		cmds = append(cmds, m.saver.restoreCmd(m.ctx, m.fieldKeys()))
	}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Next())
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Menus returns the live menu forest.
func (m Model) Menus() *catalog.MenuSet { return m.menus }

// MenuBar returns the menu bar view.
func (m Model) MenuBar() *components.MenuView { return m.bar }

// Dropdown returns the dropdown with key, or nil.
func (m Model) Dropdown(key string) *dropdown.Dropdown {
	if f := m.field(key); f != nil {
		return f.view.Dropdown()
	}
	return nil
}

// FieldKeys returns the dropdown keys in display order.
func (m Model) FieldKeys() []string { return m.fieldKeys() }

// Focus returns 0 when the menu bar has focus, or the 1-based field index.
func (m Model) Focus() int { return m.focus }

// Toasts returns the visible toasts.
func (m Model) Toasts() []components.Toast { return m.toasts.Toasts() }

// Quitting reports whether the demo is shutting down.
func (m Model) Quitting() bool { return m.quitting }

func (m Model) fieldKeys() []string {
	out := make([]string, len(m.fields))
	for i, f := range m.fields {
		out[i] = f.key
	}
	return out
}

func (m Model) field(key string) *field {
	for _, f := range m.fields {
		if f.key == key {
			return f
		}
	}
	return nil
}

// focusedField returns the field with focus, or nil when the bar has it.
func (m Model) focusedField() *field {
	if m.focus == 0 || m.focus > len(m.fields) {
		return nil
	}
	return m.fields[m.focus-1]
}

// refreshStatus describes the focused widget in the status bar.
func (m *Model) refreshStatus() {
	m.status.SetWidth(m.width)
	if f := m.focusedField(); f != nil {
		d := f.view.Dropdown()
		m.status.SetContext(fmt.Sprintf("%s: %s", f.view.Label(), describeValue(d.Value())))
		m.status.SetKeyMap(helpKeys{widget: d.KeyMap(), app: m.keys})
		return
	}
	m.status.SetContext("Menu: " + m.bar.Path())
	km := keys.DefaultKeyMap()
	if cur := m.bar.Current(); cur != nil {
		km = cur.KeyMap()
	}
	m.status.SetKeyMap(helpKeys{widget: km, app: m.keys})
}

func describeValue(values []string) string {
	switch len(values) {
	case 0:
		return "(none)"
	case 1:
		return values[0]
	default:
		return fmt.Sprintf("%s +%d", values[0], len(values)-1)
	}
}
