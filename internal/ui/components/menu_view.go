// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-overlay/internal/keys"
	"github.com/jeranaias/rigrun-overlay/internal/listbox"
	"github.com/jeranaias/rigrun-overlay/internal/menu"
	"github.com/jeranaias/rigrun-overlay/internal/panel"
	"github.com/jeranaias/rigrun-overlay/internal/ui/styles"
	"github.com/jeranaias/rigrun-overlay/internal/util"
)

// =============================================================================
// MENU VIEW
// =============================================================================

// MenuView renders a menu bar over a set of top-level menus and the cascade
// of open panels below it. Left and right arrows that no open level consumes
// move along the bar.
type MenuView struct {
	roots []*menu.Menu
	stack *panel.Stack
	theme *styles.Theme

	spinner LoadingSpinner

	focus      int
	focused    bool
	width      int
	panelWidth int
	tooltips   bool

	hooked  map[*menu.Menu]bool
	commits []MenuCommitMsg
}

// NewMenuView creates a view that lays panels out with stack. The menus must
// have been built with menu.WithPanel(stack).
func NewMenuView(stack *panel.Stack, theme *styles.Theme) *MenuView {
	return &MenuView{
		stack:      stack,
		theme:      theme,
		spinner:    NewLoadingSpinner(theme),
		width:      80,
		panelWidth: 28,
		tooltips:   true,
		hooked:     make(map[*menu.Menu]bool),
	}
}

// SetRoots replaces the menus shown in the bar. The focused index is kept
// when it is still in range.
func (v *MenuView) SetRoots(roots []*menu.Menu) {
	v.roots = roots
	if v.focus >= len(roots) {
		v.focus = 0
	}
	for _, r := range roots {
		if v.hooked[r] {
			continue
		}
		v.hooked[r] = true
		root := r
		root.OnSelect(func(m *menu.Menu, item *listbox.Item) {
			// A former root that became a sub-menu is reported by its new root.
			if root.Parent() != nil {
				return
			}
			v.commits = append(v.commits, MenuCommitMsg{
				Menu:  m.Name(),
				Label: item.Label(),
				Value: item.Value(),
			})
		})
	}
}

// Roots returns the menus in the bar.
func (v *MenuView) Roots() []*menu.Menu { return v.roots }

// SetWidth sets the bar width.
func (v *MenuView) SetWidth(width int) { v.width = width }

// SetPanelWidth sets the width of every panel.
func (v *MenuView) SetPanelWidth(width int) {
	if width < 8 {
		width = 8
	}
	v.panelWidth = width
}

// SetTooltips enables the tooltip keyboard navigation opens on an item.
func (v *MenuView) SetTooltips(on bool) { v.tooltips = on }

// Focus gives the bar keyboard focus.
func (v *MenuView) Focus() { v.focused = true }

// Blur removes keyboard focus and closes the open menu.
func (v *MenuView) Blur() {
	v.focused = false
	if cur := v.Current(); cur != nil {
		cur.Close()
	}
	v.spinner.Stop()
}

// Focused reports whether the bar has keyboard focus.
func (v *MenuView) Focused() bool { return v.focused }

// Current returns the focused top-level menu, or nil without menus.
func (v *MenuView) Current() *menu.Menu {
	if len(v.roots) == 0 {
		return nil
	}
	return v.roots[v.focus]
}

// IsOpen reports whether any top-level menu is open.
func (v *MenuView) IsOpen() bool {
	for _, r := range v.roots {
		if r.IsOpen() {
			return true
		}
	}
	return false
}

// Path describes the open cascade, e.g. "File > Recent > Archive".
func (v *MenuView) Path() string {
	cur := v.Current()
	if cur == nil {
		return ""
	}
	path := cur.OpenPath()
	if len(path) == 0 {
		return cur.Name()
	}
	names := make([]string, len(path))
	for i, m := range path {
		names[i] = m.Name()
	}
	return strings.Join(names, " > ")
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes key presses to the focused menu and animates loading panels.
// Committed items come back as MenuCommitMsg.
func (v *MenuView) Update(msg tea.Msg) (*MenuView, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		cur := v.Current()
		if !v.focused || cur == nil {
			return v, nil
		}
		ev := keys.NewEvent(msg)
		cur.HandleKey(ev)
		if !ev.DefaultPrevented() {
			km := cur.KeyMap()
			switch {
			case key.Matches(msg, km.Expand):
				v.move(1)
			case key.Matches(msg, km.Collapse):
				v.move(-1)
			}
		}
		return v, tea.Batch(v.flushCommits(), v.syncSpinner())
	}
	return v, nil
}

// move shifts bar focus by delta, carrying an open menu along.
func (v *MenuView) move(delta int) {
	n := len(v.roots)
	if n < 2 {
		return
	}
	cur := v.roots[v.focus]
	wasOpen := cur.IsOpen()
	if wasOpen && !cur.Close() {
		return
	}
	v.focus = ((v.focus+delta)%n + n) % n
	if wasOpen {
		v.roots[v.focus].Open(listbox.OriginKeyboard)
	}
}

// SyncSpinner starts or stops the loading animation to match the open
// levels. Call it after changing a menu's loading flag.
func (v *MenuView) SyncSpinner() tea.Cmd { return v.syncSpinner() }

func (v *MenuView) syncSpinner() tea.Cmd {
	for _, m := range v.openLevels() {
		if m.Loading() {
			return v.spinner.Start()
		}
	}
	v.spinner.Stop()
	return nil
}

func (v *MenuView) flushCommits() tea.Cmd {
	if len(v.commits) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(v.commits))
	for _, c := range v.commits {
		c := c
		cmds = append(cmds, func() tea.Msg { return c })
	}
	v.commits = nil
	return tea.Batch(cmds...)
}

// openLevels returns every open level under every root.
func (v *MenuView) openLevels() []*menu.Menu {
	var out []*menu.Menu
	for _, r := range v.roots {
		out = append(out, r.OpenPath()...)
	}
	return out
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the bar and, below it, the open panels.
func (v *MenuView) View() string {
	bar, offset := v.renderBar()
	byID := make(map[string]*menu.Menu)
	for _, m := range v.openLevels() {
		byID[m.ID()] = m
	}
	panels := v.stack.Render(func(id string) string {
		m, ok := byID[id]
		if !ok {
			return ""
		}
		return v.renderPanel(m)
	})
	if panels == "" {
		return bar
	}
	panels = lipgloss.NewStyle().PaddingLeft(offset).Render(panels)
	return lipgloss.JoinVertical(lipgloss.Left, bar, panels)
}

// renderBar renders the bar and returns the column of the focused entry.
func (v *MenuView) renderBar() (string, int) {
	cells := make([]string, 0, len(v.roots))
	offset := 0
	for i, r := range v.roots {
		style := v.theme.MenuBarItem
		switch {
		case i == v.focus && (v.focused || r.IsOpen()):
			style = v.theme.MenuBarActive
		case r.Disabled():
			style = v.theme.ItemDisabled
		}
		if i < v.focus {
			offset += lipgloss.Width(style.Render(r.Name()))
		}
		cells = append(cells, style.Render(r.Name()))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	if v.width > 0 {
		return v.theme.MenuBar.Width(v.width).Render(row), offset
	}
	return v.theme.MenuBar.Render(row), offset
}

func (v *MenuView) renderPanel(m *menu.Menu) string {
	width := v.panelWidth - 2

	if m.Loading() && (m.Parent() == nil || !m.Parent().Loading()) {
		body := v.spinner.View()
		if body == "" {
			body = v.theme.Empty.Render("Loading...")
		}
		return v.theme.Panel.Render(lipgloss.NewStyle().Width(width).Render(body))
	}

	items := visibleItems(m.Registry().AllItems())
	if len(items) == 0 {
		return v.theme.Panel.Render(v.theme.Empty.Width(width).Render("(empty)"))
	}

	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, v.renderItem(m, it, width))
	}
	return v.theme.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (v *MenuView) renderItem(m *menu.Menu, it *listbox.Item, width int) string {
	suffix := " "
	if m.HasSubmenu(it) {
		suffix = styles.Indicators.Submenu
	}

	style := v.theme.Item
	switch {
	case it.Active():
		style = v.theme.ItemActive
	case it.Disabled():
		style = v.theme.ItemDisabled
	}

	inner := width - 2
	label := util.PadRight(it.Label(), inner-lipgloss.Width(suffix)) + suffix
	line := style.Width(width).Render(label)

	if v.tooltips && it.TooltipOpen() && it.Value() != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, v.theme.Tooltip.Render(it.Value()))
	}
	return line
}
