// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package demo

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigrun-overlay/internal/catalog"
	"github.com/jeranaias/rigrun-overlay/internal/diff"
	"github.com/jeranaias/rigrun-overlay/internal/dropdown"
	"github.com/jeranaias/rigrun-overlay/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.SetWidth(msg.Width)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case dropdown.FilterResult:
		for _, f := range m.fields {
			f.view.Update(msg)
		}

	case spinner.TickMsg:
		_, cmd := m.bar.Update(msg)
		cmds = append(cmds, cmd)

	case components.MenuCommitMsg:
		cmds = append(cmds, m.handleCommit(msg))

	case catalog.Reload:
		cmds = append(cmds, m.handleReload(msg))

	case SelectionsRestoredMsg:
		cmds = append(cmds, m.handleRestored(msg))

	case SelectionSavedMsg:
		if msg.Err != nil {
			m.log.Error("saving selection failed", "dropdown", msg.Key, "error", msg.Err)
			m.status.SetStatus(components.StatusError)
			cmds = append(cmds, m.toast(components.ToastKindError, "Saving "+msg.Key+" failed: "+msg.Err.Error()))
		}

	case components.ToastTickMsg:
		m.toasts.Tick(msg.Time)
		if m.toasts.HasToasts() {
			cmds = append(cmds, components.ToastTickCmd())
		} else {
			m.ticking = false
		}
	}

	cmds = append(cmds, m.flushChanges())
	m.refreshStatus()
	if m.quitting {
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Batch(cmds...)
}

// handleKey routes a key press to the application bindings or the focused
// widget.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	f := m.focusedField()
	barIdle := f == nil && !m.bar.IsOpen()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return nil
	case barIdle && key.Matches(msg, m.keys.QuitBar):
		m.quitting = true
		return nil
	case key.Matches(msg, m.keys.NextField):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevField):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case barIdle && key.Matches(msg, m.keys.Help):
		m.status.ToggleHelp()
		return nil
	}

	if f != nil {
		_, cmd := f.view.Update(msg)
		return cmd
	}
	_, cmd := m.bar.Update(msg)
	return cmd
}

// moveFocus moves focus along bar, field 1, field 2, ... and wraps.
func (m *Model) moveFocus(delta int) tea.Cmd {
	n := len(m.fields) + 1
	if f := m.focusedField(); f != nil {
		f.view.Blur()
	} else {
		m.bar.Blur()
	}
	m.focus = ((m.focus+delta)%n + n) % n
	if f := m.focusedField(); f != nil {
		return f.view.Focus()
	}
	m.bar.Focus()
	return nil
}

// submit reports validity on every dropdown.
func (m *Model) submit() tea.Cmd {
	var invalid, values []string
	for _, f := range m.fields {
		d := f.view.Dropdown()
		if !d.ReportValidity() {
			invalid = append(invalid, f.view.Label())
			continue
		}
		values = append(values, f.key+"="+strings.Join(d.Value(), ","))
	}
	if len(invalid) > 0 {
		return m.toast(components.ToastKindWarning, "Required: "+strings.Join(invalid, ", "))
	}
	m.log.Info("form submitted", "values", values)
	return m.toast(components.ToastKindStatus, "Submitted "+strings.Join(values, " "))
}

// handleCommit reacts to a committed menu item.
func (m *Model) handleCommit(msg components.MenuCommitMsg) tea.Cmd {
	if msg.Value == QuitValue {
		m.quitting = true
		return nil
	}
	return m.toast(components.ToastKindStatus, fmt.Sprintf("%s: %s", msg.Menu, msg.Label))
}

// =============================================================================
// CATALOG RELOAD
// =============================================================================

// handleReload applies a reloaded catalog to the live widgets in place and
// waits for the next reload.
func (m *Model) handleReload(r catalog.Reload) tea.Cmd {
	var next tea.Cmd
	if m.watcher != nil {
		next = m.watcher.Next()
	}
	if r.Err != nil {
		m.status.SetStatus(components.StatusError)
		return tea.Batch(next, m.toast(components.ToastKindError, "Catalog not reloaded: "+r.Err.Error()))
	}
	if err := m.menus.Apply(r.Catalog); err != nil {
		m.log.Warn("catalog rejected", "path", r.Path, "error", err)
		m.status.SetStatus(components.StatusError)
		return tea.Batch(next, m.toast(components.ToastKindError, "Catalog not reloaded: "+err.Error()))
	}
	m.bar.SetRoots(m.menus.Roots())
	changes := diff.Catalogs(m.cat, r.Catalog)
	m.cat = r.Catalog

	focused := m.focusedField()
	existing := make(map[string]*field, len(m.fields))
	for _, f := range m.fields {
		existing[f.key] = f
	}

	var total catalog.SyncStats
	var added []string
	fields := make([]*field, 0, len(r.Catalog.Dropdowns))
	for _, spec := range r.Catalog.Dropdowns {
		f, ok := existing[spec.Key]
		if !ok {
			f = m.newField(spec)
			added = append(added, spec.Key)
		} else {
			delete(existing, spec.Key)
			s := catalog.SyncDropdown(f.view.Dropdown(), spec, m.cfg.Dropdown)
			total.Added += s.Added
			total.Removed += s.Removed
			total.Updated += s.Updated
			f.view.SetLabel(fieldLabel(spec))
			f.view.SetPlaceholder(spec.Settings(m.cfg.Dropdown).Placeholder)
		}
		fields = append(fields, f)
	}
	for _, gone := range existing {
		gone.view.Blur()
	}
	m.fields = fields

	m.focus = 0
	for i, f := range m.fields {
		if f == focused {
			m.focus = i + 1
		}
	}
	if m.focus == 0 {
		m.bar.Focus()
	}

	m.log.Info("catalog applied", "path", r.Path, "changes", changes.Summary(),
		"options_added", total.Added, "options_removed", total.Removed, "options_updated", total.Updated)
	for _, c := range changes.Changes {
		m.log.Debug("catalog change", "type", c.Type.String(), "kind", c.Kind, "path", c.Path(), "detail", c.Detail)
	}

	m.status.SetStatus(components.StatusReloaded)
	cmds := []tea.Cmd{next, m.toast(components.ToastKindStatus, fmt.Sprintf(
		"Catalog reloaded: %d menus, %d dropdowns (%s)",
		len(r.Catalog.Menus), len(r.Catalog.Dropdowns), changes.Summary(),
	))}
	if m.saver != nil && len(added) > 0 {
		cmds = append(cmds, m.saver.restoreCmd(m.ctx, added))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// handleRestored applies saved values without saving them back.
func (m *Model) handleRestored(msg SelectionsRestoredMsg) tea.Cmd {
	var cmd tea.Cmd
	if msg.Err != nil {
		m.log.Warn("restoring selections failed", "error", msg.Err)
		cmd = m.toast(components.ToastKindWarning, "Saved selections not restored: "+msg.Err.Error())
	}

	m.changes.muted = true
	defer func() { m.changes.muted = false }()
	for key, values := range msg.Values {
		d := m.Dropdown(key)
		if d == nil {
			continue
		}
		if !d.Multiple() && len(values) > 1 {
			values = values[len(values)-1:]
		}
		if err := d.SetValue(values); err != nil {
			m.log.Warn("saved selection not applied", "dropdown", key, "error", err)
		}
	}
	return cmd
}

// flushChanges turns the changes raised during this update into saves.
func (m *Model) flushChanges() tea.Cmd {
	pending := m.changes.drain()
	if m.saver == nil || len(pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(pending))
	for _, c := range pending {
		cmds = append(cmds, m.saver.saveCmd(m.ctx, c))
	}
	return tea.Batch(cmds...)
}

// toast shows a notice and starts the expiry tick when none is running.
func (m *Model) toast(kind components.ToastKind, message string) tea.Cmd {
	m.toasts.Add(components.NewToast(kind, message))
	if m.ticking {
		return nil
	}
	m.ticking = true
	return components.ToastTickCmd()
}
