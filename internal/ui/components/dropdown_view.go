// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-overlay/internal/dropdown"
	"github.com/jeranaias/rigrun-overlay/internal/keys"
	"github.com/jeranaias/rigrun-overlay/internal/listbox"
	"github.com/jeranaias/rigrun-overlay/internal/ui/styles"
	"github.com/jeranaias/rigrun-overlay/internal/util"
)

// =============================================================================
// DROPDOWN VIEW
// =============================================================================

// DropdownView renders a dropdown as a trigger line with an optional panel
// below it, and turns key messages into dropdown commands. Typing while the
// view is focused edits the filter.
type DropdownView struct {
	dd    *dropdown.Dropdown
	label string
	input textinput.Model
	theme *styles.Theme
	ctx   context.Context

	placeholder string
	width       int
	maxRows     int
	focused     bool

	// removeLast deletes the newest tag on backspace in an empty filter.
	removeLast key.Binding
}

// NewDropdownView creates a view over d.
func NewDropdownView(d *dropdown.Dropdown, label string, theme *styles.Theme) *DropdownView {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.PromptStyle = theme.FilterPrompt
	ti.Placeholder = "type to filter"
	ti.PlaceholderStyle = theme.Placeholder
	ti.CharLimit = 64

	return &DropdownView{
		dd:          d,
		label:       label,
		input:       ti,
		theme:       theme,
		ctx:         context.Background(),
		placeholder: "Select…",
		width:       28,
		maxRows:     8,
		removeLast: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "remove tag"),
		),
	}
}

// Dropdown returns the widget behind the view.
func (v *DropdownView) Dropdown() *dropdown.Dropdown { return v.dd }

// Label returns the field label.
func (v *DropdownView) Label() string { return v.label }

// SetLabel changes the field label.
func (v *DropdownView) SetLabel(label string) { v.label = label }

// SetPlaceholder sets the text shown when nothing is selected.
func (v *DropdownView) SetPlaceholder(s string) { v.placeholder = s }

// SetContext sets the context filter runs are started with.
func (v *DropdownView) SetContext(ctx context.Context) { v.ctx = ctx }

// SetSize sets the trigger width and the panel's row budget. The tag row is
// re-measured for the new width.
func (v *DropdownView) SetSize(width, rows int) {
	if width < 8 {
		width = 8
	}
	if rows < 1 {
		rows = 1
	}
	v.width = width
	v.maxRows = rows
	v.input.Width = v.innerWidth() - lipgloss.Width(v.input.Prompt) - 1
	v.dd.SetTagWidth(v.tagWidth())
}

// innerWidth is the trigger width inside its border and padding.
func (v *DropdownView) innerWidth() int {
	return v.width - 4
}

// tagWidth is the width left for tags after the caret column.
func (v *DropdownView) tagWidth() int {
	return v.innerWidth() - 2
}

// Focus gives the view keyboard focus.
func (v *DropdownView) Focus() tea.Cmd {
	v.focused = true
	return v.input.Focus()
}

// Blur removes keyboard focus and closes the panel.
func (v *DropdownView) Blur() {
	v.focused = false
	v.input.Blur()
	v.dd.Close()
	v.syncInput(true)
}

// Focused reports whether the view has keyboard focus.
func (v *DropdownView) Focused() bool { return v.focused }

// Filtering reports whether the filter field holds text.
func (v *DropdownView) Filtering() bool { return v.input.Value() != "" }

// =============================================================================
// UPDATE
// =============================================================================

// Update handles key presses while focused and filter results for this
// dropdown. A key the dropdown does not consume goes to the filter field.
func (v *DropdownView) Update(msg tea.Msg) (*DropdownView, tea.Cmd) {
	switch msg := msg.(type) {
	case dropdown.FilterResult:
		if msg.ID == v.dd.ID() {
			v.dd.ApplyFilterResult(msg)
		}
		return v, nil

	case tea.KeyMsg:
		if !v.focused || v.dd.Disabled() {
			return v, nil
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *DropdownView) handleKey(msg tea.KeyMsg) (*DropdownView, tea.Cmd) {
	if key.Matches(msg, v.removeLast) && v.input.Value() == "" && v.dd.Multiple() {
		if tags := v.dd.Tags(); len(tags) > 0 {
			v.dd.RemoveTag(tags[len(tags)-1])
		}
		return v, nil
	}

	before := v.dd.Query()
	ev := keys.NewEvent(msg)
	v.dd.HandleKey(ev)
	if ev.DefaultPrevented() {
		v.syncInput(before != "" && v.dd.Query() == "")
		return v, nil
	}

	prev := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	value := v.input.Value()
	if value == prev {
		return v, cmd
	}
	if !v.dd.IsOpen() {
		v.dd.Open(listbox.OriginKeyboard)
	}
	return v, tea.Batch(cmd, v.dd.FilterCmd(v.ctx, value))
}

// syncInput empties the filter field after the dropdown closed or cleared
// its filter.
func (v *DropdownView) syncInput(cleared bool) {
	if (cleared || !v.dd.IsOpen()) && v.input.Value() != "" {
		v.input.Reset()
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the label, the trigger and, while open, the panel.
func (v *DropdownView) View() string {
	parts := []string{}
	if v.label != "" {
		parts = append(parts, v.theme.FieldLabel.Render(v.label))
	}
	parts = append(parts, v.renderTrigger())
	if v.dd.IsOpen() {
		parts = append(parts, v.renderPanel())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v *DropdownView) triggerStyle() lipgloss.Style {
	style := v.theme.Trigger
	switch {
	case v.dd.Invalid():
		style = v.theme.TriggerInvalid
	case v.focused:
		style = v.theme.TriggerFocused
	}
	return style.Width(v.width - 2)
}

func (v *DropdownView) renderTrigger() string {
	caret := styles.Indicators.Caret
	if v.dd.IsOpen() {
		caret = styles.Indicators.CaretOpen
	}

	var body string
	switch {
	case v.focused && v.dd.IsOpen() && v.Filtering():
		body = v.input.View()
	case v.dd.Multiple():
		body = v.renderTags()
	default:
		if items := v.dd.SelectedItems(); len(items) > 0 {
			body = util.TruncateWidth(items[len(items)-1].Label(), v.tagWidth())
		}
	}
	if body == "" {
		body = v.theme.Placeholder.Render(util.TruncateWidth(v.placeholder, v.tagWidth()))
	}
	if v.dd.Invalid() {
		caret = styles.Indicators.Invalid
	}

	w := v.innerWidth() - lipgloss.Width(caret)
	body = lipgloss.NewStyle().Width(w).MaxWidth(w).Render(body)
	return v.triggerStyle().Render(body + caret)
}

// renderTags renders the visible tags and the overflow indicator.
func (v *DropdownView) renderTags() string {
	tags := v.dd.VisibleTags()
	if len(tags) == 0 && v.dd.OverflowIndicator() == "" {
		return ""
	}
	rendered := make([]string, 0, len(tags)+1)
	for _, it := range tags {
		rendered = append(rendered, v.theme.Tag.Render(it.Label()))
	}
	if ind := v.dd.OverflowIndicator(); ind != "" {
		rendered = append(rendered, v.theme.TagOverflow.Render(ind))
	}
	return strings.Join(rendered, " ")
}

// renderPanel renders the visible options around the active one.
func (v *DropdownView) renderPanel() string {
	visible := visibleItems(v.dd.NavItems())

	lineWidth := v.width - 2
	if len(visible) == 0 {
		empty := v.theme.Empty.Width(lineWidth).Render("No matches")
		return v.theme.Panel.Render(empty)
	}

	start, end := window(visible, v.dd.Active(), v.maxRows)
	lines := make([]string, 0, end-start+2)
	if start > 0 {
		lines = append(lines, v.theme.Empty.Render("... "+toStr(start)+" more"))
	}
	for _, it := range visible[start:end] {
		lines = append(lines, v.renderOption(it, lineWidth))
	}
	if rest := len(visible) - end; rest > 0 {
		lines = append(lines, v.theme.Empty.Render("... "+toStr(rest)+" more"))
	}
	return v.theme.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (v *DropdownView) renderOption(it *listbox.Item, width int) string {
	d := v.dd
	var mark string
	switch {
	case it == d.SelectAllItem():
		switch d.SelectAllState() {
		case dropdown.SelectAllOn:
			mark = styles.Indicators.Checked
		case dropdown.SelectAllIndeterminate:
			mark = styles.Indicators.Indeterminate
		default:
			mark = styles.Indicators.Unchecked
		}
	case it == d.AddItemEntry():
		mark = " + "
	case d.Multiple():
		mark = styles.Indicators.Unchecked
		if it.Selected() {
			mark = styles.Indicators.Checked
		}
	default:
		mark = styles.Indicators.RadioOff
		if it.Selected() {
			mark = styles.Indicators.Radio
		}
	}

	style := v.theme.Item
	switch {
	case it.Active():
		style = v.theme.ItemActive
	case it.Disabled():
		style = v.theme.ItemDisabled
	case d.IsPseudo(it):
		style = v.theme.ItemPseudo
	}

	label := util.TruncateWidth(it.Label(), width-lipgloss.Width(mark)-3)
	if !d.IsPseudo(it) && !it.Active() && !it.Disabled() {
		label = highlight(label, d.MatchMode().MatchPositions(d.Query(), label), v.theme.Match)
	}
	if it.Selected() && !it.Active() {
		mark = v.theme.Check.Render(mark)
	}
	return style.Width(width).Render(mark + " " + label)
}
