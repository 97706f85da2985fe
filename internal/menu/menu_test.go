// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package menu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-overlay/internal/keys"
	"github.com/jeranaias/rigrun-overlay/internal/listbox"
	"github.com/jeranaias/rigrun-overlay/internal/panel"
)

// recorder is a panel.Service that logs calls.
type recorder struct {
	names map[string]string
	calls []string
}

func (r *recorder) Show(_ panel.Anchor, id string) { r.calls = append(r.calls, "show "+r.names[id]) }
func (r *recorder) Hide(id string)                 { r.calls = append(r.calls, "hide "+r.names[id]) }

type tree struct {
	root, file, recent, edit *Menu
	items                    map[string]*listbox.Item
	panels                   *recorder
}

// newTree builds:
//
//	root:   File > | Edit > | Quit
//	file:   New | Open Recent > | Save
//	recent: a.txt | b.txt
//	edit:   Undo | Redo
func newTree(t *testing.T) *tree {
	t.Helper()
	tr := &tree{items: make(map[string]*listbox.Item), panels: &recorder{names: make(map[string]string)}}

	level := func(name string, labels ...string) *Menu {
		m := New(name, WithPanel(tr.panels))
		tr.panels.names[m.ID()] = name
		for _, l := range labels {
			it := listbox.NewItem(l, l)
			tr.items[l] = it
			m.Items().Append(it)
		}
		return m
	}

	tr.root = level("root", "File", "Edit", "Quit")
	tr.file = level("file", "New", "Open Recent", "Save")
	tr.recent = level("recent", "a.txt", "b.txt")
	tr.edit = level("edit", "Undo", "Redo")

	require.NoError(t, tr.root.AttachSubmenu(tr.items["File"], tr.file, TriggerItem))
	require.NoError(t, tr.root.AttachSubmenu(tr.items["Edit"], tr.edit, TriggerItem))
	require.NoError(t, tr.file.AttachSubmenu(tr.items["Open Recent"], tr.recent, TriggerItem))
	return tr
}

func press(m *Menu, name string) *keys.Event {
	ev := keys.Press(name)
	m.HandleKey(ev)
	return ev
}

// openAll opens root > file > recent from the keyboard.
func (tr *tree) openAll(t *testing.T) {
	t.Helper()
	press(tr.root, "down")
	press(tr.root, "right")
	press(tr.root, "down")
	press(tr.root, "right")
	require.True(t, tr.recent.IsOpen())
}

// =============================================================================
// CASCADE
// =============================================================================

func TestEscape_ClosesOneLevelPerPress(t *testing.T) {
	tr := newTree(t)
	tr.openAll(t)

	require.Equal(t, OpenOneSubmenuOpen, tr.root.State())
	require.Equal(t, OpenOneSubmenuOpen, tr.file.State())
	require.Equal(t, OpenNoSubmenuOpen, tr.recent.State())

	ev := press(tr.root, "esc")
	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, Closed, tr.recent.State())
	assert.Equal(t, OpenNoSubmenuOpen, tr.file.State())
	assert.Equal(t, OpenOneSubmenuOpen, tr.root.State())
	assert.Equal(t, tr.items["Open Recent"], tr.file.Active(), "ownership returns to the parent item")

	press(tr.root, "esc")
	assert.Equal(t, Closed, tr.file.State())
	assert.Equal(t, OpenNoSubmenuOpen, tr.root.State())

	press(tr.root, "esc")
	assert.Equal(t, Closed, tr.root.State())
}

func TestSiblingExclusion(t *testing.T) {
	tr := newTree(t)
	tr.openAll(t)
	tr.panels.calls = nil

	require.True(t, tr.root.Hover(tr.items["Edit"]))

	assert.False(t, tr.file.IsOpen())
	assert.False(t, tr.recent.IsOpen())
	assert.True(t, tr.edit.IsOpen())
	assert.Equal(t, tr.edit, tr.root.OpenChild())
	assert.Equal(t, []string{"hide recent", "hide file", "show edit"}, tr.panels.calls)
}

func TestOpenSiblingDirectly(t *testing.T) {
	tr := newTree(t)
	tr.openAll(t)

	require.True(t, tr.edit.Open(listbox.OriginProgrammatic))
	assert.False(t, tr.file.IsOpen())
	assert.False(t, tr.recent.IsOpen())
	assert.Equal(t, tr.items["Edit"], tr.root.Active())
}

func TestSubmenuNeedsOpenParent(t *testing.T) {
	tr := newTree(t)
	assert.False(t, tr.file.Open(listbox.OriginProgrammatic))
	assert.Equal(t, Closed, tr.file.State())
}

func TestArrowRightLeft(t *testing.T) {
	tr := newTree(t)
	press(tr.root, "down")
	require.Equal(t, tr.items["File"], tr.root.Active())

	ev := press(tr.root, "right")
	assert.True(t, ev.DefaultPrevented())
	require.True(t, tr.file.IsOpen())
	assert.Equal(t, tr.items["New"], tr.file.Active(), "first enabled item of the sub-menu")

	ev = press(tr.root, "left")
	assert.True(t, ev.DefaultPrevented())
	assert.False(t, tr.file.IsOpen())
	assert.True(t, tr.root.IsOpen())
	assert.Equal(t, tr.items["File"], tr.root.Active())

	ev = press(tr.root, "left")
	assert.False(t, ev.DefaultPrevented(), "the top level never closes on ArrowLeft")
	assert.True(t, tr.root.IsOpen())
}

func TestArrowRight_LeafIsNotConsumed(t *testing.T) {
	tr := newTree(t)
	press(tr.root, "down")
	require.Equal(t, tr.items["File"], tr.root.Active())
	press(tr.root, "end")
	require.Equal(t, tr.items["Quit"], tr.root.Active())

	ev := press(tr.root, "right")
	assert.False(t, ev.DefaultPrevented())
}

func TestRedispatch_NavigationReachesDeepest(t *testing.T) {
	tr := newTree(t)
	tr.openAll(t)

	press(tr.root, "down")
	assert.Equal(t, tr.items["b.txt"], tr.recent.Active())
	assert.Equal(t, tr.items["File"], tr.root.Active(), "outer levels keep their active item")
	assert.Equal(t, tr.items["Open Recent"], tr.file.Active())

	ev := press(tr.root, "down")
	assert.True(t, ev.DefaultPrevented(), "a no-op move at the edge still consumes the key")
	assert.Equal(t, tr.items["b.txt"], tr.recent.Active())
}

func TestArrowUpWhenClosedActivatesLast(t *testing.T) {
	tr := newTree(t)
	press(tr.root, "up")
	assert.True(t, tr.root.IsOpen())
	assert.Equal(t, tr.items["Quit"], tr.root.Active())
}

func TestReopenRestoresPosition(t *testing.T) {
	tr := newTree(t)
	press(tr.root, "down")
	press(tr.root, "end")
	press(tr.root, "esc")
	require.False(t, tr.root.IsOpen())
	assert.Nil(t, tr.root.Active())

	press(tr.root, "enter")
	assert.Equal(t, tr.items["Quit"], tr.root.Active())
}

// =============================================================================
// COMMIT AND OUTSIDE CLICK
// =============================================================================

func TestCommit_ClosesWholeTree(t *testing.T) {
	tr := newTree(t)
	var picked []string
	tr.root.OnSelect(func(m *Menu, item *listbox.Item) { picked = append(picked, m.Name()+":"+item.Label()) })
	tr.openAll(t)

	press(tr.root, "enter")

	assert.Equal(t, []string{"recent:a.txt"}, picked)
	assert.False(t, tr.root.IsOpen())
	assert.False(t, tr.file.IsOpen())
	assert.False(t, tr.recent.IsOpen())
}

func TestClick(t *testing.T) {
	tr := newTree(t)
	var picked *listbox.Item
	tr.root.OnSelect(func(_ *Menu, item *listbox.Item) { picked = item })
	require.True(t, tr.root.Open(listbox.OriginPointer))

	require.True(t, tr.root.Click(tr.items["File"]))
	assert.True(t, tr.file.IsOpen())

	require.True(t, tr.root.Click(tr.items["File"]))
	assert.False(t, tr.file.IsOpen(), "clicking the trigger item again closes its sub-menu")

	require.True(t, tr.root.Click(tr.items["Quit"]))
	assert.Equal(t, tr.items["Quit"], picked)
	assert.False(t, tr.root.IsOpen())
}

func TestPointerDown(t *testing.T) {
	tr := newTree(t)
	tr.openAll(t)

	assert.False(t, tr.root.PointerDown(tr.recent), "press inside a descendant")
	assert.True(t, tr.recent.IsOpen())

	assert.False(t, tr.root.PointerDown(tr.edit), "closed descendants are still inside the tree")
	assert.True(t, tr.root.IsOpen())

	other := New("other")
	assert.True(t, tr.root.PointerDown(other))
	assert.False(t, tr.root.IsOpen())
	assert.False(t, tr.recent.IsOpen())
}

func TestPointerDown_Nowhere(t *testing.T) {
	tr := newTree(t)
	require.True(t, tr.root.Open(listbox.OriginPointer))
	assert.True(t, tr.root.PointerDown(nil))
	assert.False(t, tr.root.IsOpen())
}

// =============================================================================
// INTENTS, DISABLED, LOADING
// =============================================================================

func TestIntentCancel_LeavesStateUntouched(t *testing.T) {
	tr := newTree(t)
	tr.openAll(t)

	tr.root.OnIntent(func(in *listbox.Intent) {
		if in.Kind == listbox.IntentClose || in.Kind == listbox.IntentSelect {
			in.Cancel()
		}
	})

	ev := press(tr.root, "esc")
	assert.True(t, tr.recent.IsOpen(), "close canceled")
	assert.False(t, ev.DefaultPrevented(), "a canceled close does not consume the key")

	ev = press(tr.root, "left")
	assert.True(t, tr.recent.IsOpen())
	assert.False(t, ev.DefaultPrevented())

	press(tr.root, "enter")
	assert.True(t, tr.recent.IsOpen(), "select canceled")
	assert.Equal(t, tr.items["a.txt"], tr.recent.Active())
}

func TestIntentCancel_Open(t *testing.T) {
	tr := newTree(t)
	tr.root.OnIntent(func(in *listbox.Intent) {
		if in.Kind == listbox.IntentOpen {
			in.Cancel()
		}
	})
	ev := press(tr.root, "down")
	assert.False(t, ev.DefaultPrevented())
	assert.False(t, tr.root.IsOpen())
	assert.Nil(t, tr.root.Active())
}

func TestDisabledTrigger(t *testing.T) {
	tr := newTree(t)
	tr.root.SetDisabled(true)
	press(tr.root, "enter")
	assert.False(t, tr.root.IsOpen())

	tr.root.SetDisabled(false)
	tr.openAll(t)
	tr.root.SetDisabled(true)
	assert.False(t, tr.root.IsOpen())
	assert.False(t, tr.recent.IsOpen())
}

func TestDisabledParentItemBlocksSubmenu(t *testing.T) {
	tr := newTree(t)
	require.True(t, tr.root.Open(listbox.OriginPointer))
	tr.items["Edit"].SetDisabled(true)

	assert.False(t, tr.edit.Open(listbox.OriginPointer))
	assert.False(t, tr.root.Hover(tr.items["Edit"]))
}

func TestDisablingParentItemClosesSubmenu(t *testing.T) {
	tr := newTree(t)
	tr.openAll(t)

	tr.items["Open Recent"].SetDisabled(true)
	assert.False(t, tr.recent.IsOpen())
	assert.Equal(t, tr.items["Save"], tr.file.Active())
}

func TestRemovingParentItemDetachesSubmenu(t *testing.T) {
	tr := newTree(t)
	tr.openAll(t)

	require.NoError(t, tr.file.Items().Remove(tr.items["Open Recent"]))
	assert.False(t, tr.recent.IsOpen())
	assert.Nil(t, tr.recent.Parent())
	assert.False(t, tr.file.HasSubmenu(tr.items["Open Recent"]))
	assert.Equal(t, tr.items["Save"], tr.file.Active())
}

func TestLoading(t *testing.T) {
	tr := newTree(t)
	press(tr.root, "down")
	press(tr.root, "right")
	tr.root.SetLoading(true)

	assert.True(t, tr.file.Loading(), "loading is inherited from ancestors")

	press(tr.root, "down")
	assert.Equal(t, tr.items["New"], tr.file.Active(), "navigation is inert")
	press(tr.root, "enter")
	assert.True(t, tr.file.IsOpen(), "selection is inert")
	assert.False(t, tr.file.Hover(tr.items["Save"]))

	ev := press(tr.root, "esc")
	assert.True(t, ev.DefaultPrevented())
	assert.False(t, tr.file.IsOpen(), "escape still closes")

	press(tr.root, "esc")
	assert.False(t, tr.root.IsOpen())
	press(tr.root, "enter")
	assert.True(t, tr.root.IsOpen(), "toggle-open still works")
}

func TestKeyboardTooltip(t *testing.T) {
	tr := newTree(t)
	press(tr.root, "down")
	assert.True(t, tr.items["File"].TooltipOpen())

	tr.root.Hover(tr.items["Quit"])
	assert.False(t, tr.items["Quit"].TooltipOpen())
}

// =============================================================================
// CONFIGURATION ERRORS
// =============================================================================

func TestAttachSubmenu_Errors(t *testing.T) {
	tr := newTree(t)
	quit := tr.items["Quit"]

	err := tr.root.AttachSubmenu(quit, New("x"), TriggerInput)
	require.Error(t, err)
	assert.True(t, listbox.IsConfigError(err))
	assert.True(t, errors.Is(err, listbox.ErrInputTrigger))

	err = tr.root.AttachSubmenu(tr.items["File"], New("x"), TriggerItem)
	assert.True(t, errors.Is(err, listbox.ErrAlreadyAttached))

	err = tr.root.AttachSubmenu(quit, tr.recent, TriggerItem)
	assert.True(t, errors.Is(err, listbox.ErrAlreadyAttached))

	err = tr.root.AttachSubmenu(listbox.NewItem("stray", ""), New("x"), TriggerItem)
	assert.True(t, errors.Is(err, listbox.ErrNotInCollection))

	err = tr.recent.AttachSubmenu(tr.items["a.txt"], tr.root, TriggerItem)
	assert.True(t, errors.Is(err, listbox.ErrSubmenuCycle))
}

func TestTreeHelpers(t *testing.T) {
	tr := newTree(t)
	assert.Equal(t, tr.root, tr.recent.Root())
	assert.Equal(t, 2, tr.recent.Depth())
	assert.Nil(t, tr.root.OpenPath())

	tr.openAll(t)
	assert.Equal(t, tr.recent, tr.root.Deepest())
	assert.Equal(t, []*Menu{tr.root, tr.file, tr.recent}, tr.root.OpenPath())
	assert.Equal(t, tr.recent.Active().ID(), tr.recent.ActiveDescendantID())
}
