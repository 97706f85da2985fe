// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dropdown

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-overlay/internal/keys"
	"github.com/jeranaias/rigrun-overlay/internal/listbox"
	"github.com/jeranaias/rigrun-overlay/internal/panel"
)

// newItems builds items whose value is the lowercased label.
func newItems(labels ...string) []*listbox.Item {
	out := make([]*listbox.Item, len(labels))
	for i, l := range labels {
		out[i] = listbox.NewItem(l, strings.ToLower(l))
	}
	return out
}

func press(d *Dropdown, name string) *keys.Event {
	ev := keys.Press(name)
	d.HandleKey(ev)
	return ev
}

// =============================================================================
// SINGLE-SELECT
// =============================================================================

func TestSingle_LastSelectedWins(t *testing.T) {
	it := newItems("One", "Two")
	d := New(WithItems(it...))

	require.True(t, d.Open(listbox.OriginPointer))
	require.True(t, d.Click(it[0]))
	require.True(t, d.Open(listbox.OriginPointer))
	require.True(t, d.Click(it[1]))

	assert.Equal(t, []string{"two"}, d.Value())
	assert.False(t, it[0].Selected())
	assert.True(t, it[1].Selected())
}

func TestSingle_DirectItemMutation(t *testing.T) {
	it := newItems("One", "Two", "Three")
	d := New(WithItems(it...))

	it[0].SetSelected(true)
	it[2].SetSelected(true)
	assert.Equal(t, []string{"three"}, d.Value())
	assert.False(t, it[0].Selected(), "selecting one item deselects the others")

	it[2].SetSelected(false)
	assert.Empty(t, d.Value())
}

func TestSingle_PreselectedItemsLastWins(t *testing.T) {
	it := newItems("One", "Two")
	it[0].SetSelected(true)
	it[1].SetSelected(true)

	d := New(WithItems(it...))
	assert.Equal(t, []string{"two"}, d.Value())
	assert.False(t, it[0].Selected())
}

func TestSingle_CommitClosesPanel(t *testing.T) {
	it := newItems("Alpha", "Beta", "Gamma")
	d := New(WithItems(it...))

	press(d, "down")
	require.True(t, d.IsOpen())
	assert.Equal(t, it[0], d.Active())

	press(d, "down")
	ev := press(d, "enter")
	assert.True(t, ev.DefaultPrevented())
	assert.False(t, d.IsOpen())
	assert.Equal(t, []string{"beta"}, d.Value())

	press(d, "enter")
	assert.Equal(t, it[1], d.Active(), "reopening restores the last position")
}

func TestSingle_SetValueRejectsMultiple(t *testing.T) {
	it := newItems("One", "Two")
	d := New(WithItems(it...))
	require.NoError(t, d.SetValue([]string{"one"}))

	err := d.SetValue([]string{"one", "two"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMultipleValues))
	assert.Equal(t, []string{"one"}, d.Value(), "state is left unchanged")
	assert.False(t, it[1].Selected())
}

func TestSingle_DisabledSelectionNotSubmitted(t *testing.T) {
	it := newItems("One", "Two")
	d := New(WithItems(it...))
	require.NoError(t, d.SetValue([]string{"two"}))

	it[1].SetDisabled(true)
	assert.True(t, it[1].Selected())
	assert.Empty(t, d.Value())

	it[1].SetDisabled(false)
	assert.Equal(t, []string{"two"}, d.Value())
}

func TestSingle_EmptyValueItem(t *testing.T) {
	none := listbox.NewItem("None", "")
	d := New(WithItems(none, listbox.NewItem("One", "one")))

	require.NoError(t, d.SetValue([]string{"one"}))
	none.SetSelected(true)
	assert.Empty(t, d.Value())
	assert.Equal(t, []*listbox.Item{none}, d.SelectedItems())
}

// =============================================================================
// MULTI-SELECT
// =============================================================================

func TestMulti_SelectionOrder(t *testing.T) {
	it := newItems("A", "B", "C")
	d := New(WithMultiple(), WithItems(it...))
	require.True(t, d.Open(listbox.OriginPointer))

	d.Click(it[2])
	d.Click(it[0])
	assert.Equal(t, []string{"c", "a"}, d.Value())
	assert.True(t, d.IsOpen(), "multi-select stays open")

	d.Click(it[2])
	assert.Equal(t, []string{"a"}, d.Value())
}

func TestMulti_DuplicateValuesRemovedPositionally(t *testing.T) {
	first := listbox.NewItem("First", "x")
	second := listbox.NewItem("Second", "x")
	d := New(WithMultiple(), WithItems(first, second))

	first.SetSelected(true)
	second.SetSelected(true)
	require.Equal(t, []string{"x", "x"}, d.Value())

	first.SetSelected(false)
	assert.Equal(t, []string{"x"}, d.Value())
	assert.Equal(t, []*listbox.Item{second}, d.SelectedItems())
}

func TestMulti_SetValueMatchesOneToOne(t *testing.T) {
	a1 := listbox.NewItem("A one", "a")
	a2 := listbox.NewItem("A two", "a")
	b := listbox.NewItem("B", "b")
	d := New(WithMultiple(), WithItems(a1, a2, b))

	require.NoError(t, d.SetValue([]string{"b", "a", "a", "missing"}))
	assert.Equal(t, []string{"b", "a", "a"}, d.Value(), "order is the order given")
	assert.Equal(t, []*listbox.Item{b, a1, a2}, d.SelectedItems())

	require.NoError(t, d.SetValue([]string{"a"}))
	assert.Equal(t, []string{"a"}, d.Value())
	assert.True(t, a1.Selected())
	assert.False(t, a2.Selected())
	assert.False(t, b.Selected())
}

func TestMulti_SetValueIdempotent(t *testing.T) {
	it := newItems("A", "B", "C")
	d := New(WithMultiple(), WithItems(it...))
	calls := 0
	d.OnChange(func([]string) { calls++ })

	require.NoError(t, d.SetValue([]string{"a", "b"}))
	once := d.Value()
	require.NoError(t, d.SetValue([]string{"a", "b"}))

	assert.Equal(t, once, d.Value())
	assert.Equal(t, 1, calls)
}

func TestMulti_NoDuplicateAccumulation(t *testing.T) {
	it := newItems("A", "B")
	d := New(WithMultiple(), WithItems(it...))
	it[0].SetSelected(true)

	require.NoError(t, d.SetValue([]string{"a"}))
	require.NoError(t, d.SetValue([]string{"a", "a"}))
	assert.Equal(t, []string{"a"}, d.Value())
}

func TestMulti_SelectingDisabledItemEnablesIt(t *testing.T) {
	it := newItems("A", "B")
	d := New(WithMultiple(), WithItems(it...))
	it[1].SetDisabled(true)

	it[1].SetSelected(true)
	assert.False(t, it[1].Disabled())
	assert.Equal(t, []string{"b"}, d.Value())

	it[0].SetDisabled(true)
	require.NoError(t, d.SetValue([]string{"a"}))
	assert.False(t, it[0].Disabled(), "value assignment enables too")
	assert.Equal(t, []string{"a"}, d.Value())
}

func TestMulti_RemovedItemDropsFromValue(t *testing.T) {
	it := newItems("A", "B", "C")
	d := New(WithMultiple(), WithItems(it...))
	require.NoError(t, d.SetValue([]string{"a", "b", "c"}))

	require.NoError(t, d.Items().Remove(it[1]))
	assert.Equal(t, []string{"a", "c"}, d.Value())
}

func TestMulti_ValueFollowsItemValueChange(t *testing.T) {
	it := newItems("A", "B")
	d := New(WithMultiple(), WithItems(it...))
	var seen [][]string
	d.OnChange(func(v []string) { seen = append(seen, v) })

	it[0].SetSelected(true)
	it[0].SetValue("alpha")
	assert.Equal(t, [][]string{{"a"}, {"alpha"}}, seen)
}

func TestRoundTripAcrossReopen(t *testing.T) {
	it := newItems("A", "B", "C")
	d := New(WithMultiple(), WithItems(it...))
	require.NoError(t, d.SetValue([]string{"c", "a"}))

	before := d.Value()
	require.True(t, d.Open(listbox.OriginPointer))
	require.True(t, d.Close())
	require.True(t, d.Open(listbox.OriginKeyboard))
	assert.Equal(t, before, d.Value())
}

// =============================================================================
// SELECT ALL
// =============================================================================

func TestSelectAll_FromNone(t *testing.T) {
	it := newItems("A", "B", "C")
	d := New(WithMultiple(), WithSelectAll(), WithItems(it...))
	require.Equal(t, SelectAllOff, d.SelectAllState())

	require.True(t, d.ToggleSelectAll())

	for _, item := range it {
		assert.True(t, item.Selected())
	}
	assert.Equal(t, []string{"a", "b", "c"}, d.Value())
	assert.Equal(t, SelectAllOn, d.SelectAllState())
	assert.True(t, d.SelectAllItem().Selected())
}

func TestSelectAll_TriState(t *testing.T) {
	it := newItems("A", "B", "C")
	d := New(WithMultiple(), WithSelectAll(), WithItems(it...))

	it[1].SetSelected(true)
	assert.Equal(t, SelectAllIndeterminate, d.SelectAllState())
	assert.False(t, d.SelectAllItem().Selected())

	d.ToggleSelectAll()
	assert.Equal(t, SelectAllOn, d.SelectAllState())
	assert.Equal(t, []string{"b", "a", "c"}, d.Value())

	d.ToggleSelectAll()
	assert.Equal(t, SelectAllOff, d.SelectAllState())
	assert.Empty(t, d.Value())
}

func TestSelectAll_FollowsCollectionChanges(t *testing.T) {
	tests := []struct {
		name       string
		disabled   []int
		selected   []string
		mutate     func(t *testing.T, d *Dropdown, it []*listbox.Item)
		want       SelectAllState
		wantToggle SelectAllState
		wantValue  []string
	}{
		{
			name:       "append unselected to all selected",
			selected:   []string{"a", "b", "c"},
			mutate:     func(_ *testing.T, d *Dropdown, _ []*listbox.Item) { d.Items().Append(listbox.NewItem("D", "d")) },
			want:       SelectAllIndeterminate,
			wantToggle: SelectAllOn,
			wantValue:  []string{"a", "b", "c", "d"},
		},
		{
			name:     "append selected to none selected",
			selected: nil,
			mutate: func(_ *testing.T, d *Dropdown, _ []*listbox.Item) {
				it := listbox.NewItem("D", "d")
				it.SetSelected(true)
				d.Items().Append(it)
			},
			want:       SelectAllIndeterminate,
			wantToggle: SelectAllOn,
			wantValue:  []string{"d", "a", "b", "c"},
		},
		{
			name:     "remove the only unselected",
			selected: []string{"a", "b"},
			mutate: func(t *testing.T, d *Dropdown, it []*listbox.Item) {
				require.NoError(t, d.Items().Remove(it[2]))
			},
			want:       SelectAllOn,
			wantToggle: SelectAllOff,
			wantValue:  []string{},
		},
		{
			name:     "remove the only selected",
			selected: []string{"b"},
			mutate: func(t *testing.T, d *Dropdown, it []*listbox.Item) {
				require.NoError(t, d.Items().Remove(it[1]))
			},
			want:       SelectAllOff,
			wantToggle: SelectAllOn,
			wantValue:  []string{"a", "c"},
		},
		{
			name:       "disable the only unselected",
			selected:   []string{"a", "b"},
			mutate:     func(_ *testing.T, _ *Dropdown, it []*listbox.Item) { it[2].SetDisabled(true) },
			want:       SelectAllOn,
			wantToggle: SelectAllOff,
			wantValue:  []string{},
		},
		{
			name:       "enable a disabled unselected",
			disabled:   []int{2},
			selected:   []string{"a", "b"},
			mutate:     func(_ *testing.T, _ *Dropdown, it []*listbox.Item) { it[2].SetDisabled(false) },
			want:       SelectAllIndeterminate,
			wantToggle: SelectAllOn,
			wantValue:  []string{"a", "b", "c"},
		},
		{
			name:       "disable a selected among partial",
			selected:   []string{"a"},
			mutate:     func(_ *testing.T, _ *Dropdown, it []*listbox.Item) { it[0].SetDisabled(true) },
			want:       SelectAllOff,
			wantToggle: SelectAllOn,
			wantValue:  []string{"b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := newItems("A", "B", "C")
			for _, i := range tt.disabled {
				it[i].SetDisabled(true)
			}
			d := New(WithMultiple(), WithSelectAll(), WithItems(it...))
			require.NoError(t, d.SetValue(tt.selected))

			tt.mutate(t, d, it)
			assert.Equal(t, tt.want, d.SelectAllState())
			assert.Equal(t, tt.want == SelectAllOn, d.SelectAllItem().Selected())

			require.True(t, d.ToggleSelectAll())
			assert.Equal(t, tt.wantToggle, d.SelectAllState())
			assert.Equal(t, tt.wantValue, d.Value())
		})
	}
}

func TestSelectAll_IgnoresDisabled(t *testing.T) {
	it := newItems("A", "B")
	it[1].SetDisabled(true)
	d := New(WithMultiple(), WithSelectAll(), WithItems(it...))

	d.ToggleSelectAll()
	assert.False(t, it[1].Selected())
	assert.Equal(t, SelectAllOn, d.SelectAllState())
}

func TestSelectAll_NoEnabledItems(t *testing.T) {
	d := New(WithMultiple(), WithSelectAll())
	assert.Equal(t, SelectAllOff, d.SelectAllState())
}

func TestSelectAll_KeyboardAndVisibility(t *testing.T) {
	it := newItems("A", "B")
	d := New(WithMultiple(), WithSelectAll(), WithItems(it...))

	press(d, "down")
	require.Equal(t, d.SelectAllItem(), d.Active())
	press(d, "enter")
	assert.Equal(t, []string{"a", "b"}, d.Value())
	assert.True(t, d.IsOpen())

	d.SetMultiple(false)
	assert.True(t, d.SelectAllItem().Hidden())
	assert.NotEqual(t, d.SelectAllItem(), d.Active())
}

// =============================================================================
// MODE SWITCH
// =============================================================================

func TestSetMultiple_ToSingleKeepsMostRecent(t *testing.T) {
	it := newItems("A", "B", "C")
	d := New(WithMultiple(), WithItems(it...))
	it[0].SetSelected(true)
	it[2].SetSelected(true)
	it[1].SetSelected(true)
	it[1].SetDisabled(true)

	d.SetMultiple(false)
	assert.Equal(t, []string{"c"}, d.Value())
	assert.True(t, it[2].Selected())
	assert.False(t, it[0].Selected())
	assert.False(t, it[1].Selected())

	d.SetMultiple(true)
	assert.Equal(t, []string{"c"}, d.Value(), "switching to multi keeps selections")
}

// =============================================================================
// INTENTS AND CHANGE EVENTS
// =============================================================================

func TestSelectIntentCanceled(t *testing.T) {
	it := newItems("A", "B")
	d := New(WithItems(it...))
	d.OnIntent(func(in *listbox.Intent) {
		if in.Kind == listbox.IntentSelect && in.Item == it[1] {
			in.Cancel()
		}
	})
	require.True(t, d.Open(listbox.OriginPointer))

	assert.False(t, d.Click(it[1]))
	assert.False(t, it[1].Selected())
	assert.Empty(t, d.Value())
	assert.True(t, d.IsOpen())
}

func TestOpenCloseIntentCanceled(t *testing.T) {
	d := New(WithItems(newItems("A")...))
	cancelOpen := true
	d.OnIntent(func(in *listbox.Intent) {
		if in.Kind == listbox.IntentOpen && cancelOpen {
			in.Cancel()
		}
		if in.Kind == listbox.IntentClose {
			in.Cancel()
		}
	})

	assert.False(t, d.Open(listbox.OriginKeyboard))
	assert.False(t, d.IsOpen())

	cancelOpen = false
	require.True(t, d.Open(listbox.OriginKeyboard))
	assert.False(t, d.Close())
	assert.True(t, d.IsOpen())
}

func TestOnChange_FiresPerChange(t *testing.T) {
	it := newItems("One", "Two")
	d := New(WithItems(it...))
	var seen [][]string
	d.OnChange(func(v []string) { seen = append(seen, v) })

	it[0].SetSelected(true)
	it[1].SetSelected(true)
	it[1].SetSelected(true)
	assert.Equal(t, [][]string{{"one"}, {"two"}}, seen)
}

// =============================================================================
// OPEN / CLOSE / INPUT
// =============================================================================

func TestKeyboardNavigation(t *testing.T) {
	it := newItems("A", "B", "C")
	it[1].SetDisabled(true)
	d := New(WithItems(it...))

	ev := press(d, "up")
	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, it[2], d.Active(), "ArrowUp opens at the last item")

	press(d, "up")
	assert.Equal(t, it[0], d.Active(), "disabled items are skipped")
	press(d, "up")
	assert.Equal(t, it[0], d.Active(), "navigation does not wrap")
	press(d, "end")
	assert.Equal(t, it[2], d.Active())
	press(d, "down")
	assert.Equal(t, it[2], d.Active())
	press(d, "home")
	assert.Equal(t, it[0], d.Active())

	ev = press(d, "esc")
	assert.True(t, ev.DefaultPrevented())
	assert.False(t, d.IsOpen())
	assert.Empty(t, d.ActiveDescendantID())

	ev = press(d, " ")
	assert.False(t, ev.DefaultPrevented(), "space types into the field")
	assert.False(t, d.IsOpen())
}

func TestPointer(t *testing.T) {
	it := newItems("A", "B")
	stack := panel.NewStack()
	d := New(WithItems(it...), WithPanel(stack), WithAnchorRow(2))

	assert.False(t, d.Hover(it[0]), "hover is inert while closed")
	require.True(t, d.Toggle(listbox.OriginPointer))
	assert.True(t, stack.IsVisible(d.ID()))
	assert.Equal(t, 2, stack.Top(d.ID()))

	assert.True(t, d.Hover(it[1]))
	assert.Equal(t, it[1].ID(), d.ActiveDescendantID())

	assert.False(t, d.PointerDown(true))
	assert.True(t, d.IsOpen())
	assert.True(t, d.PointerDown(false))
	assert.False(t, d.IsOpen())
	assert.False(t, stack.IsVisible(d.ID()))
}

func TestActiveReconciledWhenDisabled(t *testing.T) {
	it := newItems("A", "B", "C")
	d := New(WithItems(it...))
	require.True(t, d.Open(listbox.OriginPointer))
	require.True(t, d.Hover(it[1]))

	it[1].SetDisabled(true)
	assert.Equal(t, it[2], d.Active())

	it[2].SetDisabled(true)
	assert.Equal(t, it[0], d.Active())
}

func TestDisabledDropdown(t *testing.T) {
	d := New(WithItems(newItems("A")...))
	require.True(t, d.Open(listbox.OriginPointer))

	d.SetDisabled(true)
	assert.False(t, d.IsOpen())
	assert.False(t, d.Open(listbox.OriginPointer))
	assert.False(t, press(d, "down").DefaultPrevented())
}

func TestEmptyDropdownStillOpens(t *testing.T) {
	d := New()
	require.True(t, d.Open(listbox.OriginKeyboard))
	assert.Nil(t, d.Active())
	press(d, "down")
	assert.Nil(t, d.Active())
}

// =============================================================================
// VALIDITY
// =============================================================================

func TestValidity(t *testing.T) {
	it := newItems("A")
	d := New(WithRequired(), WithItems(it...))

	assert.True(t, errors.Is(d.CheckValidity(), ErrValueMissing))
	assert.False(t, d.ReportValidity())
	assert.True(t, d.Invalid())

	it[0].SetSelected(true)
	assert.NoError(t, d.CheckValidity())
	assert.False(t, d.Invalid(), "a selection clears the invalid mark")

	d.SetRequired(false)
	it[0].SetSelected(false)
	assert.NoError(t, d.CheckValidity())
}

func TestValidity_DisabledIsValid(t *testing.T) {
	d := New(WithRequired(), WithItems(newItems("A")...))
	d.SetDisabled(true)
	assert.NoError(t, d.CheckValidity())
}

// =============================================================================
// TAGS
// =============================================================================

func TestTags_FourTagsFitTwo(t *testing.T) {
	it := newItems("A", "B", "C", "D")
	d := New(WithMultiple(), WithItems(it...))
	// 10 columns per tag, 4 for the indicator, 25 available.
	d.SetTagMeasure(func(visible, total int) (int, int) {
		w := visible * 10
		if visible < total {
			w += 4
		}
		return w, 25
	})

	require.NoError(t, d.SetValue([]string{"a", "b", "c", "d"}))
	assert.Equal(t, 2, d.TagLimit())
	assert.Equal(t, "+2", d.OverflowIndicator())
	assert.Equal(t, []*listbox.Item{it[0], it[1]}, d.VisibleTags())
}

func TestTags_LayoutMeasure(t *testing.T) {
	it := newItems("alpha", "beta", "gamma", "delta")
	// Padded tags are 7, 6, 7 and 7 wide with one column between them.
	d := New(WithMultiple(), WithItems(it...), WithTagLayout(20, lipgloss.NewStyle().Padding(0, 1), 1))

	require.NoError(t, d.SetValue([]string{"alpha", "beta", "gamma", "delta"}))
	assert.Equal(t, 2, d.TagLimit())
	assert.Equal(t, "+2", d.OverflowIndicator())

	d.SetTagWidth(40)
	assert.Equal(t, 4, d.TagLimit())
	assert.Empty(t, d.OverflowIndicator())

	d.SetTagWidth(20)
	assert.Equal(t, 2, d.TagLimit())
}

func TestTags_ReconvergeOnSelectionChange(t *testing.T) {
	it := newItems("alpha", "beta", "gamma", "delta")
	d := New(WithMultiple(), WithItems(it...), WithTagLayout(20, lipgloss.NewStyle().Padding(0, 1), 1))
	require.NoError(t, d.SetValue([]string{"alpha", "beta", "gamma", "delta"}))

	require.True(t, d.RemoveTag(it[0]))
	require.True(t, d.RemoveTag(it[3]))
	assert.False(t, it[0].Selected())
	assert.Equal(t, []string{"beta", "gamma"}, d.Value())
	assert.Equal(t, 2, d.TagLimit())
	assert.Empty(t, d.OverflowIndicator())
}

func TestTags_MaxTags(t *testing.T) {
	it := newItems("A", "B", "C")
	d := New(WithMultiple(), WithMaxTags(1), WithItems(it...))
	require.NoError(t, d.SetValue([]string{"a", "b", "c"}))

	assert.Equal(t, 1, d.TagLimit())
	assert.Equal(t, "+2", d.OverflowIndicator())
}

// =============================================================================
// FILTER
// =============================================================================

func TestFilter_DefaultSubstring(t *testing.T) {
	it := newItems("Alpha", "Beta", "Gamma")
	d := New(WithItems(it...))
	require.True(t, d.Open(listbox.OriginPointer))
	require.Equal(t, it[0], d.Active())

	require.True(t, d.SetQuery(context.Background(), "MMA"))
	assert.True(t, it[0].Hidden())
	assert.True(t, it[1].Hidden())
	assert.False(t, it[2].Hidden())
	assert.Equal(t, it[2], d.Active(), "the active item moves off hidden items")

	require.True(t, d.SetQuery(context.Background(), ""))
	assert.False(t, it[0].Hidden())
}

func TestFilter_Fuzzy(t *testing.T) {
	it := newItems("Open Recent", "Save As")
	d := New(WithMatchMode(MatchFuzzy), WithItems(it...))

	require.True(t, d.SetQuery(context.Background(), "ore"))
	assert.False(t, it[0].Hidden())
	assert.True(t, it[1].Hidden())
}

func TestFilter_HookResults(t *testing.T) {
	it := newItems("Alpha", "Beta", "Gamma")
	d := New(WithItems(it...), WithFilter(func(_ context.Context, q string) ([]*listbox.Item, error) {
		switch q {
		case "boom":
			return nil, errors.New("backend down")
		case "panic":
			panic("filter bug")
		case "beta-only":
			return []*listbox.Item{it[1]}, nil
		default:
			return nil, nil
		}
	}))
	ctx := context.Background()

	require.True(t, d.SetQuery(ctx, "beta-only"))
	assert.Equal(t, "beta-only", d.Query())
	assert.True(t, it[0].Hidden())
	assert.False(t, it[1].Hidden())

	assert.False(t, d.SetQuery(ctx, "boom"), "a failing hook changes nothing")
	assert.Equal(t, "beta-only", d.Query())
	assert.False(t, it[1].Hidden())

	assert.False(t, d.SetQuery(ctx, "panic"))
	assert.False(t, it[1].Hidden())

	require.True(t, d.SetQuery(ctx, "alp"), "a nil result falls back to substring matching")
	assert.False(t, it[0].Hidden())
	assert.True(t, it[1].Hidden())
}

func TestFilter_StaleResultsDiscarded(t *testing.T) {
	it := newItems("Alpha", "Gamma")
	d := New(WithItems(it...), WithFilter(func(context.Context, string) ([]*listbox.Item, error) {
		return nil, nil
	}))
	ctx := context.Background()

	first := d.FilterCmd(ctx, "alp")
	second := d.FilterCmd(ctx, "gam")

	newer, ok := second().(FilterResult)
	require.True(t, ok)
	older, ok := first().(FilterResult)
	require.True(t, ok)

	assert.True(t, d.ApplyFilterResult(newer))
	assert.False(t, d.ApplyFilterResult(older))
	assert.Equal(t, "gam", d.Query())
	assert.True(t, it[0].Hidden())
}

func TestFilter_CanceledContext(t *testing.T) {
	it := newItems("Alpha")
	d := New(WithItems(it...), WithFilter(func(context.Context, string) ([]*listbox.Item, error) {
		return []*listbox.Item{}, nil
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, d.SetQuery(ctx, "x"))
	assert.False(t, it[0].Hidden())
}

func TestFilter_ClearedOnClose(t *testing.T) {
	it := newItems("Alpha", "Beta")
	d := New(WithItems(it...))
	require.True(t, d.Open(listbox.OriginPointer))
	require.True(t, d.SetQuery(context.Background(), "alp"))

	pending := d.FilterCmd(context.Background(), "bet")
	require.True(t, d.Close())
	assert.Empty(t, d.Query())
	assert.False(t, it[1].Hidden())

	res, ok := pending().(FilterResult)
	require.True(t, ok)
	assert.False(t, d.ApplyFilterResult(res))
}

// =============================================================================
// ADD
// =============================================================================

func TestAdd_OfferedForNewQueries(t *testing.T) {
	it := newItems("Alpha")
	var added []string
	d := New(WithMultiple(), WithItems(it...), WithAdd(func(q string) *listbox.Item {
		added = append(added, q)
		return listbox.NewItem(q, strings.ToLower(q))
	}))
	ctx := context.Background()
	require.True(t, d.Open(listbox.OriginPointer))

	assert.True(t, d.AddItemEntry().Hidden())

	require.True(t, d.SetQuery(ctx, "ALPHA"))
	assert.True(t, d.AddItemEntry().Hidden(), "an exact label match is not offered")

	require.True(t, d.SetQuery(ctx, "Zeta"))
	require.False(t, d.AddItemEntry().Hidden())
	assert.Equal(t, `Add "Zeta"`, d.AddItemEntry().Label())
	assert.Equal(t, d.AddItemEntry(), d.Active(), "the only visible entry becomes active")

	press(d, "enter")
	assert.Equal(t, []string{"Zeta"}, added)
	assert.Equal(t, 2, d.Items().Len())
	assert.Equal(t, []string{"zeta"}, d.Value())
	assert.Empty(t, d.Query())
	assert.True(t, d.AddItemEntry().Hidden())
}

func TestAdd_IntentCarriesQuery(t *testing.T) {
	d := New(WithAdd(nil))
	var got *listbox.Intent
	d.OnIntent(func(in *listbox.Intent) {
		if in.Kind == listbox.IntentAdd {
			got = in
			in.Cancel()
		}
	})
	require.True(t, d.SetQuery(context.Background(), " new tag "))

	assert.False(t, d.AddItem())
	require.NotNil(t, got)
	assert.Equal(t, "new tag", got.Query)
	assert.Equal(t, 0, d.Items().Len())
}
