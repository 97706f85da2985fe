// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package listbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(labels ...string) (*Collection, *ActiveController) {
	coll := NewCollection()
	for _, l := range labels {
		coll.Append(NewItem(l, l))
	}
	return coll, NewActiveController(NewRegistry(coll.Items))
}

// =============================================================================
// NAVIGATION
// =============================================================================

func TestNext_DoesNotWrap(t *testing.T) {
	coll, ac := newFixture("a", "b", "c")

	require.True(t, ac.Last(OriginKeyboard))
	last := ac.Active()
	require.Equal(t, coll.At(2), last)

	for i := 0; i < 5; i++ {
		assert.False(t, ac.Next(OriginKeyboard))
		assert.Equal(t, last, ac.Active())
	}
}

func TestPrevious_DoesNotWrap(t *testing.T) {
	coll, ac := newFixture("a", "b", "c")

	require.True(t, ac.First(OriginKeyboard))
	for i := 0; i < 5; i++ {
		assert.False(t, ac.Previous(OriginKeyboard))
		assert.Equal(t, coll.At(0), ac.Active())
	}
}

func TestNavigation_SkipsDisabledAndHidden(t *testing.T) {
	coll, ac := newFixture("a", "b", "c", "d", "e")
	coll.At(0).SetDisabled(true)
	coll.At(1).SetHidden(true)
	coll.At(3).SetDisabled(true)
	coll.At(4).SetHidden(true)

	require.True(t, ac.First(OriginKeyboard))
	assert.Equal(t, "c", ac.Active().Label())

	assert.False(t, ac.Next(OriginKeyboard), "nothing navigable after c")
	assert.False(t, ac.Previous(OriginKeyboard), "nothing navigable before c")

	require.True(t, ac.Last(OriginKeyboard))
	assert.Equal(t, "c", ac.Active().Label())
}

func TestNavigation_NoEnabledItems(t *testing.T) {
	coll, ac := newFixture("a", "b")
	coll.At(0).SetDisabled(true)
	coll.At(1).SetDisabled(true)

	assert.False(t, ac.First(OriginKeyboard))
	assert.False(t, ac.Last(OriginKeyboard))
	assert.False(t, ac.Next(OriginKeyboard))
	assert.False(t, ac.Previous(OriginKeyboard))
	assert.Nil(t, ac.Active())
	assert.Equal(t, "", ac.ActiveDescendantID())
}

func TestNext_WithNothingActiveStartsAtFirst(t *testing.T) {
	coll, ac := newFixture("a", "b")
	require.True(t, ac.Next(OriginKeyboard))
	assert.Equal(t, coll.At(0), ac.Active())
}

func TestHover(t *testing.T) {
	coll, ac := newFixture("a", "b", "c")
	coll.At(1).SetDisabled(true)

	assert.False(t, ac.Hover(coll.At(1)), "disabled item cannot be hovered active")
	assert.Nil(t, ac.Active())

	require.True(t, ac.Hover(coll.At(2)))
	assert.True(t, coll.At(2).Active())
	assert.Equal(t, coll.At(2).ID(), ac.ActiveDescendantID())
	assert.Equal(t, coll.At(2), ac.PreviouslyActive())

	require.True(t, ac.Hover(coll.At(0)))
	assert.False(t, coll.At(2).Active(), "only one item is active")
	assert.True(t, coll.At(0).Active())
}

func TestHover_ForeignItemIgnored(t *testing.T) {
	_, ac := newFixture("a")
	assert.False(t, ac.Hover(NewItem("stranger", "x")))
	assert.Nil(t, ac.Active())
}

// =============================================================================
// RECONCILIATION
// =============================================================================

func TestReconcile_DisabledMovesToFollowing(t *testing.T) {
	coll, ac := newFixture("a", "b", "c")
	require.True(t, ac.Set(coll.At(1), OriginKeyboard))

	coll.At(1).SetDisabled(true)
	require.True(t, ac.Reconcile())

	assert.Equal(t, coll.At(2), ac.Active())
	assert.False(t, coll.At(1).Active())
}

func TestReconcile_DisabledFallsBackToPreceding(t *testing.T) {
	coll, ac := newFixture("a", "b", "c")
	coll.At(2).SetDisabled(true)
	require.True(t, ac.Set(coll.At(1), OriginKeyboard))

	coll.At(1).SetDisabled(true)
	require.True(t, ac.Reconcile())

	assert.Equal(t, coll.At(0), ac.Active())
}

func TestReconcile_RemovedUsesOldPosition(t *testing.T) {
	coll, ac := newFixture("a", "b", "c", "d")
	b := coll.At(1)
	require.True(t, ac.Set(b, OriginPointer))

	require.NoError(t, coll.Remove(b))
	require.True(t, ac.Reconcile())
	assert.Equal(t, "c", ac.Active().Label())
}

func TestNextPrevious_RemovedActiveIsNoop(t *testing.T) {
	coll, ac := newFixture("a", "b", "c")
	b := coll.At(1)
	require.True(t, ac.Set(b, OriginPointer))
	require.NoError(t, coll.Remove(b))

	assert.False(t, ac.Next(OriginKeyboard))
	assert.False(t, ac.Previous(OriginKeyboard))
	assert.Same(t, b, ac.Active(), "only Reconcile moves off a removed item")
}

func TestReconcile_RemovedLastFallsBack(t *testing.T) {
	coll, ac := newFixture("a", "b")
	b := coll.At(1)
	require.True(t, ac.Set(b, OriginPointer))

	require.NoError(t, coll.Remove(b))
	require.True(t, ac.Reconcile())
	assert.Equal(t, "a", ac.Active().Label())
}

func TestReconcile_NothingLeft(t *testing.T) {
	coll, ac := newFixture("a")
	require.True(t, ac.First(OriginKeyboard))

	coll.At(0).SetHidden(true)
	require.True(t, ac.Reconcile())
	assert.Nil(t, ac.Active())
	assert.Equal(t, "", ac.ActiveDescendantID())
}

func TestReconcile_StillValidIsNoop(t *testing.T) {
	coll, ac := newFixture("a", "b")
	require.True(t, ac.Set(coll.At(1), OriginKeyboard))
	coll.Insert(0, NewItem("z", "z"))

	assert.False(t, ac.Reconcile())
	assert.Equal(t, "b", ac.Active().Label())
}

// =============================================================================
// RESTORE AND DISCLOSURE
// =============================================================================

func TestRestoreOnOpen(t *testing.T) {
	coll, ac := newFixture("a", "b", "c")
	require.True(t, ac.Set(coll.At(2), OriginKeyboard))
	ac.Clear()
	require.Nil(t, ac.Active())

	assert.Equal(t, coll.At(2), ac.RestoreOnOpen(OriginProgrammatic))

	ac.Clear()
	coll.At(2).SetDisabled(true)
	assert.Equal(t, coll.At(0), ac.RestoreOnOpen(OriginProgrammatic))
}

func TestKeyboardDisclosure(t *testing.T) {
	coll := NewCollection(NewItem("a", "a"), NewItem("b", "b"))
	ac := NewActiveController(NewRegistry(coll.Items), WithKeyboardDisclosure())

	require.True(t, ac.First(OriginKeyboard))
	assert.True(t, coll.At(0).TooltipOpen())

	require.True(t, ac.Hover(coll.At(1)))
	assert.False(t, coll.At(1).TooltipOpen(), "pointer navigation does not open the tooltip")
	assert.False(t, coll.At(0).TooltipOpen(), "deactivated item closes its tooltip")
}

func TestChangeFunc(t *testing.T) {
	coll := NewCollection(NewItem("a", "a"), NewItem("b", "b"))
	var got []string
	ac := NewActiveController(NewRegistry(coll.Items), WithChangeFunc(func(prev, next *Item, origin Origin) {
		name := "<nil>"
		if next != nil {
			name = next.Label()
		}
		got = append(got, name+"/"+origin.String())
	}))

	ac.First(OriginKeyboard)
	ac.First(OriginKeyboard) // already active: no callback
	ac.Hover(coll.At(1))
	ac.Clear()

	assert.Equal(t, []string{"a/keyboard", "b/pointer", "<nil>/programmatic"}, got)
}
