// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dropdown

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigrun-overlay/internal/listbox"
)

// ErrFilterPanic wraps a panic recovered from the filter hook.
var ErrFilterPanic = errors.New("filter hook panicked")

// FilterFunc is the consumer's search hook. It returns the items that match
// query. A nil slice with a nil error leaves matching to the built-in
// matcher. An error leaves the current filtering unchanged.
type FilterFunc func(ctx context.Context, query string) ([]*listbox.Item, error)

// FilterResult is the outcome of one filter run. FilterCmd delivers it as a
// tea.Msg.
type FilterResult struct {
	ID    string
	Seq   uint64
	Query string
	Items []*listbox.Item
	Err   error
}

// Query returns the applied filter text.
func (d *Dropdown) Query() string { return d.query }

// MatchMode returns the built-in matcher.
func (d *Dropdown) MatchMode() MatchMode { return d.matchMode }

// SetMatchMode changes the built-in matcher. The current query is not
// re-applied.
func (d *Dropdown) SetMatchMode(mode MatchMode) { d.matchMode = mode }

// SetQuery runs the filter for query and applies the result. It reports
// whether the visible items were updated.
func (d *Dropdown) SetQuery(ctx context.Context, query string) bool {
	return d.ApplyFilterResult(runFilter(ctx, d.filter, d.id, d.nextFilterSeq(), query))
}

// FilterCmd runs the filter for query off the update loop. Pass the
// resulting FilterResult to ApplyFilterResult; results of superseded queries
// are discarded there.
func (d *Dropdown) FilterCmd(ctx context.Context, query string) tea.Cmd {
	fn, id, seq := d.filter, d.id, d.nextFilterSeq()
	return func() tea.Msg {
		return runFilter(ctx, fn, id, seq, query)
	}
}

// ApplyFilterResult hides the items the result excludes. Results for another
// dropdown, results older than the newest query, and failed runs change
// nothing.
func (d *Dropdown) ApplyFilterResult(res FilterResult) bool {
	if res.ID != d.id {
		return false
	}
	if res.Seq != d.filterSeq {
		d.log.Debug("dropdown filter result discarded", "query", res.Query, "seq", res.Seq, "latest", d.filterSeq)
		return false
	}
	if res.Err != nil {
		d.log.Warn("dropdown filter failed", "query", res.Query, "error", res.Err)
		return false
	}

	d.query = res.Query
	var keep map[*listbox.Item]bool
	if res.Items != nil {
		keep = make(map[*listbox.Item]bool, len(res.Items))
		for _, it := range res.Items {
			keep[it] = true
		}
	}
	for _, it := range d.reg.AllItems() {
		var show bool
		if keep != nil {
			show = keep[it]
		} else {
			show = d.matchMode.Matches(res.Query, it.Label())
		}
		it.SetHidden(!show)
	}

	d.refreshPseudoItems()
	d.active.Reconcile()
	if d.open && d.active.Active() == nil {
		d.active.First(listbox.OriginProgrammatic)
	}
	return true
}

// clearFilter shows every item and discards pending results.
func (d *Dropdown) clearFilter() {
	d.nextFilterSeq()
	d.query = ""
	for _, it := range d.reg.AllItems() {
		it.SetHidden(false)
	}
	d.refreshPseudoItems()
}

func (d *Dropdown) nextFilterSeq() uint64 {
	d.filterSeq++
	return d.filterSeq
}

// runFilter calls fn and converts a panic into an error. It touches no
// dropdown state so it can run on any goroutine.
func runFilter(ctx context.Context, fn FilterFunc, id string, seq uint64, query string) (res FilterResult) {
	res = FilterResult{ID: id, Seq: seq, Query: query}
	if fn == nil {
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	defer func() {
		if r := recover(); r != nil {
			res.Items = nil
			res.Err = fmt.Errorf("%w: %v", ErrFilterPanic, r)
		}
	}()
	res.Items, res.Err = fn(ctx, query)
	return res
}

// =============================================================================
// ADD
// =============================================================================

// addOffer reports whether the Add pseudo-item is offered for the current
// query, and its label.
func (d *Dropdown) addOffer() (string, bool) {
	query := strings.TrimSpace(d.query)
	if !d.allowAdd || query == "" {
		return "", false
	}
	want := fold(query)
	for _, it := range d.reg.AllItems() {
		if !it.Hidden() && fold(it.Label()) == want {
			return "", false
		}
	}
	return fmt.Sprintf("Add %q", query), true
}

// refreshPseudoItems shows or hides Select All and Add.
func (d *Dropdown) refreshPseudoItems() {
	d.selectAll.SetHidden(!(d.multiple && d.selectAllEnabled))
	label, offered := d.addOffer()
	if offered {
		d.addItem.SetLabel(label)
	}
	d.addItem.SetHidden(!offered)
}

// AddItem raises an add intent for the current query. When no listener
// cancels it and the add hook returns an item, the item is appended, the
// filter is cleared and the item is selected.
func (d *Dropdown) AddItem() bool {
	if d.disabled || d.addItem.Hidden() {
		return false
	}
	query := strings.TrimSpace(d.query)
	if !d.intents.Announce(&listbox.Intent{Kind: listbox.IntentAdd, Query: query}) {
		d.log.Debug("dropdown add canceled", "query", query)
		return false
	}
	if d.addFunc == nil {
		return true
	}
	item := d.addFunc(query)
	if item == nil {
		return false
	}
	d.items.Append(item)
	d.clearFilter()
	d.log.Info("dropdown item added", "label", item.Label(), "value", item.Value())
	if item.Selected() {
		return true
	}
	return d.Select(item)
}
