// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dropdown

import (
	"github.com/jeranaias/rigrun-overlay/internal/listbox"
	"github.com/jeranaias/rigrun-overlay/internal/overflow"
)

// =============================================================================
// TAGS
// =============================================================================

// Tags returns the items rendered as tags: the selected, enabled items in
// selection order.
func (d *Dropdown) Tags() []*listbox.Item {
	tags := make([]*listbox.Item, 0, len(d.selection))
	for _, it := range d.selection {
		if !it.Disabled() {
			tags = append(tags, it)
		}
	}
	return tags
}

// TagLimit is the number of tags shown before the indicator.
func (d *Dropdown) TagLimit() int {
	n := d.tags.Limit()
	if d.maxTags > 0 && n > d.maxTags {
		n = d.maxTags
	}
	if total := len(d.Tags()); n > total {
		n = total
	}
	return n
}

// VisibleTags returns the first TagLimit tags.
func (d *Dropdown) VisibleTags() []*listbox.Item {
	return d.Tags()[:d.TagLimit()]
}

// OverflowIndicator is the summary for the hidden tags, e.g. "+2", or "".
func (d *Dropdown) OverflowIndicator() string {
	return overflow.Indicator(len(d.Tags()) - d.TagLimit())
}

// TagOverflow exposes the accountant for callers that step the search one
// render at a time.
func (d *Dropdown) TagOverflow() *overflow.Accountant { return d.tags }

// SetMaxTags caps the visible tags. Zero removes the cap.
func (d *Dropdown) SetMaxTags(n int) {
	if n < 0 {
		n = 0
	}
	d.maxTags = n
}

// SetTagWidth changes the width available to the tag row and reconverges.
func (d *Dropdown) SetTagWidth(width int) {
	if width == d.tagWidth {
		return
	}
	d.tagWidth = width
	d.resizeTags()
}

// SetTagMeasure replaces the layout measurement with fn, e.g. a renderer
// that measures its own output. Nil restores the built-in measurement.
func (d *Dropdown) SetTagMeasure(fn overflow.Measure) {
	d.tagMeasure = fn
	d.resetTags()
}

// measure builds the measurement for the current tags. A row without a
// width never overflows.
func (d *Dropdown) measure() overflow.Measure {
	if d.tagMeasure != nil {
		return d.tagMeasure
	}
	if d.tagWidth <= 0 {
		return nil
	}
	tags := d.Tags()
	labels := make([]string, len(tags))
	for i, it := range tags {
		labels[i] = it.Label()
	}
	return overflow.LayoutMeasure(d.tagWidth, labels, d.tagStyle, d.tagGap)
}

// resetTags restarts the search after the tag set changed.
func (d *Dropdown) resetTags() {
	if d.applying != applyNone {
		return
	}
	d.tags.SetMeasure(d.measure())
	d.tags.Reset(len(d.Tags()))
}

// resizeTags reconverges from the current limit after a width or label
// change.
func (d *Dropdown) resizeTags() {
	d.tags.SetMeasure(d.measure())
	d.tags.Resize()
}
