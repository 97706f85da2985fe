// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package overflow decides how many selected-item tags fit in a trigger
// before a "+N" summary takes over.
//
// The search is a hysteresis loop over a caller-supplied measurement: start
// by showing everything, shrink one tag at a time while the row overflows,
// then probe one tag larger at a time and stop at the first probe that
// overflows. The loop can run to completion (Settle) or one measurement per
// frame (Step) when each measurement needs a fresh render.
package overflow

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// MEASUREMENT
// =============================================================================

// Measure reports the content width and the available width when the first
// visible of total tags are shown, plus the summary indicator whenever
// visible < total.
type Measure func(visible, total int) (scrollWidth, clientWidth int)

// LayoutMeasure measures tags rendered with style, separated by gap columns,
// in a row containerWidth columns wide.
func LayoutMeasure(containerWidth int, labels []string, style lipgloss.Style, gap int) Measure {
	widths := make([]int, len(labels))
	for i, l := range labels {
		widths[i] = lipgloss.Width(style.Render(l))
	}
	return func(visible, total int) (int, int) {
		if visible > len(widths) {
			visible = len(widths)
		}
		w := 0
		for i := 0; i < visible; i++ {
			if i > 0 {
				w += gap
			}
			w += widths[i]
		}
		if visible < total {
			if visible > 0 {
				w += gap
			}
			w += lipgloss.Width(style.Render(Indicator(total - visible)))
		}
		return w, containerWidth
	}
}

// Indicator renders the summary for hidden tags, e.g. "+2". Empty when
// nothing is hidden.
func Indicator(hidden int) string {
	if hidden <= 0 {
		return ""
	}
	return "+" + strconv.Itoa(hidden)
}

// =============================================================================
// ACCOUNTANT
// =============================================================================

type phase int

const (
	phaseShrink phase = iota
	phaseProbe
	phaseStable
)

// Accountant tracks the tag overflow limit.
type Accountant struct {
	measure Measure
	total   int
	limit   int
	phase   phase
}

// New creates an accountant. A nil measure never overflows.
func New(measure Measure) *Accountant {
	return &Accountant{measure: measure, phase: phaseStable}
}

// SetMeasure replaces the measurement, e.g. after a resize. The limit is left
// alone until the next Resize, Reset or Step.
func (a *Accountant) SetMeasure(measure Measure) {
	a.measure = measure
}

// Limit is the number of tags to render.
func (a *Accountant) Limit() int { return a.limit }

// Total is the number of selected tags.
func (a *Accountant) Total() int { return a.total }

// Hidden is the number of tags folded into the indicator.
func (a *Accountant) Hidden() int { return a.total - a.limit }

// Indicator is the summary text for the hidden tags.
func (a *Accountant) Indicator() string { return Indicator(a.Hidden()) }

// Stable reports whether the search has converged.
func (a *Accountant) Stable() bool { return a.phase == phaseStable }

// Restart begins a new search that shows all total tags. Call Step until
// Stable, or Settle.
func (a *Accountant) Restart(total int) {
	if total < 0 {
		total = 0
	}
	a.total = total
	a.limit = total
	a.phase = phaseShrink
}

// Reset restarts with total tags and runs the search to completion.
func (a *Accountant) Reset(total int) int {
	a.Restart(total)
	return a.Settle()
}

// Resize re-runs the search from the current limit, for when the available
// width changed but the tags did not.
func (a *Accountant) Resize() int {
	if a.limit > a.total {
		a.limit = a.total
	}
	a.phase = phaseShrink
	return a.Settle()
}

// Settle steps until stable and returns the limit.
func (a *Accountant) Settle() int {
	// Each step either moves the limit monotonically or finishes.
	for guard := 2*a.total + 4; guard > 0; guard-- {
		if a.Step() {
			break
		}
	}
	a.phase = phaseStable
	return a.limit
}

// Step takes one measurement and adjusts the limit by at most one. It
// reports whether the search is stable.
func (a *Accountant) Step() bool {
	switch a.phase {
	case phaseShrink:
		if a.total == 0 {
			a.limit = 0
			a.phase = phaseStable
			return true
		}
		if a.overflows(a.limit) {
			if a.limit > 1 {
				a.limit--
				return false
			}
			a.phase = phaseStable
			return true
		}
		a.phase = phaseProbe
		return false

	case phaseProbe:
		if a.limit >= a.total || a.overflows(a.limit+1) {
			a.phase = phaseStable
			return true
		}
		a.limit++
		return false
	}
	return true
}

func (a *Accountant) overflows(visible int) bool {
	if a.measure == nil {
		return false
	}
	scroll, client := a.measure(visible, a.total)
	return scroll > client
}
