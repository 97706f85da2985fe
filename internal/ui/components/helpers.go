// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-overlay/internal/listbox"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// toStr converts an integer to a string without using fmt package.
func toStr(n int) string {
	if n == 0 {
		return "0"
	}

	if n == -9223372036854775808 { // math.MinInt64
		return "-9223372036854775808"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}

	if negative {
		return "-" + string(digits)
	}
	return string(digits)
}

// window returns the bounds of at most rows items, centred on active when
// the list is longer than rows.
func window(items []*listbox.Item, active *listbox.Item, rows int) (int, int) {
	if rows <= 0 || len(items) <= rows {
		return 0, len(items)
	}
	idx := 0
	for i, it := range items {
		if it == active {
			idx = i
			break
		}
	}
	start := idx - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > len(items) {
		start = len(items) - rows
	}
	return start, start + rows
}

// highlight renders the runes of s at positions with style.
func highlight(s string, positions []int, style lipgloss.Style) string {
	if len(positions) == 0 {
		return s
	}
	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}
	var b strings.Builder
	for i, r := range []rune(s) {
		if marked[i] {
			b.WriteString(style.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// visibleItems drops hidden items.
func visibleItems(items []*listbox.Item) []*listbox.Item {
	out := make([]*listbox.Item, 0, len(items))
	for _, it := range items {
		if !it.Hidden() {
			out = append(out, it)
		}
	}
	return out
}
