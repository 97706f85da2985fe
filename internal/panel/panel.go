// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package panel positions overlay panels.
//
// The widgets only ever say "show this panel next to that anchor" and "hide
// this panel". Geometry lives entirely behind the Service interface. Stack is
// the terminal implementation: it lays open panels out left to right, each
// cascading from the row of the item that opened it.
package panel

import (
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// SERVICE
// =============================================================================

// Anchor says where a panel attaches.
type Anchor struct {
	// Parent is the id of the panel this one cascades from. Empty for a
	// panel anchored to a top-level trigger.
	Parent string

	// Row is the anchor's row inside the parent panel, or the trigger row.
	Row int
}

// Service shows and hides panels. Both calls must be idempotent.
type Service interface {
	Show(anchor Anchor, id string)
	Hide(id string)
}

// Noop is a Service that does nothing.
type Noop struct{}

func (Noop) Show(Anchor, string) {}
func (Noop) Hide(string)         {}

// =============================================================================
// STACK
// =============================================================================

type entry struct {
	id     string
	anchor Anchor
}

// Stack is a Service that keeps open panels in show order.
type Stack struct {
	entries []entry

	// Gap is the number of blank columns between cascaded panels.
	Gap int
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Show makes id visible, or re-anchors it when already visible.
func (s *Stack) Show(anchor Anchor, id string) {
	for i := range s.entries {
		if s.entries[i].id == id {
			s.entries[i].anchor = anchor
			return
		}
	}
	s.entries = append(s.entries, entry{id: id, anchor: anchor})
}

// Hide removes id. Hiding an unknown panel is a no-op.
func (s *Stack) Hide(id string) {
	for i := range s.entries {
		if s.entries[i].id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Visible returns the visible panel ids in show order.
func (s *Stack) Visible() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.id
	}
	return out
}

// IsVisible reports whether id is shown.
func (s *Stack) IsVisible(id string) bool {
	_, ok := s.Anchor(id)
	return ok
}

// Anchor returns id's anchor.
func (s *Stack) Anchor(id string) (Anchor, bool) {
	for _, e := range s.entries {
		if e.id == id {
			return e.anchor, true
		}
	}
	return Anchor{}, false
}

// Top returns the row offset of id's first line relative to the first
// top-level trigger.
func (s *Stack) Top(id string) int {
	seen := make(map[string]bool)
	top := 0
	for {
		a, ok := s.Anchor(id)
		if !ok || seen[id] {
			return top
		}
		seen[id] = true
		top += a.Row
		if a.Parent == "" {
			return top
		}
		id = a.Parent
	}
}

// Render joins the visible panels side by side. content returns the rendered
// body for a panel id; empty bodies are skipped.
func (s *Stack) Render(content func(id string) string) string {
	var cols []string
	for _, e := range s.entries {
		body := content(e.id)
		if body == "" {
			continue
		}
		style := lipgloss.NewStyle().PaddingTop(s.Top(e.id))
		if len(cols) > 0 && s.Gap > 0 {
			style = style.PaddingLeft(s.Gap)
		}
		cols = append(cols, style.Render(body))
	}
	if len(cols) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
