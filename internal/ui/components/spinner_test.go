// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/rigrun-overlay/internal/ui/styles"
)

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestNewLoadingSpinner(t *testing.T) {
	s := NewLoadingSpinner(styles.NewTheme("dark"))

	if s.IsActive() {
		t.Error("NewLoadingSpinner() should not be active initially")
	}
	if s.message != "Loading" {
		t.Errorf("message = %q, want %q", s.message, "Loading")
	}
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}
	if s.Elapsed() != 0 {
		t.Error("Elapsed() should be zero before Start")
	}
}

func TestLoadingSpinner_StartStop(t *testing.T) {
	s := NewLoadingSpinner(styles.NewTheme("dark"))

	if cmd := s.Start(); cmd == nil {
		t.Fatal("Start() should return a tick command")
	}
	if cmd := s.Start(); cmd != nil {
		t.Error("Start() on an active spinner should not start a second tick loop")
	}
	if !s.IsActive() {
		t.Error("spinner should be active after Start")
	}

	s.SetMessage("Fetching")
	view := s.View()
	if !strings.Contains(view, "Fetching...") {
		t.Errorf("View() = %q, want it to contain the message", view)
	}

	s.Stop()
	if s.IsActive() {
		t.Error("spinner should be inactive after Stop")
	}
	if _, cmd := s.Update(nil); cmd != nil {
		t.Error("Update() on a stopped spinner should not reschedule")
	}
}
