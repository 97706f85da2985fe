// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package listbox

// =============================================================================
// INTENTS
// =============================================================================

// IntentKind identifies the transition an intent announces.
type IntentKind int

const (
	IntentOpen IntentKind = iota
	IntentClose
	IntentSelect
	IntentAdd
)

// String returns the intent name.
func (k IntentKind) String() string {
	switch k {
	case IntentOpen:
		return "open"
	case IntentClose:
		return "close"
	case IntentSelect:
		return "select"
	case IntentAdd:
		return "add"
	default:
		return "unknown"
	}
}

// Intent is announced before a transition. If any listener cancels it the
// transition does not happen and no derived state changes.
type Intent struct {
	Kind IntentKind

	// Item is the subject of select intents.
	Item *Item

	// Query carries the filter text for add intents.
	Query string

	canceled bool
}

// Cancel vetoes the transition.
func (in *Intent) Cancel() { in.canceled = true }

// Canceled reports whether a listener vetoed the transition.
func (in *Intent) Canceled() bool { return in.canceled }

// IntentListener receives intents synchronously.
type IntentListener func(*Intent)

// Intents is a list of listeners. The zero value is ready to use.
type Intents struct {
	listeners []IntentListener
}

// Listen adds a listener.
func (is *Intents) Listen(l IntentListener) {
	if l != nil {
		is.listeners = append(is.listeners, l)
	}
}

// Announce delivers an intent to every listener and reports whether the
// transition may proceed.
func (is *Intents) Announce(in *Intent) bool {
	for _, l := range is.listeners {
		l(in)
	}
	return !in.canceled
}
