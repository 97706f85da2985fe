// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package demo

// =============================================================================
// PERSISTENCE MESSAGES
// =============================================================================

// SelectionsRestoredMsg carries the saved values loaded at startup or for
// dropdowns a catalog reload added.
type SelectionsRestoredMsg struct {
	Values map[string][]string
	Err    error
}

// SelectionSavedMsg reports one finished save. Superseded saves report
// nothing.
type SelectionSavedMsg struct {
	Key string
	Err error
}
