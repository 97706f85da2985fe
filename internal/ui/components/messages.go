// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

// =============================================================================
// MESSAGES
// =============================================================================

// MenuCommitMsg reports a menu item that was committed from the keyboard.
type MenuCommitMsg struct {
	// Menu is the name of the level the item belongs to.
	Menu  string
	Label string
	Value string
}

// DropdownChangeMsg reports a dropdown's new committed value.
type DropdownChangeMsg struct {
	Key    string
	Values []string
}
