// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components renders the overlay widgets in a terminal.

The views hold no widget state of their own. A DropdownView or MenuView reads
everything it draws from the dropdown or menu behind it and turns Bubble Tea
key messages into widget commands, so the same widget can be driven from a
test without a view at all.

# Views

DropdownView (dropdown_view.go) - Trigger line with tags, filter field and panel.
MenuView (menu_view.go) - Menu bar and the cascade of open panels.

# Supporting Components

LoadingSpinner (spinner.go) - Spinner row of a loading menu panel.
StatusBar (statusbar.go) - Status, focused widget and key help.
ToastManager (toast.go) - Auto-dismissing notices such as catalog reloads.

# Bubble Tea Integration

	func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
		var cmd tea.Cmd
		m.fruit, cmd = m.fruit.Update(msg)
		return m, cmd
	}

Filter runs are returned as commands and come back as dropdown.FilterResult
messages, which must be routed to every DropdownView.
*/
package components
