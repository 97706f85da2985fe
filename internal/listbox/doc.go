// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package listbox is the engine shared by the dropdown and menu widgets.

It owns three things:

  - Item and Collection: the consumer-owned, observable sequence of entries.
  - Registry: the ordered, filtered views (all, visible+enabled, first/last
    enabled) recomputed on every call.
  - ActiveController: which single item, if any, is active, and every
    navigation command that moves it.

# Usage

	items := listbox.NewCollection()
	items.Append(listbox.NewItem("Copy", "copy"))
	items.Append(listbox.NewItem("Paste", "paste"))

	reg := listbox.NewRegistry(items.Items)
	ac := listbox.NewActiveController(reg)
	ac.First(listbox.OriginKeyboard)
	ac.Next(listbox.OriginKeyboard) // "Paste"
	ac.Next(listbox.OriginKeyboard) // still "Paste": navigation never wraps

Nothing in this package is safe for concurrent use. It is driven from a
single update loop.
*/
package listbox
