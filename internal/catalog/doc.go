// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog loads the menus and dropdowns the demo shows from a TOML
// file and keeps the live widgets in step with it.
//
// A reload never rebuilds a widget. Items are added, removed, relabeled and
// enabled or disabled in place, so menus and dropdowns reconcile their
// active item and selection the same way they would for any consumer
// mutation.
//
// # Key Types
//
//   - Catalog: Decoded file with MenuSpec and DropdownSpec entries
//   - MenuSet: Live menu forest built from a catalog
//   - Watcher: fsnotify watcher delivering Reload messages
//
// # Usage
//
//	c, err := catalog.LoadOrDefault(path)
//	menus, err := catalog.BuildMenus(c, menu.WithPanel(stack))
//
//	w := catalog.NewWatcher(path)
//	_ = w.Watch()
//	defer w.Close()
//	// in Update: case catalog.Reload: menus.Apply(msg.Catalog); return m, w.Next()
package catalog
