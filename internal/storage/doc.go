// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists committed dropdown values for overlay.
//
// Each dropdown is stored under a widget key with its values in selection
// order, so a multi-select restored through SetValue comes back in the
// order the user picked.
//
// # Key Types
//
//   - SelectionStore: SQLite-backed store (modernc.org/sqlite, no cgo)
//   - SelectionRecord: One widget's committed value
//
// # Usage
//
//	store, err := storage.OpenSelectionStore(path)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	err = store.Save(ctx, "fruit", d.Value(), d.Multiple())
//	rec, err := store.Load(ctx, "fruit")
//	if errors.Is(err, storage.ErrNotFound) {
//	    // nothing saved yet
//	}
//
// # Storage Location
//
// Selections are stored in ~/.overlay/selections.db unless storage.path is
// set.
package storage
