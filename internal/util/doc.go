// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the overlay packages.
//
// # Key Functions
//
// Display width:
//   - StringWidth, TruncateWidth, PadRight, SplitAtWidth: cell-aware text
//     fitting for panel rows and tags
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync, used for config
//     and catalog saves
//
// # Usage
//
//	row := util.PadRight(item.Label(), width)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
