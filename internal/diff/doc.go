// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff compares two catalogs the way a reload reconciles them:
// menus by name, dropdowns by key and items by value (or label).
//
// # Usage
//
//	d := diff.Catalogs(current, edited)
//	fmt.Print(diff.Format(d))
//	fmt.Println(d.Summary())
package diff
