// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the overlay command line.
//
// Without a sub-command overlay runs the interactive demo when attached to a
// terminal and prints help otherwise.
//
// # Commands
//
//   - demo: menu bar and dropdowns built from the catalog
//   - catalog validate|init|show: check, create or print the catalog file
//   - config show|get|set|path: inspect and change settings
//   - selections list|delete|clear: manage saved dropdown values
//   - version: build information
//
// Every command accepts --json; output is then a single JSONResponse.
//
// # Usage
//
//	os.Exit(cli.Execute())
package cli
