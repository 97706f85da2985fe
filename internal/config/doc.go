// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for overlay.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - DropdownConfig: Defaults for dropdowns the catalog leaves unset
//   - MenuConfig: Keyboard tooltips and sub-menu trigger kind
//   - StorageConfig: Selection persistence
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (OVERLAY_*)
//   - ~/.overlay/config.toml
//   - ~/.overlay/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mode := cfg.Dropdown.FilterMode
package config
