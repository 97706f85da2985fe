// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the overlay widgets.
//
// All colors use Lip Gloss AdaptiveColor so a theme follows the terminal's
// light or dark background. State is also carried by ASCII indicators, so
// checked, disabled and invalid items read correctly without color.
//
// # Key Types
//
//   - Theme: Styles for the menu bar, panels, dropdown triggers and tags
//   - IndicatorSet: Glyphs for check, radio, sub-menu and invalid states
//   - SpinnerConfig: Frames for the loading indicator
//
// # Usage
//
//	theme := styles.NewTheme(cfg.UI.Theme)
//	row := theme.ItemActive.Render(item.Label())
package styles
