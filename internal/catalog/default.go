// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"fmt"
	"os"

	"github.com/jeranaias/rigrun-overlay/internal/util"
)

// DefaultTOML is the catalog used when none exists on disk.
const DefaultTOML = `# overlay catalog
# Menus without a parent are shown in the menu bar. Edit while the demo runs
# to see the live widgets reconcile.

[[menu]]
name = "File"

  [[menu.item]]
  label = "New"
  value = "file.new"

  [[menu.item]]
  label = "Open Recent"
  value = "file.recent"
  submenu = "Recent"

  [[menu.item]]
  label = "Save"
  value = "file.save"

  [[menu.item]]
  label = "Quit"
  value = "file.quit"

[[menu]]
name = "Recent"

  [[menu.item]]
  label = "notes.txt"

  [[menu.item]]
  label = "todo.md"

  [[menu.item]]
  label = "More"
  value = "recent.more"
  submenu = "Archive"

[[menu]]
name = "Archive"

  [[menu.item]]
  label = "2023"

  [[menu.item]]
  label = "2022"
  disabled = true

[[menu]]
name = "Edit"

  [[menu.item]]
  label = "Undo"
  value = "edit.undo"

  [[menu.item]]
  label = "Redo"
  value = "edit.redo"
  disabled = true

[[dropdown]]
key = "fruit"
label = "Fruit"
placeholder = "Pick a fruit"

  [[dropdown.option]]
  label = "Apple"
  value = "apple"

  [[dropdown.option]]
  label = "Banana"
  value = "banana"

  [[dropdown.option]]
  label = "Cherry"
  value = "cherry"

  [[dropdown.option]]
  label = "Durian"
  value = "durian"
  disabled = true

[[dropdown]]
key = "toppings"
label = "Toppings"
multiple = true
select_all = true
allow_add = true
filter_mode = "fuzzy"

  [[dropdown.option]]
  label = "Cheese"
  value = "cheese"
  selected = true

  [[dropdown.option]]
  label = "Mushrooms"
  value = "mushrooms"

  [[dropdown.option]]
  label = "Olives"
  value = "olives"

  [[dropdown.option]]
  label = "Peppers"
  value = "peppers"

  [[dropdown.option]]
  label = "Pineapple"
  value = "pineapple"
`

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse([]byte(DefaultTOML))
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

// WriteDefault writes DefaultTOML to path unless a file already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("catalog already exists: %s", path)
	}
	return util.AtomicWriteFile(path, []byte(DefaultTOML), 0644)
}

// LoadOrDefault loads path, falling back to the built-in catalog when the
// file does not exist. Invalid files are still errors.
func LoadOrDefault(path string) (*Catalog, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}
