// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package listbox

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotInCollection is returned when an item is not part of the collection.
	ErrNotInCollection = errors.New("item not in collection")

	// ErrInputTrigger rejects sub-menus anchored to an input-type control,
	// which would swallow the keys the cascade dispatches.
	ErrInputTrigger = errors.New("sub-menu trigger is an input control")

	// ErrAlreadyAttached is returned when an item already owns a sub-menu or a
	// menu is already attached elsewhere.
	ErrAlreadyAttached = errors.New("already attached")

	// ErrSubmenuCycle is returned when attaching would make a menu its own
	// ancestor.
	ErrSubmenuCycle = errors.New("sub-menu cycle")
)

// ConfigError reports a malformed widget setup. It is fatal to the instance.
type ConfigError struct {
	Op  string // Operation that failed (e.g. "attach submenu")
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("overlay config: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("overlay config: %s", e.Op)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a configuration error.
func NewConfigError(op string, err error) *ConfigError {
	return &ConfigError{Op: op, Err: err}
}

// IsConfigError reports whether err is a configuration error.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
