// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Confirmation for destructive commands.
//
//  1. --yes proceeds without prompting
//  2. --json or a non-terminal stdin requires --yes
//  3. otherwise the user is asked on the terminal

package cli

import (
	"errors"
	"strings"

	"github.com/peterh/liner"
)

// ErrNotConfirmed is returned when the user declines a confirmation.
var ErrNotConfirmed = errors.New("cancelled")

// canPrompt and prompter are variables so tests can answer for the user.
var canPrompt = IsTTY

var prompter = func(prompt string) (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	return line.Prompt(prompt)
}

// requireConfirmation asks before action unless yes is set.
func requireConfirmation(action string, yes, jsonMode bool) error {
	if yes {
		return nil
	}
	if jsonMode || !canPrompt() {
		return NewValidationError("confirmation", "", action+" needs --yes when not prompting", "overlay selections clear --yes")
	}

	answer, err := prompter(action + "? [y/N] ")
	if errors.Is(err, liner.ErrPromptAborted) {
		return ErrNotConfirmed
	}
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return ErrNotConfirmed
	}
}
