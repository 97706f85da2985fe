// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dropdown

// CheckValidity returns ErrValueMissing when a selection is required and the
// committed value is empty. A disabled dropdown is always valid.
func (d *Dropdown) CheckValidity() error {
	if !d.required || d.disabled {
		return nil
	}
	if len(d.Value()) == 0 {
		return ErrValueMissing
	}
	return nil
}

// ReportValidity checks validity and records the result for rendering. The
// invalid mark clears on the next selection.
func (d *Dropdown) ReportValidity() bool {
	err := d.CheckValidity()
	d.invalid = err != nil
	if err != nil {
		d.log.Info("dropdown invalid", "error", err)
	}
	return err == nil
}

// Invalid reports whether the last ReportValidity failed.
func (d *Dropdown) Invalid() bool { return d.invalid }
