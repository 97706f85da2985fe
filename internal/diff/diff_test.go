// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"strings"
	"testing"

	"github.com/jeranaias/rigrun-overlay/internal/catalog"
)

func boolPtr(b bool) *bool { return &b }

func TestCatalogs_Identical(t *testing.T) {
	d := Catalogs(catalog.Default(), catalog.Default())

	if !d.Empty() {
		t.Errorf("Expected no changes, got:\n%s", Format(d))
	}
	if d.Summary() != "No changes" {
		t.Errorf("Summary() = %q", d.Summary())
	}
}

func TestCatalogs_NilOld(t *testing.T) {
	c := catalog.Default()
	d := Catalogs(nil, c)

	if d.Stats.Additions != len(c.Menus)+len(c.Dropdowns) {
		t.Errorf("Expected every menu and dropdown added, got %+v", d.Stats)
	}
	if d.Stats.Deletions != 0 || d.Stats.Modifications != 0 {
		t.Errorf("Unexpected stats %+v", d.Stats)
	}
}

func TestCatalogs_Items(t *testing.T) {
	old := &catalog.Catalog{Menus: []catalog.MenuSpec{{
		Name: "File",
		Items: []catalog.ItemSpec{
			{Label: "New", Value: "file.new"},
			{Label: "Save", Value: "file.save"},
			{Label: "Close"},
		},
	}}}
	new := &catalog.Catalog{Menus: []catalog.MenuSpec{{
		Name: "File",
		Items: []catalog.ItemSpec{
			{Label: "New…", Value: "file.new"},
			{Label: "Save", Value: "file.save", Disabled: true},
			{Label: "Print", Value: "file.print"},
		},
	}}}

	d := Catalogs(old, new)

	want := []string{
		"~ item File/file.new: label New -> New…",
		"~ item File/file.save: disabled false -> true",
		"+ item File/file.print",
		"- item File/Close",
	}
	got := strings.Split(strings.TrimSuffix(Format(d), "\n"), "\n")
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("Format() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
	if d.Summary() != "+1 -1 ~2" {
		t.Errorf("Summary() = %q, want %q", d.Summary(), "+1 -1 ~2")
	}
}

func TestCatalogs_Dropdowns(t *testing.T) {
	old := &catalog.Catalog{Dropdowns: []catalog.DropdownSpec{
		{Key: "fruit", Options: []catalog.ItemSpec{{Label: "Apple", Value: "apple"}}},
		{Key: "size"},
	}}
	new := &catalog.Catalog{Dropdowns: []catalog.DropdownSpec{
		{Key: "fruit", Multiple: boolPtr(true), Options: []catalog.ItemSpec{{Label: "Apple", Value: "apple"}}},
		{Key: "color"},
	}}

	d := Catalogs(old, new)

	out := Format(d)
	for _, want := range []string{
		"~ dropdown fruit: multiple default -> true\n",
		"+ dropdown color\n",
		"- dropdown size\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "option") {
		t.Errorf("Unchanged options should not be listed:\n%s", out)
	}
}

func TestCatalogs_MenuAddedAndRemoved(t *testing.T) {
	old := &catalog.Catalog{Menus: []catalog.MenuSpec{{Name: "Edit"}}}
	new := &catalog.Catalog{Menus: []catalog.MenuSpec{{Name: "View"}}}

	d := Catalogs(old, new)

	if len(d.Changes) != 2 {
		t.Fatalf("Expected 2 changes, got %d", len(d.Changes))
	}
	if d.Changes[0].Type != ChangeAdded || d.Changes[0].Key != "View" {
		t.Errorf("Changes[0] = %+v", d.Changes[0])
	}
	if d.Changes[1].Type != ChangeRemoved || d.Changes[1].Path() != "Edit" {
		t.Errorf("Changes[1] = %+v", d.Changes[1])
	}
}

func TestChangeType_StringAndPrefix(t *testing.T) {
	tests := []struct {
		typ    ChangeType
		name   string
		prefix string
	}{
		{ChangeAdded, "added", "+"},
		{ChangeRemoved, "removed", "-"},
		{ChangeModified, "modified", "~"},
		{ChangeType(9), "unknown", " "},
	}
	for _, tt := range tests {
		if tt.typ.String() != tt.name || tt.typ.Prefix() != tt.prefix {
			t.Errorf("%d: got %q %q", tt.typ, tt.typ.String(), tt.typ.Prefix())
		}
	}
}
