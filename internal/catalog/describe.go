// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"fmt"
	"strings"
)

// Markdown describes the catalog as a Markdown document: each top-level menu
// as a nested list following its sub-menus, then a table of dropdowns.
func (c *Catalog) Markdown() string {
	var b strings.Builder
	b.WriteString("# Catalog\n\n")

	if len(c.Menus) > 0 {
		b.WriteString("## Menus\n\n")
		for _, root := range c.Roots() {
			fmt.Fprintf(&b, "- **%s**\n", root)
			c.describeMenu(&b, root, 1, map[string]bool{root: true})
		}
		b.WriteString("\n")
	}

	if len(c.Dropdowns) > 0 {
		b.WriteString("## Dropdowns\n\n")
		b.WriteString("| Key | Label | Mode | Options |\n")
		b.WriteString("|-----|-------|------|---------|\n")
		for _, d := range c.Dropdowns {
			mode := "default"
			if d.Multiple != nil {
				mode = "single"
				if *d.Multiple {
					mode = "multi"
				}
			}
			opts := make([]string, 0, len(d.Options))
			for _, o := range d.Options {
				opts = append(opts, mdEscape(o.Label))
			}
			fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", d.Key, mdEscape(d.Label), mode, strings.Join(opts, ", "))
		}
	}
	return b.String()
}

func (c *Catalog) describeMenu(b *strings.Builder, name string, depth int, seen map[string]bool) {
	spec, ok := c.Menu(name)
	if !ok {
		return
	}
	indent := strings.Repeat("  ", depth)
	for _, it := range spec.Items {
		line := mdEscape(it.Label)
		if it.Value != "" {
			line += fmt.Sprintf(" `%s`", it.Value)
		}
		if it.Disabled {
			line += " _(disabled)_"
		}
		fmt.Fprintf(b, "%s- %s\n", indent, line)
		if it.Submenu != "" && !seen[it.Submenu] {
			seen[it.Submenu] = true
			c.describeMenu(b, it.Submenu, depth+1, seen)
		}
	}
}

func mdEscape(s string) string {
	return strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`).Replace(s)
}
