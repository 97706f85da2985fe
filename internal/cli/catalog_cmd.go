// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// catalog_cmd.go - Catalog validate, init, show, describe and diff commands.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-overlay/internal/catalog"
	"github.com/jeranaias/rigrun-overlay/internal/diff"
	"github.com/jeranaias/rigrun-overlay/internal/logging"
)

func newCatalogCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with the menu and dropdown catalog",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "validate [path]",
			Short: "Check a catalog file and build its widgets",
			Example: `  overlay catalog validate
  overlay catalog validate ./catalog.toml --json`,
			Args: cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := g.catalogArg(args)
				if err != nil {
					return err
				}
				return OutputJSON(cmd.OutOrStdout(), g.json, "catalog validate", func() (interface{}, error) {
					return validateCatalog(cmd, g, path)
				})
			},
		},
		&cobra.Command{
			Use:   "init [path]",
			Short: "Write the built-in catalog to a file",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := g.catalogArg(args)
				if err != nil {
					return err
				}
				return OutputJSON(cmd.OutOrStdout(), g.json, "catalog init", func() (interface{}, error) {
					if err := catalog.WriteDefault(path); err != nil {
						return nil, NewCommandError("catalog", "init", path, err)
					}
					if !g.json {
						fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
					}
					return map[string]string{"path": path}, nil
				})
			},
		},
		&cobra.Command{
			Use:   "show [path]",
			Short: "Print the catalog in effect as TOML",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := g.catalogArg(args)
				if err != nil {
					return err
				}
				c, err := catalog.LoadOrDefault(path)
				if err != nil {
					return err
				}
				data, err := c.Encode()
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), highlightTOML(string(data)))
				return err
			},
		},
		&cobra.Command{
			Use:   "describe [path]",
			Short: "Describe the menus and dropdowns of the catalog",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := g.catalogArg(args)
				if err != nil {
					return err
				}
				c, err := catalog.LoadOrDefault(path)
				if err != nil {
					return err
				}
				if g.json {
					return NewJSONResponse("catalog describe", map[string]string{"markdown": c.Markdown()}).Print(cmd.OutOrStdout())
				}
				width, _ := GetTerminalSize()
				_, err = fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(c.Markdown(), width))
				return err
			},
		},
		&cobra.Command{
			Use:   "diff <old> [new]",
			Short: "Show what reloading a catalog would change",
			Long: "Compares two catalog files the way the demo reconciles a reload.\n" +
				"With one argument the file is compared against the configured catalog.",
			Example: `  overlay catalog diff ~/.overlay/catalog.toml ./catalog.toml`,
			Args:    cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				oldPath, newPath := args[0], ""
				if len(args) == 2 {
					newPath = args[1]
				} else {
					var err error
					if newPath, err = g.catalogArg(nil); err != nil {
						return err
					}
					oldPath, newPath = newPath, oldPath
				}
				return OutputJSON(cmd.OutOrStdout(), g.json, "catalog diff", func() (interface{}, error) {
					old, err := catalog.LoadOrDefault(oldPath)
					if err != nil {
						return nil, err
					}
					next, err := catalog.Load(newPath)
					if err != nil {
						return nil, err
					}
					d := diff.Catalogs(old, next)
					if !g.json {
						w := cmd.OutOrStdout()
						fmt.Fprint(w, diff.Format(d))
						fmt.Fprintln(w, d.Summary())
					}
					return d, nil
				})
			},
		},
	)
	return cmd
}

// catalogArg returns the positional path, or the configured catalog path.
func (g *globalFlags) catalogArg(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.ResolvedCatalogPath()
}

// validateCatalog loads path and builds its menus, so sub-menu links and
// triggers are checked as well as the file itself.
func validateCatalog(cmd *cobra.Command, g *globalFlags, path string) (*CatalogData, error) {
	data := &CatalogData{Path: path}

	var c *catalog.Catalog
	var err error
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		c, data.Builtin = catalog.Default(), true
	} else {
		c, err = catalog.Load(path)
		if err != nil {
			return nil, err
		}
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	trigger, err := catalog.ParseTrigger(cfg.Menu.SubmenuTrigger)
	if err != nil {
		return nil, NewValidationError("menu.submenu_trigger", cfg.Menu.SubmenuTrigger, err.Error(), "overlay config set menu.submenu_trigger item")
	}
	if err := catalog.NewMenuSet(trigger).Apply(c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Get().Debug("catalog validated", "path", path, "builtin", data.Builtin)

	data.Roots = c.Roots()
	data.Menus = len(c.Menus)
	for _, d := range c.Dropdowns {
		data.Dropdowns = append(data.Dropdowns, d.Key)
	}

	if !g.json {
		w := cmd.OutOrStdout()
		if data.Builtin {
			fmt.Fprintf(w, "%s does not exist; the built-in catalog is valid\n", path)
		} else {
			fmt.Fprintf(w, "%s is valid\n", path)
		}
		fmt.Fprintf(w, "  Menus:     %d (%s)\n", data.Menus, strings.Join(data.Roots, ", "))
		fmt.Fprintf(w, "  Dropdowns: %s\n", strings.Join(data.Dropdowns, ", "))
	}
	return data, nil
}
