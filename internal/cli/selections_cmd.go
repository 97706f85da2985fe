// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// selections_cmd.go - Commands for the saved dropdown selections.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-overlay/internal/storage"
)

func newSelectionsCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "selections",
		Aliases: []string{"sel"},
		Short:   "List or forget saved dropdown selections",
	}
	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every saved selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfirmation("Clear all saved selections", yes, g.json); err != nil {
				return err
			}
			return g.withStore(func(store *storage.SelectionStore) error {
				if err := store.Clear(contextOf(cmd)); err != nil {
					return NewCommandError("selections", "clear", store.Path(), err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All selections cleared")
				return nil
			})
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved selections",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return g.withStore(func(store *storage.SelectionStore) error {
					return OutputJSON(cmd.OutOrStdout(), g.json, "selections list", func() (interface{}, error) {
						records, err := store.List(contextOf(cmd))
						if err != nil {
							return nil, err
						}
						if !g.json {
							fmt.Fprint(cmd.OutOrStdout(), storage.FormatSelectionList(records))
						}
						return SelectionsData{Path: store.Path(), Selections: records}, nil
					})
				})
			},
		},
		&cobra.Command{
			Use:   "delete <key>",
			Short: "Forget the saved selection of one dropdown",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return g.withStore(func(store *storage.SelectionStore) error {
					if err := store.Delete(contextOf(cmd), args[0]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
					return nil
				})
			},
		},
		clearCmd,
	)
	return cmd
}

// withStore opens the configured selection store for fn.
func (g *globalFlags) withStore(fn func(*storage.SelectionStore) error) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg, false)
	path, err := cfg.ResolvedStoragePath()
	if err != nil {
		return err
	}
	store, err := storage.OpenSelectionStore(path)
	if err != nil {
		return NewCommandError("selections", "open", path, err)
	}
	defer store.Close()
	return fn(store)
}
