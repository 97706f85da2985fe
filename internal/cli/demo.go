// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// demo.go - The interactive demo command.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-overlay/internal/catalog"
	"github.com/jeranaias/rigrun-overlay/internal/logging"
	"github.com/jeranaias/rigrun-overlay/internal/storage"
	"github.com/jeranaias/rigrun-overlay/internal/ui/demo"
	"github.com/jeranaias/rigrun-overlay/internal/ui/styles"
)

func newDemoCommand(g *globalFlags) *cobra.Command {
	var noWatch bool
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive menu and dropdown demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := RequiresTTY("run the demo"); err != nil {
				return err
			}
			return runDemo(cmd, g, !noWatch)
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the catalog when it changes")
	return cmd
}

// runDemo loads the config and catalog, opens the selection store and runs
// the Bubble Tea program until it quits. With watch set, catalog edits are
// applied while it runs.
func runDemo(cmd *cobra.Command, g *globalFlags, watch bool) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg, true)
	log := logging.Get()
	applyColorProfile()
	if w, _ := GetTerminalSize(); cfg.UI.PanelWidth > w-4 {
		cfg.UI.PanelWidth = max(w-4, 16)
	}

	path, err := cfg.ResolvedCatalogPath()
	if err != nil {
		return err
	}
	cat, err := catalog.LoadOrDefault(path)
	if err != nil {
		return NewCommandError("demo", "load catalog", path, err)
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := demo.Options{
		Context: ctx,
		Config:  cfg,
		Catalog: cat,
		Theme:   styles.NewTheme(cfg.UI.Theme),
		Logger:  log,
	}

	if cfg.Storage.Enabled {
		dbPath, err := cfg.ResolvedStoragePath()
		if err == nil {
			var store *storage.SelectionStore
			store, err = storage.OpenSelectionStore(dbPath)
			if err == nil {
				defer store.Close()
				opts.Store = store
			}
		}
		if err != nil {
			log.Warn("selections will not be saved", "error", err)
		}
	}

	if watch {
		w := catalog.NewWatcher(path, catalog.WithWatchLogger(log))
		if err := w.Watch(); err != nil {
			log.Warn("catalog reload disabled", "path", path, "error", err)
		} else {
			defer w.Close()
			opts.Watcher = w
		}
	}

	model, err := demo.New(opts)
	if err != nil {
		return NewCommandError("demo", "build widgets", path, err)
	}

	log.Info("demo started", "catalog", path, "menus", len(cat.Menus), "dropdowns", len(cat.Dropdowns))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("demo: %w", err)
	}
	log.Info("demo stopped")
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
