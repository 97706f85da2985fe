// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Root command, global flags and version for overlay.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-overlay/internal/config"
	"github.com/jeranaias/rigrun-overlay/internal/logging"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// globalFlags are the persistent flags every command shares.
type globalFlags struct {
	configPath  string
	catalogPath string
	logLevel    string
	json        bool
}

// NewRootCommand builds the overlay command tree. Without a sub-command it
// runs the demo.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "overlay",
		Short: "Terminal menus and dropdowns",
		Long: "overlay shows a menu bar and a column of dropdowns described by a TOML catalog.\n" +
			"Run without arguments for the demo or use the sub-commands.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !IsTTY() || !IsStdoutTTY() {
				return cmd.Help()
			}
			return runDemo(cmd, g, true)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "config file (default ~/.overlay/config.toml)")
	flags.StringVar(&g.catalogPath, "catalog", "", "catalog file (default ~/.overlay/catalog.toml)")
	flags.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.BoolVar(&g.json, "json", false, "print JSON instead of text")

	root.AddCommand(
		newDemoCommand(g),
		newCatalogCommand(g),
		newConfigCommand(g),
		newSelectionsCommand(g),
		newVersionCommand(g),
	)
	return root
}

// Execute runs the command tree with os.Args and returns the exit code.
func Execute() int {
	root := NewRootCommand()
	err := root.Execute()
	if err != nil {
		jsonMode, _ := root.PersistentFlags().GetBool("json")
		w := io.Writer(os.Stderr)
		if jsonMode {
			w = os.Stdout
		}
		DisplayError(w, err, jsonMode)
	}
	logging.Close()
	return GetExitCode(err)
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfig loads the config file named by --config or the default one and
// applies the flag overrides.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if g.configPath != "" {
		cfg, err = config.LoadFromPath(g.configPath)
	} else {
		cfg, err = config.Load()
	}
	if cfg == nil {
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using defaults\n", err)
	}
	if g.catalogPath != "" {
		cfg.CatalogPath = g.catalogPath
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	return cfg, nil
}

// setupLogging points the shared logger at cfg.Log. Without a log path,
// commands log to stderr and the demo, which owns the terminal, discards.
func setupLogging(cfg *config.Config, tui bool) {
	err := logging.Setup(logging.Options{
		Path:   cfg.Log.Path,
		Level:  cfg.Log.Level,
		Stderr: cfg.Log.Path == "" && !tui,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: log file unavailable: %v\n", err)
	}
}

// =============================================================================
// VERSION
// =============================================================================

func newVersionCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			return OutputJSON(w, g.json, "version", func() (interface{}, error) {
				data := VersionData{
					Version:   Version,
					GitCommit: GitCommit,
					BuildDate: BuildDate,
					GoVersion: runtime.Version(),
				}
				if !g.json {
					fmt.Fprintf(w, "overlay version %s\n", data.Version)
					fmt.Fprintf(w, "  Git commit: %s\n", data.GitCommit)
					fmt.Fprintf(w, "  Build date: %s\n", data.BuildDate)
				}
				return data, nil
			})
		},
	}
}
