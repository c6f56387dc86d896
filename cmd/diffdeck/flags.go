// Package main provides CLI flag definitions for diffdeck.
package main

import (
	urfavecli "github.com/urfave/cli/v2"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via App.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme (dark or light)",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.BoolFlag{
			Name:  "no-tui",
			Usage: "Print a change summary instead of launching the TUI",
		},
		&urfavecli.BoolFlag{
			Name:  "no-icons",
			Usage: "Disable Nerd Font icons in the file tree",
		},
	}
}
