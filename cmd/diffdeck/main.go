// Package main is the entry point for the diffdeck application.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	urfavecli "github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/diffdeck/diffdeck/internal/app"
	"github.com/diffdeck/diffdeck/internal/config"
	"github.com/diffdeck/diffdeck/internal/git"
	"github.com/diffdeck/diffdeck/internal/log"
	"github.com/diffdeck/diffdeck/internal/watch"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	urfavecli.VersionPrinter = func(c *urfavecli.Context) {
		fmt.Print(versionString())
	}

	cliApp := &urfavecli.App{
		Name:                 "diffdeck",
		Usage:                "A TUI for reviewing working-tree diffs",
		Version:              version,
		EnableBashCompletion: true,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			tasksCommand(),
		},

		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(c *urfavecli.Context) error {
	// Set up debug logging before loading config
	if debugLog := c.String("debug-log"); debugLog != "" {
		setDebugLog(debugLog)
	}

	cfg, err := config.LoadConfig(c.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	// If debug log wasn't set via flag, check if it's in the config
	if c.String("debug-log") == "" {
		if cfg.DebugLog != "" {
			setDebugLog(cfg.DebugLog)
		} else {
			_ = log.SetFile("")
		}
	}

	if themeFlag := c.String("theme"); themeFlag != "" {
		cfg.Theme = themeFlag
	}
	if c.Bool("no-icons") {
		cfg.ShowIcons = false
	}

	repoPath := c.Args().First()
	if repoPath == "" {
		repoPath, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
	}
	expanded, err := config.ExpandPath(repoPath)
	if err != nil {
		return err
	}
	repoPath = expanded

	ctx := context.Background()
	gitSvc := git.NewService(repoPath, nil)
	gitSvc.SetMaxUntrackedDiffs(cfg.MaxUntrackedDiffs)
	if !gitSvc.IsGitRepo(ctx) {
		return fmt.Errorf("not a git repository: %s", repoPath)
	}

	if c.Bool("no-tui") || !term.IsTerminal(int(os.Stdout.Fd())) {
		err := printSummary(ctx, gitSvc, cfg)
		_ = log.Close()
		return err
	}

	watcher := watch.New(repoPath, cfg.WatchInterval.Std())
	if err := watcher.Start(); err != nil {
		log.Printf("watcher start failed: %v", err)
	}
	defer watcher.Stop()

	model := app.New(ctx, cfg, gitSvc, watcher.Events())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		_ = log.Close()
		return err
	}

	if err := log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", err)
	}
	return nil
}

// versionString assembles the version report, filling missing release
// metadata from the build info when available.
func versionString() string {
	v := version
	c := commit
	d := date
	b := builtBy

	if c == "none" || b == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if c == "none" {
				for _, setting := range info.Settings {
					if setting.Key == "vcs.revision" {
						c = setting.Value
					}
				}
			}
			if b == "unknown" {
				b = info.GoVersion
			}
		}
	}

	return fmt.Sprintf("diffdeck version %s\ncommit: %s\nbuilt at: %s\nbuilt by: %s\n", v, c, d, b)
}

func setDebugLog(path string) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		expanded = path
	}
	if err := log.SetFile(expanded); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", expanded, err)
	}
}
