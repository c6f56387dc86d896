// Package main provides CLI command definitions for diffdeck.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	urfavecli "github.com/urfave/cli/v2"

	"github.com/diffdeck/diffdeck/internal/config"
	"github.com/diffdeck/diffdeck/internal/tasks"
)

// tasksCommand parses an agent reply for a numbered task list and prints
// the extracted tasks, for scripting around orchestrator output.
func tasksCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "tasks",
		Usage:     "Parse a task list from a markdown file (or stdin)",
		ArgsUsage: "[file]",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:  "json",
				Usage: "Emit tasks as JSON",
			},
		},
		Action: runTasks,
	}
}

func runTasks(c *urfavecli.Context) error {
	var data []byte
	var err error
	if file := c.Args().First(); file != "" {
		expanded, expandErr := config.ExpandPath(file)
		if expandErr != nil {
			return expandErr
		}
		data, err = os.ReadFile(expanded) // #nosec G304 -- path comes from the user's own argument
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read task list: %w", err)
	}

	items := tasks.ParseTaskList(string(data))
	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, item := range items {
		agent := item.Agent
		if agent == "" {
			agent = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", item.Index, agent, item.Title)
	}
	return w.Flush()
}
