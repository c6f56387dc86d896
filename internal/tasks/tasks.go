// Package tasks extracts delegated task lists from orchestrator replies.
package tasks

import (
	"regexp"
	"strings"

	"github.com/diffdeck/diffdeck/internal/models"
)

var (
	// fencedRe captures the body of a ```tasks fenced block.
	fencedRe = regexp.MustCompile("(?s)```tasks\\s*\n(.*?)```")
	// itemRe matches a numbered list item: "1. text" or "2) text".
	itemRe = regexp.MustCompile(`^\s*(\d+)[.)]\s+(.*)$`)
	// agentRe matches an optional agent prefix: "reviewer: do the thing".
	agentRe = regexp.MustCompile(`^([A-Za-z][\w-]*):\s+(.*)$`)
)

// ParseTaskList extracts the numbered task list from reply text. A fenced
// ```tasks block takes precedence over the full text; continuation lines
// under a numbered item fold into that item's prompt. Text without any
// numbered items yields an empty list, never an error.
func ParseTaskList(text string) []models.TaskItem {
	body := text
	if m := fencedRe.FindStringSubmatch(text); m != nil {
		body = m[1]
	}

	items := []models.TaskItem{}
	var current *models.TaskItem
	var continuation []string

	flush := func() {
		if current == nil {
			return
		}
		current.Prompt = current.Title
		if extra := strings.TrimSpace(strings.Join(continuation, "\n")); extra != "" {
			current.Prompt = current.Title + "\n" + extra
		}
		items = append(items, *current)
		current = nil
		continuation = nil
	}

	for _, line := range strings.Split(body, "\n") {
		if m := itemRe.FindStringSubmatch(line); m != nil {
			flush()
			item := models.TaskItem{Index: len(items) + 1, Title: strings.TrimSpace(m[2])}
			if am := agentRe.FindStringSubmatch(item.Title); am != nil {
				item.Agent = strings.ToLower(am[1])
				item.Title = strings.TrimSpace(am[2])
			}
			item.Title = strings.Trim(item.Title, "*_ ")
			current = &item
			continue
		}
		if current != nil {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" && len(continuation) == 0 {
				// Blank line directly after the item header ends nothing yet;
				// keep scanning for an indented body.
				continue
			}
			continuation = append(continuation, trimmed)
		}
	}
	flush()

	return items
}
