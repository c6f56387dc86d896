package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/diffdeck/diffdeck/internal/config"
	gitdiff "github.com/diffdeck/diffdeck/internal/diff"
	"github.com/diffdeck/diffdeck/internal/git"
	"github.com/diffdeck/diffdeck/internal/models"
	"github.com/diffdeck/diffdeck/internal/tree"
)

// printSummary writes a plain-text change listing for non-interactive use:
// piped output, scripts, and the --no-tui flag.
func printSummary(ctx context.Context, gitSvc *git.Service, cfg *config.AppConfig) error {
	info := gitSvc.RepoInfo(ctx)
	text := gitSvc.WorkingTreeDiff(ctx)
	if cfg.MaxDiffChars > 0 && len(text) > cfg.MaxDiffChars {
		text = text[:cfg.MaxDiffChars]
	}
	diffs := gitdiff.ParseGitDiff(text)

	fmt.Printf("%s on %s", gitSvc.RepoName(), info.Branch)
	if info.Dirty {
		fmt.Print(" (dirty)")
	}
	fmt.Println()

	if len(diffs) == 0 {
		fmt.Println("clean working tree")
		return nil
	}

	roots := tree.BuildFileTree(diffs, gitSvc.StatusByPath(ctx))
	for _, fn := range tree.FlattenTree(roots, nil, true) {
		indent := strings.Repeat("  ", fn.Depth)
		if fn.Node.IsDir() {
			fmt.Printf("%s%s/\n", indent, fn.Node.Name)
			continue
		}
		fmt.Printf("%s%s %s\n", indent, summaryKind(fn.Node.Diff), fn.Node.Name)
	}
	return nil
}

func summaryKind(fd *models.FileDiff) string {
	if fd == nil {
		return " "
	}
	switch fd.Kind {
	case models.ChangeAdd:
		return "A"
	case models.ChangeDelete:
		return "D"
	case models.ChangeRename:
		return "R"
	default:
		return "M"
	}
}
