// Package git wraps the git commands diffdeck needs: working-tree diffs,
// porcelain status, and repository info.
package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/diffdeck/diffdeck/internal/log"
	"github.com/diffdeck/diffdeck/internal/models"
)

// LookupPath is used to find executables in PATH. Exposed as a package
// variable so tests can mock it without a git binary installed.
var LookupPath = exec.LookPath

// NotifyFn receives ongoing notifications.
type NotifyFn func(message string, severity string)

// Service runs git commands for one repository checkout.
type Service struct {
	repoPath          string
	notify            NotifyFn
	maxUntrackedDiffs int
}

// NewService constructs a Service rooted at repoPath. notify may be nil.
func NewService(repoPath string, notify NotifyFn) *Service {
	if notify == nil {
		notify = func(string, string) {}
	}
	return &Service{
		repoPath:          repoPath,
		notify:            notify,
		maxUntrackedDiffs: 10,
	}
}

// SetMaxUntrackedDiffs limits how many untracked files are rendered into
// the working-tree diff.
func (s *Service) SetMaxUntrackedDiffs(n int) {
	s.maxUntrackedDiffs = n
}

func (s *Service) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

// RunGit executes a git command and optionally trims its output. Exit
// codes listed in okReturncodes are treated as success; anything else is
// reported through notify unless silent is set.
func (s *Service) RunGit(ctx context.Context, args []string, okReturncodes []int, strip, silent bool) string {
	command := "git " + strings.Join(args, " ")
	s.debugf("run: %s (cwd=%s)", command, s.repoPath)

	// #nosec G204 -- arguments come from internal logic and are not shell interpolated
	cmd := exec.CommandContext(ctx, "git", args...)
	if s.repoPath != "" {
		cmd.Dir = s.repoPath
	}

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			returnCode := exitError.ExitCode()
			if !slices.Contains(okReturncodes, returnCode) {
				if silent {
					s.debugf("error: %s (exit %d, silenced)", command, returnCode)
					return ""
				}
				stderr := strings.TrimSpace(string(exitError.Stderr))
				if stderr == "" {
					stderr = fmt.Sprintf("exit %d", returnCode)
				}
				s.notify(fmt.Sprintf("Command failed: %s: %s", command, stderr), "error")
				s.debugf("error: %s: %s", command, stderr)
				return ""
			}
		} else {
			if !silent {
				s.notify("Command not found: git", "error")
				s.debugf("error: command not found: git")
			}
			return ""
		}
	}

	out := string(output)
	if strip {
		out = strings.TrimSpace(out)
	}
	s.debugf("ok: %s", command)
	return out
}

// IsGitRepo reports whether the service's path is inside a git work tree.
func (s *Service) IsGitRepo(ctx context.Context) bool {
	if _, err := LookupPath("git"); err != nil {
		return false
	}
	out := s.RunGit(ctx, []string{"rev-parse", "--is-inside-work-tree"}, []int{0}, true, true)
	return out == "true"
}

// RepoInfo returns branch, dirtiness, and last commit subject for the
// checkout. A non-repo path yields IsGitRepo=false without error.
func (s *Service) RepoInfo(ctx context.Context) models.RepoInfo {
	if !s.IsGitRepo(ctx) {
		return models.RepoInfo{}
	}

	info := models.RepoInfo{IsGitRepo: true}
	info.Branch = s.RunGit(ctx, []string{"rev-parse", "--abbrev-ref", "HEAD"}, []int{0}, true, true)
	info.Dirty = s.RunGit(ctx, []string{"status", "--porcelain"}, []int{0}, true, true) != ""
	info.LastCommit = s.RunGit(ctx, []string{"log", "-1", "--pretty=%s"}, []int{0, 128}, true, true)
	return info
}

// WorkingTreeDiff assembles the full working-tree diff: tracked changes
// from git diff, then untracked files rendered against /dev/null so new
// files show up as additions. Untracked rendering is capped by
// maxUntrackedDiffs.
func (s *Service) WorkingTreeDiff(ctx context.Context) string {
	tracked := s.RunGit(ctx, []string{"diff", "--patch", "--no-color"}, []int{0}, false, false)

	var parts []string
	if tracked != "" {
		parts = append(parts, tracked)
	}

	untracked := s.UntrackedFiles(ctx)
	limit := len(untracked)
	if s.maxUntrackedDiffs >= 0 && limit > s.maxUntrackedDiffs {
		limit = s.maxUntrackedDiffs
	}
	for i := 0; i < limit; i++ {
		// git diff --no-index exits 1 when the files differ, which is the
		// expected outcome here.
		diff := s.RunGit(ctx, []string{"diff", "--no-color", "--no-index", "--", os.DevNull, untracked[i]}, []int{0, 1}, false, true)
		if diff != "" {
			parts = append(parts, diff)
		}
	}

	return strings.Join(parts, "")
}

// UntrackedFiles lists files unknown to git, honoring ignore rules.
func (s *Service) UntrackedFiles(ctx context.Context) []string {
	out := s.RunGit(ctx, []string{"ls-files", "--others", "--exclude-standard"}, []int{0}, true, true)
	if out == "" {
		return nil
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files
}

// StatusFiles parses git status --porcelain into per-path status records.
func (s *Service) StatusFiles(ctx context.Context) []models.FileStatus {
	raw := s.RunGit(ctx, []string{"status", "--porcelain"}, []int{0}, false, false)
	return ParseStatus(raw)
}

// StatusByPath returns StatusFiles keyed by path for tree decoration.
func (s *Service) StatusByPath(ctx context.Context) map[string]models.FileStatus {
	files := s.StatusFiles(ctx)
	byPath := make(map[string]models.FileStatus, len(files))
	for _, f := range files {
		byPath[f.Path] = f
	}
	return byPath
}

// ParseStatus parses porcelain v1 status output. Rename entries keep the
// destination path so they line up with the diff's final paths.
func ParseStatus(raw string) []models.FileStatus {
	var files []models.FileStatus
	for _, line := range strings.Split(raw, "\n") {
		if len(line) < 4 {
			continue
		}
		code := line[:2]
		path := strings.TrimSpace(line[3:])
		if idx := strings.Index(path, " -> "); idx >= 0 {
			path = path[idx+4:]
		}
		path = strings.Trim(path, `"`)
		if path == "" {
			continue
		}
		files = append(files, models.FileStatus{
			Path:   path,
			Code:   code,
			Staged: code[0] != ' ' && code[0] != '?',
			Label:  statusLabel(code),
		})
	}
	return files
}

func statusLabel(code string) string {
	if code == "??" {
		return "untracked"
	}
	// The unstaged column wins for display; fall back to the staged one.
	c := code[1]
	if c == ' ' {
		c = code[0]
	}
	switch c {
	case 'M':
		return "modified"
	case 'A':
		return "added"
	case 'D':
		return "deleted"
	case 'R':
		return "renamed"
	case 'C':
		return "copied"
	case 'U':
		return "conflicted"
	default:
		return "changed"
	}
}

// RepoName derives a display name for the checkout.
func (s *Service) RepoName() string {
	if s.repoPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "repository"
		}
		return filepath.Base(cwd)
	}
	return filepath.Base(s.repoPath)
}
