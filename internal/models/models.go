// Package models defines the data objects shared across diffdeck packages.
package models

// ChangeKind classifies how a file changed within a diff.
type ChangeKind string

const (
	// ChangeAdd marks a newly created file.
	ChangeAdd ChangeKind = "add"
	// ChangeModify marks an edited file.
	ChangeModify ChangeKind = "modify"
	// ChangeDelete marks a removed file.
	ChangeDelete ChangeKind = "delete"
	// ChangeRename marks a moved file.
	ChangeRename ChangeKind = "rename"
)

// FileDiff represents one changed file extracted from a unified diff.
type FileDiff struct {
	Path    string // Final path after rename, if any
	OldPath string // Rename source; empty unless the file moved
	Kind    ChangeKind
	Hunks   []Hunk
	Raw     string // Full original section including the "diff --git" header
}

// LineKind categorizes a single line within a hunk.
type LineKind int

const (
	// LineContext is an unchanged line present in both versions.
	LineContext LineKind = iota
	// LineAdd is a line only in the new version.
	LineAdd
	// LineRemove is a line only in the old version.
	LineRemove
)

// HunkLine is one categorized line of a hunk, with positions in each version.
// OldLine/NewLine are zero when the line does not exist on that side.
type HunkLine struct {
	Kind    LineKind
	Content string
	OldLine int
	NewLine int
}

// Hunk is a contiguous block of changes with surrounding context.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Header   string // The raw "@@ ... @@" line
	Lines    []HunkLine
}

// FileStatus carries per-path VCS status metadata from git status.
type FileStatus struct {
	Path   string
	Code   string // Porcelain XY code (e.g. "M ", " M", "??")
	Staged bool
	Label  string // Human-readable status (e.g. "modified", "untracked")
}

// RepoInfo summarizes a project checkout for the header line.
type RepoInfo struct {
	IsGitRepo  bool
	Branch     string
	Dirty      bool
	LastCommit string // Subject of the most recent commit
}

// TaskItem is one delegated task parsed from an orchestrator reply.
type TaskItem struct {
	Index  int    `json:"index"`
	Agent  string `json:"agent,omitempty"` // Optional agent name prefix; empty when unspecified
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}
