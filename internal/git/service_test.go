package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	raw := " M internal/diff/parser.go\n" +
		"A  internal/tree/tree.go\n" +
		"?? notes.txt\n" +
		"R  old/name.go -> new/name.go\n" +
		"D  gone.go\n"

	files := ParseStatus(raw)
	require.Len(t, files, 5)

	assert.Equal(t, "internal/diff/parser.go", files[0].Path)
	assert.Equal(t, " M", files[0].Code)
	assert.False(t, files[0].Staged)
	assert.Equal(t, "modified", files[0].Label)

	assert.True(t, files[1].Staged)
	assert.Equal(t, "added", files[1].Label)

	assert.Equal(t, "notes.txt", files[2].Path)
	assert.False(t, files[2].Staged)
	assert.Equal(t, "untracked", files[2].Label)

	// Renames keep the destination path.
	assert.Equal(t, "new/name.go", files[3].Path)
	assert.Equal(t, "renamed", files[3].Label)

	assert.Equal(t, "deleted", files[4].Label)
}

func TestParseStatusEmptyAndMalformed(t *testing.T) {
	assert.Empty(t, ParseStatus(""))
	assert.Empty(t, ParseStatus("\n\n"))
	assert.Empty(t, ParseStatus("M \n"))
}

func TestParseStatusQuotedPath(t *testing.T) {
	files := ParseStatus("?? \"with space.txt\"\n")
	require.Len(t, files, 1)
	assert.Equal(t, "with space.txt", files[0].Path)
}

func TestStatusByPathOnRealRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=t@t",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=t@t",
		)
		require.NoError(t, cmd.Run())
	}

	run("init", "-q")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracked.txt"), []byte("one\n"), 0o600))
	run("add", "tracked.txt")
	run("commit", "-q", "-m", "initial")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracked.txt"), []byte("one\ntwo\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fresh.txt"), []byte("new\n"), 0o600))

	svc := NewService(dir, nil)
	ctx := context.Background()

	require.True(t, svc.IsGitRepo(ctx))

	byPath := svc.StatusByPath(ctx)
	require.Contains(t, byPath, "tracked.txt")
	assert.Equal(t, "modified", byPath["tracked.txt"].Label)
	require.Contains(t, byPath, "fresh.txt")
	assert.Equal(t, "untracked", byPath["fresh.txt"].Label)

	info := svc.RepoInfo(ctx)
	assert.True(t, info.IsGitRepo)
	assert.True(t, info.Dirty)
	assert.Equal(t, "initial", info.LastCommit)

	diffText := svc.WorkingTreeDiff(ctx)
	assert.Contains(t, diffText, "diff --git a/tracked.txt b/tracked.txt")
	assert.Contains(t, diffText, "+two")
	// Untracked files are rendered against /dev/null as pure additions.
	assert.Contains(t, diffText, "fresh.txt")
	assert.Contains(t, diffText, "+new")
}

func TestRepoInfoOutsideRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	svc := NewService(t.TempDir(), nil)
	info := svc.RepoInfo(context.Background())
	assert.False(t, info.IsGitRepo)
}

func TestRepoName(t *testing.T) {
	svc := NewService("/tmp/projects/demo", nil)
	assert.Equal(t, "demo", svc.RepoName())
}
