package app

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffdeck/diffdeck/internal/config"
	"github.com/diffdeck/diffdeck/internal/git"
	"github.com/diffdeck/diffdeck/internal/models"
	"github.com/diffdeck/diffdeck/internal/tree"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.AutoExpand = false
	cfg.ShowIcons = false
	m := New(context.Background(), cfg, git.NewService(t.TempDir(), nil), nil)
	m.width = 100
	m.height = 30
	m.resizePanes()
	return m
}

func testDiffs() []models.FileDiff {
	return []models.FileDiff{
		{Path: "src/a.ts", Kind: models.ChangeModify, Raw: "diff --git a/src/a.ts b/src/a.ts\n@@ -1,2 +1,2 @@\n-old\n+new\n"},
		{Path: "src/b.ts", Kind: models.ChangeAdd, Raw: "diff --git a/src/b.ts b/src/b.ts\n"},
		{Path: "readme.md", Kind: models.ChangeDelete, Raw: "diff --git a/readme.md b/readme.md\n"},
	}
}

func loadDiffs(m *Model, diffs []models.FileDiff) {
	_, _ = m.Update(diffLoadedMsg{diffs: diffs})
}

func TestDiffLoadedRebuildsTree(t *testing.T) {
	m := testModel(t)
	loadDiffs(m, testDiffs())

	// Collapsed: only the root-level entries show.
	require.Len(t, m.tree.Flat, 2)
	assert.Equal(t, "src", m.tree.Flat[0].Node.Name)
	assert.Equal(t, "readme.md", m.tree.Flat[1].Node.Name)
	assert.Len(t, m.diffs, 3)
}

func TestKeyNavigation(t *testing.T) {
	m := testModel(t)
	loadDiffs(m, testDiffs())

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, m.tree.Index)

	// Down past the end clamps.
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, m.tree.Index)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, m.tree.Index)
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, m.tree.Index)
}

func TestToggleExpandsDirectory(t *testing.T) {
	m := testModel(t)
	loadDiffs(m, testDiffs())

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, m.tree.Flat, 4)
	assert.True(t, m.tree.Expanded["src"])

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, m.tree.Flat, 2)
}

func TestToggleOnFileFocusesDiff(t *testing.T) {
	m := testModel(t)
	loadDiffs(m, testDiffs())

	m.tree.Index = 1 // readme.md
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusDiff, m.focused)
}

func TestExpandAndCollapseAll(t *testing.T) {
	m := testModel(t)
	loadDiffs(m, testDiffs())

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	assert.Len(t, m.tree.Flat, 4)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	assert.Len(t, m.tree.Flat, 2)
}

func TestSwitchPane(t *testing.T) {
	m := testModel(t)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusDiff, m.focused)
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusTree, m.focused)
}

func TestQuit(t *testing.T) {
	m := testModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, m.quitting)
}

func TestWindowSizeResizesViewport(t *testing.T) {
	m := testModel(t)

	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Equal(t, 120-m.treePaneWidth()-3, m.viewport.Width)
	assert.Equal(t, 36, m.viewport.Height)
}

func TestViewShowsFileNames(t *testing.T) {
	m := testModel(t)
	loadDiffs(m, testDiffs())
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	assert.Contains(t, view, "src")
	assert.Contains(t, view, "readme.md")
}

func TestRenderDiffContentColorsBySelection(t *testing.T) {
	m := testModel(t)
	loadDiffs(m, testDiffs())
	m.tree.ExpandAll()

	// Select src/a.ts and check its raw diff lines show up.
	m.tree.RestoreSelection("src/a.ts")
	content := m.renderDiffContent()
	assert.Contains(t, content, "old")
	assert.Contains(t, content, "new")

	// A directory shows a subtree summary instead.
	m.tree.RestoreSelection("src")
	content = m.renderDiffContent()
	assert.Contains(t, content, "2 changed file(s)")
}

func TestEmptyTreeShowsCleanMessage(t *testing.T) {
	m := testModel(t)
	loadDiffs(m, nil)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Contains(t, m.View(), "Clean working tree")
}

func TestKindLetter(t *testing.T) {
	add := models.ChangeAdd
	del := models.ChangeDelete
	ren := models.ChangeRename
	mod := models.ChangeModify

	for _, tc := range []struct {
		kind models.ChangeKind
		want string
	}{
		{add, "A"}, {del, "D"}, {ren, "R"}, {mod, "M"},
	} {
		node := &tree.FileNode{
			Type: tree.NodeFile,
			Diff: &models.FileDiff{Kind: tc.kind},
		}
		assert.Equal(t, tc.want, kindLetter(node), string(tc.kind))
	}
}

func TestTreeLinesKeepDisplayWidth(t *testing.T) {
	m := testModel(t)
	loadDiffs(m, []models.FileDiff{
		{Path: "src/ドキュメント設計メモ.md", Kind: models.ChangeModify},
		{Path: "src/長いファイル名のテスト用エントリ.md", Kind: models.ChangeAdd},
	})
	m.tree.ExpandAll()

	width := 14
	lines := strings.Split(m.renderTreeLines(width, 10), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, utf8.ValidString(line))
		assert.LessOrEqual(t, lipgloss.Width(line), width)
	}

	// The selected directory row pads to the full pane width even though
	// the disclosure indicator is a multibyte rune.
	assert.Equal(t, 0, m.tree.Index)
	assert.Equal(t, width, lipgloss.Width(lines[0]))
}

func TestWaitForWatchCarriesTickTime(t *testing.T) {
	events := make(chan struct{}, 1)
	cfg := config.DefaultConfig()
	m := New(context.Background(), cfg, git.NewService(t.TempDir(), nil), events)

	events <- struct{}{}
	msg := m.waitForWatch()()
	tick, ok := msg.(watchTickMsg)
	require.True(t, ok)
	assert.False(t, tick.at.IsZero())
}

func TestWatchTickInvalidatesAndReloads(t *testing.T) {
	m := testModel(t)
	m.diffCache.Set(diffCacheKey, "stale", 0)

	_, cmd := m.Update(watchTickMsg{})
	require.NotNil(t, cmd)
	_, ok := m.diffCache.Get(diffCacheKey)
	assert.False(t, ok)
}

func TestHeaderMentionsFileCount(t *testing.T) {
	m := testModel(t)
	loadDiffs(m, testDiffs())
	m.repoInfo = models.RepoInfo{IsGitRepo: true, Branch: "main", Dirty: true}

	header := m.renderHeader()
	assert.Contains(t, header, "3 files")
	assert.True(t, strings.Contains(header, "main"))
}
