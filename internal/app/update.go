package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/diffdeck/diffdeck/internal/log"
)

// Update routes messages to the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()
		m.refreshDiffPane()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case diffLoadedMsg:
		m.diffs = msg.diffs
		m.tree.Rebuild(msg.diffs, msg.statusByPath)
		m.refreshDiffPane()
		return m, nil

	case repoInfoMsg:
		m.repoInfo = msg.info
		return m, nil

	case watchTickMsg:
		// The working tree changed underneath us; refetch everything.
		log.Printf("watch: refresh triggered at %s", msg.at.Format(time.RFC3339))
		m.diffCache.Invalidate(diffCacheKey)
		cmds := []tea.Cmd{m.loadDiff(), m.loadRepoInfo()}
		if m.watchEvents != nil {
			cmds = append(cmds, m.waitForWatch())
		}
		return m, tea.Batch(cmds...)

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.SwitchPane):
		if m.focused == focusTree {
			m.focused = focusDiff
		} else {
			m.focused = focusTree
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.diffCache.Invalidate(diffCacheKey)
		return m, tea.Batch(m.loadDiff(), m.loadRepoInfo())
	}

	if m.focused == focusDiff {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.tree.Index--
		m.tree.ClampIndex()
		m.refreshDiffPane()

	case key.Matches(msg, m.keys.Down):
		m.tree.Index++
		m.tree.ClampIndex()
		m.refreshDiffPane()

	case key.Matches(msg, m.keys.Toggle):
		if node := m.tree.SelectedNode(); node != nil && node.IsDir() {
			m.tree.ToggleExpand(node.Path)
			m.tree.ClampIndex()
		} else {
			m.focused = focusDiff
		}
		m.refreshDiffPane()

	case key.Matches(msg, m.keys.ExpandAll):
		m.tree.ExpandAll()
		m.tree.ClampIndex()
		m.refreshDiffPane()

	case key.Matches(msg, m.keys.CollapseAll):
		m.tree.CollapseAll()
		m.tree.ClampIndex()
		m.refreshDiffPane()
	}

	return m, nil
}

func (m *Model) resizePanes() {
	treeWidth := m.treePaneWidth()
	m.viewport.Width = m.width - treeWidth - 3 // borders and gutter
	m.viewport.Height = m.height - 4           // header, footer, border lines
	if m.viewport.Width < 0 {
		m.viewport.Width = 0
	}
	if m.viewport.Height < 0 {
		m.viewport.Height = 0
	}
}

// refreshDiffPane rerenders the diff viewport for the selected node.
func (m *Model) refreshDiffPane() {
	m.viewport.SetContent(m.renderDiffContent())
	m.viewport.GotoTop()
}
