// Package app implements the diffdeck terminal UI: a file-tree pane over
// the parsed working-tree diff and a scrollable diff pane beside it.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/diffdeck/diffdeck/internal/cache"
	"github.com/diffdeck/diffdeck/internal/config"
	gitdiff "github.com/diffdeck/diffdeck/internal/diff"
	"github.com/diffdeck/diffdeck/internal/git"
	"github.com/diffdeck/diffdeck/internal/models"
	"github.com/diffdeck/diffdeck/internal/theme"
	"github.com/diffdeck/diffdeck/internal/tree"
)

// focusPane indicates which pane has keyboard focus.
type focusPane int

const (
	focusTree focusPane = iota
	focusDiff
)

const diffCacheKey = "working-tree-diff"

// keyMap defines the application key bindings.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	SwitchPane  key.Binding
	Refresh     key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle/open")),
		ExpandAll:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse all")),
		SwitchPane:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the Bubble Tea model for diffdeck.
type Model struct {
	ctx    context.Context
	config *config.AppConfig
	theme  *theme.Theme
	keys   keyMap

	git       *git.Service
	diffCache *cache.Cache[string]
	tree      *tree.Service

	diffs    []models.FileDiff
	repoInfo models.RepoInfo

	viewport viewport.Model
	focused  focusPane
	width    int
	height   int

	watchEvents <-chan struct{}

	err      error
	quitting bool
}

// New constructs the application model.
func New(ctx context.Context, cfg *config.AppConfig, gitSvc *git.Service, watchEvents <-chan struct{}) *Model {
	return &Model{
		ctx:         ctx,
		config:      cfg,
		theme:       theme.ForName(cfg.Theme),
		keys:        defaultKeyMap(),
		git:         gitSvc,
		diffCache:   cache.New[string](),
		tree:        tree.NewService(cfg.AutoExpand),
		viewport:    viewport.New(0, 0),
		watchEvents: watchEvents,
	}
}

// Init starts the initial data loads.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadDiff(), m.loadRepoInfo()}
	if m.watchEvents != nil {
		cmds = append(cmds, m.waitForWatch())
	}
	return tea.Batch(cmds...)
}

// loadDiff fetches the working-tree diff (memoized) and parses it.
func (m *Model) loadDiff() tea.Cmd {
	return func() tea.Msg {
		text, err := m.diffCache.GetOrCompute(m.ctx, diffCacheKey, m.config.CacheTTL.Std(),
			func(ctx context.Context) (string, error) {
				return m.git.WorkingTreeDiff(ctx), nil
			})
		if err != nil {
			return errMsg{err: err}
		}
		if m.config.MaxDiffChars > 0 && len(text) > m.config.MaxDiffChars {
			text = text[:m.config.MaxDiffChars]
		}
		return diffLoadedMsg{
			diffs:        gitdiff.ParseGitDiff(text),
			statusByPath: m.git.StatusByPath(m.ctx),
		}
	}
}

func (m *Model) loadRepoInfo() tea.Cmd {
	return func() tea.Msg {
		return repoInfoMsg{info: m.git.RepoInfo(m.ctx)}
	}
}

// waitForWatch blocks until the filesystem watcher reports a change.
func (m *Model) waitForWatch() tea.Cmd {
	events := m.watchEvents
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return watchTickMsg{at: time.Now()}
	}
}
