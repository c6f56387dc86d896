package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wrap"

	"github.com/diffdeck/diffdeck/internal/models"
	"github.com/diffdeck/diffdeck/internal/tree"
)

const (
	treePaneMinWidth = 24
	treePaneMaxWidth = 48
	treePaneRatio    = 0.32
)

func (m *Model) treePaneWidth() int {
	w := int(float64(m.width) * treePaneRatio)
	if w < treePaneMinWidth {
		w = treePaneMinWidth
	}
	if w > treePaneMaxWidth {
		w = treePaneMaxWidth
	}
	return w
}

// View renders the application.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderTreePane(), m.renderDiffPane())
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent).Render(m.git.RepoName())

	var parts []string
	parts = append(parts, title)
	if m.repoInfo.IsGitRepo {
		parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.TextFg).Render(m.repoInfo.Branch))
		if m.repoInfo.Dirty {
			parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.WarnFg).Render("dirty"))
		}
		if m.repoInfo.LastCommit != "" {
			parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render(m.repoInfo.LastCommit))
		}
	}
	parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render(
		fmt.Sprintf("%d files", len(m.diffs))))

	return " " + strings.Join(parts, "  ")
}

func (m *Model) renderTreePane() string {
	width := m.treePaneWidth()
	height := m.height - 4
	if height < 1 {
		height = 1
	}

	borderColor := m.theme.Border
	if m.focused == focusTree {
		borderColor = m.theme.Accent
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width).
		Height(height)

	return style.Render(m.renderTreeLines(width, height))
}

func (m *Model) renderTreeLines(width, height int) string {
	flat := m.tree.Flat
	if len(flat) == 0 {
		if m.err != nil {
			return lipgloss.NewStyle().Foreground(m.theme.ErrorFg).Render(m.err.Error())
		}
		return lipgloss.NewStyle().Foreground(m.theme.SuccessFg).Render("Clean working tree")
	}

	dirStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	selectedStyle := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true)

	// Keep the selection visible within the pane height.
	start := 0
	if m.tree.Index >= height {
		start = m.tree.Index - height + 1
	}
	end := start + height
	if end > len(flat) {
		end = len(flat)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		fn := flat[i]
		node := fn.Node
		indent := strings.Repeat("  ", fn.Depth)

		var content string
		if node.IsDir() {
			content = fmt.Sprintf("%s%s %s%s", indent,
				m.disclosureIndicator(node.Path), m.icon(node.Name, true), node.Name)
		} else {
			content = fmt.Sprintf("%s%s %s%s", indent,
				kindLetter(node), m.icon(node.Name, false), node.Name)
		}
		// Truncate and pad by display width so indicators, icons, and
		// wide runes keep the columns aligned.
		content = ansi.Truncate(content, width, "")

		switch {
		case i == m.tree.Index && m.focused == focusTree:
			if w := lipgloss.Width(content); w < width {
				content += strings.Repeat(" ", width-w)
			}
			lines = append(lines, selectedStyle.Render(content))
		case node.IsDir():
			lines = append(lines, dirStyle.Render(content))
		default:
			lines = append(lines, m.kindStyle(node).Render(content))
		}
	}

	return strings.Join(lines, "\n")
}

func (m *Model) disclosureIndicator(path string) string {
	if m.config.AutoExpand || m.tree.Expanded[path] {
		return "▼"
	}
	return "▶"
}

// kindLetter shows the change kind in the tree, preferring git status
// metadata when the file has it.
func kindLetter(node *tree.FileNode) string {
	if node.Status != nil && node.Status.Code == "??" {
		return "?"
	}
	if node.Diff == nil {
		return " "
	}
	switch node.Diff.Kind {
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

func (m *Model) kindStyle(node *tree.FileNode) lipgloss.Style {
	if node.Diff == nil {
		return lipgloss.NewStyle().Foreground(m.theme.TextFg)
	}
	switch node.Diff.Kind {
	case models.ChangeAdd:
		return lipgloss.NewStyle().Foreground(m.theme.AddFg)
	case models.ChangeDelete:
		return lipgloss.NewStyle().Foreground(m.theme.RemoveFg)
	case models.ChangeRename:
		return lipgloss.NewStyle().Foreground(m.theme.WarnFg)
	default:
		return lipgloss.NewStyle().Foreground(m.theme.TextFg)
	}
}

func (m *Model) renderDiffPane() string {
	borderColor := m.theme.Border
	if m.focused == focusDiff {
		borderColor = m.theme.Accent
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(m.viewport.Width).
		Height(m.viewport.Height)

	return style.Render(m.viewport.View())
}

// renderDiffContent colors the selected file's raw diff by line kind.
// Directory selections show a short summary of their subtree instead.
func (m *Model) renderDiffContent() string {
	node := m.tree.SelectedNode()
	if node == nil {
		return lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render("No changes to display")
	}
	if node.IsDir() {
		return m.renderDirSummary(node)
	}
	if node.Diff == nil {
		return ""
	}

	addStyle := lipgloss.NewStyle().Foreground(m.theme.AddFg)
	removeStyle := lipgloss.NewStyle().Foreground(m.theme.RemoveFg)
	hunkStyle := lipgloss.NewStyle().Foreground(m.theme.HunkFg)
	headerStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)

	width := m.viewport.Width
	var out []string
	for _, line := range strings.Split(node.Diff.Raw, "\n") {
		if width > 0 {
			line = wrap.String(line, width)
		}
		switch {
		case strings.HasPrefix(line, "@@"):
			out = append(out, hunkStyle.Render(line))
		case strings.HasPrefix(line, "+"):
			out = append(out, addStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			out = append(out, removeStyle.Render(line))
		case strings.HasPrefix(line, "diff --git"), strings.HasPrefix(line, "index "):
			out = append(out, headerStyle.Render(line))
		default:
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderDirSummary(node *tree.FileNode) string {
	var files int
	var walk func(nodes []*tree.FileNode)
	walk = func(nodes []*tree.FileNode) {
		for _, n := range nodes {
			if n.IsDir() {
				walk(n.Children)
			} else {
				files++
			}
		}
	}
	walk(node.Children)
	return lipgloss.NewStyle().Foreground(m.theme.MutedFg).
		Render(fmt.Sprintf("%s: %d changed file(s)", node.Path, files))
}

func (m *Model) renderFooter() string {
	help := "↑/↓ move  enter toggle  tab pane  e/c expand/collapse  r refresh  q quit"
	return lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render(" " + help)
}
