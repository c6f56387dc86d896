package tree

import (
	"github.com/diffdeck/diffdeck/internal/models"
)

// Service owns the tree view state: the built tree, which directories are
// expanded, the flattened projection, and the cursor position.
type Service struct {
	Roots      []*FileNode
	Flat       []FlattenedNode
	Expanded   map[string]bool
	AutoExpand bool
	Index      int
}

// NewService creates a Service. When autoExpand is set every directory
// renders open and the expanded set is ignored.
func NewService(autoExpand bool) *Service {
	return &Service{
		Expanded:   make(map[string]bool),
		AutoExpand: autoExpand,
	}
}

// Rebuild constructs a fresh tree from diffs and recomputes the flat list.
// The previous selection is restored by path when it still exists.
func (s *Service) Rebuild(diffs []models.FileDiff, statusByPath map[string]models.FileStatus) {
	selected := s.SelectedPath()
	s.Roots = BuildFileTree(diffs, statusByPath)
	s.RebuildFlat()
	s.RestoreSelection(selected)
	s.ClampIndex()
}

// RebuildFlat recomputes the flattened projection from the current tree
// and expansion state.
func (s *Service) RebuildFlat() {
	if s.Expanded == nil {
		s.Expanded = make(map[string]bool)
	}
	s.Flat = FlattenTree(s.Roots, s.Expanded, s.AutoExpand)
}

// ToggleExpand flips a directory's expansion and recomputes the flat list.
// A no-op while AutoExpand is on.
func (s *Service) ToggleExpand(path string) {
	if path == "" || s.AutoExpand {
		return
	}
	if s.Expanded == nil {
		s.Expanded = make(map[string]bool)
	}
	s.Expanded[path] = !s.Expanded[path]
	s.RebuildFlat()
}

// ExpandAll opens every directory currently in the tree.
func (s *Service) ExpandAll() {
	if s.Expanded == nil {
		s.Expanded = make(map[string]bool)
	}
	var walk func(nodes []*FileNode)
	walk = func(nodes []*FileNode) {
		for _, n := range nodes {
			if n.IsDir() {
				s.Expanded[n.Path] = true
				walk(n.Children)
			}
		}
	}
	walk(s.Roots)
	s.RebuildFlat()
}

// CollapseAll closes every directory.
func (s *Service) CollapseAll() {
	s.Expanded = make(map[string]bool)
	s.RebuildFlat()
}

// SelectedNode returns the node under the cursor, or nil.
func (s *Service) SelectedNode() *FileNode {
	if s.Index >= 0 && s.Index < len(s.Flat) {
		return s.Flat[s.Index].Node
	}
	return nil
}

// SelectedPath returns the path of the node under the cursor.
func (s *Service) SelectedPath() string {
	if n := s.SelectedNode(); n != nil {
		return n.Path
	}
	return ""
}

// RestoreSelection moves the cursor to the given path if present.
func (s *Service) RestoreSelection(path string) {
	if path == "" {
		return
	}
	for i, fn := range s.Flat {
		if fn.Node.Path == path {
			s.Index = i
			return
		}
	}
}

// ClampIndex keeps the cursor within the flat list bounds.
func (s *Service) ClampIndex() {
	if s.Index < 0 {
		s.Index = 0
	}
	if len(s.Flat) > 0 && s.Index >= len(s.Flat) {
		s.Index = len(s.Flat) - 1
	}
	if len(s.Flat) == 0 {
		s.Index = 0
	}
}
