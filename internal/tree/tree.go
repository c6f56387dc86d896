// Package tree projects a flat list of changed files into a directory tree
// and flattens it back into a depth-annotated list for rendering.
package tree

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/diffdeck/diffdeck/internal/models"
)

// NodeType distinguishes directory and file nodes.
type NodeType int

const (
	// NodeDir is a directory grouping one or more descendants.
	NodeDir NodeType = iota
	// NodeFile is a leaf carrying a FileDiff.
	NodeFile
)

// FileNode is one element of the file tree.
type FileNode struct {
	Type     NodeType
	Name     string             // Basename of the path segment
	Path     string             // Full slash-joined path from the tree root
	Children []*FileNode        // Dirs only; sorted dirs-first, then by name
	Diff     *models.FileDiff   // Files only
	Status   *models.FileStatus // Optional per-path VCS status
}

// FlattenedNode pairs a node with its depth for list rendering.
// Root-level nodes have depth 0.
type FlattenedNode struct {
	Node  *FileNode
	Depth int
}

// IsDir reports whether the node is a directory.
func (n *FileNode) IsDir() bool {
	return n.Type == NodeDir
}

// BuildFileTree converts per-file diffs into the root-level nodes of a
// nested directory tree. Files sharing a path prefix share directory
// nodes. statusByPath decorates file leaves and never affects tree shape;
// it may be nil. Empty path segments (doubled or leading slashes) are
// skipped.
func BuildFileTree(diffs []models.FileDiff, statusByPath map[string]models.FileStatus) []*FileNode {
	if len(diffs) == 0 {
		return []*FileNode{}
	}

	root := &FileNode{Type: NodeDir, Children: make([]*FileNode, 0)}

	for i := range diffs {
		fd := &diffs[i]
		parts := make([]string, 0, 4)
		for _, seg := range strings.Split(fd.Path, "/") {
			if seg != "" {
				parts = append(parts, seg)
			}
		}
		if len(parts) == 0 {
			continue
		}

		current := root
		for j, seg := range parts {
			isFile := j == len(parts)-1
			pathSoFar := strings.Join(parts[:j+1], "/")

			if existing := findChild(current, seg); existing != nil {
				current = existing
				continue
			}

			node := &FileNode{
				Name: seg,
				Path: pathSoFar,
			}
			if isFile {
				node.Type = NodeFile
				node.Diff = fd
				if st, ok := statusByPath[pathSoFar]; ok {
					stCopy := st
					node.Status = &stCopy
				}
			} else {
				node.Type = NodeDir
				node.Children = make([]*FileNode, 0)
			}
			current.Children = append(current.Children, node)
			current = node
		}
	}

	sortTree(root, collate.New(language.Und))
	return root.Children
}

// findChild does a linear scan by name. Fine at review scale; a per-dir
// name index would only matter for trees far larger than a diff produces.
func findChild(dir *FileNode, name string) *FileNode {
	for _, child := range dir.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// sortTree recursively orders children: directories first, then files,
// each group in locale-aware name order.
func sortTree(node *FileNode, coll *collate.Collator) {
	if node == nil || node.Children == nil {
		return
	}

	sort.SliceStable(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		return coll.CompareString(a.Name, b.Name) < 0
	})

	for _, child := range node.Children {
		sortTree(child, coll)
	}
}

// FlattenTree produces a pre-order listing of the tree. A directory's
// children are included only when autoExpand is set or its path is in
// expanded. The function is pure; callers own any memoization.
func FlattenTree(nodes []*FileNode, expanded map[string]bool, autoExpand bool) []FlattenedNode {
	result := make([]FlattenedNode, 0, len(nodes))
	flattenInto(&result, nodes, expanded, autoExpand, 0)
	return result
}

func flattenInto(out *[]FlattenedNode, nodes []*FileNode, expanded map[string]bool, autoExpand bool, depth int) {
	for _, node := range nodes {
		*out = append(*out, FlattenedNode{Node: node, Depth: depth})
		if !node.IsDir() || len(node.Children) == 0 {
			continue
		}
		if autoExpand || expanded[node.Path] {
			flattenInto(out, node.Children, expanded, autoExpand, depth+1)
		}
	}
}
