package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRebuildAndToggle(t *testing.T) {
	svc := NewService(false)
	svc.Rebuild(fileDiffs("a/x.go", "a/y.go", "top.go"), nil)

	// Collapsed by default: directory "a" plus the root-level file.
	require.Len(t, svc.Flat, 2)
	assert.Equal(t, "a", svc.Flat[0].Node.Path)

	svc.ToggleExpand("a")
	require.Len(t, svc.Flat, 4)

	svc.ToggleExpand("a")
	require.Len(t, svc.Flat, 2)
}

func TestServiceAutoExpand(t *testing.T) {
	svc := NewService(true)
	svc.Rebuild(fileDiffs("a/b/deep.go"), nil)

	require.Len(t, svc.Flat, 3)

	// Toggling is inert while auto-expand is on.
	svc.ToggleExpand("a")
	require.Len(t, svc.Flat, 3)
}

func TestServiceExpandCollapseAll(t *testing.T) {
	svc := NewService(false)
	svc.Rebuild(fileDiffs("a/b/deep.go", "c/file.go"), nil)

	svc.ExpandAll()
	assert.Len(t, svc.Flat, 5)

	svc.CollapseAll()
	assert.Len(t, svc.Flat, 2)
}

func TestServiceSelectionRestoredAcrossRebuild(t *testing.T) {
	svc := NewService(true)
	svc.Rebuild(fileDiffs("a/x.go", "a/y.go"), nil)

	svc.Index = 2 // a/y.go
	require.Equal(t, "a/y.go", svc.SelectedPath())

	svc.Rebuild(fileDiffs("a/new.go", "a/x.go", "a/y.go"), nil)
	assert.Equal(t, "a/y.go", svc.SelectedPath())
}

func TestServiceClampIndex(t *testing.T) {
	svc := NewService(true)
	svc.Rebuild(fileDiffs("one.go"), nil)

	svc.Index = 10
	svc.ClampIndex()
	assert.Equal(t, 0, svc.Index)

	svc.Index = -3
	svc.ClampIndex()
	assert.Equal(t, 0, svc.Index)

	svc.Rebuild(nil, nil)
	assert.Nil(t, svc.SelectedNode())
	assert.Equal(t, "", svc.SelectedPath())
}
