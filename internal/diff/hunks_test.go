package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffdeck/diffdeck/internal/models"
)

func TestParseHunksLineNumbers(t *testing.T) {
	hunks := ParseHunks(modifySection)
	require.Len(t, hunks, 1)

	h := hunks[0]
	assert.Equal(t, 1, h.OldStart)
	assert.Equal(t, 3, h.OldLines)
	assert.Equal(t, 1, h.NewStart)
	assert.Equal(t, 3, h.NewLines)
	assert.Equal(t, "@@ -1,3 +1,3 @@", h.Header)

	require.Len(t, h.Lines, 4)
	assert.Equal(t, models.LineContext, h.Lines[0].Kind)
	assert.Equal(t, "const a = 1;", h.Lines[0].Content)
	assert.Equal(t, 1, h.Lines[0].OldLine)
	assert.Equal(t, 1, h.Lines[0].NewLine)

	assert.Equal(t, models.LineRemove, h.Lines[1].Kind)
	assert.Equal(t, "const b = 2;", h.Lines[1].Content)
	assert.Equal(t, 2, h.Lines[1].OldLine)
	assert.Zero(t, h.Lines[1].NewLine)

	assert.Equal(t, models.LineAdd, h.Lines[2].Kind)
	assert.Equal(t, "const b = 3;", h.Lines[2].Content)
	assert.Zero(t, h.Lines[2].OldLine)
	assert.Equal(t, 2, h.Lines[2].NewLine)

	assert.Equal(t, models.LineContext, h.Lines[3].Kind)
	assert.Equal(t, 3, h.Lines[3].OldLine)
	assert.Equal(t, 3, h.Lines[3].NewLine)
}

func TestParseHunksMultipleHunks(t *testing.T) {
	section := `diff --git a/f.txt b/f.txt
index 1111111..2222222 100644
--- a/f.txt
+++ b/f.txt
@@ -1,2 +1,2 @@
 one
-two
+TWO
@@ -10,2 +10,3 @@
 ten
+ten and a half
 eleven
`
	hunks := ParseHunks(section)
	require.Len(t, hunks, 2)
	assert.Equal(t, 1, hunks[0].OldStart)
	assert.Equal(t, 10, hunks[1].OldStart)
	assert.Equal(t, 3, hunks[1].NewLines)
	require.Len(t, hunks[1].Lines, 3)
	assert.Equal(t, 11, hunks[1].Lines[1].NewLine)
}

func TestParseHunksShorthandLength(t *testing.T) {
	// "@@ -1 +1 @@" means one line on each side.
	section := "@@ -1 +1 @@\n-a\n+b\n"
	hunks := ParseHunks(section)
	require.Len(t, hunks, 1)
	assert.Equal(t, 1, hunks[0].OldLines)
	assert.Equal(t, 1, hunks[0].NewLines)
}

func TestParseHunksNoNewlineMarker(t *testing.T) {
	section := `@@ -1 +1 @@
-old
+new
\ No newline at end of file
`
	hunks := ParseHunks(section)
	require.Len(t, hunks, 1)
	assert.Len(t, hunks[0].Lines, 2)
}

func TestParseHunksDropsTrailingPatchFooter(t *testing.T) {
	// format-patch style trailer after the hunk body: the "--" signature
	// separator and a stray "+" line must not become hunk lines.
	section := `@@ -1 +1 @@
-old
+new
--
2.39.2
+stray
`
	hunks := ParseHunks(section)
	require.Len(t, hunks, 1)
	require.Len(t, hunks[0].Lines, 2)
	assert.Equal(t, models.LineRemove, hunks[0].Lines[0].Kind)
	assert.Equal(t, models.LineAdd, hunks[0].Lines[1].Kind)
	assert.Equal(t, "new", hunks[0].Lines[1].Content)
}

func TestParseHunksNoHeaders(t *testing.T) {
	assert.Empty(t, ParseHunks("diff --git a/x b/x\nindex 111..222\n"))
	assert.Empty(t, ParseHunks(""))
}
