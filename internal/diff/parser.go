// Package diff parses git-style unified diff text into per-file records.
package diff

import (
	"regexp"
	"strings"

	"github.com/diffdeck/diffdeck/internal/models"
)

const sectionMarker = "diff --git "

// headerRe matches the per-file header line: diff --git a/<old> b/<new>.
var headerRe = regexp.MustCompile(`^diff --git a/(.+?) b/(.+)$`)

// SplitSections splits raw diff text into one section per changed file.
// Each section starts at a "diff --git " line and runs up to the next one.
// Text before the first header is discarded; input without any header
// yields an empty slice.
func SplitSections(text string) []string {
	if text == "" {
		return nil
	}

	var sections []string
	var current []string
	inSection := false

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, sectionMarker) {
			if inSection {
				sections = append(sections, strings.Join(current, "\n"))
			}
			current = []string{line}
			inSection = true
			continue
		}
		if inSection {
			current = append(current, line)
		}
	}
	if inSection {
		sections = append(sections, strings.Join(current, "\n"))
	}

	return sections
}

// ParseGitDiff parses multi-file unified diff text into FileDiff records,
// preserving the order files appear in the input. Malformed sections never
// fail the parse; unreadable headers degrade to the path "unknown".
func ParseGitDiff(text string) []models.FileDiff {
	sections := SplitSections(text)
	if len(sections) == 0 {
		return []models.FileDiff{}
	}

	diffs := make([]models.FileDiff, 0, len(sections))
	for _, section := range sections {
		diffs = append(diffs, classifySection(section))
	}
	return diffs
}

// classifySection determines paths and change kind for one section.
// Rules run in a fixed order: modify is the default, add and delete
// override it, and rename is checked last so it wins when a rename body
// also carries /dev/null markers.
func classifySection(section string) models.FileDiff {
	oldPath := "unknown"
	newPath := oldPath

	headerLine := section
	if idx := strings.IndexByte(section, '\n'); idx >= 0 {
		headerLine = section[:idx]
	}
	if m := headerRe.FindStringSubmatch(headerLine); m != nil {
		oldPath = m[1]
		newPath = m[2]
	}

	kind := models.ChangeModify
	if strings.Contains(section, "new file mode") || strings.Contains(section, "--- /dev/null") {
		kind = models.ChangeAdd
	}
	if strings.Contains(section, "deleted file mode") || strings.Contains(section, "+++ /dev/null") {
		kind = models.ChangeDelete
	}

	renameFrom := markerValue(section, "rename from ")
	renameTo := markerValue(section, "rename to ")
	if renameFrom != "" {
		kind = models.ChangeRename
	}

	fd := models.FileDiff{
		Path:  newPath,
		Kind:  kind,
		Hunks: ParseHunks(section),
		Raw:   section,
	}
	if renameTo != "" {
		fd.Path = renameTo
	}
	switch {
	case renameFrom != "":
		fd.OldPath = renameFrom
	case kind == models.ChangeRename:
		fd.OldPath = oldPath
	}
	return fd
}

// markerValue returns the remainder of the first line starting with prefix.
func markerValue(section, prefix string) string {
	for _, line := range strings.Split(section, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}
