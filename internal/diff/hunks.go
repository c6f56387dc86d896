package diff

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/diffdeck/diffdeck/internal/models"
)

// hunkHeaderRe matches "@@ -<old>[,<len>] +<new>[,<len>] @@" headers.
// The length defaults to 1 when omitted, matching git's shorthand.
var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// ParseHunks extracts the ordered hunks from one per-file diff section.
// Lines before the first hunk header (file mode lines, ---/+++ markers)
// are skipped. The section splitter and classifier treat this parser as
// an opaque collaborator.
func ParseHunks(section string) []models.Hunk {
	var hunks []models.Hunk
	var current *models.Hunk
	oldLine, newLine := 0, 0

	for _, line := range strings.Split(section, "\n") {
		if m := hunkHeaderRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				hunks = append(hunks, *current)
			}
			current = &models.Hunk{
				OldStart: atoiDefault(m[1], 0),
				OldLines: atoiDefault(m[2], 1),
				NewStart: atoiDefault(m[3], 0),
				NewLines: atoiDefault(m[4], 1),
				Header:   line,
			}
			oldLine = current.OldStart
			newLine = current.NewStart
			continue
		}
		if current == nil {
			continue
		}
		exhausted := oldLine >= current.OldStart+current.OldLines &&
			newLine >= current.NewStart+current.NewLines

		switch {
		case strings.HasPrefix(line, "+"):
			if exhausted {
				// Trailing text after the declared ranges is not hunk
				// content, even when it resembles an added line.
				continue
			}
			current.Lines = append(current.Lines, models.HunkLine{
				Kind:    models.LineAdd,
				Content: line[1:],
				NewLine: newLine,
			})
			newLine++
		case strings.HasPrefix(line, "-"):
			if exhausted {
				continue
			}
			current.Lines = append(current.Lines, models.HunkLine{
				Kind:    models.LineRemove,
				Content: line[1:],
				OldLine: oldLine,
			})
			oldLine++
		case strings.HasPrefix(line, `\`):
			// "\ No newline at end of file" carries no line content
		case strings.HasPrefix(line, sectionMarker):
			// A later file header means the splitter handed us too much;
			// stop rather than attribute foreign lines to this hunk.
			hunks = append(hunks, *current)
			return hunks
		default:
			if exhausted {
				continue
			}
			content := line
			if strings.HasPrefix(line, " ") {
				content = line[1:]
			}
			current.Lines = append(current.Lines, models.HunkLine{
				Kind:    models.LineContext,
				Content: content,
				OldLine: oldLine,
				NewLine: newLine,
			})
			oldLine++
			newLine++
		}
	}

	if current != nil {
		hunks = append(hunks, *current)
	}
	return hunks
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
