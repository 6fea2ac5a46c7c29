// Package frame builds the exact ordered set of selectable lines for one
// picker invocation. Ordering is load-bearing: the preselect position and the
// decoded selection both index into these lines, so the slice returned here
// must match what reaches the picker byte for byte.
package frame

import (
	"strings"

	"github.com/mattsolo1/fzd/pkg/listing"
	"github.com/mattsolo1/fzd/pkg/token"
	"github.com/mattsolo1/fzd/util/pathutil"
)

// ParentLabel is the display label of the always-first parent entry.
const ParentLabel = ".."

// Line pairs an opaque path token with its human-readable label.
type Line struct {
	Token string
	Label string
}

// Record renders the line as the tab-delimited record fed to the picker.
func (l Line) Record() string {
	return l.Token + "\t" + l.Label
}

// Build combines a directory listing with the remembered child basename into
// picker lines: the parent entry first, then directories, then files. The
// returned preselect is the line index of the remembered directory (always
// >= 1 when present) or 0 when nothing is remembered, which leaves the caret
// on the parent line.
func Build(currentDir string, l listing.Listing, remembered string, pal Palette) ([]Line, int) {
	lines := make([]Line, 0, 1+len(l.Dirs)+len(l.Files))

	parent := pathutil.Parent(currentDir)
	lines = append(lines, Line{
		Token: token.Encode(parent),
		Label: pal.Dir(ParentLabel),
	})

	preselect := 0
	for i, name := range l.Dirs {
		base := strings.TrimSuffix(name, listing.Marker)
		if remembered != "" && base == remembered {
			preselect = i + 1
		}
		lines = append(lines, Line{
			Token: token.Encode(join(currentDir, base)),
			Label: pal.Dir(name),
		})
	}

	for _, name := range l.Files {
		lines = append(lines, Line{
			Token: token.Encode(join(currentDir, name)),
			Label: pal.File(name),
		})
	}

	return lines, preselect
}

// Render serializes lines into the newline-terminated byte stream written to
// the picker's stdin.
func Render(lines []Line) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line.Record())
		b.WriteByte('\n')
	}
	return b.String()
}

func join(dir, base string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + base
	}
	return dir + "/" + base
}
