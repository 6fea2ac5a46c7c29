// Package listing enumerates the selectable contents of a single directory.
package listing

import (
	"os"
	"sort"
	"strings"

	"github.com/mattsolo1/fzd/logging"
)

// Marker is appended to directory basenames so the picker displays them
// distinctly from files.
const Marker = "/"

// Listing holds a directory's entries split by kind. Dirs carry the trailing
// Marker in their display basename; Files are raw basenames. Both are sorted
// case-insensitively and include hidden (dot-prefixed) entries.
type Listing struct {
	Dirs  []string
	Files []string
}

// List reads a directory and classifies its entries. Unreadable directories
// produce an empty Listing so one bad frame never aborts the session.
// Entries are classified by their DirEntry type only; symlink targets are not
// stat-dereferenced.
func List(dir string) Listing {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.NewLogger("listing").WithError(err).WithField("dir", dir).
			Debug("directory unreadable, serving empty frame")
		return Listing{}
	}

	var l Listing
	for _, entry := range entries {
		if entry.IsDir() {
			l.Dirs = append(l.Dirs, entry.Name()+Marker)
		} else {
			l.Files = append(l.Files, entry.Name())
		}
	}

	sortFold(l.Dirs)
	sortFold(l.Files)
	return l
}

// sortFold orders names case-insensitively, falling back to the raw string so
// the order is deterministic when two names differ only by case.
func sortFold(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
		if a == b {
			return names[i] < names[j]
		}
		return a < b
	})
}
