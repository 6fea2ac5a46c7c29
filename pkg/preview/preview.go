// Package preview renders the advisory pane content for the picker. Output
// is bounded in both size and time: the picker invokes one subprocess per
// highlighted line and a slow render must never stall the interactive
// session.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Config bounds a render.
type Config struct {
	// Depth limits the directory tree recursion.
	Depth int
	// MaxLines caps file excerpts and tree output.
	MaxLines int
	// Excludes hides matching entries from directory trees.
	Excludes []string
	// DirColor optionally overrides the tree's directory styling.
	DirColor string
}

func (c Config) withDefaults() Config {
	if c.Depth <= 0 {
		c.Depth = 2
	}
	if c.MaxLines <= 0 {
		c.MaxLines = 100
	}
	return c
}

// sniffLen is how much of a file decides text versus binary.
const sniffLen = 8192

// truncationMarker ends any render cut short by its budget or deadline.
const truncationMarker = "…\n"

// Render writes a bounded preview of target: a depth-limited tree for
// directories, a syntax-highlighted excerpt for text files, a content-type
// label plus short hex dump for everything else. Errors are rendered into
// the pane as plain text where possible; the returned error is reserved for
// a broken writer.
func Render(ctx context.Context, w io.Writer, target string, cfg Config) error {
	cfg = cfg.withDefaults()

	if ctx.Err() != nil {
		_, werr := io.WriteString(w, truncationMarker)
		return werr
	}

	info, err := os.Stat(target)
	if err != nil {
		_, werr := fmt.Fprintf(w, "unreadable: %v\n", err)
		return werr
	}

	if info.IsDir() {
		return Tree(ctx, w, target, cfg)
	}

	head := make([]byte, sniffLen)
	f, err := os.Open(target)
	if err != nil {
		_, werr := fmt.Fprintf(w, "unreadable: %v\n", err)
		return werr
	}
	defer f.Close()
	n, _ := io.ReadFull(f, head)
	head = head[:n]

	if isText(head) {
		return Excerpt(ctx, w, target, f, head, cfg)
	}
	return Dump(w, target, info.Size(), head)
}

// isText mirrors the usual heuristic: no NUL bytes within the sniff window
// and a text-ish detected content type.
func isText(head []byte) bool {
	if bytes.IndexByte(head, 0) >= 0 {
		return false
	}
	ct := http.DetectContentType(head)
	return strings.HasPrefix(ct, "text/") ||
		strings.Contains(ct, "json") ||
		strings.Contains(ct, "xml") ||
		strings.Contains(ct, "javascript")
}
