package preview

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/moby/patternmatcher"

	"github.com/mattsolo1/fzd/pkg/listing"
)

const (
	branchMid  = "├── "
	branchLast = "└── "
	pipeIndent = "│   "
	lastIndent = "    "
)

// errTruncated stops the walk once the line budget is spent.
var errTruncated = fmt.Errorf("preview truncated")

// Tree writes a depth-limited tree of a directory's contents, directories
// styled and listed first within each level, excluded entries pruned.
func Tree(ctx context.Context, w io.Writer, dir string, cfg Config) error {
	cfg = cfg.withDefaults()

	var matcher *patternmatcher.PatternMatcher
	if len(cfg.Excludes) > 0 {
		if m, err := patternmatcher.New(cfg.Excludes); err == nil {
			matcher = m
		}
	}

	style := lipgloss.NewStyle().Bold(true)
	if cfg.DirColor != "" {
		style = style.Foreground(lipgloss.Color(cfg.DirColor))
	}

	if _, err := fmt.Fprintln(w, style.Render(filepath.Base(dir)+listing.Marker)); err != nil {
		return err
	}

	t := treeWriter{
		w:       w,
		matcher: matcher,
		style:   style,
		budget:  cfg.MaxLines - 1,
	}
	err := t.walk(ctx, dir, "", cfg.Depth)
	if err == errTruncated {
		_, err = fmt.Fprintln(w, "…")
	}
	return err
}

type treeWriter struct {
	w       io.Writer
	matcher *patternmatcher.PatternMatcher
	style   lipgloss.Style
	budget  int
}

func (t *treeWriter) walk(ctx context.Context, dir, prefix string, depth int) error {
	if depth <= 0 {
		return nil
	}
	if ctx.Err() != nil {
		return errTruncated
	}

	l := listing.List(dir)
	entries := make([]string, 0, len(l.Dirs)+len(l.Files))
	entries = append(entries, l.Dirs...)
	entries = append(entries, l.Files...)

	kept := entries[:0]
	for _, name := range entries {
		if !t.excluded(strings.TrimSuffix(name, listing.Marker)) {
			kept = append(kept, name)
		}
	}

	for i, name := range kept {
		if t.budget <= 0 {
			return errTruncated
		}
		t.budget--

		connector, childIndent := branchMid, pipeIndent
		if i == len(kept)-1 {
			connector, childIndent = branchLast, lastIndent
		}

		label := name
		isDir := strings.HasSuffix(name, listing.Marker)
		if isDir {
			label = t.style.Render(name)
		}
		if _, err := fmt.Fprintln(t.w, prefix+connector+label); err != nil {
			return err
		}

		if isDir {
			child := filepath.Join(dir, strings.TrimSuffix(name, listing.Marker))
			if err := t.walk(ctx, child, prefix+childIndent, depth-1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *treeWriter) excluded(name string) bool {
	if t.matcher == nil {
		return false
	}
	matched, err := t.matcher.MatchesOrParentMatches(name)
	if err != nil {
		return false
	}
	return matched
}
