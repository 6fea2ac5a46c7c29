package search

import (
	"strings"

	"github.com/moby/patternmatcher"

	"github.com/mattsolo1/fzd/util/pathutil"
)

// Filter applies the configured allowed-roots and exclude-glob predicates to
// backend results. Both predicates are pure string checks; the filter never
// mutates a backend's underlying index.
type Filter struct {
	roots       []string
	excludes    *patternmatcher.PatternMatcher
	minQueryLen int
	maxResults  int
}

// NewFilter builds a Filter. Roots must already be normalized absolute paths;
// exclude patterns use dockerignore-style globs. A bare pattern with no
// separator (".git", "*.cache") is anchored at any depth.
func NewFilter(roots []string, excludes []string, minQueryLen, maxResults int) (*Filter, error) {
	var pm *patternmatcher.PatternMatcher
	if len(excludes) > 0 {
		pm2, err := patternmatcher.New(anchorPatterns(excludes))
		if err != nil {
			return nil, err
		}
		pm = pm2
	}
	return &Filter{
		roots:       roots,
		excludes:    pm,
		minQueryLen: minQueryLen,
		maxResults:  maxResults,
	}, nil
}

// Roots returns the configured allowed root paths.
func (f *Filter) Roots() []string {
	return f.roots
}

// AllowQuery gates queries below the configured minimum length; short
// queries flood the indexed backend with the whole filesystem.
func (f *Filter) AllowQuery(query string) bool {
	return len([]rune(query)) >= f.minQueryLen
}

// Apply filters results down to those under an allowed root and not excluded,
// truncated to the configured maximum count.
func (f *Filter) Apply(results []Result) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if !f.underRoot(r.Path) || f.Excluded(r.Path) {
			continue
		}
		out = append(out, r)
		if f.maxResults > 0 && len(out) >= f.maxResults {
			break
		}
	}
	return out
}

// Excluded reports whether a path (or any of its parents) matches an
// exclude pattern.
func (f *Filter) Excluded(path string) bool {
	if f.excludes == nil {
		return false
	}
	matched, err := f.excludes.MatchesOrParentMatches(strings.TrimPrefix(path, "/"))
	if err != nil {
		return false
	}
	return matched
}

func (f *Filter) underRoot(path string) bool {
	if len(f.roots) == 0 {
		return true
	}
	for _, root := range f.roots {
		if pathutil.Within(path, root) {
			return true
		}
	}
	return false
}

// anchorPatterns rewrites bare patterns so "name" and "*.ext" match at any
// depth, matching what users expect from a comma-separated exclude list.
func anchorPatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		p = strings.TrimPrefix(p, "/")
		if !strings.Contains(p, "/") {
			p = "**/" + p
		}
		out = append(out, p)
	}
	return out
}
