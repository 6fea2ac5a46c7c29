package search

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// walkBackend builds an ephemeral index by walking the allowed roots once,
// then serves queries from it for the rest of the overlay session. The walk
// honors the exclude patterns by pruning matched directories, so the index
// never even visits excluded subtrees.
type walkBackend struct {
	filter *Filter

	once  sync.Once
	index []Result
}

func newWalkBackend(filter *Filter) *walkBackend {
	return &walkBackend{filter: filter}
}

func (b *walkBackend) Name() string { return BackendRebuilt }

// Available is unconditional: the walk needs nothing beyond the filesystem.
func (b *walkBackend) Available() bool { return true }

// Search matches case-insensitive substrings against the index, mirroring the
// indexed backend's semantics so both backends agree on the result set for
// identical filesystem state. An empty query returns the whole index, which
// is how the overlay obtains its static candidate list.
func (b *walkBackend) Search(ctx context.Context, query string) ([]Result, error) {
	b.once.Do(func() { b.index = b.buildIndex(ctx) })

	if query == "" {
		return b.index, nil
	}
	needle := strings.ToLower(query)
	var results []Result
	for _, r := range b.index {
		if strings.Contains(strings.ToLower(r.Path), needle) {
			results = append(results, r)
		}
	}
	return results, nil
}

func (b *walkBackend) buildIndex(ctx context.Context) []Result {
	var index []Result
	for _, root := range b.filter.Roots() {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctx.Err() != nil {
				return filepath.SkipAll
			}
			if err != nil {
				// Unreadable entries degrade to gaps in the index.
				return nil
			}
			if path == root {
				return nil
			}
			if b.filter.Excluded(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			index = append(index, Result{Path: path, IsDir: d.IsDir()})
			return nil
		})
	}
	return index
}
