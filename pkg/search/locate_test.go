package search

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/fzd/errors"
)

// fakeLocateExecutor routes the index query through a shell script instead of
// a real locate binary, so backend behavior can be exercised without a system
// index.
type fakeLocateExecutor struct {
	script string
}

func (e fakeLocateExecutor) Command(name string, args ...string) *exec.Cmd {
	return exec.Command("sh", append([]string{"-c", e.script, "sh"}, args...)...)
}

func (e fakeLocateExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, "sh", append([]string{"-c", e.script, "sh"}, args...)...)
}

func (e fakeLocateExecutor) LookPath(name string) (string, error) {
	if name == "plocate" {
		return "/usr/bin/plocate", nil
	}
	return "", exec.ErrNotFound
}

// locateScript mimics locate over a real directory tree: case-insensitive
// substring matching against every path under root, exit status 1 when
// nothing matches. The query arrives as the last argument, after the flags
// the backend passes.
func locateScript(root string) string {
	return fmt.Sprintf(`q=""; for a; do q="$a"; done; find %q -mindepth 1 | grep -iF -- "$q"`, root)
}

func TestLocateBackendClassifiesResults(t *testing.T) {
	root := buildTree(t)
	b := newLocateBackend(fakeLocateExecutor{script: locateScript(root)}, 8)
	require.True(t, b.Available())
	assert.Equal(t, BackendIndexed, b.Name())

	results, err := b.Search(context.Background(), "proj")
	require.NoError(t, err)
	require.NotEmpty(t, results)

	isDir := make(map[string]bool, len(results))
	for _, r := range results {
		isDir[r.Path] = r.IsDir
	}
	assert.True(t, isDir[filepath.Join(root, "proj")])
	assert.True(t, isDir[filepath.Join(root, "proj", "src")])
	assert.False(t, isDir[filepath.Join(root, "proj", "src", "main.go")])
}

func TestLocateBackendNoMatchIsEmpty(t *testing.T) {
	root := buildTree(t)
	b := newLocateBackend(fakeLocateExecutor{script: locateScript(root)}, 0)

	// locate reports "nothing matched" with exit status 1; that is an
	// empty result set, never an error.
	results, err := b.Search(context.Background(), "no-such-entry-anywhere")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLocateBackendDropsVanishedEntries(t *testing.T) {
	root := buildTree(t)
	kept := filepath.Join(root, "proj", "README.md")
	gone := filepath.Join(root, "gone.txt")
	script := fmt.Sprintf(`printf '%%s\n' %q %q`, kept, gone)

	b := newLocateBackend(fakeLocateExecutor{script: script}, 0)
	results, err := b.Search(context.Background(), "anything")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, kept, results[0].Path)
}

func TestLocateBackendUnavailable(t *testing.T) {
	b := newLocateBackend(noToolsExecutor{}, 0)
	assert.False(t, b.Available())

	_, err := b.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBackendUnavailable, errors.GetCode(err))
}

// Both backends answer the same query over the same tree with the same
// filtered result set; switching backends changes freshness and latency,
// never which paths a query can reach.
func TestBackendsAgreeOnFilteredResults(t *testing.T) {
	root := buildTree(t)
	f := mustFilter(t, []string{root}, []string{".git"}, 2, 0)

	indexed := newLocateBackend(fakeLocateExecutor{script: locateScript(root)}, 0)
	walk := newWalkBackend(f)

	for _, query := range []string{"", "main", "PROJ", "readme", "no-such-entry"} {
		fromIndex, err := indexed.Search(context.Background(), query)
		require.NoError(t, err, "query %q", query)
		fromWalk, err := walk.Search(context.Background(), query)
		require.NoError(t, err, "query %q", query)

		assert.Equal(t, sortedPaths(f.Apply(fromIndex)), sortedPaths(f.Apply(fromWalk)),
			"query %q", query)
	}

	// The agreement is not vacuous: the shared corpus actually matches.
	hits, err := indexed.Search(context.Background(), "main")
	require.NoError(t, err)
	assert.NotEmpty(t, f.Apply(hits))
}

func sortedPaths(results []Result) []string {
	paths := make([]string, 0, len(results))
	for _, r := range results {
		paths = append(paths, r.Path)
	}
	sort.Strings(paths)
	return paths
}
