package listing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populate(t *testing.T, dirs []string, files []string) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range dirs {
		require.NoError(t, os.Mkdir(filepath.Join(root, d), 0o755))
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, f), []byte("x"), 0o644))
	}
	return root
}

func TestListSplitsAndSorts(t *testing.T) {
	root := populate(t,
		[]string{"src", "Docs", "vendor"},
		[]string{"README.md", "main.go", "Makefile"},
	)

	l := List(root)

	assert.Equal(t, []string{"Docs/", "src/", "vendor/"}, l.Dirs)
	assert.Equal(t, []string{"main.go", "Makefile", "README.md"}, l.Files)
}

func TestListIncludesHiddenEntries(t *testing.T) {
	root := populate(t, []string{".git", "src"}, []string{".envrc"})

	l := List(root)

	assert.Equal(t, []string{".git/", "src/"}, l.Dirs)
	assert.Equal(t, []string{".envrc"}, l.Files)
}

func TestListUnreadableDirIsEmpty(t *testing.T) {
	l := List(filepath.Join(t.TempDir(), "does-not-exist"))

	assert.Empty(t, l.Dirs)
	assert.Empty(t, l.Files)
}

func TestListSymlinkClassifiedWithoutDeref(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real")
	require.NoError(t, os.Mkdir(target, 0o755))
	if err := os.Symlink(target, filepath.Join(root, "alias")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	l := List(root)

	// A symlink to a directory is not itself a directory entry; it stays in
	// the file list because entries are not stat-dereferenced.
	assert.Equal(t, []string{"real/"}, l.Dirs)
	assert.Equal(t, []string{"alias"}, l.Files)
}

func TestListCaseTieBreakIsDeterministic(t *testing.T) {
	root := populate(t, nil, []string{"name", "Name"})

	l := List(root)

	assert.Equal(t, []string{"Name", "name"}, l.Files)
}
