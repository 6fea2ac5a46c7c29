package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Normalize returns the canonical absolute form of a path: absolute, cleaned
// of duplicate separators and dot segments, with no trailing slash except for
// the filesystem root. Symbolic links are resolved when the path exists;
// otherwise the cleaned absolute path is returned as-is.
func Normalize(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	canonical, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		// Symlink evaluation fails for paths that do not exist yet;
		// fall back to the absolute path.
		canonical = absPath
	}
	return filepath.Clean(canonical), nil
}

// Parent returns the normalized parent directory of a path. The parent of the
// filesystem root is the root itself, so Parent is idempotent at the top.
func Parent(path string) string {
	cleaned := filepath.Clean(path)
	parent := filepath.Dir(cleaned)
	return parent
}

// IsRoot reports whether the path is the filesystem root.
func IsRoot(path string) bool {
	cleaned := filepath.Clean(path)
	return cleaned == filepath.Dir(cleaned)
}

// Within reports whether path is equal to or located under root. Both inputs
// must already be normalized; this is a pure string predicate and never
// touches the filesystem.
func Within(path, root string) bool {
	if root == "" {
		return false
	}
	root = filepath.Clean(root)
	path = filepath.Clean(path)
	if path == root {
		return true
	}
	if root == string(filepath.Separator) {
		return strings.HasPrefix(path, root)
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

// Expand expands a leading "~/" and environment variables in a path and
// returns the absolute result.
func Expand(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, path[2:])
		}
	}
	path = os.ExpandEnv(path)
	return filepath.Abs(path)
}
