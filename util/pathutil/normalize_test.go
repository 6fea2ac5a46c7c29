package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"nested directory", "/home/u/proj", "/home/u"},
		{"single level", "/home", "/"},
		{"root is self-parent", "/", "/"},
		{"trailing slash", "/home/u/", "/home"},
		{"duplicate separators", "/home//u", "/home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parent(tt.input); got != tt.expected {
				t.Errorf("Parent(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParentIdempotentAtRoot(t *testing.T) {
	if got := Parent(Parent("/")); got != "/" {
		t.Errorf("Parent(Parent(/)) = %q, want /", got)
	}
}

func TestIsRoot(t *testing.T) {
	if !IsRoot("/") {
		t.Error("expected / to be root")
	}
	if IsRoot("/home") {
		t.Error("expected /home not to be root")
	}
}

func TestWithin(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		root     string
		expected bool
	}{
		{"direct child", "/home/u/proj", "/home/u", true},
		{"equal", "/home/u", "/home/u", true},
		{"sibling prefix", "/home/usteam", "/home/u", false},
		{"outside", "/var/log", "/home/u", false},
		{"under root dir", "/anything", "/", true},
		{"empty root", "/home/u", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Within(tt.path, tt.root); got != tt.expected {
				t.Errorf("Within(%q, %q) = %v, want %v", tt.path, tt.root, got, tt.expected)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	dir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Normalize(dir + string(filepath.Separator))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got != resolved {
		t.Errorf("Normalize(%q) = %q, want %q", dir, got, resolved)
	}
}

func TestNormalizeResolvesSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := Normalize(link)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	want, err := Normalize(target)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Normalize(%q) = %q, want %q", link, got, want)
	}
}

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := Expand("~/projects")
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if got != filepath.Join(home, "projects") {
		t.Errorf("Expand(~/projects) = %q, want %q", got, filepath.Join(home, "projects"))
	}
}
