// Package nav owns the navigation state machine: the current directory plus
// the per-directory memory of which child was last entered. The memory is
// advisory only; it pre-selects a caret position and is never authoritative
// for navigation.
package nav

import (
	"os"
	"path/filepath"

	"github.com/mattsolo1/fzd/logging"
	"github.com/mattsolo1/fzd/util/pathutil"
)

// State is the single mutable owner of the current directory and the
// navigation memory. It is only ever touched by the main control thread.
type State struct {
	current string
	memory  map[string]string
}

// NewState creates a State rooted at the given directory, which is normalized
// first. The memory starts empty on every invocation; it is never persisted.
func NewState(start string) (*State, error) {
	dir, err := pathutil.Normalize(start)
	if err != nil {
		return nil, err
	}
	return &State{
		current: dir,
		memory:  make(map[string]string),
	}, nil
}

// Current returns the current directory.
func (s *State) Current() string {
	return s.current
}

// Up ascends to the parent directory, remembering the child being exited so
// the next frame for the parent pre-selects it. At the filesystem root the
// transition is a no-op re-entry.
func (s *State) Up() {
	parent := pathutil.Parent(s.current)
	if parent != s.current {
		s.memory[parent] = filepath.Base(s.current)
	}
	s.current = parent
}

// Down descends into the selected directory. The transition is rejected when
// the selection is not a directory, or when it names the parent of the
// current directory (the ".." line must never be treated as a descent).
func (s *State) Down(selected string) bool {
	if selected == "" || selected == pathutil.Parent(s.current) {
		return false
	}
	info, err := os.Stat(selected)
	if err != nil || !info.IsDir() {
		logging.NewLogger("nav").WithField("selected", selected).
			Debug("rejecting descent into non-directory")
		return false
	}
	s.memory[s.current] = filepath.Base(selected)
	s.current = selected
	return true
}

// JumpTo moves directly to a directory (global-search results land here),
// remembering the target under its own parent so returning frames restore
// the caret. Jumping to the directory the session is already in records
// nothing: memory keys exist only for directories that were actually left.
func (s *State) JumpTo(dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	if dir == s.current {
		return true
	}
	parent := pathutil.Parent(dir)
	if parent != dir {
		s.memory[parent] = filepath.Base(dir)
	}
	s.current = dir
	return true
}

// VisitFile positions the session at a file's containing directory. Memory
// keys are directory-only: the containing directory is remembered under its
// parent, but the file basename itself is never recorded.
func (s *State) VisitFile(file string) {
	s.JumpTo(pathutil.Parent(file))
}

// ConfirmTarget resolves the terminal Enter action: confirming the parent
// ("..") line just re-confirms the current directory rather than ascending.
func (s *State) ConfirmTarget(selected string) string {
	if selected == pathutil.Parent(s.current) {
		return s.current
	}
	return selected
}

// Remembered returns the basename of the child last entered from dir, or ""
// when the directory has never been exited-from.
func (s *State) Remembered(dir string) string {
	return s.memory[dir]
}
