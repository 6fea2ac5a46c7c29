package search

import "context"

// Result is one global-search hit. IsDir decides whether selecting it
// navigates (directory) or defers to the editor (file).
type Result struct {
	Path  string
	IsDir bool
}

// Backend is the uniform contract over the available search strategies. A
// backend never applies the root/exclude configuration itself; filtering is
// the coordinator's job so every backend agrees on the visible result set.
type Backend interface {
	Name() string
	Available() bool
	Search(ctx context.Context, query string) ([]Result, error)
}

// Backend selector values understood by the configuration.
const (
	BackendIndexed  = "indexed"       // system index, re-queried per keystroke
	BackendRebuilt  = "rebuilt-index" // one-shot directory walk
	BackendDisabled = "disabled"
)

// disabledBackend turns the search trigger into a no-op overlay.
type disabledBackend struct{}

func (disabledBackend) Name() string    { return BackendDisabled }
func (disabledBackend) Available() bool { return true }
func (disabledBackend) Search(context.Context, string) ([]Result, error) {
	return nil, nil
}
