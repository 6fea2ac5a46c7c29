// Package search implements the global filesystem search overlay: backend
// selection, query gating, root/exclude filtering, and rendering of results
// into picker lines.
package search

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/fzd/command"
	"github.com/mattsolo1/fzd/logging"
	"github.com/mattsolo1/fzd/pkg/frame"
	"github.com/mattsolo1/fzd/pkg/listing"
	"github.com/mattsolo1/fzd/pkg/token"
)

// Coordinator owns one overlay session's backend and filters. Backend choice
// is a pure function of configuration and availability, decided once at
// construction and never re-evaluated mid-session.
type Coordinator struct {
	backend Backend
	filter  *Filter
	log     *logrus.Entry
}

// NewCoordinator selects the backend: an explicit configuration override
// wins; otherwise the system index is preferred for its instant matching,
// with the one-shot walk as fallback. The walk needs only the filesystem, so
// the disabled stub is reached only by explicit configuration.
func NewCoordinator(selector string, filter *Filter, executor command.Executor) *Coordinator {
	log := logging.NewLogger("search")

	var backend Backend
	switch selector {
	case BackendIndexed:
		backend = newLocateBackend(executor, filter.maxResults)
	case BackendRebuilt:
		backend = newWalkBackend(filter)
	case BackendDisabled:
		backend = disabledBackend{}
	default:
		backend = newLocateBackend(executor, filter.maxResults)
		if !backend.Available() {
			backend = newWalkBackend(filter)
		}
	}

	if !backend.Available() {
		log.WithField("backend", backend.Name()).Warn("configured backend unavailable, search disabled")
		backend = disabledBackend{}
	}

	return &Coordinator{backend: backend, filter: filter, log: log}
}

// Backend returns the name of the selected backend.
func (c *Coordinator) Backend() string {
	return c.backend.Name()
}

// Indexed reports whether the overlay should re-query on every keystroke
// (indexed backend) instead of serving a static candidate list.
func (c *Coordinator) Indexed() bool {
	return c.backend.Name() == BackendIndexed
}

// Disabled reports whether the overlay is a no-op that only supports Escape.
func (c *Coordinator) Disabled() bool {
	return c.backend.Name() == BackendDisabled
}

// Query runs one gated, filtered query. Backend failures degrade to an empty
// result set for the frame; they never abort the session.
func (c *Coordinator) Query(ctx context.Context, query string) []Result {
	if !c.filter.AllowQuery(query) {
		return nil
	}
	results, err := c.backend.Search(ctx, query)
	if err != nil {
		c.log.WithError(err).WithField("backend", c.backend.Name()).Warn("search failed")
		return nil
	}
	return c.filter.Apply(results)
}

// Index returns the full filtered candidate list for static overlays. The
// min-query-length gate does not apply here: the picker itself does the
// per-keystroke narrowing against this list.
func (c *Coordinator) Index(ctx context.Context) []Result {
	results, err := c.backend.Search(ctx, "")
	if err != nil {
		c.log.WithError(err).Warn("index build failed")
		return nil
	}
	return c.filter.Apply(results)
}

// Lines renders results as picker records: token plus a full-path label,
// directories carrying the same trailing marker as the per-directory frames.
func Lines(results []Result, pal frame.Palette) []frame.Line {
	lines := make([]frame.Line, 0, len(results))
	for _, r := range results {
		label := r.Path
		if r.IsDir {
			label = pal.Dir(label + listing.Marker)
		} else {
			label = pal.File(label)
		}
		lines = append(lines, frame.Line{Token: token.Encode(r.Path), Label: label})
	}
	return lines
}
