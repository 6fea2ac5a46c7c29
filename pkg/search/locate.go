package search

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"strconv"

	"github.com/mattsolo1/fzd/command"
	"github.com/mattsolo1/fzd/errors"
)

// locateBinaries are probed in preference order; plocate ships a
// locate-compatible flag surface.
var locateBinaries = []string{"plocate", "locate"}

// locateBackend answers queries from the prebuilt system index. Matching is
// instantaneous, so the overlay re-queries it on every keystroke.
type locateBackend struct {
	builder  *command.SafeBuilder
	executor command.Executor
	binary   string
	limit    int
}

func newLocateBackend(executor command.Executor, limit int) *locateBackend {
	b := &locateBackend{
		builder:  command.NewSafeBuilderWithExecutor(executor),
		executor: executor,
		limit:    limit,
	}
	for _, name := range locateBinaries {
		if _, err := executor.LookPath(name); err == nil {
			b.binary = name
			break
		}
	}
	return b
}

func (b *locateBackend) Name() string { return BackendIndexed }

func (b *locateBackend) Available() bool { return b.binary != "" }

// Search runs the index query. Results are classified with a single Lstat
// each; entries that vanished since the index was built are dropped.
func (b *locateBackend) Search(ctx context.Context, query string) ([]Result, error) {
	if !b.Available() {
		return nil, errors.BackendUnavailable(BackendIndexed)
	}

	args := []string{"-i"}
	if b.limit > 0 {
		// Over-fetch so the root/exclude filters still have something to
		// keep after discarding out-of-scope paths.
		args = append(args, "-l", strconv.Itoa(b.limit*4))
	}
	args = append(args, "--", query)

	cmd, err := b.builder.Build(ctx, b.binary, args...)
	if err != nil {
		return nil, err
	}
	defer cmd.Release()

	out, err := cmd.Exec().Output()
	if err != nil {
		// locate exits 1 when nothing matches; that is an empty result,
		// not a failure.
		if exitErr, ok := err.(interface{ ExitCode() int }); ok && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeSearchFailed, "index query failed")
	}

	var results []Result
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		path := scanner.Text()
		if path == "" {
			continue
		}
		info, err := os.Lstat(path)
		if err != nil {
			continue
		}
		results = append(results, Result{Path: path, IsDir: info.IsDir()})
	}
	return results, nil
}
