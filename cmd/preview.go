package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/fzd/cli"
	"github.com/mattsolo1/fzd/pkg/preview"
	"github.com/mattsolo1/fzd/pkg/token"
)

// NewPreviewCmd returns the preview entrypoint the picker invokes once per
// highlighted line. Its stdout is the preview pane, so printing here is
// safe; the render is bounded by the configured deadline and whatever was
// written before expiry stays visible.
func NewPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "preview <token>",
		Short:  "Render the preview pane for an encoded path token",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			cfg, err := loadConfig(opts.ConfigFile)
			if err != nil {
				return err
			}

			target, err := token.Decode(args[0])
			if err != nil {
				// The pane shows the problem; the picker keeps running.
				fmt.Fprintf(os.Stdout, "unreadable: %v\n", err)
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), previewTimeout(cfg))
			defer cancel()

			return renderBounded(ctx, os.Stdout, func(w io.Writer) error {
				return preview.Render(ctx, w, target, preview.Config{
					Depth:    cfg.Preview.Depth,
					MaxLines: cfg.Preview.MaxLines,
					Excludes: cfg.Search.Exclude,
					DirColor: cfg.Colors.Dir,
				})
			})
		},
	}
	return cmd
}

// renderBounded enforces the deadline even when the render is stuck inside
// the filesystem (a dead mount stalls Stat and Read indefinitely, where the
// render's own context checks never run). The render goes through a gated
// writer in its own goroutine; on expiry the gate closes and the truncation
// marker is flushed after whatever partial output made it through.
func renderBounded(ctx context.Context, w io.Writer, render func(io.Writer) error) error {
	gw := &gatedWriter{w: w}
	done := make(chan error, 1)
	go func() { done <- render(gw) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// The render may have finished in the same instant; prefer its
		// result so the marker is never written twice.
		select {
		case err := <-done:
			return err
		default:
		}
		gw.close()
		_, err := io.WriteString(w, "…\n")
		return err
	}
}

// gatedWriter stops passing writes through once closed, so an abandoned
// render goroutine cannot interleave with the truncation marker.
type gatedWriter struct {
	mu     sync.Mutex
	w      io.Writer
	closed bool
}

func (g *gatedWriter) Write(p []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return 0, context.DeadlineExceeded
	}
	return g.w.Write(p)
}

func (g *gatedWriter) close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}
