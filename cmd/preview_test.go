package cmd

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBoundedPassesThroughResult(t *testing.T) {
	var buf bytes.Buffer
	err := renderBounded(context.Background(), &buf, func(w io.Writer) error {
		_, werr := io.WriteString(w, "done\n")
		return werr
	})
	require.NoError(t, err)
	assert.Equal(t, "done\n", buf.String())
}

func TestRenderBoundedFlushesPartialOnExpiry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	release := make(chan struct{})
	wrote := make(chan struct{})

	var buf bytes.Buffer
	err := renderBounded(ctx, &buf, func(w io.Writer) error {
		io.WriteString(w, "partial tree\n")
		cancel()
		<-release
		// A render stuck in the filesystem keeps going after expiry; its
		// late writes must never reach the pane.
		io.WriteString(w, "late output\n")
		close(wrote)
		return nil
	})
	require.NoError(t, err)

	close(release)
	<-wrote

	out := buf.String()
	assert.Contains(t, out, "partial tree")
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, "late output")
}
