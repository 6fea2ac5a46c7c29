package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/fzd/pkg/frame"
	"github.com/mattsolo1/fzd/pkg/token"
)

func framePaletteZero() frame.Palette {
	return frame.Palette{}
}

func mustDecode(t *testing.T, tok string) string {
	t.Helper()
	p, err := token.Decode(tok)
	require.NoError(t, err)
	return p
}
