package editor

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fzderrors "github.com/mattsolo1/fzd/errors"
)

// scriptExecutor substitutes a shell snippet for whatever editor is asked for.
type scriptExecutor struct {
	script string
}

func (s scriptExecutor) Command(name string, args ...string) *exec.Cmd {
	return exec.Command("sh", "-c", s.script, "sh")
}

func (s scriptExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "sh", "-c", s.script, "sh")
	cmd.Env = append(os.Environ(), "TARGET="+lastArg(args))
	return cmd
}

func (s scriptExecutor) LookPath(name string) (string, error) {
	return "/bin/sh", nil
}

func lastArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[len(args)-1]
}

type missingExecutor struct{ scriptExecutor }

func (missingExecutor) LookPath(name string) (string, error) {
	return "", exec.ErrNotFound
}

func TestSpawnRunsConfiguredEditor(t *testing.T) {
	t.Setenv("NVIM", "")
	marker := filepath.Join(t.TempDir(), "opened")

	o := NewOpener(scriptExecutor{script: `printf '%s' "$TARGET" > ` + marker}, "myedit")
	require.NoError(t, o.Open(context.Background(), "/home/u/notes.txt"))

	got, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "/home/u/notes.txt", string(got))
}

func TestSpawnEditorNotFound(t *testing.T) {
	t.Setenv("NVIM", "")

	o := NewOpener(missingExecutor{}, "ghost-editor")
	err := o.Open(context.Background(), "/tmp/x")

	require.Error(t, err)
	fe, ok := err.(*fzderrors.FzdError)
	require.True(t, ok)
	assert.Equal(t, fzderrors.ErrCodeEditorFailed, fe.Code)
}

func TestSpawnEditorExitFailure(t *testing.T) {
	t.Setenv("NVIM", "")

	o := NewOpener(scriptExecutor{script: "exit 3"}, "myedit")
	err := o.Open(context.Background(), "/tmp/x")

	require.Error(t, err)
	fe, ok := err.(*fzderrors.FzdError)
	require.True(t, ok)
	assert.Equal(t, fzderrors.ErrCodeEditorFailed, fe.Code)
}

func TestSpawnFallsBackToEDITOR(t *testing.T) {
	t.Setenv("NVIM", "")
	t.Setenv("EDITOR", "from-env")
	marker := filepath.Join(t.TempDir(), "opened")

	o := NewOpener(scriptExecutor{script: "touch " + marker}, "")
	require.NoError(t, o.Open(context.Background(), "/tmp/x"))

	_, err := os.Stat(marker)
	assert.NoError(t, err)
}

func TestHostFallbackWhenSocketDead(t *testing.T) {
	// A stale NVIM address must degrade to spawning, not fail the open.
	t.Setenv("NVIM", filepath.Join(t.TempDir(), "no-such-socket"))
	marker := filepath.Join(t.TempDir(), "opened")

	o := NewOpener(scriptExecutor{script: "touch " + marker}, "myedit")
	require.NoError(t, o.Open(context.Background(), "/tmp/x"))

	_, err := os.Stat(marker)
	assert.NoError(t, err)
}
