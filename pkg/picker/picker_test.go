package picker

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/fzd/errors"
)

// scriptExecutor substitutes a shell script for the picker binary, so driver
// behavior can be exercised without fzf installed.
type scriptExecutor struct {
	script  string
	lookErr error
}

func (e *scriptExecutor) Command(name string, args ...string) *exec.Cmd {
	return exec.Command("sh", "-c", e.script)
}

func (e *scriptExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, "sh", "-c", e.script)
}

func (e *scriptExecutor) LookPath(name string) (string, error) {
	if e.lookErr != nil {
		return "", e.lookErr
	}
	return name, nil
}

func TestDecodeSignal(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   Result
		wantOK bool
	}{
		{"enter with token", "enter\t/home/u/proj", Result{ActionEnter, "/home/u/proj"}, true},
		{"up", "up\t/home/u", Result{ActionUp, "/home/u"}, true},
		{"down trailing newline", "down\t/a/b\n", Result{ActionDown, "/a/b"}, true},
		{"search", "search\t/x", Result{ActionSearch, "/x"}, true},
		{"into", "into\t/y", Result{ActionInto, "/y"}, true},
		{"empty token", "enter\t", Result{ActionEnter, ""}, true},
		{"no tab at all", "enter", Result{ActionEnter, ""}, true},
		{"unknown verb", "explode\t/x", Result{}, false},
		{"empty record", "", Result{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeSignal(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNewDriverMissingBinary(t *testing.T) {
	_, err := NewDriver(&scriptExecutor{lookErr: exec.ErrNotFound}, Options{Binary: "definitely-absent"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodePickerNotFound))
}

func TestRunResolvesSignal(t *testing.T) {
	exe := &scriptExecutor{script: `printf 'enter\t%s' '/home/u/proj' > "$FZD_SIGNAL"; exit 130`}
	d, err := NewDriver(exe, Options{PollInterval: time.Millisecond, PollBudget: 5})
	require.NoError(t, err)

	res, err := d.Run(context.Background(), Frame{Input: "tok\tlabel\n"})
	require.NoError(t, err)
	assert.Equal(t, ActionEnter, res.Action)
	assert.Equal(t, "/home/u/proj", res.Token)
}

func TestRunNoSignalIsCancel(t *testing.T) {
	// Escape: picker aborts without any binding firing, side channel stays empty.
	exe := &scriptExecutor{script: `exit 130`}
	d, err := NewDriver(exe, Options{PollInterval: time.Millisecond, PollBudget: 3})
	require.NoError(t, err)

	res, err := d.Run(context.Background(), Frame{})
	require.NoError(t, err)
	assert.Equal(t, ActionCancel, res.Action)
	assert.Empty(t, res.Token)
}

func TestRunGarbledSignalIsCancel(t *testing.T) {
	exe := &scriptExecutor{script: `printf 'bogus\t/x' > "$FZD_SIGNAL"; exit 130`}
	d, err := NewDriver(exe, Options{PollInterval: time.Millisecond, PollBudget: 3})
	require.NoError(t, err)

	res, err := d.Run(context.Background(), Frame{})
	require.NoError(t, err)
	assert.Equal(t, ActionCancel, res.Action)
}

func TestRunRemovesSideChannel(t *testing.T) {
	exe := &scriptExecutor{script: `printf 'up\t/a' > "$FZD_SIGNAL"; echo "$FZD_SIGNAL" > ` + "$OUT" + `; exit 130`}
	out := filepath.Join(t.TempDir(), "sig-path")
	t.Setenv("OUT", out)

	d, err := NewDriver(exe, Options{PollInterval: time.Millisecond, PollBudget: 5})
	require.NoError(t, err)

	_, err = d.Run(context.Background(), Frame{})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	sigPath := string(raw[:len(raw)-1])
	_, statErr := os.Stat(sigPath)
	assert.True(t, os.IsNotExist(statErr), "side-channel file should be deleted after the frame")
}

func TestArgsPreselect(t *testing.T) {
	d := &Driver{opts: Options{}.withDefaults()}

	args := d.args(Frame{Preselect: 2})
	assert.Contains(t, args, "start:pos(3)")
	assert.Contains(t, args, "--sync")

	args = d.args(Frame{Preselect: 0})
	assert.NotContains(t, args, "--sync")
}

func TestArgsReloadDisablesInternalFiltering(t *testing.T) {
	d := &Driver{opts: Options{}.withDefaults()}

	args := d.args(Frame{Reload: "fzd global-list -- {q}"})
	assert.Contains(t, args, "--disabled")
	assert.Contains(t, args, "change:reload(fzd global-list -- {q})")
}

func TestMainBindingsCoverAllVerbs(t *testing.T) {
	got := MainBindings("")
	verbs := make(map[string]string, len(got))
	for _, b := range got {
		verbs[b.Verb] = b.Key
	}
	assert.Equal(t, "enter", verbs[verbEnter])
	assert.Equal(t, "left", verbs[verbUp])
	assert.Equal(t, "right", verbs[verbDown])
	assert.Equal(t, "ctrl-g", verbs[verbSearch])

	custom := MainBindings("ctrl-s")
	assert.Equal(t, Binding{Key: "ctrl-s", Verb: verbSearch}, custom[3])
}

func TestBindExprWritesVerbAndToken(t *testing.T) {
	expr := bindExpr(Binding{Key: "left", Verb: verbUp})
	assert.Contains(t, expr, "left:execute-silent(")
	assert.Contains(t, expr, "up {1}")
	assert.Contains(t, expr, `"$FZD_SIGNAL"`)
	assert.Contains(t, expr, ")+abort")
}
