// Package picker drives the external fuzzy-selection process. The picker is a
// black box with one quirk this package exists to absorb: its primary result
// channel (stdout) cannot distinguish "user pressed a special key" from "user
// accepted the typed query", so every action key is bound to write a
// verb-plus-token record to a per-frame side-channel file before aborting.
// The driver reads that file once, with a bounded poll, and maps its absence
// to cancellation.
package picker

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/fzd/command"
	"github.com/mattsolo1/fzd/errors"
	"github.com/mattsolo1/fzd/logging"
)

// signalEnv is the environment variable through which the side-channel path
// reaches the key-binding commands running inside the picker.
const signalEnv = "FZD_SIGNAL"

// Options configures the driver for the lifetime of a session.
type Options struct {
	// Binary is the picker executable, fzf-compatible in its flag surface.
	Binary string
	// PollInterval and PollBudget bound the side-channel wait after the
	// picker exits. The write happens in a child of the picker, so it is
	// not guaranteed to be visible the instant the picker's own process
	// terminates.
	PollInterval time.Duration
	PollBudget   int
}

func (o Options) withDefaults() Options {
	if o.Binary == "" {
		o.Binary = "fzf"
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 5 * time.Millisecond
	}
	if o.PollBudget <= 0 {
		o.PollBudget = 20
	}
	return o
}

// Frame describes one picker invocation.
type Frame struct {
	// Input is the newline-terminated token\tlabel stream for the picker's
	// stdin. Ordering must match the indices the caller computed.
	Input string
	// Preselect is the line index to place the caret on (0 = first line).
	Preselect int
	// Prompt is the query-box prompt.
	Prompt string
	// Bindings maps picker keys to side-channel verbs for this frame.
	Bindings []Binding
	// Preview, when non-empty, is the preview command template ({1} expands
	// to the highlighted line's token).
	Preview string
	// Reload, when non-empty, re-queries this command on every keystroke
	// instead of filtering Input; used by the indexed search overlay.
	Reload string
}

// Binding ties a picker key to a side-channel verb.
type Binding struct {
	Key  string
	Verb string
}

// MainBindings returns the per-directory browser bindings: Enter confirms,
// Left ascends, Right descends, and the trigger key opens global search.
// Escape stays on the picker's built-in abort, which is how cancellation is
// distinguished: it leaves the side channel empty.
func MainBindings(searchKey string) []Binding {
	if searchKey == "" {
		searchKey = "ctrl-g"
	}
	return []Binding{
		{Key: "enter", Verb: verbEnter},
		{Key: "left", Verb: verbUp},
		{Key: "right", Verb: verbDown},
		{Key: searchKey, Verb: verbSearch},
	}
}

// OverlayBindings returns the global-search overlay bindings: Enter confirms
// a result terminally, Right enters into it and returns to the main loop.
func OverlayBindings() []Binding {
	return []Binding{
		{Key: "enter", Verb: verbEnter},
		{Key: "right", Verb: verbInto},
	}
}

// Driver invokes the picker once per frame and resolves its outcome.
type Driver struct {
	executor command.Executor
	opts     Options
	log      *logrus.Entry
}

// NewDriver verifies the picker binary exists and returns a session driver.
// A missing binary is fatal for the whole session, reported before the first
// frame ever renders.
func NewDriver(executor command.Executor, opts Options) (*Driver, error) {
	opts = opts.withDefaults()
	if _, err := executor.LookPath(opts.Binary); err != nil {
		return nil, errors.PickerNotFound(opts.Binary)
	}
	return &Driver{
		executor: executor,
		opts:     opts,
		log:      logging.NewLogger("picker"),
	}, nil
}

// Run renders one frame and blocks until the user resolves it. The returned
// error is reserved for environment failures (the picker could not be
// spawned); every user-level outcome, including cancellation and lost
// signals, arrives as a Result.
func (d *Driver) Run(ctx context.Context, f Frame) (Result, error) {
	sig, err := os.CreateTemp("", "fzd-signal-*")
	if err != nil {
		return Result{}, errors.Wrap(err, errors.ErrCodeInternal, "cannot create side-channel file")
	}
	sigPath := sig.Name()
	sig.Close()
	defer os.Remove(sigPath)

	cmd := d.executor.CommandContext(ctx, d.opts.Binary, d.args(f)...)
	cmd.Stdin = strings.NewReader(f.Input)
	cmd.Stdout = io.Discard // the primary channel is ambiguous; ignored by design of the side channel
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), signalEnv+"="+sigPath)

	if err := cmd.Run(); err != nil {
		// Abort (130) and no-match (1) are ordinary frame outcomes; the
		// side channel decides what actually happened.
		if _, ok := err.(interface{ ExitCode() int }); !ok {
			return Result{}, errors.Wrap(err, errors.ErrCodePickerFailed, "picker did not start")
		}
	}

	res := d.awaitSignal(sigPath)
	d.log.WithFields(logrus.Fields{"action": res.Action.String(), "token": res.Token}).
		Debug("frame resolved")
	return res, nil
}

// args assembles the picker's flag surface for one frame: tab delimiter,
// label-only display, no case folding, ANSI labels, plus the frame's
// bindings, preselect position, preview, and reload behavior.
func (d *Driver) args(f Frame) []string {
	args := []string{
		"--delimiter=\t",
		"--with-nth=2",
		"--ansi",
		"+i",
		"--layout=reverse",
	}
	if f.Prompt != "" {
		args = append(args, "--prompt="+f.Prompt)
	}
	for _, b := range f.Bindings {
		args = append(args, "--bind", bindExpr(b))
	}
	if f.Preselect > 0 {
		// pos() counts lines from 1.
		args = append(args, "--sync", "--bind", fmt.Sprintf("start:pos(%d)", f.Preselect+1))
	}
	if f.Preview != "" {
		args = append(args, "--preview="+f.Preview, "--preview-window=right,50%")
	}
	if f.Reload != "" {
		args = append(args,
			"--disabled",
			"--bind", "change:reload("+f.Reload+")",
		)
	}
	return args
}

// bindExpr renders one key binding. The bound command writes the verb and the
// highlighted token to the side channel, then aborts the picker; the write
// completes before abort because picker actions run sequentially, but the
// visibility of the file content is still re-checked by the bounded poll.
func bindExpr(b Binding) string {
	return fmt.Sprintf(`%s:execute-silent(printf '%%s\t%%s' %s {1} > "$%s")+abort`,
		b.Key, b.Verb, signalEnv)
}

// awaitSignal polls the side-channel file for the action record. No record
// within the budget means the frame was cancelled: either Escape aborted the
// picker without any binding firing, or the write was lost, and both resolve
// the same way rather than hanging the session.
func (d *Driver) awaitSignal(path string) Result {
	for i := 0; i < d.opts.PollBudget; i++ {
		data, err := os.ReadFile(path)
		if err == nil && len(data) > 0 {
			if res, ok := decodeSignal(string(data)); ok {
				return res
			}
			d.log.WithField("raw", string(data)).Debug("garbled signal record")
			return Result{Action: ActionCancel}
		}
		time.Sleep(d.opts.PollInterval)
	}
	return Result{Action: ActionCancel}
}

// decodeSignal parses a "verb\ttoken" record. The token part may be empty
// (nothing highlighted); an unknown verb is garbage and resolves to Cancel.
func decodeSignal(raw string) (Result, bool) {
	raw = strings.TrimRight(raw, "\n")
	verb, tok, _ := strings.Cut(raw, "\t")
	action, ok := verbActions[verb]
	if !ok {
		return Result{}, false
	}
	return Result{Action: action, Token: tok}, true
}
