// Package cmd wires the fzd subcommands. The browse command owns the process
// exit contract: the chosen directory is the only thing ever written to
// stdout, and cancellation is reported purely through the exit status.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/fzd/cli"
	"github.com/mattsolo1/fzd/command"
	"github.com/mattsolo1/fzd/config"
	"github.com/mattsolo1/fzd/errors"
	"github.com/mattsolo1/fzd/logging"
	"github.com/mattsolo1/fzd/pkg/editor"
	"github.com/mattsolo1/fzd/pkg/frame"
	"github.com/mattsolo1/fzd/pkg/listing"
	"github.com/mattsolo1/fzd/pkg/nav"
	"github.com/mattsolo1/fzd/pkg/picker"
	"github.com/mattsolo1/fzd/pkg/search"
	"github.com/mattsolo1/fzd/pkg/token"
)

// errCancelled marks a session the user abandoned. It never reaches the
// error handler: main maps it to exit status 130 with nothing on stdout.
var errCancelled = errors.New(errors.ErrCodeInternal, "session cancelled")

// IsCancelled reports whether err is the user-cancellation sentinel.
func IsCancelled(err error) bool {
	return err == errCancelled
}

// NewBrowseCmd returns the interactive directory browser command.
func NewBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [dir]",
		Short: "Browse directories interactively and print the chosen one",
		Long: `Opens the fuzzy picker on the starting directory (default: the current
working directory). Enter confirms the highlighted directory and prints it
to stdout; Left ascends, Right descends, Ctrl-G opens global search, and
Escape cancels with exit status 130.`,
		Args: cobra.MaximumNArgs(1),
		RunE: RunBrowse,
	}
	return cmd
}

// RunBrowse is the browse entrypoint, shared with the root command so a bare
// `fzd` invocation browses too.
func RunBrowse(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	cfg, err := loadConfig(opts.ConfigFile)
	if err != nil {
		return err
	}

	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return errors.NoTTY()
	}

	start := "."
	if len(args) == 1 {
		start = args[0]
	}

	session, err := newSession(cfg, opts.ConfigFile, start)
	if err != nil {
		return err
	}

	chosen, err := session.run(cmd.Context())
	if err != nil {
		return err
	}

	// The one and only stdout write of the whole process.
	fmt.Fprintln(cmd.OutOrStdout(), chosen)
	return nil
}

// loadConfig resolves the config path (flag, then FZD_CONFIG / XDG default)
// and loads it, applying the configured log level.
func loadConfig(flagPath string) (*config.Config, error) {
	path := flagPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.LogLevel != "" {
		logging.SetLevel(cfg.LogLevel)
	}
	return cfg, nil
}

// session holds the collaborators of one interactive browse.
type session struct {
	cfg        *config.Config
	configFlag string
	state      *nav.State
	driver     *picker.Driver
	coord      *search.Coordinator
	opener     *editor.Opener
	pal        frame.Palette
	preview    string
	log        *logrus.Entry
}

func newSession(cfg *config.Config, configFlag, start string) (*session, error) {
	executor := &command.RealExecutor{}

	driver, err := picker.NewDriver(executor, picker.Options{
		Binary:       cfg.Picker.Binary,
		PollInterval: pollInterval(cfg),
		PollBudget:   cfg.Picker.PollBudget,
	})
	if err != nil {
		return nil, err
	}

	state, err := nav.NewState(start)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid starting directory").
			WithDetail("start", start)
	}

	filter, err := search.NewFilter(cfg.Search.Roots, cfg.Search.Exclude,
		cfg.Search.MinQueryLen, cfg.Search.MaxResults)
	if err != nil {
		return nil, errors.ConfigInvalid(fmt.Sprintf("bad exclude pattern: %v", err))
	}

	return &session{
		cfg:        cfg,
		configFlag: configFlag,
		state:      state,
		driver:     driver,
		coord:      search.NewCoordinator(cfg.Search.Backend, filter, executor),
		opener:     editor.NewOpener(executor, cfg.Editor),
		pal:        frame.NewPalette(cfg.Colors.Dir, cfg.Colors.File),
		preview:    previewTemplate(configFlag),
		log:        logging.NewLogger("browse"),
	}, nil
}

// run drives picker frames until the user confirms a directory or cancels.
func (s *session) run(ctx context.Context) (string, error) {
	for {
		dir := s.state.Current()
		l := listing.List(dir)
		lines, preselect := frame.Build(dir, l, s.state.Remembered(dir), s.pal)

		res, err := s.driver.Run(ctx, picker.Frame{
			Input:     frame.Render(lines),
			Preselect: preselect,
			Prompt:    dir + "> ",
			Bindings:  picker.MainBindings(""),
			Preview:   s.preview,
		})
		if err != nil {
			return "", err
		}

		switch res.Action {
		case picker.ActionCancel:
			return "", errCancelled

		case picker.ActionUp:
			s.state.Up()

		case picker.ActionDown:
			target, ok := s.decode(res.Token)
			if !ok {
				continue
			}
			s.state.Down(target)

		case picker.ActionEnter:
			target, ok := s.decode(res.Token)
			if !ok {
				continue
			}
			if info, serr := os.Stat(target); serr == nil && !info.IsDir() {
				s.openFile(ctx, target)
				continue
			}
			return s.state.ConfirmTarget(target), nil

		case picker.ActionSearch:
			chosen, done, err := s.overlay(ctx)
			if err != nil {
				return "", err
			}
			if done {
				return chosen, nil
			}
		}
	}
}

// overlay runs one global-search frame. It returns (path, true) when the
// user confirmed a result terminally, and (_, false) when the session should
// fall back to per-directory browsing, possibly at a new location.
func (s *session) overlay(ctx context.Context) (string, bool, error) {
	if s.coord.Disabled() {
		s.log.Debug("global search disabled, staying in browse loop")
		return "", false, nil
	}

	f := picker.Frame{
		Prompt:   "search> ",
		Bindings: picker.OverlayBindings(),
		Preview:  s.preview,
	}
	if s.coord.Indexed() {
		f.Reload = globalListTemplate(s.configFlag)
	} else {
		f.Input = frame.Render(search.Lines(s.coord.Index(ctx), s.pal))
	}

	res, err := s.driver.Run(ctx, f)
	if err != nil {
		return "", false, err
	}

	switch res.Action {
	case picker.ActionEnter, picker.ActionInto:
		target, ok := s.decode(res.Token)
		if !ok {
			return "", false, nil
		}
		if info, serr := os.Stat(target); serr == nil && !info.IsDir() {
			// Files defer to the editor; the loop resumes at their directory.
			s.openFile(ctx, target)
			return "", false, nil
		}
		if res.Action == picker.ActionEnter {
			return target, true, nil
		}
		s.state.JumpTo(target)
		return "", false, nil

	default:
		// Escape returns to the per-directory frame, not out of the session.
		return "", false, nil
	}
}

// decode resolves a side-channel token; malformed tokens keep the session
// alive on the current frame. An empty token is a normal outcome (nothing
// highlighted in an empty directory) and re-renders silently.
func (s *session) decode(tok string) (string, bool) {
	target, err := token.Decode(tok)
	if err != nil {
		if err != token.ErrEmptyToken {
			s.log.WithError(err).WithField("token", tok).Warn("dropping malformed selection token")
		}
		return "", false
	}
	return target, true
}

// openFile hands a file to the editor; failures are logged and the loop
// continues at the file's directory.
func (s *session) openFile(ctx context.Context, target string) {
	if err := s.opener.Open(ctx, target); err != nil {
		s.log.WithError(err).Warn("editor failed")
	}
	s.state.VisitFile(target)
}
