// Package editor opens a file in the user's editor. When the browser runs
// inside a Neovim terminal the file is opened in the host instance over its
// RPC socket so the user never nests editors.
package editor

import (
	"context"
	"fmt"
	"os"

	"github.com/neovim/go-client/nvim"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/fzd/command"
	"github.com/mattsolo1/fzd/errors"
	"github.com/mattsolo1/fzd/logging"
)

var log *logrus.Entry

func init() {
	log = logging.NewLogger("editor")
}

// Opener launches an editor on a file.
type Opener struct {
	executor command.Executor
	// Editor is the configured editor command; falls back to $EDITOR then vi.
	Editor string
}

// NewOpener returns an Opener using the given executor.
func NewOpener(executor command.Executor, editor string) *Opener {
	return &Opener{executor: executor, Editor: editor}
}

// Open edits path. Inside a Neovim terminal ($NVIM set) the host instance
// opens it; otherwise a subprocess editor is attached to the terminal.
func (o *Opener) Open(ctx context.Context, path string) error {
	if addr := os.Getenv("NVIM"); addr != "" {
		err := o.openInHost(addr, path)
		if err == nil {
			return nil
		}
		log.WithError(err).Warn("Neovim host unreachable, spawning editor")
	}
	return o.spawn(ctx, path)
}

func (o *Opener) openInHost(addr, path string) error {
	v, err := nvim.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial host instance: %w", err)
	}
	defer v.Close()

	var escaped string
	if err := v.Call("fnameescape", &escaped, path); err != nil {
		return fmt.Errorf("failed to escape path: %w", err)
	}
	return v.Command("edit " + escaped)
}

func (o *Opener) spawn(ctx context.Context, path string) error {
	name := o.Editor
	if name == "" {
		name = os.Getenv("EDITOR")
	}
	if name == "" {
		name = "vi"
	}

	if _, err := o.executor.LookPath(name); err != nil {
		return errors.EditorFailed(name, fmt.Errorf("not found in PATH: %w", err))
	}

	cmd := o.executor.CommandContext(ctx, name, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	log.WithFields(logrus.Fields{"editor": name, "path": path}).Debug("Spawning editor")
	if err := cmd.Run(); err != nil {
		return errors.EditorFailed(name, err)
	}
	return nil
}
