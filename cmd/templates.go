package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/mattsolo1/fzd/config"
)

// selfPath resolves the running binary so the picker's subprocess hooks
// (preview, reload) call back into the same executable.
func selfPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "fzd"
	}
	return exe
}

// shellQuote single-quotes s for the picker's `sh -c` subprocesses.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// previewTemplate renders the preview command; {1} expands inside the picker
// to the highlighted line's token field.
func previewTemplate(configFlag string) string {
	var b strings.Builder
	b.WriteString(shellQuote(selfPath()))
	b.WriteString(" preview")
	if configFlag != "" {
		b.WriteString(" --config ")
		b.WriteString(shellQuote(configFlag))
	}
	b.WriteString(" {1}")
	return b.String()
}

// globalListTemplate renders the per-keystroke reload command for the
// indexed overlay; {q} expands to the current query.
func globalListTemplate(configFlag string) string {
	var b strings.Builder
	b.WriteString(shellQuote(selfPath()))
	b.WriteString(" global-list")
	if configFlag != "" {
		b.WriteString(" --config ")
		b.WriteString(shellQuote(configFlag))
	}
	b.WriteString(" -- {q}")
	return b.String()
}

func pollInterval(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Picker.PollIntervalMS) * time.Millisecond
}

// previewTimeout converts the configured render deadline.
func previewTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Preview.TimeoutMS) * time.Millisecond
}
