package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	loggers       = make(map[string]*logrus.Entry)
	loggersMu     sync.Mutex
	levelOverride *logrus.Level
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
//
// Standard output belongs to the process exit contract (the selected path) and
// the terminal belongs to the picker, so loggers only ever write to a file
// under the state directory. FZD_LOG_LEVEL controls verbosity; anything below
// warn is discarded unless a level is set explicitly.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()

	levelStr := "warn"
	if v := os.Getenv("FZD_LOG_LEVEL"); v != "" {
		levelStr = v
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.WarnLevel
	}
	if levelOverride != nil {
		level = *levelOverride
	}
	logger.SetLevel(level)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   true,
	})

	logger.SetOutput(openLogSink())

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// SetLevel overrides the verbosity of every registered and future logger.
// Invalid names are ignored; the configured level stands.
func SetLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return
	}
	loggersMu.Lock()
	defer loggersMu.Unlock()
	levelOverride = &level
	for _, entry := range loggers {
		entry.Logger.SetLevel(level)
	}
}

// SetOutput redirects every registered logger, used by tests to capture logs.
func SetOutput(w io.Writer) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, entry := range loggers {
		entry.Logger.SetOutput(w)
	}
}

// openLogSink opens the per-day log file, falling back to discard when the
// state directory cannot be created.
func openLogSink() io.Writer {
	dir := stateDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard
	}
	name := fmt.Sprintf("fzd-%s.log", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard
	}
	return f
}

func stateDir() string {
	if v := os.Getenv("FZD_LOG_DIR"); v != "" {
		return v
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return filepath.Join(v, "fzd")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "fzd")
	}
	return filepath.Join(home, ".local", "state", "fzd")
}
