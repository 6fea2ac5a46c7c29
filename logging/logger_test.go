package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerSingleton(t *testing.T) {
	t.Setenv("FZD_LOG_DIR", t.TempDir())

	a := NewLogger("picker")
	b := NewLogger("picker")
	if a != b {
		t.Error("expected the same entry for repeated component lookups")
	}

	c := NewLogger("search")
	if a == c {
		t.Error("expected distinct entries for distinct components")
	}
}

func TestLoggerComponentField(t *testing.T) {
	t.Setenv("FZD_LOG_DIR", t.TempDir())

	entry := NewLogger("nav")
	var buf bytes.Buffer
	entry.Logger.SetOutput(&buf)
	entry.Logger.SetLevel(logrus.DebugLevel)

	entry.Debug("transition")
	if !strings.Contains(buf.String(), "component=nav") {
		t.Errorf("expected component field in output, got %q", buf.String())
	}
}
