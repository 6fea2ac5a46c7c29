package command

import (
	"context"
	"testing"
	"time"
)

func TestBuildRejectsEmptyName(t *testing.T) {
	sb := NewSafeBuilder()
	if _, err := sb.Build(context.Background(), ""); err == nil {
		t.Error("expected error for empty command name")
	}
}

func TestBuildAppliesDefaultTimeout(t *testing.T) {
	sb := NewSafeBuilder()
	cmd, err := sb.Build(context.Background(), "true")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer cmd.Release()

	deadline, ok := cmd.ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline on the command context")
	}
	if remaining := time.Until(deadline); remaining > DefaultTimeout {
		t.Errorf("deadline too far in the future: %v", remaining)
	}
}

func TestWithTimeoutCapsAtMax(t *testing.T) {
	sb := NewSafeBuilder()
	cmd, err := sb.Build(context.Background(), "true")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	cmd = cmd.WithTimeout(time.Hour)
	defer cmd.Release()

	if cmd.timeout != MaxTimeout {
		t.Errorf("timeout = %v, want cap %v", cmd.timeout, MaxTimeout)
	}
}

func TestExecProducesCmd(t *testing.T) {
	sb := NewSafeBuilder()
	cmd, err := sb.Build(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer cmd.Release()

	execCmd := cmd.Exec()
	if len(execCmd.Args) != 2 || execCmd.Args[1] != "hello" {
		t.Errorf("unexpected args: %v", execCmd.Args)
	}
}
