package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *FzdError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *FzdError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// PickerNotFound creates an error for a missing picker binary
func PickerNotFound(binary string) *FzdError {
	return New(ErrCodePickerNotFound,
		fmt.Sprintf("picker binary '%s' not found in PATH", binary)).
		WithDetail("binary", binary)
}

// DecodeFailed creates an error for a malformed path token
func DecodeFailed(token string, err error) *FzdError {
	return Wrap(err, ErrCodeDecodeFailed, "malformed path token").
		WithDetail("token", token)
}

// BackendUnavailable creates an error for a missing search backend
func BackendUnavailable(backend string) *FzdError {
	return New(ErrCodeBackendUnavailable,
		fmt.Sprintf("search backend '%s' is not available", backend)).
		WithDetail("backend", backend)
}

// NoTTY creates an error for a session without a controlling terminal
func NoTTY() *FzdError {
	return New(ErrCodeNoTTY, "interactive browsing requires a terminal")
}

// EditorFailed creates an error for a failed editor invocation
func EditorFailed(editor string, err error) *FzdError {
	return Wrap(err, ErrCodeEditorFailed, fmt.Sprintf("editor '%s' failed", editor)).
		WithDetail("editor", editor)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *FzdError {
	fzdErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		fzdErr = fzdErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return fzdErr
}
