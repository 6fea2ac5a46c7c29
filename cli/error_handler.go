package cli

import (
	"fmt"
	"os"

	"github.com/mattsolo1/fzd/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle writes a user-friendly message for the error to stderr and
// returns the error unchanged so the caller can map it to an exit code.
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodePickerNotFound:
		if fzdErr, ok := err.(*errors.FzdError); ok {
			fmt.Fprintf(os.Stderr, "❌ Picker '%s' not found in PATH\n", fzdErr.Details["binary"])
			fmt.Fprintf(os.Stderr, "Install it or point FZD_PICKER at another binary.\n")
		}
		return err

	case errors.ErrCodeNoTTY:
		fmt.Fprintf(os.Stderr, "❌ Interactive browsing requires a terminal\n")
		fmt.Fprintf(os.Stderr, "Run fzd from an interactive shell.\n")
		return err

	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration file not found\n")
		return err

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'fzd config --validate' to see details.\n")
		return err

	case errors.ErrCodeBackendUnavailable:
		if fzdErr, ok := err.(*errors.FzdError); ok {
			fmt.Fprintf(os.Stderr, "❌ Search backend '%s' is not available\n", fzdErr.Details["backend"])
			fmt.Fprintf(os.Stderr, "Install plocate/locate or set search.backend to rebuilt-index.\n")
		}
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if fzdErr, ok := err.(*errors.FzdError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", fzdErr.ToJSON())
			}
		}
		return err
	}
}

// ExitCode maps an error to the process exit status: configuration problems
// exit 2, everything else 1. Success and cancellation are handled by the
// browse loop itself.
func ExitCode(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound, errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		return 2
	default:
		return 1
	}
}
