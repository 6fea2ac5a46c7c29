package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Picker errors
	ErrCodePickerNotFound ErrorCode = "PICKER_NOT_FOUND"
	ErrCodePickerFailed   ErrorCode = "PICKER_FAILED"
	ErrCodeDecodeFailed   ErrorCode = "DECODE_FAILED"
	ErrCodeSignalTimeout  ErrorCode = "SIGNAL_TIMEOUT"

	// Search errors
	ErrCodeBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	ErrCodeSearchFailed       ErrorCode = "SEARCH_FAILED"

	// Command execution errors
	ErrCodeCommandTimeout  ErrorCode = "COMMAND_TIMEOUT"
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeCommandFailed   ErrorCode = "COMMAND_FAILED"

	// Editor errors
	ErrCodeEditorFailed ErrorCode = "EDITOR_FAILED"

	// Terminal errors
	ErrCodeNoTTY ErrorCode = "NO_TTY"

	// General errors
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
)

// FzdError represents a structured error with context
type FzdError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *FzdError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FzdError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *FzdError) WithDetail(key string, value interface{}) *FzdError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *FzdError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new FzdError
func New(code ErrorCode, message string) *FzdError {
	return &FzdError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a FzdError
func Wrap(err error, code ErrorCode, message string) *FzdError {
	return &FzdError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific FzdError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	fzdErr, ok := err.(*FzdError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return fzdErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	fzdErr, ok := err.(*FzdError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return fzdErr.Code
}
