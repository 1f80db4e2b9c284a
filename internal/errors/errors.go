package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the run timed out.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the run was canceled (e.g., SIGINT).
)

// Sentinel errors for the three misuse classes of a progress node.
var (
	// ErrDisposed is reported by any operation on a disposed node.
	ErrDisposed = errors.New("progress node disposed")
	// ErrInvalidState is reported when a node is used against its mode
	// (report after fork, fork after report).
	ErrInvalidState = errors.New("invalid progress node state")
	// ErrInvalidArgument is reported for out-of-range arguments.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// DisposedError is returned when an operation targets a disposed node.
type DisposedError struct {
	// Operation is the rejected operation (e.g., "report", "subscribe").
	Operation string
}

// Error returns a formatted message naming the rejected operation.
func (e DisposedError) Error() string {
	return fmt.Sprintf("cannot %s: %v", e.Operation, ErrDisposed)
}

// Is reports whether target is ErrDisposed.
func (e DisposedError) Is(target error) bool { return target == ErrDisposed }

// StateError is returned when an operation conflicts with the mode a node
// has already committed to.
type StateError struct {
	// Operation is the rejected operation.
	Operation string
	// Mode is the node mode that caused the rejection.
	Mode string
}

// Error returns a formatted message describing the conflict.
func (e StateError) Error() string {
	return fmt.Sprintf("cannot %s a node in %s mode: %v", e.Operation, e.Mode, ErrInvalidState)
}

// Is reports whether target is ErrInvalidState.
func (e StateError) Is(target error) bool { return target == ErrInvalidState }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// Is reports whether target is ErrInvalidArgument.
func (e ValidationError) Is(target error) bool { return target == ErrInvalidArgument }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps a run error to the process exit status.
func ExitCode(err error) int {
	var configErr ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.Is(err, ErrInvalidArgument):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
