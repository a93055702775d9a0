// Package errors provides typed errors for sessionizer.
//
// Two failure classes are fatal to a run: configuration problems (missing,
// unreadable or malformed config) and failures of the external programs the
// tool drives (fzf, tmux). Both types implement the standard error interface
// and support errors.Is() and errors.As() from the standard library and
// cockroachdb/errors. Problems found while scanning directories are not
// errors; they are logged and the scan continues.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Field   string // Which config field has the issue
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
	}
	return "config error: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with an underlying cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// ProcessError represents a failure to launch or run an external program.
type ProcessError struct {
	Program   string // e.g., "fzf", "tmux"
	Operation string // e.g., "select", "new-session", "switch-client"
	ExitCode  int    // Exit status if the process ran, 0 otherwise
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *ProcessError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s %s failed (exit %d): %s", e.Program, e.Operation, e.ExitCode, e.Message)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Program, e.Operation, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ProcessError) Unwrap() error {
	return e.Cause
}

// NewProcessError creates a new ProcessError.
func NewProcessError(program, operation, message string) *ProcessError {
	return &ProcessError{Program: program, Operation: operation, Message: message}
}

// NewProcessErrorWithCause creates a new ProcessError with an underlying cause.
// The exit code is extracted from the cause when it carries one.
func NewProcessErrorWithCause(program, operation, message string, cause error) *ProcessError {
	return &ProcessError{
		Program:   program,
		Operation: operation,
		ExitCode:  exitCode(cause),
		Message:   message,
		Cause:     cause,
	}
}

// exitCoder is satisfied by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

func exitCode(err error) int {
	var ec exitCoder
	if errors.As(err, &ec) {
		if code := ec.ExitCode(); code > 0 {
			return code
		}
	}
	return 0
}

// IsConfigError checks if an error or any error in its chain is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsProcessError checks if an error or any error in its chain is a ProcessError.
func IsProcessError(err error) bool {
	var procErr *ProcessError
	return errors.As(err, &procErr)
}

// Re-export commonly used functions from cockroachdb/errors for convenience.
// This allows consumers to use errors.Wrap() from this package instead of importing two packages.
var (
	// New creates a new error with the given message.
	New = errors.New

	// Newf creates a new error with formatted message.
	Newf = errors.Newf

	// Wrap wraps an error with additional context.
	Wrap = errors.Wrap

	// Wrapf wraps an error with formatted additional context.
	Wrapf = errors.Wrapf

	// Is reports whether any error in err's chain matches target.
	Is = errors.Is

	// As finds the first error in err's chain that matches target.
	As = errors.As

	// Cause returns the root cause of an error.
	Cause = errors.Cause
)
