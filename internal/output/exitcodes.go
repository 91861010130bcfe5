// Package output provides structured output and error handling for the moscripts CLI.
package output

import (
	"errors"
	"fmt"
)

// Exit codes:
// 0 = Success, or a prompt the user cancelled
// 1 = User error (bad args, missing binary, invalid timezone, declined prompt)
// 2 = System error (I/O failure, subprocess could not start)
//
// A launched child process (marimo, mpv) exits with its own code, which is
// propagated unchanged.
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
)

// ErrCancelled reports that the user backed out of an interactive prompt.
// It is a graceful outcome and maps to ExitSuccess.
var ErrCancelled = errors.New("cancelled")

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, missing paths or binaries, declined confirmation.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewUserErrorWithCause creates a user error wrapping an underlying cause.
func NewUserErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
		Cause:   cause,
	}
}

// NewSystemError creates an error for system failures (exit code 2).
// Use for: I/O errors, subprocesses that could not be started.
func NewSystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// ChildExitError reports that a launched child process exited non-zero.
// The CLI exits with the same code.
type ChildExitError struct {
	Program string
	Code    int
}

// Error implements the error interface.
func (e *ChildExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Program, e.Code)
}

// NewChildExitError creates an error carrying a child's exit status.
func NewChildExitError(program string, code int) *ChildExitError {
	return &ChildExitError{Program: program, Code: code}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and for cancellation, the child's code for a
// ChildExitError, and ExitUserError for untyped errors.
func GetExitCode(err error) int {
	if err == nil || errors.Is(err, ErrCancelled) {
		return ExitSuccess
	}

	var childErr *ChildExitError
	if errors.As(err, &childErr) {
		return childErr.Code
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Default to user error for untyped errors
	return ExitUserError
}
