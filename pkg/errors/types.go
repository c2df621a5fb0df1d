package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
// These codes allow scripts to distinguish between different failure modes.
const (
	// ExitSuccess indicates all selected packages succeeded or were skipped
	// by the user, or there was nothing to do.
	ExitSuccess = 0

	// ExitPartialFailure indicates some upgrades failed while others
	// succeeded and --continue-on-error accepted the failures.
	ExitPartialFailure = 1

	// ExitFailure indicates the run failed: the outdated listing could not
	// be obtained, every attempted upgrade failed, or the run stopped on the
	// first failure without --continue-on-error.
	ExitFailure = 2

	// ExitConfigError indicates a configuration or validation error.
	// The command could not proceed: conflicting flags, invalid values, an
	// unresolvable pip executable, or a malformed --import file.
	ExitConfigError = 3
)

// ExitError represents a command termination with a specific exit code.
//
// Use this error when a command needs to exit with a non-zero status
// while providing context about what went wrong.
//
// Fields:
//   - Code: Exit code (use constants ExitSuccess, ExitPartialFailure, ExitFailure, ExitConfigError)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
type ExitError struct {
	// Code is the exit code for the command.
	// Standard codes: 0=success, 1=partial failure, 2=failure, 3=config error.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
//
// Returns:
//   - string: The error message
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code (use ExitSuccess, ExitPartialFailure, ExitFailure, ExitConfigError)
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with the given code and formatted message.
//
// Parameters:
//   - code: Exit code
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - *ExitError: New exit error with formatted message
func NewExitErrorf(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess.
// If err is an ExitError, returns its code.
// Otherwise returns ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitFailure
}

// IsExitError checks if err is an ExitError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ExitError: The ExitError if err is one, nil otherwise
//   - bool: true if err is an ExitError
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

// PartialSuccessError indicates that some upgrades succeeded while others failed.
//
// This is used when processing multiple packages with --continue-on-error and
// some upgrades succeed while others fail. The command should exit with
// ExitPartialFailure.
//
// Fields:
//   - Succeeded: Count of successful upgrades
//   - Failed: Count of failed upgrades (includes timeouts)
//   - Errors: Slice of errors from failed upgrades
type PartialSuccessError struct {
	// Succeeded is the number of upgrades that completed successfully.
	Succeeded int

	// Failed is the number of upgrades that failed or timed out.
	Failed int

	// Errors contains all errors from failed upgrades.
	Errors []error
}

// Error implements the error interface.
//
// Returns a summary message in the format "X succeeded, Y failed".
//
// Returns:
//   - string: Summary of succeeded and failed upgrade counts
func (e *PartialSuccessError) Error() string {
	return fmt.Sprintf("%d succeeded, %d failed", e.Succeeded, e.Failed)
}

// NewPartialSuccessError creates a PartialSuccessError with the given counts and errors.
//
// Parameters:
//   - succeeded: Number of successful upgrades
//   - failed: Number of failed upgrades
//   - errs: Slice of errors from failed upgrades
//
// Returns:
//   - *PartialSuccessError: New partial success error
func NewPartialSuccessError(succeeded, failed int, errs []error) *PartialSuccessError {
	return &PartialSuccessError{
		Succeeded: succeeded,
		Failed:    failed,
		Errors:    errs,
	}
}

// IsPartialSuccess checks if err is a PartialSuccessError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *PartialSuccessError: The PartialSuccessError if err is one, nil otherwise
//   - bool: true if err is a PartialSuccessError
func IsPartialSuccess(err error) (*PartialSuccessError, bool) {
	var pse *PartialSuccessError
	if errors.As(err, &pse) {
		return pse, true
	}
	return nil, false
}
