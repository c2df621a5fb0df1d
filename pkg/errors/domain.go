package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ListingError indicates the outdated-package listing could not be obtained.
//
// This is fatal for the whole run: with no package list there is nothing to
// act on. Callers should map it to ExitFailure.
//
// Fields:
//   - Op: The pip operation that failed ("list --outdated", "list", "check")
//   - Output: Trimmed stderr (or stdout) from the pip invocation, may be empty
//   - Err: Underlying execution or parse error
type ListingError struct {
	// Op is the pip operation that failed.
	Op string

	// Output is the trimmed diagnostic output from pip, if any.
	Output string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
//
// Includes pip's own diagnostic output when available, since pip's message
// is usually more actionable than the exec error.
//
// Returns:
//   - string: Formatted error message
func (e *ListingError) Error() string {
	msg := fmt.Sprintf("pip %s failed", e.Op)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ListingError) Unwrap() error {
	return e.Err
}

// NewListingError creates a ListingError for the given pip operation.
//
// Parameters:
//   - op: The pip operation that failed
//   - output: Diagnostic output from pip, may be empty
//   - err: Underlying error
//
// Returns:
//   - *ListingError: New listing error
func NewListingError(op, output string, err error) *ListingError {
	return &ListingError{Op: op, Output: output, Err: err}
}

// IsListingError checks if err is a ListingError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ListingError: The ListingError if err is one, nil otherwise
//   - bool: true if err is a ListingError
func IsListingError(err error) (*ListingError, bool) {
	var le *ListingError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// ImportError indicates the --import file could not be read or parsed.
//
// This is fatal: a malformed selection file must stop the run before any
// upgrade is dispatched. Callers should map it to ExitConfigError.
//
// Fields:
//   - Path: The import file path
//   - Err: Underlying read or parse error
type ImportError struct {
	// Path is the import file that failed.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
//
// Returns:
//   - string: Formatted error message naming the file
func (e *ImportError) Error() string {
	return fmt.Sprintf("import file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates an ImportError for the given file.
//
// Parameters:
//   - path: The import file path
//   - err: Underlying error
//
// Returns:
//   - *ImportError: New import error
func NewImportError(path string, err error) *ImportError {
	return &ImportError{Path: path, Err: err}
}

// IsImportError checks if err is an ImportError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ImportError: The ImportError if err is one, nil otherwise
//   - bool: true if err is an ImportError
func IsImportError(err error) (*ImportError, bool) {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
