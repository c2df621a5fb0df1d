package errors

import (
	"strings"
)

// ErrorHint provides actionable resolution hints for common errors.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	// Pattern is a substring to match in error messages (case-insensitive).
	Pattern string

	// Hint is a brief description of the problem.
	Hint string

	// Resolution is a command or action to fix the problem.
	Resolution string
}

// errorHints maps message fragments from pip and the OS to actionable advice.
// Matching is first-hit in declaration order.
var errorHints = []ErrorHint{
	{
		Pattern:    "executable file not found",
		Hint:       "pip is not installed or not on PATH",
		Resolution: "Install Python (https://python.org/downloads/) or point --pip at the executable",
	},
	{
		Pattern:    "no such file or directory",
		Hint:       "the configured pip or venv path does not exist",
		Resolution: "Check the --pip/--venv flags and the config file paths",
	},
	{
		Pattern:    "permission denied",
		Hint:       "pip cannot write to the site-packages directory",
		Resolution: "Upgrade inside a virtualenv (--venv) or a user install (pip install --user)",
	},
	{
		Pattern:    "externally-managed-environment",
		Hint:       "this Python installation is managed by the OS package manager",
		Resolution: "Use a virtualenv (--venv) instead of the system interpreter",
	},
	{
		Pattern:    "could not find a version",
		Hint:       "the package index has no matching release",
		Resolution: "Check the package name and your index configuration",
	},
	{
		Pattern:    "connection error",
		Hint:       "the package index is unreachable",
		Resolution: "Check network connectivity and proxy settings, then retry",
	},
	{
		Pattern:    "read timed out",
		Hint:       "the package index is responding slowly",
		Resolution: "Retry, or raise --timeout for large packages",
	},
	{
		Pattern:    "timed out after",
		Hint:       "the upgrade exceeded its time budget",
		Resolution: "Raise --timeout, or 0 to disable the limit",
	},
}

// HintFor returns resolution advice for an error message, if any is known.
//
// Matching is case-insensitive substring search over the registered hints,
// first hit wins.
//
// Parameters:
//   - message: Error message to inspect
//
// Returns:
//   - string: "hint (resolution)" advice, or empty when nothing matches
func HintFor(message string) string {
	lower := strings.ToLower(message)
	for _, h := range errorHints {
		if strings.Contains(lower, h.Pattern) {
			return h.Hint + ": " + h.Resolution
		}
	}
	return ""
}

// EnhanceErrorWithHint appends resolution advice to an error message when a
// known pattern matches.
//
// Parameters:
//   - message: Original error message
//
// Returns:
//   - string: Message followed by a hint line, or the original message
func EnhanceErrorWithHint(message string) string {
	if hint := HintFor(message); hint != "" {
		return message + "\n  💡 " + hint
	}
	return message
}
