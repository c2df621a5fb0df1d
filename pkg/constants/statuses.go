// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for status values.
package constants

// Upgrade status constants represent the terminal state of a package after
// an upgrade run. One transient state (running) exists only inside the
// dispatcher's lifecycle tracker and never appears in results.
const (
	// StatusSuccess indicates the package was upgraded to its latest version.
	StatusSuccess = "Success"

	// StatusFailed indicates the upgrade subprocess exited non-zero.
	StatusFailed = "Failed"

	// StatusTimedOut indicates the upgrade subprocess exceeded the timeout
	// and was terminated.
	StatusTimedOut = "TimedOut"

	// StatusSkipped indicates the package was never upgraded: the user
	// declined the interactive prompt, or dispatch stopped after an earlier
	// failure before this package started.
	StatusSkipped = "Skipped"
)

// AllStatuses lists the terminal statuses in canonical reporting order.
var AllStatuses = []string{StatusSuccess, StatusFailed, StatusTimedOut, StatusSkipped}

// Default values for the upgrade dispatcher.
const (
	// DefaultMaxWorkers is the worker pool size when --max-workers is not set.
	DefaultMaxWorkers = 10

	// LegacyDefaultWorkers is the historical default of the deprecated
	// --workers flag.
	LegacyDefaultWorkers = 5

	// DefaultTimeoutSeconds bounds each upgrade subprocess. Zero disables
	// the timeout entirely.
	DefaultTimeoutSeconds = 300

	// QuickMaxWorkers and QuickTimeoutSeconds are the --quick profile baseline.
	QuickMaxWorkers     = 20
	QuickTimeoutSeconds = 120

	// SafeMaxWorkers and SafeTimeoutSeconds are the --safe profile baseline.
	SafeMaxWorkers     = 1
	SafeTimeoutSeconds = 900
)

// Placeholder values for display when data is not available.
const (
	// PlaceholderNA is used when a value is not available.
	PlaceholderNA = "#N/A"
)

// Icon constants for status display.
// These provide visual indicators for package states in CLI output.
const (
	// IconCheckmark indicates a successful upgrade (checkmark).
	IconCheckmark = "✓"

	// IconCross indicates a failed upgrade (cross).
	IconCross = "✗"

	// IconWarn is the warning prefix for messages.
	IconWarn = "⚠️"

	// IconTimeout indicates an upgrade that exceeded its time budget.
	IconTimeout = "⏱"

	// IconSkipped indicates a package that was not attempted.
	IconSkipped = "•"

	// IconSearch prefixes the outdated-package discovery message.
	IconSearch = "🔍"

	// IconPackage prefixes the discovered-package count message.
	IconPackage = "📦"

	// IconLaunch prefixes the upgrade kickoff message.
	IconLaunch = "🚀"

	// IconSummary prefixes the run summary heading.
	IconSummary = "📊"

	// IconSparkles prefixes the nothing-to-do message.
	IconSparkles = "✨"
)

// StatusIcon returns the display icon for a terminal upgrade status.
//
// Unknown statuses fall back to the skipped bullet so table rendering
// never produces an empty cell.
//
// Parameters:
//   - status: One of the Status* constants
//
// Returns:
//   - string: Icon for the status
func StatusIcon(status string) string {
	switch status {
	case StatusSuccess:
		return IconCheckmark
	case StatusFailed:
		return IconCross
	case StatusTimedOut:
		return IconTimeout
	default:
		return IconSkipped
	}
}

// IsTerminalStatus reports whether status is one of the four terminal
// upgrade statuses.
//
// Parameters:
//   - status: Status string to check
//
// Returns:
//   - bool: true if status is a terminal upgrade status
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusSuccess, StatusFailed, StatusTimedOut, StatusSkipped:
		return true
	}
	return false
}
