package output

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/ajxudir/pipup/pkg/constants"
)

// Color styles for run output. The fatih/color package honors the NO_COLOR
// environment variable and disables itself on non-terminal output.
var (
	// Success colors successful upgrade lines green.
	Success = color.New(color.FgGreen)
	// Failure colors failed upgrade lines red.
	Failure = color.New(color.FgRed)
	// Warning colors timeout and warning lines yellow.
	Warning = color.New(color.FgYellow)
	// Info colors informational banners cyan.
	Info = color.New(color.FgCyan)
	// Dim renders skipped entries faint.
	Dim = color.New(color.Faint)
	// Header renders summary headings bold.
	Header = color.New(color.FgWhite, color.Bold)
)

// NoColor disables all colored output for the process.
//
// Used by the --no-color option; fatih/color already disables itself for
// non-terminal writers and when NO_COLOR is set.
func NoColor() {
	color.NoColor = true
}

// IsTerminal reports whether a file is attached to a terminal.
//
// Progress counters and in-place line rewrites are suppressed when the
// target is a pipe or a file.
//
// Parameters:
//   - f: The file to check (typically os.Stderr)
//
// Returns:
//   - bool: true for terminals, including Cygwin/MSYS pseudo-terminals
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// StatusColor returns the color style for an upgrade status.
//
// Parameters:
//   - status: One of the constants.Status* values
//
// Returns:
//   - *color.Color: Style for the status; an unstyled color for unknown statuses
func StatusColor(status string) *color.Color {
	switch status {
	case constants.StatusSuccess:
		return Success
	case constants.StatusFailed:
		return Failure
	case constants.StatusTimedOut:
		return Warning
	case constants.StatusSkipped:
		return Dim
	default:
		return color.New(color.Reset)
	}
}

// FormatStatus renders a status with its icon in the status color.
//
// Parameters:
//   - status: One of the constants.Status* values
//
// Returns:
//   - string: Colored "icon status" text (e.g., "✓ success")
func FormatStatus(status string) string {
	return StatusColor(status).Sprintf("%s %s", constants.StatusIcon(status), status)
}

// Successf writes a green "✓ " line to the given writer.
//
// Parameters:
//   - w: Destination writer (run output, possibly teed to the log)
//   - format: Printf-style format string
//   - args: Format arguments
func Successf(w io.Writer, format string, args ...interface{}) {
	Success.Fprintf(w, "✓ "+format+"\n", args...)
}

// Errorf writes a red "✗ " line to the given writer.
//
// Parameters:
//   - w: Destination writer (run output, possibly teed to the log)
//   - format: Printf-style format string
//   - args: Format arguments
func Errorf(w io.Writer, format string, args ...interface{}) {
	Failure.Fprintf(w, "✗ "+format+"\n", args...)
}

// Warnf writes a yellow "⚠ " line to the given writer.
//
// Parameters:
//   - w: Destination writer (run output, possibly teed to the log)
//   - format: Printf-style format string
//   - args: Format arguments
func Warnf(w io.Writer, format string, args ...interface{}) {
	Warning.Fprintf(w, "⚠ "+format+"\n", args...)
}
