// Package verbose provides debug logging for pipup.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	enabled bool
	writer  io.Writer = os.Stderr
)

// Enable turns on verbose logging and allows debug messages to be printed.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Sets the enabled flag to true
//   - Releases the write lock
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging and prevents debug messages from being printed.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Sets the enabled flag to false
//   - Releases the write lock
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages.
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
	}
}

// getWriter returns the current writer with proper locking for internal use.
func getWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return writer
}

// Printf prints a formatted verbose message if enabled.
//
// The message is written with a [DEBUG] prefix to the configured writer.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Printf(format string, args ...any) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints an informational verbose message if enabled.
//
// Parameters:
//   - msg: The message string to print
func Info(msg string) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] %s\n", msg)
	}
}

// Infof prints a formatted informational verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Infof(format string, args ...any) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] "+format+"\n", args...)
	}
}

// CommandExec logs a pip invocation if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the full argv being executed
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - argv: The command and arguments being executed
func CommandExec(argv []string) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Executing: %s\n", strings.Join(argv, " "))
	}
}

// CommandResult logs a pip invocation's outcome if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the command status (succeeded or failed) with exit code
//   - Truncates long command strings to 60 characters for readability
//   - If output is provided, prints up to 5 lines with truncation
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - cmd: The command string that was executed
//   - exitCode: The exit code returned by the command (0 for success)
//   - output: The command output (stdout/stderr)
func CommandResult(cmd string, exitCode int, output string) {
	if !IsEnabled() {
		return
	}
	w := getWriter()
	if exitCode == 0 {
		_, _ = fmt.Fprintf(w, "[DEBUG] Command succeeded: %s\n", truncate(cmd, 60))
	} else {
		_, _ = fmt.Fprintf(w, "[DEBUG] Command failed (exit %d): %s\n", exitCode, truncate(cmd, 60))
	}
	if output != "" {
		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) > 5 {
			for _, line := range lines[:3] {
				_, _ = fmt.Fprintf(w, "        | %s\n", truncate(line, 100))
			}
			_, _ = fmt.Fprintf(w, "        | ... (%d more lines)\n", len(lines)-3)
		} else {
			for _, line := range lines {
				_, _ = fmt.Fprintf(w, "        | %s\n", truncate(line, 100))
			}
		}
	}
}

// ConfigLoaded logs which config file was loaded if enabled.
//
// Parameters:
//   - path: The file path to the configuration file that was loaded
func ConfigLoaded(path string) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Config loaded: %s\n", path)
	}
}

// PackageFiltered logs when a package is filtered out if enabled.
//
// Parameters:
//   - name: The name of the package that was filtered
//   - reason: The reason why the package was filtered out
func PackageFiltered(name, reason string) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Package '%s' filtered: %s\n", name, reason)
	}
}

// PackageState logs a package lifecycle transition if enabled.
//
// The dispatcher calls this from its state machine callback so a --verbose
// run shows every pending/running/terminal transition.
//
// Parameters:
//   - name: The package name
//   - state: The state the package just entered
func PackageState(name, state string) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Package '%s' entered state: %s\n", name, state)
	}
}

// truncate shortens a string to the specified maximum length.
//
// It performs the following operations:
//   - Returns the original string if it's within the maxLen limit
//   - Truncates the string to maxLen-3 and appends "..." if it exceeds maxLen
//
// Parameters:
//   - s: The string to truncate
//   - maxLen: The maximum length for the returned string (must be at least 3)
//
// Returns:
//   - string: The original or truncated string with "..." suffix if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
