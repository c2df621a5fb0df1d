// Package warnings routes non-fatal problems to a configurable sink.
//
// Warnings never change the exit code: a failed --export write, an orphaned
// process-group kill, or a pip check finding is reported here and the run
// carries on.
package warnings

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu         sync.RWMutex
	warnWriter io.Writer = os.Stderr
)

// Warnf writes formatted warning messages to the configured warning writer.
//
// It performs the following operations:
//   - Acquires a read lock to safely access the warning writer
//   - Formats the message using the provided format string and arguments
//   - Writes the formatted message to the configured writer
//   - Releases the read lock
//
// Parameters:
//   - format: Printf-style format string for the warning message
//   - args: Variadic arguments to format into the string
func Warnf(format string, args ...any) {
	mu.RLock()
	w := warnWriter
	mu.RUnlock()
	_, _ = fmt.Fprintf(w, format, args...)
}

// WarningWriter returns the currently configured warning writer.
//
// Returns:
//   - io.Writer: The currently configured writer for warning messages
func WarningWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return warnWriter
}

// SetWarningWriter swaps the warning writer and returns a restore function.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Saves the previous warning writer for restoration
//   - Sets the new warning writer (defaults to os.Stderr if nil)
//   - Releases the write lock
//   - Returns a function that restores the previous writer when called
//
// Parameters:
//   - w: The new io.Writer to use; if nil, defaults to os.Stderr
//
// Returns:
//   - func(): A restore function that sets the writer back to the previous value
func SetWarningWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()

	previous := warnWriter
	if w == nil {
		warnWriter = os.Stderr
	} else {
		warnWriter = w
	}

	return func() {
		mu.Lock()
		defer mu.Unlock()
		warnWriter = previous
	}
}

// Collector captures warnings for deferred output.
//
// Implements io.Writer so it can be installed via SetWarningWriter. Warnings
// emitted by concurrent upgrade workers are collected and printed after the
// summary instead of interleaving with live output.
type Collector struct {
	mu       sync.Mutex
	messages []string
}

// NewCollector creates a new warning Collector.
//
// Returns:
//   - *Collector: A new empty warning collector ready for use
func NewCollector() *Collector {
	return &Collector{}
}

// Write implements io.Writer for capturing warning messages.
//
// Splits input on newlines and stores non-empty trimmed lines. Safe for
// concurrent use: upgrade workers may warn from multiple goroutines.
//
// Parameters:
//   - p: Byte slice containing warning message data
//
// Returns:
//   - int: Number of bytes written (always len(p))
//   - error: Always nil, never returns an error
func (c *Collector) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range strings.Split(string(p), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			c.messages = append(c.messages, trimmed)
		}
	}
	return len(p), nil
}

// Messages returns a copy of all collected warning messages.
//
// Creates a defensive copy to prevent external modification of the internal slice.
//
// Returns:
//   - []string: Copy of all collected warning messages
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make([]string, len(c.messages))
	copy(copied, c.messages)
	return copied
}

// Reset clears all collected messages.
//
// Use this when you want to reuse the same collector for a new batch of warnings.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}
