package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Progress provides an in-place progress counter for long-running upgrades.
//
// The counter rewrites a single line on each update ("Upgrading packages:
// 3/10 (30%)"), so it should be pointed at stderr and disabled when stderr
// is not a terminal or when structured output is requested.
//
// Fields:
//   - writer: Destination for progress output (typically os.Stderr)
//   - total: Total number of steps in the operation
//   - current: Current step number
//   - message: Descriptive message displayed with the progress
//   - mu: Mutex protecting concurrent access to progress state
//   - enabled: Whether progress output is enabled
//   - lastWidth: Width of the last rendered line for proper clearing
type Progress struct {
	writer    io.Writer
	total     int
	current   int
	message   string
	mu        sync.Mutex
	enabled   bool
	lastWidth int
}

// NewProgress creates a new progress indicator and returns it.
//
// Parameters:
//   - writer: Destination for progress output (typically os.Stderr)
//   - total: Total number of steps in the operation
//   - message: Descriptive message to display (e.g., "Upgrading packages")
//
// Returns:
//   - *Progress: A new progress indicator initialized and enabled
func NewProgress(writer io.Writer, total int, message string) *Progress {
	return &Progress{
		writer:  writer,
		total:   total,
		message: message,
		enabled: true,
	}
}

// SetEnabled enables or disables progress output.
//
// Parameters:
//   - enabled: true to enable progress output; false to disable
func (p *Progress) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Increment advances the progress by one step and re-renders the display.
//
// It performs the following operations:
//   - Step 1: Locks mutex, increments counter, copies values, unlocks
//   - Step 2: Renders progress outside the critical section to prevent I/O deadlocks
//
// This method is safe to call concurrently from upgrade workers.
func (p *Progress) Increment() {
	p.mu.Lock()
	p.current++
	current := p.current
	total := p.total
	enabled := p.enabled
	p.mu.Unlock()

	if enabled && total > 0 {
		p.renderValues(current, total)
	}
}

// Done marks the progress as complete and prints a newline.
//
// It performs the following operations:
//   - Step 1: Sets current to total to show 100% completion
//   - Step 2: Renders the final progress state
//   - Step 3: Prints a newline to move past the progress line
func (p *Progress) Done() {
	p.mu.Lock()
	p.current = p.total
	current := p.current
	total := p.total
	enabled := p.enabled
	p.mu.Unlock()

	if enabled && total > 0 {
		p.renderValues(current, total)
		_, _ = fmt.Fprintln(p.writer)
	}
}

// Clear clears the progress line from the display.
//
// This overwrites the current progress line with spaces and returns the
// cursor to the beginning, so a per-package completion line can be printed
// without the counter bleeding into it.
func (p *Progress) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled && p.lastWidth > 0 {
		_, _ = fmt.Fprintf(p.writer, "\r%s\r", strings.Repeat(" ", p.lastWidth))
	}
}

// renderValues renders progress with the given values.
//
// It performs the following operations:
//   - Step 1: Calculates percentage from current and total
//   - Step 2: Formats the progress line with message and percentage
//   - Step 3: Locks mutex briefly to update lastWidth and pad if needed
//   - Step 4: Writes to the output writer and flushes if it's a file
//
// Parameters:
//   - current: Current step number
//   - total: Total number of steps
func (p *Progress) renderValues(current, total int) {
	percentage := float64(current) / float64(total) * 100
	line := fmt.Sprintf("\r%s: %d/%d (%.0f%%)", p.message, current, total, percentage)

	p.mu.Lock()
	// Clear previous content if the new line is shorter
	if len(line) < p.lastWidth {
		line += strings.Repeat(" ", p.lastWidth-len(line))
	}
	p.lastWidth = len(line)
	p.mu.Unlock()

	_, _ = fmt.Fprint(p.writer, line)

	// Flush so the counter renders immediately in CI environments
	if f, ok := p.writer.(*os.File); ok {
		_ = f.Sync()
	}
}
