// Package logging writes the optional run log enabled by --log.
// The log file collects everything the user saw (output, warnings, verbose
// tracing) under a timestamped header per run, appending across runs so one
// file accumulates a history of upgrade sessions.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// timestampFormat is the header timestamp layout.
const timestampFormat = "2006-01-02 15:04:05"

// RunLog is an append-only log file for a single pipup invocation.
//
// All methods are safe for concurrent use; upgrade workers write completion
// lines from multiple goroutines. A nil *RunLog is valid and ignores writes,
// so call sites do not need to branch on whether --log was given.
//
// Fields: This type has no exported fields.
type RunLog struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// Open opens (creating if needed) the run log and appends the run header.
//
// It performs the following operations:
//   - Step 1: Creates the parent directory when missing
//   - Step 2: Opens the file in append mode
//   - Step 3: Writes a timestamped header separating this run from earlier ones
//
// Parameters:
//   - path: Log file path from the --log option
//
// Returns:
//   - *RunLog: Open log ready for writes
//   - error: When the directory cannot be created or the file cannot be opened
func Open(path string) (*RunLog, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	header := fmt.Sprintf("==== pipup run %s ====\n", time.Now().Format(timestampFormat))
	if _, err := f.WriteString(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write log header: %w", err)
	}

	return &RunLog{file: f, path: path}, nil
}

// Write appends bytes to the log file and implements io.Writer.
//
// Parameters:
//   - p: Bytes to append
//
// Returns:
//   - int: len(p); a nil or closed log swallows the write
//   - error: Underlying file error, nil for nil or closed logs
func (l *RunLog) Write(p []byte) (int, error) {
	if l == nil {
		return len(p), nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return len(p), nil
	}
	return l.file.Write(p)
}

// Tee wraps a writer so output also lands in the run log.
//
// Parameters:
//   - primary: The user-facing writer (stdout or stderr)
//
// Returns:
//   - io.Writer: primary unchanged when the log is nil, otherwise a
//     MultiWriter over primary and the log
func (l *RunLog) Tee(primary io.Writer) io.Writer {
	if l == nil {
		return primary
	}
	return io.MultiWriter(primary, l)
}

// Path returns the log file path.
//
// Returns:
//   - string: The path passed to Open; empty for a nil log
func (l *RunLog) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close closes the underlying file. Further writes are ignored.
//
// Returns:
//   - error: Underlying close error, nil for nil or already closed logs
func (l *RunLog) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
