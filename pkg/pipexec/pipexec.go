// Package pipexec runs pip subprocesses for pipup.
// Commands are argv-style and never pass through a shell, so package names
// taken from pip's own listing can never be reinterpreted as shell syntax.
// Each process runs in its own process group so a timeout kill also reaps
// pip's children (build backends, compilers).
package pipexec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/ajxudir/pipup/pkg/verbose"
	"github.com/ajxudir/pipup/pkg/warnings"
)

// Result captures the outcome of a completed pip invocation.
//
// Fields:
//   - Stdout: Captured standard output
//   - Stderr: Captured standard error
//   - ExitCode: Process exit code; -1 when the process was killed
//   - Duration: Wall time from start to completion
//   - TimedOut: true when the per-call timeout expired and the process group was killed
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
	TimedOut bool
}

// Ok reports whether the invocation completed normally with exit code zero.
//
// Returns:
//   - bool: true when the process exited 0 without timing out
func (r *Result) Ok() bool {
	return r != nil && !r.TimedOut && r.ExitCode == 0
}

// ErrorMessage extracts the most useful error text from a failed invocation.
//
// Pip writes its diagnostics to stderr, but some failure modes (notably
// resolver output) land on stdout, so stdout is used as the fallback.
//
// Returns:
//   - string: Trimmed stderr if non-empty, otherwise trimmed stdout
func (r *Result) ErrorMessage() string {
	if r == nil {
		return ""
	}
	if msg := strings.TrimSpace(r.Stderr); msg != "" {
		return msg
	}
	return strings.TrimSpace(r.Stdout)
}

// RunFunc is the function signature for pip subprocess execution.
//
// Parameters:
//   - ctx: Context for cancellation; a timeout is layered on top when requested
//   - argv: Full command line, program first (e.g., ["pip", "install", "--upgrade", "numpy"])
//   - timeoutSeconds: Maximum execution time in seconds (0 for no timeout)
//
// Returns:
//   - *Result: Captured output and exit state; non-nil whenever the process ran
//   - error: When the process could not be started at all (e.g., executable
//     not found); nil for non-zero exits and timeouts, which are reported
//     through the Result
type RunFunc func(ctx context.Context, argv []string, timeoutSeconds int) (*Result, error)

// Run is the pip subprocess execution function.
//
// This variable holds the implementation used throughout the application.
// Tests replace it with a fake to simulate pip without spawning processes.
var Run RunFunc = runCommand

// runCommand executes a single argv-style command.
//
// It performs the following operations:
//   - Step 1: Validates the argv and applies the per-call timeout to the context
//   - Step 2: Starts the process in its own process group with captured output
//   - Step 3: On deadline expiry, kills the whole process group and marks the
//     result as timed out
//   - Step 4: Maps a non-zero exit to Result.ExitCode; only start failures
//     surface as errors
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - argv: Full command line, program first
//   - timeoutSeconds: Maximum execution time in seconds (0 for no timeout)
//
// Returns:
//   - *Result: Captured output and exit state
//   - error: When argv is empty or the process could not be started
func runCommand(ctx context.Context, argv []string, timeoutSeconds int) (*Result, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, errors.New("no command provided")
	}

	if timeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	// Own process group so a timeout kill reaps pip's child processes
	setProcGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	verbose.CommandExec(argv)

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if ctx.Err() == context.DeadlineExceeded && timeoutSeconds > 0 {
		if killErr := killProcGroup(cmd); killErr != nil {
			warnings.Warnf("Warning: failed to kill process group on timeout: %v\n", killErr)
		}
		result.TimedOut = true
		result.ExitCode = -1
		verbose.CommandResult(strings.Join(argv, " "), result.ExitCode, result.Stderr)
		return result, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			verbose.CommandResult(strings.Join(argv, " "), result.ExitCode, result.ErrorMessage())
			return result, nil
		}
		return nil, err
	}

	result.ExitCode = 0
	verbose.CommandResult(strings.Join(argv, " "), result.ExitCode, result.Stdout)
	return result, nil
}
