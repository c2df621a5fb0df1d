// Package pipenv resolves which pip executable pipup should drive.
// Resolution prefers explicit choices (the --pip and --venv options, then
// the config file) and falls back to searching PATH for pip3, pip, and
// finally python -m pip.
package pipenv

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ajxudir/pipup/pkg/verbose"
)

// Function variables for filesystem and PATH access, replaceable in tests.
var (
	lookPathFunc = exec.LookPath
	statFunc     = os.Stat
)

// pathCandidates is the PATH fallback order when no pip was chosen explicitly.
//
// Each candidate is an argv template; the program name is resolved through
// PATH and the remaining arguments are kept as-is.
var pathCandidates = [][]string{
	{"pip3"},
	{"pip"},
	{"python3", "-m", "pip"},
	{"python", "-m", "pip"},
}

// Environment identifies the pip executable selected for this run.
//
// Fields:
//   - Argv: Command prefix to invoke pip (e.g., ["/usr/bin/pip3"] or
//     ["/venv/bin/python", "-m", "pip"])
//   - Source: Human-readable origin of the selection (e.g., "pip option",
//     "PATH (pip3)") for verbose output
type Environment struct {
	Argv   []string
	Source string
}

// Command builds the full argv for a pip subcommand.
//
// Parameters:
//   - args: Pip arguments (e.g., "list", "--outdated", "--format=json")
//
// Returns:
//   - []string: The environment's argv prefix followed by args
func (e *Environment) Command(args ...string) []string {
	argv := make([]string, 0, len(e.Argv)+len(args))
	argv = append(argv, e.Argv...)
	argv = append(argv, args...)
	return argv
}

// String renders the environment's command prefix for display.
//
// Returns:
//   - string: Space-joined argv prefix (e.g., "/venv/bin/python -m pip")
func (e *Environment) String() string {
	return strings.Join(e.Argv, " ")
}

// NotFoundError reports that no usable pip executable could be resolved.
//
// Fields:
//   - Tried: The candidates that were checked, in order
type NotFoundError struct {
	Tried []string
}

// Error returns a formatted message with resolution instructions.
//
// Returns:
//   - string: Multi-line message naming the tried candidates and how to
//     point pipup at a pip installation
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no pip executable found (tried: %s)\n  Resolution: Install Python: https://python.org/downloads/, or point pipup at an installation with --pip or --venv.",
		strings.Join(e.Tried, ", "))
}

// Options carries the explicit pip selection after flag and config precedence
// has been applied by the caller.
//
// Fields:
//   - Pip: Path or name of a pip executable; takes precedence over Venv
//   - Venv: Path to a virtualenv directory whose interpreter should be used
type Options struct {
	Pip  string
	Venv string
}

// Resolve selects the pip executable for this run.
//
// It performs the following operations:
//   - Step 1: An explicit pip executable is validated and used as-is
//   - Step 2: A virtualenv directory is probed for bin/pip, then for
//     bin/python to run as "python -m pip"
//   - Step 3: PATH is searched for pip3, pip, python3, python in order
//
// Parameters:
//   - opts: Explicit pip or venv selection; both empty triggers the PATH search
//
// Returns:
//   - *Environment: The selected pip invocation
//   - error: When an explicit selection is unusable or no candidate resolves;
//     callers treat this as a configuration error
func Resolve(opts Options) (*Environment, error) {
	if opts.Pip != "" {
		env, err := resolveExplicit(opts.Pip)
		if err != nil {
			return nil, err
		}
		verbose.Printf("Using pip: %s (%s)", env, env.Source)
		return env, nil
	}

	if opts.Venv != "" {
		env, err := resolveVenv(opts.Venv)
		if err != nil {
			return nil, err
		}
		verbose.Printf("Using pip: %s (%s)", env, env.Source)
		return env, nil
	}

	env, err := resolvePath()
	if err != nil {
		return nil, err
	}
	verbose.Printf("Using pip: %s (%s)", env, env.Source)
	return env, nil
}

// resolveExplicit validates a user-supplied pip executable.
//
// A bare name is resolved through PATH; a path is checked on disk.
//
// Parameters:
//   - pip: Executable name or path from --pip or the config file
//
// Returns:
//   - *Environment: Environment invoking the executable directly
//   - error: When the name is not on PATH or the path does not exist
func resolveExplicit(pip string) (*Environment, error) {
	if !strings.ContainsRune(pip, os.PathSeparator) && !strings.ContainsRune(pip, '/') {
		resolved, err := lookPathFunc(pip)
		if err != nil {
			return nil, fmt.Errorf("pip executable %q not found in PATH: %w", pip, err)
		}
		return &Environment{Argv: []string{resolved}, Source: "pip option"}, nil
	}

	info, err := statFunc(pip)
	if err != nil {
		return nil, fmt.Errorf("pip executable %q not found: %w", pip, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("pip executable %q is a directory (use --venv for virtualenv directories)", pip)
	}
	return &Environment{Argv: []string{pip}, Source: "pip option"}, nil
}

// resolveVenv locates the interpreter inside a virtualenv directory.
//
// It performs the following operations:
//   - Step 1: Verifies the directory exists
//   - Step 2: Prefers DIR/bin/pip (Scripts\pip.exe on Windows)
//   - Step 3: Falls back to DIR/bin/python run as "python -m pip"
//
// Parameters:
//   - venv: Path to the virtualenv root directory
//
// Returns:
//   - *Environment: Environment invoking the virtualenv's pip
//   - error: When the directory is missing or holds neither pip nor python
func resolveVenv(venv string) (*Environment, error) {
	info, err := statFunc(venv)
	if err != nil {
		return nil, fmt.Errorf("virtualenv directory %q not found: %w", venv, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("virtualenv path %q is not a directory", venv)
	}

	binDir := filepath.Join(venv, venvBinDir())

	pip := filepath.Join(binDir, exeName("pip"))
	if fi, err := statFunc(pip); err == nil && !fi.IsDir() {
		return &Environment{Argv: []string{pip}, Source: "venv option"}, nil
	}

	python := filepath.Join(binDir, exeName("python"))
	if fi, err := statFunc(python); err == nil && !fi.IsDir() {
		return &Environment{Argv: []string{python, "-m", "pip"}, Source: "venv option"}, nil
	}

	return nil, fmt.Errorf("virtualenv %q has no pip or python under %s", venv, binDir)
}

// resolvePath searches PATH for a usable pip, in candidate order.
//
// Returns:
//   - *Environment: Environment for the first candidate found on PATH
//   - error: *NotFoundError naming every candidate when none resolve
func resolvePath() (*Environment, error) {
	tried := make([]string, 0, len(pathCandidates))
	for _, candidate := range pathCandidates {
		tried = append(tried, strings.Join(candidate, " "))
		resolved, err := lookPathFunc(candidate[0])
		if err != nil {
			continue
		}
		argv := append([]string{resolved}, candidate[1:]...)
		return &Environment{Argv: argv, Source: fmt.Sprintf("PATH (%s)", candidate[0])}, nil
	}
	return nil, &NotFoundError{Tried: tried}
}

// venvBinDir returns the scripts directory name inside a virtualenv.
//
// Returns:
//   - string: "Scripts" on Windows, "bin" elsewhere
func venvBinDir() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}

// exeName appends the platform executable suffix to a program name.
//
// Parameters:
//   - name: Base program name (e.g., "pip")
//
// Returns:
//   - string: Name with ".exe" appended on Windows, unchanged elsewhere
func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}
