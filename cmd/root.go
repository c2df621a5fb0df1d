// Package cmd implements the command-line interface for pipup.
// It provides commands for listing installed packages, checking which are
// outdated, and upgrading them in parallel through pip.
package cmd

import (
	stderrors "errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pipup/pkg/errors"
	"github.com/ajxudir/pipup/pkg/logging"
	"github.com/ajxudir/pipup/pkg/output"
	"github.com/ajxudir/pipup/pkg/verbose"
)

var exitFunc = os.Exit
var verboseFlag bool
var noColorFlag bool
var logFileFlag string
var versionFlag bool

// runLog mirrors run output to the file named by --log. Nil when the flag
// is not set; logging.RunLog methods are nil-safe.
var runLog *logging.RunLog

var rootCmd = &cobra.Command{
	Use:   "pipup",
	Short: "Parallel upgrader for outdated pip packages",
	Long: `List outdated pip packages and upgrade them in parallel.

Each package is upgraded by its own pip subprocess through a bounded worker
pool, with a per-package timeout. Batch mode hands the whole selection to a
single pip invocation instead.

Exit codes:
  0: Success (every selected package upgraded, or nothing to do)
  1: Partial failure (some upgrades failed, with --continue-on-error)
  2: Failure (listing failed, or upgrades failed)
  3: Configuration or validation error`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verboseFlag {
			verbose.Enable()
		}
		if noColorFlag {
			output.NoColor()
		}
		if logFileFlag != "" {
			log, err := logging.Open(logFileFlag)
			if err != nil {
				return errors.NewExitError(errors.ExitConfigError, err)
			}
			runLog = log
			verbose.SetWriter(runLog.Tee(os.Stderr))
		}
		verbose.Infof("pipup %s starting", Version)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if runLog != nil {
			_ = runLog.Close()
			runLog = nil
			verbose.SetWriter(os.Stderr)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFlag {
			printVersionOutput()
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success
//   - 1: Partial failure (some packages failed, use --continue-on-error)
//   - 2: Complete failure
//   - 3: Configuration or validation error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := errors.GetExitCode(err)

		// Check for partial success
		var partialErr *errors.PartialSuccessError
		if stderrors.As(err, &partialErr) {
			code = errors.ExitPartialFailure
			verbose.Infof("Exit code %d: partial success - %d succeeded, %d failed", code, partialErr.Succeeded, partialErr.Failed)
		} else {
			verbose.Infof("Exit code %d: %v", code, err)
		}

		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Unlike Execute(), this function returns the error directly without calling
// os.Exit, making it suitable for use in test suites.
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log", "", "Append run output to this file")

	// Add -v/--version as a LOCAL flag (not persistent) so it only works on root command
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")

	// Commands ordered logically: info → config → workflow (list → outdated → upgrade)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(outdatedCmd)
	rootCmd.AddCommand(upgradeCmd)
}

// outWriter returns the stdout writer, teed to the run log when --log is set.
func outWriter() io.Writer {
	return runLog.Tee(os.Stdout)
}

// errWriter returns the stderr writer, teed to the run log when --log is set.
func errWriter() io.Writer {
	return runLog.Tee(os.Stderr)
}
