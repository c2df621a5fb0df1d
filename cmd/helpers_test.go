package cmd

import (
	"bufio"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajxudir/pipup/pkg/constants"
	"github.com/ajxudir/pipup/pkg/output"
	"github.com/ajxudir/pipup/pkg/packages"
	"github.com/ajxudir/pipup/pkg/pipenv"
	"github.com/ajxudir/pipup/pkg/testutil"
	"github.com/ajxudir/pipup/pkg/upgrade"
)

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup. It stands in for testing.T.Chdir,
// which requires a newer Go toolchain than the one building this module.
//
// Parameters:
//   - t: Testing instance
//   - dir: Directory to change into
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatal(err)
		}
	})
}

// resetCommandFlagsToDefaults resets every command flag to its default value.
//
// This function ensures test isolation: flag variables are package-level and
// keep their values between ExecuteTest calls, and pflag additionally records
// which flags were explicitly set. Both layers are cleared here.
func resetCommandFlagsToDefaults() {
	verboseFlag = false
	noColorFlag = false
	logFileFlag = ""
	versionFlag = false

	configShowDefaultsFlag = false
	configInitFlag = false
	configPathFlag = ""

	listPipFlag = ""
	listVenvFlag = ""
	listConfigFlag = ""
	listOutputFlag = ""

	outdatedIncludeFlag = nil
	outdatedExcludeFlag = nil
	outdatedImportFlag = ""
	outdatedExportFlag = ""
	outdatedPipFlag = ""
	outdatedVenvFlag = ""
	outdatedConfigFlag = ""
	outdatedOutputFlag = ""

	upgradeDryRunFlag = false
	upgradeInteractiveFlag = false
	upgradeIncludeFlag = nil
	upgradeExcludeFlag = nil
	upgradeImportFlag = ""
	upgradeExportFlag = ""
	upgradeMaxWorkersFlag = constants.DefaultMaxWorkers
	upgradeTimeoutFlag = constants.DefaultTimeoutSeconds
	upgradeBatchFlag = false
	upgradeContinueFlag = false
	upgradePipFlag = ""
	upgradeVenvFlag = ""
	upgradeQuickFlag = false
	upgradeSafeFlag = false
	upgradeSkipChecksFlag = false
	upgradeConfigFlag = ""
	upgradeSkipFlag = nil
	upgradeWorkersFlag = constants.LegacyDefaultWorkers
	upgradeNoConcurrentFlag = false

	clearChangedFlags(rootCmd)
}

// clearChangedFlags clears pflag's Changed marker on a command tree.
//
// Cobra keeps Changed set after a run, which would make a later test's
// precedence resolution believe flags from an earlier test were given.
//
// Parameters:
//   - cmd: Root of the command tree to clear
func clearChangedFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	for _, sub := range cmd.Commands() {
		clearChangedFlags(sub)
	}
}

// executeCommand runs the root command with the given arguments.
//
// The helper isolates the run: flags are reset before and after, HOME points
// at an empty directory so no real ~/.pipup.yaml leaks in, and color output
// is disabled for stable assertions.
//
// Parameters:
//   - t: Testing instance
//   - args: Command line arguments (e.g., "upgrade", "--dry-run")
//
// Returns:
//   - stdout: Captured standard output
//   - stderr: Captured standard error
//   - err: Error returned by the command
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	resetCommandFlagsToDefaults()
	t.Setenv("HOME", t.TempDir())
	output.NoColor()

	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetCommandFlagsToDefaults()
	})

	stdout, stderr = testutil.CaptureOutput(t, func() {
		err = ExecuteTest()
	})
	return stdout, stderr, err
}

// withResolvedEnv substitutes the pip environment resolver for the test.
//
// Parameters:
//   - t: Testing instance
//
// Returns:
//   - *pipenv.Environment: The fake environment every resolution yields
func withResolvedEnv(t *testing.T) *pipenv.Environment {
	t.Helper()
	env := &pipenv.Environment{Argv: []string{"pip"}, Source: "test"}
	orig := resolveEnvFunc
	resolveEnvFunc = func(opts pipenv.Options) (*pipenv.Environment, error) {
		return env, nil
	}
	t.Cleanup(func() { resolveEnvFunc = orig })
	return env
}

// withEnvError makes environment resolution fail for the test.
//
// Parameters:
//   - t: Testing instance
//   - err: Error the resolver returns
func withEnvError(t *testing.T, err error) {
	t.Helper()
	orig := resolveEnvFunc
	resolveEnvFunc = func(opts pipenv.Options) (*pipenv.Environment, error) {
		return nil, err
	}
	t.Cleanup(func() { resolveEnvFunc = orig })
}

// withInstalled substitutes the installed-package listing for the test.
//
// Parameters:
//   - t: Testing instance
//   - records: Records the listing returns
//   - err: Error the listing returns
func withInstalled(t *testing.T, records []packages.PackageRecord, err error) {
	t.Helper()
	orig := listInstalledFunc
	listInstalledFunc = func(ctx context.Context, env *pipenv.Environment) ([]packages.PackageRecord, error) {
		return records, err
	}
	t.Cleanup(func() { listInstalledFunc = orig })
}

// withOutdated substitutes the outdated-package listing for the test.
//
// Parameters:
//   - t: Testing instance
//   - records: Records the listing returns
//   - err: Error the listing returns
func withOutdated(t *testing.T, records []packages.PackageRecord, err error) {
	t.Helper()
	orig := listOutdatedFunc
	listOutdatedFunc = func(ctx context.Context, env *pipenv.Environment) ([]packages.PackageRecord, error) {
		return records, err
	}
	t.Cleanup(func() { listOutdatedFunc = orig })
}

// withUpgradeOutcome substitutes the per-package upgrade subprocess.
//
// Parameters:
//   - t: Testing instance
//   - fn: Maps each package to its canned result
func withUpgradeOutcome(t *testing.T, fn func(rec packages.PackageRecord) packages.UpgradeResult) {
	t.Helper()
	orig := upgrade.UpgradePackageFunc
	upgrade.UpgradePackageFunc = func(ctx context.Context, env *pipenv.Environment, rec packages.PackageRecord, timeoutSeconds int) packages.UpgradeResult {
		return fn(rec)
	}
	t.Cleanup(func() { upgrade.UpgradePackageFunc = orig })
}

// withBatchOutcome substitutes the batch upgrade subprocess.
//
// Parameters:
//   - t: Testing instance
//   - fn: Maps the whole selection to canned results
func withBatchOutcome(t *testing.T, fn func(records []packages.PackageRecord) []packages.UpgradeResult) {
	t.Helper()
	orig := upgrade.BatchUpgradeFunc
	upgrade.BatchUpgradeFunc = func(ctx context.Context, env *pipenv.Environment, records []packages.PackageRecord, timeoutSeconds int) []packages.UpgradeResult {
		return fn(records)
	}
	t.Cleanup(func() { upgrade.BatchUpgradeFunc = orig })
}

// withCheckResult substitutes the post-upgrade pip check.
//
// Parameters:
//   - t: Testing instance
//   - conflicts: Conflict lines the check reports
//   - err: Error the check returns
func withCheckResult(t *testing.T, conflicts []string, err error) {
	t.Helper()
	orig := checkFunc
	checkFunc = func(ctx context.Context, env *pipenv.Environment) ([]string, error) {
		return conflicts, err
	}
	t.Cleanup(func() { checkFunc = orig })
}

// withStdin substitutes interactive prompt input for the test.
//
// Parameters:
//   - t: Testing instance
//   - input: The responses, newline separated (e.g., "y\nn\n")
func withStdin(t *testing.T, input string) {
	t.Helper()
	orig := stdinReaderFunc
	stdinReaderFunc = func() *bufio.Reader {
		return bufio.NewReader(strings.NewReader(input))
	}
	t.Cleanup(func() { stdinReaderFunc = orig })
}
