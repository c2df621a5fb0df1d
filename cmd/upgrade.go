package cmd

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pipup/pkg/config"
	"github.com/ajxudir/pipup/pkg/constants"
	"github.com/ajxudir/pipup/pkg/display"
	"github.com/ajxudir/pipup/pkg/errors"
	"github.com/ajxudir/pipup/pkg/listing"
	"github.com/ajxudir/pipup/pkg/output"
	"github.com/ajxudir/pipup/pkg/packages"
	"github.com/ajxudir/pipup/pkg/pipenv"
	"github.com/ajxudir/pipup/pkg/report"
	"github.com/ajxudir/pipup/pkg/upgrade"
	"github.com/ajxudir/pipup/pkg/verbose"
	"github.com/ajxudir/pipup/pkg/warnings"
)

// CLI flags
var (
	upgradeDryRunFlag      bool
	upgradeInteractiveFlag bool
	upgradeIncludeFlag     []string
	upgradeExcludeFlag     []string
	upgradeImportFlag      string
	upgradeExportFlag      string
	upgradeMaxWorkersFlag  int
	upgradeTimeoutFlag     int
	upgradeBatchFlag       bool
	upgradeContinueFlag    bool
	upgradePipFlag         string
	upgradeVenvFlag        string
	upgradeQuickFlag       bool
	upgradeSafeFlag        bool
	upgradeSkipChecksFlag  bool
	upgradeConfigFlag      string

	// Deprecated flags kept so old invocations keep working.
	upgradeSkipFlag         []string
	upgradeWorkersFlag      int
	upgradeNoConcurrentFlag bool
)

// Testable function variables
var stdinReaderFunc = func() *bufio.Reader { return bufio.NewReader(os.Stdin) }
var checkFunc = listing.Check

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade outdated packages",
	Long: `Upgrade every outdated package to its latest version.

Outdated packages are listed, filtered by --include/--exclude/--import, and
upgraded concurrently through a bounded worker pool (one pip subprocess per
package). --batch hands the whole selection to a single pip invocation
instead; -i asks before each package.

Exit codes:
  0  every selected package upgraded or was skipped by the user
  1  some packages failed while others succeeded (--continue-on-error)
  2  the run failed: listing error, or failures without partial success
  3  configuration error (flag conflicts, bad values, unresolvable pip)`,
	RunE: runUpgrade,
}

func init() {
	upgradeCmd.Flags().BoolVar(&upgradeDryRunFlag, "dry-run", false, "Show the upgrade plan without invoking pip install")
	upgradeCmd.Flags().BoolVarP(&upgradeInteractiveFlag, "interactive", "i", false, "Ask before upgrading each package (forces sequential dispatch)")
	upgradeCmd.Flags().StringSliceVar(&upgradeIncludeFlag, "include", nil, "Only include matching packages (comma-separated, * and ? wildcards)")
	upgradeCmd.Flags().StringSliceVar(&upgradeExcludeFlag, "exclude", nil, "Exclude matching packages (comma-separated, * and ? wildcards)")
	upgradeCmd.Flags().StringVar(&upgradeImportFlag, "import", "", "Restrict to the packages in a previously exported file")
	upgradeCmd.Flags().StringVar(&upgradeExportFlag, "export", "", "Write the pre-upgrade selection to a file (json or yaml by extension)")
	upgradeCmd.Flags().IntVar(&upgradeMaxWorkersFlag, "max-workers", constants.DefaultMaxWorkers, "Maximum concurrent upgrade subprocesses")
	upgradeCmd.Flags().IntVar(&upgradeTimeoutFlag, "timeout", constants.DefaultTimeoutSeconds, "Per-package timeout in seconds (0 disables)")
	upgradeCmd.Flags().BoolVar(&upgradeBatchFlag, "batch", false, "Upgrade all selected packages with a single pip command")
	upgradeCmd.Flags().BoolVar(&upgradeContinueFlag, "continue-on-error", false, "Keep upgrading after a failure instead of stopping")
	upgradeCmd.Flags().StringVar(&upgradePipFlag, "pip", "", "Pip executable to use")
	upgradeCmd.Flags().StringVar(&upgradeVenvFlag, "venv", "", "Virtualenv directory whose pip should be used")
	upgradeCmd.Flags().BoolVar(&upgradeQuickFlag, "quick", false, "Profile: 20 workers, 120s timeout, continue on error")
	upgradeCmd.Flags().BoolVar(&upgradeSafeFlag, "safe", false, "Profile: sequential, 900s timeout, stop on first failure")
	upgradeCmd.Flags().BoolVar(&upgradeSkipChecksFlag, "skip-checks", false, "Skip the post-upgrade pip check verification")
	upgradeCmd.Flags().StringVarP(&upgradeConfigFlag, "config", "c", "", "Config file path")

	upgradeCmd.Flags().StringSliceVarP(&upgradeSkipFlag, "skip", "s", nil, "Packages to skip during upgrade")
	_ = upgradeCmd.Flags().MarkDeprecated("skip", "use --exclude")
	upgradeCmd.Flags().IntVarP(&upgradeWorkersFlag, "workers", "w", constants.LegacyDefaultWorkers, "Number of concurrent workers")
	_ = upgradeCmd.Flags().MarkDeprecated("workers", "use --max-workers")
	upgradeCmd.Flags().BoolVar(&upgradeNoConcurrentFlag, "no-concurrent", false, "Disable concurrent upgrades")
	_ = upgradeCmd.Flags().MarkDeprecated("no-concurrent", "use --max-workers=1")
}

// resolveRunConfiguration builds the effective configuration for one run.
//
// Resolution order, later layers winning: built-in defaults, config file,
// profile (--quick or --safe), explicitly set flags. Legacy flags map into
// their replacements first: --skip appends to the excludes, --workers feeds
// max-workers unless --max-workers itself was set, and --no-concurrent
// forces sequential dispatch but still loses to an explicit --max-workers.
//
// Parameters:
//   - cmd: Cobra command carrying the flag set
//
// Returns:
//   - *config.RunConfiguration: Validated effective configuration
//   - error: *errors.ExitError with ExitConfigError on conflicts or bad values
func resolveRunConfiguration(cmd *cobra.Command) (*config.RunConfiguration, error) {
	if upgradeQuickFlag && upgradeSafeFlag {
		verbose.Infof("Exit code %d (config error): --quick and --safe are mutually exclusive", errors.ExitConfigError)
		return nil, errors.NewExitErrorf(errors.ExitConfigError, "--quick and --safe are mutually exclusive")
	}

	rc, err := resolveBaseConfiguration(upgradeConfigFlag)
	if err != nil {
		return nil, err
	}

	if upgradeQuickFlag {
		verbose.Printf("Applying --quick profile")
		rc.ApplyQuickProfile()
	}
	if upgradeSafeFlag {
		verbose.Printf("Applying --safe profile")
		rc.ApplySafeProfile()
	}

	flags := cmd.Flags()

	// Legacy worker flags, weakest first.
	if flags.Changed("workers") {
		rc.MaxWorkers = upgradeWorkersFlag
	}
	if upgradeNoConcurrentFlag {
		rc.MaxWorkers = 1
	}
	if flags.Changed("max-workers") {
		rc.MaxWorkers = upgradeMaxWorkersFlag
	}
	if flags.Changed("timeout") {
		rc.TimeoutSeconds = upgradeTimeoutFlag
	}
	if flags.Changed("continue-on-error") {
		rc.ContinueOnError = upgradeContinueFlag
	}

	if upgradePipFlag != "" {
		rc.Pip = upgradePipFlag
	}
	if upgradeVenvFlag != "" {
		rc.Venv = upgradeVenvFlag
	}

	rc.Batch = upgradeBatchFlag
	rc.Interactive = upgradeInteractiveFlag
	rc.DryRun = upgradeDryRunFlag
	rc.SkipChecks = upgradeSkipChecksFlag
	rc.Include = upgradeIncludeFlag
	rc.ImportPath = upgradeImportFlag
	rc.ExportPath = upgradeExportFlag

	rc.Exclude = mergeExcludes(rc, upgradeExcludeFlag)
	if len(upgradeSkipFlag) > 0 {
		rc.Exclude = append(rc.Exclude, upgradeSkipFlag...)
	}

	if rc.Interactive && rc.MaxWorkers != 1 {
		verbose.Printf("Interactive mode forces sequential dispatch (max-workers=1)")
		rc.MaxWorkers = 1
	}

	if err := rc.Validate(); err != nil {
		verbose.Infof("Exit code %d (config error): %v", errors.ExitConfigError, err)
		return nil, errors.NewExitError(errors.ExitConfigError, err)
	}
	return rc, nil
}

// runUpgrade executes the upgrade command.
//
// It performs the following operations:
//   - Step 1: Resolves configuration and the pip environment
//   - Step 2: Lists outdated packages and applies the selection filters
//   - Step 3: Writes the --export file when requested
//   - Step 4: Dispatches the upgrades (pool, batch, or dry-run)
//   - Step 5: Runs pip check, renders the summary, and maps the outcome to
//     an exit code
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments (unused)
//
// Returns:
//   - error: Exit-coded error describing the run outcome; nil on full success
func runUpgrade(cmd *cobra.Command, args []string) error {
	collector := warnings.NewCollector()
	restoreWarnings := warnings.SetWarningWriter(collector)
	defer restoreWarnings()

	rc, err := resolveRunConfiguration(cmd)
	if err != nil {
		return err
	}

	env, err := resolveEnvironment(rc.Pip, rc.Venv)
	if err != nil {
		return err
	}

	out := outWriter()
	fmt.Fprintf(out, "%s Checking for outdated packages...\n", constants.IconSearch)

	records, err := listOutdatedFunc(cmd.Context(), env)
	if err != nil {
		return listingFailure(err)
	}

	selection, err := applySelection(records, rc.Include, rc.Exclude, rc.ImportPath)
	if err != nil {
		return err
	}

	if rc.ExportPath != "" {
		exportRecords(rc.ExportPath, selection.Records)
	}

	if len(selection.Records) == 0 {
		if len(records) == 0 {
			display.PrintAllUpToDate(out)
		} else {
			display.PrintNoneMatched(out)
		}
		display.PrintWarnings(out, collector.Messages())
		return nil
	}

	display.PrintUpgradePlan(out, selection.Records)

	if rc.DryRun {
		fmt.Fprintf(out, "\nDry run: no packages were upgraded.\n")
		display.PrintWarnings(out, collector.Messages())
		return nil
	}

	fmt.Fprintf(out, "\n%s Starting upgrade process...\n", constants.IconLaunch)
	verbose.Printf("Dispatching %d package(s): workers=%d timeout=%ds batch=%v continue-on-error=%v",
		len(selection.Records), rc.MaxWorkers, rc.TimeoutSeconds, rc.Batch, rc.ContinueOnError)

	summary := dispatchUpgrades(cmd, rc, env, selection.Records, selection.ImportedMissing)

	if !rc.SkipChecks && summary.Succeeded > 0 {
		runPostUpgradeCheck(cmd, env)
	}

	report.Render(out, summary)
	display.PrintWarnings(out, collector.Messages())

	return handleUpgradeResult(summary, rc.ContinueOnError)
}

// dispatchUpgrades runs the dispatcher with live feedback wired up.
//
// Per-completion lines and the progress counter go to stderr so stdout
// carries only the plan and the final summary. The counter is disabled when
// stderr is not a terminal and in interactive mode, where it would collide
// with the prompts.
//
// Parameters:
//   - cmd: Cobra command carrying the run context
//   - rc: Resolved configuration
//   - env: Resolved pip invocation
//   - selected: Packages to upgrade, in selection order
//   - importedMissing: Imported names absent from the live listing
//
// Returns:
//   - *report.Summary: Aggregated outcome of the run
func dispatchUpgrades(cmd *cobra.Command, rc *config.RunConfiguration, env *pipenv.Environment, selected []packages.PackageRecord, importedMissing []string) *report.Summary {
	progress := output.NewProgress(os.Stderr, len(selected), "Upgrading packages")
	progress.SetEnabled(output.IsTerminal(os.Stderr) && !rc.Interactive)

	hooks := upgrade.Hooks{
		OnResult: func(res packages.UpgradeResult) {
			progress.Clear()
			fmt.Fprintln(errWriter(), display.FormatResultLine(res))
			progress.Increment()
		},
	}
	if rc.Interactive {
		reader := stdinReaderFunc()
		hooks.Confirm = func(rec packages.PackageRecord) bool {
			return confirmUpgrade(reader, rec)
		}
	}

	dispatcher := upgrade.NewDispatcher(env, upgrade.Options{
		MaxWorkers:      rc.MaxWorkers,
		TimeoutSeconds:  rc.TimeoutSeconds,
		ContinueOnError: rc.ContinueOnError,
		Interactive:     rc.Interactive,
		Batch:           rc.Batch,
	}, hooks)

	started := time.Now()
	results := dispatcher.Run(cmd.Context(), selected)
	progress.Done()

	return report.Summarize(results, time.Since(started), importedMissing)
}

// confirmUpgrade prompts for one package in interactive mode.
//
// The prompt goes to stderr alongside the live lines. A read error (closed
// stdin, end of input) declines rather than upgrading unconfirmed.
//
// Parameters:
//   - reader: Shared stdin reader for the whole run
//   - rec: Package awaiting confirmation
//
// Returns:
//   - bool: true when the user answered y or yes
func confirmUpgrade(reader *bufio.Reader, rec packages.PackageRecord) bool {
	fmt.Fprintf(errWriter(), "Upgrade %s %s → %s? [y/N]: ", rec.Name, rec.CurrentVersion, rec.LatestVersion)
	response, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintln(errWriter(), "\nSkipping (input not available).")
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// runPostUpgradeCheck verifies the environment with pip check after upgrades.
//
// Findings never change the exit code: broken requirements after an upgrade
// are worth knowing about, but the upgrades themselves completed.
//
// Parameters:
//   - cmd: Cobra command carrying the run context
//   - env: Resolved pip invocation
func runPostUpgradeCheck(cmd *cobra.Command, env *pipenv.Environment) {
	verbose.Printf("Running pip check")
	conflicts, err := checkFunc(cmd.Context(), env)
	if err != nil {
		warnings.Warnf("pip check failed: %v\n", err)
		return
	}
	for _, conflict := range conflicts {
		warnings.Warnf("pip check: %s\n", conflict)
	}
	if len(conflicts) == 0 {
		verbose.Printf("pip check passed")
	}
}

// handleUpgradeResult maps the run outcome to an exit-coded error.
//
// Returns nil when nothing failed (user-declined skips included), a
// PartialSuccessError at ExitPartialFailure when failures were accepted via
// --continue-on-error alongside at least one success, and ExitFailure
// otherwise.
//
// Parameters:
//   - summary: Aggregated run outcome
//   - continueOnError: Whether failures were accepted during dispatch
//
// Returns:
//   - error: nil, or *errors.ExitError carrying the outcome
func handleUpgradeResult(summary *report.Summary, continueOnError bool) error {
	failures := summary.Failures()
	if len(failures) == 0 {
		verbose.Infof("Exit code %d (success): %d package(s) processed", errors.ExitSuccess, summary.Total())
		return nil
	}

	failureErrs := make([]error, 0, len(failures))
	for _, res := range failures {
		failureErrs = append(failureErrs, fmt.Errorf("%s: %s", res.Package.Name, res.ErrorMessage))
	}

	if summary.Succeeded > 0 && continueOnError {
		verbose.Infof("Exit code %d (partial failure): %d succeeded, %d failed with --continue-on-error",
			errors.ExitPartialFailure, summary.Succeeded, len(failures))
		fmt.Fprintf(errWriter(), "Exit code %d: %d succeeded, %d failed (partial failure with --continue-on-error)\n",
			errors.ExitPartialFailure, summary.Succeeded, len(failures))
		return errors.NewExitError(errors.ExitPartialFailure,
			errors.NewPartialSuccessError(summary.Succeeded, len(failures), failureErrs))
	}

	verbose.Infof("Exit code %d (failure): %d package(s) failed, succeeded=%d, continueOnError=%v",
		errors.ExitFailure, len(failures), summary.Succeeded, continueOnError)
	fmt.Fprintf(errWriter(), "Exit code %d: %d package(s) failed\n", errors.ExitFailure, len(failures))
	return errors.NewExitError(errors.ExitFailure, stderrors.Join(failureErrs...))
}
