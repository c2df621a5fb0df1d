package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pipup/pkg/config"
	"github.com/ajxudir/pipup/pkg/constants"
	"github.com/ajxudir/pipup/pkg/display"
	"github.com/ajxudir/pipup/pkg/errors"
	"github.com/ajxudir/pipup/pkg/filtering"
	"github.com/ajxudir/pipup/pkg/listing"
	"github.com/ajxudir/pipup/pkg/output"
	"github.com/ajxudir/pipup/pkg/packages"
	"github.com/ajxudir/pipup/pkg/report"
	"github.com/ajxudir/pipup/pkg/utils"
	"github.com/ajxudir/pipup/pkg/verbose"
	"github.com/ajxudir/pipup/pkg/warnings"
)

var (
	outdatedIncludeFlag []string
	outdatedExcludeFlag []string
	outdatedImportFlag  string
	outdatedExportFlag  string
	outdatedPipFlag     string
	outdatedVenvFlag    string
	outdatedConfigFlag  string
	outdatedOutputFlag  string
)

var listOutdatedFunc = listing.ListOutdated

// readRecordsFunc and writeRecordsFunc allow mocking import/export in tests.
var (
	readRecordsFunc  = report.ReadRecords
	writeRecordsFunc = report.WriteRecords
)

// writeOutdatedResultFunc allows mocking structured output in tests
var writeOutdatedResultFunc = output.WriteOutdatedResult

var outdatedCmd = &cobra.Command{
	Use:   "outdated",
	Short: "Show packages with a newer version available",
	Long: `Check the environment for outdated packages.

Runs "pip list --outdated" and prints every package whose installed version
is behind the newest release on the index, after applying --include,
--exclude, and --import selections. Use --export to save the selection for a
later "pipup upgrade --import" run.`,
	RunE: runOutdated,
}

func init() {
	outdatedCmd.Flags().StringSliceVar(&outdatedIncludeFlag, "include", nil, "Only include matching packages (comma-separated, * and ? wildcards)")
	outdatedCmd.Flags().StringSliceVar(&outdatedExcludeFlag, "exclude", nil, "Exclude matching packages (comma-separated, * and ? wildcards)")
	outdatedCmd.Flags().StringVar(&outdatedImportFlag, "import", "", "Restrict to the packages in a previously exported file")
	outdatedCmd.Flags().StringVar(&outdatedExportFlag, "export", "", "Write the outdated selection to a file (json or yaml by extension)")
	outdatedCmd.Flags().StringVar(&outdatedPipFlag, "pip", "", "Pip executable to use")
	outdatedCmd.Flags().StringVar(&outdatedVenvFlag, "venv", "", "Virtualenv directory whose pip should be used")
	outdatedCmd.Flags().StringVarP(&outdatedConfigFlag, "config", "c", "", "Config file path")
	outdatedCmd.Flags().StringVarP(&outdatedOutputFlag, "output", "o", "", "Output format: json, csv, xml (default: table)")
}

// importRecords reads the selection file named by --import.
//
// Parameters:
//   - path: Import file path
//
// Returns:
//   - []packages.PackageRecord: Records in file order
//   - error: *errors.ExitError with ExitConfigError when the file is
//     unreadable or malformed
func importRecords(path string) ([]packages.PackageRecord, error) {
	records, err := readRecordsFunc(path)
	if err != nil {
		verbose.Infof("Exit code %d (config error): %v", errors.ExitConfigError, err)
		return nil, errors.NewExitErrorf(errors.ExitConfigError, "%s", errors.EnhanceErrorWithHint(err.Error()))
	}
	verbose.Printf("Imported %d package(s) from %s", len(records), path)
	return records, nil
}

// exportRecords writes the selection to the file named by --export.
//
// A failed export never aborts the run: the selection is advisory output, so
// the failure is routed to the warning sink and the command carries on.
//
// Parameters:
//   - path: Export file path
//   - records: Selection to write
func exportRecords(path string, records []packages.PackageRecord) {
	if err := writeRecordsFunc(path, records); err != nil {
		warnings.Warnf("Export failed: %v\n", err)
		return
	}
	verbose.Printf("Exported %d package(s) to %s", len(records), path)
}

// applySelection runs the include/exclude/import chain for a command.
//
// Parameters:
//   - records: Live outdated listing
//   - include: Include patterns from flags
//   - exclude: Exclude patterns from flags, merged with the config file's
//     permanent excludes
//   - importPath: Selection file path, or empty
//
// Returns:
//   - filtering.Selection: Surviving records plus filter bookkeeping
//   - error: *errors.ExitError when the import file cannot be used
func applySelection(records []packages.PackageRecord, include, exclude []string, importPath string) (filtering.Selection, error) {
	opts := filtering.Options{
		Include: include,
		Exclude: exclude,
	}
	if importPath != "" {
		imported, err := importRecords(importPath)
		if err != nil {
			return filtering.Selection{}, err
		}
		opts.Imported = imported
		opts.HasImport = true
	}

	selection := filtering.Apply(records, opts)
	if selection.ExcludedCount > 0 {
		verbose.Printf("Excluded %d package(s) by pattern", selection.ExcludedCount)
	}
	return selection, nil
}

// runOutdated executes the outdated command.
//
// It performs the following operations:
//   - Step 1: Resolves configuration and the pip environment
//   - Step 2: Lists outdated packages through pip
//   - Step 3: Applies include, exclude, and import selections
//   - Step 4: Writes the --export file when requested
//   - Step 5: Renders the selection as a table or structured output
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments (unused)
//
// Returns:
//   - error: Exit-coded error on config, listing, or import failure
func runOutdated(cmd *cobra.Command, args []string) error {
	outputFormat := output.ParseFormat(outdatedOutputFlag)

	collector := warnings.NewCollector()
	restoreWarnings := warnings.SetWarningWriter(collector)
	defer restoreWarnings()

	rc, err := resolveBaseConfiguration(outdatedConfigFlag)
	if err != nil {
		return err
	}
	if outdatedPipFlag != "" {
		rc.Pip = outdatedPipFlag
	}
	if outdatedVenvFlag != "" {
		rc.Venv = outdatedVenvFlag
	}

	env, err := resolveEnvironment(rc.Pip, rc.Venv)
	if err != nil {
		return err
	}

	records, err := listOutdatedFunc(cmd.Context(), env)
	if err != nil {
		return listingFailure(err)
	}

	selection, err := applySelection(records, outdatedIncludeFlag, mergeExcludes(rc, outdatedExcludeFlag), outdatedImportFlag)
	if err != nil {
		return err
	}
	if len(selection.ImportedMissing) > 0 {
		warnings.Warnf("Imported but no longer outdated: %s\n", strings.Join(selection.ImportedMissing, ", "))
	}

	if outdatedExportFlag != "" {
		exportRecords(outdatedExportFlag, selection.Records)
	}

	if output.IsStructuredFormat(outputFormat) {
		return printOutdatedStructured(selection.Records, collector.Messages(), outputFormat)
	}

	out := outWriter()
	if len(selection.Records) == 0 {
		if len(records) == 0 {
			display.PrintAllUpToDate(out)
		} else {
			display.PrintNoneMatched(out)
		}
		display.PrintWarnings(out, collector.Messages())
		return nil
	}

	printOutdatedTable(selection.Records)
	display.PrintWarnings(out, collector.Messages())
	return nil
}

// mergeExcludes combines the config file's permanent excludes with flag excludes.
//
// Parameters:
//   - rc: Resolved configuration carrying file-level excludes
//   - flagExcludes: Patterns from --exclude
//
// Returns:
//   - []string: Config excludes first, then flag excludes
func mergeExcludes(rc *config.RunConfiguration, flagExcludes []string) []string {
	if len(rc.Exclude) == 0 {
		return flagExcludes
	}
	merged := make([]string, 0, len(rc.Exclude)+len(flagExcludes))
	merged = append(merged, rc.Exclude...)
	merged = append(merged, flagExcludes...)
	return merged
}

// printOutdatedTable renders the selection as a table on the run writer.
//
// The BUMP column only appears when at least one package has a classifiable
// upgrade magnitude.
//
// Parameters:
//   - records: Outdated packages to display
func printOutdatedTable(records []packages.PackageRecord) {
	out := outWriter()

	magnitudes := make([]string, len(records))
	for i, rec := range records {
		magnitudes[i] = rec.UpgradeMagnitude()
	}

	table := output.NewTable().
		AddColumn("NAME").
		AddColumn("CURRENT").
		AddColumn("LATEST").
		AddConditionalColumn("BUMP", output.ShouldShowBumpColumn(magnitudes))
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		bump := magnitudes[i]
		if bump == utils.UpgradeUnknown {
			bump = constants.PlaceholderNA
		}
		row := []string{rec.Name, rec.CurrentVersion, rec.LatestVersion, bump}
		table.UpdateWidths(row...)
		rows = append(rows, row)
	}

	table.Fprint(out)
	for _, row := range rows {
		fmt.Fprintln(out, table.FormatRow(row...))
	}
	fmt.Fprintf(out, "\nTotal outdated: %d\n", len(records))
}

// printOutdatedStructured outputs outdated packages in a structured format.
//
// Parameters:
//   - records: Outdated packages to output
//   - warningMessages: Warning messages to include in output
//   - format: Output format to use
//
// Returns:
//   - error: Returns error on output failure
func printOutdatedStructured(records []packages.PackageRecord, warningMessages []string, format output.Format) error {
	outdatedPackages := make([]output.OutdatedPackage, 0, len(records))
	summary := output.OutdatedSummary{TotalPackages: len(records)}

	for _, rec := range records {
		bump := rec.UpgradeMagnitude()
		switch bump {
		case utils.UpgradeMajor:
			summary.HasMajor++
		case utils.UpgradeMinor:
			summary.HasMinor++
		case utils.UpgradePatch:
			summary.HasPatch++
		}
		outdatedPackages = append(outdatedPackages, output.OutdatedPackage{
			Name:           rec.Name,
			CurrentVersion: rec.CurrentVersion,
			LatestVersion:  rec.LatestVersion,
			Bump:           bump,
		})
	}

	result := &output.OutdatedResult{
		Summary:  summary,
		Packages: outdatedPackages,
		Warnings: warningMessages,
	}

	return writeOutdatedResultFunc(outWriter(), format, result)
}
