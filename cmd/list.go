package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pipup/pkg/display"
	"github.com/ajxudir/pipup/pkg/errors"
	"github.com/ajxudir/pipup/pkg/listing"
	"github.com/ajxudir/pipup/pkg/output"
	"github.com/ajxudir/pipup/pkg/packages"
	"github.com/ajxudir/pipup/pkg/pipenv"
	"github.com/ajxudir/pipup/pkg/verbose"
	"github.com/ajxudir/pipup/pkg/warnings"
)

var (
	listPipFlag    string
	listVenvFlag   string
	listConfigFlag string
	listOutputFlag string
)

var (
	resolveEnvFunc    = pipenv.Resolve
	listInstalledFunc = listing.ListInstalled
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show installed packages",
	Long:    `List every installed package with its version, as reported by pip.`,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVar(&listPipFlag, "pip", "", "Pip executable to use")
	listCmd.Flags().StringVar(&listVenvFlag, "venv", "", "Virtualenv directory whose pip should be used")
	listCmd.Flags().StringVarP(&listConfigFlag, "config", "c", "", "Config file path")
	listCmd.Flags().StringVarP(&listOutputFlag, "output", "o", "", "Output format: json, csv, xml (default: table)")
}

// resolveEnvironment resolves the pip invocation for a run configuration.
//
// Parameters:
//   - pip: Explicit pip executable, or empty
//   - venv: Virtualenv directory, or empty
//
// Returns:
//   - *pipenv.Environment: Resolved invocation
//   - error: *errors.ExitError with ExitConfigError when no usable pip exists
func resolveEnvironment(pip, venv string) (*pipenv.Environment, error) {
	env, err := resolveEnvFunc(pipenv.Options{Pip: pip, Venv: venv})
	if err != nil {
		verbose.Infof("Exit code %d (config error): %v", errors.ExitConfigError, err)
		return nil, errors.NewExitErrorf(errors.ExitConfigError, "%s", errors.EnhanceErrorWithHint(err.Error()))
	}
	verbose.Printf("Using pip: %s", env)
	return env, nil
}

// listingFailure wraps a pip listing failure with the failure exit code.
func listingFailure(err error) error {
	verbose.Infof("Exit code %d (failure): %v", errors.ExitFailure, err)
	return errors.NewExitErrorf(errors.ExitFailure, "%s", errors.EnhanceErrorWithHint(err.Error()))
}

// runList executes the list command to display installed packages.
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments (unused)
//
// Returns:
//   - error: Exit-coded error on config or listing failure
func runList(cmd *cobra.Command, args []string) error {
	outputFormat := output.ParseFormat(listOutputFlag)

	collector := warnings.NewCollector()
	restoreWarnings := warnings.SetWarningWriter(collector)
	defer restoreWarnings()

	rc, err := resolveBaseConfiguration(listConfigFlag)
	if err != nil {
		return err
	}
	if listPipFlag != "" {
		rc.Pip = listPipFlag
	}
	if listVenvFlag != "" {
		rc.Venv = listVenvFlag
	}

	env, err := resolveEnvironment(rc.Pip, rc.Venv)
	if err != nil {
		return err
	}

	records, err := listInstalledFunc(cmd.Context(), env)
	if err != nil {
		return listingFailure(err)
	}

	if output.IsStructuredFormat(outputFormat) {
		return printListStructured(records, collector.Messages(), outputFormat)
	}

	out := outWriter()
	if len(records) == 0 {
		fmt.Fprintln(out, "No installed packages found.")
		display.PrintWarnings(out, collector.Messages())
		return nil
	}

	table := output.NewTable().
		AddColumn("NAME").
		AddColumn("VERSION")
	for _, rec := range records {
		table.UpdateWidths(rec.Name, rec.CurrentVersion)
	}

	table.Fprint(out)
	for _, rec := range records {
		fmt.Fprintln(out, table.FormatRow(rec.Name, rec.CurrentVersion))
	}
	fmt.Fprintf(out, "\nTotal packages: %d\n", len(records))

	display.PrintWarnings(out, collector.Messages())
	return nil
}

// printListStructured outputs installed packages in a structured format.
//
// Parameters:
//   - records: Installed packages to output
//   - warningMessages: Warning messages to include in output
//   - format: Output format to use
//
// Returns:
//   - error: Returns error on output failure
func printListStructured(records []packages.PackageRecord, warningMessages []string, format output.Format) error {
	listPackages := make([]output.ListPackage, 0, len(records))
	for _, rec := range records {
		listPackages = append(listPackages, output.ListPackage{
			Name:    rec.Name,
			Version: rec.CurrentVersion,
		})
	}

	result := &output.ListResult{
		Summary: output.ListSummary{
			TotalPackages: len(listPackages),
		},
		Packages: listPackages,
		Warnings: warningMessages,
	}

	return output.WriteListResult(outWriter(), format, result)
}
