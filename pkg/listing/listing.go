// Package listing obtains package inventories from pip.
// It wraps pip's JSON list output (installed and outdated variants) and the
// post-upgrade dependency check. Listing runs without the per-package upgrade
// timeout; cancellation comes from the caller's context.
package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ajxudir/pipup/pkg/errors"
	"github.com/ajxudir/pipup/pkg/packages"
	"github.com/ajxudir/pipup/pkg/pipenv"
	"github.com/ajxudir/pipup/pkg/pipexec"
	"github.com/ajxudir/pipup/pkg/verbose"
)

// UTF-8 BOM bytes (EF BB BF)
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// pipPackage mirrors one entry of pip's JSON list output.
//
// Unknown fields such as latest_filetype and editable_project_location are
// ignored. The latest_version field is only present with --outdated.
//
// Fields:
//   - Name: Package name as pip reports it
//   - Version: Installed version
//   - LatestVersion: Newest available version, empty for plain listings
type pipPackage struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	LatestVersion string `json:"latest_version"`
}

// ListOutdated returns the packages pip reports as outdated.
//
// It runs `pip list --outdated --format=json` and preserves pip's own
// ordering. An empty slice means everything is up to date.
//
// Parameters:
//   - ctx: Context for cancellation
//   - env: Resolved pip environment to invoke
//
// Returns:
//   - []packages.PackageRecord: Outdated packages in pip's order
//   - error: *errors.ListingError when pip fails or its output is unparsable
func ListOutdated(ctx context.Context, env *pipenv.Environment) ([]packages.PackageRecord, error) {
	return runListing(ctx, env, "list --outdated", []string{"list", "--outdated", "--format=json"})
}

// ListInstalled returns every installed package with its current version.
//
// It runs `pip list --format=json`; LatestVersion is empty on the returned
// records since pip does not report it for plain listings.
//
// Parameters:
//   - ctx: Context for cancellation
//   - env: Resolved pip environment to invoke
//
// Returns:
//   - []packages.PackageRecord: Installed packages in pip's order
//   - error: *errors.ListingError when pip fails or its output is unparsable
func ListInstalled(ctx context.Context, env *pipenv.Environment) ([]packages.PackageRecord, error) {
	return runListing(ctx, env, "list", []string{"list", "--format=json"})
}

// Check runs pip's dependency consistency check.
//
// pip check exits non-zero when installed packages have incompatible
// requirements and prints one conflict per line on stdout. A clean
// environment yields a nil slice.
//
// Parameters:
//   - ctx: Context for cancellation
//   - env: Resolved pip environment to invoke
//
// Returns:
//   - []string: Reported dependency conflicts, one per line
//   - error: *errors.ListingError when the check itself could not run
func Check(ctx context.Context, env *pipenv.Environment) ([]string, error) {
	result, err := pipexec.Run(ctx, env.Command("check"), 0)
	if err != nil {
		return nil, errors.NewListingError("check", "", err)
	}

	if result.Ok() {
		return nil, nil
	}

	// A non-zero exit with a conflict report is the expected "broken
	// requirements" outcome, not an execution failure.
	conflicts := conflictLines(result.Stdout)
	if len(conflicts) == 0 {
		return nil, errors.NewListingError("check", result.ErrorMessage(), fmt.Errorf("exit code %d", result.ExitCode))
	}
	verbose.Printf("pip check reported %d conflict(s)", len(conflicts))
	return conflicts, nil
}

// runListing executes a pip list variant and parses its JSON output.
//
// It performs the following operations:
//   - Step 1: Runs the listing command with no timeout
//   - Step 2: Maps a start failure or non-zero exit to a ListingError
//   - Step 3: Parses the JSON array into package records
//
// Parameters:
//   - ctx: Context for cancellation
//   - env: Resolved pip environment to invoke
//   - op: Operation label for error messages (e.g., "list --outdated")
//   - args: Pip arguments for the listing variant
//
// Returns:
//   - []packages.PackageRecord: Parsed packages in pip's order
//   - error: *errors.ListingError on any failure
func runListing(ctx context.Context, env *pipenv.Environment, op string, args []string) ([]packages.PackageRecord, error) {
	result, err := pipexec.Run(ctx, env.Command(args...), 0)
	if err != nil {
		return nil, errors.NewListingError(op, "", err)
	}

	if !result.Ok() {
		return nil, errors.NewListingError(op, result.ErrorMessage(), fmt.Errorf("exit code %d", result.ExitCode))
	}

	records, err := parseListing([]byte(result.Stdout))
	if err != nil {
		return nil, errors.NewListingError(op, "", err)
	}

	verbose.Printf("pip %s returned %d package(s)", op, len(records))
	return records, nil
}

// parseListing decodes pip's JSON list output into package records.
//
// Parameters:
//   - output: Raw stdout bytes from a pip list invocation
//
// Returns:
//   - []packages.PackageRecord: Decoded packages, order preserved
//   - error: When the output is not a JSON array of package objects
func parseListing(output []byte) ([]packages.PackageRecord, error) {
	// Strip BOM if present (seen with some Windows shells)
	output = stripBOM(output)

	var entries []pipPackage
	if err := json.Unmarshal(output, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse pip listing output: %w", err)
	}

	records := make([]packages.PackageRecord, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			// A nameless entry cannot be upgraded or reported.
			continue
		}
		records = append(records, packages.PackageRecord{
			Name:           name,
			CurrentVersion: strings.TrimSpace(entry.Version),
			LatestVersion:  strings.TrimSpace(entry.LatestVersion),
		})
	}
	return records, nil
}

// conflictLines splits pip check output into trimmed non-empty lines.
//
// Parameters:
//   - output: Raw stdout from pip check
//
// Returns:
//   - []string: Conflict report lines with surrounding whitespace removed
func conflictLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// stripBOM removes a UTF-8 byte order mark from the beginning of output.
//
// Parameters:
//   - output: Raw bytes that may start with a UTF-8 BOM
//
// Returns:
//   - []byte: The output with the BOM removed if present
func stripBOM(output []byte) []byte {
	if bytes.HasPrefix(output, utf8BOM) {
		return output[len(utf8BOM):]
	}
	return output
}
