package display

import (
	"fmt"
	"io"

	"github.com/ajxudir/pipup/pkg/constants"
	"github.com/ajxudir/pipup/pkg/packages"
)

// PrintWarnings prints collected warning messages to the writer.
//
// Formats each warning on its own line with a warning icon prefix.
// Does nothing if warnings slice is empty.
// Prints a blank line before the warnings for separation.
//
// Parameters:
//   - w: Writer to output to (typically the teed run writer)
//   - warnings: Slice of warning messages
//
// Example output:
//
//	<blank line>
//	⚠️ Export failed: permission denied
//	⚠️ pip check reported dependency problems
func PrintWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}

	_, _ = fmt.Fprintln(w)
	for _, warning := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s\n", constants.IconWarn, warning)
	}
}

// PrintWarningsInline prints warning messages without a leading blank line.
//
// Same as PrintWarnings but without the leading blank line.
//
// Parameters:
//   - w: Writer to output to
//   - warnings: Slice of warning messages
func PrintWarningsInline(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}

	for _, warning := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s\n", constants.IconWarn, warning)
	}
}

// PrintAllUpToDate prints the nothing-outdated message.
//
// Parameters:
//   - w: Writer to output to
func PrintAllUpToDate(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s All packages are up to date!\n", constants.IconSparkles)
}

// PrintNoneMatched prints the filtered-to-empty message.
//
// Used when outdated packages exist but the include/exclude/import filters
// removed all of them. Distinct from PrintAllUpToDate so users can tell an
// up-to-date environment from an over-narrow filter.
//
// Parameters:
//   - w: Writer to output to
func PrintNoneMatched(w io.Writer) {
	_, _ = fmt.Fprintln(w, "No outdated packages matched the active filters.")
}

// PrintUpgradePlan prints the selected outdated packages as a bullet list.
//
// Parameters:
//   - w: Writer to output to
//   - records: Outdated packages selected for upgrade
//
// Example output:
//
//	<blank line>
//	📦 Found 2 outdated package(s):
//	  • numpy: 1.26.0 → 1.26.4
//	  • requests: 2.31.0 → 2.32.3
func PrintUpgradePlan(w io.Writer, records []packages.PackageRecord) {
	_, _ = fmt.Fprintf(w, "\n%s Found %d outdated package(s):\n", constants.IconPackage, len(records))
	for _, rec := range records {
		_, _ = fmt.Fprintf(w, "  %s %s: %s → %s\n",
			constants.IconSkipped, rec.Name, rec.CurrentVersion, rec.LatestVersion)
	}
}
