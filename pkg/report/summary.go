package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/pipup/pkg/constants"
	"github.com/ajxudir/pipup/pkg/errors"
	"github.com/ajxudir/pipup/pkg/output"
	"github.com/ajxudir/pipup/pkg/packages"
)

// Summary aggregates the per-package results of one upgrade run.
//
// Fields:
//   - Results: One result per selected package, in selection order
//   - Succeeded: Count of StatusSuccess results
//   - Failed: Count of StatusFailed results
//   - TimedOut: Count of StatusTimedOut results
//   - Skipped: Count of StatusSkipped results
//   - TotalDuration: Sum of all pip invocation durations
//   - AverageDuration: TotalDuration divided by the attempted count
//   - Elapsed: Wall time of the whole dispatch, prompt time included
//   - ImportedMissing: Imported names that are no longer outdated
type Summary struct {
	Results         []packages.UpgradeResult
	Succeeded       int
	Failed          int
	TimedOut        int
	Skipped         int
	TotalDuration   time.Duration
	AverageDuration time.Duration
	Elapsed         time.Duration
	ImportedMissing []string
}

// Summarize computes a Summary from a completed run's results.
//
// Parameters:
//   - results: One result per selected package
//   - elapsed: Wall time of the whole dispatch
//   - importedMissing: Imported names absent from the live outdated listing
//
// Returns:
//   - *Summary: Counts and durations derived from the results
func Summarize(results []packages.UpgradeResult, elapsed time.Duration, importedMissing []string) *Summary {
	s := &Summary{
		Results:         results,
		Elapsed:         elapsed,
		ImportedMissing: importedMissing,
	}
	for _, res := range results {
		switch res.Status {
		case constants.StatusSuccess:
			s.Succeeded++
		case constants.StatusFailed:
			s.Failed++
		case constants.StatusTimedOut:
			s.TimedOut++
		case constants.StatusSkipped:
			s.Skipped++
		}
		s.TotalDuration += res.Duration
	}
	if attempted := s.Attempted(); attempted > 0 {
		s.AverageDuration = s.TotalDuration / time.Duration(attempted)
	}
	return s
}

// Total returns the number of results in the summary.
//
// Returns:
//   - int: Result count; always equals the selection size
func (s *Summary) Total() int {
	return len(s.Results)
}

// Attempted returns the number of packages that ran a pip subprocess.
//
// Returns:
//   - int: Succeeded + Failed + TimedOut counts
func (s *Summary) Attempted() int {
	return s.Succeeded + s.Failed + s.TimedOut
}

// FailedOrTimedOut returns the count of results that count as failures.
//
// Timeouts are failures for exit-code purposes: the package was attempted
// and did not reach its latest version.
//
// Returns:
//   - int: Failed + TimedOut counts
func (s *Summary) FailedOrTimedOut() int {
	return s.Failed + s.TimedOut
}

// Failures returns the failed and timed-out results in selection order.
//
// Returns:
//   - []packages.UpgradeResult: Results with StatusFailed or StatusTimedOut
func (s *Summary) Failures() []packages.UpgradeResult {
	var failures []packages.UpgradeResult
	for _, res := range s.Results {
		if res.Status == constants.StatusFailed || res.Status == constants.StatusTimedOut {
			failures = append(failures, res)
		}
	}
	return failures
}

// OrderedCounts returns the per-status counts keyed in canonical order.
//
// The ordered map preserves insertion order through iteration and JSON
// marshaling, so breakdown output is deterministic.
//
// Returns:
//   - *orderedmap.OrderedMap: Status name to count, in constants.AllStatuses order
func (s *Summary) OrderedCounts() *orderedmap.OrderedMap {
	counts := orderedmap.New()
	for _, status := range constants.AllStatuses {
		counts.Set(status, s.countFor(status))
	}
	return counts
}

// countFor returns the count for a single status.
func (s *Summary) countFor(status string) int {
	switch status {
	case constants.StatusSuccess:
		return s.Succeeded
	case constants.StatusFailed:
		return s.Failed
	case constants.StatusTimedOut:
		return s.TimedOut
	case constants.StatusSkipped:
		return s.Skipped
	}
	return 0
}

// FormatSeconds renders a duration as seconds with one decimal place.
//
// Parameters:
//   - d: Duration to render
//
// Returns:
//   - string: For example "3.2s"
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Render writes the end-of-run summary:
//
// It performs the following operations:
//   - Step 1: Prints a per-package breakdown table with status and duration
//   - Step 2: Prints the summary heading with the run's wall time
//   - Step 3: Prints the success count, then failures with their messages
//     (known messages get a remediation hint appended)
//   - Step 4: Prints skipped counts, timing stats, and imported-but-current
//     notes when present
//
// Parameters:
//   - w: Destination writer (run output, possibly teed to the log)
//   - s: Summary to render
func Render(w io.Writer, s *Summary) {
	if s == nil || s.Total() == 0 {
		return
	}

	renderTable(w, s.Results)

	heading := fmt.Sprintf("%s Upgrade Summary (completed in %s):", constants.IconSummary, FormatSeconds(s.Elapsed))
	fmt.Fprintln(w)
	output.Header.Fprintln(w, heading)

	output.Success.Fprintf(w, "%s Successfully upgraded: %d package(s)\n", constants.IconCheckmark, s.Succeeded)

	failures := s.Failures()
	if len(failures) > 0 {
		output.Failure.Fprintf(w, "%s Failed to upgrade: %d package(s)\n", constants.IconCross, len(failures))
		for _, res := range failures {
			fmt.Fprintf(w, "  %s %s: %s\n", constants.IconSkipped, res.Package.Name, errors.EnhanceErrorWithHint(res.ErrorMessage))
		}
	}

	if s.Skipped > 0 {
		output.Dim.Fprintf(w, "%s Skipped: %d package(s)\n", constants.IconSkipped, s.Skipped)
	}

	// The ✗ line folds timeouts into failures; spell the counts out whenever
	// that line alone does not tell the whole story.
	if s.TimedOut > 0 || s.Skipped > 0 {
		output.Dim.Fprintf(w, "%s Breakdown: %s\n", constants.IconSkipped, s.breakdown())
	}

	if s.Attempted() > 0 {
		output.Dim.Fprintf(w, "%s Attempted %d package(s) in %s of pip time (avg %s each)\n",
			constants.IconSkipped, s.Attempted(), FormatSeconds(s.TotalDuration), FormatSeconds(s.AverageDuration))
	}

	if len(s.ImportedMissing) > 0 {
		output.Warning.Fprintf(w, "%s Imported but no longer outdated: %s\n",
			constants.IconWarn, strings.Join(s.ImportedMissing, ", "))
	}
}

// breakdown renders non-zero status counts in canonical order.
func (s *Summary) breakdown() string {
	var parts []string
	counts := s.OrderedCounts()
	for _, status := range counts.Keys() {
		val, _ := counts.Get(status)
		count, ok := val.(int)
		if !ok || count == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d", status, count))
	}
	return strings.Join(parts, ", ")
}

// renderTable prints the per-package result table.
func renderTable(w io.Writer, results []packages.UpgradeResult) {
	table := output.NewTable().
		AddColumn("NAME").
		AddColumn("CURRENT").
		AddColumn("LATEST").
		AddColumn("STATUS").
		AddColumn("DURATION")

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		duration := constants.PlaceholderNA
		if res.Duration > 0 {
			duration = FormatSeconds(res.Duration)
		}
		row := []string{
			res.Package.Name,
			res.Package.CurrentVersion,
			res.Package.LatestVersion,
			fmt.Sprintf("%s %s", constants.StatusIcon(res.Status), res.Status),
			duration,
		}
		table.UpdateWidths(row...)
		rows = append(rows, row)
	}

	fmt.Fprintln(w)
	table.Fprint(w)
	for _, row := range rows {
		fmt.Fprintln(w, table.FormatRow(row...))
	}
}
