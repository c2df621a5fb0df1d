// Package packages defines the core data model shared across commands:
// outdated package records as reported by pip, per-package upgrade results,
// and PEP 503 name normalization used for all name comparisons.
package packages

import (
	"time"

	"github.com/ajxudir/pipup/pkg/utils"
)

// PackageRecord describes one outdated package as reported by pip.
//
// Records are immutable once listed; filtering and dispatch pass them by
// value and never mutate the versions.
//
// Fields:
//   - Name: The distribution name as pip reports it (original casing preserved)
//   - CurrentVersion: The installed version
//   - LatestVersion: The newest version available on the index
type PackageRecord struct {
	Name           string `json:"name" yaml:"name"`
	CurrentVersion string `json:"current_version" yaml:"current_version"`
	LatestVersion  string `json:"latest_version" yaml:"latest_version"`
}

// NormalizedName returns the record's name in PEP 503 normalized form.
//
// Returns:
//   - string: Lowercased name with runs of "-", "_", "." folded to "-"
func (p PackageRecord) NormalizedName() string {
	return NormalizeName(p.Name)
}

// UpgradeMagnitude classifies the pending upgrade as major, minor, or patch.
//
// Returns:
//   - string: One of utils.UpgradeMajor, utils.UpgradeMinor,
//     utils.UpgradePatch, or utils.UpgradeUnknown when either version
//     cannot be interpreted
func (p PackageRecord) UpgradeMagnitude() string {
	return utils.ClassifyUpgrade(p.CurrentVersion, p.LatestVersion)
}

// UpgradeResult captures the outcome of one upgrade attempt.
//
// Every selected package produces exactly one result, including packages
// that were never dispatched (skipped after an earlier failure stopped the
// run, or declined interactively).
//
// Fields:
//   - Package: The package the attempt was for
//   - Status: Terminal status (constants.StatusSuccess, StatusFailed,
//     StatusTimedOut, or StatusSkipped)
//   - Duration: Wall time of the pip invocation; zero when no process ran
//   - ErrorMessage: Trimmed pip stderr or skip reason; empty on success
type UpgradeResult struct {
	Package      PackageRecord `json:"package" yaml:"package"`
	Status       string        `json:"status" yaml:"status"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
	ErrorMessage string        `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

// Names extracts the pip-reported names from a list of records.
//
// Parameters:
//   - records: Records to read names from
//
// Returns:
//   - []string: Names in the same order as the input records
func Names(records []PackageRecord) []string {
	names := make([]string, len(records))
	for i, rec := range records {
		names[i] = rec.Name
	}
	return names
}
