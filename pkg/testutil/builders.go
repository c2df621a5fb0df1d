package testutil

import (
	"time"

	"github.com/ajxudir/pipup/pkg/constants"
	"github.com/ajxudir/pipup/pkg/packages"
)

// RecordBuilder provides a fluent API for building test package records.
//
// Use this builder to construct PackageRecord objects for testing purposes
// without repeating version literals in every test.
type RecordBuilder struct {
	rec packages.PackageRecord
}

// NewRecord creates a new RecordBuilder with the given name.
//
// The versions default to an upgradable pair (1.0.0 to 2.0.0) so most tests
// only need to set the name.
//
// Parameters:
//   - name: Package name to set
//
// Returns:
//   - *RecordBuilder: New builder instance ready for method chaining
func NewRecord(name string) *RecordBuilder {
	return &RecordBuilder{
		rec: packages.PackageRecord{
			Name:           name,
			CurrentVersion: "1.0.0",
			LatestVersion:  "2.0.0",
		},
	}
}

// WithVersions sets the installed and latest versions.
//
// Parameters:
//   - current: Installed version
//   - latest: Newest version available on the index
//
// Returns:
//   - *RecordBuilder: Self for method chaining
func (b *RecordBuilder) WithVersions(current, latest string) *RecordBuilder {
	b.rec.CurrentVersion = current
	b.rec.LatestVersion = latest
	return b
}

// Build returns the built record.
//
// Returns:
//   - packages.PackageRecord: The configured record
func (b *RecordBuilder) Build() packages.PackageRecord {
	return b.rec
}

// Records builds one default record per name.
//
// Parameters:
//   - names: Package names
//
// Returns:
//   - []packages.PackageRecord: Records in the given order
func Records(names ...string) []packages.PackageRecord {
	records := make([]packages.PackageRecord, len(names))
	for i, name := range names {
		records[i] = NewRecord(name).Build()
	}
	return records
}

// ResultBuilder provides a fluent API for building test upgrade results.
type ResultBuilder struct {
	res packages.UpgradeResult
}

// NewResult creates a new ResultBuilder for the given record.
//
// The result defaults to a one second successful upgrade.
//
// Parameters:
//   - rec: Package the result is for
//
// Returns:
//   - *ResultBuilder: New builder instance ready for method chaining
func NewResult(rec packages.PackageRecord) *ResultBuilder {
	return &ResultBuilder{
		res: packages.UpgradeResult{
			Package:  rec,
			Status:   constants.StatusSuccess,
			Duration: time.Second,
		},
	}
}

// WithStatus sets the terminal status.
//
// Parameters:
//   - status: One of the constants.Status* values
//
// Returns:
//   - *ResultBuilder: Self for method chaining
func (b *ResultBuilder) WithStatus(status string) *ResultBuilder {
	b.res.Status = status
	return b
}

// WithDuration sets the subprocess wall time.
//
// Parameters:
//   - d: Duration to set
//
// Returns:
//   - *ResultBuilder: Self for method chaining
func (b *ResultBuilder) WithDuration(d time.Duration) *ResultBuilder {
	b.res.Duration = d
	return b
}

// WithError sets the error message.
//
// Parameters:
//   - msg: Trimmed pip output or skip reason
//
// Returns:
//   - *ResultBuilder: Self for method chaining
func (b *ResultBuilder) WithError(msg string) *ResultBuilder {
	b.res.ErrorMessage = msg
	return b
}

// Build returns the built result.
//
// Returns:
//   - packages.UpgradeResult: The configured result
func (b *ResultBuilder) Build() packages.UpgradeResult {
	return b.res
}

// SuccessResult builds a successful result for a default record.
//
// Parameters:
//   - name: Package name
//
// Returns:
//   - packages.UpgradeResult: Success with a one second duration
func SuccessResult(name string) packages.UpgradeResult {
	return NewResult(NewRecord(name).Build()).Build()
}

// FailedResult builds a failed result for a default record.
//
// Parameters:
//   - name: Package name
//   - msg: Error message to carry
//
// Returns:
//   - packages.UpgradeResult: Failed with the given message
func FailedResult(name, msg string) packages.UpgradeResult {
	return NewResult(NewRecord(name).Build()).
		WithStatus(constants.StatusFailed).
		WithError(msg).
		Build()
}
