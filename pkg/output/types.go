package output

import "encoding/xml"

// ListResult represents the structured output for the list command.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - Summary: Aggregate statistics about the listing
//   - Packages: Installed packages as reported by pip
//   - Warnings: Warning messages generated during the listing (omitted if empty)
type ListResult struct {
	XMLName  xml.Name      `json:"-" xml:"listResult"`
	Summary  ListSummary   `json:"summary" xml:"summary"`
	Packages []ListPackage `json:"packages" xml:"packages>package"`
	Warnings []string      `json:"warnings,omitempty" xml:"warnings>warning,omitempty"`
}

// ListSummary holds summary statistics for list results.
//
// Fields:
//   - TotalPackages: Total number of installed packages
type ListSummary struct {
	TotalPackages int `json:"total_packages" xml:"totalPackages"`
}

// ListPackage represents a package entry in the list output.
//
// Fields:
//   - Name: Package name as pip reports it
//   - Version: Installed version
type ListPackage struct {
	Name    string `json:"name" xml:"name"`
	Version string `json:"version" xml:"version"`
}

// OutdatedResult represents the structured output for the outdated command.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - Summary: Aggregate statistics about the outdated check
//   - Packages: Outdated packages with version and magnitude information
//   - Warnings: Warning messages generated during the check (omitted if empty)
type OutdatedResult struct {
	XMLName  xml.Name          `json:"-" xml:"outdatedResult"`
	Summary  OutdatedSummary   `json:"summary" xml:"summary"`
	Packages []OutdatedPackage `json:"packages" xml:"packages>package"`
	Warnings []string          `json:"warnings,omitempty" xml:"warnings>warning,omitempty"`
}

// OutdatedSummary holds summary statistics for outdated results.
//
// Fields:
//   - TotalPackages: Number of outdated packages after filtering
//   - HasMajor: Number of packages with a major upgrade available
//   - HasMinor: Number of packages with a minor upgrade available
//   - HasPatch: Number of packages with a patch upgrade available
type OutdatedSummary struct {
	TotalPackages int `json:"total_packages" xml:"totalPackages"`
	HasMajor      int `json:"has_major" xml:"hasMajor"`
	HasMinor      int `json:"has_minor" xml:"hasMinor"`
	HasPatch      int `json:"has_patch" xml:"hasPatch"`
}

// OutdatedPackage represents a package entry in the outdated output.
//
// Fields:
//   - Name: Package name as pip reports it
//   - CurrentVersion: Installed version
//   - LatestVersion: Newest version available on the index
//   - Bump: Upgrade magnitude ("major", "minor", "patch"; omitted when
//     the versions cannot be classified)
type OutdatedPackage struct {
	Name           string `json:"name" xml:"name"`
	CurrentVersion string `json:"current_version" xml:"currentVersion"`
	LatestVersion  string `json:"latest_version" xml:"latestVersion"`
	Bump           string `json:"bump,omitempty" xml:"bump,omitempty"`
}
