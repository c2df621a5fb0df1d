package utils

import (
	"strings"

	"golang.org/x/mod/semver"

	"github.com/ajxudir/pipup/pkg/constants"
)

// Upgrade magnitude labels reported for outdated packages.
//
// The magnitude compares the release segments of the installed and latest
// versions. Pre-release and post-release suffixes (rc1, .post1, .dev0) are
// ignored for classification purposes.
const (
	// UpgradeMajor indicates the latest version changes the major release segment.
	UpgradeMajor = "major"
	// UpgradeMinor indicates the latest version changes the minor release segment.
	UpgradeMinor = "minor"
	// UpgradePatch indicates the latest version changes only the patch segment
	// or a suffix (e.g., 2.0.0rc1 to 2.0.0).
	UpgradePatch = "patch"
	// UpgradeUnknown indicates one of the versions could not be interpreted.
	UpgradeUnknown = ""
)

// CoerceSemver converts a pip version string into canonical semver form.
//
// Pip follows PEP 440, which permits epochs (1!2.0), pre-releases (2.0.0rc1),
// post-releases (4.0.0.post1), dev builds (3.0.0.dev1), local segments
// (2.1.0+cu118), and calendar versions (2024.1.15). Semver comparison only
// needs the leading release segments, so the coercion:
//   - Step 1: Trims whitespace and rejects empty or placeholder values
//   - Step 2: Drops the epoch prefix and any local version segment
//   - Step 3: Collects leading numeric dot-separated release segments,
//     truncating the first segment that carries a letter suffix
//   - Step 4: Pads to three segments and canonicalizes with a "v" prefix
//
// Parameters:
//   - version: The pip version string to coerce (e.g., "2.0.0rc1", "1.26")
//
// Returns:
//   - string: Canonical semver string (e.g., "v2.0.0"); empty string if no
//     numeric release segment could be extracted
func CoerceSemver(version string) string {
	cleaned := strings.TrimSpace(version)
	if cleaned == "" || cleaned == constants.PlaceholderNA {
		return ""
	}

	if idx := strings.Index(cleaned, "!"); idx >= 0 {
		cleaned = cleaned[idx+1:]
	}
	if idx := strings.Index(cleaned, "+"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	cleaned = strings.TrimPrefix(cleaned, "v")
	cleaned = strings.TrimPrefix(cleaned, "V")

	parts := releaseSegments(cleaned)
	if len(parts) == 0 {
		return ""
	}
	if len(parts) > 3 {
		parts = parts[:3]
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}

	candidate := "v" + strings.Join(parts, ".")
	if !semver.IsValid(candidate) {
		return ""
	}
	return semver.Canonical(candidate)
}

// releaseSegments extracts the leading numeric segments of a version string.
//
// Segments are split on dots and hyphens. Collection stops at the first
// segment that is not purely numeric; if that segment starts with digits
// (e.g., "0rc1"), its numeric prefix is kept as the final segment.
//
// Parameters:
//   - version: Version string without epoch or local segment
//
// Returns:
//   - []string: Leading numeric segments (e.g., "2.0.0rc1" yields ["2", "0", "0"])
func releaseSegments(version string) []string {
	fields := strings.FieldsFunc(version, func(r rune) bool {
		return r == '.' || r == '-'
	})

	segments := make([]string, 0, len(fields))
	for _, field := range fields {
		digits := leadingDigits(field)
		if digits == "" {
			break
		}
		segments = append(segments, digits)
		if digits != field {
			break
		}
	}
	return segments
}

// leadingDigits returns the leading run of ASCII digits in a string.
//
// Parameters:
//   - val: The string to scan
//
// Returns:
//   - string: The digit prefix, or empty string if val does not start with a digit
func leadingDigits(val string) string {
	for i, r := range val {
		if r < '0' || r > '9' {
			return val[:i]
		}
	}
	return val
}

// ClassifyUpgrade reports the magnitude of an upgrade between two pip versions.
//
// It performs the following operations:
//   - Step 1: Coerces both versions to canonical semver
//   - Step 2: Returns UpgradeUnknown when either version cannot be interpreted
//     or the latest version does not sort after the current one
//   - Step 3: Compares major, then major.minor segments to pick the magnitude
//   - Step 4: Falls back to UpgradePatch for any remaining difference,
//     including suffix-only bumps whose release segments coerce equal
//
// Parameters:
//   - current: The installed version (e.g., "1.24.0")
//   - latest: The newest available version (e.g., "2.0.1")
//
// Returns:
//   - string: One of UpgradeMajor, UpgradeMinor, UpgradePatch, or UpgradeUnknown
func ClassifyUpgrade(current, latest string) string {
	cur := CoerceSemver(current)
	lat := CoerceSemver(latest)
	if cur == "" || lat == "" {
		return UpgradeUnknown
	}
	if semver.Compare(lat, cur) < 0 {
		return UpgradeUnknown
	}

	if semver.Major(lat) != semver.Major(cur) {
		return UpgradeMajor
	}
	if semver.MajorMinor(lat) != semver.MajorMinor(cur) {
		return UpgradeMinor
	}
	return UpgradePatch
}
