package filtering

import (
	"regexp"
	"strings"

	"github.com/ajxudir/pipup/pkg/packages"
)

// Match tests a package name against a single pattern.
//
// Both the name and the pattern are normalized first, so matching is
// case-insensitive and treats "-", "_", and "." as the same separator.
// Patterns without wildcards match exactly; * matches any run of
// characters and ? matches a single character.
//
// Parameters:
//   - name: Package name to test
//   - pattern: Exact name or wildcard pattern
//
// Returns:
//   - bool: true if the name matches the pattern
//
// Example:
//
//	filtering.Match("typing_extensions", "typing-extensions") // true
//	filtering.Match("types-requests", "types-*")              // true
//	filtering.Match("numpy", "pandas")                        // false
func Match(name, pattern string) bool {
	name = packages.NormalizeName(name)
	pattern = packages.NormalizeName(pattern)

	if pattern == "" {
		return false
	}

	if !strings.ContainsAny(pattern, "*?") {
		return name == pattern
	}

	re, err := regexp.Compile(wildcardToRegex(pattern))
	if err != nil {
		return false
	}
	return re.MatchString(name)
}

// MatchAny tests a package name against a list of patterns.
//
// Parameters:
//   - name: Package name to test
//   - patterns: Patterns to match against
//
// Returns:
//   - bool: true if the name matches at least one pattern
//   - string: The first pattern that matched, empty when none did
func MatchAny(name string, patterns []string) (bool, string) {
	for _, pattern := range patterns {
		if Match(name, pattern) {
			return true, pattern
		}
	}
	return false, ""
}

// wildcardToRegex converts a wildcard pattern to an anchored regex.
//
// It performs the following conversions:
//   - * becomes .*       (any run of characters)
//   - ? becomes .        (single character)
//   - Other characters are escaped with regexp.QuoteMeta
//
// Parameters:
//   - pattern: The wildcard pattern to convert
//
// Returns:
//   - string: The equivalent anchored regular expression
func wildcardToRegex(pattern string) string {
	var builder strings.Builder
	builder.WriteString("^")

	for _, r := range pattern {
		switch r {
		case '*':
			builder.WriteString(".*")
		case '?':
			builder.WriteString(".")
		default:
			builder.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	builder.WriteString("$")
	return builder.String()
}
