package packages

import "strings"

// NormalizeName converts a distribution name to PEP 503 normalized form.
//
// Pip treats package names case-insensitively and considers "-", "_", and
// "." interchangeable, so "Typing_Extensions" and "typing.extensions" both
// name typing-extensions. Every name comparison in this tool (include and
// exclude matching, import restriction, duplicate detection) goes through
// this normalization.
//
// It performs the following operations:
//   - Step 1: Trims surrounding whitespace
//   - Step 2: Lowercases the name
//   - Step 3: Folds every run of "-", "_", "." characters into a single "-"
//
// Parameters:
//   - name: The distribution name as typed or as pip reports it
//
// Returns:
//   - string: The normalized name; empty string for blank input
func NormalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(trimmed))
	sepRun := false
	for _, r := range strings.ToLower(trimmed) {
		if r == '-' || r == '_' || r == '.' {
			sepRun = true
			continue
		}
		if sepRun {
			b.WriteByte('-')
			sepRun = false
		}
		b.WriteRune(r)
	}
	if sepRun {
		b.WriteByte('-')
	}
	return b.String()
}

// SameName reports whether two distribution names identify the same package
// under PEP 503 normalization.
//
// Parameters:
//   - a: First name to compare
//   - b: Second name to compare
//
// Returns:
//   - bool: true when the normalized forms are equal
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

// NameSet builds a lookup set of normalized names.
//
// Parameters:
//   - names: Names to include; blank entries are dropped
//
// Returns:
//   - map[string]struct{}: Set keyed by normalized name
func NameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		normalized := NormalizeName(name)
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}
