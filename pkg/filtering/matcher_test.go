package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMatch verifies pattern matching over normalized package names.
func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		pattern string
		want    bool
	}{
		{"exact match", "numpy", "numpy", true},
		{"exact mismatch", "numpy", "pandas", false},
		{"case insensitive", "Pillow", "pillow", true},
		{"underscore equals dash", "typing_extensions", "typing-extensions", true},
		{"dot equals dash", "zope.interface", "zope-interface", true},
		{"pattern normalized too", "types-requests", "Types_Requests", true},
		{"star prefix pattern", "types-requests", "types-*", true},
		{"star prefix mismatch", "requests", "types-*", false},
		{"star suffix pattern", "django-storages", "*-storages", true},
		{"star alone", "anything", "*", true},
		{"question mark", "py3c", "py?c", true},
		{"question mark mismatch", "py33c", "py?c", false},
		{"star in middle", "django-debug-toolbar", "django-*-toolbar", true},
		{"empty pattern", "numpy", "", false},
		{"empty name exact", "", "numpy", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.pkg, tt.pattern))
		})
	}
}

// TestMatchAny verifies first-match reporting across pattern lists.
func TestMatchAny(t *testing.T) {
	t.Run("reports first matching pattern", func(t *testing.T) {
		ok, pattern := MatchAny("types-requests", []string{"numpy", "types-*", "*"})
		assert.True(t, ok)
		assert.Equal(t, "types-*", pattern)
	})

	t.Run("no match", func(t *testing.T) {
		ok, pattern := MatchAny("requests", []string{"numpy", "pandas"})
		assert.False(t, ok)
		assert.Equal(t, "", pattern)
	})

	t.Run("empty pattern list", func(t *testing.T) {
		ok, _ := MatchAny("requests", nil)
		assert.False(t, ok)
	})
}

// TestWildcardToRegex verifies the wildcard translation anchors and escapes.
func TestWildcardToRegex(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"types-*", "^types-.*$"},
		{"py?c", "^py.c$"},
		{"*", "^.*$"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, wildcardToRegex(tt.pattern))
		})
	}
}
