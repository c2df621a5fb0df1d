package utils

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the display width of a string, accounting for unicode characters.
//
// It measures the visual width of a string as rendered in a terminal, counting
// wide characters (CJK characters, emojis) as two cells so that columns built
// from package names and status icons stay aligned.
//
// Parameters:
//   - val: The string to measure
//
// Returns:
//   - int: The display width in character cells (wide characters count as 2)
func DisplayWidth(val string) int {
	return runewidth.StringWidth(val)
}

// ToWidth pads a string with trailing spaces to a specific display width.
//
// It performs the following operations:
//   - Step 1: Returns the original string if width is <= 0
//   - Step 2: Calculates the current display width (accounting for unicode)
//   - Step 3: Returns the original string if already at or beyond the target width
//   - Step 4: Appends spaces until the target width is reached
//
// Parameters:
//   - val: The string to pad
//   - width: The target display width in character cells (must be > 0 to have effect)
//
// Returns:
//   - string: The padded string, or the original if already wide enough or width <= 0
func ToWidth(val string, width int) string {
	if width <= 0 {
		return val
	}
	current := DisplayWidth(val)
	if current >= width {
		return val
	}
	return val + strings.Repeat(" ", width-current)
}

// Max returns the maximum value from a list of integers.
//
// If no values are provided it returns 0, which suits column-width
// calculations where an empty table collapses to zero-width columns.
//
// Parameters:
//   - values: Variable number of integers to compare
//
// Returns:
//   - int: The maximum value from the input, or 0 if no values provided
func Max(values ...int) int {
	m := 0
	for i, v := range values {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

// Plural formats a count with a noun, appending "s" when the count is not 1.
//
// Parameters:
//   - count: The quantity to report
//   - singular: The singular form of the noun (e.g., "package")
//
// Returns:
//   - string: Formatted string such as "1 package" or "3 packages"
func Plural(count int, singular string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %ss", count, singular)
}
