package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"empty string", "", 0},
		{"ascii string", "numpy", 5},
		{"with checkmark", "done ✓", 6},
		{"wide characters", "日本語", 6},
		{"mixed", "abc日本", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DisplayWidth(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestToWidth(t *testing.T) {
	tests := []struct {
		name     string
		val      string
		width    int
		expected string
	}{
		{"zero width", "pip", 0, "pip"},
		{"negative width", "pip", -1, "pip"},
		{"exact width", "pip", 3, "pip"},
		{"longer than width", "requests", 4, "requests"},
		{"needs padding", "flask", 8, "flask   "},
		{"empty string", "", 4, "    "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToWidth(tt.val, tt.width)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMax(t *testing.T) {
	tests := []struct {
		name     string
		values   []int
		expected int
	}{
		{"empty", []int{}, 0},
		{"single value", []int{5}, 5},
		{"multiple values", []int{1, 5, 3}, 5},
		{"negative values", []int{-1, -5, -3}, -1},
		{"mixed", []int{-1, 0, 5, 3}, 5},
		{"first is max", []int{10, 5, 3}, 10},
		{"last is max", []int{1, 2, 10}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Max(tt.values...)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		noun     string
		expected string
	}{
		{"zero", 0, "package", "0 packages"},
		{"one", 1, "package", "1 package"},
		{"many", 7, "package", "7 packages"},
		{"one failure", 1, "failure", "1 failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Plural(tt.count, tt.noun)
			assert.Equal(t, tt.expected, result)
		})
	}
}
