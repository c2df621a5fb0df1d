package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStatusIcon tests the behavior of StatusIcon.
//
// It verifies:
//   - Each terminal status maps to its dedicated icon
//   - Unknown statuses fall back to the skipped bullet
func TestStatusIcon(t *testing.T) {
	t.Run("success maps to checkmark", func(t *testing.T) {
		assert.Equal(t, IconCheckmark, StatusIcon(StatusSuccess))
	})

	t.Run("failed maps to cross", func(t *testing.T) {
		assert.Equal(t, IconCross, StatusIcon(StatusFailed))
	})

	t.Run("timed out maps to timer", func(t *testing.T) {
		assert.Equal(t, IconTimeout, StatusIcon(StatusTimedOut))
	})

	t.Run("skipped maps to bullet", func(t *testing.T) {
		assert.Equal(t, IconSkipped, StatusIcon(StatusSkipped))
	})

	t.Run("unknown status falls back to bullet", func(t *testing.T) {
		assert.Equal(t, IconSkipped, StatusIcon("Bogus"))
	})
}

// TestIsTerminalStatus tests the behavior of IsTerminalStatus.
//
// It verifies:
//   - All four terminal statuses are recognized
//   - Transient or unknown states are rejected
func TestIsTerminalStatus(t *testing.T) {
	for _, status := range AllStatuses {
		assert.True(t, IsTerminalStatus(status), "status %q should be terminal", status)
	}

	assert.False(t, IsTerminalStatus("running"))
	assert.False(t, IsTerminalStatus(""))
	assert.False(t, IsTerminalStatus("success"))
}

// TestAllStatuses tests the canonical status ordering.
//
// It verifies:
//   - The reporting order is Success, Failed, TimedOut, Skipped
func TestAllStatuses(t *testing.T) {
	assert.Equal(t, []string{"Success", "Failed", "TimedOut", "Skipped"}, AllStatuses)
}
