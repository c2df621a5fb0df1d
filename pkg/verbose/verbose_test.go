package verbose

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// resetState restores the package to its default disabled state after a test.
func resetState(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		Disable()
		SetWriter(nil)
	})
}

// TestEnableDisable tests the behavior of Enable, Disable, and IsEnabled.
//
// It verifies:
//   - The default state is disabled
//   - Enable and Disable toggle the state
func TestEnableDisable(t *testing.T) {
	resetState(t)

	assert.False(t, IsEnabled())
	Enable()
	assert.True(t, IsEnabled())
	Disable()
	assert.False(t, IsEnabled())
}

// TestPrintf tests the behavior of Printf.
//
// It verifies:
//   - Messages carry the [DEBUG] prefix when enabled
//   - Nothing is written when disabled
func TestPrintf(t *testing.T) {
	resetState(t)

	var buf bytes.Buffer
	SetWriter(&buf)

	Printf("hidden %d", 1)
	assert.Empty(t, buf.String())

	Enable()
	Printf("upgrading %s", "numpy")
	assert.Equal(t, "[DEBUG] upgrading numpy\n", buf.String())
}

// TestInfof tests the behavior of Info and Infof.
//
// It verifies:
//   - Both variants write [DEBUG]-prefixed lines when enabled
func TestInfof(t *testing.T) {
	resetState(t)

	var buf bytes.Buffer
	SetWriter(&buf)
	Enable()

	Info("plain")
	Infof("formatted %d", 2)

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] plain\n")
	assert.Contains(t, out, "[DEBUG] formatted 2\n")
}

// TestCommandExec tests the behavior of CommandExec.
//
// It verifies:
//   - The full argv is joined and logged
func TestCommandExec(t *testing.T) {
	resetState(t)

	var buf bytes.Buffer
	SetWriter(&buf)
	Enable()

	CommandExec([]string{"pip3", "install", "--upgrade", "numpy"})
	assert.Equal(t, "[DEBUG] Executing: pip3 install --upgrade numpy\n", buf.String())
}

// TestCommandResult tests the behavior of CommandResult.
//
// It verifies:
//   - Success and failure lines include the exit status
//   - Long output is truncated to a preview with a continuation marker
func TestCommandResult(t *testing.T) {
	resetState(t)

	t.Run("success", func(t *testing.T) {
		var buf bytes.Buffer
		SetWriter(&buf)
		Enable()

		CommandResult("pip3 install --upgrade numpy", 0, "")
		assert.Contains(t, buf.String(), "Command succeeded")
	})

	t.Run("failure with short output", func(t *testing.T) {
		var buf bytes.Buffer
		SetWriter(&buf)
		Enable()

		CommandResult("pip3 install --upgrade numpy", 1, "line1\nline2")
		out := buf.String()
		assert.Contains(t, out, "Command failed (exit 1)")
		assert.Contains(t, out, "| line1")
		assert.Contains(t, out, "| line2")
	})

	t.Run("long output is truncated", func(t *testing.T) {
		var buf bytes.Buffer
		SetWriter(&buf)
		Enable()

		CommandResult("pip3 check", 1, strings.Repeat("problem\n", 10))
		assert.Contains(t, buf.String(), "more lines")
	})
}

// TestPackageState tests the behavior of PackageState.
//
// It verifies:
//   - Lifecycle transitions are logged with package name and state
func TestPackageState(t *testing.T) {
	resetState(t)

	var buf bytes.Buffer
	SetWriter(&buf)
	Enable()

	PackageState("requests", "running")
	assert.Equal(t, "[DEBUG] Package 'requests' entered state: running\n", buf.String())
}

// TestTruncate tests the behavior of truncate.
//
// It verifies:
//   - Short strings pass through unchanged
//   - Long strings end with an ellipsis at the limit
func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	got := truncate(strings.Repeat("x", 100), 10)
	assert.Len(t, got, 10)
	assert.True(t, strings.HasSuffix(got, "..."))
}
