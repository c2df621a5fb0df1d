package cmd

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajxudir/pipup/pkg/testutil"
)

// TestPrintVersionOutput tests the behavior of printVersionOutput.
//
// It verifies:
//   - Version output displays all build information
//   - Runtime information is shown when the build target differs
//   - Optional fields are omitted when empty
func TestPrintVersionOutput(t *testing.T) {
	oldVersion := Version
	oldBuildTime := BuildTime
	oldGitCommit := GitCommit
	oldBuildOS := BuildOS
	oldBuildArch := BuildArch
	defer func() {
		Version = oldVersion
		BuildTime = oldBuildTime
		GitCommit = oldGitCommit
		BuildOS = oldBuildOS
		BuildArch = oldBuildArch
	}()

	t.Run("outputs version info", func(t *testing.T) {
		Version = "1.2.3"
		BuildTime = "2026-01-01T00:00:00Z"
		GitCommit = "abc123"
		BuildOS = ""
		BuildArch = ""

		output := testutil.CaptureStdout(t, func() {
			printVersionOutput()
		})

		assert.Contains(t, output, "Version: 1.2.3")
		assert.Contains(t, output, "Date:    2026-01-01T00:00:00Z")
		assert.Contains(t, output, "Git:     abc123")
		assert.Contains(t, output, "Build:")
		assert.Contains(t, output, "Go:")
	})

	t.Run("shows runtime when target differs", func(t *testing.T) {
		Version = "1.0.0"
		BuildTime = ""
		GitCommit = ""
		BuildOS = "impossible_os"
		BuildArch = "impossible_arch"

		output := testutil.CaptureStdout(t, func() {
			printVersionOutput()
		})

		assert.Contains(t, output, "Build:   impossible_os/impossible_arch")
		assert.Contains(t, output, "Runtime:")
	})

	t.Run("omits optional fields when empty", func(t *testing.T) {
		Version = "1.0.0"
		BuildTime = ""
		GitCommit = ""
		BuildOS = ""
		BuildArch = ""

		output := testutil.CaptureStdout(t, func() {
			printVersionOutput()
		})

		assert.NotContains(t, output, "Date:")
		assert.NotContains(t, output, "Git:")
	})
}

// TestVersionCommand tests the behavior of the version subcommand.
//
// It verifies:
//   - The command prints version and build information
func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, stdout, "Version:")
	assert.Contains(t, stdout, "Go:      "+runtime.Version())
}

// TestGetVersion tests the behavior of GetVersion.
//
// It verifies:
//   - The current version string is returned
func TestGetVersion(t *testing.T) {
	oldVersion := Version
	defer func() { Version = oldVersion }()

	Version = "9.9.9"
	assert.Equal(t, "9.9.9", GetVersion())
}

// TestGetBuildTarget tests the behavior of getBuildTarget.
//
// It verifies:
//   - Build-time values are returned when set
//   - Runtime values are the fallback for dev builds
func TestGetBuildTarget(t *testing.T) {
	oldBuildOS := BuildOS
	oldBuildArch := BuildArch
	defer func() {
		BuildOS = oldBuildOS
		BuildArch = oldBuildArch
	}()

	t.Run("uses build values when set", func(t *testing.T) {
		BuildOS = "linux"
		BuildArch = "arm64"

		buildOS, buildArch := getBuildTarget()

		assert.Equal(t, "linux", buildOS)
		assert.Equal(t, "arm64", buildArch)
	})

	t.Run("falls back to runtime values", func(t *testing.T) {
		BuildOS = ""
		BuildArch = ""

		buildOS, buildArch := getBuildTarget()

		assert.Equal(t, runtime.GOOS, buildOS)
		assert.Equal(t, runtime.GOARCH, buildArch)
	})
}
