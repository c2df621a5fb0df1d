package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/pipup/pkg/config"
	"github.com/ajxudir/pipup/pkg/errors"
)

// flagSetting is one explicitly set flag for a resolution test.
type flagSetting struct {
	name  string
	value string
}

// resolveWithFlags runs resolveRunConfiguration with the given flags set.
//
// The working directory and HOME are pointed at empty directories so only
// the flags given here participate in resolution. Set flags go through the
// pflag Set path, which marks them Changed exactly like command-line parsing.
//
// Parameters:
//   - t: Testing instance
//   - settings: Flags to set, in order
//
// Returns:
//   - *config.RunConfiguration: Resolved configuration
//   - error: Resolution error
func resolveWithFlags(t *testing.T, settings ...flagSetting) (*config.RunConfiguration, error) {
	t.Helper()

	resetCommandFlagsToDefaults()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(resetCommandFlagsToDefaults)

	for _, s := range settings {
		require.NoError(t, upgradeCmd.Flags().Set(s.name, s.value))
	}
	return resolveRunConfiguration(upgradeCmd)
}

// TestResolveRunConfigurationDefaults tests resolution with nothing set.
//
// It verifies:
//   - Built-in defaults survive untouched
func TestResolveRunConfigurationDefaults(t *testing.T) {
	rc, err := resolveWithFlags(t)

	require.NoError(t, err)
	assert.Equal(t, 10, rc.MaxWorkers)
	assert.Equal(t, 300, rc.TimeoutSeconds)
	assert.False(t, rc.ContinueOnError)
	assert.False(t, rc.Batch)
	assert.False(t, rc.Interactive)
	assert.False(t, rc.DryRun)
	assert.False(t, rc.SkipChecks)
	assert.Empty(t, rc.Include)
	assert.Empty(t, rc.Exclude)
}

// TestResolveRunConfigurationConfigFile tests the config file layer.
//
// It verifies:
//   - File values overlay the defaults
//   - File excludes are permanent and merge with flag excludes
func TestResolveRunConfigurationConfigFile(t *testing.T) {
	resetCommandFlagsToDefaults()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(resetCommandFlagsToDefaults)
	writeConfigFile(t, dir, "max_workers: 4\ntimeout: 60\ncontinue_on_error: true\nexclude:\n  - torch\n")

	require.NoError(t, upgradeCmd.Flags().Set("exclude", "numpy"))
	rc, err := resolveRunConfiguration(upgradeCmd)

	require.NoError(t, err)
	assert.Equal(t, 4, rc.MaxWorkers)
	assert.Equal(t, 60, rc.TimeoutSeconds)
	assert.True(t, rc.ContinueOnError)
	assert.Equal(t, []string{"torch", "numpy"}, rc.Exclude)
}

// TestResolveRunConfigurationProfiles tests the --quick and --safe profiles.
//
// It verifies:
//   - Each profile applies its baseline over defaults and file values
//   - Explicitly set flags still win over the profile
//   - Combining both profiles is a configuration error
func TestResolveRunConfigurationProfiles(t *testing.T) {
	t.Run("quick baseline", func(t *testing.T) {
		rc, err := resolveWithFlags(t, flagSetting{"quick", "true"})

		require.NoError(t, err)
		assert.Equal(t, 20, rc.MaxWorkers)
		assert.Equal(t, 120, rc.TimeoutSeconds)
		assert.True(t, rc.ContinueOnError)
	})

	t.Run("safe baseline", func(t *testing.T) {
		rc, err := resolveWithFlags(t, flagSetting{"safe", "true"})

		require.NoError(t, err)
		assert.Equal(t, 1, rc.MaxWorkers)
		assert.Equal(t, 900, rc.TimeoutSeconds)
		assert.False(t, rc.ContinueOnError)
	})

	t.Run("profile beats config file", func(t *testing.T) {
		resetCommandFlagsToDefaults()
		dir := t.TempDir()
		chdir(t, dir)
		t.Setenv("HOME", t.TempDir())
		t.Cleanup(resetCommandFlagsToDefaults)
		writeConfigFile(t, dir, "max_workers: 4\n")

		require.NoError(t, upgradeCmd.Flags().Set("quick", "true"))
		rc, err := resolveRunConfiguration(upgradeCmd)

		require.NoError(t, err)
		assert.Equal(t, 20, rc.MaxWorkers)
	})

	t.Run("explicit flags beat profile", func(t *testing.T) {
		rc, err := resolveWithFlags(t,
			flagSetting{"quick", "true"},
			flagSetting{"max-workers", "3"},
			flagSetting{"timeout", "45"},
			flagSetting{"continue-on-error", "false"},
		)

		require.NoError(t, err)
		assert.Equal(t, 3, rc.MaxWorkers)
		assert.Equal(t, 45, rc.TimeoutSeconds)
		assert.False(t, rc.ContinueOnError)
	})

	t.Run("quick and safe conflict", func(t *testing.T) {
		_, err := resolveWithFlags(t,
			flagSetting{"quick", "true"},
			flagSetting{"safe", "true"},
		)

		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.Contains(t, err.Error(), "mutually exclusive")
	})
}

// TestResolveRunConfigurationLegacyFlags tests the deprecated flag mappings.
//
// It verifies:
//   - --workers feeds max-workers unless --max-workers itself was set
//   - --no-concurrent forces sequential dispatch but loses to --max-workers
//   - --skip appends to the excludes
func TestResolveRunConfigurationLegacyFlags(t *testing.T) {
	t.Run("workers maps to max-workers", func(t *testing.T) {
		rc, err := resolveWithFlags(t, flagSetting{"workers", "7"})

		require.NoError(t, err)
		assert.Equal(t, 7, rc.MaxWorkers)
	})

	t.Run("max-workers beats workers", func(t *testing.T) {
		rc, err := resolveWithFlags(t,
			flagSetting{"workers", "7"},
			flagSetting{"max-workers", "3"},
		)

		require.NoError(t, err)
		assert.Equal(t, 3, rc.MaxWorkers)
	})

	t.Run("no-concurrent forces sequential", func(t *testing.T) {
		rc, err := resolveWithFlags(t, flagSetting{"no-concurrent", "true"})

		require.NoError(t, err)
		assert.Equal(t, 1, rc.MaxWorkers)
	})

	t.Run("max-workers beats no-concurrent", func(t *testing.T) {
		rc, err := resolveWithFlags(t,
			flagSetting{"no-concurrent", "true"},
			flagSetting{"max-workers", "4"},
		)

		require.NoError(t, err)
		assert.Equal(t, 4, rc.MaxWorkers)
	})

	t.Run("skip appends to excludes", func(t *testing.T) {
		rc, err := resolveWithFlags(t,
			flagSetting{"exclude", "numpy"},
			flagSetting{"skip", "torch"},
		)

		require.NoError(t, err)
		assert.Equal(t, []string{"numpy", "torch"}, rc.Exclude)
	})
}

// TestResolveRunConfigurationInteractive tests the interactive worker override.
//
// It verifies:
//   - Interactive mode forces sequential dispatch
//   - The override wins even over an explicit --max-workers
func TestResolveRunConfigurationInteractive(t *testing.T) {
	t.Run("forces one worker", func(t *testing.T) {
		rc, err := resolveWithFlags(t, flagSetting{"interactive", "true"})

		require.NoError(t, err)
		assert.True(t, rc.Interactive)
		assert.Equal(t, 1, rc.MaxWorkers)
	})

	t.Run("wins over explicit max-workers", func(t *testing.T) {
		rc, err := resolveWithFlags(t,
			flagSetting{"interactive", "true"},
			flagSetting{"max-workers", "8"},
		)

		require.NoError(t, err)
		assert.Equal(t, 1, rc.MaxWorkers)
	})
}

// TestResolveRunConfigurationValidation tests rejection of contradictory values.
//
// It verifies:
//   - Zero workers, negative timeouts, and interactive batch mode all map to
//     the configuration error exit code
func TestResolveRunConfigurationValidation(t *testing.T) {
	t.Run("zero workers", func(t *testing.T) {
		_, err := resolveWithFlags(t, flagSetting{"max-workers", "0"})

		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.Contains(t, err.Error(), "max-workers must be at least 1")
	})

	t.Run("negative timeout", func(t *testing.T) {
		_, err := resolveWithFlags(t, flagSetting{"timeout", "-5"})

		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.Contains(t, err.Error(), "timeout must be 0 or positive")
	})

	t.Run("interactive batch", func(t *testing.T) {
		_, err := resolveWithFlags(t,
			flagSetting{"interactive", "true"},
			flagSetting{"batch", "true"},
		)

		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.Contains(t, err.Error(), "cannot be combined with --batch")
	})

	t.Run("zero timeout disables the limit", func(t *testing.T) {
		rc, err := resolveWithFlags(t, flagSetting{"timeout", "0"})

		require.NoError(t, err)
		assert.Equal(t, 0, rc.TimeoutSeconds)
	})
}

// TestResolveRunConfigurationPassthrough tests the remaining flag passthroughs.
//
// It verifies:
//   - Selection, environment, and mode flags land on the configuration
func TestResolveRunConfigurationPassthrough(t *testing.T) {
	rc, err := resolveWithFlags(t,
		flagSetting{"pip", "/opt/py/bin/pip"},
		flagSetting{"venv", "/opt/venv"},
		flagSetting{"include", "numpy,req*"},
		flagSetting{"import", "selection.json"},
		flagSetting{"export", "outdated.yaml"},
		flagSetting{"dry-run", "true"},
		flagSetting{"batch", "true"},
		flagSetting{"skip-checks", "true"},
	)

	require.NoError(t, err)
	assert.Equal(t, "/opt/py/bin/pip", rc.Pip)
	assert.Equal(t, "/opt/venv", rc.Venv)
	assert.Equal(t, []string{"numpy", "req*"}, rc.Include)
	assert.Equal(t, "selection.json", rc.ImportPath)
	assert.Equal(t, "outdated.yaml", rc.ExportPath)
	assert.True(t, rc.DryRun)
	assert.True(t, rc.Batch)
	assert.True(t, rc.SkipChecks)
}
