// Package config handles run configuration for pipup.
// Options resolve in a fixed precedence order: built-in defaults, then the
// optional YAML config file, then a profile (--quick or --safe), then
// explicitly set command-line flags. The resolved RunConfiguration is
// validated once and read-only afterwards.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/pipup/pkg/constants"
)

// RunConfiguration holds the fully resolved options for one invocation.
//
// The YAML tags double as the rendering schema for `pipup config`, which
// prints the effective configuration after precedence resolution.
//
// Fields:
//   - Pip: Explicit pip executable (empty means resolve via venv or PATH)
//   - Venv: Virtualenv directory whose interpreter is used
//   - MaxWorkers: Worker pool size for per-package dispatch
//   - TimeoutSeconds: Per-subprocess budget in seconds; 0 disables the timeout
//   - Batch: Upgrade all selected packages with a single pip command
//   - ContinueOnError: Keep dispatching after a failed upgrade
//   - Interactive: Prompt per package before upgrading
//   - DryRun: Plan only; never invoke pip install
//   - Include: Restrict selection to matching names (wildcards allowed)
//   - Exclude: Remove matching names from selection (wildcards allowed)
//   - ImportPath: Restrict selection to a previously exported list
//   - ExportPath: Write the pre-upgrade outdated list to this file
//   - SkipChecks: Skip the post-upgrade `pip check` verification
type RunConfiguration struct {
	Pip             string   `yaml:"pip,omitempty"`
	Venv            string   `yaml:"venv,omitempty"`
	MaxWorkers      int      `yaml:"max_workers"`
	TimeoutSeconds  int      `yaml:"timeout"`
	Batch           bool     `yaml:"batch"`
	ContinueOnError bool     `yaml:"continue_on_error"`
	Interactive     bool     `yaml:"interactive"`
	DryRun          bool     `yaml:"dry_run"`
	Include         []string `yaml:"include,omitempty"`
	Exclude         []string `yaml:"exclude,omitempty"`
	ImportPath      string   `yaml:"import,omitempty"`
	ExportPath      string   `yaml:"export,omitempty"`
	SkipChecks      bool     `yaml:"skip_checks"`
}

// NewRunConfiguration returns a configuration populated with built-in defaults.
//
// Returns:
//   - *RunConfiguration: Defaults (10 workers, 300 second timeout, everything
//     else off) before file, profile, and flag layers are applied
func NewRunConfiguration() *RunConfiguration {
	return &RunConfiguration{
		MaxWorkers:     constants.DefaultMaxWorkers,
		TimeoutSeconds: constants.DefaultTimeoutSeconds,
	}
}

// ApplyQuickProfile overlays the --quick profile baseline.
//
// Quick favors throughput: a wide worker pool, a short timeout, and
// continuing past failures. Explicit flags still override these values.
func (c *RunConfiguration) ApplyQuickProfile() {
	c.MaxWorkers = constants.QuickMaxWorkers
	c.TimeoutSeconds = constants.QuickTimeoutSeconds
	c.ContinueOnError = true
}

// ApplySafeProfile overlays the --safe profile baseline.
//
// Safe favors caution: sequential upgrades, a generous timeout, and
// stopping at the first failure. Explicit flags still override these values.
func (c *RunConfiguration) ApplySafeProfile() {
	c.MaxWorkers = constants.SafeMaxWorkers
	c.TimeoutSeconds = constants.SafeTimeoutSeconds
	c.ContinueOnError = false
}

// Validate checks the resolved configuration for contradictions.
//
// It performs the following operations:
//   - Step 1: Rejects a worker pool smaller than one
//   - Step 2: Rejects a negative timeout
//   - Step 3: Rejects interactive batch mode (prompts are per-package only)
//
// All violations are reported together so the user can fix them in one pass.
//
// Returns:
//   - error: A combined message listing every violation; nil when valid
func (c *RunConfiguration) Validate() error {
	var violations []string

	if c.MaxWorkers < 1 {
		violations = append(violations, fmt.Sprintf("max-workers must be at least 1 (got %d)", c.MaxWorkers))
	}
	if c.TimeoutSeconds < 0 {
		violations = append(violations, fmt.Sprintf("timeout must be 0 or positive (got %d)", c.TimeoutSeconds))
	}
	if c.Interactive && c.Batch {
		violations = append(violations, "--interactive cannot be combined with --batch (confirmation is per-package)")
	}

	if len(violations) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(violations, "; "))
	}
	return nil
}

// EffectiveYAML renders the resolved configuration as YAML.
//
// Returns:
//   - string: YAML document for `pipup config`
//   - error: When marshaling fails
func (c *RunConfiguration) EffectiveYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to render configuration: %w", err)
	}
	return string(data), nil
}
