package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pipup/pkg/config"
	"github.com/ajxudir/pipup/pkg/errors"
	"github.com/ajxudir/pipup/pkg/verbose"
)

var (
	configShowDefaultsFlag bool
	configInitFlag         bool
	configPathFlag         string
)

var writeFileFunc = os.WriteFile

// resolveBaseConfiguration builds the defaults-plus-file configuration layer.
//
// Profile and flag layers are applied on top by the individual commands;
// list and outdated stop at this layer.
//
// Parameters:
//   - configPath: Path from -c/--config, or empty to auto-discover
//
// Returns:
//   - *config.RunConfiguration: Defaults overlaid with the config file
//   - error: *errors.ExitError with ExitConfigError when the file is
//     unreadable or malformed
func resolveBaseConfiguration(configPath string) (*config.RunConfiguration, error) {
	rc := config.NewRunConfiguration()

	fileCfg, loadedPath, err := config.LoadFile(configPath, "")
	if err != nil {
		verbose.Infof("Exit code %d (config error): %v", errors.ExitConfigError, err)
		return nil, errors.NewExitError(errors.ExitConfigError, err)
	}
	if loadedPath != "" {
		verbose.Printf("Applying config file %s", loadedPath)
	}
	fileCfg.ApplyTo(rc)

	return rc, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create configuration",
	Long: `Show the effective configuration or create a starter config file.

Without flags, prints the effective configuration: built-in defaults overlaid
with the config file (explicit -c path, else .pipup.yaml in the working
directory, else in the home directory). Profile and command-line flag layers
are applied per run and are not part of this view.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowDefaultsFlag, "show-defaults", false, "Show built-in defaults, ignoring any config file")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Create a .pipup.yaml template in the current directory")
	configCmd.Flags().StringVarP(&configPathFlag, "config", "c", "", "Config file path")
}

// runConfig executes the config command with the specified flags.
//
// Behavior depends on flags:
//   - --init: Creates a .pipup.yaml template file
//   - --show-defaults: Displays the built-in defaults
//   - default: Displays the effective defaults-plus-file configuration
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments
//
// Returns:
//   - error: Returns error on load or file operation failure
func runConfig(cmd *cobra.Command, args []string) error {
	if configInitFlag {
		return createConfigTemplate()
	}

	out := outWriter()

	if configShowDefaultsFlag {
		yamlText, err := config.NewRunConfiguration().EffectiveYAML()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Default configuration:")
		fmt.Fprintln(out)
		fmt.Fprint(out, yamlText)
		return nil
	}

	rc, err := resolveBaseConfiguration(configPathFlag)
	if err != nil {
		return err
	}

	yamlText, err := rc.EffectiveYAML()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Effective configuration:")
	fmt.Fprintln(out)
	fmt.Fprint(out, yamlText)
	return nil
}

// createConfigTemplate creates a new .pipup.yaml template file.
//
// The template is created in the current directory. Fails if a config
// file already exists at that location.
//
// Returns:
//   - error: Returns error if file exists or cannot be created
func createConfigTemplate() error {
	configPath := config.DefaultConfigName
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	// 0600: config may name private venv paths
	if err := writeFileFunc(configPath, []byte(config.FileTemplate), 0600); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Fprintf(outWriter(), "Created configuration template: %s\n", configPath)
	return nil
}
