package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/pipup/pkg/verbose"
)

// DefaultConfigName is the config file discovered in the working directory
// and in the user's home directory.
const DefaultConfigName = ".pipup.yaml"

// FileConfig mirrors the YAML config file schema.
//
// Numeric and boolean fields are pointers so that an absent key can be told
// apart from an explicit zero; only keys present in the file override the
// built-in defaults.
//
// Fields:
//   - Pip: Pip executable path or name
//   - Venv: Virtualenv directory
//   - MaxWorkers: Worker pool size
//   - Timeout: Per-subprocess budget in seconds
//   - ContinueOnError: Keep dispatching after a failed upgrade
//   - Exclude: Packages permanently held back; merged with flag excludes
type FileConfig struct {
	Pip             string   `yaml:"pip"`
	Venv            string   `yaml:"venv"`
	MaxWorkers      *int     `yaml:"max_workers"`
	Timeout         *int     `yaml:"timeout"`
	ContinueOnError *bool    `yaml:"continue_on_error"`
	Exclude         []string `yaml:"exclude"`
}

// LoadFile loads the config file for this run.
//
// It performs the following operations:
//   - Step 1: An explicit path must exist and parse; failure is an error
//   - Step 2: Otherwise DefaultConfigName is tried in the working directory
//   - Step 3: Then in the user's home directory
//   - Step 4: No file found yields an empty FileConfig
//
// Unknown keys are rejected so typos like "max_worker" fail loudly instead
// of being silently ignored.
//
// Parameters:
//   - configPath: Path from -c/--config, or empty to auto-discover
//   - workDir: Working directory for discovery; "." when empty
//
// Returns:
//   - *FileConfig: Parsed file content, or an empty config when no file exists
//   - string: The path that was loaded; empty when no file was found
//   - error: When an explicit path is unreadable or any found file is malformed
func LoadFile(configPath, workDir string) (*FileConfig, string, error) {
	if configPath != "" {
		cfg, err := parseFile(configPath)
		if err != nil {
			return nil, "", err
		}
		verbose.ConfigLoaded(configPath)
		return cfg, configPath, nil
	}

	if workDir == "" {
		workDir = "."
	}

	local := filepath.Join(workDir, DefaultConfigName)
	if _, err := os.Stat(local); err == nil {
		cfg, err := parseFile(local)
		if err != nil {
			return nil, "", err
		}
		verbose.ConfigLoaded(local)
		return cfg, local, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		global := filepath.Join(home, DefaultConfigName)
		if _, err := os.Stat(global); err == nil {
			cfg, err := parseFile(global)
			if err != nil {
				return nil, "", err
			}
			verbose.ConfigLoaded(global)
			return cfg, global, nil
		}
	}

	verbose.Printf("No config file found, using built-in defaults")
	return &FileConfig{}, "", nil
}

// parseFile reads and strictly decodes one YAML config file.
//
// Parameters:
//   - path: Config file path
//
// Returns:
//   - *FileConfig: Decoded configuration; an empty file decodes to an empty config
//   - error: When the file is unreadable, has invalid YAML, or contains unknown keys
func parseFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyTo overlays the file's values onto a run configuration.
//
// Scalar keys replace the current values; the exclude list is appended so
// packages held back in the config file stay excluded regardless of flags.
//
// Parameters:
//   - rc: The configuration to update in place
func (f *FileConfig) ApplyTo(rc *RunConfiguration) {
	if f.Pip != "" {
		rc.Pip = f.Pip
	}
	if f.Venv != "" {
		rc.Venv = f.Venv
	}
	if f.MaxWorkers != nil {
		rc.MaxWorkers = *f.MaxWorkers
	}
	if f.Timeout != nil {
		rc.TimeoutSeconds = *f.Timeout
	}
	if f.ContinueOnError != nil {
		rc.ContinueOnError = *f.ContinueOnError
	}
	rc.Exclude = append(rc.Exclude, f.Exclude...)
}
