package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/pipup/pkg/errors"
	"github.com/ajxudir/pipup/pkg/packages"
)

// selectionRecord is the on-disk shape of one entry in a selection file.
//
// Exports always write the canonical current_version key; imports also accept
// pip's native version key so a captured `pip list --outdated --format=json`
// can be fed to --import unmodified.
type selectionRecord struct {
	Name           string `json:"name" yaml:"name"`
	CurrentVersion string `json:"current_version,omitempty" yaml:"current_version,omitempty"`
	Version        string `json:"version,omitempty" yaml:"version,omitempty"`
	LatestVersion  string `json:"latest_version,omitempty" yaml:"latest_version,omitempty"`
}

// WriteRecords writes a selection file for later use with --import.
//
// The extension picks the format: .yaml and .yml write YAML, everything else
// writes indented JSON. The file is written to a temporary path first and
// renamed into place so a crashed run never leaves a half-written file.
//
// Parameters:
//   - path: Destination file path
//   - records: Records to export, written in order
//
// Returns:
//   - error: nil on success; an error describing the failed encode, write,
//     or rename otherwise
func WriteRecords(path string, records []packages.PackageRecord) error {
	data, err := encodeRecords(path, records)
	if err != nil {
		return fmt.Errorf("failed to encode export data: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to finalize export file: %w", err)
	}
	return nil
}

// ReadRecords reads a selection file written by --export.
//
// It performs the following operations:
//   - Step 1: Reads the file; an empty file is a valid empty selection
//   - Step 2: Parses YAML or JSON based on the file extension
//   - Step 3: Drops entries without a name and maps pip's version key to
//     CurrentVersion when the canonical key is absent
//
// Parameters:
//   - path: Selection file path
//
// Returns:
//   - []packages.PackageRecord: Parsed records in file order
//   - error: *errors.ImportError when the file cannot be read or parsed
func ReadRecords(path string) ([]packages.PackageRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewImportError(path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []packages.PackageRecord{}, nil
	}

	var raw []selectionRecord
	if isYAMLPath(path) {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.NewImportError(path, err)
		}
	} else {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.NewImportError(path, err)
		}
	}

	records := make([]packages.PackageRecord, 0, len(raw))
	for _, rec := range raw {
		if strings.TrimSpace(rec.Name) == "" {
			continue
		}
		current := rec.CurrentVersion
		if current == "" {
			current = rec.Version
		}
		records = append(records, packages.PackageRecord{
			Name:           rec.Name,
			CurrentVersion: current,
			LatestVersion:  rec.LatestVersion,
		})
	}
	return records, nil
}

// encodeRecords marshals records in the format implied by the path.
func encodeRecords(path string, records []packages.PackageRecord) ([]byte, error) {
	if isYAMLPath(path) {
		return yaml.Marshal(records)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// isYAMLPath reports whether a path's extension selects YAML encoding.
func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
