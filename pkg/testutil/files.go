package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to a file under dir and returns its path.
//
// The test fails immediately when the write fails, so callers never need to
// check an error.
//
// Parameters:
//   - t: Testing instance for helper marking and failure reporting
//   - dir: Directory the file goes into (usually t.TempDir())
//   - name: File name within dir
//   - content: File content
//
// Returns:
//   - string: Absolute path of the written file
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteConfigFile writes a .pipup.yaml with the given content under dir.
//
// Parameters:
//   - t: Testing instance for helper marking and failure reporting
//   - dir: Directory the config goes into (usually t.TempDir())
//   - content: YAML content
//
// Returns:
//   - string: Absolute path of the written config file
func WriteConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	return WriteFile(t, dir, ".pipup.yaml", content)
}
