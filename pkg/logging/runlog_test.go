package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOpenWritesHeader tests that opening a run log writes the run header.
func TestOpenWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipup.log")

	log, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, log.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(content), "==== pipup run "))
	assert.True(t, strings.HasSuffix(string(content), "====\n"))
}

// TestOpenCreatesParentDir tests that missing parent directories are created.
func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nested", "pipup.log")

	log, err := Open(path)
	require.NoError(t, err)
	defer log.Close()

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
	assert.Equal(t, path, log.Path())
}

// TestWriteAppends tests that writes land after the header in order.
func TestWriteAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipup.log")

	log, err := Open(path)
	require.NoError(t, err)

	fmt.Fprintln(log, "upgrading numpy")
	fmt.Fprintln(log, "✓ numpy: upgraded in 3.2s")
	require.NoError(t, log.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "pipup run")
	assert.Equal(t, "upgrading numpy", lines[1])
	assert.Equal(t, "✓ numpy: upgraded in 3.2s", lines[2])
}

// TestReopenAppendsSecondHeader tests that runs accumulate in one file.
func TestReopenAppendsSecondHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipup.log")

	first, err := Open(path)
	require.NoError(t, err)
	fmt.Fprintln(first, "first run")
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	fmt.Fprintln(second, "second run")
	require.NoError(t, second.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(string(content), "==== pipup run"))
	assert.Contains(t, string(content), "first run")
	assert.Contains(t, string(content), "second run")
}

// TestTee tests that Tee mirrors writes to both destinations.
func TestTee(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipup.log")

	log, err := Open(path)
	require.NoError(t, err)

	var primary bytes.Buffer
	tee := log.Tee(&primary)
	fmt.Fprint(tee, "shared line\n")
	require.NoError(t, log.Close())

	assert.Equal(t, "shared line\n", primary.String())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "shared line")
}

// TestNilRunLog tests that a nil log is safe everywhere.
func TestNilRunLog(t *testing.T) {
	var log *RunLog

	n, err := log.Write([]byte("ignored"))
	assert.NoError(t, err)
	assert.Equal(t, 7, n)

	var primary bytes.Buffer
	assert.Equal(t, &primary, log.Tee(&primary))
	assert.Equal(t, "", log.Path())
	assert.NoError(t, log.Close())
}

// TestWriteAfterClose tests that writes after Close are swallowed.
func TestWriteAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipup.log")

	log, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, log.Close())

	n, err := log.Write([]byte("late"))
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.NoError(t, log.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "late")
}
