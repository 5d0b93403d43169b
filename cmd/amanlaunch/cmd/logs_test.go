package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogsCmd_FiltersByLevelAndPattern(t *testing.T) {
	// Given: a log file with mixed levels
	isolate(t)
	path := filepath.Join(t.TempDir(), "launcher.log")
	lines := []string{
		`{"time":"2026-01-02T03:04:05.000Z","level":"INFO","msg":"index_complete","apps":3}`,
		`{"time":"2026-01-02T03:04:06.000Z","level":"WARN","msg":"index_save_failed","kind":"file"}`,
		`{"time":"2026-01-02T03:04:07.000Z","level":"WARN","msg":"history_save_failed"}`,
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	// When: showing warnings that mention the index
	out, err := run(t, "logs", "--file", path, "--level", "warn", "--filter", "index_")

	// Then: only the matching warning is printed
	require.NoError(t, err)
	assert.Contains(t, out, "index_save_failed kind=file")
	assert.NotContains(t, out, "index_complete")
	assert.NotContains(t, out, "history_save_failed")
}

func TestLogsCmd_MissingFile(t *testing.T) {
	isolate(t)

	_, err := run(t, "logs", "--file", filepath.Join(t.TempDir(), "nope.log"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "log file not found")
}

func TestLogsCmd_InvalidPattern(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "launcher.log")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	_, err := run(t, "logs", "--file", path, "--filter", "(")

	require.Error(t, err)
}
