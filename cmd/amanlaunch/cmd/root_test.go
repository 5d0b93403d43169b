package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME, the user config and the data directory at a temp
// dir and returns the data directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, v := range []string{"AMANLAUNCH_DATA_DIR", "AMANLAUNCH_ROOTS", "AMANLAUNCH_HISTORY_SIZE",
		"AMANLAUNCH_MAX_FILE_SIZE", "AMANLAUNCH_LOG_LEVEL"} {
		t.Setenv(v, "")
	}
	return filepath.Join(home, "data")
}

// run executes the root command with args and returns combined output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestRootCmd_ShowsHelp(t *testing.T) {
	isolate(t)

	out, err := run(t, "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "amanlaunch")
	for _, sub := range []string{"index", "search", "history", "status", "serve", "config", "doctor", "logs", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestRootCmd_Version(t *testing.T) {
	isolate(t)

	out, err := run(t, "--version")

	require.NoError(t, err)
	assert.Contains(t, out, "amanlaunch version")
}

func TestRootCmd_WritesLogFile(t *testing.T) {
	// Given: an isolated home
	dataDir := isolate(t)

	// When: running a command
	_, err := run(t, "history", "--data-dir", dataDir)
	require.NoError(t, err)

	// Then: the log file exists under ~/.amanlaunch/logs
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(home, ".amanlaunch", "logs", "launcher.log"))
	assert.NoError(t, err)
}
