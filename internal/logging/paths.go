package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.amanlaunch/logs/).
// Falls back to temp directory if home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".amanlaunch", "logs")
	}
	return filepath.Join(home, ".amanlaunch", "logs")
}

// DefaultLogPath returns the launcher log path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "launcher.log")
}

// FindLogFile returns explicit when given, else the default log path, and
// fails when the chosen file does not exist.
func FindLogFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("log file not found: %s", explicit)
		}
		return explicit, nil
	}

	path := DefaultLogPath()
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no log file found. Run a command with --debug or start 'amanlaunch serve' first.\nExpected at: %s", path)
	}
	return path, nil
}
