package config

import (
	"path/filepath"

	"github.com/Aman-CERP/amanlaunch/internal/collab"
	"github.com/Aman-CERP/amanlaunch/internal/history"
	"github.com/Aman-CERP/amanlaunch/internal/index"
)

// IndexPath returns where the index of kind k is stored.
func (c *Config) IndexPath(k index.Kind) string {
	return filepath.Join(c.DataDir, k.FileName())
}

// HistoryPath returns the query history file.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, history.FileName)
}

// WorkspacesPath returns the workspaces file read by the search engine.
func (c *Config) WorkspacesPath() string {
	return filepath.Join(c.DataDir, collab.WorkspacesFile)
}

// CommandsPath returns the custom commands file read by the search engine.
func (c *Config) CommandsPath() string {
	return filepath.Join(c.DataDir, collab.CommandsFile)
}
