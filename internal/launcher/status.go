package launcher

import (
	"log/slog"
	"os"
	"time"

	"github.com/Aman-CERP/amanlaunch/internal/async"
	"github.com/Aman-CERP/amanlaunch/internal/index"
	"github.com/Aman-CERP/amanlaunch/internal/telemetry"
)

// Status describes the service for status commands and the MCP server.
type Status struct {
	Platform string                      `json:"platform"`
	DataDir  string                      `json:"data_dir"`
	Progress async.IndexProgressSnapshot `json:"progress"`
	// LockedElsewhere is set when another process holds the crawl lock.
	LockedElsewhere bool        `json:"locked_elsewhere"`
	Files           index.Stats `json:"files"`
	Apps            index.Stats `json:"apps"`
	Workspaces      int         `json:"workspaces"`
	Commands        int         `json:"commands"`
	History         int         `json:"history"`
	// LastIndexed is when the file index was last written.
	LastIndexed time.Time `json:"last_indexed,omitzero"`
	// IndexBytes is the on-disk size of both index files.
	IndexBytes int64 `json:"index_bytes"`
	// Queries covers queries answered by this process since it started.
	Queries telemetry.Snapshot `json:"queries"`
}

// Status reports crawl progress and index statistics.
func (s *Service) Status() Status {
	st := Status{
		Platform: s.platform.Name(),
		DataDir:  s.cfg.DataDir,
		Progress: s.indexer.Progress().Snapshot(),
		Files:    s.files.Load().Stats(),
		Apps:     s.apps.Load().Stats(),
		Queries:  s.metrics.Snapshot(),
	}
	st.LockedElsewhere = !s.indexer.IsRunning() && async.LockHeld(s.cfg.DataDir)

	if s.workspaces != nil {
		if ws, err := s.workspaces.ListWorkspaces(); err != nil {
			slog.Warn("workspaces_unavailable", slog.String("error", err.Error()))
		} else {
			st.Workspaces = len(ws)
		}
	}
	if s.commands != nil {
		if cmds, err := s.commands.ListCommands(); err != nil {
			slog.Warn("commands_unavailable", slog.String("error", err.Error()))
		} else {
			st.Commands = len(cmds)
		}
	}

	s.histMu.Lock()
	st.History = s.history.Len()
	s.histMu.Unlock()

	for _, kind := range []index.Kind{index.KindFile, index.KindApp} {
		info, err := os.Stat(s.cfg.IndexPath(kind))
		if err != nil {
			continue
		}
		st.IndexBytes += info.Size()
		if kind == index.KindFile {
			st.LastIndexed = info.ModTime()
		}
	}
	return st
}
