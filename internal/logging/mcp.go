package logging

import (
	"log/slog"
)

// SetupServeMode initializes logging for the MCP stdio server.
// Records go to the log file only: stdout carries JSON-RPC and anything
// written to it, or to stderr by some clients, corrupts the session.
func SetupServeMode(level string) (func(), error) {
	cfg := DefaultConfig()
	cfg.Level = level
	cfg.WriteToStderr = false

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(logger)
	slog.Info("serve mode logging initialized",
		slog.String("log_file", cfg.FilePath),
		slog.String("level", cfg.Level))
	return cleanup, nil
}
