package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/amanlaunch/internal/launcher"
	"github.com/Aman-CERP/amanlaunch/internal/logging"
	"github.com/Aman-CERP/amanlaunch/internal/mcp"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var noAutoIndex bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Long: `Start the Model Context Protocol server on stdin/stdout.

AI assistants can then search the launcher index, check crawl status,
start a crawl and read the query history. When no file index exists yet a
background crawl starts immediately; searches answer from whatever has been
published so far.

Nothing but JSON-RPC is written to stdout. Logs go to
~/.amanlaunch/logs/launcher.log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), root, noAutoIndex)
		},
	}

	cmd.Flags().BoolVar(&noAutoIndex, "no-auto-index", false, "Do not crawl on startup when the index is empty")

	return cmd
}

func runServe(ctx context.Context, root *rootOptions, noAutoIndex bool) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	level := cfg.Logging.Level
	if root.debug {
		level = "debug"
	}

	cleanup, err := logging.SetupServeMode(level)
	if err != nil {
		logging.Discard()
	} else {
		defer cleanup()
	}

	svc, err := launcher.New(cfg)
	if err != nil {
		slog.Error("launcher_open_failed", slog.String("error", err.Error()))
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !noAutoIndex && svc.Files().Len() == 0 {
		slog.Info("index empty, starting background crawl")
		svc.Reindex(context.WithoutCancel(ctx), nil)
	}

	server, err := mcp.NewServer(svc, cfg.Search.MaxResults)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	return server.Serve(ctx)
}
