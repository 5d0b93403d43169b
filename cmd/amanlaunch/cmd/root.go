// Package cmd provides the CLI commands for amanlaunch.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/amanlaunch/internal/config"
	"github.com/Aman-CERP/amanlaunch/internal/launcher"
	"github.com/Aman-CERP/amanlaunch/internal/logging"
	"github.com/Aman-CERP/amanlaunch/internal/profiling"
	"github.com/Aman-CERP/amanlaunch/pkg/version"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	debug   bool
	dataDir string
	profile profiling.Options

	loggingCleanup func()
	profiler       *profiling.Session
}

// NewRootCmd creates the root command for the amanlaunch CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "amanlaunch",
		Short: "Fuzzy launcher index for files, applications, workspaces and commands",
		Long: `amanlaunch crawls local volumes and application directories into an
in-memory index and answers fuzzy name queries against it.

Results are ranked exact > prefix > substring > subsequence, and every query
is kept in a bounded history.

Run 'amanlaunch index' once, then 'amanlaunch search <name>'.
'amanlaunch serve' exposes the same index to AI assistants over MCP.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetVersionTemplate("amanlaunch version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging to ~/.amanlaunch/logs/ and stderr")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding indexes and history (default ~/.amanlaunch)")

	cmd.PersistentFlags().StringVar(&opts.profile.CPU, "profile-cpu", "", "Write a CPU profile to this file")
	cmd.PersistentFlags().StringVar(&opts.profile.Heap, "profile-mem", "", "Write a heap profile to this file on exit")
	cmd.PersistentFlags().StringVar(&opts.profile.Trace, "profile-trace", "", "Write an execution trace to this file")

	cmd.PersistentPreRunE = opts.before
	cmd.PersistentPostRunE = opts.after

	cmd.AddCommand(newIndexCmd(opts))
	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newStatusCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newDoctorCmd(opts))
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// before runs ahead of every subcommand.
func (o *rootOptions) before(cmd *cobra.Command, args []string) error {
	if err := o.startLogging(cmd, args); err != nil {
		return err
	}
	if !o.profile.Enabled() {
		return nil
	}
	session, err := profiling.Start(o.profile)
	if err != nil {
		return err
	}
	o.profiler = session
	return nil
}

// after runs once a subcommand returns without error.
func (o *rootOptions) after(cmd *cobra.Command, args []string) error {
	err := o.profiler.Stop()
	o.profiler = nil
	if err != nil {
		slog.Warn("profile_write_failed", slog.String("error", err.Error()))
	}
	return o.stopLogging(cmd, args)
}

// startLogging sends records to the log file. The serve command sets up its
// own logging because stdout and stderr must stay clean for JSON-RPC.
func (o *rootOptions) startLogging(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "serve" {
		return nil
	}

	logCfg := logging.DefaultConfig()
	logCfg.WriteToStderr = false
	if o.debug {
		logCfg = logging.DebugConfig()
	}

	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		// A read-only home must not stop the launcher from working.
		logging.Discard()
		return nil
	}
	o.loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Debug("command_started",
		slog.String("command", cmd.CommandPath()),
		slog.String("version", version.Version))
	return nil
}

// stopLogging flushes and closes the log file.
func (o *rootOptions) stopLogging(_ *cobra.Command, _ []string) error {
	if o.loggingCleanup != nil {
		o.loggingCleanup()
		o.loggingCleanup = nil
	}
	return nil
}

// loadConfig loads the merged configuration for the working directory and
// applies --data-dir.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	return cfg, nil
}

// openService loads the configuration and the persisted indexes.
func (o *rootOptions) openService() (*launcher.Service, *config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	svc, err := launcher.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}
