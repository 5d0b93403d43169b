package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	amerrors "github.com/Aman-CERP/amanlaunch/internal/errors"
	"github.com/Aman-CERP/amanlaunch/internal/launcher"
	"github.com/Aman-CERP/amanlaunch/internal/ui"
)

func newIndexCmd(opts *rootOptions) *cobra.Command {
	var (
		roots []string
		noTUI bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Crawl the filesystem and application directories",
		Long: `Crawl every root into the file index and discover installed applications.

Without --root the configured index.roots are used, and without those every
local volume. The previous index stays searchable until the crawl finishes;
an interrupted crawl leaves it untouched.`,
		Example: `  amanlaunch index
  amanlaunch index --root ~/Documents --root ~/Projects
  amanlaunch index --no-tui`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := opts.openService()
			if err != nil {
				return err
			}
			return runIndex(cmd.Context(), cmd, svc, roots, noTUI)
		},
	}

	cmd.Flags().StringSliceVarP(&roots, "root", "r", nil, "Directory to crawl (repeatable)")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Disable TUI mode, use plain text output")

	return cmd
}

func runIndex(ctx context.Context, cmd *cobra.Command, svc *launcher.Service, roots []string, noTUI bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if !svc.Reindex(ctx, roots) {
		return amerrors.New(amerrors.ErrCodeIndexBusy, "a crawl is already running", nil).
			WithSuggestion("Wait for it to finish or check 'amanlaunch status'.")
	}

	renderer := ui.NewRenderer(ui.NewConfig(cmd.OutOrStdout(),
		ui.WithForcePlain(noTUI),
		ui.WithNoColor(ui.DetectNoColor()),
		ui.WithRoots(roots),
	))
	if err := renderer.Start(ctx); err != nil {
		renderer = ui.NewPlainRenderer(ui.NewConfig(cmd.OutOrStdout()))
	}

	ui.Follow(ctx, svc.Progress(), renderer, ui.DefaultFollowInterval)
	if err := svc.Wait(); err != nil {
		renderer.AddError(ui.ErrorEvent{Err: err})
		_ = renderer.Stop()
		return err
	}

	snap := svc.Progress().Snapshot()
	renderer.Complete(ui.CompletionStats{
		Names:    svc.Files().Stats().Names,
		Files:    snap.FilesIndexed,
		Apps:     snap.AppsFound,
		Duration: time.Since(start),
	})
	return renderer.Stop()
}
