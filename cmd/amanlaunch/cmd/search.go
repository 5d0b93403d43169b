package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	amerrors "github.com/Aman-CERP/amanlaunch/internal/errors"
	"github.com/Aman-CERP/amanlaunch/internal/output"
	"github.com/Aman-CERP/amanlaunch/internal/search"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	kind   string
	limit  int
	format string // "text", "json"
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find files, applications, workspaces and commands by name",
		Long: `Search the launcher index by fuzzy name match.

Results are ranked exact > prefix > substring > subsequence, then by kind
(file, application, workspace, command), and the query is added to history.`,
		Example: `  amanlaunch search report
  amanlaunch search term --kind app
  amanlaunch search build --kind workspace,command --limit 5
  amanlaunch search notes --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, root, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "all", "Kinds to search: all, file, app, workspace, command (comma-separated)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 10, "Maximum number of results (0 for all)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runSearch(cmd *cobra.Command, root *rootOptions, query string, opts searchOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return amerrors.ValidationError(fmt.Sprintf("unknown format %q: use text or json", opts.format), nil)
	}
	filter, err := search.ParseFilter(opts.kind)
	if err != nil {
		return err
	}
	if strings.TrimSpace(query) == "" {
		return amerrors.New(amerrors.ErrCodeQueryEmpty, "query must not be blank", nil)
	}

	svc, cfg, err := root.openService()
	if err != nil {
		return err
	}

	limit := opts.limit
	if cfg.Search.MaxResults > 0 && (limit <= 0 || limit > cfg.Search.MaxResults) {
		limit = cfg.Search.MaxResults
	}

	start := time.Now()
	results, err := svc.Query(cmd.Context(), query, filter, limit)
	if err != nil {
		return err
	}
	slog.Info("search_complete",
		slog.String("query", query),
		slog.String("kind", filter.String()),
		slog.Int("results", len(results)),
		slog.Duration("duration", time.Since(start)))

	out := output.New(cmd.OutOrStdout())
	if opts.format == "json" {
		if results == nil {
			results = []search.Result{}
		}
		return out.JSON(results)
	}

	out.Results(query, results)
	if svc.Files().Len() == 0 && svc.Apps().Len() == 0 {
		out.Newline()
		out.Status("💡", "The index is empty. Run 'amanlaunch index' first.")
	}
	return nil
}
