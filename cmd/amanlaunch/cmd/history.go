package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/amanlaunch/internal/output"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var (
		clear      bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past queries, most recent first",
		Example: `  amanlaunch history
  amanlaunch history --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := root.openService()
			if err != nil {
				return err
			}
			out := output.New(cmd.OutOrStdout())

			if clear {
				if err := svc.ClearHistory(); err != nil {
					return err
				}
				out.Success("History cleared")
				return nil
			}

			queries := svc.History()
			if jsonOutput {
				if queries == nil {
					queries = []string{}
				}
				return out.JSON(queries)
			}
			out.List(queries, "No queries yet.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Forget every recorded query")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
