package cmd

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/amanlaunch/internal/logging"
)

func newLogsCmd() *cobra.Command {
	var (
		lines   int
		level   string
		filter  string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent launcher log entries",
		Example: `  amanlaunch logs
  amanlaunch logs -n 200 --level warn
  amanlaunch logs --filter index_`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := logging.FindLogFile(logFile)
			if err != nil {
				return err
			}

			var pattern *regexp.Regexp
			if filter != "" {
				pattern, err = regexp.Compile(filter)
				if err != nil {
					return fmt.Errorf("invalid filter pattern: %w", err)
				}
			}

			viewer := logging.NewViewer(logging.ViewerConfig{Level: level, Pattern: pattern})
			entries, err := viewer.Tail(path, lines)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Log file: %s\n---\n", path)
			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), viewer.Format(e))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().StringVar(&level, "level", "", "Minimum level to show (debug|info|warn|error)")
	cmd.Flags().StringVar(&filter, "filter", "", "Only show lines matching this pattern (regex)")
	cmd.Flags().StringVar(&logFile, "file", "", "Path to log file")

	return cmd
}
