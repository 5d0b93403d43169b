package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/amanlaunch/internal/launcher"
	"github.com/Aman-CERP/amanlaunch/internal/ui"
)

func newStatusCmd(root *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show index and crawl status",
		Long: `Display information about the launcher including:
  - Whether a crawl is running here or in another process
  - Number of indexed file names, files and applications
  - Workspaces, custom commands and history entries
  - Last crawl time and on-disk index size`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := root.openService()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := ui.NewStatusRenderer(out, ui.DetectNoColor() || !ui.IsTTY(out))
			info := statusInfo(svc.Status())
			if jsonOutput {
				return r.RenderJSON(info)
			}
			return r.Render(info)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// statusInfo flattens the service status for display.
func statusInfo(st launcher.Status) ui.StatusInfo {
	return ui.StatusInfo{
		Platform:        st.Platform,
		DataDir:         st.DataDir,
		State:           st.Progress.Status,
		Stage:           st.Progress.Stage,
		ErrorMessage:    st.Progress.ErrorMessage,
		LockedElsewhere: st.LockedElsewhere,
		FileNames:       st.Files.Names,
		FileLocators:    st.Files.Locators,
		Applications:    st.Apps.Names,
		Workspaces:      st.Workspaces,
		Commands:        st.Commands,
		HistorySize:     st.History,
		LastIndexed:     st.LastIndexed,
		IndexBytes:      st.IndexBytes,
	}
}
