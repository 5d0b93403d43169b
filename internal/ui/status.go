package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Aman-CERP/amanlaunch/internal/search"
)

// StatusInfo contains index health information.
type StatusInfo struct {
	Platform string `json:"platform"`
	DataDir  string `json:"data_dir"`

	// State is the background indexer status: idle, indexing, ready or error.
	State        string `json:"state"`
	Stage        string `json:"stage,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	// LockedElsewhere is set when another process holds the indexing lock.
	LockedElsewhere bool `json:"locked_elsewhere"`

	FileNames    int `json:"file_names"`
	FileLocators int `json:"file_locators"`
	Applications int `json:"applications"`
	Workspaces   int `json:"workspaces"`
	Commands     int `json:"commands"`
	HistorySize  int `json:"history_size"`

	LastIndexed time.Time `json:"last_indexed,omitzero"`
	IndexBytes  int64     `json:"index_bytes"`
}

// StatusRenderer displays index status.
type StatusRenderer struct {
	out    io.Writer
	styles Styles
}

// NewStatusRenderer creates a status renderer.
func NewStatusRenderer(out io.Writer, noColor bool) *StatusRenderer {
	return &StatusRenderer{out: out, styles: GetStyles(noColor)}
}

// Render displays status info to terminal.
func (r *StatusRenderer) Render(info StatusInfo) error {
	_, _ = fmt.Fprintf(r.out, "%s\n\n", r.styles.Header.Render("Launcher Status ("+info.Platform+")"))

	_, _ = fmt.Fprintf(r.out, "  Indexer:      %s\n", r.renderState(info.State))
	if info.Stage != "" {
		_, _ = fmt.Fprintf(r.out, "  Stage:        %s\n", info.Stage)
	}
	if info.ErrorMessage != "" {
		_, _ = fmt.Fprintf(r.out, "  Last error:   %s\n", r.styles.Error.Render(info.ErrorMessage))
	}
	if info.LockedElsewhere {
		_, _ = fmt.Fprintf(r.out, "  Lock:         %s\n", r.styles.Warning.Render("held by another process"))
	}
	_, _ = fmt.Fprintln(r.out)

	_, _ = fmt.Fprintf(r.out, "  Files:        %d (%d names)\n", info.FileLocators, info.FileNames)
	_, _ = fmt.Fprintf(r.out, "  Applications: %d\n", info.Applications)
	_, _ = fmt.Fprintf(r.out, "  Workspaces:   %d\n", info.Workspaces)
	_, _ = fmt.Fprintf(r.out, "  Commands:     %d\n", info.Commands)
	_, _ = fmt.Fprintf(r.out, "  History:      %d queries\n", info.HistorySize)
	_, _ = fmt.Fprintln(r.out)

	lastIndexed := "never"
	if !info.LastIndexed.IsZero() {
		lastIndexed = formatTime(info.LastIndexed, time.Now())
	}
	_, _ = fmt.Fprintf(r.out, "  Last indexed: %s\n", lastIndexed)
	_, _ = fmt.Fprintf(r.out, "  Index size:   %s\n", search.FormatSize(info.IndexBytes))
	_, _ = fmt.Fprintf(r.out, "  Data dir:     %s\n", info.DataDir)

	return nil
}

// RenderJSON outputs status as JSON.
func (r *StatusRenderer) RenderJSON(info StatusInfo) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(info)
}

func (r *StatusRenderer) renderState(state string) string {
	switch state {
	case "ready":
		return r.styles.Success.Render(state)
	case "indexing", "idle":
		return r.styles.Warning.Render(state)
	case "error":
		return r.styles.Error.Render(state)
	default:
		return state
	}
}

// formatTime formats t relative to now.
func formatTime(t, now time.Time) string {
	diff := now.Sub(t)

	plural := func(n int, unit string) string {
		if n == 1 {
			return "1 " + unit + " ago"
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	default:
		return t.Format("2006-01-02 15:04")
	}
}
