package mcp

import (
	"time"

	"github.com/Aman-CERP/amanlaunch/internal/launcher"
	"github.com/Aman-CERP/amanlaunch/internal/search"
)

// Search limits applied when the caller gives none or too many.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 100
)

// clampLimit ensures limit is within bounds.
func clampLimit(limit, defaultVal, min, max int) int {
	if limit <= 0 {
		return defaultVal
	}
	if limit < min {
		return min
	}
	if limit > max {
		return max
	}
	return limit
}

// ToSearchResultOutput converts a search result to the tool output format.
func ToSearchResultOutput(r search.Result) SearchResultOutput {
	out := SearchResultOutput{
		Name:     r.Name,
		Kind:     string(r.Kind),
		Locator:  r.Locator,
		Metadata: r.Metadata,
		Score:    r.Score,
	}
	if r.Kind == search.KindFile {
		out.MIMEType = MimeTypeForPath(r.Locator)
	}
	return out
}

// maxTopTerms caps the top terms reported by index_status.
const maxTopTerms = 10

// ToIndexStatusOutput converts the service status to the tool output format.
func ToIndexStatusOutput(st launcher.Status) *IndexStatusOutput {
	out := &IndexStatusOutput{
		Platform: st.Platform,
		DataDir:  st.DataDir,
		Indexing: IndexingProgress{
			Status:         st.Progress.Status,
			Stage:          st.Progress.Stage,
			FilesIndexed:   st.Progress.FilesIndexed,
			AppsFound:      st.Progress.AppsFound,
			CurrentDir:     st.Progress.CurrentDir,
			ElapsedSeconds: st.Progress.ElapsedSeconds,
			ErrorMessage:   st.Progress.ErrorMessage,
		},
		LockedElsewhere: st.LockedElsewhere,
		Stats: IndexStats{
			FileNames:      st.Files.Names,
			FileLocators:   st.Files.Locators,
			Applications:   st.Apps.Names,
			Workspaces:     st.Workspaces,
			Commands:       st.Commands,
			HistoryEntries: st.History,
			IndexSizeBytes: st.IndexBytes,
		},
	}
	out.Queries = QueryStats{
		Total:             st.Queries.TotalQueries,
		ZeroResults:       st.Queries.ZeroResultCount,
		Repeats:           st.Queries.ExactRepeatCount,
		TopTerms:          make([]string, 0, min(len(st.Queries.TopTerms), maxTopTerms)),
		RecentZeroResults: nonNil(st.Queries.ZeroResultQueries),
	}
	for _, tc := range st.Queries.TopTerms[:min(len(st.Queries.TopTerms), maxTopTerms)] {
		out.Queries.TopTerms = append(out.Queries.TopTerms, tc.Term)
	}
	if !st.LastIndexed.IsZero() {
		out.Stats.LastIndexed = st.LastIndexed.Format(time.RFC3339)
	}
	return out
}
