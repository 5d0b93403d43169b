package mcp

// SearchInput defines the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the name or fragment to look for"`
	Kind  string `json:"kind,omitempty" jsonschema:"comma-separated kinds: all, file, app, workspace, command (default all)"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results, default 10"`
}

// SearchOutput defines the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results" jsonschema:"ranked results, best first"`
	// Indexing is set while a crawl runs; results come from the previous index.
	Indexing bool `json:"indexing,omitempty" jsonschema:"true while a crawl is running and results may be stale"`
}

// SearchResultOutput defines a single ranked result.
type SearchResultOutput struct {
	Name     string `json:"name" jsonschema:"display name"`
	Kind     string `json:"kind" jsonschema:"file, application, workspace or command"`
	Locator  string `json:"locator" jsonschema:"path to open, application to launch, workspace name or command text"`
	Metadata string `json:"metadata,omitempty" jsonschema:"size and modification time, application type, member count or command description"`
	Score    int    `json:"score" jsonschema:"match tier: 100 exact, 80 prefix, 60 substring, 40 subsequence"`
	MIMEType string `json:"mime_type,omitempty" jsonschema:"guessed MIME type for file results"`
}

// IndexStatusInput defines the input schema for the index_status tool (no parameters).
type IndexStatusInput struct{}

// IndexStatusOutput defines the output schema for the index_status tool.
type IndexStatusOutput struct {
	Platform        string           `json:"platform"`
	DataDir         string           `json:"data_dir"`
	Indexing        IndexingProgress `json:"indexing"`
	LockedElsewhere bool             `json:"locked_elsewhere"`
	Stats           IndexStats       `json:"stats"`
	Queries         QueryStats       `json:"queries"`
}

// QueryStats summarises the queries this server has answered.
type QueryStats struct {
	Total             int64    `json:"total"`
	ZeroResults       int64    `json:"zero_results"`
	Repeats           int64    `json:"repeats"`
	TopTerms          []string `json:"top_terms"`
	RecentZeroResults []string `json:"recent_zero_results"`
}

// IndexingProgress mirrors the background crawl progress.
type IndexingProgress struct {
	Status         string `json:"status"`          // "idle", "indexing", "ready" or "error"
	Stage          string `json:"stage,omitempty"` // "scanning", "applications" or "saving"
	FilesIndexed   int    `json:"files_indexed"`
	AppsFound      int    `json:"apps_found"`
	CurrentDir     string `json:"current_dir,omitempty"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	ErrorMessage   string `json:"error_message,omitempty"`
}

// IndexStats contains statistics about the indexes and collaborators.
type IndexStats struct {
	FileNames      int    `json:"file_names"`
	FileLocators   int    `json:"file_locators"`
	Applications   int    `json:"applications"`
	Workspaces     int    `json:"workspaces"`
	Commands       int    `json:"commands"`
	HistoryEntries int    `json:"history_entries"`
	IndexSizeBytes int64  `json:"index_size_bytes"`
	LastIndexed    string `json:"last_indexed,omitempty"`
}

// ReindexInput defines the input schema for the reindex tool.
type ReindexInput struct {
	Roots []string `json:"roots,omitempty" jsonschema:"directories to crawl; empty means the configured roots or every local volume"`
}

// ReindexOutput defines the output schema for the reindex tool.
type ReindexOutput struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// HistoryInput defines the input schema for the history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of queries, default all"`
}

// HistoryOutput defines the output schema for the history tool.
type HistoryOutput struct {
	Queries []string `json:"queries" jsonschema:"past queries, most recent first"`
}
