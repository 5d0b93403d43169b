package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/amanlaunch/internal/async"
	"github.com/Aman-CERP/amanlaunch/internal/launcher"
	"github.com/Aman-CERP/amanlaunch/internal/search"
	"github.com/Aman-CERP/amanlaunch/pkg/version"
)

// ServerName is reported to MCP clients.
const ServerName = "amanlaunch"

// Launcher is the service the server exposes. *launcher.Service implements it.
type Launcher interface {
	Query(ctx context.Context, q string, filter search.Filter, limit int) ([]search.Result, error)
	Reindex(ctx context.Context, roots []string) bool
	Status() launcher.Status
	History() []string
}

// Server is the MCP server for amanlaunch. It lets AI clients find files,
// applications, workspaces and commands through the launcher index.
type Server struct {
	mcp        *mcp.Server
	launcher   Launcher
	maxResults int
	logger     *slog.Logger
}

// ToolInfo contains information about a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

var tools = []ToolInfo{
	{
		Name:        "search",
		Description: "Find files, installed applications, workspaces and custom commands by name. Matches are fuzzy and ranked exact > prefix > substring > subsequence. Each query is recorded in the launcher history.",
	},
	{
		Name:        "index_status",
		Description: "Report whether a crawl is running, its progress, and how many files and applications are indexed.",
	},
	{
		Name:        "reindex",
		Description: "Start a background crawl of the filesystem and application directories. Returns immediately; poll index_status for progress.",
	},
	{
		Name:        "history",
		Description: "List past launcher queries, most recent first.",
	},
}

// NewServer creates a new MCP server over l. maxResults caps the search
// limit (<= 0 means MaxSearchLimit).
func NewServer(l Launcher, maxResults int) (*Server, error) {
	if l == nil {
		return nil, errors.New("launcher is required")
	}
	if maxResults <= 0 {
		maxResults = MaxSearchLimit
	}

	s := &Server{
		launcher:   l,
		maxResults: maxResults,
		logger:     slog.Default(),
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: version.Version,
		},
		nil, // capabilities are inferred from registered tools/resources
	)

	s.registerTools()
	s.registerResources()

	return s, nil
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Info returns the server name and version.
func (s *Server) Info() (name, ver string) {
	return ServerName, version.Version
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return append([]ToolInfo(nil), tools...)
}

// CallTool invokes a tool by name with JSON-style arguments.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case "search":
		var in SearchInput
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return s.handleSearch(ctx, in)
	case "index_status":
		return s.handleIndexStatus(ctx)
	case "reindex":
		var in ReindexInput
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return s.handleReindex(ctx, in)
	case "history":
		var in HistoryInput
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return s.handleHistory(ctx, in)
	default:
		return nil, NewMethodNotFoundError(name)
	}
}

// decodeArgs converts loosely typed arguments into a tool input struct.
func decodeArgs(args map[string]any, dst any) error {
	if len(args) == 0 {
		return nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return NewInvalidParamsError(err.Error())
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return NewInvalidParamsError(fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}

// handleSearch runs a query and converts the ranked results.
func (s *Server) handleSearch(ctx context.Context, in SearchInput) (SearchOutput, error) {
	start := time.Now()
	requestID := generateRequestID()

	query := strings.TrimSpace(in.Query)
	if query == "" {
		return SearchOutput{}, NewInvalidParamsError("query parameter is required and must not be blank")
	}
	filter, err := search.ParseFilter(in.Kind)
	if err != nil {
		return SearchOutput{}, MapError(err)
	}
	limit := clampLimit(in.Limit, min(DefaultSearchLimit, s.maxResults), 1, s.maxResults)

	s.logger.Info("search started",
		slog.String("request_id", requestID),
		slog.String("query", query),
		slog.String("kind", filter.String()),
		slog.Int("limit", limit))

	results, err := s.launcher.Query(ctx, query, filter, limit)
	duration := time.Since(start)
	if err != nil {
		s.logger.Error("search failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return SearchOutput{}, MapError(err)
	}

	s.logger.Info("search completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", duration),
		slog.Int("result_count", len(results)))

	out := SearchOutput{
		Results:  make([]SearchResultOutput, 0, len(results)),
		Indexing: s.launcher.Status().Progress.Status == string(async.StatusIndexing),
	}
	for _, r := range results {
		out.Results = append(out.Results, ToSearchResultOutput(r))
	}
	return out, nil
}

// handleIndexStatus reports crawl progress and index statistics.
func (s *Server) handleIndexStatus(_ context.Context) (*IndexStatusOutput, error) {
	return ToIndexStatusOutput(s.launcher.Status()), nil
}

// handleReindex starts a crawl that outlives the request.
func (s *Server) handleReindex(ctx context.Context, in ReindexInput) (ReindexOutput, error) {
	if !s.launcher.Reindex(context.WithoutCancel(ctx), in.Roots) {
		s.logger.Info("reindex refused, crawl already running")
		return ReindexOutput{
			Started: false,
			Message: "A crawl is already running. Poll index_status for progress.",
		}, nil
	}
	s.logger.Info("reindex started", slog.Int("roots", len(in.Roots)))
	return ReindexOutput{
		Started: true,
		Message: "Crawl started. Poll index_status for progress.",
	}, nil
}

// handleHistory lists past queries.
func (s *Server) handleHistory(_ context.Context, in HistoryInput) (HistoryOutput, error) {
	queries := nonNil(s.launcher.History())
	if in.Limit > 0 && len(queries) > in.Limit {
		queries = queries[:in.Limit]
	}
	return HistoryOutput{Queries: queries}, nil
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	s.logger.Debug("Registering MCP tools")

	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[0].Name, Description: tools[0].Description}, s.mcpSearchHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[1].Name, Description: tools[1].Description}, s.mcpIndexStatusHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[2].Name, Description: tools[2].Description}, s.mcpReindexHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[3].Name, Description: tools[3].Description}, s.mcpHistoryHandler)

	s.logger.Info("MCP tools registered", slog.Int("count", len(tools)))
}

// mcpSearchHandler is the MCP SDK handler for the search tool.
func (s *Server) mcpSearchHandler(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (
	*mcp.CallToolResult,
	SearchOutput,
	error,
) {
	out, err := s.handleSearch(ctx, input)
	return nil, out, err
}

// mcpIndexStatusHandler is the MCP SDK handler for the index_status tool.
func (s *Server) mcpIndexStatusHandler(ctx context.Context, _ *mcp.CallToolRequest, _ IndexStatusInput) (
	*mcp.CallToolResult,
	*IndexStatusOutput,
	error,
) {
	out, err := s.handleIndexStatus(ctx)
	return nil, out, err
}

// mcpReindexHandler is the MCP SDK handler for the reindex tool.
func (s *Server) mcpReindexHandler(ctx context.Context, _ *mcp.CallToolRequest, input ReindexInput) (
	*mcp.CallToolResult,
	ReindexOutput,
	error,
) {
	out, err := s.handleReindex(ctx, input)
	return nil, out, err
}

// mcpHistoryHandler is the MCP SDK handler for the history tool.
func (s *Server) mcpHistoryHandler(ctx context.Context, _ *mcp.CallToolRequest, input HistoryInput) (
	*mcp.CallToolResult,
	HistoryOutput,
	error,
) {
	out, err := s.handleHistory(ctx, input)
	return nil, out, err
}

// Serve runs the server over stdio until ctx is done or the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("Starting MCP server", slog.String("transport", "stdio"))

	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("MCP server stopped gracefully")
	return nil
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
