package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Resource URIs served alongside the tools.
const (
	StatusResourceURI  = "amanlaunch://status"
	HistoryResourceURI = "amanlaunch://history"
)

// registerResources registers the status and history resources.
func (s *Server) registerResources() {
	s.mcp.AddResource(
		&mcp.Resource{
			Name:        "status",
			URI:         StatusResourceURI,
			Description: "Crawl progress and index statistics",
			MIMEType:    "application/json",
		},
		s.makeJSONHandler(StatusResourceURI, func() any {
			return ToIndexStatusOutput(s.launcher.Status())
		}),
	)
	s.mcp.AddResource(
		&mcp.Resource{
			Name:        "history",
			URI:         HistoryResourceURI,
			Description: "Past launcher queries, most recent first",
			MIMEType:    "application/json",
		},
		s.makeJSONHandler(HistoryResourceURI, func() any {
			return HistoryOutput{Queries: nonNil(s.launcher.History())}
		}),
	)
}

// makeJSONHandler creates a read handler that serves build() as indented JSON.
func (s *Server) makeJSONHandler(uri string, build func() any) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		content, err := json.MarshalIndent(build(), "", "  ")
		if err != nil {
			return nil, MapError(err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(content),
				},
			},
		}, nil
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
