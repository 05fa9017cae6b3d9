package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers all repostat history tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all repostat tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "repostat",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds all repostat history tools to the server.
func (s *Server) registerTools() {
	// Condensed history summary
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "repo_summary",
		Description: describeSummary(),
	}, handleRepoSummary)

	// Bucketed time series
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "repo_timeline",
		Description: describeTimeline(),
	}, handleRepoTimeline)

	// Contributor rollup
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "repo_contributors",
		Description: describeContributors(),
	}, handleRepoContributors)

	// File type rollup
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "repo_file_types",
		Description: describeFileTypes(),
	}, handleRepoFileTypes)

	// Per-commit sequence view
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "repo_sequence",
		Description: describeSequence(),
	}, handleRepoSequence)
}
