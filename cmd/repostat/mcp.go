package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/repostat/repostat/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes repostat's history
views as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "repostat": {
        "command": "repostat",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - repo_summary       Condensed history summary
  - repo_timeline      Bucketed time series with category breakdowns
  - repo_contributors  Contributor rollup
  - repo_file_types    File-type rollup
  - repo_sequence      Per-commit cumulative sequence`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	server := mcpserver.NewServer(version)
	return server.Run(c.Context)
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(c *cli.Context) error {
			fmt.Printf("repostat %s (commit %s, built %s)\n", version, commit, date)
			return nil
		},
	}
}
