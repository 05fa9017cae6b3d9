package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/repostat/repostat/internal/output"
	"github.com/repostat/repostat/internal/service/analysis"
	outputSvc "github.com/repostat/repostat/internal/service/output"
	"github.com/repostat/repostat/pkg/models"
)

// largeOutputTokens is the point at which tool output gets a size note so
// callers can narrow the request.
const largeOutputTokens = 20000

// Common input structures for tools

// AnalyzeInput is the base input for all history tools.
type AnalyzeInput struct {
	Path       string `json:"path,omitempty" jsonschema:"Repository path. Defaults to current directory if empty."`
	Format     string `json:"format,omitempty" jsonschema:"Output format: toon (default), json, yaml, or markdown."`
	MaxCommits int    `json:"max_commits,omitempty" jsonschema:"Analyze only the N most recent commits. 0 analyzes the full history."`
	NoCache    bool   `json:"no_cache,omitempty" jsonschema:"Bypass the analysis cache for this run."`
}

// TimelineInput adds timeline-specific options.
type TimelineInput struct {
	AnalyzeInput
	Last int `json:"last,omitempty" jsonschema:"Return only the last N time buckets. 0 returns all."`
}

// ContributorsInput adds contributor-specific options.
type ContributorsInput struct {
	AnalyzeInput
	Top int `json:"top,omitempty" jsonschema:"Show top N contributors by commit count. Default 20."`
}

// FileTypesInput adds file-type options.
type FileTypesInput struct {
	AnalyzeInput
	Top int `json:"top,omitempty" jsonschema:"Show top N file types by churn. Default 20."`
}

// SequenceInput adds sequence-specific options.
type SequenceInput struct {
	AnalyzeInput
	Last int `json:"last,omitempty" jsonschema:"Return only the last N sequence points. 0 returns all."`
}

// Helper functions

func getPath(input AnalyzeInput) string {
	if input.Path == "" {
		return "."
	}
	return input.Path
}

func runHistory(input AnalyzeInput) (*models.HistoryResult, error) {
	svc := analysis.New()
	return svc.AnalyzeHistory(getPath(input), analysis.HistoryOptions{
		MaxCommits: input.MaxCommits,
		NoCache:    input.NoCache,
	})
}

func formatOutput(data any, format string) (string, error) {
	svc, err := outputSvc.New(outputSvc.WithFormat(outputSvc.ParseFormat(format)))
	if err != nil {
		return "", err
	}
	return svc.FormatData(data)
}

func toolResult(data any, format string) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	if tokens := output.EstimateTokens(text); tokens > largeOutputTokens {
		text = fmt.Sprintf("Note: output is roughly %s tokens. Use max_commits, last, or top to narrow it.\n\n",
			output.FormatTokenCount(tokens)) + text
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// Tool handlers

func handleRepoSummary(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	result, err := runHistory(input)
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(result.Summarize(), input.Format)
}

func handleRepoTimeline(ctx context.Context, req *mcp.CallToolRequest, input TimelineInput) (*mcp.CallToolResult, any, error) {
	result, err := runHistory(input.AnalyzeInput)
	if err != nil {
		return toolError(err.Error())
	}

	timeline := result.Timeline
	if input.Last > 0 && len(timeline) > input.Last {
		timeline = timeline[len(timeline)-input.Last:]
	}

	out := struct {
		Repo        models.RepoMeta          `json:"repo" toon:"repo"`
		BucketWidth models.BucketWidth       `json:"bucket_width" toon:"bucket_width"`
		Trend       models.GrowthTrend       `json:"trend" toon:"trend"`
		Timeline    []models.TimeBucketPoint `json:"timeline" toon:"timeline"`
	}{result.Repo, result.BucketWidth, result.Trend, timeline}

	return toolResult(out, input.Format)
}

func handleRepoContributors(ctx context.Context, req *mcp.CallToolRequest, input ContributorsInput) (*mcp.CallToolResult, any, error) {
	result, err := runHistory(input.AnalyzeInput)
	if err != nil {
		return toolError(err.Error())
	}

	top := input.Top
	if top <= 0 {
		top = 20
	}
	contributors := result.Contributors
	if len(contributors) > top {
		contributors = contributors[:top]
	}

	out := struct {
		Repo         models.RepoMeta           `json:"repo" toon:"repo"`
		Total        int                       `json:"total" toon:"total"`
		Contributors []models.ContributorStats `json:"contributors" toon:"contributors"`
	}{result.Repo, len(result.Contributors), contributors}

	return toolResult(out, input.Format)
}

func handleRepoFileTypes(ctx context.Context, req *mcp.CallToolRequest, input FileTypesInput) (*mcp.CallToolResult, any, error) {
	result, err := runHistory(input.AnalyzeInput)
	if err != nil {
		return toolError(err.Error())
	}

	top := input.Top
	if top <= 0 {
		top = 20
	}
	fileTypes := result.FileTypes
	if len(fileTypes) > top {
		fileTypes = fileTypes[:top]
	}

	out := struct {
		Repo      models.RepoMeta        `json:"repo" toon:"repo"`
		Total     int                    `json:"total" toon:"total"`
		FileTypes []models.FileTypeStats `json:"file_types" toon:"file_types"`
	}{result.Repo, len(result.FileTypes), fileTypes}

	return toolResult(out, input.Format)
}

func handleRepoSequence(ctx context.Context, req *mcp.CallToolRequest, input SequenceInput) (*mcp.CallToolResult, any, error) {
	result, err := runHistory(input.AnalyzeInput)
	if err != nil {
		return toolError(err.Error())
	}

	sequence := result.Sequence
	if input.Last > 0 && len(sequence) > input.Last {
		sequence = sequence[len(sequence)-input.Last:]
	}

	out := struct {
		Repo     models.RepoMeta        `json:"repo" toon:"repo"`
		Total    int                    `json:"total" toon:"total"`
		Sequence []models.SequencePoint `json:"sequence" toon:"sequence"`
	}{result.Repo, len(result.Sequence), sequence}

	return toolResult(out, input.Format)
}
