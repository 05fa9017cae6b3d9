package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/repostat/repostat/internal/output"
	"github.com/repostat/repostat/internal/progress"
	"github.com/repostat/repostat/internal/service/analysis"
	"github.com/repostat/repostat/pkg/models"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Analyze commit history and print aggregate statistics",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Value: 10,
				Usage: "Show top N contributors and file types",
			},
		},
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	path, err := repoPath(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	spinner := progress.NewSpinner("Analyzing history...")
	svc := analysis.New(analysis.WithConfig(cfg))
	result, err := svc.AnalyzeHistory(path, historyOptions(c, spinner))
	spinner.FinishSuccess()
	if err != nil {
		return fmt.Errorf("history analysis failed (is %s a git repository?): %w", path, err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(historyReport(result, c.Int("top")))
}

// historyReport assembles the terminal view of a history analysis: a
// summary section plus contributor and file-type tables. Structured
// formats serialize the full result instead.
func historyReport(result *models.HistoryResult, top int) *output.Report {
	if top <= 0 {
		top = 10
	}
	return &output.Report{
		Title: "Repository History",
		Sections: []output.Renderable{
			summarySection(result),
			contributorsTable(result.Contributors, top),
			fileTypesTable(result.FileTypes, top),
		},
		Data: result,
	}
}

func summarySection(result *models.HistoryResult) *output.Section {
	s := result.Summarize()

	var b strings.Builder
	fmt.Fprintf(&b, "Repository:       %s", s.Repo.Root)
	if s.Repo.Branch != "" {
		fmt.Fprintf(&b, " (%s)", s.Repo.Branch)
	}
	fmt.Fprintln(&b)
	if s.Commits > 0 {
		fmt.Fprintf(&b, "Commits:          %d (%d from cache)\n", s.Commits, s.CachedCommits)
		fmt.Fprintf(&b, "Contributors:     %d\n", s.Contributors)
		fmt.Fprintf(&b, "History:          %s to %s\n",
			s.FirstCommit.Format("2006-01-02"), s.LastCommit.Format("2006-01-02"))
		fmt.Fprintf(&b, "Buckets:          %d per %s\n", s.Buckets, s.BucketWidth)
		fmt.Fprintf(&b, "Lines changed:    +%s / -%s (net %s)\n",
			humanize.Comma(int64(s.LinesAdded)), humanize.Comma(int64(s.LinesDeleted)), humanize.Comma(int64(s.NetLines)))
		fmt.Fprintf(&b, "Current size:     %s lines, ~%s\n",
			humanize.Comma(s.CumulativeLines), humanize.Bytes(uint64(s.CumulativeBytes)))
		fmt.Fprintf(&b, "Growth trend:     %+.1f lines/bucket (r²=%.2f)", s.Trend.Slope, s.Trend.RSquared)
	} else {
		b.WriteString("No commits found")
	}

	return &output.Section{
		Title:   "Summary",
		Content: b.String(),
		Data:    s,
	}
}

func contributorsTable(contributors []models.ContributorStats, top int) *output.Table {
	total := len(contributors)
	if len(contributors) > top {
		contributors = contributors[:top]
	}

	rows := make([][]string, 0, len(contributors))
	for _, cs := range contributors {
		rows = append(rows, []string{
			cs.Name,
			cs.Email,
			fmt.Sprintf("%d", cs.Commits),
			fmt.Sprintf("+%d/-%d", cs.LinesAdded, cs.LinesDeleted),
			humanize.Bytes(uint64(cs.BytesAdded)),
		})
	}

	return output.NewTable(
		fmt.Sprintf("Top Contributors (%d of %d)", len(rows), total),
		[]string{"Name", "Email", "Commits", "Lines Changed", "Bytes Added"},
		rows,
		nil,
		contributors,
	)
}

func fileTypesTable(fileTypes []models.FileTypeStats, top int) *output.Table {
	total := len(fileTypes)
	if len(fileTypes) > top {
		fileTypes = fileTypes[:top]
	}

	rows := make([][]string, 0, len(fileTypes))
	for _, ft := range fileTypes {
		rows = append(rows, []string{
			ft.FileType,
			fmt.Sprintf("%d", ft.Files),
			fmt.Sprintf("%d", ft.Commits),
			fmt.Sprintf("+%d/-%d", ft.LinesAdded, ft.LinesDeleted),
		})
	}

	return output.NewTable(
		fmt.Sprintf("File Types (%d of %d)", len(rows), total),
		[]string{"Type", "Files", "Commits", "Lines Changed"},
		rows,
		nil,
		fileTypes,
	)
}
