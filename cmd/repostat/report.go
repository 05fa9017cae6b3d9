package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/repostat/repostat/internal/progress"
	"github.com/repostat/repostat/internal/report"
	"github.com/repostat/repostat/internal/service/analysis"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Aliases:   []string{"r"},
		Usage:     "Generate a standalone HTML report with interactive charts",
		ArgsUsage: "[path]",
		Action:    runReportCmd,
	}
}

func runReportCmd(c *cli.Context) error {
	path, err := repoPath(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	outPath := c.String("output")
	if outPath == "" {
		outPath = "repostat.html"
	}

	spinner := progress.NewSpinner("Analyzing history...")
	svc := analysis.New(analysis.WithConfig(cfg))
	result, err := svc.AnalyzeHistory(path, historyOptions(c, spinner))
	spinner.FinishSuccess()
	if err != nil {
		return fmt.Errorf("history analysis failed (is %s a git repository?): %w", path, err)
	}

	renderer := report.NewRenderer(cfg.Report)
	if err := renderer.RenderToFile(result, outPath); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	color.Green("Report written to %s", outPath)
	return nil
}
