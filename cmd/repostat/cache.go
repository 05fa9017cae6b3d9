package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/repostat/repostat/internal/output"
	"github.com/repostat/repostat/internal/service/analysis"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the history cache",
		Subcommands: []*cli.Command{
			{
				Name:      "stats",
				Usage:     "Show cache entry statistics",
				ArgsUsage: "[path]",
				Action:    runCacheStatsCmd,
			},
			{
				Name:      "clear",
				Usage:     "Remove every cache entry for the repository",
				ArgsUsage: "[path]",
				Action:    runCacheClearCmd,
			},
		},
	}
}

func runCacheStatsCmd(c *cli.Context) error {
	path, err := repoPath(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	svc := analysis.New(analysis.WithConfig(cfg))
	stats, err := svc.CacheStats(path)
	if err != nil {
		return fmt.Errorf("reading cache stats: %w", err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	rows := [][]string{
		{"Entries", fmt.Sprintf("%d", stats.Entries)},
		{"Total size", humanize.Bytes(uint64(stats.TotalSize))},
		{"Oldest entry", stats.OldestAge.Round(time.Second).String()},
		{"Newest entry", stats.NewestAge.Round(time.Second).String()},
	}
	return formatter.Output(output.NewTable("History Cache", []string{"Metric", "Value"}, rows, nil, stats))
}

func runCacheClearCmd(c *cli.Context) error {
	path, err := repoPath(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	svc := analysis.New(analysis.WithConfig(cfg))
	if err := svc.ClearCache(path); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	color.Green("Cache cleared")
	return nil
}
