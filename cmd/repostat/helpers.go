package main

import (
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/repostat/repostat/internal/progress"
	"github.com/repostat/repostat/internal/service/analysis"
	"github.com/repostat/repostat/pkg/config"
)

// repoPath resolves the repository path from the first positional argument,
// defaulting to the current directory.
func repoPath(c *cli.Context) (string, error) {
	path := "."
	if c.Args().Len() > 0 {
		path = c.Args().First()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %s: %w", path, err)
	}
	return abs, nil
}

// loadConfig loads configuration and layers command-line overrides on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.LoadOrDefault()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		cfg = loaded
	}

	if patterns := c.StringSlice("exclude"); len(patterns) > 0 {
		cfg.Exclude.Patterns = append(cfg.Exclude.Patterns, patterns...)
	}
	if n := c.Int("bytes-per-line"); n > 0 {
		cfg.Analysis.BytesPerLine = n
	}
	if c.Bool("no-cache") {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

// historyOptions assembles per-run extraction options from flags.
func historyOptions(c *cli.Context, spinner *progress.Tracker) analysis.HistoryOptions {
	return analysis.HistoryOptions{
		MaxCommits: c.Int("max-commits"),
		NoCache:    c.Bool("no-cache"),
		ClearCache: c.Bool("clear-cache"),
		Spinner:    spinner,
	}
}
