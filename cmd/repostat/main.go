package main

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    // set via ldflags at build time
	date    = "unknown" // set via ldflags at build time
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "repostat",
		Usage:   "Git history statistics and growth reports",
		Version: version,
		Description: `Repostat walks a repository's commit history and produces aggregate
statistics: line and byte deltas broken down by category, contributor and
file-type rollups, a bucketed time series, and an HTML growth report.
Results are cached per repository and extended incrementally on later runs.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"REPOSTAT_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, yaml, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "Exclude paths matching pattern (gitignore syntax, repeatable)",
			},
			&cli.IntFlag{
				Name:  "max-commits",
				Usage: "Analyze only the N most recent commits (bypasses the cache)",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable caching",
			},
			&cli.BoolFlag{
				Name:  "clear-cache",
				Usage: "Drop the repository's cache entry before analyzing",
			},
			&cli.IntFlag{
				Name:  "bytes-per-line",
				Usage: "Bytes-per-line constant used to estimate byte deltas",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelWarn
			if c.Bool("verbose") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
		Commands: []*cli.Command{
			analyzeCmd(),
			reportCmd(),
			cacheCmd(),
			initCmd(),
			mcpCmd(),
			versionCmd(),
		},
	}
}
