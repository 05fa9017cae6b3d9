package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/repostat/repostat/internal/testutil"
	"github.com/repostat/repostat/pkg/models"
)

// runWithFlags runs action inside a throwaway app carrying the global flags,
// so helpers that read flags can be exercised directly.
func runWithFlags(t *testing.T, args []string, action func(c *cli.Context) error) {
	t.Helper()
	app := newApp()
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "probe",
		Action: action,
	})
	if err := app.Run(append([]string{"repostat"}, args...)); err != nil {
		t.Fatalf("app.Run(%v) error: %v", args, err)
	}
}

func TestRepoPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "defaults to current dir", args: []string{"probe"}, want: "."},
		{name: "positional path", args: []string{"probe", "/tmp/repo"}, want: "/tmp/repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runWithFlags(t, tt.args, func(c *cli.Context) error {
				got, err := repoPath(c)
				if err != nil {
					t.Fatalf("repoPath() error: %v", err)
				}
				want, _ := filepath.Abs(tt.want)
				if got != want {
					t.Errorf("repoPath() = %q, want %q", got, want)
				}
				return nil
			})
		})
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	args := []string{"--exclude", "vendor/**", "--exclude", "*.lock", "--bytes-per-line", "64", "--no-cache", "probe"}

	runWithFlags(t, args, func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			t.Fatalf("loadConfig() error: %v", err)
		}
		if len(cfg.Exclude.Patterns) != 2 {
			t.Errorf("Exclude.Patterns = %v, want 2 patterns", cfg.Exclude.Patterns)
		}
		if cfg.Analysis.BytesPerLine != 64 {
			t.Errorf("BytesPerLine = %d, want 64", cfg.Analysis.BytesPerLine)
		}
		if cfg.Cache.Enabled {
			t.Error("Cache.Enabled = true, want false with --no-cache")
		}
		return nil
	})
}

func TestHistoryOptionsFromFlags(t *testing.T) {
	args := []string{"--max-commits", "25", "--clear-cache", "probe"}

	runWithFlags(t, args, func(c *cli.Context) error {
		opts := historyOptions(c, nil)
		if opts.MaxCommits != 25 {
			t.Errorf("MaxCommits = %d, want 25", opts.MaxCommits)
		}
		if !opts.ClearCache {
			t.Error("ClearCache = false, want true")
		}
		if opts.NoCache {
			t.Error("NoCache = true, want false")
		}
		return nil
	})
}

func TestHistoryReport(t *testing.T) {
	result := &models.HistoryResult{
		Contributors: []models.ContributorStats{
			{Name: "Alice", Email: "alice@example.com", Commits: 3, LinesAdded: 30},
			{Name: "Bob", Email: "bob@example.com", Commits: 1, LinesAdded: 5},
		},
		FileTypes: []models.FileTypeStats{
			{FileType: "Go", Files: 2, Commits: 4, LinesAdded: 35},
		},
	}

	report := historyReport(result, 1)
	if len(report.Sections) != 3 {
		t.Fatalf("len(Sections) = %d, want 3", len(report.Sections))
	}
	if report.Data != result {
		t.Error("report.Data should carry the full result for structured formats")
	}

	table := contributorsTable(result.Contributors, 1)
	if len(table.Rows) != 1 {
		t.Errorf("contributorsTable rows = %d, want 1 after truncation", len(table.Rows))
	}
	if !strings.Contains(table.Title, "1 of 2") {
		t.Errorf("contributorsTable title = %q, want truncation counts", table.Title)
	}
}

func TestSummarySectionEmptyHistory(t *testing.T) {
	section := summarySection(&models.HistoryResult{})
	if !strings.Contains(section.Content, "No commits") {
		t.Errorf("Content = %q, want empty-history message", section.Content)
	}
}

func TestAnalyzeCommandJSON(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	testutil.CommitFileAt(t, repo, root, "main.go", "package main\n", "initial", base)
	testutil.CommitFileAt(t, repo, root, "main.go", "package main\n\nfunc main() {}\n", "add main", base.Add(time.Hour))

	outFile := filepath.Join(t.TempDir(), "out.json")
	app := newApp()
	err := app.Run([]string{"repostat", "--format", "json", "--output", outFile, "--no-cache", "analyze", root})
	if err != nil {
		t.Fatalf("analyze command error: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var result models.HistoryResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if len(result.Commits) != 2 {
		t.Errorf("len(Commits) = %d, want 2", len(result.Commits))
	}
	if len(result.Sequence) != 3 {
		t.Errorf("len(Sequence) = %d, want baseline + 2 commits", len(result.Sequence))
	}
	if result.BucketWidth != models.BucketHourly {
		t.Errorf("BucketWidth = %q, want hourly for a young repository", result.BucketWidth)
	}
}

func TestInitCommand(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "repostat.toml")

	if err := newApp().Run([]string{"repostat", "init", "-o", outPath}); err != nil {
		t.Fatalf("init command error: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if !strings.Contains(string(content), "bytes_per_line") {
		t.Error("generated config should contain bytes_per_line")
	}

	// Without --force a second run must refuse to overwrite.
	if err := newApp().Run([]string{"repostat", "init", "-o", outPath}); err == nil {
		t.Error("second init without --force should fail")
	}
}
