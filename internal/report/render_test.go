package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repostat/repostat/pkg/config"
	"github.com/repostat/repostat/pkg/models"
)

func TestNewRenderer(t *testing.T) {
	r := NewRenderer(config.ReportConfig{Title: "My Project", TopContributors: 5})
	assert.Equal(t, "My Project", r.title)
	assert.Equal(t, 5, r.topContributors)
}

func TestNewRendererDefaultTitle(t *testing.T) {
	r := NewRenderer(config.ReportConfig{})
	assert.Equal(t, config.DefaultConfig().Report.Title, r.title)
}

func TestRenderContainsCharts(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(config.ReportConfig{Title: "History Report", TopContributors: 10})

	err := r.Render(sampleResult(), &buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "History Report")
	assert.Contains(t, html, "Repository Growth")
	assert.Contains(t, html, "Change Activity")
	assert.Contains(t, html, "Commit Frequency")
	assert.Contains(t, html, "Top Contributors")
	assert.Contains(t, html, "Churn by File Type")
	assert.Contains(t, html, "Commit Sequence")
}

func TestRenderGrowthSeries(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(config.ReportConfig{})

	err := r.Render(sampleResult(), &buf)
	require.NoError(t, err)

	html := buf.String()
	for _, series := range []string{"Application", "Test", "Build", "Documentation", "Other"} {
		assert.Contains(t, html, series)
	}
	// Bucket keys label the X axis.
	assert.Contains(t, html, "2024-03-01")
	assert.Contains(t, html, "2024-03-02")
}

func TestRenderContributorLimit(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(config.ReportConfig{TopContributors: 1})

	err := r.Render(sampleResult(), &buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "Ada Lovelace")
	assert.NotContains(t, html, "Grace Hopper")
}

func TestRenderSkipsZeroChurnFileTypes(t *testing.T) {
	result := sampleResult()
	result.FileTypes = append(result.FileTypes, models.FileTypeStats{FileType: "Idle"})

	var buf bytes.Buffer
	r := NewRenderer(config.ReportConfig{})

	err := r.Render(result, &buf)
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "Idle")
}

func TestRenderEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(config.ReportConfig{})

	err := r.Render(&models.HistoryResult{BucketWidth: models.BucketDaily}, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "No data")
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	r := NewRenderer(config.ReportConfig{Title: "Repo"})

	err := r.RenderToFile(sampleResult(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Repo"))
}

func TestRenderToFileInvalidPath(t *testing.T) {
	r := NewRenderer(config.ReportConfig{})
	err := r.RenderToFile(sampleResult(), filepath.Join(t.TempDir(), "missing", "report.html"))
	assert.Error(t, err)
}

func TestShortSHA(t *testing.T) {
	assert.Equal(t, "deadbeef", shortSHA("deadbeefcafe0123"))
	assert.Equal(t, "start", shortSHA("start"))
}

func TestAxisName(t *testing.T) {
	assert.Equal(t, "Hour (UTC)", axisName(models.BucketHourly))
	assert.Equal(t, "Day (UTC)", axisName(models.BucketDaily))
}

// Helper functions

func sampleResult() *models.HistoryResult {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	bucket := func(key string, commits int, added, cumulative int64) models.TimeBucketPoint {
		p := models.TimeBucketPoint{Bucket: key, CommitCount: commits}
		p.LinesAdded.Add(models.CategoryApplication, added)
		p.CumulativeLines.Add(models.CategoryApplication, cumulative)
		p.CumulativeBytes.Add(models.CategoryApplication, cumulative*50)
		return p
	}

	return &models.HistoryResult{
		Repo:        models.RepoMeta{Root: "/tmp/repo", Branch: "main"},
		GeneratedAt: base,
		BucketWidth: models.BucketDaily,
		Commits: []models.CommitRecord{
			models.NewCommitRecord("aaa0001", "Ada Lovelace", "ada@example.com", base, "first", nil),
			models.NewCommitRecord("aaa0002", "Grace Hopper", "grace@example.com", base.Add(24*time.Hour), "second", nil),
		},
		Timeline: []models.TimeBucketPoint{
			bucket("2024-02-29", 0, 0, 0),
			bucket("2024-03-01", 1, 10, 10),
			bucket("2024-03-02", 1, 5, 15),
		},
		Sequence: []models.SequencePoint{
			{Index: 0, SHA: models.SequenceStartSHA},
			{Index: 1, SHA: "aaa0001", CumulativeLines: 10},
			{Index: 2, SHA: "aaa0002", CumulativeLines: 15},
		},
		Contributors: []models.ContributorStats{
			{Name: "Ada Lovelace", Email: "ada@example.com", Commits: 1, LinesAdded: 10},
			{Name: "Grace Hopper", Email: "grace@example.com", Commits: 1, LinesAdded: 5},
		},
		FileTypes: []models.FileTypeStats{
			{FileType: "Go", Files: 2, Commits: 2, LinesAdded: 12, LinesDeleted: 1},
			{FileType: "Markdown", Files: 1, Commits: 1, LinesAdded: 3},
		},
		Trend: models.GrowthTrend{Slope: 5, Correlation: 1},
	}
}
