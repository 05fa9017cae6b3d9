// Package report renders a history analysis as a self-contained HTML page
// of interactive charts.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/repostat/repostat/pkg/config"
	"github.com/repostat/repostat/pkg/models"
)

// Renderer handles HTML report generation.
type Renderer struct {
	title           string
	topContributors int
}

// NewRenderer creates a renderer configured from the report settings.
func NewRenderer(cfg config.ReportConfig) *Renderer {
	title := cfg.Title
	if title == "" {
		title = config.DefaultConfig().Report.Title
	}
	return &Renderer{
		title:           title,
		topContributors: cfg.TopContributors,
	}
}

// Render writes the report for the given result as HTML.
func (r *Renderer) Render(result *models.HistoryResult, w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = r.title
	page.SetLayout(components.PageCenterLayout)

	page.AddCharts(
		growthChart(result.Timeline, result.BucketWidth),
		activityChart(result.Timeline, result.BucketWidth),
		commitsChart(result.Timeline, result.BucketWidth, len(result.Commits)),
		contributorsChart(result.Contributors, r.topContributors),
		fileTypesChart(result.FileTypes),
		sequenceChart(result.Sequence),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

// RenderToFile generates HTML and writes it to a file.
func (r *Renderer) RenderToFile(result *models.HistoryResult, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return r.Render(result, f)
}
