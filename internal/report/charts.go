package report

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/repostat/repostat/pkg/models"
)

const (
	areaOpacity   = 0.5
	plotStackName = "total"
	fullZoomPct   = 100
)

// growthCategories fixes the series order of the stacked growth chart.
var growthCategories = []struct {
	Name string
	Cat  models.Category
}{
	{"Application", models.CategoryApplication},
	{"Test", models.CategoryTest},
	{"Build", models.CategoryBuild},
	{"Documentation", models.CategoryDocumentation},
	{"Other", models.CategoryOther},
}

// growthChart renders cumulative lines per category as a stacked area chart,
// one sample per time bucket.
func growthChart(timeline []models.TimeBucketPoint, width models.BucketWidth) *charts.Line {
	if len(timeline) == 0 {
		return emptyLineChart("Repository Growth")
	}

	last := timeline[len(timeline)-1]
	subtitle := fmt.Sprintf("%s lines (~%s) at the end of the analyzed history",
		humanize.Comma(last.CumulativeLines.Total),
		humanize.Bytes(uint64(last.CumulativeBytes.Total)))

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Repository Growth",
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Top: "5px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: fullZoomPct}, opts.DataZoom{Type: "inside"}),
		charts.WithXAxisOpts(opts.XAxis{Name: axisName(width)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cumulative Lines"}),
	)
	line.SetXAxis(bucketLabels(timeline))

	for _, cat := range growthCategories {
		data := make([]opts.LineData, len(timeline))
		for i, point := range timeline {
			data[i] = opts.LineData{Value: point.CumulativeLines.Get(cat.Cat)}
		}

		line.AddSeries(
			cat.Name,
			data,
			charts.WithLineChartOpts(opts.LineChart{Stack: plotStackName}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(areaOpacity)}),
		)
	}

	return line
}

// activityChart renders lines added and deleted per time bucket as paired
// bars.
func activityChart(timeline []models.TimeBucketPoint, width models.BucketWidth) *charts.Bar {
	if len(timeline) == 0 {
		return emptyBarChart("Change Activity")
	}

	var added, deleted int64
	for _, point := range timeline {
		added += point.LinesAdded.Total
		deleted += point.LinesDeleted.Total
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Change Activity",
			Subtitle: fmt.Sprintf("%s lines added, %s deleted", humanize.Comma(added), humanize.Comma(deleted)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "5px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: fullZoomPct}, opts.DataZoom{Type: "inside"}),
		charts.WithXAxisOpts(opts.XAxis{Name: axisName(width)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Lines"}),
	)
	bar.SetXAxis(bucketLabels(timeline))

	addedData := make([]opts.BarData, len(timeline))
	deletedData := make([]opts.BarData, len(timeline))
	for i, point := range timeline {
		addedData[i] = opts.BarData{Value: point.LinesAdded.Total}
		deletedData[i] = opts.BarData{Value: point.LinesDeleted.Total}
	}

	bar.AddSeries("Added", addedData)
	bar.AddSeries("Deleted", deletedData)

	return bar
}

// commitsChart renders the commit count per time bucket.
func commitsChart(timeline []models.TimeBucketPoint, width models.BucketWidth, total int) *charts.Bar {
	if len(timeline) == 0 {
		return emptyBarChart("Commit Frequency")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Commit Frequency",
			Subtitle: fmt.Sprintf("%s commits in the analyzed history", humanize.Comma(int64(total))),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: fullZoomPct}, opts.DataZoom{Type: "inside"}),
		charts.WithXAxisOpts(opts.XAxis{Name: axisName(width)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Commits"}),
	)
	bar.SetXAxis(bucketLabels(timeline))

	data := make([]opts.BarData, len(timeline))
	for i, point := range timeline {
		data[i] = opts.BarData{Value: point.CommitCount}
	}
	bar.AddSeries("Commits", data)

	return bar
}

// contributorsChart renders stacked added/deleted bars for the most active
// authors. Contributors arrive sorted by commit count, so the top slice is
// the busiest authors.
func contributorsChart(contributors []models.ContributorStats, limit int) *charts.Bar {
	if len(contributors) == 0 {
		return emptyBarChart("Top Contributors")
	}

	top := contributors
	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}

	labels := make([]string, len(top))
	addedData := make([]opts.BarData, len(top))
	deletedData := make([]opts.BarData, len(top))
	for i, c := range top {
		labels[i] = c.Name
		addedData[i] = opts.BarData{Value: c.LinesAdded}
		deletedData[i] = opts.BarData{Value: c.LinesDeleted}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Top Contributors",
			Subtitle: fmt.Sprintf("Lines changed by the %d most active authors", len(top)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "5px"}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 45, Interval: "0"}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Lines"}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("Added", addedData, charts.WithBarChartOpts(opts.BarChart{Stack: plotStackName}))
	bar.AddSeries("Deleted", deletedData, charts.WithBarChartOpts(opts.BarChart{Stack: plotStackName}))

	return bar
}

// fileTypesChart renders churn per file type as a pie.
func fileTypesChart(types []models.FileTypeStats) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Churn by File Type",
			Subtitle: "Lines added plus deleted per file type",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Top: "bottom"}),
	)

	pieData := make([]opts.PieData, 0, len(types))
	for _, ft := range types {
		churn := ft.LinesAdded + ft.LinesDeleted
		if churn == 0 {
			continue
		}
		pieData = append(pieData, opts.PieData{Name: ft.FileType, Value: churn})
	}

	pie.AddSeries("Churn", pieData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c} ({d}%)",
			}),
		)

	return pie
}

// sequenceChart renders the unclamped cumulative line count per commit
// index. Unlike the growth chart it can dip below zero when deletions
// outpace the measured additions.
func sequenceChart(sequence []models.SequencePoint) *charts.Line {
	if len(sequence) == 0 {
		return emptyLineChart("Commit Sequence")
	}

	labels := make([]string, len(sequence))
	data := make([]opts.LineData, len(sequence))
	for i, point := range sequence {
		labels[i] = shortSHA(point.SHA)
		data[i] = opts.LineData{Value: point.CumulativeLines}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Commit Sequence",
			Subtitle: "Cumulative lines per commit, unclamped",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: fullZoomPct}, opts.DataZoom{Type: "inside"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Commit"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cumulative Lines"}),
	)
	line.SetXAxis(labels)
	line.AddSeries("Lines", data)

	return line
}

func emptyLineChart(title string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "No data (empty repository or time range)",
		}),
	)
	line.SetXAxis([]string{})
	return line
}

func emptyBarChart(title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "No data (empty repository or time range)",
		}),
	)
	bar.SetXAxis([]string{})
	return bar
}

func bucketLabels(timeline []models.TimeBucketPoint) []string {
	labels := make([]string, len(timeline))
	for i, point := range timeline {
		labels[i] = point.Bucket
	}
	return labels
}

func axisName(width models.BucketWidth) string {
	if width == models.BucketHourly {
		return "Hour (UTC)"
	}
	return "Day (UTC)"
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
