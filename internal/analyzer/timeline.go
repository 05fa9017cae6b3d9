package analyzer

import (
	"sort"
	"time"

	"github.com/repostat/repostat/pkg/models"
)

// DefaultHourlyThresholdHours is the repository age below which the
// timeline buckets by hour instead of by day.
const DefaultHourlyThresholdHours = 48

// BucketWidthFor picks hourly buckets for repositories younger than the
// threshold and daily buckets otherwise.
func BucketWidthFor(commits []models.CommitRecord, thresholdHours int) models.BucketWidth {
	if thresholdHours <= 0 {
		thresholdHours = DefaultHourlyThresholdHours
	}
	if len(commits) == 0 {
		return models.BucketDaily
	}
	age := commits[len(commits)-1].Timestamp.Sub(commits[0].Timestamp)
	if age < time.Duration(thresholdHours)*time.Hour {
		return models.BucketHourly
	}
	return models.BucketDaily
}

// bucketKey formats a UTC bucket key, "2006-01-02" for daily buckets and
// "2006-01-02T15:00" for hourly ones. Keys sort chronologically.
func bucketKey(t time.Time, width models.BucketWidth) string {
	t = t.UTC()
	if width == models.BucketHourly {
		return t.Truncate(time.Hour).Format("2006-01-02T15:04")
	}
	return t.Format("2006-01-02")
}

// AggregateTimeline folds ordered commits into time buckets carrying
// per-bucket added/deleted breakdowns and a running cumulative
// breakdown. Each file change is categorized by its file-type label via
// the categories table. A synthetic all-zero baseline point is emitted
// one bucket width before the first commit, and cumulative counters are
// clamped non-negative after every commit, so partial history can never
// drive a cumulative view below zero. Points come back sorted ascending
// by bucket key, together with the width used.
func AggregateTimeline(commits []models.CommitRecord, thresholdHours int, categories map[string]models.Category) ([]models.TimeBucketPoint, models.BucketWidth) {
	width := BucketWidthFor(commits, thresholdHours)
	if len(commits) == 0 {
		return []models.TimeBucketPoint{}, width
	}
	if categories == nil {
		categories = models.DefaultCategories()
	}

	first := commits[0].Timestamp
	var baseline time.Time
	if width == models.BucketHourly {
		baseline = first.Add(-time.Hour)
	} else {
		baseline = first.AddDate(0, 0, -1)
	}

	points := make(map[string]*models.TimeBucketPoint)
	baseKey := bucketKey(baseline, width)
	points[baseKey] = &models.TimeBucketPoint{Bucket: baseKey, SHAs: []string{}}

	var cumLines, cumBytes models.CategoryBreakdown

	for _, commit := range commits {
		key := bucketKey(commit.Timestamp, width)
		pt, ok := points[key]
		if !ok {
			pt = &models.TimeBucketPoint{Bucket: key, SHAs: []string{}}
			points[key] = pt
		}
		pt.CommitCount++
		pt.SHAs = append(pt.SHAs, commit.SHA)

		for _, fc := range commit.FilesChanged {
			cat := categories[fc.FileType]

			pt.LinesAdded.Add(cat, int64(fc.LinesAdded))
			pt.LinesDeleted.Add(cat, int64(fc.LinesDeleted))
			pt.BytesAdded.Add(cat, fc.EstBytesAdded)
			pt.BytesDeleted.Add(cat, fc.EstBytesDeleted)

			cumLines.Add(cat, int64(fc.LinesAdded)-int64(fc.LinesDeleted))
			cumBytes.Add(cat, fc.EstBytesAdded-fc.EstBytesDeleted)
		}

		// Deletions can exceed in-view additions when history is
		// truncated; the cumulative view clamps rather than reporting
		// negative totals.
		cumLines.ClampNonNegative()
		cumBytes.ClampNonNegative()
		pt.CumulativeLines = cumLines
		pt.CumulativeBytes = cumBytes
	}

	out := make([]models.TimeBucketPoint, 0, len(points))
	for _, pt := range points {
		out = append(out, *pt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out, width
}
