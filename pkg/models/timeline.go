package models

// BucketWidth selects the wall-clock interval commits are grouped by.
type BucketWidth string

const (
	BucketHourly BucketWidth = "hour"
	BucketDaily  BucketWidth = "day"
)

// TimeBucketPoint is one wall-clock bucket of the time-series view. Bucket
// keys are UTC, "2006-01-02" for daily and "2006-01-02T15:00" for hourly
// buckets, so lexicographic order is chronological order.
type TimeBucketPoint struct {
	Bucket          string            `json:"bucket"`
	CommitCount     int               `json:"commit_count"`
	SHAs            []string          `json:"shas"`
	LinesAdded      CategoryBreakdown `json:"lines_added"`
	LinesDeleted    CategoryBreakdown `json:"lines_deleted"`
	CumulativeLines CategoryBreakdown `json:"cumulative_lines"`
	BytesAdded      CategoryBreakdown `json:"bytes_added"`
	BytesDeleted    CategoryBreakdown `json:"bytes_deleted"`
	CumulativeBytes CategoryBreakdown `json:"cumulative_bytes"`
}
