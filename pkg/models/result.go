package models

import "time"

// ContributorStats aggregates one author's activity across the analyzed
// history, keyed by author email.
type ContributorStats struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Commits      int       `json:"commits"`
	LinesAdded   int       `json:"lines_added"`
	LinesDeleted int       `json:"lines_deleted"`
	BytesAdded   int64     `json:"bytes_added"`
	BytesDeleted int64     `json:"bytes_deleted"`
	FirstCommit  time.Time `json:"first_commit"`
	LastCommit   time.Time `json:"last_commit"`
}

// Churn returns lines added plus lines deleted.
func (c ContributorStats) Churn() int {
	return c.LinesAdded + c.LinesDeleted
}

// FileTypeStats aggregates activity for one file-type label.
type FileTypeStats struct {
	FileType     string `json:"file_type"`
	Files        int    `json:"files"`
	Commits      int    `json:"commits"`
	LinesAdded   int    `json:"lines_added"`
	LinesDeleted int    `json:"lines_deleted"`
	BytesAdded   int64  `json:"bytes_added"`
	BytesDeleted int64  `json:"bytes_deleted"`
}

// GrowthTrend holds regression statistics over the cumulative line series,
// one observation per time bucket.
type GrowthTrend struct {
	Slope       float64 `json:"slope"`
	Intercept   float64 `json:"intercept"`
	RSquared    float64 `json:"r_squared"`
	Correlation float64 `json:"correlation"`
}

// RepoMeta identifies the analyzed repository.
type RepoMeta struct {
	Root        string `json:"root"`
	Branch      string `json:"branch"`
	Origin      string `json:"origin,omitempty"`
	Fingerprint string `json:"fingerprint"`
}

// HistoryResult is the pipeline's combined output: the resolved commit
// history plus every aggregate view, fully materialized with no further
// repository access required.
type HistoryResult struct {
	Repo          RepoMeta           `json:"repo"`
	GeneratedAt   time.Time          `json:"generated_at"`
	BucketWidth   BucketWidth        `json:"bucket_width"`
	Commits       []CommitRecord     `json:"commits"`
	Timeline      []TimeBucketPoint  `json:"timeline"`
	Sequence      []SequencePoint    `json:"sequence"`
	Contributors  []ContributorStats `json:"contributors"`
	FileTypes     []FileTypeStats    `json:"file_types"`
	Trend         GrowthTrend        `json:"trend"`
	CachedCommits int                `json:"cached_commits"`
}

// HistorySummary condenses a HistoryResult for terminal output.
type HistorySummary struct {
	Repo            RepoMeta    `json:"repo"`
	Commits         int         `json:"commits"`
	CachedCommits   int         `json:"cached_commits"`
	Contributors    int         `json:"contributors"`
	FirstCommit     time.Time   `json:"first_commit"`
	LastCommit      time.Time   `json:"last_commit"`
	BucketWidth     BucketWidth `json:"bucket_width"`
	Buckets         int         `json:"buckets"`
	LinesAdded      int         `json:"lines_added"`
	LinesDeleted    int         `json:"lines_deleted"`
	NetLines        int         `json:"net_lines"`
	CumulativeLines int64       `json:"cumulative_lines"`
	CumulativeBytes int64       `json:"cumulative_bytes"`
	Trend           GrowthTrend `json:"trend"`
}

// Summarize condenses the result into a HistorySummary.
func (r *HistoryResult) Summarize() HistorySummary {
	s := HistorySummary{
		Repo:          r.Repo,
		Commits:       len(r.Commits),
		CachedCommits: r.CachedCommits,
		Contributors:  len(r.Contributors),
		BucketWidth:   r.BucketWidth,
		Buckets:       len(r.Timeline),
		Trend:         r.Trend,
	}
	if len(r.Commits) > 0 {
		s.FirstCommit = r.Commits[0].Timestamp
		s.LastCommit = r.Commits[len(r.Commits)-1].Timestamp
	}
	for _, c := range r.Commits {
		s.LinesAdded += c.LinesAdded
		s.LinesDeleted += c.LinesDeleted
	}
	s.NetLines = s.LinesAdded - s.LinesDeleted
	if n := len(r.Timeline); n > 0 {
		s.CumulativeLines = r.Timeline[n-1].CumulativeLines.Total
		s.CumulativeBytes = r.Timeline[n-1].CumulativeBytes.Total
	}
	return s
}
