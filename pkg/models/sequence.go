package models

import "time"

// SequenceStartSHA marks the synthetic baseline point every sequence begins
// with.
const SequenceStartSHA = "start"

// SequenceSeed carries the cumulative state a sequence aggregation starts
// from. Zero for full-history runs; the previous window's end state when
// aggregating a truncated tail.
type SequenceSeed struct {
	Lines int64 `json:"lines"`
	Bytes int64 `json:"bytes"`
}

// SequencePoint is one per-commit-index entry of the sequence view. Index 0
// is always the synthetic baseline (SHA "start", commit count 0, cumulative
// equal to the seed); real commits occupy indexes 1..N. Cumulative values
// are never clamped here.
type SequencePoint struct {
	Index           int       `json:"index"`
	SHA             string    `json:"sha"`
	Timestamp       time.Time `json:"timestamp"`
	CommitCount     int       `json:"commit_count"`
	LinesAdded      int64     `json:"lines_added"`
	LinesDeleted    int64     `json:"lines_deleted"`
	NetLines        int64     `json:"net_lines"`
	CumulativeLines int64     `json:"cumulative_lines"`
	CumulativeBytes int64     `json:"cumulative_bytes"`
}

// EndSeed returns the cumulative state after the last point, suitable for
// seeding the aggregation of a following window.
func EndSeed(points []SequencePoint) SequenceSeed {
	if len(points) == 0 {
		return SequenceSeed{}
	}
	last := points[len(points)-1]
	return SequenceSeed{Lines: last.CumulativeLines, Bytes: last.CumulativeBytes}
}
