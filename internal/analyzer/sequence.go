package analyzer

import "github.com/repostat/repostat/pkg/models"

// AggregateSequence folds ordered commits into per-commit cumulative
// points. The seed carries the cumulative state preceding the first
// commit, for analyzing a tail of history that follows earlier, unseen
// state; a zero seed starts from nothing. Point 0 is always a synthetic
// baseline holding the seed, real commits follow from index 1.
//
// Unlike the timeline view, no clamping is applied: splitting a commit
// list at any point and seeding the second call with the first call's
// final state yields the same final cumulative values as one pass.
func AggregateSequence(commits []models.CommitRecord, seed models.SequenceSeed) []models.SequencePoint {
	if len(commits) == 0 {
		return []models.SequencePoint{}
	}

	points := make([]models.SequencePoint, 0, len(commits)+1)
	points = append(points, models.SequencePoint{
		Index:           0,
		SHA:             models.SequenceStartSHA,
		Timestamp:       commits[0].Timestamp,
		CommitCount:     0,
		CumulativeLines: seed.Lines,
		CumulativeBytes: seed.Bytes,
	})

	cumLines, cumBytes := seed.Lines, seed.Bytes
	for i, commit := range commits {
		added := int64(commit.LinesAdded)
		deleted := int64(commit.LinesDeleted)
		cumLines += added - deleted
		cumBytes += commit.BytesAdded - commit.BytesDeleted

		points = append(points, models.SequencePoint{
			Index:           i + 1,
			SHA:             commit.SHA,
			Timestamp:       commit.Timestamp,
			CommitCount:     1,
			LinesAdded:      added,
			LinesDeleted:    deleted,
			NetLines:        added - deleted,
			CumulativeLines: cumLines,
			CumulativeBytes: cumBytes,
		})
	}
	return points
}
