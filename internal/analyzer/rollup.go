package analyzer

import (
	"sort"

	"github.com/repostat/repostat/pkg/models"
)

// RollupContributors aggregates per-author activity across commits,
// keyed by author email. Results are ordered by churn descending with
// email as the tiebreak.
func RollupContributors(commits []models.CommitRecord) []models.ContributorStats {
	byEmail := make(map[string]*models.ContributorStats)
	for _, c := range commits {
		cs, ok := byEmail[c.AuthorEmail]
		if !ok {
			cs = &models.ContributorStats{
				Name:        c.AuthorName,
				Email:       c.AuthorEmail,
				FirstCommit: c.Timestamp,
				LastCommit:  c.Timestamp,
			}
			byEmail[c.AuthorEmail] = cs
		}
		cs.Commits++
		cs.LinesAdded += c.LinesAdded
		cs.LinesDeleted += c.LinesDeleted
		cs.BytesAdded += c.BytesAdded
		cs.BytesDeleted += c.BytesDeleted
		if c.Timestamp.Before(cs.FirstCommit) {
			cs.FirstCommit = c.Timestamp
		}
		if c.Timestamp.After(cs.LastCommit) {
			cs.LastCommit = c.Timestamp
		}
	}

	out := make([]models.ContributorStats, 0, len(byEmail))
	for _, cs := range byEmail {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Churn() != out[j].Churn() {
			return out[i].Churn() > out[j].Churn()
		}
		return out[i].Email < out[j].Email
	})
	return out
}

// RollupFileTypes aggregates activity per file-type label. Files counts
// distinct paths, Commits counts commits that touch the label at least
// once. Ordered by churn descending with the label as tiebreak.
func RollupFileTypes(commits []models.CommitRecord) []models.FileTypeStats {
	type typeAgg struct {
		stats models.FileTypeStats
		paths map[string]struct{}
	}
	byType := make(map[string]*typeAgg)

	for _, c := range commits {
		seen := make(map[string]struct{})
		for _, fc := range c.FilesChanged {
			agg, ok := byType[fc.FileType]
			if !ok {
				agg = &typeAgg{
					stats: models.FileTypeStats{FileType: fc.FileType},
					paths: make(map[string]struct{}),
				}
				byType[fc.FileType] = agg
			}
			agg.paths[fc.Path] = struct{}{}
			agg.stats.LinesAdded += fc.LinesAdded
			agg.stats.LinesDeleted += fc.LinesDeleted
			agg.stats.BytesAdded += fc.EstBytesAdded
			agg.stats.BytesDeleted += fc.EstBytesDeleted
			if _, dup := seen[fc.FileType]; !dup {
				seen[fc.FileType] = struct{}{}
				agg.stats.Commits++
			}
		}
	}

	out := make([]models.FileTypeStats, 0, len(byType))
	for _, agg := range byType {
		agg.stats.Files = len(agg.paths)
		out = append(out, agg.stats)
	}
	sort.Slice(out, func(i, j int) bool {
		ci := out[i].LinesAdded + out[i].LinesDeleted
		cj := out[j].LinesAdded + out[j].LinesDeleted
		if ci != cj {
			return ci > cj
		}
		return out[i].FileType < out[j].FileType
	})
	return out
}
