package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/sourcegraph/conc/pool"

	"github.com/repostat/repostat/internal/vcs"
	"github.com/repostat/repostat/pkg/models"
)

// PathFilter matches paths against gitignore-style exclusion patterns.
type PathFilter struct {
	matcher gitignore.Matcher
}

// NewPathFilter compiles exclusion patterns. With no patterns, nothing
// is excluded.
func NewPathFilter(patterns []string) *PathFilter {
	if len(patterns) == 0 {
		return &PathFilter{}
	}
	compiled := make([]gitignore.Pattern, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, gitignore.ParsePattern(p, nil))
	}
	return &PathFilter{matcher: gitignore.NewMatcher(compiled)}
}

// Excluded reports whether path matches any exclusion pattern.
func (f *PathFilter) Excluded(path string) bool {
	if f.matcher == nil {
		return false
	}
	return f.matcher.Match(strings.Split(path, "/"), false)
}

// splitRename decomposes the two textual rename forms, "old => new" and
// "{oldDir => newDir}/common", into old and new paths.
func splitRename(path string) (oldPath, newPath string, ok bool) {
	if open := strings.Index(path, "{"); open >= 0 {
		if end := strings.Index(path[open:], "}"); end >= 0 {
			segment := path[open+1 : open+end]
			if arrow := strings.Index(segment, " => "); arrow >= 0 {
				prefix := path[:open]
				suffix := path[open+end+1:]
				oldPath = cleanRenamePath(prefix + segment[:arrow] + suffix)
				newPath = cleanRenamePath(prefix + segment[arrow+4:] + suffix)
				return oldPath, newPath, true
			}
		}
	}
	if arrow := strings.Index(path, " => "); arrow >= 0 {
		return path[:arrow], path[arrow+4:], true
	}
	return "", "", false
}

// cleanRenamePath collapses the separator doubling left behind by empty
// brace segments, as in "src/{ => sub}/x.ts".
func cleanRenamePath(p string) string {
	p = strings.ReplaceAll(p, "//", "/")
	return strings.TrimPrefix(p, "/")
}

// blobFetch is one pending parent-commit size lookup for a rename that
// crossed the exclusion boundary.
type blobFetch struct {
	path    string // old path, resolved at the parent commit
	keepIdx int    // kept entry to merge an addition into, -1 for a synthetic deletion
	binary  bool
	label   string

	lines int
	bytes int64
}

// ExclusionResolver filters one commit's file changes against exclusion
// patterns and corrects renames that cross the exclusion boundary. The
// diff delta at a rename commit reflects only the edit, not the file's
// pre-existing size, so a boundary crossing needs the parent-commit
// blob size applied on top.
type ExclusionResolver struct {
	filter     *PathFilter
	classifier *models.Classifier
	inspector  vcs.BlobInspector
	workers    int
}

// NewExclusionResolver creates a resolver. The inspector may be nil when
// no patterns are configured, since no corrections can then arise.
func NewExclusionResolver(filter *PathFilter, classifier *models.Classifier, inspector vcs.BlobInspector, workers int) *ExclusionResolver {
	if filter == nil {
		filter = NewPathFilter(nil)
	}
	if classifier == nil {
		classifier = models.NewClassifier(nil)
	}
	if workers <= 0 {
		workers = 4
	}
	return &ExclusionResolver{
		filter:     filter,
		classifier: classifier,
		inspector:  inspector,
		workers:    workers,
	}
}

// Resolve applies exclusions to one commit's parsed changes and returns
// the final FileChange list. parentSHA is the commit's first parent,
// needed to size rename corrections. Excluded entries are dropped so
// their deltas never reach the commit totals.
func (r *ExclusionResolver) Resolve(ctx context.Context, files []models.FileChange, parentSHA string) ([]models.FileChange, error) {
	kept := make([]models.FileChange, 0, len(files))
	var fetches []*blobFetch

	for _, fc := range files {
		oldPath, newPath, isRename := splitRename(fc.Path)
		if !isRename {
			if r.filter.Excluded(fc.Path) {
				continue
			}
			kept = append(kept, fc)
			continue
		}

		oldExcluded := r.filter.Excluded(oldPath)
		newExcluded := r.filter.Excluded(newPath)
		switch {
		case oldExcluded && newExcluded:
			// Fully outside measured scope.
		case !oldExcluded && !newExcluded:
			fc.Path = newPath
			kept = append(kept, fc)
		case !oldExcluded && newExcluded:
			// Left measured scope. The edit happened at the excluded
			// destination, so only the departing content counts,
			// sized as it existed at the parent commit.
			fetches = append(fetches, &blobFetch{
				path:    oldPath,
				keepIdx: -1,
				binary:  fc.Binary || r.classifier.IsBinary(oldPath),
				label:   r.classifier.Classify(oldPath),
			})
		default:
			// Entered measured scope. Keep the edit delta and add the
			// parent-commit size on top.
			fc.Path = newPath
			kept = append(kept, fc)
			fetches = append(fetches, &blobFetch{
				path:    oldPath,
				keepIdx: len(kept) - 1,
				binary:  fc.Binary || r.classifier.IsBinary(oldPath),
			})
		}
	}

	if len(fetches) == 0 {
		return kept, nil
	}
	if parentSHA == "" {
		return nil, fmt.Errorf("rename of %s: no parent commit to size the correction against", fetches[0].path)
	}
	if r.inspector == nil {
		return nil, fmt.Errorf("rename of %s: no blob inspector configured", fetches[0].path)
	}

	p := pool.New().WithMaxGoroutines(r.workers).WithContext(ctx)
	for _, f := range fetches {
		p.Go(func(ctx context.Context) error {
			size, err := r.inspector.ByteSize(ctx, parentSHA, f.path)
			if err != nil {
				return fmt.Errorf("blob size of %s at %s: %w", f.path, parentSHA, err)
			}
			f.bytes = size

			if !f.binary {
				lines, err := r.inspector.LineCount(ctx, parentSHA, f.path)
				if err != nil {
					return fmt.Errorf("line count of %s at %s: %w", f.path, parentSHA, err)
				}
				f.lines = lines
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	// Fold corrections back into the ordered list.
	for _, f := range fetches {
		if f.keepIdx >= 0 {
			kept[f.keepIdx].LinesAdded += f.lines
			kept[f.keepIdx].EstBytesAdded += f.bytes
			continue
		}
		kept = append(kept, models.FileChange{
			Path:            f.path,
			FileType:        f.label,
			Binary:          f.binary,
			LinesDeleted:    f.lines,
			EstBytesDeleted: f.bytes,
		})
	}
	return kept, nil
}
