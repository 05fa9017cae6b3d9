package analyzer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/repostat/repostat/internal/vcs"
	"github.com/repostat/repostat/pkg/models"
)

// ErrMissingStats is returned when a commit is handed to the parser
// without a diff summary. This is a caller bug, not a repository state.
var ErrMissingStats = errors.New("missing diff stats")

// DefaultBytesPerLine is the multiplier used to estimate byte deltas
// from line deltas.
const DefaultBytesPerLine = 50

// ParsedDiff is the structured form of one commit's stat block.
type ParsedDiff struct {
	LinesAdded   int
	LinesDeleted int
	BytesAdded   int64
	BytesDeleted int64
	FilesChanged []models.FileChange
}

// FileBytes holds the estimated byte delta for a single file.
type FileBytes struct {
	Added   int64
	Deleted int64
}

// ByteChanges aggregates estimated byte deltas across a stat block.
type ByteChanges struct {
	TotalAdded   int64
	TotalDeleted int64
	PerFile      map[string]FileBytes
}

// statLine is one parsed "<added>\t<deleted>\t<path>" line.
type statLine struct {
	added   int
	deleted int
	path    string
	binary  bool
}

// parseStatLines parses a raw numstat block. Malformed lines are
// skipped. Lines with "-" counts mark binary files.
func parseStatLines(raw string) []statLine {
	var lines []statLine
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 || parts[2] == "" {
			continue
		}
		path := parts[2]

		if parts[0] == "-" || parts[1] == "-" {
			lines = append(lines, statLine{path: path, binary: true})
			continue
		}

		added, err := strconv.Atoi(parts[0])
		if err != nil || added < 0 {
			continue
		}
		deleted, err := strconv.Atoi(parts[1])
		if err != nil || deleted < 0 {
			continue
		}
		lines = append(lines, statLine{added: added, deleted: deleted, path: path})
	}
	return lines
}

// ParseByteChanges estimates byte deltas for a raw numstat block at
// bytesPerLine bytes per changed line. Line counts are exact; the byte
// figures derived here are approximations. Binary marker lines carry no
// line counts and are left out of the per-file map entirely.
func ParseByteChanges(raw string, bytesPerLine int) ByteChanges {
	if bytesPerLine <= 0 {
		bytesPerLine = DefaultBytesPerLine
	}

	bc := ByteChanges{PerFile: make(map[string]FileBytes)}
	for _, sl := range parseStatLines(raw) {
		if sl.binary {
			continue
		}
		fb := FileBytes{
			Added:   int64(sl.added) * int64(bytesPerLine),
			Deleted: int64(sl.deleted) * int64(bytesPerLine),
		}
		bc.PerFile[sl.path] = fb
		bc.TotalAdded += fb.Added
		bc.TotalDeleted += fb.Deleted
	}
	return bc
}

// DiffParser turns raw commit stat blocks into structured file changes.
type DiffParser struct {
	classifier   *models.Classifier
	bytesPerLine int
}

// NewDiffParser creates a parser. A nil classifier uses the default
// file-type table, a non-positive bytesPerLine uses DefaultBytesPerLine.
func NewDiffParser(classifier *models.Classifier, bytesPerLine int) *DiffParser {
	if classifier == nil {
		classifier = models.NewClassifier(nil)
	}
	if bytesPerLine <= 0 {
		bytesPerLine = DefaultBytesPerLine
	}
	return &DiffParser{classifier: classifier, bytesPerLine: bytesPerLine}
}

// Parse converts one commit's stats into a ParsedDiff. Rename paths are
// kept in their raw form for the exclusion resolver to decompose. Files
// classified as binary contribute bytes but never lines.
func (p *DiffParser) Parse(sha string, stats *vcs.CommitStats) (*ParsedDiff, error) {
	if stats == nil {
		return nil, fmt.Errorf("commit %s: %w", sha, ErrMissingStats)
	}

	diff := &ParsedDiff{FilesChanged: []models.FileChange{}}
	bytes := ParseByteChanges(stats.Raw, p.bytesPerLine)

	for _, sl := range parseStatLines(stats.Raw) {
		label := p.classifier.Classify(sl.path)
		fc := models.FileChange{Path: sl.path, FileType: label}

		switch {
		case sl.binary:
			fc.Binary = true
		case label == models.FileTypeBinary:
			// Known sizes for a binary-typed path still count toward
			// byte totals, never line totals.
			fb := bytes.PerFile[sl.path]
			fc.Binary = true
			fc.EstBytesAdded = fb.Added
			fc.EstBytesDeleted = fb.Deleted
		default:
			fb := bytes.PerFile[sl.path]
			fc.LinesAdded = sl.added
			fc.LinesDeleted = sl.deleted
			fc.EstBytesAdded = fb.Added
			fc.EstBytesDeleted = fb.Deleted
		}

		diff.FilesChanged = append(diff.FilesChanged, fc)
		diff.LinesAdded += fc.LinesAdded
		diff.LinesDeleted += fc.LinesDeleted
		diff.BytesAdded += fc.EstBytesAdded
		diff.BytesDeleted += fc.EstBytesDeleted
	}
	return diff, nil
}
