package analyzer

import (
	"context"
	"log/slog"
	"time"

	"github.com/repostat/repostat/internal/cache"
	"github.com/repostat/repostat/internal/progress"
	"github.com/repostat/repostat/internal/vcs"
	"github.com/repostat/repostat/pkg/models"
)

// DefaultGitTimeout is the default timeout for git operations.
const DefaultGitTimeout = 5 * time.Minute

// HistoryAnalyzer walks a repository's commit history and resolves every
// commit into a CommitRecord: parsed diff stats, exclusion filtering,
// rename corrections, and incremental caching.
type HistoryAnalyzer struct {
	opener        vcs.Opener
	cache         *cache.Cache
	schemaVersion string
	classifier    *models.Classifier
	filter        *PathFilter
	bytesPerLine  int
	maxCommits    int
	workers       int
	clearCache    bool
	spinner       *progress.Tracker
}

// HistoryOption is a functional option for configuring HistoryAnalyzer.
type HistoryOption func(*HistoryAnalyzer)

// WithOpener sets the VCS opener (useful for testing).
func WithOpener(opener vcs.Opener) HistoryOption {
	return func(a *HistoryAnalyzer) {
		a.opener = opener
	}
}

// WithCache sets the commit history cache. Without one every run rebuilds
// the full history.
func WithCache(c *cache.Cache) HistoryOption {
	return func(a *HistoryAnalyzer) {
		a.cache = c
	}
}

// WithSchemaVersion overrides the schema version cache entries are tagged
// with.
func WithSchemaVersion(v string) HistoryOption {
	return func(a *HistoryAnalyzer) {
		if v != "" {
			a.schemaVersion = v
		}
	}
}

// WithClassifier sets the file-type classifier.
func WithClassifier(c *models.Classifier) HistoryOption {
	return func(a *HistoryAnalyzer) {
		if c != nil {
			a.classifier = c
		}
	}
}

// WithExclusions sets gitignore-style patterns for paths whose changes are
// dropped from the history.
func WithExclusions(patterns []string) HistoryOption {
	return func(a *HistoryAnalyzer) {
		a.filter = NewPathFilter(patterns)
	}
}

// WithBytesPerLine sets the bytes-per-line estimation constant.
func WithBytesPerLine(n int) HistoryOption {
	return func(a *HistoryAnalyzer) {
		if n > 0 {
			a.bytesPerLine = n
		}
	}
}

// WithMaxCommits bounds the walk to the most recent n commits. Bounded
// runs bypass the cache in both directions.
func WithMaxCommits(n int) HistoryOption {
	return func(a *HistoryAnalyzer) {
		if n > 0 {
			a.maxCommits = n
		}
	}
}

// WithWorkers sets the size of the blob lookup pool used for rename
// corrections.
func WithWorkers(n int) HistoryOption {
	return func(a *HistoryAnalyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithClearCache drops the repository's cache entry before analyzing.
func WithClearCache() HistoryOption {
	return func(a *HistoryAnalyzer) {
		a.clearCache = true
	}
}

// WithSpinner sets a progress spinner ticked once per processed commit.
func WithSpinner(spinner *progress.Tracker) HistoryOption {
	return func(a *HistoryAnalyzer) {
		a.spinner = spinner
	}
}

// NewHistoryAnalyzer creates a new history analyzer.
func NewHistoryAnalyzer(opts ...HistoryOption) *HistoryAnalyzer {
	a := &HistoryAnalyzer{
		opener:        vcs.DefaultOpener(),
		schemaVersion: cache.SchemaVersion,
		classifier:    models.NewClassifier(nil),
		filter:        NewPathFilter(nil),
		bytesPerLine:  DefaultBytesPerLine,
		workers:       4,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Extraction is the walker's output: the resolved history, oldest first,
// plus the repository identity it came from.
type Extraction struct {
	Commits       []models.CommitRecord
	Meta          vcs.Meta
	Fingerprint   string
	CachedCommits int
}

// AnalyzeRepo extracts the repository's commit history.
func (a *HistoryAnalyzer) AnalyzeRepo(repoPath string) (*Extraction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultGitTimeout)
	defer cancel()
	return a.AnalyzeRepoWithContext(ctx, repoPath)
}

// AnalyzeRepoWithContext extracts commit history with a context for
// cancellation/timeout. Cancellation is honored between commits.
func (a *HistoryAnalyzer) AnalyzeRepoWithContext(ctx context.Context, repoPath string) (*Extraction, error) {
	repo, err := a.opener.Open(repoPath)
	if err != nil {
		return nil, err
	}

	meta, err := repo.Meta()
	if err != nil {
		return nil, err
	}
	fingerprint, err := repo.Fingerprint()
	if err != nil {
		return nil, err
	}

	if a.clearCache && a.cache != nil {
		if err := a.cache.Invalidate(fingerprint); err != nil {
			slog.Warn("cache invalidation failed", "fingerprint", fingerprint, "error", err)
		}
	}

	infos, err := repo.Commits(ctx, a.maxCommits)
	if err != nil {
		return nil, err
	}

	// Bounded walks see a truncated window, so their records must neither
	// feed the cache nor be served from it.
	useCache := a.maxCommits <= 0 && a.cache != nil && a.cache.Enabled()

	var (
		commits []models.CommitRecord
		cached  int
	)
	pending := infos

	if useCache {
		if entry, ok := a.cache.Load(fingerprint, a.schemaVersion); ok {
			// Resume strictly after the cached boundary commit. A boundary
			// no longer present in the log means the history was rewritten;
			// rebuild from scratch.
			if idx := commitIndex(infos, entry.LastSHA); idx >= 0 {
				commits = append(commits, entry.Commits...)
				cached = len(entry.Commits)
				pending = infos[idx+1:]
			}
		}
	}

	parser := NewDiffParser(a.classifier, a.bytesPerLine)
	resolver := NewExclusionResolver(a.filter, a.classifier, repo.Inspector(), a.workers)

	for _, info := range pending {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if a.spinner != nil {
			a.spinner.Tick()
		}

		rec, err := a.resolveCommit(ctx, repo, parser, resolver, info)
		if err != nil {
			return nil, err
		}
		commits = append(commits, rec)
	}

	if useCache && len(pending) > 0 {
		if err := a.cache.Save(fingerprint, a.schemaVersion, commits); err != nil {
			slog.Warn("cache write failed", "fingerprint", fingerprint, "error", err)
		}
	}

	return &Extraction{
		Commits:       commits,
		Meta:          meta,
		Fingerprint:   fingerprint,
		CachedCommits: cached,
	}, nil
}

// resolveCommit turns one commit into a record. Transient per-commit
// failures degrade to a zero-delta record so a single bad commit cannot
// abort the walk; structural violations and cancellation propagate.
func (a *HistoryAnalyzer) resolveCommit(ctx context.Context, repo vcs.Repository, parser *DiffParser, resolver *ExclusionResolver, info vcs.CommitInfo) (models.CommitRecord, error) {
	stats, err := repo.StatsFor(ctx, info.Hash)
	if err != nil {
		if ctx.Err() != nil {
			return models.CommitRecord{}, ctx.Err()
		}
		slog.Warn("diff stats unavailable, recording zero delta", "sha", info.Hash, "error", err)
		return zeroDelta(info), nil
	}

	parsed, err := parser.Parse(info.Hash, stats)
	if err != nil {
		return models.CommitRecord{}, err
	}

	files, err := resolver.Resolve(ctx, parsed.FilesChanged, info.Parent)
	if err != nil {
		if ctx.Err() != nil {
			return models.CommitRecord{}, ctx.Err()
		}
		slog.Warn("rename correction failed, recording zero delta", "sha", info.Hash, "error", err)
		return zeroDelta(info), nil
	}

	return models.NewCommitRecord(info.Hash, info.AuthorName, info.AuthorEmail, info.When, info.Subject, files), nil
}

// zeroDelta records a commit whose diff could not be resolved. Metadata
// is preserved so commit counts and contributor activity stay accurate.
func zeroDelta(info vcs.CommitInfo) models.CommitRecord {
	return models.NewCommitRecord(info.Hash, info.AuthorName, info.AuthorEmail, info.When, info.Subject, nil)
}

// commitIndex returns the position of sha in infos, or -1 when absent.
func commitIndex(infos []vcs.CommitInfo, sha string) int {
	if sha == "" {
		return -1
	}
	for i, info := range infos {
		if info.Hash == sha {
			return i
		}
	}
	return -1
}
