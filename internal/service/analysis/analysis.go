package analysis

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/repostat/repostat/internal/analyzer"
	"github.com/repostat/repostat/internal/cache"
	"github.com/repostat/repostat/internal/progress"
	"github.com/repostat/repostat/internal/vcs"
	"github.com/repostat/repostat/pkg/config"
	"github.com/repostat/repostat/pkg/models"
)

// Service orchestrates history analysis operations.
type Service struct {
	config *config.Config
	opener vcs.Opener
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithOpener sets the VCS opener (for testing).
func WithOpener(opener vcs.Opener) Option {
	return func(s *Service) {
		s.opener = opener
	}
}

// New creates a new analysis service.
func New(opts ...Option) *Service {
	s := &Service{
		config: config.LoadOrDefault(),
		opener: vcs.DefaultOpener(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HistoryOptions configures history extraction.
type HistoryOptions struct {
	MaxCommits int
	ClearCache bool
	NoCache    bool
	Spinner    *progress.Tracker
}

// AnalyzeHistory walks the repository's commit history and materializes
// every aggregate view: timeline, sequence, contributor and file-type
// rollups, and the growth trend.
func (s *Service) AnalyzeHistory(repoPath string, opts HistoryOptions) (*models.HistoryResult, error) {
	maxCommits := opts.MaxCommits
	if maxCommits <= 0 {
		maxCommits = s.config.Analysis.MaxCommits
	}

	analyzerOpts := []analyzer.HistoryOption{
		analyzer.WithOpener(s.opener),
		analyzer.WithBytesPerLine(s.config.Analysis.BytesPerLine),
		analyzer.WithWorkers(s.config.Analysis.Workers),
	}
	if c := s.openCache(repoPath, opts.NoCache); c != nil {
		analyzerOpts = append(analyzerOpts, analyzer.WithCache(c))
	}
	if len(s.config.Exclude.Patterns) > 0 {
		analyzerOpts = append(analyzerOpts, analyzer.WithExclusions(s.config.Exclude.Patterns))
	}
	if len(s.config.FileTypes.Suffixes) > 0 {
		analyzerOpts = append(analyzerOpts, analyzer.WithClassifier(models.NewClassifier(s.config.FileTypes.Suffixes)))
	}
	if maxCommits > 0 {
		analyzerOpts = append(analyzerOpts, analyzer.WithMaxCommits(maxCommits))
	}
	if opts.ClearCache {
		analyzerOpts = append(analyzerOpts, analyzer.WithClearCache())
	}
	if opts.Spinner != nil {
		analyzerOpts = append(analyzerOpts, analyzer.WithSpinner(opts.Spinner))
	}

	historyAnalyzer := analyzer.NewHistoryAnalyzer(analyzerOpts...)
	extraction, err := historyAnalyzer.AnalyzeRepo(repoPath)
	if err != nil {
		return nil, err
	}

	categories := models.CategoriesFromStrings(s.config.FileTypes.Categories)
	timeline, width := analyzer.AggregateTimeline(extraction.Commits, s.config.Analysis.HourlyThresholdHours, categories)
	trend := analyzer.ComputeGrowthTrend(timeline)

	return &models.HistoryResult{
		Repo: models.RepoMeta{
			Root:        extraction.Meta.Root,
			Branch:      extraction.Meta.Branch,
			Origin:      extraction.Meta.Origin,
			Fingerprint: extraction.Fingerprint,
		},
		GeneratedAt:   time.Now().UTC(),
		BucketWidth:   width,
		Commits:       extraction.Commits,
		Timeline:      timeline,
		Sequence:      analyzer.AggregateSequence(extraction.Commits, models.SequenceSeed{}),
		Contributors:  analyzer.RollupContributors(extraction.Commits),
		FileTypes:     analyzer.RollupFileTypes(extraction.Commits),
		Trend:         trend,
		CachedCommits: extraction.CachedCommits,
	}, nil
}

// CacheStats reports entry statistics for the repository's history cache.
func (s *Service) CacheStats(repoPath string) (*cache.Stats, error) {
	c, err := cache.New(s.cacheDir(repoPath), true)
	if err != nil {
		return nil, err
	}
	return c.GetStats()
}

// ClearCache removes every cache entry for the repository.
func (s *Service) ClearCache(repoPath string) error {
	c, err := cache.New(s.cacheDir(repoPath), true)
	if err != nil {
		return err
	}
	return c.Clear()
}

// cacheDir resolves the configured cache directory, anchoring relative
// paths at the analyzed repository's root.
func (s *Service) cacheDir(repoPath string) string {
	dir := s.config.Cache.Dir
	if dir == "" {
		dir = config.DefaultConfig().Cache.Dir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(repoPath, dir)
	}
	return dir
}

// openCache builds the history cache for a run. Cache trouble never fails
// an analysis; the run proceeds uncached.
func (s *Service) openCache(repoPath string, noCache bool) *cache.Cache {
	if noCache || !s.config.Cache.Enabled {
		return nil
	}
	dir := s.cacheDir(repoPath)
	c, err := cache.New(dir, true)
	if err != nil {
		slog.Warn("cache unavailable, analyzing without it", "dir", dir, "error", err)
		return nil
	}
	return c
}
