package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for repostat.
type Config struct {
	// History extraction settings
	Analysis AnalysisConfig `koanf:"analysis" toml:"analysis"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude"`

	// File classification tables
	FileTypes FileTypesConfig `koanf:"file_types" toml:"file_types"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Report settings
	Report ReportConfig `koanf:"report" toml:"report"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// AnalysisConfig controls how commit history is extracted and aggregated.
type AnalysisConfig struct {
	// BytesPerLine is the multiplier used to estimate byte deltas from
	// line deltas. Line counts are exact; byte figures derived from them
	// are approximations.
	BytesPerLine int `koanf:"bytes_per_line" toml:"bytes_per_line"`

	// HourlyThresholdHours picks the timeline granularity: repositories
	// younger than this many hours bucket by hour, older ones by day.
	HourlyThresholdHours int `koanf:"hourly_threshold_hours" toml:"hourly_threshold_hours"`

	// MaxCommits limits extraction to the most recent N commits.
	// Zero means full history.
	MaxCommits int `koanf:"max_commits" toml:"max_commits"`

	// Workers bounds the pool used for blob lookups on renames that
	// cross an exclusion boundary.
	Workers int `koanf:"workers" toml:"workers"`
}

// ExcludeConfig defines path exclusion patterns in gitignore syntax.
type ExcludeConfig struct {
	Patterns []string `koanf:"patterns" toml:"patterns"`
}

// FileTypesConfig overrides the built-in file classification tables.
// Suffixes maps a lowercased path suffix to a file-type label, and
// Categories maps a label to one of application, test, build,
// documentation, or other. Empty maps keep the defaults.
type FileTypesConfig struct {
	Suffixes   map[string]string `koanf:"suffixes" toml:"suffixes"`
	Categories map[string]string `koanf:"categories" toml:"categories"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
}

// ReportConfig controls the HTML report.
type ReportConfig struct {
	Title           string `koanf:"title" toml:"title"`
	TopContributors int    `koanf:"top_contributors" toml:"top_contributors"`
}

// OutputConfig controls output format.
type OutputConfig struct {
	Format string `koanf:"format" toml:"format"`
	Color  bool   `koanf:"color" toml:"color"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			BytesPerLine:         50,
			HourlyThresholdHours: 48,
			MaxCommits:           0,
			Workers:              4,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{},
		},
		FileTypes: FileTypesConfig{
			Suffixes:   map[string]string{},
			Categories: map[string]string{},
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".repostat/cache",
		},
		Report: ReportConfig{
			Title:           "Repository History",
			TopContributors: 10,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		// Try to detect from content or default to TOML
		parser = toml.Parser()
	}

	// Load the config file
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	// Unmarshal into config struct
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	// Standard config file names to search for
	configNames := []string{
		"repostat.toml",
		"repostat.yaml",
		"repostat.yml",
		"repostat.json",
		".repostat.toml",
		".repostat.yaml",
		".repostat.yml",
		".repostat.json",
	}

	// Search in current directory and .repostat directory
	searchDirs := []string{".", ".repostat"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}
