// Package vcs provides version control system abstractions.
package vcs

import (
	"context"
	"time"
)

// CommitInfo holds the metadata of a single commit.
type CommitInfo struct {
	// Hash is the full commit SHA.
	Hash string
	// AuthorName and AuthorEmail identify the commit author.
	AuthorName  string
	AuthorEmail string
	// When is the author timestamp.
	When time.Time
	// Subject is the first line of the commit message.
	Subject string
	// Parent is the first parent SHA, empty for root commits.
	Parent string
}

// CommitStats carries the raw per-file change stats of one commit, one
// line per file in the form "<added>\t<deleted>\t<path>". Binary files
// use "-" for both counts, renames use "old => new" path forms.
type CommitStats struct {
	Raw string
}

// Meta identifies an opened repository.
type Meta struct {
	// Root is the absolute path of the working tree.
	Root string
	// Branch is the short name of the checked-out branch, empty when
	// the repository has no commits or HEAD is detached.
	Branch string
	// Origin is the URL of the origin remote, empty when unset.
	Origin string
}

// Repository provides read-only access to a repository's history.
type Repository interface {
	// Commits returns commit metadata ordered oldest first. A positive
	// maxCount keeps only the most recent commits. A repository without
	// commits yields an empty slice.
	Commits(ctx context.Context, maxCount int) ([]CommitInfo, error)
	// StatsFor returns the per-file change stats for the given commit,
	// diffed against its first parent.
	StatsFor(ctx context.Context, hash string) (*CommitStats, error)
	// Inspector returns a BlobInspector bound to this repository.
	Inspector() BlobInspector
	// Fingerprint returns a stable identity for the repository, usable
	// as a cache key.
	Fingerprint() (string, error)
	// Meta returns repository metadata.
	Meta() (Meta, error)
}

// BlobInspector answers size questions about a file as it existed at a
// given commit.
type BlobInspector interface {
	// LineCount returns the number of lines of the file at the commit.
	LineCount(ctx context.Context, hash, path string) (int, error)
	// ByteSize returns the stored blob size in bytes of the file at the
	// commit.
	ByteSize(ctx context.Context, hash, path string) (int64, error)
}

// Opener opens repositories.
type Opener interface {
	// Open opens a git repository, detecting .git in parent directories.
	Open(path string) (Repository, error)
}
