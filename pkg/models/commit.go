package models

import "time"

// FileChange represents one file's delta within a single commit.
// Byte fields are estimates derived from line counts (see BytesPerLine in
// config); only rename-boundary corrections carry measured blob sizes.
// Immutable once produced.
type FileChange struct {
	Path            string `json:"path"`
	LinesAdded      int    `json:"lines_added"`
	LinesDeleted    int    `json:"lines_deleted"`
	FileType        string `json:"file_type"`
	EstBytesAdded   int64  `json:"est_bytes_added"`
	EstBytesDeleted int64  `json:"est_bytes_deleted"`
	Binary          bool   `json:"binary,omitempty"`
}

// Churn returns lines added plus lines deleted.
func (f FileChange) Churn() int {
	return f.LinesAdded + f.LinesDeleted
}

// CommitRecord represents one commit: metadata plus the resolved file
// changes and their aggregate totals. The authoritative unit of history;
// immutable after creation and stored losslessly in the cache.
type CommitRecord struct {
	SHA          string       `json:"sha"`
	AuthorName   string       `json:"author_name"`
	AuthorEmail  string       `json:"author_email"`
	Timestamp    time.Time    `json:"timestamp"`
	Message      string       `json:"message"`
	LinesAdded   int          `json:"lines_added"`
	LinesDeleted int          `json:"lines_deleted"`
	BytesAdded   int64        `json:"bytes_added"`
	BytesDeleted int64        `json:"bytes_deleted"`
	FilesChanged []FileChange `json:"files_changed"`
}

// NewCommitRecord builds a record from metadata and resolved file changes,
// computing the aggregate totals. FilesChanged is never nil so records
// survive a JSON round-trip unchanged.
func NewCommitRecord(sha, authorName, authorEmail string, when time.Time, message string, files []FileChange) CommitRecord {
	if files == nil {
		files = []FileChange{}
	}
	rec := CommitRecord{
		SHA:          sha,
		AuthorName:   authorName,
		AuthorEmail:  authorEmail,
		Timestamp:    when,
		Message:      message,
		FilesChanged: files,
	}
	for _, f := range files {
		rec.LinesAdded += f.LinesAdded
		rec.LinesDeleted += f.LinesDeleted
		rec.BytesAdded += f.EstBytesAdded
		rec.BytesDeleted += f.EstBytesDeleted
	}
	return rec
}

// NetLines returns lines added minus lines deleted.
func (c CommitRecord) NetLines() int {
	return c.LinesAdded - c.LinesDeleted
}

// Churn returns lines added plus lines deleted.
func (c CommitRecord) Churn() int {
	return c.LinesAdded + c.LinesDeleted
}
