package cache

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"

	"github.com/repostat/repostat/pkg/models"
)

// SchemaVersion tags stored entries with the commit record wire shape.
// Bump it when the record layout changes so older entries read as misses
// instead of unmarshaling into garbage.
const SchemaVersion = "1"

// payloadMagic prefixes lz4 block-compressed entry payloads.
var payloadMagic = []byte("RSC1")

// maxPayloadSize bounds the decode buffer a stored header may request.
const maxPayloadSize = 1 << 31

const entryExt = ".lz4"

// Cache persists resolved commit history per repository fingerprint.
type Cache struct {
	dir     string
	enabled bool
}

// Entry is one stored history snapshot. Commits round-trip losslessly:
// loading an entry yields exactly the records that were saved.
type Entry struct {
	Fingerprint   string                `json:"fingerprint"`
	SchemaVersion string                `json:"schema_version"`
	LastSHA       string                `json:"last_sha"`
	SavedAt       time.Time             `json:"saved_at"`
	Commits       []models.CommitRecord `json:"commits"`
}

// New creates a cache rooted at dir.
func New(dir string, enabled bool) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false}, nil
	}

	// Ensure cache directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return &Cache{dir: dir, enabled: true}, nil
}

// Enabled reports whether the cache persists anything.
func (c *Cache) Enabled() bool {
	return c != nil && c.enabled
}

// Load returns the stored entry for the fingerprint. It reports a miss
// when the entry is absent, unreadable, corrupt, or written under a
// different schema version; read failures never surface as errors.
func (c *Cache) Load(fingerprint, schemaVersion string) (*Entry, bool) {
	if !c.Enabled() {
		return nil, false
	}

	data, err := os.ReadFile(c.keyPath(fingerprint))
	if err != nil {
		return nil, false
	}

	payload, err := decodePayload(data)
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, false
	}
	if entry.SchemaVersion != schemaVersion || entry.Fingerprint != fingerprint {
		return nil, false
	}
	return &entry, true
}

// Save overwrites the stored entry for the fingerprint. LastSHA is taken
// from the final commit in the list.
func (c *Cache) Save(fingerprint, schemaVersion string, commits []models.CommitRecord) error {
	if !c.Enabled() {
		return nil
	}

	entry := Entry{
		Fingerprint:   fingerprint,
		SchemaVersion: schemaVersion,
		SavedAt:       time.Now().UTC(),
		Commits:       commits,
	}
	if len(commits) > 0 {
		entry.LastSHA = commits[len(commits)-1].SHA
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(fingerprint), encodePayload(payload), 0600)
}

// Invalidate removes the entry for one fingerprint. A missing entry is
// not an error.
func (c *Cache) Invalidate(fingerprint string) error {
	if !c.Enabled() {
		return nil
	}
	err := os.Remove(c.keyPath(fingerprint))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if !c.Enabled() {
		return nil
	}
	return os.RemoveAll(c.dir)
}

// keyPath converts a fingerprint to a filesystem path.
func (c *Cache) keyPath(fingerprint string) string {
	// Use BLAKE3 hash of the fingerprint for the filename to avoid path issues
	hash := blake3.Sum256([]byte(fingerprint))
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+entryExt)
}

// encodePayload lz4-compresses a JSON payload, prefixed with the magic
// and the raw length needed to size the decode buffer. Incompressible
// payloads are stored as plain JSON.
func encodePayload(raw []byte) []byte {
	dst := make([]byte, lz4.CompressBlockBound(len(raw)))
	written, err := lz4.CompressBlock(raw, dst, nil)
	if err != nil || written == 0 {
		return raw
	}

	out := make([]byte, 0, len(payloadMagic)+binary.MaxVarintLen64+written)
	out = append(out, payloadMagic...)
	out = binary.AppendUvarint(out, uint64(len(raw)))
	return append(out, dst[:written]...)
}

// decodePayload reverses encodePayload, passing plain JSON through.
func decodePayload(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, payloadMagic) {
		return data, nil
	}

	body := data[len(payloadMagic):]
	rawLen, n := binary.Uvarint(body)
	if n <= 0 || rawLen > maxPayloadSize {
		return nil, errors.New("corrupt cache payload header")
	}

	raw := make([]byte, rawLen)
	if _, err := lz4.UncompressBlock(body[n:], raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Stats returns cache statistics.
type Stats struct {
	Entries   int           `json:"entries"`
	TotalSize int64         `json:"total_size"`
	OldestAge time.Duration `json:"oldest_age"`
	NewestAge time.Duration `json:"newest_age"`
}

// GetStats returns statistics about the cache.
func (c *Cache) GetStats() (*Stats, error) {
	if !c.Enabled() {
		return &Stats{}, nil
	}

	stats := &Stats{}
	var oldest, newest time.Time

	err := filepath.Walk(c.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) != entryExt {
			return nil
		}

		stats.Entries++
		stats.TotalSize += info.Size()

		modTime := info.ModTime()
		if oldest.IsZero() || modTime.Before(oldest) {
			oldest = modTime
		}
		if newest.IsZero() || modTime.After(newest) {
			newest = modTime
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if !oldest.IsZero() {
		stats.OldestAge = time.Since(oldest)
	}
	if !newest.IsZero() {
		stats.NewestAge = time.Since(newest)
	}

	return stats, nil
}
