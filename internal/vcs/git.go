package vcs

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/zeebo/blake3"
)

// GitOpener opens git repositories using go-git.
type GitOpener struct{}

// NewGitOpener creates a new GitOpener.
func NewGitOpener() *GitOpener {
	return &GitOpener{}
}

// Open opens a git repository, detecting .git in parent directories.
func (o *GitOpener) Open(path string) (Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, err
	}
	return &gitRepository{
		repo:      repo,
		inspector: newGitInspector(repo),
	}, nil
}

// gitRepository wraps go-git Repository.
type gitRepository struct {
	repo      *git.Repository
	inspector *gitInspector
}

func (r *gitRepository) Commits(ctx context.Context, maxCount int) ([]CommitInfo, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, err
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var infos []CommitInfo
	err = iter.ForEach(func(c *object.Commit) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		info := CommitInfo{
			Hash:        c.Hash.String(),
			AuthorName:  c.Author.Name,
			AuthorEmail: c.Author.Email,
			When:        c.Author.When,
			Subject:     subjectLine(c.Message),
		}
		if len(c.ParentHashes) > 0 {
			info.Parent = c.ParentHashes[0].String()
		}
		infos = append(infos, info)

		if maxCount > 0 && len(infos) >= maxCount {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Log walks newest first; callers consume history oldest first.
	for i, j := 0, len(infos)-1; i < j; i, j = i+1, j-1 {
		infos[i], infos[j] = infos[j], infos[i]
	}
	return infos, nil
}

func (r *gitRepository) StatsFor(ctx context.Context, hash string) (*CommitStats, error) {
	commit, err := r.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, err
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}

	var parentTree *object.Tree
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, err
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return nil, err
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, change := range changes {
		patch, err := change.PatchContext(ctx)
		if err != nil {
			return nil, err
		}
		for _, fp := range patch.FilePatches() {
			name := filePatchName(fp)
			if name == "" {
				continue
			}
			if fp.IsBinary() {
				fmt.Fprintf(&b, "-\t-\t%s\n", name)
				continue
			}
			var added, deleted int
			for _, chunk := range fp.Chunks() {
				switch chunk.Type() {
				case diff.Add:
					added += countLines(chunk.Content())
				case diff.Delete:
					deleted += countLines(chunk.Content())
				}
			}
			fmt.Fprintf(&b, "%d\t%d\t%s\n", added, deleted, name)
		}
	}
	return &CommitStats{Raw: b.String()}, nil
}

func (r *gitRepository) Inspector() BlobInspector {
	return r.inspector
}

func (r *gitRepository) Fingerprint() (string, error) {
	meta, err := r.Meta()
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256([]byte(meta.Root + "\n" + meta.Origin))
	return hex.EncodeToString(sum[:]), nil
}

func (r *gitRepository) Meta() (Meta, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return Meta{}, err
	}
	meta := Meta{Root: wt.Filesystem.Root()}

	if head, err := r.repo.Head(); err == nil {
		meta.Branch = head.Name().Short()
	}
	if remote, err := r.repo.Remote("origin"); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			meta.Origin = urls[0]
		}
	}
	return meta, nil
}

// filePatchName renders the numstat path for a file patch, using the
// "old => new" form for renames.
func filePatchName(fp diff.FilePatch) string {
	from, to := fp.Files()
	switch {
	case from == nil && to == nil:
		return ""
	case from == nil:
		return to.Path()
	case to == nil:
		return from.Path()
	case from.Path() != to.Path():
		return from.Path() + " => " + to.Path()
	default:
		return to.Path()
	}
}

// subjectLine returns the first line of a commit message.
func subjectLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		message = message[:i]
	}
	return strings.TrimSpace(message)
}

// countLines counts lines in content, counting a trailing line that is
// not newline-terminated.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

// gitInspector resolves blob sizes with a memo shared across queries,
// safe for concurrent use.
type gitInspector struct {
	repo *git.Repository

	mu    sync.RWMutex
	lines map[uint64]int
	sizes map[uint64]int64
}

func newGitInspector(repo *git.Repository) *gitInspector {
	return &gitInspector{
		repo:  repo,
		lines: make(map[uint64]int),
		sizes: make(map[uint64]int64),
	}
}

func blobKey(hash, path string) uint64 {
	return xxhash.Sum64String(hash + ":" + path)
}

func (g *gitInspector) LineCount(ctx context.Context, hash, path string) (int, error) {
	key := blobKey(hash, path)
	g.mu.RLock()
	n, ok := g.lines[key]
	g.mu.RUnlock()
	if ok {
		return n, nil
	}

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	file, err := g.file(hash, path)
	if err != nil {
		return 0, err
	}
	content, err := file.Contents()
	if err != nil {
		return 0, err
	}
	n = countLines(content)

	g.mu.Lock()
	g.lines[key] = n
	g.mu.Unlock()
	return n, nil
}

func (g *gitInspector) ByteSize(ctx context.Context, hash, path string) (int64, error) {
	key := blobKey(hash, path)
	g.mu.RLock()
	size, ok := g.sizes[key]
	g.mu.RUnlock()
	if ok {
		return size, nil
	}

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	file, err := g.file(hash, path)
	if err != nil {
		return 0, err
	}
	size = file.Blob.Size

	g.mu.Lock()
	g.sizes[key] = size
	g.mu.Unlock()
	return size, nil
}

func (g *gitInspector) file(hash, path string) (*object.File, error) {
	commit, err := g.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, err
	}
	return commit.File(path)
}

// Default opener singleton
var defaultOpener Opener = NewGitOpener()

// DefaultOpener returns the default git opener.
func DefaultOpener() Opener {
	return defaultOpener
}

// SetDefaultOpener sets the default git opener (useful for testing).
func SetDefaultOpener(opener Opener) {
	defaultOpener = opener
}
