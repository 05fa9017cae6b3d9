package vcs

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/repostat/repostat/internal/testutil"
)

func TestNewGitOpener(t *testing.T) {
	opener := NewGitOpener()
	if opener == nil {
		t.Fatal("NewGitOpener() returned nil")
	}
}

func TestGitOpener_Open(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	testutil.CommitFile(t, repo, root, "a.txt", "hello\n", "init")

	opener := NewGitOpener()
	r, err := opener.Open(root)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if r == nil {
		t.Fatal("Open() returned nil repository")
	}
}

func TestGitOpener_Open_NonExistent(t *testing.T) {
	opener := NewGitOpener()
	_, err := opener.Open("/nonexistent/path")
	if err == nil {
		t.Error("Open() should return error for non-existent path")
	}
}

func TestGitOpener_Open_DetectsParent(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	testutil.CommitFile(t, repo, root, "sub/dir/a.txt", "hello\n", "init")

	opener := NewGitOpener()
	r, err := opener.Open(root + "/sub/dir")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if r == nil {
		t.Fatal("Open() returned nil repository")
	}
}

func TestRepository_Commits(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	first := testutil.CommitFileAt(t, repo, root, "a.txt", "one\n", "first commit", base)
	second := testutil.CommitFileAt(t, repo, root, "b.txt", "two\n", "second commit\n\nwith a body", base.Add(time.Hour))
	third := testutil.CommitFileAt(t, repo, root, "c.txt", "three\n", "third commit", base.Add(2*time.Hour))

	r := openRepo(t, root)
	commits, err := r.Commits(context.Background(), 0)
	if err != nil {
		t.Fatalf("Commits() error = %v", err)
	}
	if len(commits) != 3 {
		t.Fatalf("Commits() returned %d commits, want 3", len(commits))
	}

	// Oldest first
	if commits[0].Hash != first || commits[1].Hash != second || commits[2].Hash != third {
		t.Errorf("Commits() order = %v, want oldest first", []string{commits[0].Hash, commits[1].Hash, commits[2].Hash})
	}
	if commits[0].Parent != "" {
		t.Errorf("root commit Parent = %q, want empty", commits[0].Parent)
	}
	if commits[1].Parent != first {
		t.Errorf("second commit Parent = %q, want %q", commits[1].Parent, first)
	}
	if commits[1].Subject != "second commit" {
		t.Errorf("Subject = %q, want first message line only", commits[1].Subject)
	}
	if commits[0].AuthorName != "Test Author" || commits[0].AuthorEmail != "test@example.com" {
		t.Errorf("author = %s <%s>, want test fixture author", commits[0].AuthorName, commits[0].AuthorEmail)
	}
	if !commits[0].When.Equal(base) {
		t.Errorf("When = %v, want %v", commits[0].When, base)
	}
}

func TestRepository_Commits_MaxCount(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	testutil.CommitFileAt(t, repo, root, "a.txt", "one\n", "first", base)
	second := testutil.CommitFileAt(t, repo, root, "b.txt", "two\n", "second", base.Add(time.Hour))
	third := testutil.CommitFileAt(t, repo, root, "c.txt", "three\n", "third", base.Add(2*time.Hour))

	r := openRepo(t, root)
	commits, err := r.Commits(context.Background(), 2)
	if err != nil {
		t.Fatalf("Commits() error = %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("Commits(max=2) returned %d commits, want 2", len(commits))
	}
	// The two newest, still oldest first
	if commits[0].Hash != second || commits[1].Hash != third {
		t.Errorf("Commits(max=2) = [%s, %s], want [%s, %s]", commits[0].Hash, commits[1].Hash, second, third)
	}
}

func TestRepository_Commits_EmptyRepo(t *testing.T) {
	root, _ := testutil.InitRepo(t)

	r := openRepo(t, root)
	commits, err := r.Commits(context.Background(), 0)
	if err != nil {
		t.Fatalf("Commits() error = %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("Commits() on empty repo returned %d commits, want 0", len(commits))
	}
}

func TestRepository_Commits_Canceled(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	testutil.CommitFile(t, repo, root, "a.txt", "one\n", "first")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := openRepo(t, root)
	_, err := r.Commits(ctx, 0)
	if err == nil {
		t.Error("Commits() with canceled context should return error")
	}
}

func TestRepository_StatsFor_Addition(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	sha := testutil.CommitFile(t, repo, root, "a.txt", "l1\nl2\nl3\n", "add file")

	r := openRepo(t, root)
	stats, err := r.StatsFor(context.Background(), sha)
	if err != nil {
		t.Fatalf("StatsFor() error = %v", err)
	}
	if stats.Raw != "3\t0\ta.txt\n" {
		t.Errorf("StatsFor() = %q, want %q", stats.Raw, "3\t0\ta.txt\n")
	}
}

func TestRepository_StatsFor_Modification(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	testutil.CommitFile(t, repo, root, "a.txt", "l1\nl2\nl3\n", "add file")
	sha := testutil.CommitFile(t, repo, root, "a.txt", "l1\nl2 changed\nl3\n", "change line")

	r := openRepo(t, root)
	stats, err := r.StatsFor(context.Background(), sha)
	if err != nil {
		t.Fatalf("StatsFor() error = %v", err)
	}
	if stats.Raw != "1\t1\ta.txt\n" {
		t.Errorf("StatsFor() = %q, want %q", stats.Raw, "1\t1\ta.txt\n")
	}
}

func TestRepository_StatsFor_Deletion(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	testutil.CommitFile(t, repo, root, "a.txt", "l1\nl2\nl3\n", "add file")
	sha := testutil.RemoveFile(t, repo, root, "a.txt", "remove file")

	r := openRepo(t, root)
	stats, err := r.StatsFor(context.Background(), sha)
	if err != nil {
		t.Fatalf("StatsFor() error = %v", err)
	}
	if stats.Raw != "0\t3\ta.txt\n" {
		t.Errorf("StatsFor() = %q, want %q", stats.Raw, "0\t3\ta.txt\n")
	}
}

func TestRepository_StatsFor_Rename(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	testutil.CommitFile(t, repo, root, "old.txt", "l1\nl2\nl3\n", "add file")
	sha := testutil.RenameFile(t, repo, root, "old.txt", "new.txt", "rename file")

	r := openRepo(t, root)
	stats, err := r.StatsFor(context.Background(), sha)
	if err != nil {
		t.Fatalf("StatsFor() error = %v", err)
	}
	if stats.Raw != "0\t0\told.txt => new.txt\n" {
		t.Errorf("StatsFor() = %q, want rename form", stats.Raw)
	}
}

func TestRepository_StatsFor_Binary(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	data := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01, 0x02, 0x00, 0xff}
	sha := testutil.CommitBinaryFile(t, repo, root, "blob.bin", data, "add binary")

	r := openRepo(t, root)
	stats, err := r.StatsFor(context.Background(), sha)
	if err != nil {
		t.Fatalf("StatsFor() error = %v", err)
	}
	if stats.Raw != "-\t-\tblob.bin\n" {
		t.Errorf("StatsFor() = %q, want binary marker line", stats.Raw)
	}
}

func TestRepository_StatsFor_MultipleFiles(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	testutil.CommitFile(t, repo, root, "a.txt", "one\n", "first")

	// Stage two files in one commit
	testutil.WriteFile(t, root+"/b.txt", "b1\nb2\n")
	w, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Add("b.txt"); err != nil {
		t.Fatal(err)
	}
	sha := testutil.CommitFile(t, repo, root, "c.txt", "c1\n", "two files")

	r := openRepo(t, root)
	stats, err := r.StatsFor(context.Background(), sha)
	if err != nil {
		t.Fatalf("StatsFor() error = %v", err)
	}
	if !strings.Contains(stats.Raw, "2\t0\tb.txt\n") {
		t.Errorf("StatsFor() = %q, missing b.txt line", stats.Raw)
	}
	if !strings.Contains(stats.Raw, "1\t0\tc.txt\n") {
		t.Errorf("StatsFor() = %q, missing c.txt line", stats.Raw)
	}
}

func TestRepository_StatsFor_UnknownCommit(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	testutil.CommitFile(t, repo, root, "a.txt", "one\n", "first")

	r := openRepo(t, root)
	_, err := r.StatsFor(context.Background(), "0000000000000000000000000000000000000000")
	if err == nil {
		t.Error("StatsFor() should return error for unknown commit")
	}
}

func TestInspector_LineCount(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	sha := testutil.CommitFile(t, repo, root, "a.txt", "l1\nl2\nl3\n", "add file")

	r := openRepo(t, root)
	ins := r.Inspector()

	n, err := ins.LineCount(context.Background(), sha, "a.txt")
	if err != nil {
		t.Fatalf("LineCount() error = %v", err)
	}
	if n != 3 {
		t.Errorf("LineCount() = %d, want 3", n)
	}

	// Second lookup hits the memo and must agree
	n2, err := ins.LineCount(context.Background(), sha, "a.txt")
	if err != nil {
		t.Fatalf("LineCount() second call error = %v", err)
	}
	if n2 != n {
		t.Errorf("LineCount() second call = %d, want %d", n2, n)
	}
}

func TestInspector_ByteSize(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	sha := testutil.CommitFile(t, repo, root, "a.txt", "l1\nl2\nl3\n", "add file")

	r := openRepo(t, root)
	ins := r.Inspector()

	size, err := ins.ByteSize(context.Background(), sha, "a.txt")
	if err != nil {
		t.Fatalf("ByteSize() error = %v", err)
	}
	if size != 9 {
		t.Errorf("ByteSize() = %d, want 9", size)
	}
}

func TestInspector_HistoricalState(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	first := testutil.CommitFile(t, repo, root, "a.txt", "l1\nl2\nl3\n", "add file")
	second := testutil.CommitFile(t, repo, root, "a.txt", "l1\n", "shrink file")

	r := openRepo(t, root)
	ins := r.Inspector()

	n, err := ins.LineCount(context.Background(), first, "a.txt")
	if err != nil {
		t.Fatalf("LineCount() error = %v", err)
	}
	if n != 3 {
		t.Errorf("LineCount() at first commit = %d, want 3", n)
	}

	n, err = ins.LineCount(context.Background(), second, "a.txt")
	if err != nil {
		t.Fatalf("LineCount() error = %v", err)
	}
	if n != 1 {
		t.Errorf("LineCount() at second commit = %d, want 1", n)
	}
}

func TestInspector_MissingFile(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	sha := testutil.CommitFile(t, repo, root, "a.txt", "one\n", "first")

	r := openRepo(t, root)
	ins := r.Inspector()

	if _, err := ins.LineCount(context.Background(), sha, "nope.txt"); err == nil {
		t.Error("LineCount() should return error for missing file")
	}
	if _, err := ins.ByteSize(context.Background(), sha, "nope.txt"); err == nil {
		t.Error("ByteSize() should return error for missing file")
	}
}

func TestRepository_Fingerprint(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	testutil.CommitFile(t, repo, root, "a.txt", "one\n", "first")

	r := openRepo(t, root)
	fp, err := r.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if len(fp) != 64 {
		t.Errorf("Fingerprint() length = %d, want 64 hex chars", len(fp))
	}

	// Stable across opens
	fp2, err := openRepo(t, root).Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint() error = %v", err)
	}
	if fp != fp2 {
		t.Errorf("Fingerprint() not stable: %s vs %s", fp, fp2)
	}
}

func TestRepository_Meta(t *testing.T) {
	root, repo := testutil.InitRepo(t)
	testutil.CommitFile(t, repo, root, "a.txt", "one\n", "first")

	r := openRepo(t, root)
	meta, err := r.Meta()
	if err != nil {
		t.Fatalf("Meta() error = %v", err)
	}
	if meta.Root == "" {
		t.Error("Meta().Root should not be empty")
	}
	if meta.Branch != "master" {
		t.Errorf("Meta().Branch = %q, want master", meta.Branch)
	}
	if meta.Origin != "" {
		t.Errorf("Meta().Origin = %q, want empty without remote", meta.Origin)
	}
}

func TestDefaultOpener(t *testing.T) {
	opener := DefaultOpener()
	if opener == nil {
		t.Fatal("DefaultOpener() returned nil")
	}
}

func TestSetDefaultOpener(t *testing.T) {
	original := DefaultOpener()
	defer SetDefaultOpener(original)

	newOpener := NewGitOpener()
	SetDefaultOpener(newOpener)

	if DefaultOpener() != newOpener {
		t.Error("SetDefaultOpener() didn't change default opener")
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"a\nb\n", 2},
		{"\n\n\n", 3},
	}

	for _, tt := range tests {
		if got := countLines(tt.content); got != tt.want {
			t.Errorf("countLines(%q) = %d, want %d", tt.content, got, tt.want)
		}
	}
}

func TestSubjectLine(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"fix bug", "fix bug"},
		{"fix bug\n", "fix bug"},
		{"fix bug\n\nlong body\nmore", "fix bug"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := subjectLine(tt.message); got != tt.want {
			t.Errorf("subjectLine(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

// Helper functions

func openRepo(t *testing.T, path string) Repository {
	t.Helper()
	r, err := NewGitOpener().Open(path)
	if err != nil {
		t.Fatalf("Open(%s) error: %v", path, err)
	}
	return r
}
