// Package testutil provides helpers for building git repositories in tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// InitRepo creates an empty git repository in a temp directory and
// returns its path and handle. The directory is cleaned up with the test.
func InitRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	if err != nil {
		t.Fatalf("PlainInit(%s) error: %v", root, err)
	}
	return root, repo
}

// WriteFile writes content to a file, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll(%s) error: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s) error: %v", path, err)
	}
}

// CommitFile writes content to name and commits it, returning the commit SHA.
func CommitFile(t *testing.T, repo *git.Repository, root, name, content, message string) string {
	t.Helper()
	return CommitFileAt(t, repo, root, name, content, message, time.Now())
}

// CommitFileAt is CommitFile with an explicit author timestamp.
func CommitFileAt(t *testing.T, repo *git.Repository, root, name, content, message string, when time.Time) string {
	t.Helper()
	return CommitFileAs(t, repo, root, name, content, message, "Test Author", "test@example.com", when)
}

// CommitFileAs is CommitFile with full control over author identity and time.
func CommitFileAs(t *testing.T, repo *git.Repository, root, name, content, message, author, email string, when time.Time) string {
	t.Helper()
	WriteFile(t, filepath.Join(root, name), content)

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree error: %v", err)
	}
	if _, err := w.Add(name); err != nil {
		t.Fatalf("Add(%s) error: %v", name, err)
	}
	hash, err := w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author,
			Email: email,
			When:  when,
		},
	})
	if err != nil {
		t.Fatalf("Commit error: %v", err)
	}
	return hash.String()
}

// CommitBinaryFile writes raw bytes to name and commits it, returning the
// commit SHA. Content containing NUL bytes is treated as binary by git.
func CommitBinaryFile(t *testing.T, repo *git.Repository, root, name string, data []byte, message string) string {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile(%s) error: %v", path, err)
	}

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree error: %v", err)
	}
	if _, err := w.Add(name); err != nil {
		t.Fatalf("Add(%s) error: %v", name, err)
	}
	hash, err := w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit error: %v", err)
	}
	return hash.String()
}

// RenameFile moves oldName to newName and commits, returning the commit SHA.
func RenameFile(t *testing.T, repo *git.Repository, root, oldName, newName, message string) string {
	t.Helper()
	oldPath := filepath.Join(root, oldName)
	newPath := filepath.Join(root, newName)
	if err := os.MkdirAll(filepath.Dir(newPath), 0755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		t.Fatalf("Rename(%s, %s) error: %v", oldName, newName, err)
	}

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree error: %v", err)
	}
	if _, err := w.Remove(oldName); err != nil {
		t.Fatalf("Remove(%s) error: %v", oldName, err)
	}
	if _, err := w.Add(newName); err != nil {
		t.Fatalf("Add(%s) error: %v", newName, err)
	}
	hash, err := w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit error: %v", err)
	}
	return hash.String()
}

// RemoveFile deletes name and commits, returning the commit SHA.
func RemoveFile(t *testing.T, repo *git.Repository, root, name, message string) string {
	t.Helper()
	if err := os.Remove(filepath.Join(root, name)); err != nil {
		t.Fatalf("Remove(%s) error: %v", name, err)
	}

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree error: %v", err)
	}
	if _, err := w.Remove(name); err != nil {
		t.Fatalf("Remove(%s) error: %v", name, err)
	}
	hash, err := w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit error: %v", err)
	}
	return hash.String()
}

// Lines builds newline-terminated content with n lines, each width bytes
// wide including the newline.
func Lines(n, width int) string {
	if width < 2 {
		width = 2
	}
	line := make([]byte, width)
	for i := range line {
		line[i] = 'x'
	}
	line[width-1] = '\n'

	out := make([]byte, 0, n*width)
	for i := 0; i < n; i++ {
		out = append(out, line...)
	}
	return string(out)
}
