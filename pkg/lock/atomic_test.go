package lock_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bengalssg/bengal/pkg/lock"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "test.txt")
		content := []byte("hello world")

		if err := lock.WriteFileAtomic(path, content, 0644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "test.txt")

		if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		content := []byte("new content")
		if err := lock.WriteFileAtomic(path, content, 0644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
	})

	t.Run("preserves specified mode", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "test.txt")

		if err := lock.WriteFileAtomic(path, []byte("hello"), 0600); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if got := stat.Mode().Perm(); got != 0600 {
			t.Errorf("mode = %o, want %o", got, 0600)
		}
	})

	t.Run("uses default mode when zero", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "test.txt")

		if err := lock.WriteFileAtomic(path, []byte("hello"), 0); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if got := stat.Mode().Perm(); got != lock.DefaultFileMode {
			t.Errorf("mode = %o, want %o", got, lock.DefaultFileMode)
		}
	})

	t.Run("cleans up temp file on error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "nonexistent-parent-blocked-by-file", "test.txt")

		blockerParent := filepath.Dir(filepath.Dir(path))
		blocker := filepath.Join(blockerParent, "nonexistent-parent-blocked-by-file")
		if err := os.WriteFile(blocker, []byte("not a directory"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := lock.WriteFileAtomic(path, []byte("content"), 0644); err == nil {
			t.Fatal("expected error for path whose parent is a regular file")
		}

		entries, err := os.ReadDir(blockerParent)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		for _, entry := range entries {
			if filepath.Ext(entry.Name()) != "" && entry.Name() != "nonexistent-parent-blocked-by-file" {
				t.Errorf("unexpected leftover entry: %s", entry.Name())
			}
		}
	})
}

func TestAtomicWriterStreamedWrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "streamed.txt")

	w, err := lock.NewAtomicWriter(path, 0644)
	if err != nil {
		t.Fatalf("NewAtomicWriter() error = %v", err)
	}
	if _, err := w.Write([]byte("hello ")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := w.Write([]byte("world")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "hello world" {
		t.Errorf("content = %q, want %q", got, "hello world")
	}
}

func TestAtomicWriterCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")

	w, err := lock.NewAtomicWriter(path, 0644)
	if err != nil {
		t.Fatalf("NewAtomicWriter() error = %v", err)
	}
	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
}
