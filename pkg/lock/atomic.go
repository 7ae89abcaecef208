package lock

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is applied when AtomicWriter is constructed with mode 0.
const DefaultFileMode os.FileMode = 0o644

// AtomicWriter is a scoped writer: bytes written to it land in a sibling
// temp file, which is fsynced and renamed into place on a successful Close.
// A Close that fails at any step removes the temp file and leaves the
// target path untouched — ported from the teacher's pkg/fsutil.WriteAtomic,
// reshaped from a free function taking a []byte into an io.WriteCloser so
// callers (e.g. encoding/json.Encoder) can stream into it directly.
type AtomicWriter struct {
	tmp    *os.File
	path   string
	mode   os.FileMode
	closed bool
}

// NewAtomicWriter creates the sibling temp file in path's directory (so the
// final rename stays on one filesystem). mode 0 means DefaultFileMode.
func NewAtomicWriter(path string, mode os.FileMode) (*AtomicWriter, error) {
	if mode == 0 {
		mode = DefaultFileMode
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("atomic writer: create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return nil, fmt.Errorf("atomic writer: create temp file: %w", err)
	}
	return &AtomicWriter{tmp: tmp, path: path, mode: mode}, nil
}

// Write appends to the temp file.
func (w *AtomicWriter) Write(p []byte) (int, error) {
	return w.tmp.Write(p)
}

// Close fsyncs and renames the temp file into place. Calling Close more
// than once is a no-op after the first call succeeds or fails with cleanup
// already done.
func (w *AtomicWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.tmp.Sync(); err != nil {
		w.abort()
		return fmt.Errorf("atomic writer: sync temp file: %w", err)
	}
	if err := w.tmp.Close(); err != nil {
		_ = os.Remove(w.tmp.Name())
		return fmt.Errorf("atomic writer: close temp file: %w", err)
	}
	if err := os.Chmod(w.tmp.Name(), w.mode); err != nil {
		_ = os.Remove(w.tmp.Name())
		return fmt.Errorf("atomic writer: chmod temp file: %w", err)
	}
	if err := os.Rename(w.tmp.Name(), w.path); err != nil {
		_ = os.Remove(w.tmp.Name())
		return fmt.Errorf("atomic writer: rename temp file: %w", err)
	}
	return nil
}

func (w *AtomicWriter) abort() {
	_ = w.tmp.Close()
	_ = os.Remove(w.tmp.Name())
}

// WriteFileAtomic is a convenience wrapper for the common case of writing a
// complete byte slice in one call.
func WriteFileAtomic(path string, content []byte, mode os.FileMode) error {
	w, err := NewAtomicWriter(path, mode)
	if err != nil {
		return err
	}
	if _, err := w.Write(content); err != nil {
		w.abort()
		w.closed = true
		return fmt.Errorf("atomic writer: write: %w", err)
	}
	return w.Close()
}
