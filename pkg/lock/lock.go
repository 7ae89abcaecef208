// Package lock provides advisory cross-process file locking and atomic
// file writes, the two primitives the build cache (pkg/cache) uses to stay
// correct under concurrent builds. Locking is backed by github.com/gofrs/flock;
// the atomic writer is adapted from the teacher's pkg/fsutil.WriteAtomic,
// reshaped into a closeable writer value.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// DefaultTimeout is used by Acquire callers that don't specify one.
const DefaultTimeout = 10 * time.Second

// pollInterval is how often TryLockContext retries while waiting.
const pollInterval = 25 * time.Millisecond

// AcquisitionError is returned when a lock could not be acquired before
// timeout elapsed.
type AcquisitionError struct {
	Path    string
	Timeout time.Duration
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("lock: could not acquire lock on %q within %s", e.Path, e.Timeout)
}

// Lock is a held advisory lock on path's sibling ".lock" file. Release it
// exactly once; Release is idempotent-safe to call from a defer even after
// an early return.
type Lock struct {
	fl   *flock.Flock
	path string
}

// Acquire creates path+".lock" (and its parent directory, if needed) and
// blocks until an advisory lock is held, timeout elapses, or exclusive
// contention cannot be resolved in time. exclusive=false takes a shared
// (read) lock; exclusive=true takes an exclusive (write) lock.
func Acquire(path string, exclusive bool, timeout time.Duration) (*Lock, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	lockPath := path + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("lock: create lock directory: %w", err)
	}

	fl := flock.New(lockPath)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = fl.TryLockContext(ctx, pollInterval)
	} else {
		ok, err = fl.TryRLockContext(ctx, pollInterval)
	}
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("lock %q: %w", path, err)
	}
	if !ok {
		return nil, &AcquisitionError{Path: path, Timeout: timeout}
	}
	return &Lock{fl: fl, path: path}, nil
}

// Release unlocks the held lock. The sibling .lock file is never removed —
// its lifetime is orthogonal to the protected file's.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	return l.fl.Unlock()
}

// With acquires a scoped lock, runs fn, and always releases — including
// when fn panics, since the deferred Release still runs during unwinding.
func With(path string, exclusive bool, timeout time.Duration, fn func() error) error {
	l, err := Acquire(path, exclusive, timeout)
	if err != nil {
		return err
	}
	defer l.Release()
	return fn()
}

// IsLocked is a non-blocking exclusive-lock probe: it reports whether
// path's lock file is currently held by anyone (shared or exclusive),
// without waiting.
func IsLocked(path string) bool {
	fl := flock.New(path + ".lock")
	locked, err := fl.TryLock()
	if err != nil {
		return true
	}
	if locked {
		_ = fl.Unlock()
		return false
	}
	return true
}

// RemoveStaleLock deletes path's lock file if it's older than maxAge. For
// diagnostics only — a live process holding the lock is unaffected by
// removing the file's directory entry (the held fd keeps working on POSIX),
// so this is never used as part of normal lock acquisition.
func RemoveStaleLock(path string, maxAge time.Duration) error {
	lockPath := path + ".lock"
	info, err := os.Stat(lockPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("lock: stat %q: %w", lockPath, err)
	}
	if time.Since(info.ModTime()) <= maxAge {
		return nil
	}
	if err := os.Remove(lockPath); err != nil {
		return fmt.Errorf("lock: remove stale lock %q: %w", lockPath, err)
	}
	return nil
}
