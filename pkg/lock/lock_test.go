package lock_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bengalssg/bengal/pkg/lock"
)

func TestAcquireAndRelease(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")

	l, err := lock.Acquire(path, true, time.Second)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if _, err := os.Stat(path + ".lock"); err != nil {
		t.Fatalf("expected lock file to exist: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
}

func TestAcquireExclusiveBlocksExclusive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")

	first, err := lock.Acquire(path, true, time.Second)
	if err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	defer first.Release()

	_, err = lock.Acquire(path, true, 100*time.Millisecond)
	if err == nil {
		t.Fatal("expected second exclusive Acquire() to time out")
	}
	var acqErr *lock.AcquisitionError
	if !asAcquisitionError(err, &acqErr) {
		t.Fatalf("expected *lock.AcquisitionError, got %T: %v", err, err)
	}
}

func asAcquisitionError(err error, target **lock.AcquisitionError) bool {
	if ae, ok := err.(*lock.AcquisitionError); ok {
		*target = ae
		return true
	}
	return false
}

func TestWithReleasesAfterFn(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")

	ran := false
	err := lock.With(path, true, time.Second, func() error {
		ran = true
		if !lock.IsLocked(path) {
			t.Error("expected IsLocked() to report true while held")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("With() error = %v", err)
	}
	if !ran {
		t.Error("expected fn to run")
	}
	if lock.IsLocked(path) {
		t.Error("expected IsLocked() to report false after With() returns")
	}
}

func TestWithPropagatesFnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")

	sentinel := os.ErrClosed
	err := lock.With(path, true, time.Second, func() error {
		return sentinel
	})
	if err != sentinel {
		t.Errorf("With() error = %v, want %v", err, sentinel)
	}
}

func TestIsLockedOnNeverLockedPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "never-locked.json")

	if lock.IsLocked(path) {
		t.Error("expected IsLocked() to report false for a path never locked")
	}
}

func TestRemoveStaleLockSkipsFreshLock(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")

	l, err := lock.Acquire(path, true, time.Second)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer l.Release()

	if err := lock.RemoveStaleLock(path, time.Hour); err != nil {
		t.Fatalf("RemoveStaleLock() error = %v", err)
	}
	if _, err := os.Stat(path + ".lock"); err != nil {
		t.Error("expected fresh lock file to survive RemoveStaleLock")
	}
}

func TestRemoveStaleLockNoOpWhenMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "never-locked.json")

	if err := lock.RemoveStaleLock(path, time.Second); err != nil {
		t.Errorf("RemoveStaleLock() error = %v, want nil for missing lock file", err)
	}
}

func TestRemoveStaleLockRemovesOldLock(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")
	lockPath := path + ".lock"

	if err := os.WriteFile(lockPath, nil, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(lockPath, old, old); err != nil {
		t.Fatalf("setup chtimes: %v", err)
	}

	if err := lock.RemoveStaleLock(path, time.Minute); err != nil {
		t.Fatalf("RemoveStaleLock() error = %v", err)
	}
	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Error("expected stale lock file to be removed")
	}
}
