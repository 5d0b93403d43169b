package async

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the cross-process crawl lock inside the data directory.
const LockFileName = "indexing.lock"

// FileLock is an exclusive, non-blocking, cross-process lock. It keeps two
// launcher processes from crawling into the same data directory at once.
type FileLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewFileLock creates the crawl lock for dataDir.
func NewFileLock(dataDir string) *FileLock {
	lockPath := filepath.Join(dataDir, LockFileName)
	return &FileLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false if another process holds it.
func (l *FileLock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if acquired {
		l.locked = true
	}
	return acquired, nil
}

// Unlock releases the lock. It's safe to call on an unlocked FileLock.
func (l *FileLock) Unlock() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// LockHeld reports whether a crawl currently holds the lock for dataDir,
// in this process or another one.
func LockHeld(dataDir string) bool {
	if _, err := os.Stat(filepath.Join(dataDir, LockFileName)); err != nil {
		return false
	}
	l := NewFileLock(dataDir)
	acquired, err := l.TryLock()
	if err != nil {
		return false
	}
	if acquired {
		_ = l.Unlock()
		return false
	}
	return true
}
