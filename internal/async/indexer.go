package async

import (
	"context"
	"log/slog"
	"sync"

	amerrors "github.com/Aman-CERP/amanlaunch/internal/errors"
)

// IndexFunc is the function signature for the actual indexing work.
type IndexFunc func(ctx context.Context, progress *IndexProgress) error

// IndexerConfig configures the BackgroundIndexer.
type IndexerConfig struct {
	DataDir string
}

// BackgroundIndexer runs one crawl at a time in a background goroutine with
// progress tracking. A crawl cannot be cancelled once started; it runs until
// IndexFunc returns or the context passed to Start is done.
type BackgroundIndexer struct {
	config   IndexerConfig
	progress *IndexProgress

	// IndexFunc is the actual indexing function to run.
	// This can be injected for testing.
	IndexFunc IndexFunc

	mu      sync.Mutex
	running bool
	err     error
	doneCh  chan struct{}
}

// NewBackgroundIndexer creates a new background indexer.
func NewBackgroundIndexer(cfg IndexerConfig) *BackgroundIndexer {
	done := make(chan struct{})
	close(done)
	return &BackgroundIndexer{
		config:   cfg,
		progress: NewIndexProgress(),
		doneCh:   done,
	}
}

// Progress returns the progress tracker for this indexer.
func (b *BackgroundIndexer) Progress() *IndexProgress {
	return b.progress
}

// IsRunning returns true if a crawl is in flight in this process.
func (b *BackgroundIndexer) IsRunning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

// Start begins a crawl in a background goroutine and returns immediately.
// It returns false without starting when a crawl is already running in this
// process or another process holds the data directory's crawl lock.
func (b *BackgroundIndexer) Start(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return false
	}

	lock := NewFileLock(b.config.DataDir)
	acquired, err := lock.TryLock()
	if err != nil {
		slog.Warn("cannot take crawl lock",
			slog.String("path", lock.Path()),
			slog.String("error", err.Error()))
		return false
	}
	if !acquired {
		slog.Info("crawl already running in another process",
			slog.String("path", lock.Path()))
		return false
	}

	b.running = true
	b.err = nil
	b.doneCh = make(chan struct{})
	b.progress.Reset()

	go b.run(ctx, lock, b.doneCh)
	return true
}

// run executes the indexing in the background.
func (b *BackgroundIndexer) run(ctx context.Context, lock *FileLock, done chan struct{}) {
	defer close(done)
	defer func() {
		b.mu.Lock()
		b.running = false
		b.mu.Unlock()
	}()
	defer func() {
		if err := lock.Unlock(); err != nil {
			slog.Warn("failed to release crawl lock", slog.String("error", err.Error()))
		}
	}()

	var err error
	if b.IndexFunc != nil {
		err = b.IndexFunc(ctx, b.progress)
	}
	if err != nil {
		err = amerrors.New(amerrors.ErrCodeIndexFailed, "indexing failed", err)
		b.progress.SetError(err.Error())
		slog.Error("indexing failed", slog.String("error", err.Error()))
	} else {
		b.progress.SetReady()
	}

	b.mu.Lock()
	b.err = err
	b.mu.Unlock()
}

// Wait blocks until the current crawl completes and returns its error.
// It returns immediately when no crawl has been started.
func (b *BackgroundIndexer) Wait() error {
	b.mu.Lock()
	done := b.doneCh
	b.mu.Unlock()

	<-done

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}
