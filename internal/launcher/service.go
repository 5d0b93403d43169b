// Package launcher ties the indexes, the search engine, the query history and
// the background crawler into the service behind the CLI and the MCP server.
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Aman-CERP/amanlaunch/internal/apps"
	"github.com/Aman-CERP/amanlaunch/internal/async"
	"github.com/Aman-CERP/amanlaunch/internal/collab"
	"github.com/Aman-CERP/amanlaunch/internal/config"
	"github.com/Aman-CERP/amanlaunch/internal/history"
	"github.com/Aman-CERP/amanlaunch/internal/index"
	"github.com/Aman-CERP/amanlaunch/internal/platform"
	"github.com/Aman-CERP/amanlaunch/internal/scanner"
	"github.com/Aman-CERP/amanlaunch/internal/search"
	"github.com/Aman-CERP/amanlaunch/internal/telemetry"
)

// Option configures a Service.
type Option func(*Service)

// WithPlatform overrides the detected platform.
func WithPlatform(p platform.Platform) Option {
	return func(s *Service) {
		if p != nil {
			s.platform = p
		}
	}
}

// WithWorkspaces overrides the workspace collaborator.
func WithWorkspaces(ws collab.WorkspaceStore) Option {
	return func(s *Service) { s.workspaces = ws }
}

// WithCommands overrides the custom command collaborator.
func WithCommands(cs collab.CommandStore) Option {
	return func(s *Service) { s.commands = cs }
}

// Service owns the published index snapshots and the query history.
// It is safe for concurrent use.
type Service struct {
	cfg        *config.Config
	platform   platform.Platform
	files      *index.Holder
	apps       *index.Holder
	describer  *apps.Describer
	engine     *search.Engine
	workspaces collab.WorkspaceStore
	commands   collab.CommandStore
	indexer    *async.BackgroundIndexer
	metrics    *telemetry.QueryMetrics

	histMu       sync.Mutex
	history      *history.Ring
	historyStore history.Store

	// rootsMu serialises Reindex so the roots a crawl reads are the ones
	// its caller passed.
	rootsMu sync.Mutex
	roots   []string
}

// New creates the service, loading persisted indexes and history from the
// configured data directory. Unreadable files are logged and start empty.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	describer, err := apps.NewDescriber(0)
	if err != nil {
		return nil, fmt.Errorf("failed to create describer: %w", err)
	}

	s := &Service{
		cfg:          cfg,
		platform:     platform.Detect(),
		describer:    describer,
		engine:       search.NewEngine(search.WithStatWorkers(cfg.Search.StatWorkers), search.WithDescriber(describer)),
		workspaces:   collab.YAMLWorkspaces{Path: cfg.WorkspacesPath()},
		commands:     collab.YAMLCommands{Path: cfg.CommandsPath()},
		indexer:      async.NewBackgroundIndexer(async.IndexerConfig{DataDir: cfg.DataDir}),
		metrics:      telemetry.New(telemetry.DefaultConfig()),
		historyStore: history.Store{Path: cfg.HistoryPath(), Bound: cfg.History.Size},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.indexer.IndexFunc = s.crawl

	s.files = index.NewHolder(loadIndex(cfg.IndexPath(index.KindFile)))
	s.apps = index.NewHolder(loadIndex(cfg.IndexPath(index.KindApp)))

	ring, err := s.historyStore.Load()
	if err != nil {
		slog.Warn("history_load_failed", slog.Any("error", err))
	}
	s.history = ring

	slog.Debug("launcher_ready",
		slog.String("platform", s.platform.Name()),
		slog.String("data_dir", cfg.DataDir),
		slog.Int("files", s.files.Load().Len()),
		slog.Int("apps", s.apps.Load().Len()))
	return s, nil
}

func loadIndex(path string) *index.Index {
	idx, err := index.Load(path)
	if err != nil {
		slog.Warn("index_load_failed", slog.String("path", path), slog.Any("error", err))
	}
	return idx
}

// Platform returns the platform the service crawls.
func (s *Service) Platform() platform.Platform {
	return s.platform
}

// Files returns the current file index snapshot.
func (s *Service) Files() *index.Index {
	return s.files.Load()
}

// Apps returns the current application index snapshot.
func (s *Service) Apps() *index.Index {
	return s.apps.Load()
}

// Query records q in the history and searches every source selected by
// filter, returning at most limit results (limit <= 0 means all). A blank
// query returns no results and leaves the history untouched.
func (s *Service) Query(ctx context.Context, q string, filter search.Filter, limit int) ([]search.Result, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}

	s.histMu.Lock()
	s.history.Record(q)
	s.saveHistoryLocked()
	s.histMu.Unlock()

	start := time.Now()
	results, err := s.engine.Search(ctx, q, filter, search.Sources{
		Files:      s.files.Load(),
		Apps:       s.apps.Load(),
		Workspaces: s.workspaces,
		Commands:   s.commands,
	})
	if err != nil {
		return nil, err
	}
	s.metrics.Record(telemetry.QueryEvent{
		Query:       q,
		Filter:      filter.String(),
		ResultCount: len(results),
		Latency:     time.Since(start),
	})
	return search.Top(results, limit), nil
}

// History returns past queries, most recent first.
func (s *Service) History() []string {
	s.histMu.Lock()
	defer s.histMu.Unlock()
	return s.history.List()
}

// ClearHistory empties the history and persists the empty list.
func (s *Service) ClearHistory() error {
	s.histMu.Lock()
	defer s.histMu.Unlock()

	s.history.Clear()
	return s.historyStore.Save(s.history)
}

// saveHistoryLocked persists the ring. Failures are logged; the in-memory
// history stays authoritative.
func (s *Service) saveHistoryLocked() {
	if err := s.historyStore.Save(s.history); err != nil {
		slog.Warn("history_save_failed", slog.Any("error", err))
	}
}

// Reindex starts a background crawl of roots (empty means the configured
// roots, then every local volume). It returns false when a crawl is already
// running in this or another process.
func (s *Service) Reindex(ctx context.Context, roots []string) bool {
	s.rootsMu.Lock()
	defer s.rootsMu.Unlock()

	if s.indexer.IsRunning() {
		return false
	}
	s.roots = roots
	return s.indexer.Start(ctx)
}

// Wait blocks until the running crawl, if any, finishes.
func (s *Service) Wait() error {
	return s.indexer.Wait()
}

// Progress returns the live crawl progress.
func (s *Service) Progress() *async.IndexProgress {
	return s.indexer.Progress()
}

// crawlRoots picks the roots for the next crawl and the mount points to
// prune inside them. Volume enumeration always runs so an explicit "/" still
// avoids pseudo and remote mounts.
func (s *Service) crawlRoots(ctx context.Context) (roots, skip []string) {
	s.rootsMu.Lock()
	roots = s.roots
	s.rootsMu.Unlock()

	vols := scanner.DefaultRoots(ctx, s.platform)
	if len(roots) == 0 {
		roots = s.cfg.Index.Roots
	}
	if len(roots) == 0 {
		roots = vols.Roots
	}
	return roots, vols.Skip
}

// crawl is the background indexer's work: crawl files, discover
// applications, persist both, then publish them. A cancelled crawl publishes
// nothing.
func (s *Service) crawl(ctx context.Context, progress *async.IndexProgress) error {
	start := time.Now()
	roots, skip := s.crawlRoots(ctx)

	progress.SetStage(async.StageScanning)
	files := scanner.Crawl(ctx, roots, s.cfg.Exclusions().WithPaths(skip...), scanner.Options{
		Workers:   s.cfg.Index.Workers,
		BatchSize: s.cfg.Index.BatchSize,
		Progress:  progress.UpdateFiles,
	})
	if err := ctx.Err(); err != nil {
		return err
	}
	progress.UpdateFiles(files.Stats().Locators, "")

	progress.SetStage(async.StageApplications)
	appIdx := apps.Discover(ctx, s.platform, apps.Options{Progress: progress.UpdateApps})
	if err := ctx.Err(); err != nil {
		return err
	}

	progress.SetStage(async.StageSaving)
	for kind, idx := range map[index.Kind]*index.Index{index.KindFile: files, index.KindApp: appIdx} {
		if err := index.Save(idx, s.cfg.IndexPath(kind)); err != nil {
			slog.Warn("index_save_failed", slog.String("kind", string(kind)), slog.Any("error", err))
		}
	}

	s.files.Store(files)
	s.apps.Store(appIdx)
	s.describer.Purge()

	slog.Info("index_complete",
		slog.Int("roots", len(roots)),
		slog.Int("file_names", files.Len()),
		slog.Int("apps", appIdx.Len()),
		slog.Duration("duration", time.Since(start)))
	return nil
}
