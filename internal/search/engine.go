package search

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/amanlaunch/internal/apps"
	"github.com/Aman-CERP/amanlaunch/internal/index"
	"github.com/Aman-CERP/amanlaunch/internal/match"
)

// Engine runs fuzzy searches over index snapshots and collaborators.
// It holds no index state and is safe for concurrent use.
type Engine struct {
	statWorkers int
	describe    func(locator string) string
	stat        func(name string) (fs.FileInfo, error)
}

// EngineOption configures the search engine.
type EngineOption func(*Engine)

// WithStatWorkers bounds how many file locators are re-validated in parallel.
func WithStatWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.statWorkers = n
		}
	}
}

// WithDescriber sets the labeller for application metadata.
func WithDescriber(d *apps.Describer) EngineOption {
	return func(e *Engine) {
		if d != nil {
			e.describe = d.Describe
		}
	}
}

// NewEngine creates a search engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		statWorkers: runtime.NumCPU() * 4,
		stat:        os.Stat,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.describe == nil {
		// Only a non-positive size makes NewDescriber fail.
		d, _ := apps.NewDescriber(0)
		e.describe = d.Describe
	}
	return e
}

// Search returns every candidate whose name fuzzy-matches query, ordered by
// score descending. Equal scores keep source order: files, applications,
// workspaces, commands, each in index or collaborator order.
//
// A blank query returns no results. File locators that no longer resolve
// are dropped silently. A failing collaborator is logged and contributes
// nothing.
func (e *Engine) Search(ctx context.Context, query string, filter Filter, src Sources) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if filter == 0 {
		filter = FilterAll
	}

	var results []Result
	if filter.Has(FilterFile) {
		files, err := e.searchFiles(ctx, query, src.Files)
		if err != nil {
			return nil, err
		}
		results = append(results, files...)
	}
	if filter.Has(FilterApplication) {
		found, err := e.searchApps(ctx, query, src.Apps)
		if err != nil {
			return nil, err
		}
		results = append(results, found...)
	}
	if filter.Has(FilterWorkspace) && src.Workspaces != nil {
		results = append(results, searchWorkspaces(query, src)...)
	}
	if filter.Has(FilterCommand) && src.Commands != nil {
		results = append(results, searchCommands(query, src)...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	slog.Debug("search complete",
		slog.String("query", query),
		slog.String("filter", filter.String()),
		slog.Int("results", len(results)))
	return results, nil
}

// Top returns at most n results. n <= 0 means no limit.
func Top(results []Result, n int) []Result {
	if n > 0 && len(results) > n {
		return results[:n]
	}
	return results
}

// fileSlot is one locator to re-validate. Slots are filled in parallel and
// read back in discovery order.
type fileSlot struct {
	name    string
	locator string
	score   int
	info    fs.FileInfo
}

func (e *Engine) searchFiles(ctx context.Context, query string, idx *index.Index) ([]Result, error) {
	var slots []fileSlot
	for _, entry := range idx.Entries() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		score := match.Score(entry.Name, query)
		if score == match.TierNone {
			continue
		}
		for _, loc := range entry.Locators {
			slots = append(slots, fileSlot{name: entry.Name, locator: loc, score: score})
		}
	}
	if len(slots) == 0 {
		return nil, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.statWorkers)
	for i := range slots {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info, err := e.stat(slots[i].locator)
			if err != nil {
				// Deleted or moved since the last crawl.
				return nil
			}
			if !info.IsDir() {
				slots[i].info = info
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(slots))
	for _, s := range slots {
		if s.info == nil {
			continue
		}
		results = append(results, Result{
			Name:     s.name,
			Kind:     KindFile,
			Locator:  s.locator,
			Metadata: FormatSize(s.info.Size()) + " | " + s.info.ModTime().Format(timeLayout),
			Score:    s.score,
			Size:     s.info.Size(),
			ModTime:  s.info.ModTime(),
		})
	}
	return results, nil
}

func (e *Engine) searchApps(ctx context.Context, query string, idx *index.Index) ([]Result, error) {
	var results []Result
	for _, entry := range idx.Entries() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		score := match.Score(entry.Name, query)
		if score == match.TierNone || len(entry.Locators) == 0 {
			continue
		}
		loc := entry.Locators[0]
		results = append(results, Result{
			Name:     entry.Name,
			Kind:     KindApplication,
			Locator:  loc,
			Metadata: e.describe(loc),
			Score:    score,
		})
	}
	return results, nil
}

func searchWorkspaces(query string, src Sources) []Result {
	workspaces, err := src.Workspaces.ListWorkspaces()
	if err != nil {
		slog.Warn("workspace store failed", slog.String("error", err.Error()))
		return nil
	}

	var results []Result
	for _, ws := range workspaces {
		score := match.Score(ws.Name, query)
		if score == match.TierNone {
			continue
		}
		results = append(results, Result{
			Name:     ws.Name,
			Kind:     KindWorkspace,
			Locator:  ws.Name,
			Metadata: workspaceMetadata(len(ws.Members)),
			Score:    score,
		})
	}
	return results
}

func searchCommands(query string, src Sources) []Result {
	commands, err := src.Commands.ListCommands()
	if err != nil {
		slog.Warn("command store failed", slog.String("error", err.Error()))
		return nil
	}

	var results []Result
	for _, c := range commands {
		score := match.Score(c.Name, query)
		if score == match.TierNone {
			continue
		}
		results = append(results, Result{
			Name:     c.Name,
			Kind:     KindCommand,
			Locator:  c.Command,
			Metadata: commandMetadata(c.Type, c.Description),
			Score:    score,
		})
	}
	return results
}
