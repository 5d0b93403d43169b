package ui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// PlainRenderer outputs plain text progress (for CI/pipes).
type PlainRenderer struct {
	mu     sync.Mutex
	out    io.Writer
	last   ProgressEvent
	errors int
	warns  int
}

// NewPlainRenderer creates a plain text renderer.
func NewPlainRenderer(cfg Config) *PlainRenderer {
	return &PlainRenderer{out: cfg.Output, last: ProgressEvent{Stage: -1}}
}

// Start implements Renderer.
func (r *PlainRenderer) Start(ctx context.Context) error {
	return nil
}

// UpdateProgress implements Renderer. Repeated identical events print once.
func (r *PlainRenderer) UpdateProgress(event ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event == r.last {
		return
	}
	r.last = event

	// Format: [STAGE] count unit - dir
	unit := "files"
	if event.Stage == StageApplications {
		unit = "applications"
	}
	switch {
	case event.Stage == StageSaving:
		_, _ = fmt.Fprintf(r.out, "[%s] writing indexes\n", event.Stage.Icon())
	case event.Dir != "":
		_, _ = fmt.Fprintf(r.out, "[%s] %d %s - %s\n", event.Stage.Icon(), event.Count, unit, event.Dir)
	default:
		_, _ = fmt.Fprintf(r.out, "[%s] %d %s\n", event.Stage.Icon(), event.Count, unit)
	}
}

// AddError implements Renderer.
func (r *PlainRenderer) AddError(event ErrorEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := "ERROR"
	if event.IsWarn {
		prefix = "WARN"
		r.warns++
	} else {
		r.errors++
	}
	_, _ = fmt.Fprintf(r.out, "%s: %v\n", prefix, event.Err)
}

// Complete implements Renderer.
func (r *PlainRenderer) Complete(stats CompletionStats) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.out, "Complete: %d files (%d names), %d applications in %s",
		stats.Files, stats.Names, stats.Apps, stats.Duration.Round(100*time.Millisecond))

	errs, warns := max(stats.Errors, r.errors), max(stats.Warnings, r.warns)
	if errs > 0 || warns > 0 {
		_, _ = fmt.Fprintf(r.out, " (%d errors, %d warnings)", errs, warns)
	}
	_, _ = fmt.Fprintln(r.out)
}

// Stop implements Renderer.
func (r *PlainRenderer) Stop() error {
	return nil
}

var _ Renderer = (*PlainRenderer)(nil)
