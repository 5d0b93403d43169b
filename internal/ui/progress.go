package ui

import (
	"sync"
	"time"
)

// speedInterval is the minimum gap between throughput samples.
const speedInterval = 500 * time.Millisecond

// ProgressTracker manages crawl progress across stages.
// It is safe for concurrent use.
type ProgressTracker struct {
	mu         sync.RWMutex
	stage      Stage
	count      int
	dir        string
	startTime  time.Time
	stageStart time.Time
	errors     int
	warnings   int

	lastCount     int
	lastSpeedCalc time.Time
	currentSpeed  float64
	avgSpeed      float64
	peakSpeed     float64
	speedSamples  int
	sparkline     *Sparkline

	now func() time.Time
}

// SpeedStats contains throughput metrics in items per second.
type SpeedStats struct {
	Current float64
	Avg     float64
	Peak    float64
}

// ProgressStats contains a snapshot of current progress.
type ProgressStats struct {
	Stage      Stage
	Count      int
	Dir        string
	Elapsed    time.Duration
	ErrorCount int
	WarnCount  int
	Speed      SpeedStats
}

// NewProgressTracker creates a new progress tracker.
func NewProgressTracker() *ProgressTracker {
	return newProgressTracker(time.Now)
}

func newProgressTracker(now func() time.Time) *ProgressTracker {
	t := now()
	return &ProgressTracker{
		stage:         StageScanning,
		startTime:     t,
		stageStart:    t,
		lastSpeedCalc: t,
		sparkline:     NewSparkline(60),
		now:           now,
	}
}

// SetStage transitions to a new stage and resets throughput tracking.
func (p *ProgressTracker) SetStage(stage Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if stage == p.stage {
		return
	}
	p.stage = stage
	p.count = 0
	p.dir = ""
	p.stageStart = p.now()
	p.lastCount = 0
	p.lastSpeedCalc = p.stageStart
	p.currentSpeed = 0
	p.avgSpeed = 0
	p.peakSpeed = 0
	p.speedSamples = 0
	p.sparkline.Clear()
}

// Update records the running count for the current stage.
func (p *ProgressTracker) Update(count int, dir string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.count = count
	if dir != "" {
		p.dir = dir
	}

	now := p.now()
	elapsed := now.Sub(p.lastSpeedCalc)
	if elapsed < speedInterval {
		return
	}
	if delta := count - p.lastCount; delta > 0 {
		speed := float64(delta) / elapsed.Seconds()
		p.currentSpeed = speed
		p.speedSamples++
		if p.speedSamples == 1 {
			p.avgSpeed = speed
		} else {
			p.avgSpeed = 0.2*speed + 0.8*p.avgSpeed
		}
		p.peakSpeed = max(p.peakSpeed, speed)
		p.sparkline.Add(speed)
	}
	p.lastCount = count
	p.lastSpeedCalc = now
}

// AddError records an error or warning.
func (p *ProgressTracker) AddError(event ErrorEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if event.IsWarn {
		p.warnings++
	} else {
		p.errors++
	}
}

// Stats returns current statistics snapshot.
func (p *ProgressTracker) Stats() ProgressStats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return ProgressStats{
		Stage:      p.stage,
		Count:      p.count,
		Dir:        p.dir,
		Elapsed:    p.now().Sub(p.startTime),
		ErrorCount: p.errors,
		WarnCount:  p.warnings,
		Speed: SpeedStats{
			Current: p.currentSpeed,
			Avg:     p.avgSpeed,
			Peak:    p.peakSpeed,
		},
	}
}

// RenderSparkline returns the throughput sparkline at the given width.
func (p *ProgressTracker) RenderSparkline(width int) string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.sparkline.RenderWithWidth(width)
}
