package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"
)

// LogEntry is one parsed JSON log line.
type LogEntry struct {
	Time    time.Time
	Level   string
	Msg     string
	Attrs   map[string]any
	Raw     string
	IsValid bool
}

// ViewerConfig filters entries shown by the viewer.
type ViewerConfig struct {
	Level   string         // minimum level; empty shows everything
	Pattern *regexp.Regexp // matched against the raw line
}

// Viewer reads and formats the launcher log.
type Viewer struct {
	config ViewerConfig
}

// NewViewer creates a log viewer.
func NewViewer(cfg ViewerConfig) *Viewer {
	return &Viewer{config: cfg}
}

// Tail returns the last n entries of path that pass the filter.
func (v *Viewer) Tail(path string, n int) ([]LogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var entries []LogEntry
	for sc.Scan() {
		e := parseLine(sc.Text())
		if v.matches(e) {
			entries = append(entries, e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// Format renders an entry as "15:04:05.000 LEVEL msg key=value ...".
// Lines that are not JSON are returned unchanged.
func (v *Viewer) Format(e LogEntry) string {
	if !e.IsValid {
		return e.Raw
	}

	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s", e.Time.Format("15:04:05.000"), e.Level, e.Msg)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Attrs[k])
	}
	return b.String()
}

func parseLine(line string) LogEntry {
	e := LogEntry{Raw: line}
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		return e
	}

	e.IsValid = true
	if s, ok := m["time"].(string); ok {
		e.Time, _ = time.Parse(time.RFC3339Nano, s)
	}
	e.Level, _ = m["level"].(string)
	e.Msg, _ = m["msg"].(string)
	delete(m, "time")
	delete(m, "level")
	delete(m, "msg")
	e.Attrs = m
	return e
}

func (v *Viewer) matches(e LogEntry) bool {
	if v.config.Pattern != nil && !v.config.Pattern.MatchString(e.Raw) {
		return false
	}
	if v.config.Level == "" || !e.IsValid {
		return true
	}
	return LevelFromString(e.Level) >= LevelFromString(v.config.Level)
}
