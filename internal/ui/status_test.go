package ui

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRenderer_Render(t *testing.T) {
	// Given: a ready index with some content
	buf := &bytes.Buffer{}
	r := NewStatusRenderer(buf, true)
	info := StatusInfo{
		Platform:     "posix",
		DataDir:      "/home/u/.amanlaunch",
		State:        "ready",
		FileNames:    10,
		FileLocators: 14,
		Applications: 3,
		Workspaces:   2,
		Commands:     1,
		HistorySize:  4,
		IndexBytes:   1536,
	}

	// When: rendering
	require.NoError(t, r.Render(info))

	// Then: every section is present
	out := buf.String()
	assert.Contains(t, out, "Launcher Status (posix)")
	assert.Contains(t, out, "Indexer:      ready")
	assert.Contains(t, out, "Files:        14 (10 names)")
	assert.Contains(t, out, "Applications: 3")
	assert.Contains(t, out, "History:      4 queries")
	assert.Contains(t, out, "Last indexed: never")
	assert.Contains(t, out, "Index size:   1.50 KB")
	assert.NotContains(t, out, "Lock:")
}

func TestStatusRenderer_RenderErrorAndLock(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewStatusRenderer(buf, true)

	require.NoError(t, r.Render(StatusInfo{State: "error", ErrorMessage: "boom", LockedElsewhere: true}))

	assert.Contains(t, buf.String(), "Last error:   boom")
	assert.Contains(t, buf.String(), "held by another process")
}

func TestStatusRenderer_RenderJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewStatusRenderer(buf, true)

	require.NoError(t, r.RenderJSON(StatusInfo{State: "idle", FileNames: 2}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "idle", decoded["state"])
	assert.EqualValues(t, 2, decoded["file_names"])
	assert.NotContains(t, decoded, "last_indexed")
}

func TestFormatTime(t *testing.T) {
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{time.Hour, "1 hour ago"},
		{30 * time.Hour, "1 day ago"},
		{3 * 24 * time.Hour, "3 days ago"},
		{10 * 24 * time.Hour, "2024-02-28 12:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatTime(now.Add(-tt.ago), now))
	}
}
