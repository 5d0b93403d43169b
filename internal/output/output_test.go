package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/amanlaunch/internal/search"
)

func TestWriter_StatusIcons(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
		want  []string
	}{
		{"status", func(w *Writer) { w.Status("🔍", "Scanning...") }, []string{"🔍 Scanning...\n"}},
		{"status without icon is indented", func(w *Writer) { w.Status("", "detail") }, []string{"   detail\n"}},
		{"success", func(w *Writer) { w.Successf("Indexed %d files", 3) }, []string{"✅", "Indexed 3 files"}},
		{"warning", func(w *Writer) { w.Warning("index is stale") }, []string{"⚠️", "index is stale"}},
		{"error", func(w *Writer) { w.Errorf("failed: %s", "boom") }, []string{"❌", "failed: boom"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.write(New(buf))
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestWriter_Results_ListsHitsInOrder(t *testing.T) {
	// Given: a file hit and a workspace hit
	buf := &bytes.Buffer{}
	w := New(buf)
	results := []search.Result{
		{Name: "report.pdf", Kind: search.KindFile, Locator: "/docs/report.pdf", Metadata: "1.50 KB | 2024-03-09 14:05", Score: 100},
		{Name: "reports", Kind: search.KindWorkspace, Locator: "reports", Metadata: "2 members", Score: 80},
	}

	// When: printing them
	w.Results("report", results)

	// Then: both are numbered in rank order with locator and metadata
	out := buf.String()
	assert.Contains(t, out, `Found 2 results for "report"`)
	first := strings.Index(out, "1. 📄 report.pdf (score: 100)")
	second := strings.Index(out, "2. 🗂️  reports (score: 80)")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	assert.Contains(t, out, "      /docs/report.pdf\n")
	assert.Contains(t, out, "      1.50 KB | 2024-03-09 14:05\n")
	assert.NotContains(t, out, "      reports\n", "a locator equal to the name is not repeated")
}

func TestWriter_Results_Empty(t *testing.T) {
	buf := &bytes.Buffer{}

	New(buf).Results("zzz", nil)

	assert.Equal(t, "🔍 No results for \"zzz\"\n", buf.String())
}

func TestWriter_List(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(buf)

	w.List([]string{"beta", "alpha"}, "nothing")
	w.List(nil, "nothing")

	assert.Equal(t, "1. beta\n2. alpha\n   nothing\n", buf.String())
}

func TestWriter_KeyValues_AlignsKeys(t *testing.T) {
	buf := &bytes.Buffer{}

	New(buf).KeyValues([][2]string{{"status", "ready"}, {"files", "12"}, {"applications", "3"}})

	assert.Equal(t,
		"   status:       ready\n   files:        12\n   applications: 3\n",
		buf.String())
}

func TestWriter_JSON(t *testing.T) {
	buf := &bytes.Buffer{}

	err := New(buf).JSON([]search.Result{{Name: "a", Kind: search.KindCommand, Locator: "echo a", Score: 60}})

	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "command", decoded[0]["kind"])
	assert.NotContains(t, decoded[0], "size")
	assert.NotContains(t, decoded[0], "mod_time")
}
