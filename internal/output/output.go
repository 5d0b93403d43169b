// Package output provides consistent CLI output formatting for launcher commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Aman-CERP/amanlaunch/internal/search"
)

// Writer provides formatted output for CLI.
type Writer struct {
	out io.Writer
}

// New creates a new output Writer.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status("✅", msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status("⚠️ ", msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status("❌", msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Line prints msg without icon or indentation.
func (w *Writer) Line(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}

// kindIcons mark each result kind in text listings.
var kindIcons = map[search.Kind]string{
	search.KindFile:        "📄",
	search.KindApplication: "🚀",
	search.KindWorkspace:   "🗂️ ",
	search.KindCommand:     "⚡",
}

// Results prints ranked results as numbered blocks of name and score, then
// locator, then metadata on indented lines.
func (w *Writer) Results(query string, results []search.Result) {
	if len(results) == 0 {
		w.Statusf("🔍", "No results for %q", query)
		return
	}
	w.Statusf("🔍", "Found %d results for %q:", len(results), query)
	w.Newline()
	for i, r := range results {
		icon := kindIcons[r.Kind]
		if icon == "" {
			icon = "•"
		}
		_, _ = fmt.Fprintf(w.out, "%d. %s %s (score: %d)\n", i+1, icon, r.Name, r.Score)
		if r.Locator != "" && r.Locator != r.Name {
			_, _ = fmt.Fprintf(w.out, "      %s\n", r.Locator)
		}
		if r.Metadata != "" {
			_, _ = fmt.Fprintf(w.out, "      %s\n", r.Metadata)
		}
	}
}

// List prints items as a numbered list, or empty when there are none.
func (w *Writer) List(items []string, empty string) {
	if len(items) == 0 {
		w.Status("", empty)
		return
	}
	width := len(fmt.Sprint(len(items)))
	for i, it := range items {
		_, _ = fmt.Fprintf(w.out, "%*d. %s\n", width, i+1, it)
	}
}

// KeyValues prints aligned "key: value" pairs in the given order.
func (w *Writer) KeyValues(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		width = max(width, len(p[0]))
	}
	for _, p := range pairs {
		_, _ = fmt.Fprintf(w.out, "   %s:%s %s\n", p[0], strings.Repeat(" ", width-len(p[0])), p[1])
	}
}

// JSON writes v as indented JSON.
func (w *Writer) JSON(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
