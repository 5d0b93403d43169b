// Package search ranks files, applications, workspaces and commands against a
// query by fuzzy name match.
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/Aman-CERP/amanlaunch/internal/collab"
	amerrors "github.com/Aman-CERP/amanlaunch/internal/errors"
	"github.com/Aman-CERP/amanlaunch/internal/index"
)

// Kind is the source a result came from. The presentation layer dispatches
// on it: open a file, launch an application, show a workspace, run a command.
type Kind string

const (
	KindFile        Kind = "file"
	KindApplication Kind = "application"
	KindWorkspace   Kind = "workspace"
	KindCommand     Kind = "command"
)

// Result is one ranked hit. Results are built per query and never persisted.
type Result struct {
	Name     string    `json:"name"`
	Kind     Kind      `json:"kind"`
	Locator  string    `json:"locator"`
	Metadata string    `json:"metadata"`
	Score    int       `json:"score"`
	Size     int64     `json:"size,omitempty"`
	ModTime  time.Time `json:"mod_time,omitzero"`
}

// Sources are the snapshots and collaborators one search reads.
// Nil members contribute no results.
type Sources struct {
	Files      *index.Index
	Apps       *index.Index
	Workspaces collab.WorkspaceStore
	Commands   collab.CommandStore
}

// Filter selects which kinds a search covers.
type Filter uint8

const (
	FilterFile Filter = 1 << iota
	FilterApplication
	FilterWorkspace
	FilterCommand

	FilterAll = FilterFile | FilterApplication | FilterWorkspace | FilterCommand
)

// Has reports whether f selects every kind in k.
func (f Filter) Has(k Filter) bool {
	return f&k == k
}

var filterNames = []struct {
	f    Filter
	name string
}{
	{FilterFile, "file"},
	{FilterApplication, "app"},
	{FilterWorkspace, "workspace"},
	{FilterCommand, "command"},
}

// String returns the filter in the form ParseFilter accepts.
func (f Filter) String() string {
	if f == FilterAll {
		return "all"
	}
	var parts []string
	for _, n := range filterNames {
		if f.Has(n.f) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, ",")
}

// ParseFilter parses a comma-separated kind list such as "file,app".
// An empty string selects all kinds.
func ParseFilter(s string) (Filter, error) {
	var f Filter
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "":
		case "all":
			f |= FilterAll
		case "file", "files":
			f |= FilterFile
		case "app", "apps", "application", "applications":
			f |= FilterApplication
		case "workspace", "workspaces":
			f |= FilterWorkspace
		case "command", "commands", "cmd":
			f |= FilterCommand
		default:
			return 0, amerrors.New(amerrors.ErrCodeInvalidKind,
				fmt.Sprintf("unknown kind %q", part), nil).
				WithSuggestion("use all, file, app, workspace or command")
		}
	}
	if f == 0 {
		f = FilterAll
	}
	return f, nil
}
