package search

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/amanlaunch/internal/collab"
	"github.com/Aman-CERP/amanlaunch/internal/index"
	"github.com/Aman-CERP/amanlaunch/internal/match"
)

type fakeWorkspaces struct {
	list []collab.Workspace
	err  error
}

func (f fakeWorkspaces) ListWorkspaces() ([]collab.Workspace, error) { return f.list, f.err }

type fakeCommands struct {
	list []collab.Command
	err  error
}

func (f fakeCommands) ListCommands() ([]collab.Command, error) { return f.list, f.err }

// fileIndex writes each relative path under dir and indexes it by base name.
func fileIndex(t *testing.T, dir string, rels ...string) (*index.Index, []string) {
	t.Helper()
	b := index.NewBuilder()
	var paths []string
	for _, rel := range rels {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("content"), 0o644))
		b.Add(filepath.Base(p), p)
		paths = append(paths, p)
	}
	return b.Build(), paths
}

func names(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Name)
	}
	return out
}

func TestSearch_PrefixTieKeepsDiscoveryOrder(t *testing.T) {
	// Given report.pdf discovered before report_final.pdf
	dir := t.TempDir()
	files, paths := fileIndex(t, dir, "a/report.pdf", "b/report_final.pdf")

	// When searching for "report"
	results, err := NewEngine().Search(context.Background(), "report", FilterAll, Sources{Files: files})

	// Then both score 80 and keep their index order
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"report.pdf", "report_final.pdf"}, names(results))
	assert.Equal(t, match.TierPrefix, results[0].Score)
	assert.Equal(t, match.TierPrefix, results[1].Score)
	assert.Equal(t, paths[0], results[0].Locator)
	assert.Equal(t, KindFile, results[0].Kind)
}

func TestSearch_SubsequenceAndMiss(t *testing.T) {
	dir := t.TempDir()
	files, _ := fileIndex(t, dir, "report.pdf")
	e := NewEngine()

	results, err := e.Search(context.Background(), "rpt", FilterFile, Sources{Files: files})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match.TierSubsequence, results[0].Score)

	results, err = e.Search(context.Background(), "xyz", FilterFile, Sources{Files: files})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_RanksByScoreStably(t *testing.T) {
	// Given candidates at every tier, inserted weakest first
	dir := t.TempDir()
	files, _ := fileIndex(t, dir,
		"x/n_o_t_e_s", // subsequence
		"x/my-notes",  // substring
		"x/notes.txt", // prefix
		"y/my-notes",  // substring, second locator for the same name
		"x/NOTES",     // exact, case-insensitive
	)

	results, err := NewEngine().Search(context.Background(), "notes", FilterAll, Sources{Files: files})

	require.NoError(t, err)
	var scores []int
	for _, r := range results {
		scores = append(scores, r.Score)
	}
	assert.Equal(t, []int{100, 80, 60, 60, 40}, scores)
	assert.Equal(t, []string{"NOTES", "notes.txt", "my-notes", "my-notes", "n_o_t_e_s"}, names(results))
	assert.Equal(t, filepath.Join(dir, "x", "my-notes"), results[2].Locator)
	assert.Equal(t, filepath.Join(dir, "y", "my-notes"), results[3].Locator)
}

func TestSearch_DeletedFileIsSilentlyOmitted(t *testing.T) {
	// Given an index snapshot that references a file since deleted
	dir := t.TempDir()
	files, paths := fileIndex(t, dir, "a/plan.md", "b/plan.md")
	require.NoError(t, os.Remove(paths[0]))

	// When searching
	results, err := NewEngine().Search(context.Background(), "plan", FilterFile, Sources{Files: files})

	// Then only the surviving locator is returned, without error
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, paths[1], results[0].Locator)
}

func TestSearch_DirectoryLocatorIsDropped(t *testing.T) {
	dir := t.TempDir()
	b := index.NewBuilder()
	b.Add("photos", dir)

	results, err := NewEngine().Search(context.Background(), "photos", FilterFile, Sources{Files: b.Build()})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_FileMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budget.xlsx")
	require.NoError(t, os.WriteFile(path, make([]byte, 1536), 0o644))
	mtime := time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	b := index.NewBuilder()
	b.Add("budget.xlsx", path)

	results, err := NewEngine().Search(context.Background(), "budget", FilterFile, Sources{Files: b.Build()})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "1.50 KB | 2024-03-09 14:05", results[0].Metadata)
	assert.Equal(t, int64(1536), results[0].Size)
	assert.True(t, mtime.Equal(results[0].ModTime))
}

func TestSearch_AllKindsConcatenatedInOrder(t *testing.T) {
	// Given one equally scored candidate per kind
	dir := t.TempDir()
	files, _ := fileIndex(t, dir, "deploy.sh")
	ab := index.NewFirstWinsBuilder()
	ab.Add("deployer", filepath.Join(dir, "deployer"))
	src := Sources{
		Files: files,
		Apps:  ab.Build(),
		Workspaces: fakeWorkspaces{list: []collab.Workspace{
			{Name: "deployment", Members: []string{"/a", "/b"}},
			{Name: "unrelated", Members: nil},
		}},
		Commands: fakeCommands{list: []collab.Command{
			{Name: "deploy-prod", Command: "make deploy", Type: "shell", Description: "Ship it"},
		}},
	}

	// When searching all kinds
	results, err := NewEngine().Search(context.Background(), "deploy", FilterAll, src)

	// Then prefix ties keep the file, app, workspace, command order
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, []Kind{KindFile, KindApplication, KindWorkspace, KindCommand},
		[]Kind{results[0].Kind, results[1].Kind, results[2].Kind, results[3].Kind})
	assert.Equal(t, "application", results[1].Metadata, "a missing app locator cannot be inspected")
	assert.Equal(t, "2 members", results[2].Metadata)
	assert.Equal(t, "deployment", results[2].Locator)
	assert.Equal(t, "shell: Ship it", results[3].Metadata)
	assert.Equal(t, "make deploy", results[3].Locator)
}

func TestSearch_FilterRestrictsKinds(t *testing.T) {
	dir := t.TempDir()
	files, _ := fileIndex(t, dir, "build.log")
	src := Sources{
		Files:    files,
		Commands: fakeCommands{list: []collab.Command{{Name: "build", Command: "make", Type: "shell"}}},
	}

	results, err := NewEngine().Search(context.Background(), "build", FilterCommand, src)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, KindCommand, results[0].Kind)
	assert.Equal(t, "shell", results[0].Metadata)
}

func TestSearch_FailingCollaboratorContributesNothing(t *testing.T) {
	src := Sources{
		Workspaces: fakeWorkspaces{err: errors.New("store offline")},
		Commands:   fakeCommands{list: []collab.Command{{Name: "home", Command: "cd ~", Type: "shell"}}},
	}

	results, err := NewEngine().Search(context.Background(), "home", FilterAll, src)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, KindCommand, results[0].Kind)
}

func TestSearch_BlankQueryReturnsNothing(t *testing.T) {
	dir := t.TempDir()
	files, _ := fileIndex(t, dir, "a.txt")

	for _, q := range []string{"", "   ", "\t\n"} {
		results, err := NewEngine().Search(context.Background(), q, FilterAll, Sources{Files: files})
		require.NoError(t, err)
		assert.Nil(t, results)
	}
}

func TestSearch_QueryIsTrimmed(t *testing.T) {
	dir := t.TempDir()
	files, _ := fileIndex(t, dir, "todo.md")

	results, err := NewEngine().Search(context.Background(), "  todo  ", FilterAll, Sources{Files: files})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match.TierPrefix, results[0].Score)
}

func TestSearch_NilSourcesAreEmpty(t *testing.T) {
	results, err := NewEngine().Search(context.Background(), "anything", FilterAll, Sources{})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	files, _ := fileIndex(t, dir, "a.txt")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().Search(ctx, "a", FilterAll, Sources{Files: files})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch_ParallelStatPreservesOrder(t *testing.T) {
	// Given many locators for one name
	dir := t.TempDir()
	var rels []string
	for i := 0; i < 64; i++ {
		rels = append(rels, filepath.Join("d"+string(rune('a'+i%26))+string(rune('a'+i/26)), "dup.txt"))
	}
	files, paths := fileIndex(t, dir, rels...)

	// When stat runs with several workers
	results, err := NewEngine(WithStatWorkers(8)).Search(context.Background(), "dup", FilterFile, Sources{Files: files})

	// Then results follow locator order
	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for i, r := range results {
		assert.Equal(t, paths[i], r.Locator)
	}
}

func TestTop(t *testing.T) {
	rs := []Result{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	assert.Len(t, Top(rs, 2), 2)
	assert.Len(t, Top(rs, 0), 3)
	assert.Len(t, Top(rs, 10), 3)
	assert.Len(t, Top(nil, 1), 0)
}
