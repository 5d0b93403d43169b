package collab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestYAMLWorkspaces_PreservesFileOrder(t *testing.T) {
	// Given a workspaces file whose keys are not alphabetical
	path := writeFile(t, `
work:
  - /home/me/project
  - /home/me/notes.md
alpha:
  - /srv/alpha
solo:
  - /tmp/scratch
`)

	// When listing
	got, err := YAMLWorkspaces{Path: path}.ListWorkspaces()

	// Then entries come back in file order with their members
	require.NoError(t, err)
	assert.Equal(t, []Workspace{
		{Name: "work", Members: []string{"/home/me/project", "/home/me/notes.md"}},
		{Name: "alpha", Members: []string{"/srv/alpha"}},
		{Name: "solo", Members: []string{"/tmp/scratch"}},
	}, got)
}

func TestYAMLWorkspaces_MissingOrEmptyFile(t *testing.T) {
	got, err := YAMLWorkspaces{Path: filepath.Join(t.TempDir(), "none.yaml")}.ListWorkspaces()
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = YAMLWorkspaces{Path: writeFile(t, "")}.ListWorkspaces()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestYAMLWorkspaces_RejectsWrongShapes(t *testing.T) {
	_, err := YAMLWorkspaces{Path: writeFile(t, "- a\n- b\n")}.ListWorkspaces()
	assert.Error(t, err)

	_, err = YAMLWorkspaces{Path: writeFile(t, "work:\n  path: /x\n")}.ListWorkspaces()
	assert.Error(t, err)

	_, err = YAMLWorkspaces{Path: writeFile(t, "work: [unclosed\n")}.ListWorkspaces()
	assert.Error(t, err)
}

func TestYAMLCommands_DecodesAndDefaultsType(t *testing.T) {
	path := writeFile(t, `
deploy:
  command: make deploy
  type: shell
  description: Ship it
open-logs:
  command: code ~/logs
`)

	got, err := YAMLCommands{Path: path}.ListCommands()

	require.NoError(t, err)
	assert.Equal(t, []Command{
		{Name: "deploy", Command: "make deploy", Type: "shell", Description: "Ship it"},
		{Name: "open-logs", Command: "code ~/logs", Type: DefaultCommandType},
	}, got)
}

func TestYAMLCommands_MissingFile(t *testing.T) {
	got, err := YAMLCommands{Path: filepath.Join(t.TempDir(), "none.yaml")}.ListCommands()

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestYAMLCommands_RejectsScalarValue(t *testing.T) {
	_, err := YAMLCommands{Path: writeFile(t, "deploy: make deploy\n")}.ListCommands()

	assert.Error(t, err)
}
