// Package collab defines the workspace and custom-command collaborators the
// search engine queries, plus read-only implementations backed by YAML files.
//
// Creating, editing and deleting workspaces or commands is outside this
// module; the files are maintained by the user or another tool.
package collab

// Workspace is a named group of paths opened together.
type Workspace struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Command is a user-defined shell command.
type Command struct {
	Name        string `json:"name" yaml:"-"`
	Command     string `json:"command" yaml:"command"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// WorkspaceStore lists workspaces in a stable order.
type WorkspaceStore interface {
	ListWorkspaces() ([]Workspace, error)
}

// CommandStore lists custom commands in a stable order.
type CommandStore interface {
	ListCommands() ([]Command, error)
}

// DefaultCommandType is used for commands that do not declare a type.
const DefaultCommandType = "shell"

// File names of the YAML stores inside the data directory.
const (
	WorkspacesFile = "workspaces.yaml"
	CommandsFile   = "commands.yaml"
)
