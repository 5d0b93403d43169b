package collab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLWorkspaces reads workspaces from a YAML mapping of
// name -> [member paths], preserving file order.
type YAMLWorkspaces struct {
	Path string
}

// ListWorkspaces implements WorkspaceStore. A missing file means no workspaces.
func (s YAMLWorkspaces) ListWorkspaces() ([]Workspace, error) {
	root, err := readMapping(s.Path)
	if err != nil || root == nil {
		return nil, err
	}

	out := make([]Workspace, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		var members []string
		if err := val.Decode(&members); err != nil {
			return nil, fmt.Errorf("workspace %q in %s: %w", key.Value, s.Path, err)
		}
		out = append(out, Workspace{Name: key.Value, Members: members})
	}
	return out, nil
}

// YAMLCommands reads commands from a YAML mapping of
// name -> {command, type, description}, preserving file order.
type YAMLCommands struct {
	Path string
}

// ListCommands implements CommandStore. A missing file means no commands.
func (s YAMLCommands) ListCommands() ([]Command, error) {
	root, err := readMapping(s.Path)
	if err != nil || root == nil {
		return nil, err
	}

	out := make([]Command, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		var c Command
		if err := val.Decode(&c); err != nil {
			return nil, fmt.Errorf("command %q in %s: %w", key.Value, s.Path, err)
		}
		c.Name = key.Value
		if c.Type == "" {
			c.Type = DefaultCommandType
		}
		out = append(out, c)
	}
	return out, nil
}

// readMapping returns the top-level mapping node of a YAML file, or nil when
// the file is missing or empty.
func readMapping(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: top level must be a mapping", path)
	}
	return root, nil
}
