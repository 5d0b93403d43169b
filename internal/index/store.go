package index

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/amanlaunch/internal/atomicfile"
	amerrors "github.com/Aman-CERP/amanlaunch/internal/errors"
)

// Save writes idx to path as a YAML mapping of name -> [locators], in index
// order. The write goes through a temporary file and an atomic rename, so a
// crash mid-write leaves the previous file intact.
func Save(idx *Index, path string) error {
	data, err := Marshal(idx)
	if err != nil {
		return amerrors.IndexSaveError(path, err)
	}
	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return amerrors.IndexSaveError(path, err)
	}
	return nil
}

// Load reads an index written by Save.
//
// A missing file yields an empty index and no error. A file that cannot be
// read or decoded yields an empty index together with an ERR_205 error that
// callers are expected to log as a warning.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Empty(), nil
	}
	if err != nil {
		return Empty(), amerrors.CorruptIndexError(path, err)
	}

	idx, err := Unmarshal(data)
	if err != nil {
		return Empty(), amerrors.CorruptIndexError(path, err)
	}
	return idx, nil
}

// Marshal encodes idx deterministically: same index, same bytes.
//
// YAML cannot carry names or locators that are not valid UTF-8, which some
// filesystems allow. Those locators are left out, and so is any entry left
// without one, rather than failing the whole file.
func Marshal(idx *Index) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range idx.Entries() {
		if !utf8.ValidString(e.Name) {
			continue
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, loc := range e.Locators {
			if utf8.ValidString(loc) {
				seq.Content = append(seq.Content, strNode(loc))
			}
		}
		if len(seq.Content) == 0 {
			continue
		}
		root.Content = append(root.Content, strNode(e.Name), seq)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode index: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode index: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes the format produced by Marshal. An empty document is an
// empty index.
func Unmarshal(data []byte) (*Index, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse index: %w", err)
	}
	if doc.Kind == 0 {
		return Empty(), nil
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return Empty(), nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: index must be a mapping of name to locators", root.Line)
	}

	b := NewBuilder()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, fmt.Errorf("line %d: entry name must be a non-empty string", key.Line)
		}
		if val.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("line %d: locators for %q must be a list", val.Line, key.Value)
		}
		for _, item := range val.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: locator for %q must be a string", item.Line, key.Value)
			}
			b.Add(key.Value, item.Value)
		}
	}
	return b.Build(), nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
