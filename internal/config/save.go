package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveSources replaces the sources section of the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveSources(configPath string, sources []SourceConfig) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	sourcesNode := buildSourcesNode(sources)

	if doc.Kind == 0 {
		// Empty or new file
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "sources"},
						sourcesNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return fmt.Errorf("parsing config: top level is not a mapping")
		}
		found := false
		for i := 0; i < len(root.Content)-1; i += 2 {
			if root.Content[i].Value == "sources" {
				root.Content[i+1] = sourcesNode
				found = true
				break
			}
		}
		if !found {
			root.Content = append(root.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: "sources"},
				sourcesNode,
			)
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// AddSource appends s unless a source with the same loader name exists.
// It reports whether the file changed.
func AddSource(configPath string, existing []SourceConfig, s SourceConfig) (bool, error) {
	for _, e := range existing {
		if e.LoaderName() == s.LoaderName() {
			return false, nil
		}
	}
	all := append(append([]SourceConfig(nil), existing...), s)
	if err := ValidateSources(all); err != nil {
		return false, err
	}
	if err := SaveSources(configPath, all); err != nil {
		return false, err
	}
	return true, nil
}

// writeAtomic writes to a temp file next to path, then renames it.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".defreg.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// buildSourcesNode creates a yaml.Node representing the sources array.
// Empty optional fields are left out.
func buildSourcesNode(sources []SourceConfig) *yaml.Node {
	node := &yaml.Node{
		Kind:    yaml.SequenceNode,
		Content: make([]*yaml.Node, 0, len(sources)),
	}

	for _, s := range sources {
		srcNode := &yaml.Node{Kind: yaml.MappingNode}
		add := func(key, value, tag string) {
			srcNode.Content = append(srcNode.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: key},
				&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: tag},
			)
		}
		if s.Name != "" {
			add("name", s.Name, "")
		}
		add("kind", s.Kind, "")
		add("path", s.Path, "")
		if s.Access != "" {
			add("access", s.Access, "")
		}
		if s.Watch {
			add("watch", strconv.FormatBool(s.Watch), "!!bool")
		}
		node.Content = append(node.Content, srcNode)
	}

	return node
}
