package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/azario0/prototypes-txt-reader/internal/log"
)

// SetValue writes key (dotted, e.g. "search.ignore_case") to the config
// file at configPath. Comments and other settings are preserved through
// yaml.Node; missing sections are created.
func SetValue(configPath, key, value string) error {
	parts := strings.Split(key, ".")
	for _, p := range parts {
		if p == "" {
			return fmt.Errorf("invalid key %q", key)
		}
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // G304: user config path
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	node := root
	for _, p := range parts[:len(parts)-1] {
		node = childMapping(node, p)
	}
	setScalar(node, parts[len(parts)-1], value)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = enc.Close()

	if err := writeAtomic(configPath, buf.Bytes()); err != nil {
		return err
	}
	log.Info(log.CatConfig, "saved setting", "path", configPath, "key", key)
	return nil
}

// childMapping returns the mapping under key, replacing a non-mapping value
// and creating it when absent.
func childMapping(parent *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(parent.Content); i += 2 {
		if parent.Content[i].Value == key {
			child := parent.Content[i+1]
			if child.Kind != yaml.MappingNode {
				child = &yaml.Node{Kind: yaml.MappingNode}
				parent.Content[i+1] = child
			}
			return child
		}
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	parent.Content = append(parent.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, child)
	return child
}

func setScalar(parent *yaml.Node, key, value string) {
	scalar := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	for i := 0; i+1 < len(parent.Content); i += 2 {
		if parent.Content[i].Value == key {
			scalar.LineComment = parent.Content[i+1].LineComment
			parent.Content[i+1] = scalar
			return
		}
	}
	parent.Content = append(parent.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, scalar)
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".txtreader.yaml.tmp.*")
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
