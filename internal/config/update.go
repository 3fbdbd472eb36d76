package config

import (
	"os"
	"strings"

	"github.com/rileyhilliard/insights/internal/errors"
	"gopkg.in/yaml.v3"
)

// dashboardKeys are the top-level keys rewritten when the dashboard saves its
// state. Everything else in the file (store, dataset, comments) is left alone.
var dashboardKeys = []string{"sections", "layoutMode", "autoRefresh", "refreshInterval", "filters", "sort"}

// Update writes the dashboard state from cfg into the config file at path.
// It preserves the existing YAML structure and comments. If the file does not
// exist it is created with Save.
func Update(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Save(path, cfg)
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check permissions on "+path)
	}

	// Parse as yaml.Node to preserve structure
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to parse config file",
			"Check the YAML syntax in "+path)
	}

	if root.Kind == 0 {
		// Empty file
		return Save(path, cfg)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return errors.New(errors.ErrConfig, "Invalid YAML document structure", "Check the YAML syntax in "+path)
	}

	docNode := root.Content[0]
	if docNode.Kind != yaml.MappingNode {
		return errors.New(errors.ErrConfig, "Expected a mapping at the document root", "Check the YAML syntax in "+path)
	}

	var full yaml.Node
	if err := full.Encode(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}

	for _, key := range dashboardKeys {
		value := findMapValue(&full, key)
		if value == nil {
			removeMapKey(docNode, key)
			continue
		}
		setMapValue(docNode, key, value)
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	encoder.Close()

	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file",
			"Check permissions on "+path)
	}

	return nil
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}

// setMapValue replaces the value for key, keeping the key node (and its
// comments), or appends the pair when key is absent.
func setMapValue(node *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode && node.Content[i].Value == key {
			old := node.Content[i+1]
			value.LineComment = old.LineComment
			node.Content[i+1] = value
			return
		}
	}

	keyNode := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: key,
	}
	node.Content = append(node.Content, keyNode, value)
}

func removeMapKey(node *yaml.Node, key string) {
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode && node.Content[i].Value == key {
			node.Content = append(node.Content[:i], node.Content[i+2:]...)
			return
		}
	}
}
