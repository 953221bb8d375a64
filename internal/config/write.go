package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/statoverlay/internal/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk layout. Durations are written as strings so the
// file stays readable.
type fileConfig struct {
	Version        int          `yaml:"version"`
	PlayerName     string       `yaml:"player_name"`
	SampleInterval string       `yaml:"sample_interval"`
	FrameInterval  string       `yaml:"frame_interval"`
	FastMode       bool         `yaml:"fast_mode"`
	StartVisible   bool         `yaml:"start_visible"`
	PeerOrder      string       `yaml:"peer_order"`
	Window         WindowConfig `yaml:"window"`
	Panels         PanelsConfig `yaml:"panels"`
}

var keyComments = map[string]string{
	"sample_interval": "minimum time between samples",
	"frame_interval":  "surface redraw rate",
	"peer_order":      "insertion | name",
	"window":          "pixels; cell_width/cell_height convert to terminal cells",
	"panels":          "initial toggle state",
}

// Marshal renders cfg as commented YAML.
func Marshal(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		Version:        cfg.Version,
		PlayerName:     cfg.PlayerName,
		SampleInterval: cfg.SampleInterval.String(),
		FrameInterval:  cfg.FrameInterval.String(),
		FastMode:       cfg.FastMode,
		StartVisible:   cfg.StartVisible,
		PeerOrder:      cfg.PeerOrder,
		Window:         cfg.Window,
		Panels:         cfg.Panels,
	}

	var doc yaml.Node
	if err := doc.Encode(fc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	for i := 0; i < len(doc.Content)-1; i += 2 {
		if c, ok := keyComments[doc.Content[i].Value]; ok {
			doc.Content[i].LineComment = c
		}
	}

	return encode(&doc)
}

// Write validates cfg and writes it to path, creating parent directories.
func Write(path string, cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to render config", "")
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot create config directory: "+dir,
				"Check directory permissions")
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file: "+path,
			"Check file permissions")
	}
	return nil
}

// UpdateKey sets a single dotted key (like "window.width") in an existing
// config file. It preserves the existing YAML structure and comments, and
// refuses to write a value that would make the config invalid.
func UpdateKey(path, key, value string) error {
	if !IsKey(key) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown config key '%s'", key),
			"Known keys: "+strings.Join(Keys(), ", "))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file: "+path,
			"Run 'statoverlay config init' to create one")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to parse config file: "+path,
			"Check the YAML syntax")
	}

	if root.Kind == 0 {
		// Empty file.
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return errors.New(errors.ErrConfig,
			"Expected a mapping at the top of "+path,
			"The config file should be a YAML map of keys")
	}

	node := root.Content[0]
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child := findMapValue(node, part)
		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			node.Content = append(node.Content, scalar(part), child)
		}
		if child.Kind != yaml.MappingNode {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' in %s isn't a map", part, path),
				"Fix the file by hand or recreate it with 'statoverlay config init'")
		}
		node = child
	}

	leaf := parts[len(parts)-1]
	if existing := findMapValue(node, leaf); existing != nil {
		existing.Kind = yaml.ScalarNode
		existing.Tag = ""
		existing.Style = 0
		existing.Value = value
		existing.Content = nil
	} else {
		node.Content = append(node.Content, scalar(leaf), &yaml.Node{Kind: yaml.ScalarNode, Value: value})
	}

	out, err := encode(&root)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to render config", "")
	}

	cfg, err := Parse(out)
	if err != nil {
		return err
	}
	if err := Validate(cfg); err != nil {
		return err
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file: "+path,
			"Check file permissions")
	}
	return nil
}

func encode(node *yaml.Node) ([]byte, error) {
	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(node); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return []byte(buf.String()), nil
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
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
