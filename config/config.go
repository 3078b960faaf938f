package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Graph  GraphConfig  `json:"graph" yaml:"graph"`
	Render RenderConfig `json:"render" yaml:"render"`
	Reader ReaderConfig `json:"reader" yaml:"reader"`
}

// GraphConfig holds the options that change branch and column assignment.
type GraphConfig struct {
	PriorityBranches              []string `json:"priorityBranches" yaml:"priorityBranches"` // Fixed columns, in order
	FirstParentOnly               bool     `json:"firstParentOnly" yaml:"firstParentOnly"`
	MuteMergeCommits              bool     `json:"muteMergeCommits" yaml:"muteMergeCommits"`
	MuteCommitsNotAncestorsOfHead bool     `json:"muteCommitsNotAncestorsOfHead" yaml:"muteCommitsNotAncestorsOfHead"`
}

// Style controls how curved segments are turned into drawing instructions.
type Style string

const (
	StyleRounded Style = "rounded"
	StyleAngular Style = "angular"
)

// GridConfig is the pixel size of one graph cell and the offset of cell (0, 0).
type GridConfig struct {
	X       int `json:"x" yaml:"x"`
	Y       int `json:"y" yaml:"y"`
	OffsetX int `json:"offsetX" yaml:"offsetX"`
	OffsetY int `json:"offsetY" yaml:"offsetY"`
}

// RenderConfig holds options only the renderers use.
type RenderConfig struct {
	Grid    GridConfig `json:"grid" yaml:"grid"`
	Colours []string   `json:"colours" yaml:"colours"` // Reused cyclically by column
	Style   Style      `json:"style" yaml:"style"`
}

// ReaderConfig holds history retrieval options.
type ReaderConfig struct {
	Backend                string   `json:"backend" yaml:"backend"`       // "go-git" or "git-cli"
	MaxCommits             int      `json:"maxCommits" yaml:"maxCommits"` // Default: 300
	ShowRemoteBranches     bool     `json:"showRemoteBranches" yaml:"showRemoteBranches"`
	ShowTags               bool     `json:"showTags" yaml:"showTags"`
	ShowStashes            bool     `json:"showStashes" yaml:"showStashes"`
	ShowUncommittedChanges bool     `json:"showUncommittedChanges" yaml:"showUncommittedChanges"`
	IncludeRefs            []string `json:"includeRefs" yaml:"includeRefs"`
	ExcludeRefs            []string `json:"excludeRefs" yaml:"excludeRefs"`
}

// DefaultColours is the palette used when none is configured.
var DefaultColours = []string{
	"#0085d9", "#d9008f", "#00d90a", "#d98500",
	"#a300d9", "#ff0000", "#00d9cc", "#e138e8",
	"#85d900", "#dc5b23", "#6f24d6", "#ffcc00",
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			PriorityBranches: []string{},
		},
		Render: RenderConfig{
			Grid: GridConfig{
				X:       16,
				Y:       24,
				OffsetX: 16,
				OffsetY: 12,
			},
			Colours: append([]string(nil), DefaultColours...),
			Style:   StyleRounded,
		},
		Reader: ReaderConfig{
			Backend:                "go-git",
			MaxCommits:             300,
			ShowRemoteBranches:     true,
			ShowTags:               true,
			ShowStashes:            true,
			ShowUncommittedChanges: true,
			IncludeRefs:            []string{},
			ExcludeRefs:            []string{},
		},
	}
}

// Validate checks values that would make rendering impossible.
func (c *Config) Validate() error {
	if len(c.Render.Colours) == 0 {
		return fmt.Errorf("render.colours must not be empty")
	}
	switch c.Render.Style {
	case StyleRounded, StyleAngular:
	default:
		return fmt.Errorf("render.style must be %q or %q, got %q", StyleRounded, StyleAngular, c.Render.Style)
	}
	if c.Render.Grid.X <= 0 || c.Render.Grid.Y <= 0 {
		return fmt.Errorf("render.grid x and y must be positive")
	}
	if c.Reader.MaxCommits < 0 {
		return fmt.Errorf("reader.maxCommits must not be negative")
	}
	switch c.Reader.Backend {
	case "go-git", "git-cli":
	default:
		return fmt.Errorf("reader.backend must be \"go-git\" or \"git-cli\", got %q", c.Reader.Backend)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig loads configuration from a file, merging with defaults.
// Files ending in .yaml or .yml are parsed as YAML, anything else as JSON.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".commitgraph.json", ".commitgraph.yaml", ".commitgraph.yml"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates,
				filepath.Join(home, ".commitgraph.json"),
				filepath.Join(home, ".commitgraph.yaml"),
			)
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file in the format implied by its extension.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
