package annotate

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tracelift/tracelift/internal/graph"
)

// Config is the YAML annotation surface consumed by the CLI.
//
// Example:
//
//	export_none: true
//	export:
//	  - forward
//	  - s1.forward
type Config struct {
	// ExportNone marks the whole class tree unexported before applying
	// the Export list.
	ExportNone bool `yaml:"export_none"`

	// Export lists dotted attribute paths, relative to the root class,
	// of slots or methods to export.
	Export []string `yaml:"export"`
}

// LoadConfig reads and parses an annotation config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read annotations: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML annotation config bytes.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse annotations: %w", err)
	}
	for _, p := range cfg.Export {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("parse annotations: empty export path")
		}
	}
	return cfg, nil
}

// Apply builds annotator state for the class tree rooted at root.
func (c *Config) Apply(a *Annotator, root *graph.Class) error {
	if c.ExportNone {
		a.ExportNone(root)
	}
	for _, p := range c.Export {
		if err := a.ExportPath(root, strings.Split(p, ".")...); err != nil {
			return err
		}
	}
	return nil
}
