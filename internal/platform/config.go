package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/notepad/pkg/adapters/s3"
)

// ConfigFileName is the name of the project configuration file.
const ConfigFileName = "notepad.yaml"

// FileConfig is the shape of notepad.yaml.
type FileConfig struct {
	Backend      string     `yaml:"backend"`
	Path         string     `yaml:"path"`
	Key          string     `yaml:"key"`
	OrderedSaves *bool      `yaml:"ordered_saves"`
	EventBuffer  int        `yaml:"event_buffer"`
	S3           *s3.Config `yaml:"s3"`
}

// LoadConfig reads a YAML config file. A relative path inside it is resolved
// against the directory of the file.
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Path != "" && !filepath.IsAbs(cfg.Path) {
		cfg.Path = filepath.Join(filepath.Dir(path), cfg.Path)
	}
	return cfg, nil
}

// FindConfig returns the notepad.yaml of the project containing dir, if any.
func FindConfig(dir string) (string, bool) {
	root, err := FindRoot(dir)
	if err != nil {
		return "", false
	}
	path := filepath.Join(root, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// merge fills every option that was not set explicitly from cfg.
func (o *options) merge(cfg FileConfig) {
	if o.backend == "" {
		o.backend = cfg.Backend
	}
	if o.path == "" {
		o.path = cfg.Path
	}
	if o.key == "" {
		o.key = cfg.Key
	}
	if o.orderedSaves == nil {
		o.orderedSaves = cfg.OrderedSaves
	}
	if o.eventBuffer == 0 {
		o.eventBuffer = cfg.EventBuffer
	}
	if o.s3 == nil {
		o.s3 = cfg.S3
	}
}
