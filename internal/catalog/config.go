// Package catalog implements the firmware catalog backend: it scans the
// firmware archive on disk, resolves flash offsets from per-build partition
// tables, and serves manifests to the flasher frontend.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceDir is one firmware archive root.
type SourceDir struct {
	Path string `yaml:"path"`
	Src  string `yaml:"src"`
	Desc string `yaml:"desc"`
	Type string `yaml:"type"`
}

// Config configures the catalog server.
type Config struct {
	Listen  string      `yaml:"listen"`
	FwDirs  []SourceDir `yaml:"fwDirs"`
	BinDir  string      `yaml:"binDir"`
	BaseURL string      `yaml:"baseUrl"`
}

// configFile is the on-disk layout: a base section plus per-environment
// overlays, with the active environment named at the top level.
type configFile struct {
	Base         Config            `yaml:"base"`
	Environment  string            `yaml:"environment"`
	Environments map[string]Config `yaml:"environments"`
}

// LoadConfig reads the YAML config and merges the active environment's
// overlay over the base section. Overlay fields win when set.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := file.Base
	if file.Environment != "" {
		overlay, ok := file.Environments[file.Environment]
		if !ok {
			return nil, fmt.Errorf("config environment %q not defined", file.Environment)
		}
		mergeConfig(&cfg, &overlay)
	}

	if cfg.Listen == "" {
		cfg.Listen = ":8000"
	}
	return &cfg, nil
}

func mergeConfig(base, overlay *Config) {
	if overlay.Listen != "" {
		base.Listen = overlay.Listen
	}
	if len(overlay.FwDirs) > 0 {
		base.FwDirs = overlay.FwDirs
	}
	if overlay.BinDir != "" {
		base.BinDir = overlay.BinDir
	}
	if overlay.BaseURL != "" {
		base.BaseURL = overlay.BaseURL
	}
}
