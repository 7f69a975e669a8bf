// Package config loads the tool's own settings from an optional HCL
// file. Every field has a default so the converter runs with no config
// at all.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config holds converter-wide settings.
type Config struct {
	OutputDir string `hcl:"output_dir,optional"`
	LogLevel  string `hcl:"log_level,optional"`
	LogFormat string `hcl:"log_format,optional"` // "console" or "json"
	Overwrite bool   `hcl:"overwrite,optional"`
	Parallel  bool   `hcl:"parallel,optional"`
	Recursive bool   `hcl:"recursive,optional"`
}

// Default returns the settings used when no config file is present.
func Default() *Config {
	return &Config{
		OutputDir: "output",
		LogLevel:  "info",
		LogFormat: "console",
		Overwrite: true,
	}
}

// Load reads path and overlays it on the defaults. A missing path is
// not an error; a present but malformed file is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse config %s: %w", path, diags)
	}
	if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decode config %s: %w", path, diags)
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	switch cfg.LogFormat {
	case "", "console":
		cfg.LogFormat = "console"
	case "json":
	default:
		return nil, fmt.Errorf("config %s: unknown log_format %q", path, cfg.LogFormat)
	}
	return cfg, nil
}
