// Package config loads remat CLI defaults from a TOML or YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/remat"
)

// Config holds the defaults of the convert command. Command line flags win
// over file values.
type Config struct {
	Format      string   `toml:"format" yaml:"format"`             // Output format
	OutDir      string   `toml:"out_dir" yaml:"out_dir"`           // Output directory
	TextureRoot string   `toml:"texture_root" yaml:"texture_root"` // Poser runtime root
	LogLevel    string   `toml:"log_level" yaml:"log_level"`       // Log level
	LogFormat   string   `toml:"log_format" yaml:"log_format"`     // Log format
	Exclude     []string `toml:"exclude" yaml:"exclude"`           // Image paths skipped by file checks
	MaxDepth    int      `toml:"max_depth" yaml:"max_depth"`       // Upstream chain limit
	Jobs        int      `toml:"jobs" yaml:"jobs"`                 // Parallel files
	Check       bool     `toml:"check" yaml:"check"`               // Validate records
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Format:    remat.FormatYAML,
		LogLevel:  "warn",
		LogFormat: "text",
		MaxDepth:  remat.DefaultMaxDepth,
	}
}

// Load reads a config file over the defaults. The format follows the file
// extension: .toml, .yaml or .yml. A leading ~ expands to the home directory.
func Load(path string) (Config, error) {
	cfg := Default()

	p, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("expand %q: %w", path, err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err = dec.Decode(&cfg); errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return cfg, fmt.Errorf("config %q: unsupported extension %q", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	return cfg.expand()
}

// expand expands home-relative directories.
func (c Config) expand() (Config, error) {
	for _, p := range []*string{&c.OutDir, &c.TextureRoot} {
		v, err := homedir.Expand(*p)
		if err != nil {
			return c, fmt.Errorf("expand %q: %w", *p, err)
		}
		*p = v
	}
	return c, nil
}
