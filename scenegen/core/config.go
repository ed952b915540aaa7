package core

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ConfigPath is the configuration file looked up in the working directory.
const ConfigPath = "usdfixtures.toml"

// Config holds the generator settings. There are no flags or environment
// variables; everything comes from ConfigPath or the defaults.
type Config struct {
	// OutputDir is where the built-in fixtures and descriptor outputs are written.
	OutputDir string `toml:"output_dir"`
	// DescriptorDir holds .toml/.yaml fixture descriptors. Empty disables them.
	DescriptorDir string `toml:"descriptor_dir"`
	// Watch keeps the process alive and rebuilds descriptors on change.
	Watch    bool   `toml:"watch"`
	LogLevel string `toml:"log_level"`
}

// DefaultConfig writes fixtures to the working directory.
func DefaultConfig() Config {
	return Config{
		OutputDir: ".",
		Watch:     false,
		LogLevel:  "info",
	}
}

// LoadConfig reads the TOML file at path. A missing file yields DefaultConfig
// and no error; a file that does not parse or has unknown keys is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Watch && cfg.DescriptorDir == "" {
		return DefaultConfig(), fmt.Errorf("%w: watch requires descriptor_dir", ErrInvalidConfig)
	}
	return cfg, nil
}
