// Package config loads the configuration of retui programs.
//
// The configuration comes from an optional YAML file, overridden by
// environment variables, overridden in turn by command-line flags (handled by
// the programs themselves).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
	"src.retui.sh/pkg/env"
)

// Config keeps the configuration of a session.
type Config struct {
	// Path of the log file; empty to disable logging.
	Log string `yaml:"log,omitempty"`
	// Limit of the height of the dynamic region; 0 for no limit other than
	// the terminal height.
	MaxHeight int `yaml:"max-height,omitempty"`
	// Path of a database to record the session to; empty to disable
	// recording.
	Record string `yaml:"record,omitempty"`
	// Whether to only write the dynamic region once, at the end of the
	// session, even if the output is a terminal.
	NonInteractive bool `yaml:"non-interactive,omitempty"`
}

// DefaultPath returns the path of the configuration file: $RETUI_CONFIG if
// set, otherwise retui/config.yaml under the user's configuration directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(env.RETUI_CONFIG); p != "" {
		return p, nil
	}
	if dir := os.Getenv(env.XDG_CONFIG_HOME); dir != "" {
		return filepath.Join(dir, "retui", "config.yaml"), nil
	}
	home := os.Getenv(env.HOME)
	if home == "" {
		return "", errors.New("cannot determine configuration directory: HOME not set")
	}
	return filepath.Join(home, ".config", "retui", "config.yaml"), nil
}

// LoadOptional reads the configuration file at path. It is not an error for
// the file to not exist, in which case the zero Config is returned.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Load reads the configuration file at path, which must exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses YAML configuration. Unknown fields are errors. The name is
// only used in error messages.
func Parse(data []byte, name string) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document decodes to io.EOF.
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if cfg.MaxHeight < 0 {
		return nil, fmt.Errorf("failed to parse %s: max-height must not be negative", name)
	}
	return &cfg, nil
}

// ApplyEnv overrides fields with the environment variables that are set.
func (cfg *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(env.RETUI_LOG); v != "" {
		cfg.Log = v
	}
	if v := getenv(env.RETUI_RECORD); v != "" {
		cfg.Record = v
	}
	if v := getenv(env.RETUI_MAX_HEIGHT); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("bad value for %s: %q", env.RETUI_MAX_HEIGHT, v)
		}
		cfg.MaxHeight = n
	}
	return nil
}

// String returns the configuration in YAML.
func (cfg *Config) String() string {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Sprintf("<bad config: %v>", err)
	}
	return string(data)
}
