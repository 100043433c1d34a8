// Package config loads the server's YAML tuning file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	// PaletteFile overrides the built-in canonical palette when set.
	PaletteFile string `yaml:"palette_file"`
	// BlueprintDir holds the builtin blueprint JSON definitions. When empty
	// the embedded default set is used.
	BlueprintDir string `yaml:"blueprint_dir"`

	// DBPath is the sqlite file for imported blueprints. Empty disables
	// persistence.
	DBPath string `yaml:"db_path"`
	// BuildLogDir is where build audit JSONL logs rotate. Empty disables
	// the audit log.
	BuildLogDir string `yaml:"build_log_dir"`

	DebounceMs     int `yaml:"debounce_ms"`
	RebuildDelayMs int `yaml:"rebuild_delay_ms"`

	WS WSLimits `yaml:"ws"`
}

type WSLimits struct {
	ReadBufferBytes  int `yaml:"read_buffer_bytes"`
	WriteBufferBytes int `yaml:"write_buffer_bytes"`
	MaxImportBytes   int `yaml:"max_import_bytes"`
}

// Load reads the config file at path, or returns defaults when path is
// empty.
func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		ListenAddr:     ":8420",
		DebounceMs:     50,
		RebuildDelayMs: 500,
		WS: WSLimits{
			ReadBufferBytes:  64 * 1024,
			WriteBufferBytes: 64 * 1024,
			MaxImportBytes:   4 << 20,
		},
	}
}

func (c *Config) Normalize() {
	d := defaults()
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
	if c.DebounceMs <= 0 {
		c.DebounceMs = d.DebounceMs
	}
	if c.RebuildDelayMs <= 0 {
		c.RebuildDelayMs = d.RebuildDelayMs
	}
	if c.WS.ReadBufferBytes <= 0 {
		c.WS.ReadBufferBytes = d.WS.ReadBufferBytes
	}
	if c.WS.WriteBufferBytes <= 0 {
		c.WS.WriteBufferBytes = d.WS.WriteBufferBytes
	}
	if c.WS.MaxImportBytes <= 0 {
		c.WS.MaxImportBytes = d.WS.MaxImportBytes
	}
}

func (c *Config) Validate() error {
	if c.DebounceMs > 5000 {
		return fmt.Errorf("debounce_ms %d too large", c.DebounceMs)
	}
	if c.RebuildDelayMs > 60000 {
		return fmt.Errorf("rebuild_delay_ms %d too large", c.RebuildDelayMs)
	}
	return nil
}
