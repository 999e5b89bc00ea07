package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override, e.g. ANIMEDEX_SOURCE.
const EnvPrefix = "ANIMEDEX_"

// Duration is a time.Duration that reads and writes as "10s" in JSON and env.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Config holds application configuration.
type Config struct {
	Source           string   `json:"source" env:"SOURCE"`
	Database         string   `json:"database" env:"DATABASE"`
	LogLevel         string   `json:"logLevel" env:"LOG_LEVEL"`
	LogFile          string   `json:"logFile" env:"LOG_FILE"`
	CheckConcurrency int      `json:"checkConcurrency" env:"CHECK_CONCURRENCY"`
	CheckTimeout     Duration `json:"checkTimeout" env:"CHECK_TIMEOUT"`
	HTTPTimeout      Duration `json:"httpTimeout" env:"HTTP_TIMEOUT"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	source, err := DefaultCatalogPath()
	if err != nil {
		source = "catalog.json"
	}
	database, err := DefaultSQLitePath()
	if err != nil {
		database = "catalog.db"
	}

	return Config{
		Source:           source,
		Database:         database,
		LogLevel:         "info",
		LogFile:          "",
		CheckConcurrency: 8,
		CheckTimeout:     Duration(10 * time.Second),
		HTTPTimeout:      Duration(15 * time.Second),
	}
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills zero-valued fields from DefaultConfig.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Source == "" {
		c.Source = defaults.Source
	}
	if c.Database == "" {
		c.Database = defaults.Database
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.CheckConcurrency <= 0 {
		c.CheckConcurrency = defaults.CheckConcurrency
	}
	if c.CheckTimeout <= 0 {
		c.CheckTimeout = defaults.CheckTimeout
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = defaults.HTTPTimeout
	}
}

// ApplyEnv overrides fields from ANIMEDEX_* variables. A nil environ reads the
// process environment.
func (c *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	c.applyDefaults()
	return nil
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/animedex/config.json
func DefaultConfigFilePath() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
