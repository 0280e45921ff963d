package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backend names for the timeline store.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config defines tool configuration.
type Config struct {
	Data DataConfig `yaml:"data"`
	Log  LogConfig  `yaml:"log"`
}

type DataConfig struct {
	// Dir holds per-user timeline documents and the state file.
	Dir     string `yaml:"dir"`
	Backend string `yaml:"backend"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables.
func Load() (Config, error) {
	cfg := Config{
		Data: DataConfig{
			Dir:     defaultDataDir(),
			Backend: BackendYAML,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}

	if path := os.Getenv("STINT_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dir := os.Getenv("STINT_DATA_DIR"); dir != "" {
		cfg.Data.Dir = dir
	}
	if backend := os.Getenv("STINT_BACKEND"); backend != "" {
		cfg.Data.Backend = backend
	}
	if level := os.Getenv("STINT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	switch cfg.Data.Backend {
	case BackendYAML, BackendSQLite:
	default:
		return Config{}, fmt.Errorf("unknown backend %q", cfg.Data.Backend)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stint"
	}
	return filepath.Join(home, ".stint")
}
