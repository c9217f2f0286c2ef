package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultWorkers   = 0 // runtime.NumCPU()
	defaultBuffer    = 64
	defaultLogLevel  = "info"
	defaultLogFormat = "pterm"
)

// Config holds everything the beggar CLI can be configured with
type Config struct {
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
}

// SearchConfig controls the exploration harness
type SearchConfig struct {
	Workers  int    `yaml:"workers"`   // 0 = one per CPU
	Seed     uint64 `yaml:"seed"`      // 0 = time based
	MaxDeals int    `yaml:"max_deals"` // per worker, 0 = until interrupted
	Buffer   int    `yaml:"buffer"`    // result channel capacity
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // pterm, text, json
}

// Load reads a YAML config file, fills in defaults and applies BEGGAR_*
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the default configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment without overriding variables that are already set. A
// missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Search.Workers == 0 {
		c.Search.Workers = defaultWorkers
	}
	if c.Search.Buffer == 0 {
		c.Search.Buffer = defaultBuffer
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
}

func (c *Config) applyEnv() error {
	if err := envInt("BEGGAR_WORKERS", &c.Search.Workers); err != nil {
		return err
	}
	if err := envInt("BEGGAR_MAX_DEALS", &c.Search.MaxDeals); err != nil {
		return err
	}
	if err := envInt("BEGGAR_BUFFER", &c.Search.Buffer); err != nil {
		return err
	}
	if v := os.Getenv("BEGGAR_SEED"); v != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("BEGGAR_SEED: %w", err)
		}
		c.Search.Seed = seed
	}
	if v := os.Getenv("BEGGAR_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("BEGGAR_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// Validate rejects values no component can work with
func (c *Config) Validate() error {
	if c.Search.Workers < 0 {
		return fmt.Errorf("search.workers must not be negative, got %d", c.Search.Workers)
	}
	if c.Search.MaxDeals < 0 {
		return fmt.Errorf("search.max_deals must not be negative, got %d", c.Search.MaxDeals)
	}
	if c.Search.Buffer < 1 {
		return fmt.Errorf("search.buffer must be positive, got %d", c.Search.Buffer)
	}
	switch strings.ToLower(c.Log.Format) {
	case "pterm", "text", "json":
	default:
		return fmt.Errorf("log.format must be pterm, text or json, got %q", c.Log.Format)
	}
	return nil
}
