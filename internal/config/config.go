// Package config loads the nnscan command configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvStorageRoot = "NNSCAN_STORAGE_ROOT"
	EnvLanes       = "NNSCAN_LANES"
)

// Config holds the command configuration
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Scan    ScanConfig    `yaml:"scan,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
	Limits  LimitsConfig  `yaml:"limits,omitempty"`
}

// StorageConfig selects where batches and results live
type StorageConfig struct {
	Backend string `yaml:"backend"` // "local" | "s3" | "minio"

	// local
	Root string `yaml:"root,omitempty"`

	// s3 and minio
	Bucket    string `yaml:"bucket,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	Region    string `yaml:"region,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	UseSSL    bool   `yaml:"use_ssl,omitempty"`
}

// ScanConfig holds launcher settings
type ScanConfig struct {
	Lanes     int `yaml:"lanes,omitempty"`      // 0 = GOMAXPROCS
	ChunkSize int `yaml:"chunk_size,omitempty"` // 0 = library default
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // "debug" | "info" | "warn" | "error"
	Format string `yaml:"format,omitempty"` // "text" | "json"
}

// LimitsConfig bounds launches through a resource controller
type LimitsConfig struct {
	MemoryLimitBytes      int64   `yaml:"memory_limit_bytes,omitempty"`
	MaxConcurrentLaunches int64   `yaml:"max_concurrent_launches,omitempty"`
	LaunchesPerSecond     float64 `yaml:"launches_per_second,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "local",
			Root:    ".",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if root := os.Getenv(EnvStorageRoot); root != "" {
		c.Storage.Root = root
	}
	if v := os.Getenv(EnvLanes); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLanes, err)
		}
		c.Scan.Lanes = n
	}
	return nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "local":
		if c.Storage.Root == "" {
			return errors.New("storage.root is required for the local backend")
		}
	case "s3":
		if c.Storage.Bucket == "" {
			return errors.New("storage.bucket is required for the s3 backend")
		}
	case "minio":
		if c.Storage.Bucket == "" || c.Storage.Endpoint == "" {
			return errors.New("storage.bucket and storage.endpoint are required for the minio backend")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}

	if c.Scan.Lanes < 0 {
		return fmt.Errorf("scan.lanes must be >= 0, got %d", c.Scan.Lanes)
	}
	if c.Scan.ChunkSize < 0 {
		return fmt.Errorf("scan.chunk_size must be >= 0, got %d", c.Scan.ChunkSize)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}

	if c.Limits.MemoryLimitBytes < 0 || c.Limits.MaxConcurrentLaunches < 0 || c.Limits.LaunchesPerSecond < 0 {
		return errors.New("limits must not be negative")
	}

	return nil
}

// SlogLevel parses the configured level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, fmt.Errorf("invalid log.level %q", l.Level)
	}
	return level, nil
}
