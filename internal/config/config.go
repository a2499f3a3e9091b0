package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	Virtual   VirtualConfig
	Local     LocalConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8090"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// VirtualConfig holds virtual filesystem configuration.
type VirtualConfig struct {
	// SnapshotPath locates the single persistence file. Empty selects
	// <user config dir>/vfs-desktop/vfs_state.json.
	SnapshotPath string `envconfig:"VFS_SNAPSHOT_PATH" default:""`
}

// LocalConfig holds OS backend configuration.
type LocalConfig struct {
	MaxReadSize int64 `envconfig:"LOCAL_MAX_READ_SIZE" default:"10485760"`
}

// RateLimitConfig holds request rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8090", Host: "127.0.0.1"},
		Logging: LogConfig{Level: "info"},
		Local:   LocalConfig{MaxReadSize: 10 << 20},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// ResolveSnapshotPath returns the configured snapshot location or the
// per-user default.
func (c *Config) ResolveSnapshotPath() string {
	if c.Virtual.SnapshotPath != "" {
		return c.Virtual.SnapshotPath
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "vfs-desktop", "vfs_state.json")
}
