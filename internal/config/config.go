// Package config provides configuration file and environment variable
// support for the EBF console.
//
// Configuration priority (highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Config file (~/.ebf/config.toml)
//  4. Built-in defaults
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config represents the console configuration.
type Config struct {
	// DB is the path to the database file.
	// Default: ~/.ebf/ebf.db
	DB string `toml:"db"`

	// Host is the address the server binds to.
	// Default: localhost
	Host string `toml:"host"`

	// Port is the TCP port for the server.
	// Default: 3000
	Port int `toml:"port"`

	// NoColor disables colored output.
	// Default: false
	NoColor bool `toml:"no_color"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DB:   "", // Empty means use db.DefaultDBPath
		Host: "localhost",
		Port: 3000,
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ebf", "config.toml")
}

// Load loads configuration from the config file and environment variables.
// Environment variables take precedence over file settings.
// Returns default config if the config file doesn't exist.
func Load() (*Config, error) {
	return LoadFromPath(DefaultConfigPath())
}

// LoadFromPath loads configuration from a specific file path.
// Environment variables take precedence over file settings.
// Returns default config if the config file doesn't exist.
func LoadFromPath(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if _, err := toml.DecodeFile(configPath, cfg); err != nil {
				return nil, err
			}
		}
		// If file doesn't exist, just continue with defaults
	}

	cfg.applyEnv()

	return cfg, nil
}

// applyEnv applies environment variable overrides to the config.
func (c *Config) applyEnv() {
	if db := os.Getenv("EBF_DB"); db != "" {
		c.DB = db
	}

	if host := os.Getenv("EBF_HOST"); host != "" {
		c.Host = host
	}

	if port := os.Getenv("EBF_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			c.Port = p
		}
	}

	// EBF_NO_COLOR - any value means true
	if _, ok := os.LookupEnv("EBF_NO_COLOR"); ok {
		c.NoColor = true
	}
}
