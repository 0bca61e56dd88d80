// Package config provides configuration management for crewmap.
//
// Config file locations (priority order):
//  1. $CREWMAP_CONFIG
//  2. ./crewmap.yaml
//  3. ~/.config/crewmap/config.yaml
//  4. /etc/crewmap/config.yaml
//
// CREWMAP_DATABASE, CREWMAP_SECRET_KEY, CREWMAP_ADMIN_PASSWORD and
// CREWMAP_UPSTREAM override the file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"crewmap/internal/validation"
)

const (
	DefaultAddr        = ":3000"
	DefaultDBPath      = "./crewmap.db"
	DefaultMemberLimit = 100
	DefaultSessionTTL  = 30 * 24 * time.Hour
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, "", err
		}
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Server:   ServerConfig{Addr: DefaultAddr},
		Database: DatabaseConfig{Path: DefaultDBPath},
		Graph:    GraphConfig{MemberLimit: DefaultMemberLimit},
		Auth:     AuthConfig{SessionTTL: Duration(DefaultSessionTTL)},
	}
}

// Validate checks the config against its struct tags
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Auth.SessionTTL < 0 {
		return fmt.Errorf("invalid config: Config.Auth.SessionTTL: must not be negative")
	}
	return nil
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDBPath
	}
	if c.Graph.MemberLimit == 0 {
		c.Graph.MemberLimit = DefaultMemberLimit
	}
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = Duration(DefaultSessionTTL)
	}
}

// applyEnv overrides file values with non-empty environment variables
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvSecretKey); v != "" {
		c.Auth.SecretKey = v
	}
	if v := os.Getenv(EnvAdminPassword); v != "" {
		c.Auth.AdminPassword = v
	}
	if v := os.Getenv(EnvUpstream); v != "" {
		c.Graph.Upstream = v
	}
}

// AuthEnabled reports whether pages sit behind the login gate
func (c *Config) AuthEnabled() bool {
	return c.Auth.AdminPassword != "" || c.Auth.AdminPasswordHash != ""
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	source := "in-process"
	if c.Graph.Upstream != "" {
		source = c.Graph.Upstream
	}

	summary := fmt.Sprintf("Addr: %s, Database: %s\n", c.Server.Addr, c.Database.Path)
	summary += fmt.Sprintf("Graph source: %s, member limit: %d\n", source, c.Graph.MemberLimit)
	if c.Seed.Path != "" {
		summary += fmt.Sprintf("Seed: %s (watch: %v)\n", c.Seed.Path, c.Seed.Watch)
	}
	summary += fmt.Sprintf("Login gate: %v", c.AuthEnabled())

	return summary
}
