package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Graph    GraphConfig    `yaml:"graph"`
	Seed     SeedConfig     `yaml:"seed"`
	Auth     AuthConfig     `yaml:"auth"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// GraphConfig controls where the view loads its graph from and how large
// the served graph is
type GraphConfig struct {
	// Upstream is the base URL of a service exposing /api/graph.
	// Empty means the in-process graph service.
	Upstream    string `yaml:"upstream,omitempty" validate:"omitempty,http_url"`
	MemberLimit int    `yaml:"member_limit" validate:"min=0"`
}

// SeedConfig names a dataset file imported at startup
type SeedConfig struct {
	Path  string `yaml:"path,omitempty"`
	Watch bool   `yaml:"watch,omitempty"`
}

// AuthConfig holds login gate settings. Secrets may also come from the
// environment.
type AuthConfig struct {
	SecretKey         string   `yaml:"secret_key,omitempty" validate:"omitempty,min=32"`
	AdminPassword     string   `yaml:"admin_password,omitempty"`
	AdminPasswordHash string   `yaml:"admin_password_hash,omitempty"`
	SessionTTL        Duration `yaml:"session_ttl,omitempty"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
