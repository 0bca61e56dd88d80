package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "CREWMAP_CONFIG"
	// ConfigFileName is the default config file name
	ConfigFileName = "crewmap.yaml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "crewmap"
)

// Environment overrides
const (
	EnvDatabase      = "CREWMAP_DATABASE"
	EnvSecretKey     = "CREWMAP_SECRET_KEY"
	EnvAdminPassword = "CREWMAP_ADMIN_PASSWORD"
	EnvUpstream      = "CREWMAP_UPSTREAM"
)

// FindConfigPath searches for config file in priority order:
// 1. $CREWMAP_CONFIG (explicit path)
// 2. ./crewmap.yaml (working directory)
// 3. $XDG_CONFIG_HOME/crewmap/config.yaml
// 4. ~/.config/crewmap/config.yaml
// 5. /etc/crewmap/config.yaml
//
// Returns empty string if no config file found
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	systemPath := filepath.Join("/etc", ConfigDirName, "config.yaml")
	if fileExists(systemPath) {
		return systemPath
	}

	return ""
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir(configPath string) error {
	dir := filepath.Dir(configPath)
	return os.MkdirAll(dir, 0755)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
