package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %s, want %s", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Graph.MemberLimit != 100 {
		t.Errorf("Graph.MemberLimit = %d, want 100", cfg.Graph.MemberLimit)
	}
	if cfg.Auth.SessionTTL.Duration() != 30*24*time.Hour {
		t.Errorf("Auth.SessionTTL = %s, want 720h", cfg.Auth.SessionTTL.Duration())
	}
	if cfg.AuthEnabled() {
		t.Error("login gate should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:8080"
graph:
  upstream: "http://localhost:8000"
  member_limit: 25
seed:
  path: ./seed.yaml
  watch: true
auth:
  admin_password: secret
  session_ttl: 12h
`)

	cfg, got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if got != path {
		t.Errorf("path = %s, want %s", got, path)
	}

	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("Server.Addr = %s", cfg.Server.Addr)
	}
	if cfg.Database.Path != DefaultDBPath {
		t.Errorf("Database.Path = %s, want default", cfg.Database.Path)
	}
	if cfg.Graph.Upstream != "http://localhost:8000" || cfg.Graph.MemberLimit != 25 {
		t.Errorf("Graph = %+v", cfg.Graph)
	}
	if !cfg.Seed.Watch || cfg.Seed.Path != "./seed.yaml" {
		t.Errorf("Seed = %+v", cfg.Seed)
	}
	if cfg.Auth.SessionTTL.Duration() != 12*time.Hour {
		t.Errorf("Auth.SessionTTL = %s, want 12h", cfg.Auth.SessionTTL.Duration())
	}
	if !cfg.AuthEnabled() {
		t.Error("login gate should be enabled when a password is set")
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"bad yaml", "server: [", "parse config"},
		{"bad duration", "auth:\n  session_ttl: soon\n", "parse config"},
		{"bad addr", "server:\n  addr: nope\n", "Addr"},
		{"bad upstream", "graph:\n  upstream: not a url\n", "Upstream"},
		{"short secret", "auth:\n  secret_key: short\n", "SecretKey"},
		{"negative limit", "graph:\n  member_limit: -1\n", "MemberLimit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadFromPath(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}

	if _, _, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvDatabase, "/tmp/override.db")
	t.Setenv(EnvSecretKey, strings.Repeat("k", 32))
	t.Setenv(EnvAdminPassword, "from-env")
	t.Setenv(EnvUpstream, "http://upstream:8000")

	cfg, _, err := LoadFromPath(writeConfig(t, "database:\n  path: ./file.db\n"))
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %s", cfg.Database.Path)
	}
	if cfg.Auth.SecretKey != strings.Repeat("k", 32) {
		t.Errorf("Auth.SecretKey = %s", cfg.Auth.SecretKey)
	}
	if cfg.Auth.AdminPassword != "from-env" {
		t.Errorf("Auth.AdminPassword = %s", cfg.Auth.AdminPassword)
	}
	if cfg.Graph.Upstream != "http://upstream:8000" {
		t.Errorf("Graph.Upstream = %s", cfg.Graph.Upstream)
	}
}

func TestSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Graph.Upstream = "http://localhost:8000"
	cfg.Seed.Path = "crews.yaml"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if loaded.Graph.Upstream != "http://localhost:8000" {
		t.Errorf("Graph.Upstream = %s", loaded.Graph.Upstream)
	}
	if loaded.Seed.Path != "crews.yaml" {
		t.Errorf("Seed.Path = %s", loaded.Seed.Path)
	}
	if loaded.Auth.SessionTTL != cfg.Auth.SessionTTL {
		t.Errorf("Auth.SessionTTL = %s", loaded.Auth.SessionTTL.Duration())
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := DefaultConfig().Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	t.Chdir(tmpDir)

	if found := FindConfigPath(); found == "" {
		t.Error("FindConfigPath() should find config in working directory")
	}

	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	if err := DefaultConfig().Save(explicit); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	t.Setenv(EnvConfigPath, explicit)
	if found := FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}

	// Explicit path doesn't exist, should fall back
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	if found := FindConfigPath(); found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}
