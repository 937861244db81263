package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Theme != "solarized-dark" {
		t.Errorf("expected default theme 'solarized-dark', got %q", cfg.Theme)
	}
	if cfg.RefreshInterval != 10*time.Second {
		t.Errorf("expected refresh interval 10s, got %v", cfg.RefreshInterval)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("expected request timeout 10s, got %v", cfg.RequestTimeout)
	}
	if cfg.MaxHistory != 360 {
		t.Errorf("expected max history 360, got %d", cfg.MaxHistory)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected listen addr :8080, got %q", cfg.ListenAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigSaveLoad(t *testing.T) {
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			cfg := DefaultConfig()
			cfg.Theme = "dracula"
			cfg.BaseURL = "http://monitor.local:9000"
			cfg.RefreshInterval = 30 * time.Second
			cfg.Timezone = "UTC"

			if err := SaveConfig(cfg, path); err != nil {
				t.Fatalf("SaveConfig() error: %v", err)
			}

			loaded, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error: %v", err)
			}
			if loaded.Theme != "dracula" {
				t.Errorf("expected theme 'dracula', got %q", loaded.Theme)
			}
			if loaded.BaseURL != "http://monitor.local:9000" {
				t.Errorf("expected base url, got %q", loaded.BaseURL)
			}
			if loaded.RefreshInterval != 30*time.Second {
				t.Errorf("expected refresh interval 30s, got %v", loaded.RefreshInterval)
			}
			if loaded.Timezone != "UTC" {
				t.Errorf("expected timezone UTC, got %q", loaded.Timezone)
			}
		})
	}
}

func TestConfigLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storewatch.yaml")
	data := "base_url: https://stores.example.com\nrefresh_interval: 5s\nmax_history: 0\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.BaseURL != "https://stores.example.com" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.RefreshInterval != 5*time.Second {
		t.Errorf("expected 5s, got %v", cfg.RefreshInterval)
	}
	if cfg.MaxHistory != 360 {
		t.Errorf("non-positive max history should fall back to 360, got %d", cfg.MaxHistory)
	}
	if cfg.Theme != "solarized-dark" {
		t.Errorf("missing theme should keep the default, got %q", cfg.Theme)
	}
}

func TestConfigLoadBadInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("refresh_interval = \"soon\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.RefreshInterval != 10*time.Second {
		t.Errorf("unparseable interval should keep the default, got %v", cfg.RefreshInterval)
	}
}

func TestConfigLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("theme = [\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestConfigLoadMissing(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("LoadConfig() should return defaults for missing file, got error: %v", err)
	}
	if cfg.Theme != "solarized-dark" {
		t.Errorf("expected default theme, got %q", cfg.Theme)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"https", func(c *Config) { c.BaseURL = "https://x.example" }, false},
		{"no scheme", func(c *Config) { c.BaseURL = "monitor:8000" }, true},
		{"ftp", func(c *Config) { c.BaseURL = "ftp://monitor" }, true},
		{"no host", func(c *Config) { c.BaseURL = "http://" }, true},
		{"bad zone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
		{"utc", func(c *Config) { c.Timezone = "UTC" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
