package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultBaseURL         = "http://localhost:8000"
	DefaultTheme           = "solarized-dark"
	DefaultRefreshInterval = 10 * time.Second
	DefaultRequestTimeout  = 10 * time.Second
	DefaultMaxHistory      = 360
	DefaultListenAddr      = ":8080"
	DefaultDateLayout      = "02.01.2006, 15:04:05"
)

type Config struct {
	BaseURL            string        `toml:"base_url" yaml:"base_url"`
	Theme              string        `toml:"theme" yaml:"theme"`
	RefreshInterval    time.Duration `toml:"-" yaml:"-"`
	RefreshIntervalStr string        `toml:"refresh_interval" yaml:"refresh_interval"`
	RequestTimeout     time.Duration `toml:"-" yaml:"-"`
	RequestTimeoutStr  string        `toml:"request_timeout" yaml:"request_timeout"`
	MaxHistory         int           `toml:"max_history" yaml:"max_history"`
	Timezone           string        `toml:"timezone" yaml:"timezone"`
	DateLayout         string        `toml:"date_layout" yaml:"date_layout"`
	ListenAddr         string        `toml:"listen_addr" yaml:"listen_addr"`
	LogFile            string        `toml:"log_file" yaml:"log_file"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:            DefaultBaseURL,
		Theme:              DefaultTheme,
		RefreshInterval:    DefaultRefreshInterval,
		RefreshIntervalStr: DefaultRefreshInterval.String(),
		RequestTimeout:     DefaultRequestTimeout,
		RequestTimeoutStr:  DefaultRequestTimeout.String(),
		MaxHistory:         DefaultMaxHistory,
		DateLayout:         DefaultDateLayout,
		ListenAddr:         DefaultListenAddr,
	}
}

// isYAML reports whether path should be read and written as YAML.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadConfig reads the config file at path. A missing file yields the
// defaults. Files ending in .yaml or .yml are YAML, anything else TOML.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.RefreshIntervalStr != "" {
		d, err := time.ParseDuration(cfg.RefreshIntervalStr)
		if err == nil && d > 0 {
			cfg.RefreshInterval = d
		}
	}
	if cfg.RequestTimeoutStr != "" {
		d, err := time.ParseDuration(cfg.RequestTimeoutStr)
		if err == nil && d >= 0 {
			cfg.RequestTimeout = d
		}
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = DefaultMaxHistory
	}
	if cfg.DateLayout == "" {
		cfg.DateLayout = DefaultDateLayout
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	return cfg, nil
}

func SaveConfig(cfg *Config, path string) error {
	cfg.RefreshIntervalStr = cfg.RefreshInterval.String()
	cfg.RequestTimeoutStr = cfg.RequestTimeout.String()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if isYAML(path) {
		enc := yaml.NewEncoder(f)
		defer enc.Close()
		return enc.Encode(cfg)
	}
	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks the fields that cannot fall back to a default.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url: missing host")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the time zone dates are rendered in. An empty timezone
// means the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return loc, nil
}
