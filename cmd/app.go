package cmd

import (
	"fmt"
	"net/http"

	"github.com/tonhe/storewatch/internal/api"
	"github.com/tonhe/storewatch/internal/config"
	"github.com/tonhe/storewatch/internal/engine"
	"github.com/tonhe/storewatch/internal/view"
)

// Globals are the flags accepted before any subcommand.
type Globals struct {
	ConfigPath string
	URL        string
	Theme      string
}

// configPath returns the explicit config file, or the platform default.
func (g Globals) configPath() (string, error) {
	if g.ConfigPath != "" {
		return g.ConfigPath, nil
	}
	return config.GetConfigPath()
}

// LoadConfig reads the config file and applies flag overrides.
func LoadConfig(g Globals) (*config.Config, error) {
	path, err := g.configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if g.URL != "" {
		cfg.BaseURL = g.URL
	}
	if g.Theme != "" {
		cfg.Theme = g.Theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Runtime is the wiring shared by every mode: one backend client and one
// refresh loop over it.
type Runtime struct {
	Config *config.Config
	Client *api.Client
	Poller *engine.Poller
	View   view.Options
}

// NewRuntime builds the client and poller from cfg. The poller is not
// started.
func NewRuntime(cfg *config.Config) (*Runtime, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	client := api.NewClient(cfg.BaseURL, &http.Client{})
	return &Runtime{
		Config: cfg,
		Client: client,
		Poller: engine.NewPoller(client, cfg.RefreshInterval, cfg.RequestTimeout, cfg.MaxHistory),
		View:   view.Options{Location: loc, DateLayout: cfg.DateLayout},
	}, nil
}

func mustRuntime(g Globals) *Runtime {
	cfg, err := LoadConfig(g)
	if err != nil {
		fatalf("%v", err)
	}
	rt, err := NewRuntime(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	return rt
}
