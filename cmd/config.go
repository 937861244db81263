package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/tonhe/storewatch/internal/config"
	"github.com/tonhe/storewatch/tui/styles"
)

func configCmd(g Globals, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: storewatch config <path|theme|url>")
		os.Exit(1)
	}

	switch args[0] {
	case "path":
		configPath(g)
	case "theme":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: storewatch config theme NAME")
			os.Exit(1)
		}
		configSetTheme(g, args[1])
	case "url":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: storewatch config url URL")
			os.Exit(1)
		}
		configSetURL(g, args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: storewatch config <path|theme|url>")
		os.Exit(1)
	}
}

func configPath(g Globals) {
	path, err := g.configPath()
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(path)
}

func configSetTheme(g Globals, name string) {
	if _, ok := styles.Lookup(name); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'storewatch themes' to see available themes.")
		os.Exit(1)
	}

	cfg := loadOrDefaultConfig(g)
	cfg.Theme = name
	saveConfig(g, cfg)

	fmt.Printf("Default theme set to %q.\n", name)
}

func configSetURL(g Globals, raw string) {
	cfg := loadOrDefaultConfig(g)
	cfg.BaseURL = raw
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}
	saveConfig(g, cfg)

	fmt.Printf("Backend URL set to %q.\n", raw)
}

func themesCmd(g Globals) {
	current := loadOrDefaultConfig(g).Theme
	if g.Theme != "" {
		current = g.Theme
	}
	for _, slug := range styles.ListThemes() {
		mark := " "
		if slug == current {
			mark = "*"
		}
		t, _ := styles.Lookup(slug)
		fmt.Printf("%s %-18s %s\n", mark, slug, t.Name)
	}
}

func versionCmd(g Globals, args []string) {
	fmt.Printf("storewatch v%s\n", Version)
	if len(args) == 0 || args[0] != "--remote" {
		return
	}
	rt := mustRuntime(g)
	ctx := context.Background()
	if rt.Config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rt.Config.RequestTimeout)
		defer cancel()
	}
	v, err := rt.Client.Version(ctx)
	if err != nil {
		fatalf("backend %s: %v", rt.Client.BaseURL(), err)
	}
	fmt.Printf("backend v%s (%s)\n", v.Version, rt.Client.BaseURL())
}

// loadOrDefaultConfig loads the config from disk, falling back to defaults.
func loadOrDefaultConfig(g Globals) *config.Config {
	path, err := g.configPath()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// saveConfig writes the config to disk, creating directories as needed.
func saveConfig(g Globals, cfg *config.Config) {
	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directories: %v\n", err)
		os.Exit(1)
	}

	path, err := g.configPath()
	if err != nil {
		fatalf("%v", err)
	}

	if err := config.SaveConfig(cfg, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}
}
