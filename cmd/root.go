package cmd

import (
	"fmt"
	"os"
)

// Version is the application version, overridden at build time.
var Version = "0.1.0"

// knownSubcommands is the set of CLI subcommands that bypass the TUI.
var knownSubcommands = map[string]bool{
	"serve":    true,
	"snapshot": true,
	"store":    true,
	"config":   true,
	"themes":   true,
	"version":  true,
	"help":     true,
}

// IsSubcommand returns true if the argument is a known CLI subcommand.
func IsSubcommand(arg string) bool {
	return knownSubcommands[arg]
}

// Execute dispatches to the appropriate CLI subcommand handler.
func Execute(g Globals, args []string) {
	if len(args) == 0 {
		return
	}

	switch args[0] {
	case "serve":
		serveCmd(g, args[1:])
	case "snapshot":
		snapshotCmd(g, args[1:])
	case "store":
		storeCmd(g, args[1:])
	case "config":
		configCmd(g, args[1:])
	case "themes":
		themesCmd(g)
	case "version":
		versionCmd(g, args[1:])
	case "help":
		PrintUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		PrintUsage()
		os.Exit(1)
	}
}

// PrintUsage prints the command line help.
func PrintUsage() {
	fmt.Println(`storewatch - retail store monitoring dashboard

Usage:
  storewatch                      Launch TUI dashboard
  storewatch --url URL            Use a different backend
  storewatch --theme NAME         Launch with theme override
  storewatch --config FILE        Read settings from FILE (.toml, .yaml)
  storewatch serve                Serve the dashboard over HTTP
  storewatch snapshot             Print the dashboard once and exit
  storewatch store NAME           Print the details of one store
  storewatch config <cmd>         Manage configuration
  storewatch themes               List available themes
  storewatch version              Show version
  storewatch help                 Show this help

Serve:
  storewatch serve --listen ADDR  Listen on ADDR (default :8080)

Snapshot:
  storewatch snapshot --html      Render the HTML page instead of text
  storewatch snapshot --out FILE  Write to FILE instead of stdout

Config Commands:
  storewatch config path          Show config file path
  storewatch config theme NAME    Set default theme
  storewatch config url URL       Set default backend URL

Version:
  storewatch version --remote     Also show the backend version

Environment:
  STOREWATCH_CONFIG               Config file used when --config is not given`)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
