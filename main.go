package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tonhe/storewatch/cmd"
)

func main() {
	var g cmd.Globals
	fs := flag.NewFlagSet("storewatch", flag.ExitOnError)
	fs.StringVar(&g.URL, "url", "", "backend base `URL`")
	fs.StringVar(&g.Theme, "theme", "", "theme `NAME`")
	fs.StringVar(&g.ConfigPath, "config", "", "config `FILE` (.toml, .yaml or .yml)")
	fs.Usage = cmd.PrintUsage
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if args := fs.Args(); len(args) > 0 {
		if !cmd.IsSubcommand(args[0]) {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			cmd.PrintUsage()
			os.Exit(1)
		}
		cmd.Execute(g, args)
		return
	}

	cmd.RunTUI(g)
}
