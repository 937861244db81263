package cmd

import (
	"context"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonhe/storewatch/internal/config"
	"github.com/tonhe/storewatch/tui"
	"golang.org/x/term"
)

// RunTUI launches the interactive dashboard. When stdout is not a terminal
// it prints one text snapshot instead.
func RunTUI(g Globals) {
	rt := mustRuntime(g)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := writeSnapshot(rt, os.Stdout, false); err != nil {
			fatalf("%v", err)
		}
		return
	}

	logPath := rt.Config.LogFile
	if logPath == "" {
		if err := config.EnsureDirs(); err == nil {
			logPath, _ = config.GetLogPath()
		}
	}
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "storewatch")
		if err == nil {
			defer f.Close()
		}
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rt.Poller.Run(ctx)
	defer rt.Poller.Stop()

	model := tui.NewAppModel(rt.Config, rt.Poller, rt.Client, rt.Client.BaseURL(), rt.View)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fatalf("%v", err)
	}
}
