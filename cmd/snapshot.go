package cmd

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/tonhe/storewatch/internal/view"
	"github.com/tonhe/storewatch/internal/web"
)

func snapshotCmd(g Globals, args []string) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	asHTML := fs.Bool("html", false, "render the HTML page instead of text")
	out := fs.String("out", "", "write to `FILE` instead of stdout")
	fs.Parse(args)

	if err := runSnapshot(mustRuntime(g), *out, *asHTML); err != nil {
		fatalf("%v", err)
	}
}

// runSnapshot writes one snapshot to path, or stdout when path is empty.
// The output file is closed before the cycle error is returned.
func runSnapshot(rt *Runtime, path string, asHTML bool) error {
	if path == "" {
		return writeSnapshot(rt, os.Stdout, asHTML)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	werr := writeSnapshot(rt, f, asHTML)
	if cerr := f.Close(); cerr != nil && werr == nil {
		return cerr
	}
	return werr
}

// writeSnapshot runs one refresh cycle and writes the rendered dashboard.
// A failed cycle is written too and then returned as the error.
func writeSnapshot(rt *Runtime, w io.Writer, asHTML bool) error {
	tick := rt.Poller.Refresh(context.Background())
	board := view.NewDashboard(rt.View)
	board.Apply(tick)

	var body string
	if asHTML {
		body = web.RenderDashboard(board, 0)
	} else {
		body = RenderDashboardText(board)
	}
	if _, err := io.WriteString(w, body); err != nil {
		return err
	}
	return tick.Err
}
