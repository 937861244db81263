package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/tonhe/storewatch/internal/view"
)

func storeCmd(g Globals, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: storewatch store NAME")
		os.Exit(1)
	}
	name := args[0]
	rt := mustRuntime(g)

	ctx := context.Background()
	if rt.Config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rt.Config.RequestTimeout)
		defer cancel()
	}
	payload, err := rt.Client.Store(ctx, name)
	if err != nil {
		fmt.Print(RenderDetailText(view.FailedDetail(name, err)))
		os.Exit(1)
	}
	fmt.Print(RenderDetailText(view.BuildDetail(name, payload)))
}
