package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tonhe/storewatch/internal/web"
)

func serveCmd(g Globals, args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	listen := fs.String("listen", "", "listen on `ADDR` (overrides listen_addr)")
	fs.Parse(args)

	rt := mustRuntime(g)
	addr := rt.Config.ListenAddr
	if *listen != "" {
		addr = *listen
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go rt.Poller.Run(ctx)
	defer rt.Poller.Stop()

	srv := web.NewServer(rt.Poller, rt.Client, web.Options{
		Addr:           addr,
		RequestTimeout: rt.Config.RequestTimeout,
		View:           rt.View,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s, backend %s", addr, rt.Client.BaseURL())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatalf("%v", err)
		}
	case <-ctx.Done():
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}
