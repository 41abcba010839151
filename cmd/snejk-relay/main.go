// Command snejk-relay forwards snake snapshots between snejk clients.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"snakenet/internal/config"
	"snakenet/internal/netsync"
)

const shutdownGrace = 5 * time.Second

func main() {
	path := flag.String("config", config.DefaultPath, "settings file")
	listen := flag.String("listen", "", "listen address, overrides relay_listen")
	flag.Parse()

	if err := run(*path, *listen); err != nil {
		fmt.Fprintln(os.Stderr, "snejk-relay:", err)
		os.Exit(1)
	}
}

func run(path, listen string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if listen == "" {
		listen = cfg.RelayListen
	}
	lv := cfg.LevelVar()
	log := config.NewLogger(nil, lv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.Watch(ctx, path, log, func(c config.Config) {
		if l, err := config.ParseLevel(c.LogLevel); err == nil {
			lv.Set(l)
		}
	}); err != nil {
		log.Warn("config watch disabled", "err", err)
	}

	gin.SetMode(gin.ReleaseMode)
	hub := netsync.NewHub(log)
	srv := &http.Server{
		Addr:              listen,
		Handler:           hub.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("relay listening", "addr", listen)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", listen, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("relay shutting down", "participants", hub.Count())
	hub.Close()
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(sctx)
}
