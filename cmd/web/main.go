package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"digitdraw/internal/config"
	"digitdraw/internal/handlers"
	"digitdraw/internal/logger"
	"digitdraw/internal/metrics"
	"digitdraw/internal/round"
	"digitdraw/pkg/realtime"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "digitdraw:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		return err
	}

	clock := round.ISTClock{}
	store := round.NewStore()
	hub := realtime.NewBroadcaster[round.Event]()
	m := metrics.New()

	gen := &round.Generator{Secret: cfg.Secret, PrefixWidth: cfg.PrefixWidth}
	scheduler := round.NewScheduler(gen, store, round.Options{
		Policy:  cfg.Policy,
		Clock:   clock,
		Logger:  log,
		Metrics: m,
		Hub:     hub,
	})

	router := handlers.NewRouter(handlers.Deps{
		Store:   store,
		Clock:   clock,
		Policy:  scheduler.Policy(),
		Hub:     hub,
		Metrics: m,
		Logger:  log,
		Static:  staticFS,
		Ready:   scheduler.Running,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	server := newServer(gctx, cfg.Addr(), router)
	g.Go(func() error {
		if err := scheduler.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("listening",
			zap.String("addr", "http://localhost"+cfg.Addr()),
			zap.String("policy", cfg.Policy.Name),
			zap.Int("hash_prefix_width", cfg.PrefixWidth),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newServer builds the HTTP server. Request contexts derive from ctx, so
// cancelling it ends live streams and lets Shutdown finish.
func newServer(ctx context.Context, addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

//go:embed static/*
var embeddedStatic embed.FS
