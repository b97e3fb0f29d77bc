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

	"golang.org/x/sync/errgroup"

	"telecom-kpi/backend/internal/config"
	"telecom-kpi/backend/internal/logging"
	"telecom-kpi/backend/internal/metrics"
	"telecom-kpi/backend/internal/pipeline"
	"telecom-kpi/backend/internal/store"
	"telecom-kpi/backend/internal/tracing"
	transport "telecom-kpi/backend/internal/transport/http"
)

func main() {
	cfg := config.Load()

	port := flag.String("port", cfg.HTTPPort, "HTTP listen port")
	fixture := flag.String("fixture", cfg.FixturePath, "path to the base snapshot JSON file")
	source := flag.String("source", cfg.FixtureSource, "base snapshot source: file, postgres or redis")
	flag.Parse()

	cfg.HTTPPort = *port
	cfg.FixturePath = *fixture
	cfg.FixtureSource = *source

	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "kpi api exited", logging.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer tracing.Shutdown(context.Background(), shutdownTracing, log)

	collector, err := metrics.New(nil)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	loader, closeLoader, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s source: %w", cfg.FixtureSource, err)
	}
	defer closeLoader()

	p := pipeline.New(loader, pipeline.OptionsFromConfig(cfg), collector, log)

	// Surface a broken fixture at startup; requests keep loading it afresh.
	if _, err := p.Base(ctx); err != nil {
		log.Warn(ctx, "base snapshot not loadable at startup", logging.Err(err))
	}

	router := transport.NewRouter(transport.RouterConfig{
		Prefix:         cfg.APIPrefix,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}, p, collector, log)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(gctx, "kpi api listening",
			logging.String("addr", srv.Addr),
			logging.String("prefix", cfg.APIPrefix),
			logging.String("source", loader.Source()),
		)
		for _, ep := range transport.Endpoints(cfg.APIPrefix) {
			log.Info(gctx, "route", logging.String("endpoint", ep))
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "shutting down kpi api")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
