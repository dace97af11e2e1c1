package main

import (
	"context"
	"designer-finder-service/internal/adapters/geo"
	"designer-finder-service/internal/adapters/store"
	"designer-finder-service/internal/api"
	"designer-finder-service/internal/config"
	"designer-finder-service/internal/platform/logger"
	"designer-finder-service/internal/platform/obs"
	"designer-finder-service/internal/services"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires the configured store and geo providers behind ports and starts the HTTP server.
func main() {
	loaded, envErr := config.LoadDotEnv(".env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	switch {
	case envErr != nil:
		log.Warn("could not load .env file", zap.Error(envErr))
	case !loaded:
		log.Info("no .env file found (using environment variables)")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	for _, register := range []func(prometheus.Registerer) error{obs.Register, api.RegisterMetrics} {
		if err := register(prometheus.DefaultRegisterer); err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
	}

	designerStore, closeStore, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()

	// Per-call deadlines come from the request context; this only caps stuck connections.
	session := &http.Client{Timeout: 2 * max(cfg.GeocodeTimeout, cfg.RouteTimeout)}

	resolver, err := geo.NewResolver(cfg, session)
	if err != nil {
		return err
	}
	router, err := geo.NewRouter(cfg, session)
	if err != nil {
		return err
	}

	ranker := services.NewRanker(resolver, router, services.RankerConfig{
		AllowedCountries: cfg.AllowedCountries,
		MaxConcurrency:   cfg.RouteMaxConcurrency,
		GeocodeTimeout:   cfg.GeocodeTimeout,
		RouteTimeout:     cfg.RouteTimeout,
	})

	handler := api.NewRouter(
		services.NewDesignerService(designerStore, resolver, cfg.GeocodeTimeout),
		services.NewSearchService(designerStore, ranker),
		log,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.GeocodeTimeout + cfg.RouteTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.StoreDriver),
			zap.String("geocoder", cfg.Geocoder),
			zap.String("router", cfg.Router),
			zap.Strings("allowed_countries", cfg.AllowedCountries),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
