package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tariffsheriff/tariffsheriff-backend/api/routes"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/calculator"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/draft"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/export"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/hscodes"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/rates"
	"github.com/tariffsheriff/tariffsheriff-backend/internal/savedtariffs"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/config"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/db"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/metrics"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/migrate"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	calcMetrics := metrics.NewCalculatorMetrics(registry)

	ratesRepo := rates.NewRepository(dbClient.DB())
	resolver := rates.NewResolver(ratesRepo, logg)

	calcService := calculator.NewService(cfg.Calculator, resolver, ratesRepo, calcMetrics, logg)

	savedService := savedtariffs.NewService(savedtariffs.NewRepository(dbClient.DB()), logg)
	hsRepo := hscodes.NewRepository(dbClient.DB())
	exporter := export.NewExporter(savedService, hsRepo, calcMetrics, logg)

	autosaver := draft.NewAutosaver(redisClient, cfg.Autosave, logg)
	defer autosaver.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:       cfg,
			Logger:       logg,
			DBPinger:     dbClient,
			RedisPinger:  redisClient,
			Calculations: calcService,
			SavedTariffs: savedService,
			Exporter:     exporter,
			HsSearch:     hsRepo,
			Countries:    ratesRepo,
			Agreements:   ratesRepo,
			Autosaver:    autosaver,
			Registry:     registry,
		}),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
