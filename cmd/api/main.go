package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/printforge/configurator-backend/api/routes"
	"github.com/printforge/configurator-backend/internal/catalog"
	"github.com/printforge/configurator-backend/internal/configurator"
	"github.com/printforge/configurator-backend/pkg/config"
	"github.com/printforge/configurator-backend/pkg/db"
	"github.com/printforge/configurator-backend/pkg/logger"
	"github.com/printforge/configurator-backend/pkg/metrics"
	"github.com/printforge/configurator-backend/pkg/migrate"
	"github.com/printforge/configurator-backend/pkg/redis"
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

	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

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
		closeErr := multierr.Combine(dbClient.Close(), redisClient.Close())
		if closeErr != nil {
			logg.Error(context.Background(), "error closing datasources", closeErr)
		}
	}()

	catalogRepo, err := catalog.NewRepository(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog repository", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo, redisClient, logg, cfg.Catalog.SnapshotCacheTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	metricsRegistry := prometheus.NewRegistry()
	metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	quoteMetrics := metrics.NewQuoteMetrics(metricsRegistry)

	configuratorService, err := configurator.NewService(catalogService, quoteMetrics, logg, cfg.Catalog.PlaceholderImage)
	if err != nil {
		logg.Error(context.Background(), "failed to create configurator service", err)
		os.Exit(1)
	}

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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, metricsRegistry, configuratorService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
