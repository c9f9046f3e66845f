package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/chainfeed/storefront-backend/api/controllers"
	"github.com/chainfeed/storefront-backend/api/routes"
	cartsvc "github.com/chainfeed/storefront-backend/internal/cart"
	"github.com/chainfeed/storefront-backend/pkg/config"
	"github.com/chainfeed/storefront-backend/pkg/db"
	"github.com/chainfeed/storefront-backend/pkg/logger"
	"github.com/chainfeed/storefront-backend/pkg/metrics"
	"github.com/chainfeed/storefront-backend/pkg/redis"
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

	registry := prometheus.NewRegistry()
	cartMetrics := metrics.NewCartMetrics(registry)

	storage, pingers, cleanup, err := buildStorage(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap cart storage", err)
		os.Exit(1)
	}
	defer cleanup()

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Storage:  storage,
		Settings: cartsvc.SettingsFromConfig(cfg.Checkout),
		Logger:   logg,
		Metrics:  cartMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, pingers, cartService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// buildStorage wires the configured snapshot backend plus the health
// pingers and shutdown hook that go with it.
func buildStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (cartsvc.Storage, map[string]controllers.Pinger, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.StorageBackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, noop, err
		}
		storage, err := cartsvc.NewRedisStorage(client, cfg.Storage.CartTTL)
		if err != nil {
			return nil, nil, noop, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}
		return storage, map[string]controllers.Pinger{"redis": client}, cleanup, nil

	case config.StorageBackendGorm:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, nil, noop, err
		}
		storage, err := cartsvc.NewGormStorage(client.DB())
		if err != nil {
			return nil, nil, noop, err
		}
		if cfg.DB.AutoMigrate {
			if err := storage.Migrate(); err != nil {
				return nil, nil, noop, err
			}
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logg.Error(ctx, "error closing database", err)
			}
		}
		return storage, map[string]controllers.Pinger{"database": client}, cleanup, nil

	default:
		return cartsvc.NewMemoryStorage(), nil, noop, nil
	}
}
