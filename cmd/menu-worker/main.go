// cmd/menu-worker/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"menu-workers/internal/common/camunda"
	"menu-workers/internal/common/config"
	"menu-workers/internal/common/database"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/common/observability"
	"menu-workers/internal/common/validation"
	"menu-workers/internal/menu/availability"
	"menu-workers/internal/menu/catalog"
	"menu-workers/internal/menu/seasonal"
	"menu-workers/internal/menu/stock"
	"menu-workers/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	boot := zap.Must(zap.NewProduction())

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog, err := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		boot.Fatal("logger init failed", zap.Error(err))
	}
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting menu worker...",
		zap.String("environment", cfg.App.Environment),
		zap.String("catalogBackend", cfg.Menu.CatalogBackend),
		zap.String("stockBackend", cfg.Menu.StockBackend),
	)

	loc, err := cfg.Menu.Location()
	if err != nil {
		zapLog.Fatal("invalid menu timezone", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs := observability.New(cfg.App.Name, nil, log)

	// --- Catalog store ---
	var (
		store catalog.Store
		pg    *database.PostgresClient
	)
	switch cfg.Menu.CatalogBackend {
	case config.CatalogBackendPostgres:
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		if cfg.Database.Postgres.MigrateOnStart {
			applied, err := pg.Migrate(ctx)
			if err != nil {
				zapLog.Fatal("catalog migration failed", zap.Error(err))
			}
			zapLog.Info("catalog migrations applied", zap.Strings("versions", applied))
		}
		store = catalog.NewPostgresStore(pg.GetDB(), log)
		zapLog.Info("PostgreSQL connected successfully")
	default:
		store = catalog.NewMemoryStore()
		zapLog.Warn("using in-memory catalog store; data is lost on restart")
	}

	// --- Stock store ---
	var (
		stockStore stock.Store
		rdb        *database.RedisClient
	)
	switch cfg.Menu.StockBackend {
	case config.StockBackendRedis:
		rdb = database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(func() error {
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		stockStore = stock.NewRedisStore(rdb.GetClient())
		zapLog.Info("Redis connected successfully")
	default:
		stockStore = stock.NewMemoryStore()
		zapLog.Warn("using in-memory stock store; stock is per process")
	}

	// --- Registry and validation ---
	reg, err := registry.LoadRegistry(cfg.Menu.RegistryPath)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err), zap.String("path", cfg.Menu.RegistryPath))
	}
	validator, err := validation.NewValidator(reg)
	if err != nil {
		zapLog.Fatal("activity schemas invalid", zap.Error(err))
	}

	// --- Engine ---
	resolver := seasonal.NewResolver(cfg.Menu.ResolverCacheBytes)
	deps := &dependencies{
		cfg:      cfg,
		registry: reg,
		location: loc,
		store:    store,
		overlay:  stock.NewOverlay(stockStore),
		resolver: resolver,
		engine:   availability.NewEngine(resolver, log),
		manager:  seasonal.NewManager(store, log),
		support: camunda.Support{
			Validator:     validator,
			Observability: obs,
			Logger:        log,
		},
	}

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: cfg.Camunda.UsePlaintext,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		RetryConfig: &camunda.RetryConfig{
			MaxRetries: 10,
			BaseDelay:  2 * time.Second,
			MaxDelay:   30 * time.Second,
		},
	})
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	workers := startWorkers(zeebe.GetClient(), deps, log)
	zapLog.Info("All workers registered", zap.Int("count", len(workers)))

	server := newServer(cfg.Server.Address, zeebe, pg, rdb)
	go func() {
		zapLog.Info("Serving health and metrics", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	for _, w := range workers {
		w.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("http server shutdown", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("meter provider shutdown", zap.Error(err))
	}
	zapLog.Info("Menu worker stopped")
}

// newServer exposes liveness, readiness and Prometheus metrics. Readiness
// checks every backend that is in use.
func newServer(addr string, zeebe *camunda.Client, pg *database.PostgresClient, rdb *database.RedisClient) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]func(context.Context) error{"zeebe": zeebe.HealthCheck}
		if pg != nil {
			checks["postgres"] = pg.Ping
		}
		if rdb != nil {
			checks["redis"] = rdb.Ping
		}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				http.Error(w, name+": "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
