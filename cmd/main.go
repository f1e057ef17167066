package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/creatorhub/matchengine/internal/adapters/http/api"
	"github.com/creatorhub/matchengine/internal/adapters/http/swagger"
	"github.com/creatorhub/matchengine/internal/adapters/repository"
	app "github.com/creatorhub/matchengine/internal/app"
	"github.com/creatorhub/matchengine/internal/config"
	"github.com/creatorhub/matchengine/internal/domain/catalog"
	"github.com/creatorhub/matchengine/internal/domain/scoring"
	"github.com/creatorhub/matchengine/pkg/logger"
	"github.com/creatorhub/matchengine/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics.
	// The system metrics updater collects its own.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		loggerInstance.Fatal(ctx, "failed to load niche catalog", logger.Error(err))
		return
	}

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		loggerInstance.Fatal(ctx, "failed to open match store", logger.Error(err))
		return
	}
	defer cleanup()

	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithStore(store),
		app.WithCatalog(cat),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithLimits(cfg.DefaultLimit, cfg.MaxLimit),
		app.WithAggregatorOptions(
			scoring.WithWeights(cfg.Weights),
			scoring.WithPriorityBoostCap(cfg.PriorityBoostCap),
			scoring.WithReasonCap(cfg.ReasonCap),
			scoring.WithTargetEngagement(cfg.TargetEngagement),
		),
	)

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// loadCatalog returns the configured catalog file, or the built-in one.
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	logger.Get().Info(ctx, "loaded catalog override",
		logger.String("path", cfg.CatalogPath),
		logger.String("version", cat.Version()),
		logger.Int("labels", cat.Size()))
	return cat, nil
}

// openStore picks Postgres when a DSN is configured, memory otherwise.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	if cfg.PostgresDSN == "" {
		logger.Get().Info(ctx, "using in-memory match store")
		return repository.NewMemoryStore(), func() {}, nil
	}
	db, err := repository.OpenPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	logger.Get().Info(ctx, "using postgres match store")
	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close database", logger.Error(err))
		}
	}
	return repository.NewPostgresStore(db, logger.Get()), cleanup, nil
}

// startSystemMetricsUpdater samples runtime metrics on a fixed interval.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater refreshes service-level gauges on a fixed interval.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

func updateServiceMetrics(svc *app.Service) {
	stats := svc.GetStats()

	if records, ok := stats["matchRecords"].(int); ok {
		metrics.UpdateMatchRecordsTotal(records)
	}
	if workerCount, ok := stats["workerCount"].(int); ok {
		metrics.UpdateWorkerCount(workerCount)
	}
}
