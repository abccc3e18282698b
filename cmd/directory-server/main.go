// cmd/directory-server/main.go
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

	"go.uber.org/zap"

	"placement-directory/internal/catalog"
	"placement-directory/internal/common/config"
	"placement-directory/internal/common/logger"
	"placement-directory/internal/common/observability"
	"placement-directory/internal/datasource/factory"
	"placement-directory/internal/httpapi"
	extractfacets "placement-directory/internal/query/extract-facets"
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
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting placement directory...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("dataSource", cfg.DataSource.Kind),
	)

	obs := observability.New(cfg.App.Name, zapLog)

	// --- Data source ---
	src, err := factory.New(cfg, log)
	if err != nil {
		zapLog.Fatal("data source setup failed", zap.Error(err))
	}
	defer src.Close()

	facetDefaults := extractfacets.LoadConfig()
	loader := catalog.NewLoader(src.Provider, catalog.Options{
		FacetParallelism:  cfg.Query.FacetParallelism,
		ParallelThreshold: facetDefaults.ParallelThreshold,
	}, log, obs)

	// --- Initial catalog load with retry ---
	holder := &catalog.Holder{}
	loadTimeout := config.GetDuration(cfg.DataSource.LoadTimeout)
	err = retryWithBackoff(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		if err := src.Ping(ctx); err != nil {
			return err
		}
		return loader.Reload(ctx, holder)
	}, cfg.DataSource.LoadRetries, config.GetDuration(cfg.DataSource.LoadRetryDelay), zapLog, "Catalog load")

	if err != nil {
		zapLog.Fatal("catalog load failed after retries", zap.Error(err))
	}
	zapLog.Info("Catalog loaded successfully", zap.Int("companies", holder.Get().Len()))

	// --- HTTP server ---
	api := httpapi.New(httpapi.Options{
		Server:        cfg.Server,
		Query:         cfg.Query,
		App:           cfg.App,
		Catalog:       holder,
		Pinger:        src,
		Logger:        log,
		Observability: obs,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.Routes(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout) + time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Signals: SIGHUP reloads, SIGINT/SIGTERM shut down ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	for sig := range sigCh {
		if sig != syscall.SIGHUP {
			break
		}
		zapLog.Info("Reload signal received, reloading catalog...")
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		if src.Cache != nil {
			if err := src.Cache.Invalidate(ctx); err != nil {
				zapLog.Warn("cache invalidation failed", zap.Error(err))
			}
		}
		if err := loader.Reload(ctx, holder); err != nil {
			zapLog.Error("catalog reload failed, keeping previous catalog", zap.Error(err))
		}
		cancel()
	}

	zapLog.Info("Shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := obs.Shutdown(ctx); err != nil {
		zapLog.Warn("observability shutdown failed", zap.Error(err))
	}

	zapLog.Info("Placement directory stopped")
}
