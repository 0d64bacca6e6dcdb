package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pricelens/backend/config"
	httpDelivery "github.com/pricelens/backend/internal/delivery/http"
	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/infrastructure/cache"
	"github.com/pricelens/backend/internal/infrastructure/source"
	"github.com/pricelens/backend/internal/usecase"
	"go.uber.org/zap"
)

// shutdownTimeout bounds how long in-flight requests get to finish
const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.InitLogger(cfg.Log); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zap.L().Sync() }()

	if err := run(cfg); err != nil {
		zap.L().Error("server stopped", zap.Error(err))
		_ = zap.L().Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger := zap.L()
	logger.Info("starting PriceLens backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache(cache.Options{MaxEntries: cfg.Cache.MaxEntries})
	defer memoryCache.Close()
	logger.Info("cache ready",
		zap.String("type", cfg.Cache.Type),
		zap.Duration("ttl", cfg.Cache.TTL),
		zap.Int("max_entries", cfg.Cache.MaxEntries),
	)

	adapters := buildAdapters(cfg)
	if len(adapters) == 0 {
		logger.Warn("no platforms enabled; search requests will return 503")
	}

	// Initialize usecase layer
	searchService := usecase.NewSearchService(
		memoryCache,
		adapters,
		usecase.SearchServiceConfig{
			CacheTTL:      cfg.Cache.TTL,
			SourceTimeout: cfg.Sources.Timeout,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Graceful shutdown
	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}

// buildAdapters creates one HTTP source client per enabled platform
func buildAdapters(cfg *config.Config) []domain.SourceAdapter {
	enabled := cfg.EnabledPlatforms()
	adapters := make([]domain.SourceAdapter, 0, len(enabled))

	burst := int(math.Ceil(cfg.RateLimit.PerSource))
	for _, p := range enabled {
		client := source.NewClient(domain.Platform(p.Name), p.BaseURL, source.ClientOptions{
			RatePerSecond: cfg.RateLimit.PerSource,
			Burst:         burst,
			Timeout:       cfg.Sources.Timeout,
		})
		adapters = append(adapters, client)
		zap.L().Info("platform enabled",
			zap.String("platform", p.Name),
			zap.String("base_url", p.BaseURL),
		)
	}
	return adapters
}
