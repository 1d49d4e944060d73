// Package app wires all dependencies together and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/gabriel447/ProductExplorer/internal/cart"
	cartredis "github.com/gabriel447/ProductExplorer/internal/cart/redis"
	"github.com/gabriel447/ProductExplorer/internal/catalog"
	"github.com/gabriel447/ProductExplorer/internal/config"
	"github.com/gabriel447/ProductExplorer/internal/fakestore"
	handler "github.com/gabriel447/ProductExplorer/internal/handler/http"
	"github.com/gabriel447/ProductExplorer/pkg/health"
	"github.com/gabriel447/ProductExplorer/pkg/httpclient"
)

// App holds the wired application components.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Cart persistence. Durability is best-effort: when Redis is unreachable
	// the cart still works in memory, it just will not survive a restart.
	var cartStore cart.Store
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, cart will not be persisted",
			slog.String("addr", cfg.RedisAddr),
			slog.String("error", err.Error()),
		)
		_ = rdb.Close()
		rdb = nil
		cartStore = cart.NewMemoryStore()
	} else {
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		cartStore = cartredis.NewStore(rdb, cfg.CartStorageKey)
	}

	// Catalog API client with retry and circuit breaker.
	apiClient := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultCircuitBreakerConfig("catalog-api"),
		logger,
	)
	storeClient := fakestore.New(cfg.APIBaseURL, apiClient, logger)

	// Build the engines.
	catalogEngine := catalog.NewEngine(storeClient, logger)
	catalogEngine.SetPageSize(cfg.PageSize)
	cartEngine := cart.NewEngine(ctx, cartStore, logger)

	// Health checks. The catalog API check reads the breaker instead of
	// probing the remote endpoint on every readiness poll.
	healthHandler := health.NewHandler()
	if rdb != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	healthHandler.Register("catalog-api", func(ctx context.Context) error {
		if apiClient.State() == gobreaker.StateOpen {
			return errors.New("circuit breaker open")
		}
		return nil
	})

	// HTTP router.
	router := handler.NewRouter(
		handler.NewCatalogHandler(catalogEngine, storeClient, logger),
		handler.NewCartHandler(cartEngine, logger),
		healthHandler,
		logger,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
