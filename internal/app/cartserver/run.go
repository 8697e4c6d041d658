package cartserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	cartapi "github.com/Apurer/cartsync/go"
	cartsmemory "github.com/Apurer/cartsync/internal/domains/carts/adapters/memory"
	cartspostgres "github.com/Apurer/cartsync/internal/domains/carts/adapters/persistence/postgres"
	cartsapp "github.com/Apurer/cartsync/internal/domains/carts/application"
	cartsports "github.com/Apurer/cartsync/internal/domains/carts/ports"
	sessionmemory "github.com/Apurer/cartsync/internal/domains/sessions/adapters/memory"
	sessionpostgres "github.com/Apurer/cartsync/internal/domains/sessions/adapters/persistence/postgres"
	sessionapp "github.com/Apurer/cartsync/internal/domains/sessions/application"
	sessionports "github.com/Apurer/cartsync/internal/domains/sessions/ports"
	"github.com/Apurer/cartsync/internal/platform/migrations"
	platformobservability "github.com/Apurer/cartsync/internal/platform/observability"
	platformpostgres "github.com/Apurer/cartsync/internal/platform/postgres"
)

const serviceName = "cart-server"

// Run boots the cart HTTP API with observability and storage wired. It
// returns when ctx is cancelled or the listener fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repo, store, cleanup := buildStorage(ctx, cfg, logger)
	defer cleanup()

	sessions := sessionapp.NewService(store, cfg.SessionTTL)
	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router := cartapi.NewRouterWithGinEngine(engine, cartapi.ApiHandleFunctions{
		CartAPI:    cartapi.NewCartAPI(cartsapp.NewService(repo)),
		SessionAPI: cartapi.NewSessionAPI(sessions),
		Auth:       cartapi.BearerAuth(sessions),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("cart API listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("cart API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down cart API")
		return srv.Shutdown(shutdownCtx)
	}
}

// buildStorage prefers postgres and falls back to memory when no DSN is set
// or the database is unreachable.
func buildStorage(ctx context.Context, cfg Config, logger *slog.Logger) (cartsports.Repository, sessionports.Store, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory storage")
		return cartsmemory.NewRepository(), sessionmemory.NewStore(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return cartsmemory.NewRepository(), sessionmemory.NewStore(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate postgres schema, falling back to memory", slog.String("error", err.Error()))
		_ = platformpostgres.Close(db)
		return cartsmemory.NewRepository(), sessionmemory.NewStore(), func() {}
	}
	logger.Info("cart storage configured with postgres")
	return cartspostgres.NewRepository(db), sessionpostgres.NewStore(db), func() { _ = platformpostgres.Close(db) }
}
