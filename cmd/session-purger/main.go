package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	sessionpostgres "github.com/Apurer/cartsync/internal/domains/sessions/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/cartsync/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup, err := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if err != nil {
		logger.Error("cannot purge sessions", slog.String("error", err.Error()))
		os.Exit(1)
	}

	purged, err := sessionpostgres.NewStore(db).PurgeExpired(ctx)
	if err != nil {
		logger.Error("failed to purge sessions", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("session purge completed", slog.Int64("purged", purged))
}
