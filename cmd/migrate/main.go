package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"marketledger/internal/config"
	"marketledger/internal/db"
	"marketledger/internal/logging"
	"marketledger/internal/migrate"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New("migrate", cfg.LogEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.StoreBackend != config.BackendPostgres {
		logger.Info("nothing to migrate", zap.String("backend", cfg.StoreBackend))
		return
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool, logger); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	logger.Info("migrations applied")
}
