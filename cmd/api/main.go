package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"marketledger/internal/config"
	"marketledger/internal/events"
	"marketledger/internal/httpserver"
	"marketledger/internal/ledger"
	"marketledger/internal/logging"
	productrepo "marketledger/internal/repository/product"
	productsvc "marketledger/internal/service/product"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger, err := logging.New("api", cfg.LogEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	productRepo, closeStore, err := productrepo.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open product store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer closeStore()

	publisher, closeEvents, err := events.Connect(cfg.NATSURL, cfg.EventsSubject, logger)
	if err != nil {
		logger.Fatal("connect events", zap.Error(err))
	}
	defer closeEvents()

	productService := productsvc.New(productRepo, publisher, logger)
	ledgerService := ledger.NewService(logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Catalog: productService,
		Ledger:  ledgerService,
		Store:   productRepo,
	}, cfg.CORSAllowOrigins)
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server",
			zap.String("store", cfg.StoreBackend),
			zap.Bool("events", cfg.NATSURL != ""),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
