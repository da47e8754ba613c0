package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"marketledger/internal/config"
	"marketledger/internal/importer"
	"marketledger/internal/logging"
	productrepo "marketledger/internal/repository/product"
)

type appContext struct {
	store  productrepo.Repository
	logger *zap.Logger
	close  func()
}

func newAppContext(ctx context.Context, cmd *cli.Command) (*appContext, error) {
	if envFile := cmd.String("env"); envFile != "" {
		_ = os.Setenv("ENV_FILE", envFile)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New("catalogctl", cfg.LogEnv, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := productrepo.Open(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	return &appContext{
		store:  store,
		logger: logger,
		close: func() {
			closeStore()
			_ = logger.Sync()
		},
	}, nil
}

func importAction(ctx context.Context, cmd *cli.Command) error {
	app, err := newAppContext(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.close()

	path := cmd.String("file")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	start := time.Now()
	count, err := importer.NewCSVImporter(f, app.store, app.logger).Run(ctx)
	if err != nil {
		return fmt.Errorf("import failed after %d products: %w", count, err)
	}

	fmt.Fprintf(cmd.Root().Writer, "Imported %d products from %s in %s\n", count, path, time.Since(start).Truncate(time.Millisecond))
	return nil
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	app, err := newAppContext(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.close()

	products, err := app.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	enc := json.NewEncoder(cmd.Root().Writer)
	for _, p := range products {
		if err := enc.Encode(p); err != nil {
			return err
		}
	}
	return nil
}

func getAction(ctx context.Context, cmd *cli.Command) error {
	app, err := newAppContext(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.close()

	id := cmd.String("id")
	p, err := app.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product %s: %w", id, err)
	}
	enc := json.NewEncoder(cmd.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
