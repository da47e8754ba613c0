package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "catalogctl",
		Usage: "manage the product catalog store",
		Commands: []*cli.Command{
			{
				Name:  "import",
				Usage: "import products from a CSV file (id,name,description,price,attachmentURL,author)",
				Flags: []cli.Flag{
					envFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "path to the CSV file",
						Required: true,
					},
				},
				Action: importAction,
			},
			{
				Name:   "list",
				Usage:  "print every product as a JSON line",
				Flags:  []cli.Flag{envFlag()},
				Action: listAction,
			},
			{
				Name:  "get",
				Usage: "print one product as JSON",
				Flags: []cli.Flag{
					envFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "product id",
						Required: true,
					},
				},
				Action: getAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "catalogctl:", err)
		os.Exit(1)
	}
}

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "path to an env file loaded before configuration",
		Value: ".env",
	}
}
