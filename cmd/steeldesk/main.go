package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/navdurga/steeldesk/internal/api"
	"github.com/navdurga/steeldesk/internal/cli"
	"github.com/navdurga/steeldesk/internal/config"
	"github.com/navdurga/steeldesk/internal/logging"
	"github.com/navdurga/steeldesk/internal/service"
	"github.com/navdurga/steeldesk/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	// Local credential store
	database, err := store.OpenDB(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening credential store: %w", err)
	}
	defer database.Close()
	creds := store.NewCredentialsRepo(database)

	// Backend client
	client := api.NewClient(api.Config{
		BaseURL:   cfg.API.BaseURL,
		TimeoutMs: cfg.API.TimeoutMs,
	}, api.NewZerologObserver(logger))

	app := &cli.App{
		Auth:      service.NewAuthService(client, creds, logger),
		Receipts:  service.NewReceiptService(client, logger),
		Summaries: service.NewSummaryService(client),
		Rates:     service.NewRateService(client, logger),
		Export:    service.NewExportService(client, cfg.Export.Dir, logger),
	}

	app.Available = func(ctx context.Context) bool {
		return client.Available(ctx)
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
