// Package main is the entry point for the triplog binary.
// Its sole responsibility is wiring dependencies together and running the
// requested command. No business logic belongs here.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"

	"github.com/pkordes/triplog/internal/cli"
	"github.com/pkordes/triplog/internal/config"
	"github.com/pkordes/triplog/internal/repo"
	"github.com/pkordes/triplog/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// --- Logger -----------------------------------------------------------
	// Validate already rejected unknown levels.
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ----------------------------------------------------------
	slots, closeStore, err := repo.Open(ctx, repo.Options{
		Driver:      cfg.StoreDriver,
		DataDir:     cfg.DataDir,
		DatabaseURL: cfg.DatabaseURL,
	}, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	// --- Services ---------------------------------------------------------
	svcs, err := service.New(ctx, slots, logger)
	if err != nil {
		return err
	}

	app := &cli.App{
		Config:   cfg,
		Log:      logger,
		Services: svcs,
		Confirm:  cli.PromptConfirmer{},
		CopyText: clipboard.WriteAll,
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
