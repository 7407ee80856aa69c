package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/employee-directory/internal/app"
	"github.com/samvad-hq/employee-directory/internal/config"
	"github.com/samvad-hq/employee-directory/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "employees: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("employee directory starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	directory, err := app.NewDirectory(cfg, log, app.Options{})
	if err != nil {
		logger.ErrorObj("failed to initialize directory", "error", err)
		return err
	}

	return directory.Run(ctx)
}
