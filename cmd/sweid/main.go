package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"sweid/internal/platform/config"
	"sweid/internal/platform/logger"
)

// main loads configuration and hands off to the CLI. Validation logic lives in
// pkg/ and internal/check.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newApp(cfg, log, os.Stdin, os.Stdout, os.Stderr).command()
	if err := cmd.Run(ctx, os.Args); err != nil {
		stop()
		if errors.Is(err, errRejected) {
			os.Exit(1)
		}
		log.Error("sweid failed", slog.Any("error", err))
		os.Exit(2)
	}
}
