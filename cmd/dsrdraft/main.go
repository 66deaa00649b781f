package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"dsrdraft/internal/config"
	"dsrdraft/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.LoadFromFlags(os.Args[1:])
	if err != nil {
		log.Error("invalid flags", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidatePipeline(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(cfg, log)
	if err := p.Run(ctx); err != nil {
		log.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
}
