package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/nhl-discord-bot/internal/config"
	"github.com/preston-bernstein/nhl-discord-bot/internal/logging"
	"github.com/preston-bernstein/nhl-discord-bot/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(run())
}

func run() int {
	config.LoadDotenv(nil)
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "nhl-discord-bot",
		Version: appVersion,
		Debug:   cfg.Debug,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logging.Error(logger, "failed to build bot", err)
		return 1
	}
	if err := srv.Run(ctx, stop); err != nil {
		logging.Error(logger, "bot stopped with error", err)
		return 1
	}
	return 0
}
