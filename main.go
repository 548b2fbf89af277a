package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/voidstudios/voidbot/config"
	"github.com/voidstudios/voidbot/logger"
	"github.com/voidstudios/voidbot/migrations"
	"github.com/voidstudios/voidbot/pkg/discord"
	"github.com/voidstudios/voidbot/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading config,", err)
		os.Exit(1)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Fprintln(os.Stderr, "error initializing logger,", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("error opening database", "error", err)
		os.Exit(1)
	}
	if err := migrations.Migrate(db); err != nil {
		slog.Error("error migrating database", "error", err)
		os.Exit(1)
	}

	bot, err := discord.New(cfg, store.New(db), slog.Default())
	if err != nil {
		slog.Error("error creating Discord session", "error", err)
		os.Exit(1)
	}
	if err := bot.Open(); err != nil {
		slog.Error("error opening connection", "error", err)
		os.Exit(1)
	}

	slog.Info("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	if err := bot.Close(); err != nil {
		slog.Error("error closing Discord session", "error", err)
	}
}
