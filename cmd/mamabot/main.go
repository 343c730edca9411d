package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bradykim7/mamabot/internal/bot"
	"github.com/bradykim7/mamabot/internal/metrics"
	"github.com/bradykim7/mamabot/pkg/config"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Named("mamabot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Create context that will be canceled on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	go func() {
		sc := make(chan os.Signal, 1)
		signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
		<-sc
		log.Info("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	m := metrics.New(log)
	go m.Serve(ctx, cfg.MetricsAddr)

	discordBot, err := bot.New(ctx, cfg, log, m)
	if err != nil {
		log.Fatal("Failed to initialize bot", zap.Error(err))
	}

	if err := discordBot.Start(ctx); err != nil {
		log.Fatal("Bot error", zap.Error(err))
	}

	log.Info("Discord bot shut down successfully")
}
