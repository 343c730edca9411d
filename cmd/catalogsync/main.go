package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bradykim7/mamabot/internal/cache"
	"github.com/bradykim7/mamabot/internal/crawler"
	"github.com/bradykim7/mamabot/internal/crawler/sources"
	"github.com/bradykim7/mamabot/internal/metrics"
	"github.com/bradykim7/mamabot/internal/storage"
	"github.com/bradykim7/mamabot/pkg/config"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func main() {
	once := flag.Bool("once", false, "run a single sync and exit")
	flag.Parse()

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	err = run(logger.Named("catalogsync"), *once)
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run wires the sync service and blocks until it finishes
func run(log *zap.Logger, once bool) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", zap.Error(err))
		return err
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
	if !once {
		go m.Serve(ctx, cfg.MetricsAddr)
	}

	db, err := storage.NewMongoDB(cfg, log)
	if err != nil {
		log.Error("Failed to connect to MongoDB", zap.Error(err))
		return err
	}
	defer func() {
		if err := db.Disconnect(); err != nil {
			log.Error("Error disconnecting MongoDB", zap.Error(err))
		}
	}()
	db.EnsureIndexes(ctx)

	srcs := []sources.Source{sources.NewSeedSource(log)}
	if cfg.CatalogSourceURL != "" {
		srcs = append(srcs, sources.NewHTMLTableSource(crawler.NewBaseCrawler(log), cfg.CatalogSourceURL, log))
	}

	var opts crawler.Options
	opts.Recorder = m

	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("Redis unavailable, cache will not be invalidated", zap.Error(err))
		} else {
			defer client.Close()
			opts.Cache = cache.NewRedisSnapshots(client, cfg.CatalogCacheTTL)
		}
	}

	if cfg.CatalogChannelID != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordToken)
		if err != nil {
			log.Error("Failed to create Discord session", zap.Error(err))
			return fmt.Errorf("failed to create Discord session: %w", err)
		}
		opts.Notifier = crawler.NewAnnouncer(crawler.SessionSender(session), cfg.CatalogChannelID, log)
	}

	syncer := crawler.NewSyncer(storage.NewFoodRepository(db, log), srcs, opts, log)

	if once {
		if err := syncer.Run(ctx); err != nil {
			log.Error("Catalog sync finished with errors", zap.Error(err))
			return err
		}
		return nil
	}

	interval := time.Duration(cfg.CatalogSyncIntervalMinutes) * time.Minute
	log.Info("Catalog sync configured", zap.Duration("interval", interval), zap.Int("sources", len(srcs)))

	// blocks until the context is canceled
	syncer.StartScheduledRuns(ctx, interval)

	log.Info("Catalog sync service shut down successfully")
	return nil
}
