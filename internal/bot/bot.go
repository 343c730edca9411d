// Package bot runs the Discord front-end of mamabot.
package bot

import (
	"context"
	"fmt"

	"github.com/bradykim7/mamabot/internal/assistant"
	"github.com/bradykim7/mamabot/internal/bot/commands"
	"github.com/bradykim7/mamabot/internal/cache"
	"github.com/bradykim7/mamabot/internal/mealplan"
	"github.com/bradykim7/mamabot/internal/metrics"
	"github.com/bradykim7/mamabot/internal/models"
	"github.com/bradykim7/mamabot/internal/recommend"
	"github.com/bradykim7/mamabot/internal/storage"
	"github.com/bradykim7/mamabot/pkg/config"
	"github.com/bradykim7/mamabot/pkg/logger"
	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Bot은 Discord 봇을 나타냅니다
type Bot struct {
	session  *discordgo.Session
	config   *config.Config
	log      *zap.Logger
	commands *commands.Registry
	db       *storage.MongoDB
	redis    *redis.Client
	metrics  *metrics.Collector
}

// New wires storage, the catalog cache and the nutrition services behind the command registry
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, m *metrics.Collector) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	db, err := storage.NewMongoDB(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db.EnsureIndexes(ctx)

	b := &Bot{
		session:  session,
		config:   cfg,
		log:      log.Named("bot"),
		commands: commands.NewRegistry(cfg.CommandPrefix, logger.New("commands"), m),
		db:       db,
		metrics:  m,
	}

	foods := storage.NewFoodRepository(db, log)
	var catalog commands.Catalog = foods
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			// the bot still works straight from MongoDB
			b.log.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			b.redis = client
			catalog = cache.NewCachedCatalog(foods, cache.NewRedisSnapshots(client, cfg.CatalogCacheTTL), m, log)
		}
	}

	interactions := storage.NewInteractionRepository(db, log)
	svc := &commands.Services{
		Catalog:            catalog,
		Foods:              foods,
		Users:              storage.NewUserRepository(db, log),
		Interactions:       interactions,
		Recommender:        recommend.New(interactions, storage.NewRecommendationRepository(db, log), log),
		Planner:            mealplan.New(catalog, nil, log),
		Assistant:          assistant.New(nluBackend(cfg, log, m), log),
		Events:             m,
		Log:                log.Named("commands"),
		MaxRecommendations: cfg.MaxRecommendations,
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	b.registerCommands(svc)
	b.log.Info("Commands registered", zap.Int("count", len(b.commands.GetCommands())))

	return b, nil
}

// nluBackend prefers the remote service when configured and always keeps the rules as the last resort
func nluBackend(cfg *config.Config, log *zap.Logger, m *metrics.Collector) assistant.Backend {
	if cfg.NLUEndpoint == "" {
		return assistant.RuleBackend{}
	}
	remote := assistant.NewRemoteBackend(cfg.NLUEndpoint, cfg.NLUTimeout, log)
	return assistant.NewChain(log, remote, assistant.RuleBackend{}).OnFallback(m.BackendFallback)
}

// Start는 봇을 시작합니다
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	b.log.Info("Bot is running. Press CTRL-C to exit.")

	<-ctx.Done()

	return b.Close()
}

// Close는 리소스를 정리합니다
func (b *Bot) Close() error {
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("failed to close Discord session: %w", err)
	}

	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			b.log.Warn("Failed to close Redis client", zap.Error(err))
		}
	}

	if err := b.db.Disconnect(); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}

	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("Bot logged in",
		zap.String("username", r.User.Username),
		zap.String("discriminator", r.User.Discriminator))

	err := s.UpdateGameStatus(0, b.config.CommandPrefix+"help")
	if err != nil {
		b.log.Error("Failed to set status", zap.Error(err))
	}
}

// onMessageCreate는 메시지가 생성되었을 때의 이벤트 핸들러입니다
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// 봇 자신의 메시지는 무시
	if m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}

	b.log.Debug("Message received",
		zap.String("guild_id", m.GuildID),
		zap.String("channel_id", m.ChannelID),
		zap.String("user_id", m.Author.ID))

	b.commands.Handle(s, m)
}

// registerCommands는 모든 명령어를 등록합니다
func (b *Bot) registerCommands(svc *commands.Services) {
	r := b.commands
	r.Register("ping", commands.NewPingCommand(b.session.HeartbeatLatency))
	r.Register("help", commands.NewHelpCommand(r))
	r.Register("ask", commands.NewAskCommand(svc))
	r.Register("suggest", commands.NewSuggestCommand(svc))
	r.Register("recommend", commands.NewRecommendCommand(svc))
	r.Register("mealplan", commands.NewMealPlanCommand(svc))
	r.Register("prefs", commands.NewPrefsCommand(svc))
	r.Register("profile", commands.NewProfileCommand(svc))
	r.Register("food", commands.NewFoodCommand(svc))
	r.Register("history", commands.NewHistoryCommand(svc))
	r.Register("search", commands.NewSearchCommand(svc))
	r.Register("stats", commands.NewStatsCommand(svc))
	for _, kind := range []models.InteractionKind{
		models.InteractionLike,
		models.InteractionDislike,
		models.InteractionBookmark,
		models.InteractionView,
	} {
		r.Register(string(kind), commands.NewFeedbackCommand(svc, kind))
	}
}
