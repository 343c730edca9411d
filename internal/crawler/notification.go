package crawler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bradykim7/mamabot/internal/models"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// Discord allows roughly one message every two seconds per channel without backoff
	announceInterval = 2 * time.Second
	maxEmbedFields   = 6
)

// SendFunc posts an embed to a channel
type SendFunc func(channelID string, embed *discordgo.MessageEmbed) error

// SessionSender adapts a discord session to a SendFunc
func SessionSender(s *discordgo.Session) SendFunc {
	return func(channelID string, embed *discordgo.MessageEmbed) error {
		_, err := s.ChannelMessageSendEmbed(channelID, embed)
		return err
	}
}

// Announcer posts newly added catalog foods to a Discord channel
type Announcer struct {
	send      SendFunc
	channelID string
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// NewAnnouncer creates an announcer for channelID
func NewAnnouncer(send SendFunc, channelID string, log *zap.Logger) *Announcer {
	return &Announcer{
		send:      send,
		channelID: channelID,
		limiter:   rate.NewLimiter(rate.Every(announceInterval), 1),
		logger:    log.Named("announcer"),
	}
}

// AnnounceNewFoods sends one embed per food, waiting on the rate limiter between messages
func (a *Announcer) AnnounceNewFoods(ctx context.Context, foods []models.Food) error {
	if len(foods) == 0 || a.channelID == "" {
		return nil
	}

	a.logger.Info("Announcing new foods", zap.Int("count", len(foods)))

	var sendErrors []error
	for i := range foods {
		if err := a.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := a.send(a.channelID, foodEmbed(&foods[i])); err != nil {
			a.logger.Error("Failed to send Discord message",
				zap.Error(err),
				zap.String("channel_id", a.channelID),
				zap.String("food", foods[i].Name))
			sendErrors = append(sendErrors, fmt.Errorf("failed to announce %s: %w", foods[i].Name, err))
		}
	}

	if len(sendErrors) > 0 {
		return fmt.Errorf("%d of %d announcements failed: %w", len(sendErrors), len(foods), errors.Join(sendErrors...))
	}
	return nil
}

// foodEmbed creates a rich embed for a new catalog food
func foodEmbed(food *models.Food) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Category", Value: string(food.Category), Inline: true},
	}
	if food.Region != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Region", Value: food.Region, Inline: true})
	}
	if food.Diet != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Diet", Value: string(food.Diet), Inline: true})
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:  "Safe in",
		Value: safeTrimesters(food.Suitability),
	})

	names := make([]string, 0, len(food.Nutrients))
	for n := range food.Nutrients {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if len(fields) >= maxEmbedFields {
			break
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   strings.ReplaceAll(n, "_", " "),
			Value:  fmt.Sprintf("%g", food.Nutrients[n]),
			Inline: true,
		})
	}

	color := 0x2ecc71
	if !food.Suitability.AllTrimesters && !food.Suitability.IsEmpty() {
		color = 0xf1c40f
	}

	return &discordgo.MessageEmbed{
		Title:       "New food: " + food.DisplayName(),
		Description: food.Benefits,
		Color:       color,
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Source: %s", food.Source),
		},
	}
}

func safeTrimesters(s models.TrimesterSuitability) string {
	if s.AllTrimesters || s.IsEmpty() {
		return "All trimesters"
	}
	var safe []string
	for t := 1; t <= 3; t++ {
		if s.SafeFor(t) {
			safe = append(safe, fmt.Sprintf("T%d", t))
		}
	}
	if len(safe) == 0 {
		return "Not recommended"
	}
	return strings.Join(safe, ", ")
}
