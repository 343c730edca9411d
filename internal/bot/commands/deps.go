package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/bradykim7/mamabot/internal/assistant"
	"github.com/bradykim7/mamabot/internal/mealplan"
	"github.com/bradykim7/mamabot/internal/models"
	"github.com/bradykim7/mamabot/internal/recommend"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Catalog lists foods
type Catalog interface {
	ListFoods(ctx context.Context, filter models.FoodFilter) ([]models.Food, error)
}

// FoodFinder looks foods up by name or free text
type FoodFinder interface {
	FindByName(ctx context.Context, name string) (*models.Food, error)
	Search(ctx context.Context, query string, limit int) ([]models.Food, error)
}

// Users loads and stores user profiles
type Users interface {
	GetOrCreate(ctx context.Context, userID, username string) (*models.UserProfile, error)
	Save(ctx context.Context, user *models.UserProfile) error
}

// Interactions appends to and reads the interaction log
type Interactions interface {
	Append(ctx context.Context, in *models.Interaction) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Interaction, error)
	ActivityCounts(ctx context.Context, userID string, since time.Time) ([]models.ActivityCount, error)
}

// Events counts domain outcomes
type Events interface {
	RecommendationServed(slot string)
	MealPlanGenerated(empty bool, err error)
	QuestionAnswered(intent, confidence string)
}

// Services bundles what the nutrition commands need
type Services struct {
	Catalog      Catalog
	Foods        FoodFinder
	Users        Users
	Interactions Interactions
	Recommender  *recommend.Recommender
	Planner      *mealplan.Planner
	Assistant    *assistant.Assistant
	Events       Events
	Log          *zap.Logger

	MaxRecommendations int
	Now                func() time.Time
}

func (s *Services) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// user loads the caller's profile, creating the default one on first use
func (s *Services) user(ctx context.Context, req *Request) (*models.UserProfile, error) {
	u, err := s.Users.GetOrCreate(ctx, req.UserID, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return u, nil
}

// record appends an interaction; failures are only logged so the reply still goes out
func (s *Services) record(ctx context.Context, in *models.Interaction) {
	if err := s.Interactions.Append(ctx, in); err != nil {
		s.Log.Warn("Failed to record interaction",
			zap.String("user_id", in.UserID),
			zap.String("kind", string(in.Kind)),
			zap.Error(err))
	}
}

const (
	colorInfo    = 0x3498db
	colorSuccess = 0x2ecc71
	colorWarning = 0xf39c12
	colorError   = 0xe74c3c
)

// newEmbed builds the common reply frame
func newEmbed(title, description string, color int, req *Request) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: truncate(description, 4000),
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Requested by %s", req.Username),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
