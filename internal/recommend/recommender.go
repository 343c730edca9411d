// Package recommend ranks catalog foods for a user and records what was shown.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bradykim7/mamabot/internal/models"
	"github.com/bradykim7/mamabot/internal/nutrition"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	DefaultMaxItems = 10

	// interactions considered per user+food
	preferenceWindow = 10

	nutritionWeight  = 0.4
	trimesterWeight  = 0.3
	preferenceWeight = 0.3
)

// InteractionReader returns a user's most recent interactions with one food, newest first.
type InteractionReader interface {
	RecentForFood(ctx context.Context, userID string, foodID primitive.ObjectID, limit int) ([]models.Interaction, error)
}

// RecommendationStore persists shown recommendation sets.
type RecommendationStore interface {
	SaveRecommendation(ctx context.Context, rec *models.Recommendation) error
	ListRecommendations(ctx context.Context, userID string, limit int) ([]models.Recommendation, error)
}

// ScoredCandidate is a food with the scores that placed it.
type ScoredCandidate struct {
	Food            models.Food `json:"food"`
	NutritionScore  float64     `json:"nutrition_score"`
	TrimesterScore  float64     `json:"trimester_score"`
	PreferenceScore float64     `json:"preference_score"`
	CombinedScore   float64     `json:"score"`
	Warnings        []string    `json:"warnings,omitempty"`
}

// Recommender ranks foods by nutrition, trimester fit and past feedback.
type Recommender struct {
	interactions InteractionReader
	store        RecommendationStore
	log          *zap.Logger
	now          func() time.Time
}

// New creates a recommender.
func New(interactions InteractionReader, store RecommendationStore, log *zap.Logger) *Recommender {
	return &Recommender{
		interactions: interactions,
		store:        store,
		log:          log.Named("recommender"),
		now:          time.Now,
	}
}

// Rank scores the given foods for the user and returns at most maxItems of them with a
// category spread. The selection is persisted as a Recommendation when it is non-empty.
func (r *Recommender) Rank(ctx context.Context, user *models.UserProfile, foods []models.Food, maxItems int) ([]ScoredCandidate, *models.Recommendation, error) {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	trimester := nutrition.CurrentTrimester(user, r.now())

	scored := make([]ScoredCandidate, 0, len(foods))
	for i := range foods {
		food := &foods[i]

		nutritionScore := nutrition.Score(food, trimester)
		safe, warnings := nutrition.CheckSafety(food, user.Health)
		if !safe {
			continue
		}
		if !nutrition.SuitsDiet(food, user.DietaryPreference) {
			continue
		}

		preference, err := r.preferenceScore(ctx, user.UserID, food.ID)
		if err != nil {
			return nil, nil, err
		}
		trimesterScore := TrimesterScore(food, trimester)

		scored = append(scored, ScoredCandidate{
			Food:            *food,
			NutritionScore:  nutritionScore,
			TrimesterScore:  trimesterScore,
			PreferenceScore: preference,
			CombinedScore:   nutritionWeight*nutritionScore + trimesterWeight*trimesterScore + preferenceWeight*preference,
			Warnings:        warnings,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CombinedScore > scored[j].CombinedScore
	})

	pool := scored
	if len(pool) > 2*maxItems {
		pool = pool[:2*maxItems]
	}
	selected := diversify(pool, maxItems)

	r.log.Debug("Ranked foods",
		zap.String("user_id", user.UserID),
		zap.Int("trimester", trimester),
		zap.Int("candidates", len(scored)),
		zap.Int("selected", len(selected)))

	if len(selected) == 0 {
		return selected, nil, nil
	}

	rec := models.NewRecommendation(user.UserID, trimester, models.FoodIDs(Foods(selected)), "")
	if err := r.store.SaveRecommendation(ctx, rec); err != nil {
		return nil, nil, fmt.Errorf("failed to save recommendation: %w", err)
	}
	return selected, rec, nil
}

// TrimesterScore is 0.9 when the food carries an explicit flag for the trimester (whatever its
// value), 0.7 when it is marked for all trimesters and 0.5 otherwise.
func TrimesterScore(food *models.Food, trimester int) float64 {
	if _, ok := food.Suitability.Lookup(trimester); ok {
		return 0.9
	}
	if food.Suitability.AllTrimesters {
		return 0.7
	}
	return 0.5
}

func (r *Recommender) preferenceScore(ctx context.Context, userID string, foodID primitive.ObjectID) (float64, error) {
	recent, err := r.interactions.RecentForFood(ctx, userID, foodID, preferenceWindow)
	if err != nil {
		return 0, fmt.Errorf("failed to load interactions: %w", err)
	}
	return PreferenceScore(recent), nil
}

// PreferenceScore folds feedback into a score starting from 0.5, clamped to [0,1].
// Only the first ten interactions are counted.
func PreferenceScore(recent []models.Interaction) float64 {
	if len(recent) > preferenceWindow {
		recent = recent[:preferenceWindow]
	}
	score := 0.5
	for _, in := range recent {
		switch in.Kind {
		case models.InteractionLike:
			score += 0.1
		case models.InteractionDislike:
			score -= 0.2
		case models.InteractionBookmark:
			score += 0.05
		case models.InteractionView:
			score += 0.01
		}
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// diversify keeps at most max(2, maxItems/4) foods per category on the first pass,
// then tops up from the pool in score order.
func diversify(pool []ScoredCandidate, maxItems int) []ScoredCandidate {
	perCategory := maxItems / 4
	if perCategory < 2 {
		perCategory = 2
	}

	selected := make([]ScoredCandidate, 0, maxItems)
	taken := make([]bool, len(pool))
	counts := make(map[models.Category]int)

	for i, c := range pool {
		if len(selected) >= maxItems {
			break
		}
		if counts[c.Food.Category] < perCategory {
			selected = append(selected, c)
			taken[i] = true
			counts[c.Food.Category]++
		}
	}

	for i, c := range pool {
		if len(selected) >= maxItems {
			break
		}
		if !taken[i] {
			selected = append(selected, c)
			taken[i] = true
		}
	}
	return selected
}

// History returns the user's stored recommendations, newest first.
func (r *Recommender) History(ctx context.Context, userID string, limit int) ([]models.Recommendation, error) {
	recs, err := r.store.ListRecommendations(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return recs, nil
}

// Foods returns the candidates' foods in rank order
func Foods(candidates []ScoredCandidate) []models.Food {
	out := make([]models.Food, len(candidates))
	for i := range candidates {
		out[i] = candidates[i].Food
	}
	return out
}

// Expand resolves a stored recommendation's ids against the catalog in stored order.
// Ids no longer in the catalog are skipped.
func Expand(rec *models.Recommendation, catalog []models.Food) []models.Food {
	byID := make(map[primitive.ObjectID]models.Food, len(catalog))
	for _, f := range catalog {
		byID[f.ID] = f
	}
	out := make([]models.Food, 0, len(rec.FoodIDs))
	for _, id := range rec.FoodIDs {
		if f, ok := byID[id]; ok {
			out = append(out, f)
		}
	}
	return out
}
