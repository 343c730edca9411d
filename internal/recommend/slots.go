package recommend

import (
	"context"

	"github.com/bradykim7/mamabot/internal/models"
)

// slotCategories limits which categories are ranked for a meal.
var slotCategories = map[string][]models.Category{
	"breakfast": {models.CategoryGrains, models.CategoryDairy, models.CategoryFruits},
	"lunch":     {models.CategoryGrains, models.CategoryVegetables, models.CategoryProteins, models.CategoryLentils},
	"dinner":    {models.CategoryGrains, models.CategoryVegetables, models.CategoryLentils},
	"snacks":    {models.CategoryFruits, models.CategoryDryFruits, models.CategoryTraditional},
}

// SlotCategories returns the allowed categories for a meal and whether the meal is known.
func SlotCategories(slot string) ([]models.Category, bool) {
	c, ok := slotCategories[slot]
	return c, ok
}

// RankForSlot ranks only the foods allowed for the meal. Unknown meals rank the whole catalog.
func (r *Recommender) RankForSlot(ctx context.Context, user *models.UserProfile, foods []models.Food, slot string, maxItems int) ([]ScoredCandidate, *models.Recommendation, error) {
	allowed, ok := slotCategories[slot]
	if !ok {
		return r.Rank(ctx, user, foods, maxItems)
	}

	filtered := make([]models.Food, 0, len(foods))
	for _, f := range foods {
		for _, c := range allowed {
			if f.Category == c {
				filtered = append(filtered, f)
				break
			}
		}
	}
	return r.Rank(ctx, user, filtered, maxItems)
}
