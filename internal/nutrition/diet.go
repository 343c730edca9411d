package nutrition

import (
	"strings"

	"github.com/bradykim7/mamabot/internal/models"
)

// nonVeganMarkers flag untagged dairy/protein foods that are not vegan.
var nonVeganMarkers = []string{"paneer", "dahi", "curd", "milk", "ghee", "egg", "yogurt"}

// SuitsDiet reports whether a food fits a dietary preference. An explicit diet tag on
// the food wins; untagged foods fall back to name markers for vegans and are otherwise admitted.
func SuitsDiet(food *models.Food, diet models.Diet) bool {
	if food.Diet != "" {
		switch diet {
		case models.DietVegan:
			return food.Diet == models.DietVegan
		case models.DietVegetarian:
			return food.Diet != models.DietNonVegetarian
		default:
			return true
		}
	}

	if diet == models.DietVegan {
		if food.Category == models.CategoryDairy || food.Category == models.CategoryProteins {
			name := strings.ToLower(food.Name)
			for _, m := range nonVeganMarkers {
				if strings.Contains(name, m) {
					return false
				}
			}
		}
	}
	// untagged foods are admitted for vegetarians: the catalog carries no meat flag
	return true
}

// FilterDiet keeps the foods that suit the diet, preserving order. An empty diet keeps all.
func FilterDiet(foods []models.Food, diet models.Diet) []models.Food {
	if diet == "" {
		return foods
	}
	out := make([]models.Food, 0, len(foods))
	for i := range foods {
		if SuitsDiet(&foods[i], diet) {
			out = append(out, foods[i])
		}
	}
	return out
}
