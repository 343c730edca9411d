package nutrition

import (
	"fmt"
	"math"
	"strings"

	"github.com/bradykim7/mamabot/internal/models"
)

// NeutralScore is returned when a food carries no comparable nutrient data.
const NeutralScore = 0.5

const (
	sugarLimit  = 15.0
	sodiumLimit = 200.0

	complementaryLimit = 5
)

// Score rates how well a food's per-100g nutrients cover the trimester's targets, in [0,1].
func Score(food *models.Food, trimester int) float64 {
	return ScoreAgainst(food, RequirementsFor(trimester))
}

// ScoreAgainst averages min(amount/required, 1) over the nutrients present in both tables.
func ScoreAgainst(food *models.Food, req Requirements) float64 {
	if len(food.Nutrients) == 0 {
		return NeutralScore
	}

	var total float64
	matched := 0
	for nutrient, required := range req {
		amount, ok := food.Nutrients[nutrient]
		if !ok || required <= 0 {
			continue
		}
		total += math.Min(amount/required, 1.0)
		matched++
	}

	if matched == 0 {
		return NeutralScore
	}
	return math.Max(0, math.Min(total/float64(matched), 1.0))
}

// CheckSafety screens a food against the user's health conditions.
// Only an allergen hit makes a food unsafe; everything else is advisory.
func CheckSafety(food *models.Food, health models.HealthConditions) (bool, []string) {
	name := strings.ToLower(food.Name)
	for _, allergen := range health.Allergies {
		a := strings.ToLower(strings.TrimSpace(allergen))
		if a == "" {
			continue
		}
		if strings.Contains(name, a) {
			return false, []string{fmt.Sprintf("Contains allergen: %s", allergen)}
		}
	}

	var warnings []string
	if health.Diabetes && food.Nutrients["sugar"] > sugarLimit {
		warnings = append(warnings, "High sugar content - consume in moderation")
	}
	if health.Hypertension && food.Nutrients["sodium"] > sodiumLimit {
		warnings = append(warnings, "High sodium - limit intake")
	}
	if food.Precautions != "" {
		warnings = append(warnings, food.Precautions)
	}
	return true, warnings
}

// ComplementaryFoods returns the first five foods of a different category, in catalog order.
// There is no relevance ranking beyond category difference.
func ComplementaryFoods(food *models.Food, catalog []models.Food) []models.Food {
	var out []models.Food
	for i := range catalog {
		other := &catalog[i]
		if other.ID == food.ID {
			continue
		}
		if other.Category != food.Category {
			out = append(out, *other)
			if len(out) == complementaryLimit {
				break
			}
		}
	}
	return out
}
