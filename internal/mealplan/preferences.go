package mealplan

import "github.com/bradykim7/mamabot/internal/models"

// AvailablePreferences lists the distinct catalog regions in first-seen order together
// with the supported diet types and plan lengths.
func AvailablePreferences(catalog []models.Food) models.Preferences {
	seen := make(map[string]bool)
	regions := []string{}
	for _, f := range catalog {
		if f.Region == "" || seen[f.Region] {
			continue
		}
		seen[f.Region] = true
		regions = append(regions, f.Region)
	}
	return models.Preferences{
		Regions:   regions,
		DietTypes: []models.Diet{models.DietVegetarian, models.DietNonVegetarian, models.DietVegan},
		DaysRange: models.DaysRange{Min: MinDays, Max: MaxDays},
	}
}

// SlotForHour maps an hour of day (0-23) to the meal slot in effect.
func SlotForHour(hour int) models.MealSlot {
	switch {
	case hour >= 6 && hour < 10:
		return models.SlotBreakfast
	case hour >= 10 && hour < 12:
		return models.SlotMidMorningSnack
	case hour >= 12 && hour < 15:
		return models.SlotLunch
	case hour >= 15 && hour < 17:
		return models.SlotEveningSnack
	case hour >= 17 && hour < 21:
		return models.SlotDinner
	default:
		return models.SlotNightSnack
	}
}
