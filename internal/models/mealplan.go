package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealSlot is one of the fixed daily meal slots.
type MealSlot string

const (
	SlotBreakfast       MealSlot = "breakfast"
	SlotMidMorningSnack MealSlot = "mid_morning_snack"
	SlotLunch           MealSlot = "lunch"
	SlotEveningSnack    MealSlot = "evening_snack"
	SlotDinner          MealSlot = "dinner"
	SlotNightSnack      MealSlot = "night_snack"
)

// DailySlots is the generation order of a plan day.
var DailySlots = []MealSlot{SlotBreakfast, SlotMidMorningSnack, SlotLunch, SlotEveningSnack, SlotDinner}

// TrackedNutrients are the nutrients aggregated per plan day.
var TrackedNutrients = []string{"calories", "protein", "iron", "calcium", "fiber", "folic_acid"}

// MealItem is the trimmed view of a food placed in a slot.
type MealItem struct {
	ID              primitive.ObjectID `json:"id"`
	Name            string             `json:"name"`
	LocalName       string             `json:"local_name,omitempty"`
	Category        Category           `json:"category"`
	PreparationTips string             `json:"preparation_tips,omitempty"`
}

// NewMealItem copies the display fields of a food.
func NewMealItem(f *Food) MealItem {
	return MealItem{
		ID:              f.ID,
		Name:            f.Name,
		LocalName:       f.LocalName,
		Category:        f.Category,
		PreparationTips: f.PreparationTips,
	}
}

// NutrientTotals maps each tracked nutrient to a summed amount.
type NutrientTotals map[string]float64

// NewNutrientTotals starts every tracked nutrient at zero.
func NewNutrientTotals() NutrientTotals {
	t := make(NutrientTotals, len(TrackedNutrients))
	for _, n := range TrackedNutrients {
		t[n] = 0
	}
	return t
}

// Add sums the tracked nutrients of a per-100g nutrient map.
func (t NutrientTotals) Add(n Nutrients) {
	for _, name := range TrackedNutrients {
		if v, ok := n[name]; ok {
			t[name] += v
		}
	}
}

// PlanDay is one generated day.
type PlanDay struct {
	Day            int                     `json:"day"`
	Date           string                  `json:"date"`
	Meals          map[MealSlot][]MealItem `json:"meals"`
	DailyNutrition NutrientTotals          `json:"daily_nutrition"`
}

// PlanRow is the flattened tabular view of a day.
type PlanRow struct {
	Day             int     `json:"day"`
	Date            string  `json:"date"`
	Breakfast       string  `json:"breakfast"`
	MidMorningSnack string  `json:"mid_morning_snack"`
	Lunch           string  `json:"lunch"`
	EveningSnack    string  `json:"evening_snack"`
	Dinner          string  `json:"dinner"`
	Calories        float64 `json:"calories"`
}

// MealPlan is the result of a planning request. When Error is set the plan is empty.
type MealPlan struct {
	Error            string             `json:"error,omitempty"`
	Days             []PlanDay          `json:"meal_plan"`
	NutritionSummary map[string]float64 `json:"nutrition_summary"`
	Table            []PlanRow          `json:"table_format,omitempty"`
}

// EmptyMealPlan is the structured "no data" result.
func EmptyMealPlan(reason string) *MealPlan {
	return &MealPlan{
		Error:            reason,
		Days:             []PlanDay{},
		NutritionSummary: map[string]float64{},
	}
}

// Preferences lists the options a planner request may use.
type Preferences struct {
	Regions   []string  `json:"regions"`
	DietTypes []Diet    `json:"diet_types"`
	DaysRange DaysRange `json:"days_range"`
}

// DaysRange is the inclusive bound on plan length.
type DaysRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}
