// Package mealplan builds multi-day meal plans from the food catalog.
package mealplan

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bradykim7/mamabot/internal/models"
	"github.com/bradykim7/mamabot/internal/nutrition"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	MinDays = 1
	MaxDays = 30

	// the used-food window is cleared on every third day
	resetInterval = 3
)

// ErrNoSuitableFoods is returned when filtering leaves nothing to plan with.
var ErrNoSuitableFoods = errors.New("no suitable foods")

// CatalogReader lists catalog foods.
type CatalogReader interface {
	ListFoods(ctx context.Context, filter models.FoodFilter) ([]models.Food, error)
}

var slotCategories = map[models.MealSlot][]models.Category{
	models.SlotBreakfast:       {models.CategoryGrains, models.CategoryDairy, models.CategoryFruits, models.CategoryProteins},
	models.SlotMidMorningSnack: {models.CategoryFruits, models.CategoryDryFruits, models.CategoryDairy},
	models.SlotLunch:           {models.CategoryGrains, models.CategoryVegetables, models.CategoryProteins, models.CategoryLentils, models.CategoryDairy},
	models.SlotEveningSnack:    {models.CategoryFruits, models.CategoryDryFruits, models.CategoryDairy, models.CategoryVegetables},
	models.SlotDinner:          {models.CategoryGrains, models.CategoryVegetables, models.CategoryLentils, models.CategoryDairy},
}

// Request holds the caller's plan options. Zero values mean no preference.
type Request struct {
	Days     int
	Region   string
	DietType models.Diet
}

// Planner generates meal plans.
type Planner struct {
	catalog CatalogReader
	rnd     RandomSource
	log     *zap.Logger
	now     func() time.Time
}

// New creates a planner. A nil source uses a time-seeded LockedSource.
func New(catalog CatalogReader, rnd RandomSource, log *zap.Logger) *Planner {
	if rnd == nil {
		rnd = NewLockedSource()
	}
	return &Planner{
		catalog: catalog,
		rnd:     rnd,
		log:     log.Named("meal-planner"),
		now:     time.Now,
	}
}

// Generate builds a plan of req.Days days (clamped to [1,30]) for the user.
// When no food survives filtering it returns an empty plan carrying the reason and ErrNoSuitableFoods.
func (p *Planner) Generate(ctx context.Context, user *models.UserProfile, req Request) (*models.MealPlan, error) {
	days := ClampDays(req.Days)
	now := p.now()
	trimester := nutrition.CurrentTrimester(user, now)

	foods, err := p.catalog.ListFoods(ctx, models.FoodFilter{Region: req.Region})
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}

	candidates := p.candidates(foods, user, req.DietType, trimester)
	if len(candidates) == 0 {
		p.log.Info("No suitable foods for meal plan",
			zap.String("user_id", user.UserID),
			zap.String("region", req.Region),
			zap.String("diet", string(req.DietType)))
		return models.EmptyMealPlan(ErrNoSuitableFoods.Error()), ErrNoSuitableFoods
	}

	plan := &models.MealPlan{Days: make([]models.PlanDay, 0, days)}
	used := make(map[primitive.ObjectID]bool)

	for day := 1; day <= days; day++ {
		if day%resetInterval == 0 {
			used = make(map[primitive.ObjectID]bool)
		}

		meals := make(map[models.MealSlot][]models.MealItem, len(models.DailySlots))
		totals := models.NewNutrientTotals()
		for _, slot := range models.DailySlots {
			picked := p.pickForSlot(candidates, slot, trimester, used)
			if len(picked) == 0 {
				continue
			}
			items := make([]models.MealItem, 0, len(picked))
			for _, f := range picked {
				used[f.ID] = true
				totals.Add(f.Nutrients)
				items = append(items, models.NewMealItem(f))
			}
			meals[slot] = items
		}

		plan.Days = append(plan.Days, models.PlanDay{
			Day:            day,
			Date:           now.AddDate(0, 0, day-1).Format("2006-01-02"),
			Meals:          meals,
			DailyNutrition: totals,
		})
	}

	plan.NutritionSummary = Summarize(plan.Days)
	plan.Table = Table(plan.Days)

	p.log.Debug("Generated meal plan",
		zap.String("user_id", user.UserID),
		zap.Int("days", days),
		zap.Int("candidates", len(candidates)))
	return plan, nil
}

// ClampDays bounds a requested plan length to [1,30].
func ClampDays(days int) int {
	if days < MinDays {
		return MinDays
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

func (p *Planner) candidates(foods []models.Food, user *models.UserProfile, dietType models.Diet, trimester int) []*models.Food {
	foods = nutrition.FilterDiet(foods, dietType)
	foods = nutrition.FilterDiet(foods, user.DietaryPreference)

	out := make([]*models.Food, 0, len(foods))
	for i := range foods {
		f := &foods[i]
		if !f.Suitability.SafeFor(trimester) && !f.Suitability.AllTrimesters {
			continue
		}
		if safe, _ := nutrition.CheckSafety(f, user.Health); !safe {
			continue
		}
		out = append(out, f)
	}
	return out
}

// pickForSlot prefers foods outside the used window and falls back to all allowed foods.
func (p *Planner) pickForSlot(candidates []*models.Food, slot models.MealSlot, trimester int, used map[primitive.ObjectID]bool) []*models.Food {
	allowed := slotCategories[slot]

	var fresh, all []*models.Food
	for _, f := range candidates {
		if !inCategories(f.Category, allowed) {
			continue
		}
		all = append(all, f)
		if !used[f.ID] {
			fresh = append(fresh, f)
		}
	}
	eligible := fresh
	if len(eligible) == 0 {
		eligible = all
	}
	if len(eligible) == 0 {
		return nil
	}

	count := 2
	if !strings.Contains(string(slot), "snack") {
		count = 2 + p.rnd.Intn(2)
	}

	type scored struct {
		food  *models.Food
		score float64
	}
	ranked := make([]scored, len(eligible))
	for i, f := range eligible {
		ranked[i] = scored{food: f, score: nutrition.Score(f, trimester)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if len(ranked) > 2*count {
		ranked = ranked[:2*count]
	}
	if count > len(ranked) {
		count = len(ranked)
	}

	// partial Fisher-Yates over the pool
	for i := 0; i < count; i++ {
		j := i + p.rnd.Intn(len(ranked)-i)
		ranked[i], ranked[j] = ranked[j], ranked[i]
	}

	picked := make([]*models.Food, count)
	for i := range picked {
		picked[i] = ranked[i].food
	}
	return picked
}

func inCategories(c models.Category, allowed []models.Category) bool {
	for _, a := range allowed {
		if a == c {
			return true
		}
	}
	return false
}

// Summarize averages each tracked nutrient over the generated days, rounded to 2 decimals.
func Summarize(days []models.PlanDay) map[string]float64 {
	summary := map[string]float64{"total_days": float64(len(days))}
	if len(days) == 0 {
		return summary
	}
	for _, n := range models.TrackedNutrients {
		var total float64
		for _, d := range days {
			total += d.DailyNutrition[n]
		}
		summary["avg_daily_"+n] = math.Round(total/float64(len(days))*100) / 100
	}
	return summary
}

// Table flattens days into one row each with comma-joined names per slot.
func Table(days []models.PlanDay) []models.PlanRow {
	rows := make([]models.PlanRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, models.PlanRow{
			Day:             d.Day,
			Date:            d.Date,
			Breakfast:       joinNames(d.Meals[models.SlotBreakfast]),
			MidMorningSnack: joinNames(d.Meals[models.SlotMidMorningSnack]),
			Lunch:           joinNames(d.Meals[models.SlotLunch]),
			EveningSnack:    joinNames(d.Meals[models.SlotEveningSnack]),
			Dinner:          joinNames(d.Meals[models.SlotDinner]),
			Calories:        d.DailyNutrition["calories"],
		})
	}
	return rows
}

func joinNames(items []models.MealItem) string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return strings.Join(names, ", ")
}
