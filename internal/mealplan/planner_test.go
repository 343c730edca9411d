package mealplan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bradykim7/mamabot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeCatalog struct {
	foods []models.Food
	err   error
}

func (c *fakeCatalog) ListFoods(_ context.Context, filter models.FoodFilter) ([]models.Food, error) {
	if c.err != nil {
		return nil, c.err
	}
	var out []models.Food
	for i := range c.foods {
		if filter.Match(&c.foods[i]) {
			out = append(out, c.foods[i])
		}
	}
	return out, nil
}

// seqSource replays a fixed sequence, reduced modulo n.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

func food(name string, cat models.Category) models.Food {
	f := models.NewFood(name, cat)
	f.Nutrients = models.Nutrients{"calories": 100, "protein": 2}
	return *f
}

func testCatalog() []models.Food {
	return []models.Food{
		food("G1", models.CategoryGrains), food("G2", models.CategoryGrains),
		food("D1", models.CategoryDairy), food("D2", models.CategoryDairy),
		food("F1", models.CategoryFruits), food("F2", models.CategoryFruits),
		food("N1", models.CategoryDryFruits), food("N2", models.CategoryDryFruits),
		food("V1", models.CategoryVegetables), food("V2", models.CategoryVegetables),
		food("L1", models.CategoryLentils), food("L2", models.CategoryLentils),
		food("P1", models.CategoryProteins), food("P2", models.CategoryProteins),
	}
}

func newTestPlanner(foods []models.Food, rnd RandomSource) *Planner {
	p := New(&fakeCatalog{foods: foods}, rnd, zap.NewNop())
	p.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return p
}

func names(items []models.MealItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestGenerate_ThreeDayShape(t *testing.T) {
	p := newTestPlanner(testCatalog(), &seqSource{})
	user := models.NewUserProfile("u1", "mama")

	plan, err := p.Generate(context.Background(), user, Request{Days: 3})
	require.NoError(t, err)
	require.Len(t, plan.Days, 3)
	assert.Empty(t, plan.Error)

	for i, day := range plan.Days {
		assert.Equal(t, i+1, day.Day)
		require.Len(t, day.Meals, 5)
		itemCount := 0
		for _, slot := range models.DailySlots {
			items := day.Meals[slot]
			assert.Len(t, items, 2, "day %d slot %s", day.Day, slot)
			for _, it := range items {
				assert.Contains(t, slotCategories[slot], it.Category)
			}
			itemCount += len(items)
		}
		assert.Equal(t, float64(100*itemCount), day.DailyNutrition["calories"])
		assert.Equal(t, float64(2*itemCount), day.DailyNutrition["protein"])
		assert.Equal(t, 0.0, day.DailyNutrition["folic_acid"])
	}

	assert.Equal(t, "2026-03-01", plan.Days[0].Date)
	assert.Equal(t, "2026-03-03", plan.Days[2].Date)

	assert.Equal(t, 3.0, plan.NutritionSummary["total_days"])
	assert.Equal(t, 1000.0, plan.NutritionSummary["avg_daily_calories"])
	assert.Equal(t, 20.0, plan.NutritionSummary["avg_daily_protein"])

	require.Len(t, plan.Table, 3)
	assert.Equal(t, "G1, G2", plan.Table[0].Breakfast)
	assert.Equal(t, 1000.0, plan.Table[0].Calories)
}

func TestGenerate_UsedWindow(t *testing.T) {
	p := newTestPlanner(testCatalog(), &seqSource{})
	user := models.NewUserProfile("u1", "mama")

	plan, err := p.Generate(context.Background(), user, Request{Days: 3})
	require.NoError(t, err)

	seen := map[primitive.ObjectID]bool{}
	for _, items := range plan.Days[0].Meals {
		for _, it := range items {
			assert.False(t, seen[it.ID], "repeated %s on day 1", it.Name)
			seen[it.ID] = true
		}
	}

	// day 2 avoids day 1 foods while fresh ones remain
	assert.Equal(t, []string{"P1", "P2"}, names(plan.Days[1].Meals[models.SlotBreakfast]))
	assert.Equal(t, []string{"N1", "N2"}, names(plan.Days[1].Meals[models.SlotMidMorningSnack]))
	// the window is cleared before day 3
	assert.Equal(t, []string{"G1", "G2"}, names(plan.Days[2].Meals[models.SlotBreakfast]))
}

func TestGenerate_MainSlotsMayTakeThree(t *testing.T) {
	// 1 means "three items" for main slots and is reduced modulo the pool size when sampling
	p := newTestPlanner(testCatalog(), &seqSource{vals: []int{1}})
	user := models.NewUserProfile("u1", "mama")

	plan, err := p.Generate(context.Background(), user, Request{Days: 1})
	require.NoError(t, err)
	day := plan.Days[0]
	assert.Len(t, day.Meals[models.SlotBreakfast], 3)
	assert.Len(t, day.Meals[models.SlotLunch], 3)
	assert.Len(t, day.Meals[models.SlotMidMorningSnack], 2)
	assert.Len(t, day.Meals[models.SlotEveningSnack], 2)
}

func TestGenerate_ClampsDays(t *testing.T) {
	p := newTestPlanner(testCatalog(), &seqSource{})
	user := models.NewUserProfile("u1", "mama")

	plan, err := p.Generate(context.Background(), user, Request{Days: 0})
	require.NoError(t, err)
	assert.Len(t, plan.Days, 1)

	plan, err = p.Generate(context.Background(), user, Request{Days: 45})
	require.NoError(t, err)
	assert.Len(t, plan.Days, 30)
	assert.Equal(t, 30.0, plan.NutritionSummary["total_days"])
}

func TestGenerate_NoSuitableFoods(t *testing.T) {
	foods := []models.Food{food("Peanut Chikki", models.CategoryTraditional)}
	user := models.NewUserProfile("u1", "mama")
	user.Health.Allergies = []string{"peanut"}

	p := newTestPlanner(foods, &seqSource{})
	plan, err := p.Generate(context.Background(), user, Request{Days: 3})
	assert.ErrorIs(t, err, ErrNoSuitableFoods)
	require.NotNil(t, plan)
	assert.Equal(t, "no suitable foods", plan.Error)
	assert.Empty(t, plan.Days)
	assert.Empty(t, plan.NutritionSummary)
}

func TestGenerate_Filters(t *testing.T) {
	avoid := food("Papaya", models.CategoryFruits)
	avoid.Suitability = models.Suitable(false, true, true, false)
	override := food("Pineapple", models.CategoryFruits)
	override.Suitability = models.Suitable(false, false, false, true)
	south := food("Idli", models.CategoryGrains)
	south.Region = "South Indian"
	paneer := food("Paneer", models.CategoryDairy)

	user := models.NewUserProfile("u1", "mama")
	p := newTestPlanner([]models.Food{avoid, override, south, paneer}, &seqSource{})

	plan, err := p.Generate(context.Background(), user, Request{Days: 1})
	require.NoError(t, err)
	var all []string
	for _, items := range plan.Days[0].Meals {
		all = append(all, names(items)...)
	}
	assert.NotContains(t, all, "Papaya")
	assert.Contains(t, all, "Pineapple")

	plan, err = p.Generate(context.Background(), user, Request{Days: 1, Region: "South Indian"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Idli"}, names(plan.Days[0].Meals[models.SlotBreakfast]))

	plan, err = p.Generate(context.Background(), user, Request{Days: 1, DietType: models.DietVegan})
	require.NoError(t, err)
	for _, items := range plan.Days[0].Meals {
		assert.NotContains(t, names(items), "Paneer")
	}
}

func TestGenerate_CatalogError(t *testing.T) {
	boom := errors.New("mongo down")
	p := New(&fakeCatalog{err: boom}, &seqSource{}, zap.NewNop())
	_, err := p.Generate(context.Background(), models.NewUserProfile("u1", "mama"), Request{Days: 2})
	assert.ErrorIs(t, err, boom)
}

func TestAvailablePreferences(t *testing.T) {
	a := food("Idli", models.CategoryGrains)
	a.Region = "South Indian"
	b := food("Roti", models.CategoryGrains)
	b.Region = "North Indian"
	c := food("Dosa", models.CategoryGrains)
	c.Region = "South Indian"
	d := food("Apple", models.CategoryFruits)

	prefs := AvailablePreferences([]models.Food{a, b, c, d})
	assert.Equal(t, []string{"South Indian", "North Indian"}, prefs.Regions)
	assert.Equal(t, []models.Diet{models.DietVegetarian, models.DietNonVegetarian, models.DietVegan}, prefs.DietTypes)
	assert.Equal(t, models.DaysRange{Min: 1, Max: 30}, prefs.DaysRange)
}

func TestSlotForHour(t *testing.T) {
	tests := map[int]models.MealSlot{
		7:  models.SlotBreakfast,
		10: models.SlotMidMorningSnack,
		13: models.SlotLunch,
		16: models.SlotEveningSnack,
		20: models.SlotDinner,
		23: models.SlotNightSnack,
		2:  models.SlotNightSnack,
	}
	for hour, want := range tests {
		assert.Equal(t, want, SlotForHour(hour), "hour %d", hour)
	}
}

func TestLockedSource(t *testing.T) {
	src := NewLockedSource()
	for i := 0; i < 100; i++ {
		v := src.Intn(3)
		assert.True(t, v >= 0 && v < 3)
	}
}
