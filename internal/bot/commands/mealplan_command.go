package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bradykim7/mamabot/internal/mealplan"
	"github.com/bradykim7/mamabot/internal/models"
	"github.com/bwmarrin/discordgo"
)

// days shown in a single reply
const maxPlanDaysShown = 7

// MealPlanCommand generates a multi-day plan
type MealPlanCommand struct {
	svc *Services
}

func NewMealPlanCommand(svc *Services) *MealPlanCommand {
	return &MealPlanCommand{svc: svc}
}

func (c *MealPlanCommand) Help() string {
	return fmt.Sprintf("[days %d-%d] [diet] [region] plan your meals", mealplan.MinDays, mealplan.MaxDays)
}

func (c *MealPlanCommand) Execute(ctx context.Context, req *Request) error {
	planReq := parseMealPlanArgs(req.Args)

	user, err := c.svc.user(ctx, req)
	if err != nil {
		return err
	}

	plan, err := c.svc.Planner.Generate(ctx, user, planReq)
	if c.svc.Events != nil {
		c.svc.Events.MealPlanGenerated(errors.Is(err, mealplan.ErrNoSuitableFoods), err)
	}
	if errors.Is(err, mealplan.ErrNoSuitableFoods) {
		return req.Reply.Embed(req.ChannelID, newEmbed("Meal plan",
			"No suitable foods match these options. Try another region or diet, see `prefs`.", colorWarning, req))
	}
	if err != nil {
		return err
	}

	c.svc.record(ctx, models.NewEventInteraction(req.UserID, models.InteractionMealPlanGeneration, map[string]any{
		"days":      len(plan.Days),
		"region":    planReq.Region,
		"diet_type": string(planReq.DietType),
	}))

	return req.Reply.Embed(req.ChannelID, mealPlanEmbed(plan, req))
}

var slotLabels = map[models.MealSlot]string{
	models.SlotBreakfast:       "Breakfast",
	models.SlotMidMorningSnack: "Mid-morning",
	models.SlotLunch:           "Lunch",
	models.SlotEveningSnack:    "Evening",
	models.SlotDinner:          "Dinner",
}

func mealPlanEmbed(plan *models.MealPlan, req *Request) *discordgo.MessageEmbed {
	desc := fmt.Sprintf("Average %.0f kcal and %.1f g protein per day.",
		plan.NutritionSummary["avg_daily_calories"], plan.NutritionSummary["avg_daily_protein"])
	embed := newEmbed(fmt.Sprintf("%d-day meal plan", len(plan.Days)), desc, colorSuccess, req)

	for i, day := range plan.Days {
		if i == maxPlanDaysShown {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "More",
				Value: fmt.Sprintf("...and %d more days", len(plan.Days)-maxPlanDaysShown),
			})
			break
		}

		var lines []string
		for _, slot := range models.DailySlots {
			items, ok := day.Meals[slot]
			if !ok {
				continue
			}
			names := make([]string, 0, len(items))
			for _, it := range items {
				names = append(names, it.Name)
			}
			lines = append(lines, fmt.Sprintf("**%s**: %s", slotLabels[slot], strings.Join(names, ", ")))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Day %d · %s", day.Day, day.Date),
			Value: truncate(strings.Join(lines, "\n"), 1024),
		})
	}
	return embed
}

// PrefsCommand lists the options mealplan accepts
type PrefsCommand struct {
	svc *Services
}

func NewPrefsCommand(svc *Services) *PrefsCommand {
	return &PrefsCommand{svc: svc}
}

func (c *PrefsCommand) Help() string {
	return "regions and diets available for meal plans"
}

func (c *PrefsCommand) Execute(ctx context.Context, req *Request) error {
	foods, err := c.svc.Catalog.ListFoods(ctx, models.FoodFilter{})
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	prefs := mealplan.AvailablePreferences(foods)

	diets := make([]string, 0, len(prefs.DietTypes))
	for _, d := range prefs.DietTypes {
		diets = append(diets, string(d))
	}
	regions := strings.Join(prefs.Regions, ", ")
	if regions == "" {
		regions = "none yet"
	}

	embed := newEmbed("Meal plan options", "", colorInfo, req)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Regions", Value: regions},
		{Name: "Diets", Value: strings.Join(diets, ", ")},
		{Name: "Days", Value: fmt.Sprintf("%d to %d", prefs.DaysRange.Min, prefs.DaysRange.Max)},
	}
	return req.Reply.Embed(req.ChannelID, embed)
}
