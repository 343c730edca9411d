package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bradykim7/mamabot/internal/mealplan"
	"github.com/bradykim7/mamabot/internal/models"
	"github.com/bradykim7/mamabot/internal/nutrition"
	"github.com/bradykim7/mamabot/internal/recommend"
)

// errUsage marks input mistakes; the message is shown to the user as is.
var errUsage = errors.New("usage")

func usagef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

// userMessage strips the usage marker
func userMessage(err error) string {
	return strings.TrimPrefix(err.Error(), errUsage.Error()+": ")
}

// parseRecommendArgs reads "[slot|now] [count]" in either order. "now" picks the meal for the hour of now.
func parseRecommendArgs(args []string, maxItems int, now time.Time) (slot string, count int, err error) {
	count = maxItems
	for _, a := range args {
		if strings.EqualFold(a, "now") {
			slot = mealAt(now)
			continue
		}
		if n, convErr := strconv.Atoi(a); convErr == nil {
			if n < 1 {
				return "", 0, usagef("count must be at least 1")
			}
			count = min(n, maxItems)
			continue
		}
		s := strings.ToLower(a)
		if _, ok := recommend.SlotCategories(s); !ok {
			return "", 0, usagef("unknown meal %q, try breakfast, lunch, dinner, snacks or now", a)
		}
		slot = s
	}
	return slot, count, nil
}

// mealAt folds the planner's daily slots onto the recommendation meals
func mealAt(t time.Time) string {
	switch slot := mealplan.SlotForHour(t.Hour()); slot {
	case models.SlotBreakfast, models.SlotLunch, models.SlotDinner:
		return string(slot)
	default:
		return "snacks"
	}
}

// parseMealPlanArgs reads "[days] [diet] [region...]". Days are clamped by the planner.
func parseMealPlanArgs(args []string) mealplan.Request {
	req := mealplan.Request{Days: 7}
	var region []string
	for i, a := range args {
		if i == 0 {
			if n, err := strconv.Atoi(a); err == nil {
				req.Days = n
				continue
			}
		}
		if d, ok := models.ParseDiet(a); ok && req.DietType == "" {
			req.DietType = d
			continue
		}
		region = append(region, a)
	}
	req.Region = strings.Join(region, " ")
	return req
}

// applyProfileSetting updates one profile field from user input
func applyProfileSetting(u *models.UserProfile, field, value string, now time.Time) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return usagef("missing value for %s", field)
	}

	switch strings.ToLower(field) {
	case "trimester":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 3 {
			return usagef("trimester must be 1, 2 or 3")
		}
		u.Trimester = n
		u.DueDate = nil
	case "diet":
		d, ok := models.ParseDiet(value)
		if !ok {
			return usagef("diet must be vegetarian, non-vegetarian or vegan")
		}
		u.DietaryPreference = d
	case "due":
		due, err := time.Parse("2006-01-02", value)
		if err != nil {
			return usagef("due date must look like 2026-08-30")
		}
		u.DueDate = &due
		u.Trimester = nutrition.TrimesterFromDueDate(due, now)
	case "allergies":
		if strings.EqualFold(value, "none") {
			u.Health.Allergies = nil
			break
		}
		u.Health.AddAllergies(value)
	case "diabetes", "hypertension":
		on, err := parseSwitch(value)
		if err != nil {
			return err
		}
		if strings.EqualFold(field, "diabetes") {
			u.Health.Diabetes = on
		} else {
			u.Health.Hypertension = on
		}
	default:
		return usagef("unknown setting %q, try trimester, diet, due, allergies, diabetes or hypertension", field)
	}

	u.UpdatedAt = now
	return nil
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "yes", "y", "true", "on":
		return true, nil
	case "no", "n", "false", "off":
		return false, nil
	}
	return false, usagef("expected yes or no, got %q", v)
}
