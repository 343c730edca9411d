// Package nutrition scores foods against trimester nutrient targets and screens them
// against a user's health conditions.
package nutrition

import (
	"math"
	"time"

	"github.com/bradykim7/mamabot/internal/models"
)

// Requirements maps nutrient name to its daily target amount.
type Requirements map[string]float64

// trimesterRequirements are the daily targets per trimester
// (mcg for folic_acid/vitamin_k, IU for vitamin_d, kcal for calories, mg or g otherwise).
var trimesterRequirements = map[int]Requirements{
	1: {
		"folic_acid": 600,
		"vitamin_b6": 1.9,
		"iron":       27,
		"calcium":    1000,
		"protein":    60,
		"calories":   1800,
	},
	2: {
		"calcium":   1000,
		"vitamin_d": 600,
		"omega3":    200,
		"protein":   70,
		"iron":      27,
		"calories":  2200,
	},
	3: {
		"iron":      27,
		"protein":   75,
		"vitamin_k": 90,
		"fiber":     28,
		"calcium":   1000,
		"calories":  2400,
	},
}

// RequirementsFor returns the target table for a trimester; out of range falls back to trimester 1.
func RequirementsFor(trimester int) Requirements {
	if req, ok := trimesterRequirements[trimester]; ok {
		return req
	}
	return trimesterRequirements[1]
}

// Importance is how strongly a nutrient matters in a trimester.
type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceModerate Importance = "moderate"
)

var trimesterNeeds = map[int]map[string]Importance{
	1: {
		"folic_acid": ImportanceCritical,
		"vitamin_b6": ImportanceHigh,
		"iron":       ImportanceHigh,
		"calcium":    ImportanceModerate,
		"protein":    ImportanceModerate,
	},
	2: {
		"calcium":    ImportanceCritical,
		"vitamin_d":  ImportanceCritical,
		"omega3":     ImportanceHigh,
		"protein":    ImportanceHigh,
		"iron":       ImportanceHigh,
		"folic_acid": ImportanceModerate,
	},
	3: {
		"iron":      ImportanceCritical,
		"protein":   ImportanceCritical,
		"vitamin_k": ImportanceHigh,
		"fiber":     ImportanceHigh,
		"calcium":   ImportanceHigh,
		"omega3":    ImportanceModerate,
	},
}

// Needs returns the importance label of each key nutrient for a trimester.
func Needs(trimester int) map[string]Importance {
	if n, ok := trimesterNeeds[trimester]; ok {
		return n
	}
	return trimesterNeeds[1]
}

// CriticalNutrients lists the nutrients marked critical for a trimester in stable order.
func CriticalNutrients(trimester int) []string {
	order := []string{"folic_acid", "iron", "protein", "calcium", "vitamin_d", "vitamin_b6", "omega3", "vitamin_k", "fiber"}
	needs := Needs(trimester)
	var out []string
	for _, n := range order {
		if needs[n] == ImportanceCritical {
			out = append(out, n)
		}
	}
	return out
}

const pregnancyWeeks = 40

// WeeksPregnant derives gestational weeks from the due date, clamped to [0,40].
func WeeksPregnant(dueDate, now time.Time) float64 {
	daysUntilDue := dueDate.Sub(now).Hours() / 24
	weeks := pregnancyWeeks - daysUntilDue/7
	return math.Max(0, math.Min(pregnancyWeeks, weeks))
}

// TrimesterFromDueDate maps weeks 1-12 to trimester 1, 13-27 to 2 and later to 3.
func TrimesterFromDueDate(dueDate, now time.Time) int {
	weeks := pregnancyWeeks - dueDate.Sub(now).Hours()/24/7
	switch {
	case weeks <= 12:
		return 1
	case weeks <= 27:
		return 2
	default:
		return 3
	}
}

// CurrentTrimester prefers the due date when the profile has one, else the stored trimester.
func CurrentTrimester(user *models.UserProfile, now time.Time) int {
	if user.DueDate != nil && !user.DueDate.IsZero() {
		return TrimesterFromDueDate(*user.DueDate, now)
	}
	if user.Trimester < 1 || user.Trimester > 3 {
		return 1
	}
	return user.Trimester
}
