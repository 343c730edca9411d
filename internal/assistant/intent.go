// Package assistant answers free-text nutrition questions: it classifies the question's
// intent, finds catalog foods it mentions and renders a reply.
package assistant

import (
	"strings"
	"unicode/utf8"

	"github.com/bradykim7/mamabot/internal/models"
)

// Intent is the kind of question being asked.
type Intent string

const (
	IntentSafetyCheck       Intent = "safety_check"
	IntentBenefits          Intent = "benefits"
	IntentNutritionalInfo   Intent = "nutritional_info"
	IntentQuantity          Intent = "quantity"
	IntentPreparation       Intent = "preparation"
	IntentPrecautions       Intent = "precautions"
	IntentTrimesterSpecific Intent = "trimester_specific"
	IntentGeneral           Intent = "general"
)

type intentRule struct {
	intent   Intent
	keywords []string
}

// intentRules are checked in order; the first rule with a matching keyword wins.
var intentRules = []intentRule{
	{IntentSafetyCheck, []string{"can i eat", "is it safe", "safe to eat", "should i avoid"}},
	{IntentBenefits, []string{"benefits", "good for", "why eat", "advantages"}},
	{IntentNutritionalInfo, []string{"nutrition", "nutrients", "vitamins", "minerals", "protein", "calcium", "iron"}},
	{IntentQuantity, []string{"how much", "quantity", "how many", "serving"}},
	{IntentPreparation, []string{"how to", "prepare", "cook", "recipe"}},
	{IntentPrecautions, []string{"precaution", "warning", "avoid", "risk"}},
	{IntentTrimesterSpecific, []string{"trimester", "first trimester", "second trimester", "third trimester"}},
}

// ParseIntent accepts a known intent name.
func ParseIntent(s string) (Intent, bool) {
	in := Intent(strings.ToLower(strings.TrimSpace(s)))
	if in == IntentGeneral {
		return in, true
	}
	for _, r := range intentRules {
		if r.intent == in {
			return in, true
		}
	}
	return "", false
}

// ClassifyIntent matches lowercase keyword substrings in priority order, defaulting to general.
func ClassifyIntent(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range intentRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.intent
			}
		}
	}
	return IntentGeneral
}

// ExtractFoods returns the catalog foods the text mentions, in catalog order.
// A food matches on its English name, its local name, or any word longer than
// three characters contained in either name, so "palak" finds "Palak Paneer".
func ExtractFoods(text string, catalog []models.Food) []models.Food {
	lower := strings.ToLower(text)
	words := strings.Fields(lower)

	var matched []models.Food
	for _, f := range catalog {
		name := strings.ToLower(f.Name)
		local := strings.ToLower(f.LocalName)

		if name != "" && strings.Contains(lower, name) {
			matched = append(matched, f)
			continue
		}
		if local != "" && strings.Contains(lower, local) {
			matched = append(matched, f)
			continue
		}
		for _, w := range words {
			if utf8.RuneCountInString(w) <= 3 {
				continue
			}
			if strings.Contains(name, w) || (local != "" && strings.Contains(local, w)) {
				matched = append(matched, f)
				break
			}
		}
	}
	return matched
}
