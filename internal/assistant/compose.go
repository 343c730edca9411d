package assistant

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bradykim7/mamabot/internal/models"
)

const (
	multiFoodLimit = 3
	excerptLength  = 100
)

// hidden from nutrient listings
var nonNumericNutrients = map[string]bool{"probiotics": true, "antioxidants": true}

// Compose renders the answer text for an intent and the foods mentioned.
func Compose(intent Intent, foods []models.Food, trimester int) string {
	switch len(foods) {
	case 0:
		return generalAnswer(intent, trimester)
	case 1:
		return singleFoodAnswer(&foods[0], intent, trimester)
	default:
		return multiFoodAnswer(foods, intent, trimester)
	}
}

func generalAnswer(intent Intent, trimester int) string {
	switch intent {
	case IntentSafetyCheck:
		return fmt.Sprintf("During your trimester %d, it's important to focus on a balanced diet. "+
			"Could you please specify which food item you'd like to know about?", trimester)
	case IntentBenefits:
		return "A healthy pregnancy diet includes fruits, vegetables, whole grains, dairy, and proteins. " +
			"Each food group offers unique benefits for you and your baby."
	case IntentNutritionalInfo:
		return fmt.Sprintf("In trimester %d, focus on foods rich in iron, calcium, folic acid, and protein. "+
			"Would you like information about any specific food?", trimester)
	default:
		return "I'm here to help with your pregnancy nutrition questions! You can ask me about specific foods, " +
			"their safety, benefits, or preparation methods."
	}
}

func heading(f *models.Food) string {
	if f.LocalName != "" {
		return fmt.Sprintf("**%s** (%s)", f.Name, f.LocalName)
	}
	return fmt.Sprintf("**%s**", f.Name)
}

func singleFoodAnswer(f *models.Food, intent Intent, trimester int) string {
	var b strings.Builder
	b.WriteString(heading(f))
	b.WriteString("\n\n")

	safe := f.Suitability.SafeFor(trimester)
	lowerName := strings.ToLower(f.Name)

	switch intent {
	case IntentSafetyCheck:
		if safe {
			fmt.Fprintf(&b, "✅ Yes, %s is generally safe during trimester %d.\n\n", lowerName, trimester)
			if f.Precautions != "" {
				fmt.Fprintf(&b, "**Precautions:** %s\n\n", f.Precautions)
			}
		} else {
			fmt.Fprintf(&b, "⚠️ It's recommended to avoid or limit %s during trimester %d.\n\n", lowerName, trimester)
			if f.Precautions != "" {
				fmt.Fprintf(&b, "**Reason:** %s\n\n", f.Precautions)
			}
		}
	case IntentBenefits:
		if f.Benefits != "" {
			fmt.Fprintf(&b, "**Benefits:**\n%s\n\n", f.Benefits)
		}
	case IntentNutritionalInfo:
		if len(f.Nutrients) > 0 {
			b.WriteString("**Nutritional Information (per 100g):**\n")
			for _, n := range sortedNutrients(f.Nutrients) {
				if nonNumericNutrients[n] {
					continue
				}
				fmt.Fprintf(&b, "- %s: %s\n", titleNutrient(n), formatAmount(f.Nutrients[n]))
			}
			b.WriteString("\n")
		}
	case IntentPreparation:
		if f.PreparationTips != "" {
			fmt.Fprintf(&b, "**Preparation Tips:**\n%s\n\n", f.PreparationTips)
		}
	case IntentPrecautions:
		if f.Precautions != "" {
			fmt.Fprintf(&b, "**Precautions:**\n%s\n\n", f.Precautions)
		}
	default:
		if f.Benefits != "" {
			fmt.Fprintf(&b, "**Benefits:** %s\n\n", f.Benefits)
		}
		if safe {
			fmt.Fprintf(&b, "✅ Safe for trimester %d\n", trimester)
		} else {
			fmt.Fprintf(&b, "⚠️ Use caution in trimester %d\n", trimester)
		}
	}
	return strings.TrimSpace(b.String())
}

func multiFoodAnswer(foods []models.Food, intent Intent, trimester int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I found information about %d foods:\n\n", len(foods))

	for i := 0; i < len(foods) && i < multiFoodLimit; i++ {
		f := &foods[i]
		fmt.Fprintf(&b, "%d. %s", i+1, heading(f))
		if f.Suitability.SafeFor(trimester) {
			b.WriteString(" - ✅ Safe for your trimester\n")
		} else {
			b.WriteString(" - ⚠️ Use caution\n")
		}

		switch {
		case intent == IntentBenefits && f.Benefits != "":
			fmt.Fprintf(&b, "   %s...\n", excerpt(f.Benefits, excerptLength))
		case intent == IntentNutritionalInfo:
			keys := sortedNutrients(f.Nutrients)
			if len(keys) > 2 {
				keys = keys[:2]
			}
			for _, n := range keys {
				fmt.Fprintf(&b, "   - %s: %s\n", n, formatAmount(f.Nutrients[n]))
			}
		}
		b.WriteString("\n")
	}

	if len(foods) > multiFoodLimit {
		fmt.Fprintf(&b, "...and %d more. Please ask about a specific food for detailed information.\n", len(foods)-multiFoodLimit)
	}
	return strings.TrimSpace(b.String())
}

func sortedNutrients(n models.Nutrients) []string {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// titleNutrient turns "folic_acid" into "Folic Acid".
func titleNutrient(n string) string {
	parts := strings.Split(n, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// excerpt cuts s to at most n runes.
func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
