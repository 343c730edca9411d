package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category는 음식 분류를 나타냅니다
type Category string

const (
	CategoryGrains      Category = "grains"
	CategoryVegetables  Category = "vegetables"
	CategoryFruits      Category = "fruits"
	CategoryDairy       Category = "dairy"
	CategoryProteins    Category = "proteins"
	CategoryLentils     Category = "lentils"
	CategoryDryFruits   Category = "dry_fruits"
	CategoryTraditional Category = "traditional"
)

// Diet는 음식의 식단 분류 태그입니다. 비어 있으면 분류되지 않은 음식입니다
type Diet string

const (
	DietVegan         Diet = "vegan"
	DietVegetarian    Diet = "vegetarian"
	DietNonVegetarian Diet = "non-vegetarian"
)

// ParseDiet normalizes user input such as "non_vegetarian" or "Non Veg".
func ParseDiet(s string) (Diet, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	switch norm {
	case "vegan":
		return DietVegan, true
	case "vegetarian", "veg":
		return DietVegetarian, true
	case "non-vegetarian", "non-veg", "nonveg", "nonvegetarian":
		return DietNonVegetarian, true
	}
	return "", false
}

// Nutrients는 100g 기준 영양소 함량입니다 (예: "iron" -> 2.7)
type Nutrients map[string]float64

// TrimesterSuitability는 임신 분기별 적합성 플래그입니다.
// nil 포인터는 "명시되지 않음"을 의미합니다
type TrimesterSuitability struct {
	Trimester1    *bool `bson:"trimester_1,omitempty" json:"trimester_1,omitempty"`
	Trimester2    *bool `bson:"trimester_2,omitempty" json:"trimester_2,omitempty"`
	Trimester3    *bool `bson:"trimester_3,omitempty" json:"trimester_3,omitempty"`
	AllTrimesters bool  `bson:"all_trimesters,omitempty" json:"all_trimesters,omitempty"`
}

// Lookup returns the explicit flag for a trimester and whether it was set.
func (s TrimesterSuitability) Lookup(trimester int) (value bool, ok bool) {
	var p *bool
	switch trimester {
	case 1:
		p = s.Trimester1
	case 2:
		p = s.Trimester2
	case 3:
		p = s.Trimester3
	}
	if p == nil {
		return false, false
	}
	return *p, true
}

// SafeFor reports the trimester verdict, defaulting to safe when the flag is absent.
func (s TrimesterSuitability) SafeFor(trimester int) bool {
	v, ok := s.Lookup(trimester)
	if !ok {
		return true
	}
	return v
}

// IsEmpty reports whether no flag at all has been set.
func (s TrimesterSuitability) IsEmpty() bool {
	return s.Trimester1 == nil && s.Trimester2 == nil && s.Trimester3 == nil && !s.AllTrimesters
}

// Suitable builds a suitability value from explicit per-trimester flags.
func Suitable(t1, t2, t3, all bool) TrimesterSuitability {
	return TrimesterSuitability{
		Trimester1:    &t1,
		Trimester2:    &t2,
		Trimester3:    &t3,
		AllTrimesters: all,
	}
}

// Food는 카탈로그의 음식 항목을 나타냅니다
type Food struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name            string               `bson:"name" json:"name"`
	LocalName       string               `bson:"local_name,omitempty" json:"local_name,omitempty"`
	Category        Category             `bson:"category" json:"category"`
	Nutrients       Nutrients            `bson:"nutrients,omitempty" json:"nutrients,omitempty"`
	Suitability     TrimesterSuitability `bson:"suitability" json:"suitability"`
	Region          string               `bson:"region,omitempty" json:"region,omitempty"`
	Diet            Diet                 `bson:"diet,omitempty" json:"diet,omitempty"`
	Benefits        string               `bson:"benefits,omitempty" json:"benefits,omitempty"`
	Precautions     string               `bson:"precautions,omitempty" json:"precautions,omitempty"`
	PreparationTips string               `bson:"preparation_tips,omitempty" json:"preparation_tips,omitempty"`
	Source          string               `bson:"source,omitempty" json:"source,omitempty"`
	UpdatedAt       time.Time            `bson:"updated_at" json:"updated_at"`
}

// NewFood는 새로운 음식을 생성합니다
func NewFood(name string, category Category) *Food {
	return &Food{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Category:  category,
		Nutrients: Nutrients{},
		UpdatedAt: time.Now(),
	}
}

// DisplayName returns "English (Local)" or just the English name.
func (f *Food) DisplayName() string {
	if f.LocalName != "" {
		return fmt.Sprintf("%s (%s)", f.Name, f.LocalName)
	}
	return f.Name
}

// String returns a string representation of the food
func (f *Food) String() string {
	return fmt.Sprintf("%s [%s]", f.DisplayName(), f.Category)
}

// FoodIDs returns the ids of the given foods in order.
func FoodIDs(foods []Food) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(foods))
	for _, f := range foods {
		ids = append(ids, f.ID)
	}
	return ids
}

// FoodFilter narrows a catalog listing. Zero values match everything.
type FoodFilter struct {
	Region     string
	Categories []Category
}

// Match reports whether a food passes the filter. Region is an exact match.
func (ff FoodFilter) Match(f *Food) bool {
	if ff.Region != "" && f.Region != ff.Region {
		return false
	}
	if len(ff.Categories) == 0 {
		return true
	}
	for _, c := range ff.Categories {
		if f.Category == c {
			return true
		}
	}
	return false
}
