package models

import (
	"strings"
	"time"
)

// HealthConditions holds the screening flags a user has declared.
type HealthConditions struct {
	Allergies    []string `bson:"allergies,omitempty" json:"allergies,omitempty"`
	Diabetes     bool     `bson:"diabetes" json:"diabetes"`
	Hypertension bool     `bson:"hypertension" json:"hypertension"`
}

// UserProfile is keyed by the Discord user id.
type UserProfile struct {
	UserID            string           `bson:"_id" json:"user_id"`
	Username          string           `bson:"username,omitempty" json:"username,omitempty"`
	Trimester         int              `bson:"trimester" json:"trimester"`
	DueDate           *time.Time       `bson:"due_date,omitempty" json:"due_date,omitempty"`
	DietaryPreference Diet             `bson:"dietary_preference" json:"dietary_preference"`
	Health            HealthConditions `bson:"health" json:"health"`
	CreatedAt         time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time        `bson:"updated_at" json:"updated_at"`
}

// NewUserProfile returns the default profile: first trimester, vegetarian, no conditions.
func NewUserProfile(userID, username string) *UserProfile {
	now := time.Now()
	return &UserProfile{
		UserID:            userID,
		Username:          username,
		Trimester:         1,
		DietaryPreference: DietVegetarian,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// AddAllergies merges comma separated allergens, ignoring blanks and duplicates.
func (h *HealthConditions) AddAllergies(raw string) {
	for _, a := range strings.Split(raw, ",") {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		dup := false
		for _, existing := range h.Allergies {
			if strings.EqualFold(existing, a) {
				dup = true
				break
			}
		}
		if !dup {
			h.Allergies = append(h.Allergies, a)
		}
	}
}
