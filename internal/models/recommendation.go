package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recommendation is the persisted record of what was shown to a user.
type Recommendation struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string               `bson:"user_id" json:"user_id"`
	Trimester int                  `bson:"trimester" json:"trimester"`
	FoodIDs   []primitive.ObjectID `bson:"food_ids" json:"food_ids"`
	Reason    string               `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
}

// DefaultReason is the reason string stored when the caller gives none.
func DefaultReason(trimester int) string {
	return fmt.Sprintf("Personalized recommendations for trimester %d", trimester)
}

// NewRecommendation creates a recommendation with a fresh id and timestamp.
func NewRecommendation(userID string, trimester int, foodIDs []primitive.ObjectID, reason string) *Recommendation {
	if reason == "" {
		reason = DefaultReason(trimester)
	}
	return &Recommendation{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Trimester: trimester,
		FoodIDs:   foodIDs,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
}
