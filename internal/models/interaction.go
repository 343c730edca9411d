package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InteractionKind is the type of action a user took.
type InteractionKind string

const (
	InteractionView     InteractionKind = "view"
	InteractionLike     InteractionKind = "like"
	InteractionDislike  InteractionKind = "dislike"
	InteractionBookmark InteractionKind = "bookmark"

	// Kinds without a food attached
	InteractionSearch             InteractionKind = "search"
	InteractionChatbotQuery       InteractionKind = "chatbot_query"
	InteractionMealPlanGeneration InteractionKind = "meal_plan_generation"
)

// Interaction is an append-only record of a user action.
type Interaction struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	UserID           string              `bson:"user_id" json:"user_id"`
	Kind             InteractionKind     `bson:"kind" json:"kind"`
	FoodID           *primitive.ObjectID `bson:"food_id,omitempty" json:"food_id,omitempty"`
	RecommendationID *primitive.ObjectID `bson:"recommendation_id,omitempty" json:"recommendation_id,omitempty"`
	Details          map[string]any      `bson:"details,omitempty" json:"details,omitempty"`
	Timestamp        time.Time           `bson:"timestamp" json:"timestamp"`
}

// NewFoodInteraction records feedback against a single food.
func NewFoodInteraction(userID string, kind InteractionKind, foodID primitive.ObjectID) *Interaction {
	return &Interaction{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Kind:      kind,
		FoodID:    &foodID,
		Timestamp: time.Now(),
	}
}

// NewEventInteraction records a non-food event such as a question or a plan request.
func NewEventInteraction(userID string, kind InteractionKind, details map[string]any) *Interaction {
	return &Interaction{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Kind:      kind,
		Details:   details,
		Timestamp: time.Now(),
	}
}
