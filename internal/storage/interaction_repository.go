package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/bradykim7/mamabot/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// InteractionRepository is the append-only interaction log
type InteractionRepository struct {
	db  *MongoDB
	log *zap.Logger
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(db *MongoDB, log *zap.Logger) *InteractionRepository {
	return &InteractionRepository{db: db, log: log.Named("interaction-repository")}
}

// Append records an interaction
func (r *InteractionRepository) Append(ctx context.Context, in *models.Interaction) error {
	if in.ID.IsZero() {
		in.ID = primitive.NewObjectID()
	}
	if _, err := r.db.Collection(interactionsCollection).InsertOne(ctx, in); err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}
	r.log.Debug("Recorded interaction",
		zap.String("user_id", in.UserID),
		zap.String("kind", string(in.Kind)))
	return nil
}

// RecentForFood returns the user's latest interactions with a food, newest first
func (r *InteractionRepository) RecentForFood(ctx context.Context, userID string, foodID primitive.ObjectID, limit int) ([]models.Interaction, error) {
	return r.find(ctx, bson.M{"user_id": userID, "food_id": foodID}, limit)
}

// ListByUser returns the user's latest interactions of any kind, newest first
func (r *InteractionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Interaction, error) {
	return r.find(ctx, bson.M{"user_id": userID}, limit)
}

// ActivityCounts groups the user's whole log by kind and food. Recent counts only entries at or after since.
func (r *InteractionRepository) ActivityCounts(ctx context.Context, userID string, since time.Time) ([]models.ActivityCount, error) {
	cursor, err := r.db.Collection(interactionsCollection).Aggregate(ctx, activityPipeline(userID, since))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate interactions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.ActivityCount
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode activity counts: %w", err)
	}
	return out, nil
}

func activityPipeline(userID string, since time.Time) mongo.Pipeline {
	inWindow := bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$gte", Value: bson.A{"$timestamp", since}}}, 1, 0,
	}}}
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user_id", Value: userID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "kind", Value: "$kind"}, {Key: "food_id", Value: "$food_id"}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "recent", Value: bson.D{{Key: "$sum", Value: inWindow}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "kind", Value: "$_id.kind"},
			{Key: "food_id", Value: "$_id.food_id"},
			{Key: "total", Value: 1},
			{Key: "recent", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "recent", Value: -1}, {Key: "kind", Value: 1}}}},
	}
}

func (r *InteractionRepository) find(ctx context.Context, filter bson.M, limit int) ([]models.Interaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.db.Collection(interactionsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find interactions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Interaction
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode interactions: %w", err)
	}
	return out, nil
}
