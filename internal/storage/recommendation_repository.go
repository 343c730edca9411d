package storage

import (
	"context"
	"fmt"

	"github.com/bradykim7/mamabot/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// RecommendationRepository stores what was recommended to whom
type RecommendationRepository struct {
	db  *MongoDB
	log *zap.Logger
}

// NewRecommendationRepository creates a new recommendation repository
func NewRecommendationRepository(db *MongoDB, log *zap.Logger) *RecommendationRepository {
	return &RecommendationRepository{db: db, log: log.Named("recommendation-repository")}
}

// SaveRecommendation inserts a recommendation; records are never updated
func (r *RecommendationRepository) SaveRecommendation(ctx context.Context, rec *models.Recommendation) error {
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	if _, err := r.db.Collection(recommendationsCollection).InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert recommendation: %w", err)
	}
	r.log.Debug("Saved recommendation",
		zap.String("user_id", rec.UserID),
		zap.Int("foods", len(rec.FoodIDs)))
	return nil
}

// ListRecommendations returns the user's recommendations, newest first
func (r *RecommendationRepository) ListRecommendations(ctx context.Context, userID string, limit int) ([]models.Recommendation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.db.Collection(recommendationsCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendations: %w", err)
	}
	defer cursor.Close(ctx)

	var recs []models.Recommendation
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}
	return recs, nil
}
