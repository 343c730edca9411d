package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/bradykim7/mamabot/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// FoodRepository handles persistence for the food catalog
type FoodRepository struct {
	db  *MongoDB
	log *zap.Logger
}

// NewFoodRepository creates a new food repository
func NewFoodRepository(db *MongoDB, log *zap.Logger) *FoodRepository {
	return &FoodRepository{
		db:  db,
		log: log.Named("food-repository"),
	}
}

// foodFilterDoc translates a catalog filter into a query document.
func foodFilterDoc(f models.FoodFilter) bson.M {
	filter := bson.M{}
	if f.Region != "" {
		filter["region"] = f.Region
	}
	if len(f.Categories) > 0 {
		filter["category"] = bson.M{"$in": f.Categories}
	}
	return filter
}

// ListFoods returns matching foods in insertion order
func (r *FoodRepository) ListFoods(ctx context.Context, filter models.FoodFilter) ([]models.Food, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.db.Collection(foodsCollection).Find(ctx, foodFilterDoc(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find foods: %w", err)
	}
	defer cursor.Close(ctx)

	var foods []models.Food
	if err := cursor.All(ctx, &foods); err != nil {
		return nil, fmt.Errorf("failed to decode foods: %w", err)
	}
	return foods, nil
}

// FindByName looks a food up by English or local name, case-insensitively
func (r *FoodRepository) FindByName(ctx context.Context, name string) (*models.Food, error) {
	pattern := nameRegex(name)
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"local_name": pattern},
	}}

	var food models.Food
	err := r.db.Collection(foodsCollection).FindOne(ctx, filter).Decode(&food)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("food %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find food: %w", err)
	}
	return &food, nil
}

// Search returns foods whose English name, local name or benefits contain the query, ignoring case
func (r *FoodRepository) Search(ctx context.Context, query string, limit int) ([]models.Food, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.db.Collection(foodsCollection).Find(ctx, searchFilterDoc(query), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search foods: %w", err)
	}
	defer cursor.Close(ctx)

	var foods []models.Food
	if err := cursor.All(ctx, &foods); err != nil {
		return nil, fmt.Errorf("failed to decode foods: %w", err)
	}
	return foods, nil
}

func searchFilterDoc(query string) bson.M {
	pattern := bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	return bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"local_name": pattern},
		bson.M{"benefits": pattern},
	}}
}

// Upsert inserts or replaces a food keyed by its English name.
// It reports whether the food was newly inserted.
func (r *FoodRepository) Upsert(ctx context.Context, food *models.Food) (bool, error) {
	food.UpdatedAt = time.Now()

	set := bson.M{
		"local_name":       food.LocalName,
		"category":         food.Category,
		"nutrients":        food.Nutrients,
		"suitability":      food.Suitability,
		"region":           food.Region,
		"diet":             food.Diet,
		"benefits":         food.Benefits,
		"precautions":      food.Precautions,
		"preparation_tips": food.PreparationTips,
		"source":           food.Source,
		"updated_at":       food.UpdatedAt,
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"name": food.Name},
	}

	res, err := r.db.Collection(foodsCollection).UpdateOne(ctx,
		bson.M{"name": food.Name}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("failed to upsert food %q: %w", food.Name, err)
	}

	created := res.UpsertedCount > 0
	r.log.Debug("Upserted food", zap.String("name", food.Name), zap.Bool("created", created))
	return created, nil
}

// Count returns the number of catalog foods
func (r *FoodRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.db.Collection(foodsCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count foods: %w", err)
	}
	return n, nil
}

// nameRegex matches the whole value, ignoring case.
func nameRegex(s string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(s) + "$", "$options": "i"}
}
