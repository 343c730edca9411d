package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/bradykim7/mamabot/pkg/config"
)

const (
	connectTimeout = 10 * time.Second

	foodsCollection           = "foods"
	usersCollection           = "users"
	interactionsCollection    = "interactions"
	recommendationsCollection = "recommendations"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// MongoDB represents a MongoDB connection
type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
}

// NewMongoDB connects, pings and selects the configured database
func NewMongoDB(cfg *config.Config, log *zap.Logger) (*MongoDB, error) {
	logger := log.Named("mongodb")

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDBURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	m := &MongoDB{
		client: client,
		db:     client.Database(cfg.MongoDBDatabase),
		log:    logger,
	}
	if err := m.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDBDatabase))
	return m, nil
}

// Disconnect closes the MongoDB connection
func (m *MongoDB) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	m.log.Info("Closing MongoDB connection")
	return m.client.Disconnect(ctx)
}

// Collection returns a MongoDB collection
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Ping checks the server is reachable.
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the indexes the repositories rely on. Failures are logged, not fatal.
func (m *MongoDB) EnsureIndexes(ctx context.Context) {
	indexes := map[string][]mongo.IndexModel{
		foodsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "region", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		interactionsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "food_id", Value: 1}, {Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
		recommendationsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for name, idx := range indexes {
		if _, err := m.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			m.log.Warn("Failed to create indexes", zap.String("collection", name), zap.Error(err))
		}
	}
}
