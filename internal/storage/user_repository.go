package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bradykim7/mamabot/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// UserRepository stores user profiles keyed by Discord user id
type UserRepository struct {
	db  *MongoDB
	log *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *MongoDB, log *zap.Logger) *UserRepository {
	return &UserRepository{db: db, log: log.Named("user-repository")}
}

// Get returns the profile or ErrNotFound
func (r *UserRepository) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	var user models.UserProfile
	err := r.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// GetOrCreate returns the stored profile, creating the default one on first contact
func (r *UserRepository) GetOrCreate(ctx context.Context, userID, username string) (*models.UserProfile, error) {
	user, err := r.Get(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	user = models.NewUserProfile(userID, username)
	if err := r.Save(ctx, user); err != nil {
		return nil, err
	}
	r.log.Info("Created user profile", zap.String("user_id", userID))
	return user, nil
}

// Save replaces the whole profile
func (r *UserRepository) Save(ctx context.Context, user *models.UserProfile) error {
	user.UpdatedAt = time.Now()
	_, err := r.db.Collection(usersCollection).ReplaceOne(ctx,
		bson.M{"_id": user.UserID}, user, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}
