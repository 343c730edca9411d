// Package cache keeps a snapshot of the food catalog in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bradykim7/mamabot/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const catalogKey = "mamabot:catalog:v1"

// ErrMiss is returned when no snapshot is cached.
var ErrMiss = errors.New("cache miss")

// SnapshotStore holds one serialized catalog snapshot.
type SnapshotStore interface {
	Load(ctx context.Context) ([]models.Food, error)
	Store(ctx context.Context, foods []models.Food) error
	Invalidate(ctx context.Context) error
}

// RedisSnapshots stores the catalog as a single JSON value with a TTL.
type RedisSnapshots struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisClient builds a client and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisSnapshots creates a snapshot store on an existing client.
func NewRedisSnapshots(client redis.Cmdable, ttl time.Duration) *RedisSnapshots {
	return &RedisSnapshots{client: client, ttl: ttl}
}

func (s *RedisSnapshots) Load(ctx context.Context) ([]models.Food, error) {
	raw, err := s.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog snapshot: %w", err)
	}
	var foods []models.Food
	if err := json.Unmarshal(raw, &foods); err != nil {
		return nil, fmt.Errorf("failed to decode catalog snapshot: %w", err)
	}
	return foods, nil
}

func (s *RedisSnapshots) Store(ctx context.Context, foods []models.Food) error {
	raw, err := json.Marshal(foods)
	if err != nil {
		return fmt.Errorf("failed to encode catalog snapshot: %w", err)
	}
	if err := s.client.Set(ctx, catalogKey, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write catalog snapshot: %w", err)
	}
	return nil
}

func (s *RedisSnapshots) Invalidate(ctx context.Context) error {
	if err := s.client.Del(ctx, catalogKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog snapshot: %w", err)
	}
	return nil
}

// Source is the authoritative catalog.
type Source interface {
	ListFoods(ctx context.Context, filter models.FoodFilter) ([]models.Food, error)
}

// HitRecorder counts cache outcomes.
type HitRecorder interface {
	CacheResult(hit bool)
}

// CachedCatalog serves filtered listings from the snapshot and reloads it from the source on a miss.
// Cache errors are logged and the source answers directly.
type CachedCatalog struct {
	source    Source
	snapshots SnapshotStore
	recorder  HitRecorder
	log       *zap.Logger
}

// NewCachedCatalog wraps source with a snapshot cache. recorder may be nil.
func NewCachedCatalog(source Source, snapshots SnapshotStore, recorder HitRecorder, log *zap.Logger) *CachedCatalog {
	return &CachedCatalog{
		source:    source,
		snapshots: snapshots,
		recorder:  recorder,
		log:       log.Named("catalog-cache"),
	}
}

// ListFoods filters the full cached catalog in memory, preserving source order.
func (c *CachedCatalog) ListFoods(ctx context.Context, filter models.FoodFilter) ([]models.Food, error) {
	all, err := c.snapshots.Load(ctx)
	switch {
	case err == nil:
		c.record(true)
	case errors.Is(err, ErrMiss):
		c.record(false)
		all, err = c.source.ListFoods(ctx, models.FoodFilter{})
		if err != nil {
			return nil, err
		}
		if err := c.snapshots.Store(ctx, all); err != nil {
			c.log.Warn("Failed to store catalog snapshot", zap.Error(err))
		}
	default:
		c.record(false)
		c.log.Warn("Catalog cache unavailable, reading source", zap.Error(err))
		return c.source.ListFoods(ctx, filter)
	}

	out := make([]models.Food, 0, len(all))
	for i := range all {
		if filter.Match(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// Invalidate drops the snapshot so the next listing reloads it.
func (c *CachedCatalog) Invalidate(ctx context.Context) error {
	return c.snapshots.Invalidate(ctx)
}

func (c *CachedCatalog) record(hit bool) {
	if c.recorder != nil {
		c.recorder.CacheResult(hit)
	}
}
