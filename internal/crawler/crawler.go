// Package crawler keeps the food catalog in step with its sources.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bradykim7/mamabot/internal/crawler/sources"
	"github.com/bradykim7/mamabot/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FoodWriter persists catalog foods
type FoodWriter interface {
	Upsert(ctx context.Context, food *models.Food) (created bool, err error)
	Count(ctx context.Context) (int64, error)
}

// Invalidator drops cached catalog snapshots
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Recorder receives sync metrics
type Recorder interface {
	SourceSynced(source string, err error)
	CatalogUpdated(added int, total int64)
}

// NewFoodNotifier is told about foods that were not in the catalog before
type NewFoodNotifier interface {
	AnnounceNewFoods(ctx context.Context, foods []models.Food) error
}

// SyncStats tracks statistics about catalog syncs
type SyncStats struct {
	TotalFoods  int64                  `json:"total_foods"`
	NewFoods    int                    `json:"new_foods"`
	UpdatedFood int                    `json:"updated_foods"`
	LastRun     time.Time              `json:"last_run"`
	RunCount    int                    `json:"run_count"`
	LastError   string                 `json:"last_error,omitempty"`
	SourceStats map[string]SourceStats `json:"source_stats"`
}

// SourceStats tracks statistics for individual sources
type SourceStats struct {
	FoodsFound      int       `json:"foods_found"`
	LastRun         time.Time `json:"last_run"`
	LastRunDuration string    `json:"last_run_duration"`
	LastError       string    `json:"last_error,omitempty"`
	SuccessRate     float64   `json:"success_rate"` // 0-1
}

// Syncer pulls foods from every source and upserts them into the catalog
type Syncer struct {
	log      *zap.Logger
	sources  []sources.Source
	foods    FoodWriter
	cache    Invalidator
	recorder Recorder
	notifier NewFoodNotifier

	stats      SyncStats
	statsMutex sync.RWMutex
}

// Options holds the optional collaborators of a Syncer. Nil fields are skipped.
type Options struct {
	Cache    Invalidator
	Recorder Recorder
	Notifier NewFoodNotifier
}

// NewSyncer creates a syncer over the given sources
func NewSyncer(foods FoodWriter, srcs []sources.Source, opts Options, log *zap.Logger) *Syncer {
	return &Syncer{
		log:      log.Named("catalog-sync"),
		sources:  srcs,
		foods:    foods,
		cache:    opts.Cache,
		recorder: opts.Recorder,
		notifier: opts.Notifier,
		stats: SyncStats{
			SourceStats: make(map[string]SourceStats),
		},
	}
}

// Run executes a single sync of all sources. A failing source does not stop the
// others; its error is returned after the foods from healthy sources are stored.
func (s *Syncer) Run(ctx context.Context) error {
	s.log.Info("Starting catalog sync", zap.Int("sources", len(s.sources)))
	startTime := time.Now()

	s.statsMutex.Lock()
	s.stats.LastRun = startTime
	s.stats.RunCount++
	s.stats.NewFoods = 0
	s.stats.UpdatedFood = 0
	s.statsMutex.Unlock()

	results := make([][]models.Food, len(s.sources))
	crawlErrors := make([]error, len(s.sources))

	// source failures are collected per index; only a cancelled run aborts
	var g errgroup.Group
	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			foods, err := s.crawlSource(ctx, src)
			results[i] = foods
			crawlErrors[i] = err
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var newFoods []models.Food
	var storeErrors []error
	updated := 0
	seen := map[string]bool{}
	for _, foods := range results {
		for i := range foods {
			food := foods[i]
			// earlier sources win when two of them name the same food
			if seen[food.Name] {
				continue
			}
			seen[food.Name] = true

			if food.UpdatedAt.IsZero() {
				food.UpdatedAt = startTime
			}
			created, err := s.foods.Upsert(ctx, &food)
			if err != nil {
				s.log.Error("Failed to store food", zap.String("food", food.Name), zap.Error(err))
				storeErrors = append(storeErrors, fmt.Errorf("failed to store %s: %w", food.Name, err))
				continue
			}
			if created {
				s.log.Info("New food added", zap.String("food", food.Name), zap.String("source", food.Source))
				newFoods = append(newFoods, food)
			} else {
				updated++
			}
		}
	}

	total, err := s.foods.Count(ctx)
	if err != nil {
		s.log.Warn("Failed to count catalog", zap.Error(err))
	}

	if s.cache != nil && len(seen) > 0 {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("Failed to invalidate catalog cache", zap.Error(err))
		}
	}
	if s.recorder != nil {
		s.recorder.CatalogUpdated(len(newFoods), total)
	}

	if len(newFoods) > 0 && s.notifier != nil {
		if err := s.notifier.AnnounceNewFoods(ctx, newFoods); err != nil {
			s.log.Error("Failed to announce new foods", zap.Error(err))
			storeErrors = append(storeErrors, err)
		}
	}

	runErr := errors.Join(append(crawlErrors, storeErrors...)...)

	s.statsMutex.Lock()
	s.stats.TotalFoods = total
	s.stats.NewFoods = len(newFoods)
	s.stats.UpdatedFood = updated
	s.stats.LastError = ""
	if runErr != nil {
		s.stats.LastError = runErr.Error()
	}
	s.statsMutex.Unlock()

	s.log.Info("Catalog sync completed",
		zap.Int("new_foods", len(newFoods)),
		zap.Int("updated_foods", updated),
		zap.Int64("total_foods", total),
		zap.Duration("duration", time.Since(startTime)))

	return runErr
}

// crawlSource runs one source and records its stats. The error is wrapped with the source name.
func (s *Syncer) crawlSource(ctx context.Context, source sources.Source) ([]models.Food, error) {
	name := source.Name()
	started := time.Now()
	s.log.Info("Crawling source", zap.String("source", name))

	foods, err := source.Crawl(ctx)
	if s.recorder != nil {
		s.recorder.SourceSynced(name, err)
	}

	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	st, seen := s.stats.SourceStats[name]
	st.LastRun = time.Now()
	st.LastRunDuration = time.Since(started).String()

	result := 0.0
	if err == nil {
		result = 1
	}
	// weight previous success rate at 90%, new result at 10%
	if !seen {
		st.SuccessRate = result
	} else {
		st.SuccessRate = st.SuccessRate*0.9 + result*0.1
	}

	if err != nil {
		s.log.Error("Failed to crawl source", zap.String("source", name), zap.Error(err))
		st.LastError = err.Error()
		s.stats.SourceStats[name] = st
		return nil, fmt.Errorf("failed to crawl source %s: %w", name, err)
	}

	st.LastError = ""
	st.FoodsFound = len(foods)
	s.stats.SourceStats[name] = st

	s.log.Info("Crawled source successfully", zap.String("source", name), zap.Int("foods_found", len(foods)))
	return foods, nil
}

// StartScheduledRuns starts periodic syncs
func (s *Syncer) StartScheduledRuns(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("Starting scheduled catalog syncs", zap.Duration("interval", interval))

	// Run immediately
	if err := s.Run(ctx); err != nil {
		s.log.Error("Initial catalog sync failed", zap.Error(err))
	}

	for {
		select {
		case <-ticker.C:
			if err := s.Run(ctx); err != nil {
				s.log.Error("Scheduled catalog sync failed", zap.Error(err))
			}
		case <-ctx.Done():
			s.log.Info("Stopping scheduled catalog syncs")
			return
		}
	}
}

// GetStats returns a copy of the current sync statistics
func (s *Syncer) GetStats() SyncStats {
	s.statsMutex.RLock()
	defer s.statsMutex.RUnlock()

	out := s.stats
	out.SourceStats = make(map[string]SourceStats, len(s.stats.SourceStats))
	for k, v := range s.stats.SourceStats {
		out.SourceStats[k] = v
	}
	return out
}
