package sources

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/bradykim7/mamabot/internal/models"
	"go.uber.org/zap"
)

//go:embed data/seed_foods.json
var seedFoods []byte

// SeedSource serves the catalog that ships with the binary
type SeedSource struct {
	log *zap.Logger
}

// NewSeedSource creates the built-in catalog source
func NewSeedSource(log *zap.Logger) *SeedSource {
	return &SeedSource{log: log.Named("seed-source")}
}

func (s *SeedSource) Name() string {
	return "seed"
}

// Crawl decodes the embedded catalog. Invalid entries are skipped.
func (s *SeedSource) Crawl(_ context.Context) ([]models.Food, error) {
	return s.parse(seedFoods)
}

func (s *SeedSource) parse(raw []byte) ([]models.Food, error) {
	var decoded []models.Food
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode seed catalog: %w", err)
	}

	foods := make([]models.Food, 0, len(decoded))
	for i := range decoded {
		f := decoded[i]
		if err := checkFood(&f); err != nil {
			s.log.Warn("Skipping seed food", zap.Error(err))
			continue
		}
		f.Source = s.Name()
		foods = append(foods, f)
	}

	s.log.Debug("Seed catalog loaded", zap.Int("foods", len(foods)))
	return foods, nil
}
