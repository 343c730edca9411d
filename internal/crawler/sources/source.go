package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/bradykim7/mamabot/internal/models"
	"github.com/go-playground/validator/v10"
)

// Source defines the interface for all catalog sources
type Source interface {
	// Crawl fetches and parses foods from the source
	Crawl(ctx context.Context) ([]models.Food, error)

	// Name returns the name of the source
	Name() string
}

// Fetcher downloads a page.
type Fetcher interface {
	FetchURL(ctx context.Context, url string) ([]byte, error)
}

// foodRecord is the shape a source must produce before it becomes a catalog food.
type foodRecord struct {
	Name      string             `validate:"required,max=100"`
	Category  string             `validate:"required,oneof=grains vegetables fruits dairy proteins lentils dry_fruits traditional"`
	Diet      string             `validate:"omitempty,oneof=vegan vegetarian non-vegetarian"`
	Nutrients map[string]float64 `validate:"dive,keys,required,endkeys,gte=0"`
}

var validate = validator.New()

// checkFood normalizes and validates a parsed food.
func checkFood(f *models.Food) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Category = models.Category(strings.ToLower(strings.TrimSpace(string(f.Category))))

	rec := foodRecord{
		Name:      f.Name,
		Category:  string(f.Category),
		Diet:      string(f.Diet),
		Nutrients: f.Nutrients,
	}
	if err := validate.Struct(rec); err != nil {
		return fmt.Errorf("invalid food %q: %w", f.Name, err)
	}
	return nil
}
