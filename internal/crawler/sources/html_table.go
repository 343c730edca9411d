package sources

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/bradykim7/mamabot/internal/models"
	"go.uber.org/zap"
)

// HTMLTableSource reads foods from an HTML page holding a catalog table.
// Columns are located by their header text, so their order does not matter:
//
//	Name | Local Name | Category | Region | Diet | Nutrients | Trimesters | Benefits | Precautions | Preparation
//
// Nutrients are written as "iron=2.7; protein=3". Trimesters lists the safe
// trimesters ("1,2", "3") or "all".
type HTMLTableSource struct {
	fetcher Fetcher
	url     string
	log     *zap.Logger
}

// NewHTMLTableSource creates a source for the page at url
func NewHTMLTableSource(fetcher Fetcher, url string, log *zap.Logger) *HTMLTableSource {
	return &HTMLTableSource{
		fetcher: fetcher,
		url:     url,
		log:     log.Named("html-source"),
	}
}

func (s *HTMLTableSource) Name() string {
	return "html"
}

// Crawl fetches the page and parses every catalog row
func (s *HTMLTableSource) Crawl(ctx context.Context) ([]models.Food, error) {
	s.log.Info("Starting catalog page crawl", zap.String("url", s.url))

	content, err := s.fetcher.FetchURL(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog page: %w", err)
	}

	foods, err := s.parse(content)
	if err != nil {
		return nil, err
	}

	s.log.Info("Catalog page crawl completed", zap.Int("foods_found", len(foods)))
	return foods, nil
}

func (s *HTMLTableSource) parse(content []byte) ([]models.Food, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("catalog table not found")
	}

	columns := map[string]int{}
	table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		key := strings.ToLower(strings.Join(strings.Fields(th.Text()), " "))
		columns[key] = i
	})
	if _, ok := columns["name"]; !ok {
		return nil, fmt.Errorf("catalog table has no name column")
	}

	now := time.Now()
	var foods []models.Food
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= cells.Length() {
				return ""
			}
			return strings.TrimSpace(cells.Eq(idx).Text())
		}

		food, err := s.parseRow(cell)
		if err != nil {
			s.log.Debug("Skipping catalog row", zap.Int("row", i), zap.Error(err))
			return
		}
		food.UpdatedAt = now
		foods = append(foods, *food)
	})

	return foods, nil
}

func (s *HTMLTableSource) parseRow(cell func(string) string) (*models.Food, error) {
	nutrients, err := parseNutrients(cell("nutrients"))
	if err != nil {
		return nil, err
	}

	food := &models.Food{
		Name:            cell("name"),
		LocalName:       cell("local name"),
		Category:        models.Category(cell("category")),
		Nutrients:       nutrients,
		Suitability:     parseTrimesters(cell("trimesters")),
		Region:          cell("region"),
		Benefits:        cell("benefits"),
		Precautions:     cell("precautions"),
		PreparationTips: cell("preparation"),
		Source:          s.Name(),
	}
	if raw := cell("diet"); raw != "" {
		diet, ok := models.ParseDiet(raw)
		if !ok {
			return nil, fmt.Errorf("unknown diet %q", raw)
		}
		food.Diet = diet
	}

	if err := checkFood(food); err != nil {
		return nil, err
	}
	return food, nil
}

// parseNutrients reads "iron=2.7; protein=3" into a nutrient map.
func parseNutrients(raw string) (models.Nutrients, error) {
	out := models.Nutrients{}
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("malformed nutrient %q", part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed nutrient value %q: %w", part, err)
		}
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
		out[key] = v
	}
	return out, nil
}

// parseTrimesters reads "all" or a comma list of safe trimesters.
// An empty cell leaves every trimester unspecified.
func parseTrimesters(raw string) models.TrimesterSuitability {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return models.TrimesterSuitability{}
	}
	if raw == "all" {
		return models.Suitable(true, true, true, true)
	}

	var safe [4]bool
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err == nil && n >= 1 && n <= 3 {
			safe[n] = true
		}
	}
	return models.Suitable(safe[1], safe[2], safe[3], false)
}
