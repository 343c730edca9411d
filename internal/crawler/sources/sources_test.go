package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/bradykim7/mamabot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pageFetcher struct {
	body []byte
	err  error
	url  string
}

func (f *pageFetcher) FetchURL(_ context.Context, url string) ([]byte, error) {
	f.url = url
	return f.body, f.err
}

const catalogPage = `<html><body>
<table class="catalog">
  <tr>
    <th>Name</th><th>Local  Name</th><th>Category</th><th>Region</th><th>Diet</th>
    <th>Nutrients</th><th>Trimesters</th><th>Benefits</th>
  </tr>
  <tr>
    <td>Ragi</td><td>Nachni</td><td>Grains</td><td>South India</td><td>vegan</td>
    <td>calcium=344; iron=3.9; dietary fiber=11.5</td><td>all</td><td>Rich in calcium</td>
  </tr>
  <tr>
    <td>Pineapple</td><td>Ananas</td><td>fruits</td><td>All India</td><td></td>
    <td>vitamin_c=47.8</td><td>3</td><td>Vitamin C</td>
  </tr>
  <tr>
    <td>Mystery</td><td></td><td>snacks</td><td></td><td></td><td></td><td></td><td></td>
  </tr>
  <tr>
    <td>Broken</td><td></td><td>fruits</td><td></td><td></td><td>iron</td><td></td><td></td>
  </tr>
  <tr>
    <td>Chicken</td><td></td><td>proteins</td><td></td><td>carnivore</td><td>protein=27</td><td></td><td></td>
  </tr>
</table>
</body></html>`

func TestSeedSource_Crawl(t *testing.T) {
	src := NewSeedSource(zap.NewNop())
	assert.Equal(t, "seed", src.Name())

	foods, err := src.Crawl(context.Background())
	require.NoError(t, err)
	require.Len(t, foods, 15)

	byName := map[string]models.Food{}
	for _, f := range foods {
		assert.Equal(t, "seed", f.Source)
		assert.NotEmpty(t, f.Nutrients, f.Name)
		byName[f.Name] = f
	}

	papaya := byName["Papaya"]
	assert.False(t, papaya.Suitability.SafeFor(1))
	assert.True(t, papaya.Suitability.SafeFor(3))
	assert.Equal(t, models.DietNonVegetarian, byName["Eggs"].Diet)
	assert.Equal(t, models.DietVegetarian, byName["Paneer"].Diet)
	assert.Equal(t, models.CategoryDryFruits, byName["Almonds"].Category)
}

func TestSeedSource_SkipsInvalidEntries(t *testing.T) {
	src := NewSeedSource(zap.NewNop())

	foods, err := src.parse([]byte(`[
		{"name": "Millet", "category": "grains", "nutrients": {"iron": 3}},
		{"name": "", "category": "grains"},
		{"name": "Chalk", "category": "minerals"},
		{"name": "Salt", "category": "traditional", "nutrients": {"sodium": -1}}
	]`))
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Millet", foods[0].Name)

	_, err = src.parse([]byte(`{not json`))
	assert.Error(t, err)
}

func TestHTMLTableSource_Crawl(t *testing.T) {
	fetcher := &pageFetcher{body: []byte(catalogPage)}
	src := NewHTMLTableSource(fetcher, "https://example.org/foods", zap.NewNop())

	foods, err := src.Crawl(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/foods", fetcher.url)
	require.Len(t, foods, 2)

	ragi := foods[0]
	assert.Equal(t, "Ragi", ragi.Name)
	assert.Equal(t, "Nachni", ragi.LocalName)
	assert.Equal(t, models.CategoryGrains, ragi.Category)
	assert.Equal(t, models.DietVegan, ragi.Diet)
	assert.Equal(t, "html", ragi.Source)
	assert.Equal(t, models.Nutrients{"calcium": 344, "iron": 3.9, "dietary_fiber": 11.5}, ragi.Nutrients)
	assert.True(t, ragi.Suitability.AllTrimesters)
	assert.False(t, ragi.UpdatedAt.IsZero())

	pineapple := foods[1]
	assert.Empty(t, pineapple.Diet)
	assert.False(t, pineapple.Suitability.SafeFor(1))
	assert.False(t, pineapple.Suitability.SafeFor(2))
	assert.True(t, pineapple.Suitability.SafeFor(3))
}

func TestHTMLTableSource_Errors(t *testing.T) {
	src := NewHTMLTableSource(&pageFetcher{err: errors.New("connection refused")}, "http://x", zap.NewNop())
	_, err := src.Crawl(context.Background())
	assert.ErrorContains(t, err, "connection refused")

	src = NewHTMLTableSource(&pageFetcher{body: []byte("<p>nothing here</p>")}, "http://x", zap.NewNop())
	_, err = src.Crawl(context.Background())
	assert.ErrorContains(t, err, "table not found")

	src = NewHTMLTableSource(&pageFetcher{body: []byte("<table><tr><th>Food</th></tr></table>")}, "http://x", zap.NewNop())
	_, err = src.Crawl(context.Background())
	assert.ErrorContains(t, err, "no name column")
}

func TestParseTrimesters(t *testing.T) {
	assert.True(t, parseTrimesters("").IsEmpty())

	s := parseTrimesters("2, 3")
	assert.False(t, s.SafeFor(1))
	assert.True(t, s.SafeFor(2))
	assert.True(t, s.SafeFor(3))
	assert.False(t, s.AllTrimesters)
}
