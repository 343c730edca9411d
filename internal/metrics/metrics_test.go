package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCollector_Counters(t *testing.T) {
	c := New(zap.NewNop())

	c.ObserveCommand("ask", time.Now(), nil)
	c.ObserveCommand("ask", time.Now(), errors.New("boom"))
	c.RecommendationServed("")
	c.MealPlanGenerated(true, errors.New("no suitable foods"))
	c.QuestionAnswered("safety_check", "high")
	c.BackendFallback("remote", errors.New("timeout"))
	c.CacheResult(true)
	c.CacheResult(false)
	c.CatalogUpdated(3, 40)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.commandsTotal.WithLabelValues("ask", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commandsTotal.WithLabelValues("ask", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.recommendationsTotal.WithLabelValues("any")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.mealPlansTotal.WithLabelValues("empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.backendFallbacks.WithLabelValues("remote")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheOperations.WithLabelValues("miss")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.catalogFoodsAdded))
	assert.Equal(t, 40.0, testutil.ToFloat64(c.catalogSize))
}

func TestCollector_SeparateRegistries(t *testing.T) {
	// two collectors must not collide on registration
	assert.NotPanics(t, func() {
		New(zap.NewNop())
		New(zap.NewNop())
	})
}

func TestCollector_Handler(t *testing.T) {
	c := New(zap.NewNop())
	c.QuestionAnswered("benefits", "medium")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `mamabot_questions_total{confidence="medium",intent="benefits"} 1`)
}
