// Package metrics exposes Prometheus counters for the bot and the catalog sync.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Collector holds the process metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry
	logger   *zap.Logger

	commandsTotal        *prometheus.CounterVec
	commandDuration      *prometheus.HistogramVec
	recommendationsTotal *prometheus.CounterVec
	mealPlansTotal       *prometheus.CounterVec
	questionsTotal       *prometheus.CounterVec
	backendFallbacks     *prometheus.CounterVec
	cacheOperations      *prometheus.CounterVec
	catalogSyncTotal     *prometheus.CounterVec
	catalogFoodsAdded    prometheus.Counter
	catalogSize          prometheus.Gauge
}

// New registers all metrics on a fresh registry.
func New(logger *zap.Logger) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Collector{
		registry: reg,
		logger:   logger.Named("metrics"),

		commandsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mamabot_commands_total",
			Help: "Bot commands handled, by command and outcome",
		}, []string{"command", "outcome"}),
		commandDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mamabot_command_duration_seconds",
			Help:    "Bot command handling time",
			Buckets: prometheus.DefBuckets,
		}, []string{"command"}),
		recommendationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mamabot_recommendations_total",
			Help: "Recommendation sets produced, by meal slot",
		}, []string{"slot"}),
		mealPlansTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mamabot_meal_plans_total",
			Help: "Meal plan requests, by outcome",
		}, []string{"outcome"}),
		questionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mamabot_questions_total",
			Help: "Questions answered, by intent and confidence",
		}, []string{"intent", "confidence"}),
		backendFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mamabot_nlu_fallbacks_total",
			Help: "NLU backend calls that failed and fell through",
		}, []string{"backend"}),
		cacheOperations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mamabot_catalog_cache_total",
			Help: "Catalog cache lookups, by result",
		}, []string{"result"}),
		catalogSyncTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mamabot_catalog_sync_total",
			Help: "Catalog source syncs, by source and outcome",
		}, []string{"source", "outcome"}),
		catalogFoodsAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "mamabot_catalog_foods_added_total",
			Help: "Foods newly added to the catalog",
		}),
		catalogSize: f.NewGauge(prometheus.GaugeOpts{
			Name: "mamabot_catalog_foods",
			Help: "Foods in the catalog after the last sync",
		}),
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveCommand records one handled command.
func (c *Collector) ObserveCommand(name string, started time.Time, err error) {
	c.commandsTotal.WithLabelValues(name, outcome(err)).Inc()
	c.commandDuration.WithLabelValues(name).Observe(time.Since(started).Seconds())
}

func (c *Collector) RecommendationServed(slot string) {
	if slot == "" {
		slot = "any"
	}
	c.recommendationsTotal.WithLabelValues(slot).Inc()
}

// MealPlanGenerated records a plan request; empty plans count as "empty".
func (c *Collector) MealPlanGenerated(empty bool, err error) {
	o := outcome(err)
	if empty {
		o = "empty"
	}
	c.mealPlansTotal.WithLabelValues(o).Inc()
}

func (c *Collector) QuestionAnswered(intent, confidence string) {
	c.questionsTotal.WithLabelValues(intent, confidence).Inc()
}

// BackendFallback matches the assistant chain's fallback hook.
func (c *Collector) BackendFallback(backend string, _ error) {
	c.backendFallbacks.WithLabelValues(backend).Inc()
}

// CacheResult counts a catalog cache hit or miss.
func (c *Collector) CacheResult(hit bool) {
	if hit {
		c.cacheOperations.WithLabelValues("hit").Inc()
		return
	}
	c.cacheOperations.WithLabelValues("miss").Inc()
}

func (c *Collector) SourceSynced(source string, err error) {
	c.catalogSyncTotal.WithLabelValues(source, outcome(err)).Inc()
}

func (c *Collector) CatalogUpdated(added int, total int64) {
	c.catalogFoodsAdded.Add(float64(added))
	c.catalogSize.Set(float64(total))
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled. An empty addr disables it.
func (c *Collector) Serve(ctx context.Context, addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	c.logger.Info("Serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		c.logger.Error("Metrics server failed", zap.Error(err))
	}
}
