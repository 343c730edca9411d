package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/bradykim7/mamabot/internal/models"
	"go.uber.org/zap"
)

// Backend understands a question: what is asked and which catalog foods it is about.
type Backend interface {
	Name() string
	Classify(ctx context.Context, text string) (Intent, error)
	Extract(ctx context.Context, text string, catalog []models.Food) ([]models.Food, error)
}

// RuleBackend is the keyword classifier and name-matching extractor. It never fails.
type RuleBackend struct{}

func (RuleBackend) Name() string { return "rules" }

func (RuleBackend) Classify(_ context.Context, text string) (Intent, error) {
	return ClassifyIntent(text), nil
}

func (RuleBackend) Extract(_ context.Context, text string, catalog []models.Food) ([]models.Food, error) {
	return ExtractFoods(text, catalog), nil
}

// ErrNoBackend is returned by an empty chain.
var ErrNoBackend = errors.New("no backend available")

// FallbackFunc observes a backend that failed and was skipped.
type FallbackFunc func(backend string, err error)

// Chain tries backends in order and moves on when one fails.
type Chain struct {
	backends   []Backend
	log        *zap.Logger
	onFallback FallbackFunc
}

// NewChain creates a chain. Put RuleBackend last so the chain cannot fail.
func NewChain(log *zap.Logger, backends ...Backend) *Chain {
	return &Chain{backends: backends, log: log.Named("nlu-chain")}
}

// OnFallback registers an observer called for every skipped backend.
func (c *Chain) OnFallback(fn FallbackFunc) *Chain {
	c.onFallback = fn
	return c
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Classify(ctx context.Context, text string) (Intent, error) {
	lastErr := ErrNoBackend
	for _, b := range c.backends {
		intent, err := b.Classify(ctx, text)
		if err == nil {
			return intent, nil
		}
		c.fallback(b, "classify", err)
		lastErr = err
	}
	return "", fmt.Errorf("classify: %w", lastErr)
}

func (c *Chain) Extract(ctx context.Context, text string, catalog []models.Food) ([]models.Food, error) {
	lastErr := ErrNoBackend
	for _, b := range c.backends {
		foods, err := b.Extract(ctx, text, catalog)
		if err == nil {
			return foods, nil
		}
		c.fallback(b, "extract", err)
		lastErr = err
	}
	return nil, fmt.Errorf("extract: %w", lastErr)
}

func (c *Chain) fallback(b Backend, op string, err error) {
	c.log.Debug("Backend failed, falling back",
		zap.String("backend", b.Name()),
		zap.String("op", op),
		zap.Error(err))
	if c.onFallback != nil {
		c.onFallback(b.Name(), err)
	}
}
