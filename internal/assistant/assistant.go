package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/bradykim7/mamabot/internal/models"
	"go.uber.org/zap"
)

// ErrEmptyQuestion is returned for blank questions.
var ErrEmptyQuestion = errors.New("question is empty")

const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// Answer is the reply to one question.
type Answer struct {
	Answer         string   `json:"answer"`
	Intent         Intent   `json:"intent"`
	FoodsMentioned []string `json:"foods_mentioned"`
	Trimester      int      `json:"trimester"`
	Confidence     string   `json:"confidence"`
}

// Assistant answers questions using a Backend for understanding.
type Assistant struct {
	backend Backend
	log     *zap.Logger
}

// New creates an assistant. A nil backend uses the rules only.
func New(backend Backend, log *zap.Logger) *Assistant {
	if backend == nil {
		backend = RuleBackend{}
	}
	return &Assistant{backend: backend, log: log.Named("assistant")}
}

// Answer classifies the question, finds the foods it mentions in the catalog and composes
// a reply for the trimester. Backend failures degrade to the rule-based result.
func (a *Assistant) Answer(ctx context.Context, text string, catalog []models.Food, trimester int) (Answer, error) {
	if strings.TrimSpace(text) == "" {
		return Answer{}, ErrEmptyQuestion
	}

	intent, err := a.backend.Classify(ctx, text)
	if err != nil {
		a.log.Debug("Classification failed, using rules", zap.Error(err))
		intent = ClassifyIntent(text)
	}
	foods, err := a.backend.Extract(ctx, text, catalog)
	if err != nil {
		a.log.Debug("Extraction failed, using rules", zap.Error(err))
		foods = ExtractFoods(text, catalog)
	}

	mentioned := make([]string, 0, len(foods))
	for _, f := range foods {
		mentioned = append(mentioned, f.Name)
	}
	confidence := ConfidenceMedium
	if len(foods) > 0 {
		confidence = ConfidenceHigh
	}

	return Answer{
		Answer:         Compose(intent, foods, trimester),
		Intent:         intent,
		FoodsMentioned: mentioned,
		Trimester:      trimester,
		Confidence:     confidence,
	}, nil
}

var suggestedQuestions = map[int][]string{
	1: {
		"Can I eat papaya during first trimester?",
		"What are the benefits of spinach?",
		"Is milk safe during pregnancy?",
		"How much folic acid do I need?",
		"Can I eat eggs during pregnancy?",
	},
	2: {
		"What foods are good for second trimester?",
		"Can I eat dates now?",
		"Benefits of almonds during pregnancy",
		"How to prepare lentils?",
		"Is yogurt good for pregnancy?",
	},
	3: {
		"Foods to ease labor naturally",
		"Can I eat papaya in third trimester?",
		"How much ghee should I consume?",
		"Benefits of dates for labor",
		"What foods help with constipation?",
	},
}

// SuggestedQuestions returns example questions for a trimester; unknown trimesters get the first.
func SuggestedQuestions(trimester int) []string {
	if q, ok := suggestedQuestions[trimester]; ok {
		return q
	}
	return suggestedQuestions[1]
}
