package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bradykim7/mamabot/internal/assistant"
	"github.com/bradykim7/mamabot/internal/models"
	"github.com/bradykim7/mamabot/internal/nutrition"
	"go.uber.org/zap"
)

// AskCommand answers free-text nutrition questions
type AskCommand struct {
	svc *Services
}

func NewAskCommand(svc *Services) *AskCommand {
	return &AskCommand{svc: svc}
}

func (c *AskCommand) Help() string {
	return "<question> ask about a food, e.g. `can I eat papaya?`"
}

func (c *AskCommand) Execute(ctx context.Context, req *Request) error {
	question := strings.Join(req.Args, " ")

	user, err := c.svc.user(ctx, req)
	if err != nil {
		return err
	}
	trimester := nutrition.CurrentTrimester(user, c.svc.now())

	catalog, err := c.svc.Catalog.ListFoods(ctx, models.FoodFilter{})
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	answer, err := c.svc.Assistant.Answer(ctx, question, catalog, trimester)
	if errors.Is(err, assistant.ErrEmptyQuestion) {
		return req.Reply.Text(req.ChannelID, "Please ask a question, for example `ask is milk safe during pregnancy?`")
	}
	if err != nil {
		return fmt.Errorf("failed to answer question: %w", err)
	}

	c.svc.record(ctx, models.NewEventInteraction(req.UserID, models.InteractionChatbotQuery, map[string]any{
		"query":           question,
		"intent":          string(answer.Intent),
		"foods_mentioned": answer.FoodsMentioned,
		"confidence":      answer.Confidence,
	}))
	if c.svc.Events != nil {
		c.svc.Events.QuestionAnswered(string(answer.Intent), answer.Confidence)
	}
	c.svc.Log.Debug("Question answered",
		zap.String("intent", string(answer.Intent)),
		zap.Strings("foods", answer.FoodsMentioned))

	color := colorInfo
	if answer.Confidence == assistant.ConfidenceHigh {
		color = colorSuccess
	}
	embed := newEmbed("MamaBot", answer.Answer, color, req)
	return req.Reply.Embed(req.ChannelID, embed)
}

// SuggestCommand shows example questions for the caller's trimester
type SuggestCommand struct {
	svc *Services
}

func NewSuggestCommand(svc *Services) *SuggestCommand {
	return &SuggestCommand{svc: svc}
}

func (c *SuggestCommand) Help() string {
	return "example questions for your trimester"
}

func (c *SuggestCommand) Execute(ctx context.Context, req *Request) error {
	user, err := c.svc.user(ctx, req)
	if err != nil {
		return err
	}
	trimester := nutrition.CurrentTrimester(user, c.svc.now())

	var b strings.Builder
	for _, q := range assistant.SuggestedQuestions(trimester) {
		b.WriteString("• " + q + "\n")
	}
	title := fmt.Sprintf("Questions for trimester %d", trimester)
	return req.Reply.Embed(req.ChannelID, newEmbed(title, b.String(), colorInfo, req))
}
