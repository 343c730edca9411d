package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bradykim7/mamabot/internal/models"
	"github.com/bradykim7/mamabot/internal/nutrition"
	"github.com/bradykim7/mamabot/internal/recommend"
	"github.com/bradykim7/mamabot/internal/storage"
	"github.com/bwmarrin/discordgo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const historyLimit = 5

// FoodCommand shows one catalog food with its safety verdict and pairings
type FoodCommand struct {
	svc *Services
}

func NewFoodCommand(svc *Services) *FoodCommand {
	return &FoodCommand{svc: svc}
}

func (c *FoodCommand) Help() string {
	return "<name> nutrition, safety and pairings for a food"
}

func (c *FoodCommand) Execute(ctx context.Context, req *Request) error {
	food, ok, err := c.svc.lookup(ctx, req)
	if !ok || err != nil {
		return err
	}
	user, err := c.svc.user(ctx, req)
	if err != nil {
		return err
	}
	catalog, err := c.svc.Catalog.ListFoods(ctx, models.FoodFilter{})
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	c.svc.record(ctx, models.NewFoodInteraction(req.UserID, models.InteractionView, food.ID))
	return req.Reply.Embed(req.ChannelID, c.foodEmbed(food, user, catalog, req))
}

func (c *FoodCommand) foodEmbed(food *models.Food, user *models.UserProfile, catalog []models.Food, req *Request) *discordgo.MessageEmbed {
	trimester := nutrition.CurrentTrimester(user, c.svc.now())
	safe, warnings := nutrition.CheckSafety(food, user.Health)

	verdict := fmt.Sprintf("✅ Suitable for trimester %d", trimester)
	color := colorSuccess
	switch {
	case !safe:
		verdict, color = "⛔ "+strings.Join(warnings, "; "), colorError
	case !food.Suitability.SafeFor(trimester):
		verdict, color = fmt.Sprintf("⚠️ Not recommended in trimester %d", trimester), colorWarning
	case len(warnings) > 0:
		verdict, color = "⚠️ "+strings.Join(warnings, "; "), colorWarning
	}

	embed := newEmbed(food.DisplayName(), food.Benefits, color, req)
	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "Verdict", Value: verdict},
		&discordgo.MessageEmbedField{
			Name:   "Score",
			Value:  fmt.Sprintf("nutrition %.2f · trimester fit %.2f", nutrition.Score(food, trimester), recommend.TrimesterScore(food, trimester)),
			Inline: true,
		},
	)
	if food.Precautions != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Precautions", Value: food.Precautions})
	}
	if food.PreparationTips != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Preparation", Value: food.PreparationTips})
	}

	if pairs := nutrition.ComplementaryFoods(food, catalog); len(pairs) > 0 {
		names := make([]string, 0, len(pairs))
		for _, p := range pairs {
			names = append(names, p.Name)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Goes well with", Value: strings.Join(names, ", ")})
	}
	return embed
}

// FeedbackCommand records like, dislike, bookmark or view against a food
type FeedbackCommand struct {
	svc  *Services
	kind models.InteractionKind
}

func NewFeedbackCommand(svc *Services, kind models.InteractionKind) *FeedbackCommand {
	return &FeedbackCommand{svc: svc, kind: kind}
}

func (c *FeedbackCommand) Help() string {
	return "<food> record that you " + string(c.kind) + " a food"
}

func (c *FeedbackCommand) Execute(ctx context.Context, req *Request) error {
	food, ok, err := c.svc.lookup(ctx, req)
	if !ok || err != nil {
		return err
	}

	if err := c.svc.Interactions.Append(ctx, models.NewFoodInteraction(req.UserID, c.kind, food.ID)); err != nil {
		return fmt.Errorf("failed to record %s: %w", c.kind, err)
	}
	return req.Reply.Text(req.ChannelID, fmt.Sprintf("Noted: %s → %s", c.kind, food.DisplayName()))
}

// HistoryCommand lists the caller's latest recommendation sets
type HistoryCommand struct {
	svc *Services
}

func NewHistoryCommand(svc *Services) *HistoryCommand {
	return &HistoryCommand{svc: svc}
}

func (c *HistoryCommand) Help() string {
	return "your recent recommendations"
}

func (c *HistoryCommand) Execute(ctx context.Context, req *Request) error {
	recs, err := c.svc.Recommender.History(ctx, req.UserID, historyLimit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return req.Reply.Text(req.ChannelID, "No recommendations yet. Try `recommend`.")
	}

	catalog, err := c.svc.Catalog.ListFoods(ctx, models.FoodFilter{})
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	embed := newEmbed("Recent recommendations", "", colorInfo, req)
	for i := range recs {
		foods := recommend.Expand(&recs[i], catalog)
		names := make([]string, 0, len(foods))
		for _, f := range foods {
			names = append(names, f.Name)
		}
		value := strings.Join(names, ", ")
		if value == "" {
			value = "(foods no longer in the catalog)"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s · trimester %d", recs[i].CreatedAt.Format("2006-01-02 15:04"), recs[i].Trimester),
			Value: truncate(value, 1024),
		})
	}

	activity, err := c.svc.Interactions.ListByUser(ctx, req.UserID, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load activity: %w", err)
	}
	if len(activity) > 0 {
		byID := make(map[primitive.ObjectID]string, len(catalog))
		for _, f := range catalog {
			byID[f.ID] = f.Name
		}
		lines := make([]string, 0, len(activity))
		for _, in := range activity {
			line := string(in.Kind)
			if in.FoodID != nil {
				if name, ok := byID[*in.FoodID]; ok {
					line += " " + name
				}
			}
			lines = append(lines, line)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Recent activity",
			Value: strings.Join(lines, "\n"),
		})
	}
	return req.Reply.Embed(req.ChannelID, embed)
}

// lookup resolves the food named by the arguments. ok is false when a reply was already sent.
func (s *Services) lookup(ctx context.Context, req *Request) (*models.Food, bool, error) {
	name := strings.Join(req.Args, " ")
	if name == "" {
		return nil, false, req.Reply.Text(req.ChannelID, "Please name a food, for example `food spinach`.")
	}

	food, err := s.Foods.FindByName(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, req.Reply.Text(req.ChannelID, fmt.Sprintf("I couldn't find %q in the catalog.", name))
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up food: %w", err)
	}
	return food, true, nil
}
