package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bradykim7/mamabot/internal/models"
	"github.com/bradykim7/mamabot/internal/nutrition"
	"github.com/bradykim7/mamabot/internal/recommend"
	"github.com/bwmarrin/discordgo"
)

// RecommendCommand shows ranked foods for the caller, optionally for one meal
type RecommendCommand struct {
	svc *Services
}

func NewRecommendCommand(svc *Services) *RecommendCommand {
	return &RecommendCommand{svc: svc}
}

func (c *RecommendCommand) Help() string {
	return "[breakfast|lunch|dinner|snacks|now] [count] foods picked for your trimester"
}

func (c *RecommendCommand) Execute(ctx context.Context, req *Request) error {
	maxItems := c.svc.MaxRecommendations
	if maxItems <= 0 {
		maxItems = recommend.DefaultMaxItems
	}
	slot, count, err := parseRecommendArgs(req.Args, maxItems, c.svc.now())
	if errors.Is(err, errUsage) {
		return req.Reply.Text(req.ChannelID, userMessage(err))
	}

	user, err := c.svc.user(ctx, req)
	if err != nil {
		return err
	}

	foods, err := c.svc.Catalog.ListFoods(ctx, models.FoodFilter{})
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	var picks []recommend.ScoredCandidate
	if slot != "" {
		picks, _, err = c.svc.Recommender.RankForSlot(ctx, user, foods, slot, count)
	} else {
		picks, _, err = c.svc.Recommender.Rank(ctx, user, foods, count)
	}
	if err != nil {
		return err
	}
	if c.svc.Events != nil {
		c.svc.Events.RecommendationServed(slot)
	}

	trimester := nutrition.CurrentTrimester(user, c.svc.now())
	return req.Reply.Embed(req.ChannelID, recommendationEmbed(picks, slot, trimester, req))
}

func recommendationEmbed(picks []recommend.ScoredCandidate, slot string, trimester int, req *Request) *discordgo.MessageEmbed {
	title := fmt.Sprintf("Recommended for trimester %d", trimester)
	if slot != "" {
		title = fmt.Sprintf("%s ideas for trimester %d", strings.ToUpper(slot[:1])+slot[1:], trimester)
	}
	if len(picks) == 0 {
		return newEmbed(title, "No suitable foods found for your profile. Try `profile` to check your settings.", colorWarning, req)
	}

	embed := newEmbed(title, "Use `like <food>` or `dislike <food>` to tune these picks.", colorSuccess, req)
	for _, p := range picks {
		value := fmt.Sprintf("%s · score %.2f", p.Food.Category, p.CombinedScore)
		if p.Food.Benefits != "" {
			value += "\n" + truncate(p.Food.Benefits, 150)
		}
		for _, w := range p.Warnings {
			value += "\n⚠️ " + w
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  p.Food.DisplayName(),
			Value: value,
		})
	}
	return embed
}
