package commands

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bradykim7/mamabot/internal/models"
	"github.com/bwmarrin/discordgo"
)

const (
	searchLimit     = 10
	maxQueryLength  = 100
	defaultStatDays = 30
	maxStatDays     = 365
	statsListLimit  = 5
)

// SearchCommand finds foods by name, local name or benefits
type SearchCommand struct {
	svc *Services
}

func NewSearchCommand(svc *Services) *SearchCommand {
	return &SearchCommand{svc: svc}
}

func (c *SearchCommand) Help() string {
	return "<text> search foods by name or benefits"
}

func (c *SearchCommand) Execute(ctx context.Context, req *Request) error {
	query := truncate(strings.TrimSpace(strings.Join(req.Args, " ")), maxQueryLength)
	if query == "" {
		return req.Reply.Text(req.ChannelID, "Please give me something to search for, for example `search iron`.")
	}

	foods, err := c.svc.Foods.Search(ctx, query, searchLimit)
	if err != nil {
		return fmt.Errorf("failed to search foods: %w", err)
	}
	c.svc.record(ctx, models.NewEventInteraction(req.UserID, models.InteractionSearch, map[string]any{
		"query":   query,
		"results": len(foods),
	}))

	if len(foods) == 0 {
		return req.Reply.Text(req.ChannelID, fmt.Sprintf("No foods match %q.", query))
	}

	embed := newEmbed(fmt.Sprintf("Search: %s", query), "Use `food <name>` for details.", colorInfo, req)
	for _, f := range foods {
		value := string(f.Category)
		if f.Benefits != "" {
			value += " · " + truncate(f.Benefits, 100)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: f.DisplayName(), Value: value})
	}
	return req.Reply.Embed(req.ChannelID, embed)
}

// StatsCommand summarises the caller's activity over a number of days
type StatsCommand struct {
	svc *Services
}

func NewStatsCommand(svc *Services) *StatsCommand {
	return &StatsCommand{svc: svc}
}

func (c *StatsCommand) Help() string {
	return "[days] your activity over the last days (default 30)"
}

func (c *StatsCommand) Execute(ctx context.Context, req *Request) error {
	days, err := parseStatsDays(req.Args)
	if err != nil {
		return req.Reply.Text(req.ChannelID, userMessage(err))
	}

	since := c.svc.now().Add(-time.Duration(days) * 24 * time.Hour)
	counts, err := c.svc.Interactions.ActivityCounts(ctx, req.UserID, since)
	if err != nil {
		return fmt.Errorf("failed to load activity: %w", err)
	}
	catalog, err := c.svc.Catalog.ListFoods(ctx, models.FoodFilter{})
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	stats := models.SummarizeActivity(counts, catalog, days)
	if stats.IsEmpty() {
		return req.Reply.Text(req.ChannelID, fmt.Sprintf("No activity in the last %d days.", days))
	}
	return req.Reply.Embed(req.ChannelID, statsEmbed(&stats, req))
}

func parseStatsDays(args []string) (int, error) {
	if len(args) == 0 {
		return defaultStatDays, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > maxStatDays {
		return 0, usagef("days must be a number from 1 to %d", maxStatDays)
	}
	return n, nil
}

func statsEmbed(stats *models.ActivityStats, req *Request) *discordgo.MessageEmbed {
	embed := newEmbed(fmt.Sprintf("Your activity, last %d days", stats.Days),
		fmt.Sprintf("%d interactions", stats.Total), colorInfo, req)

	if len(stats.ByKind) > 0 {
		kinds := make([]string, 0, len(stats.ByKind))
		for k := range stats.ByKind {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		lines := make([]string, 0, len(kinds))
		for _, k := range kinds {
			lines = append(lines, fmt.Sprintf("%s: %d", strings.ReplaceAll(k, "_", " "), stats.ByKind[models.InteractionKind(k)]))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "By kind", Value: strings.Join(lines, "\n"), Inline: true})
	}

	if len(stats.MostViewed) > 0 {
		lines := make([]string, 0, statsListLimit)
		for i, fc := range stats.MostViewed {
			if i == statsListLimit {
				break
			}
			lines = append(lines, fmt.Sprintf("%s ×%d", fc.Food.Name, fc.Count))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Most viewed", Value: strings.Join(lines, "\n"), Inline: true})
	}

	if len(stats.Categories) > 0 {
		cats := make([]string, 0, len(stats.Categories))
		for c := range stats.Categories {
			cats = append(cats, string(c))
		}
		sort.Strings(cats)
		lines := make([]string, 0, len(cats))
		for _, c := range cats {
			lines = append(lines, fmt.Sprintf("%s: %d", strings.ReplaceAll(c, "_", " "), stats.Categories[models.Category(c)]))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Categories", Value: strings.Join(lines, "\n"), Inline: true})
	}

	for _, list := range []struct {
		name  string
		foods []models.Food
	}{
		{"Liked", stats.Liked},
		{"Bookmarked", stats.Bookmarked},
	} {
		if len(list.foods) == 0 {
			continue
		}
		names := make([]string, 0, len(list.foods))
		for _, f := range list.foods {
			names = append(names, f.Name)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: list.name, Value: truncate(strings.Join(names, ", "), 1024)})
	}
	return embed
}
