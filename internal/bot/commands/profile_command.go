package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bradykim7/mamabot/internal/models"
	"github.com/bradykim7/mamabot/internal/nutrition"
	"github.com/bwmarrin/discordgo"
)

// ProfileCommand shows or edits the caller's pregnancy profile
type ProfileCommand struct {
	svc *Services
}

func NewProfileCommand(svc *Services) *ProfileCommand {
	return &ProfileCommand{svc: svc}
}

func (c *ProfileCommand) Help() string {
	return "[trimester|diet|due|allergies|diabetes|hypertension <value>] show or update your profile"
}

func (c *ProfileCommand) Execute(ctx context.Context, req *Request) error {
	user, err := c.svc.user(ctx, req)
	if err != nil {
		return err
	}

	if len(req.Args) > 0 {
		field := req.Args[0]
		value := strings.Join(req.Args[1:], " ")
		err := applyProfileSetting(user, field, value, c.svc.now())
		if errors.Is(err, errUsage) {
			return req.Reply.Text(req.ChannelID, userMessage(err))
		}
		if err != nil {
			return err
		}
		if err := c.svc.Users.Save(ctx, user); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
	}

	return req.Reply.Embed(req.ChannelID, c.profileEmbed(user, req))
}

func (c *ProfileCommand) profileEmbed(u *models.UserProfile, req *Request) *discordgo.MessageEmbed {
	now := c.svc.now()
	trimester := nutrition.CurrentTrimester(u, now)

	due := "not set"
	if u.DueDate != nil {
		due = fmt.Sprintf("%s (week %.0f)", u.DueDate.Format("2006-01-02"), nutrition.WeeksPregnant(*u.DueDate, now))
	}
	allergies := "none"
	if len(u.Health.Allergies) > 0 {
		allergies = strings.Join(u.Health.Allergies, ", ")
	}

	embed := newEmbed("Your profile", "Focus nutrients: "+strings.Join(nutrition.CriticalNutrients(trimester), ", "), colorInfo, req)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Trimester", Value: fmt.Sprintf("%d", trimester), Inline: true},
		{Name: "Due date", Value: due, Inline: true},
		{Name: "Diet", Value: string(u.DietaryPreference), Inline: true},
		{Name: "Allergies", Value: allergies, Inline: true},
		{Name: "Diabetes", Value: yesNo(u.Health.Diabetes), Inline: true},
		{Name: "Hypertension", Value: yesNo(u.Health.Hypertension), Inline: true},
	}
	return embed
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
