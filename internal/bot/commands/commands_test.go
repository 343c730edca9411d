package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bradykim7/mamabot/internal/assistant"
	"github.com/bradykim7/mamabot/internal/mealplan"
	"github.com/bradykim7/mamabot/internal/models"
	"github.com/bradykim7/mamabot/internal/recommend"
	"github.com/bradykim7/mamabot/internal/storage"
	"github.com/bradykim7/mamabot/pkg/logger"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type sent struct {
	embeds []*discordgo.MessageEmbed
	texts  []string
}

func (s *sent) Embed(_ string, e *discordgo.MessageEmbed) error {
	s.embeds = append(s.embeds, e)
	return nil
}

func (s *sent) Text(_ string, content string) error {
	s.texts = append(s.texts, content)
	return nil
}

type memCatalog struct{ foods []models.Food }

func (c *memCatalog) ListFoods(_ context.Context, filter models.FoodFilter) ([]models.Food, error) {
	var out []models.Food
	for i := range c.foods {
		if filter.Match(&c.foods[i]) {
			out = append(out, c.foods[i])
		}
	}
	return out, nil
}

func (c *memCatalog) FindByName(_ context.Context, name string) (*models.Food, error) {
	for i := range c.foods {
		if strings.EqualFold(c.foods[i].Name, name) || strings.EqualFold(c.foods[i].LocalName, name) {
			f := c.foods[i]
			return &f, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (c *memCatalog) Search(_ context.Context, query string, limit int) ([]models.Food, error) {
	q := strings.ToLower(query)
	var out []models.Food
	for _, f := range c.foods {
		if len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(f.Name+" "+f.LocalName+" "+f.Benefits), q) {
			out = append(out, f)
		}
	}
	return out, nil
}

type memUsers struct {
	byID  map[string]*models.UserProfile
	saves int
}

func (u *memUsers) GetOrCreate(_ context.Context, userID, username string) (*models.UserProfile, error) {
	if p, ok := u.byID[userID]; ok {
		return p, nil
	}
	p := models.NewUserProfile(userID, username)
	u.byID[userID] = p
	return p, nil
}

func (u *memUsers) Save(_ context.Context, p *models.UserProfile) error {
	u.byID[p.UserID] = p
	u.saves++
	return nil
}

type memInteractions struct {
	log []models.Interaction
	err error
}

func (m *memInteractions) Append(_ context.Context, in *models.Interaction) error {
	if m.err != nil {
		return m.err
	}
	m.log = append(m.log, *in)
	return nil
}

func (m *memInteractions) ListByUser(_ context.Context, userID string, limit int) ([]models.Interaction, error) {
	var out []models.Interaction
	for i := len(m.log) - 1; i >= 0 && len(out) < limit; i-- {
		if m.log[i].UserID == userID {
			out = append(out, m.log[i])
		}
	}
	return out, nil
}

func (m *memInteractions) ActivityCounts(_ context.Context, userID string, since time.Time) ([]models.ActivityCount, error) {
	type key struct {
		kind models.InteractionKind
		food primitive.ObjectID
	}
	var out []models.ActivityCount
	index := map[key]int{}
	for _, in := range m.log {
		if in.UserID != userID {
			continue
		}
		k := key{kind: in.Kind}
		if in.FoodID != nil {
			k.food = *in.FoodID
		}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, models.ActivityCount{Kind: in.Kind, FoodID: in.FoodID})
		}
		out[i].Total++
		if !in.Timestamp.Before(since) {
			out[i].Recent++
		}
	}
	return out, nil
}

func (m *memInteractions) RecentForFood(_ context.Context, userID string, foodID primitive.ObjectID, limit int) ([]models.Interaction, error) {
	var out []models.Interaction
	for i := len(m.log) - 1; i >= 0 && len(out) < limit; i-- {
		in := m.log[i]
		if in.UserID == userID && in.FoodID != nil && *in.FoodID == foodID {
			out = append(out, in)
		}
	}
	return out, nil
}

type memRecs struct{ recs []models.Recommendation }

func (m *memRecs) SaveRecommendation(_ context.Context, rec *models.Recommendation) error {
	m.recs = append(m.recs, *rec)
	return nil
}

func (m *memRecs) ListRecommendations(_ context.Context, userID string, limit int) ([]models.Recommendation, error) {
	var out []models.Recommendation
	for i := len(m.recs) - 1; i >= 0 && len(out) < limit; i-- {
		if m.recs[i].UserID == userID {
			out = append(out, m.recs[i])
		}
	}
	return out, nil
}

type events struct {
	slots     []string
	plans     []bool
	questions []string
}

func (e *events) RecommendationServed(slot string) { e.slots = append(e.slots, slot) }
func (e *events) MealPlanGenerated(empty bool, _ error) {
	e.plans = append(e.plans, empty)
}
func (e *events) QuestionAnswered(intent, confidence string) {
	e.questions = append(e.questions, intent+"/"+confidence)
}

type fixture struct {
	svc          *Services
	catalog      *memCatalog
	users        *memUsers
	interactions *memInteractions
	recs         *memRecs
	events       *events
	reply        *sent
}

func seedFood(name string, cat models.Category, n models.Nutrients) models.Food {
	f := models.NewFood(name, cat)
	f.Nutrients = n
	f.Benefits = name + " is good for you"
	return *f
}

func newFixture(foods ...models.Food) *fixture {
	log := zap.NewNop()
	fx := &fixture{
		catalog:      &memCatalog{foods: foods},
		users:        &memUsers{byID: map[string]*models.UserProfile{}},
		interactions: &memInteractions{},
		recs:         &memRecs{},
		events:       &events{},
		reply:        &sent{},
	}
	fx.svc = &Services{
		Catalog:            fx.catalog,
		Foods:              fx.catalog,
		Users:              fx.users,
		Interactions:       fx.interactions,
		Recommender:        recommend.New(fx.interactions, fx.recs, log),
		Planner:            mealplan.New(fx.catalog, nil, log),
		Assistant:          assistant.New(nil, log),
		Events:             fx.events,
		Log:                log,
		MaxRecommendations: 5,
		Now:                func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
	}
	return fx
}

func (fx *fixture) request(args ...string) *Request {
	return &Request{UserID: "u1", Username: "asha", ChannelID: "c1", Args: args, Reply: fx.reply}
}

func defaultFoods() []models.Food {
	papaya := seedFood("Papaya", models.CategoryFruits, models.Nutrients{"vitamin_c": 60.9, "folate": 37})
	papaya.Suitability = models.Suitable(false, false, true, false)
	papaya.LocalName = "Papita"
	return []models.Food{
		seedFood("Spinach", models.CategoryVegetables, models.Nutrients{"iron": 2.7, "folic_acid": 194}),
		seedFood("Rice", models.CategoryGrains, models.Nutrients{"calories": 130, "protein": 2.7}),
		seedFood("Milk", models.CategoryDairy, models.Nutrients{"calcium": 125, "protein": 3.4}),
		papaya,
	}
}

type observed struct {
	names []string
	errs  []error
}

func (o *observed) ObserveCommand(name string, _ time.Time, err error) {
	o.names = append(o.names, name)
	o.errs = append(o.errs, err)
}

type failingCommand struct{}

func (failingCommand) Execute(context.Context, *Request) error { return errors.New("db down") }
func (failingCommand) Help() string                            { return "fails" }

func TestRegistry_ParseAndDispatch(t *testing.T) {
	obs := &observed{}
	r := NewRegistry("!", logger.Nop(), obs)
	r.Register("ping", NewPingCommand(func() time.Duration { return 42 * time.Millisecond }))
	r.Register("broken", failingCommand{})
	assert.Len(t, r.GetCommands(), 2)

	_, _, ok := r.Parse("hello there")
	assert.False(t, ok)
	_, _, ok = r.Parse("!")
	assert.False(t, ok)

	req, name, ok := r.Parse("!PING now")
	require.True(t, ok)
	assert.Equal(t, "ping", name)
	assert.Equal(t, []string{"now"}, req.Args)

	reply := &sent{}
	req.Reply = reply
	r.Dispatch(context.Background(), name, req)
	assert.Equal(t, []string{"Pong! Latency: 42ms"}, reply.texts)

	r.Dispatch(context.Background(), "unknown", &Request{Reply: reply})
	r.Dispatch(context.Background(), "broken", &Request{Reply: reply})
	require.Len(t, reply.texts, 2)
	assert.Contains(t, reply.texts[1], "Something went wrong")

	assert.Equal(t, []string{"ping", "broken"}, obs.names)
	assert.Error(t, obs.errs[1])

	assert.Contains(t, r.HelpText(), "`!broken` fails\n`!ping` check that the bot is alive")
}

func TestParseRecommendArgs(t *testing.T) {
	tests := []struct {
		args  []string
		slot  string
		count int
		err   bool
	}{
		{nil, "", 10, false},
		{[]string{"lunch"}, "lunch", 10, false},
		{[]string{"3", "Dinner"}, "dinner", 3, false},
		{[]string{"snacks", "50"}, "snacks", 10, false},
		{[]string{"0"}, "", 0, true},
		{[]string{"brunch"}, "", 0, true},
		{[]string{"now"}, "breakfast", 10, false},
		{[]string{"NOW", "4"}, "breakfast", 4, false},
	}

	morning := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		slot, count, err := parseRecommendArgs(tt.args, 10, morning)
		if tt.err {
			assert.ErrorIs(t, err, errUsage, tt.args)
			continue
		}
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.slot, slot, tt.args)
		assert.Equal(t, tt.count, count, tt.args)
	}
}

func TestMealAt(t *testing.T) {
	at := func(hour int) time.Time { return time.Date(2026, 3, 1, hour, 30, 0, 0, time.UTC) }
	assert.Equal(t, "breakfast", mealAt(at(7)))
	assert.Equal(t, "snacks", mealAt(at(11)))
	assert.Equal(t, "lunch", mealAt(at(13)))
	assert.Equal(t, "snacks", mealAt(at(16)))
	assert.Equal(t, "dinner", mealAt(at(19)))
	assert.Equal(t, "snacks", mealAt(at(23)))
}

func TestParseMealPlanArgs(t *testing.T) {
	assert.Equal(t, mealplan.Request{Days: 7}, parseMealPlanArgs(nil))
	assert.Equal(t, mealplan.Request{Days: 3, Region: "South India"}, parseMealPlanArgs([]string{"3", "South", "India"}))
	assert.Equal(t,
		mealplan.Request{Days: 5, Region: "North India", DietType: models.DietVegan},
		parseMealPlanArgs([]string{"5", "vegan", "North", "India"}))
	assert.Equal(t, mealplan.Request{Days: 7, Region: "Kerala"}, parseMealPlanArgs([]string{"Kerala"}))
}

func TestApplyProfileSetting(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	u := models.NewUserProfile("u1", "asha")

	require.NoError(t, applyProfileSetting(u, "trimester", "2", now))
	assert.Equal(t, 2, u.Trimester)

	require.NoError(t, applyProfileSetting(u, "diet", "non veg", now))
	assert.Equal(t, models.DietNonVegetarian, u.DietaryPreference)

	require.NoError(t, applyProfileSetting(u, "allergies", "peanut, Milk", now))
	require.NoError(t, applyProfileSetting(u, "allergies", "milk", now))
	assert.Equal(t, []string{"peanut", "Milk"}, u.Health.Allergies)
	require.NoError(t, applyProfileSetting(u, "allergies", "none", now))
	assert.Empty(t, u.Health.Allergies)

	require.NoError(t, applyProfileSetting(u, "Diabetes", "yes", now))
	assert.True(t, u.Health.Diabetes)
	require.NoError(t, applyProfileSetting(u, "hypertension", "on", now))
	assert.True(t, u.Health.Hypertension)

	// due in about 10 weeks puts the pregnancy in the third trimester
	require.NoError(t, applyProfileSetting(u, "due", "2026-05-10", now))
	require.NotNil(t, u.DueDate)
	assert.Equal(t, 3, u.Trimester)

	for _, bad := range [][2]string{
		{"trimester", "4"},
		{"diet", "keto"},
		{"due", "next week"},
		{"diabetes", "maybe"},
		{"shoe_size", "7"},
		{"diet", ""},
	} {
		err := applyProfileSetting(u, bad[0], bad[1], now)
		assert.ErrorIs(t, err, errUsage, bad)
		assert.NotContains(t, userMessage(err), "usage:")
	}
}

func TestAskCommand(t *testing.T) {
	fx := newFixture(defaultFoods()...)

	require.NoError(t, NewAskCommand(fx.svc).Execute(context.Background(), fx.request("Can", "I", "eat", "papaya?")))

	require.Len(t, fx.reply.embeds, 1)
	assert.Contains(t, fx.reply.embeds[0].Description, "Papaya")
	assert.Equal(t, colorSuccess, fx.reply.embeds[0].Color)
	assert.Equal(t, []string{"safety_check/high"}, fx.events.questions)

	require.Len(t, fx.interactions.log, 1)
	logged := fx.interactions.log[0]
	assert.Equal(t, models.InteractionChatbotQuery, logged.Kind)
	assert.Equal(t, "Can I eat papaya?", logged.Details["query"])
}

func TestAskCommand_EmptyQuestion(t *testing.T) {
	fx := newFixture(defaultFoods()...)
	require.NoError(t, NewAskCommand(fx.svc).Execute(context.Background(), fx.request()))
	require.Len(t, fx.reply.texts, 1)
	assert.Contains(t, fx.reply.texts[0], "Please ask a question")
	assert.Empty(t, fx.interactions.log)
}

func TestSuggestCommand(t *testing.T) {
	fx := newFixture()
	fx.users.byID["u1"] = &models.UserProfile{UserID: "u1", Trimester: 3}

	require.NoError(t, NewSuggestCommand(fx.svc).Execute(context.Background(), fx.request()))
	require.Len(t, fx.reply.embeds, 1)
	assert.Equal(t, "Questions for trimester 3", fx.reply.embeds[0].Title)
	assert.Contains(t, fx.reply.embeds[0].Description, "Foods to ease labor naturally")
}

func TestRecommendCommand(t *testing.T) {
	fx := newFixture(defaultFoods()...)

	require.NoError(t, NewRecommendCommand(fx.svc).Execute(context.Background(), fx.request("2")))
	require.Len(t, fx.reply.embeds, 1)
	assert.Len(t, fx.reply.embeds[0].Fields, 2)
	assert.Equal(t, []string{""}, fx.events.slots)
	assert.Len(t, fx.recs.recs, 1)

	require.NoError(t, NewRecommendCommand(fx.svc).Execute(context.Background(), fx.request("breakfast")))
	embed := fx.reply.embeds[1]
	assert.Equal(t, "Breakfast ideas for trimester 1", embed.Title)
	for _, f := range embed.Fields {
		assert.NotContains(t, f.Name, "Spinach")
	}

	require.NoError(t, NewRecommendCommand(fx.svc).Execute(context.Background(), fx.request("brunch")))
	assert.Contains(t, fx.reply.texts[0], "unknown meal")

	require.NoError(t, NewRecommendCommand(fx.svc).Execute(context.Background(), fx.request("now")))
	assert.Equal(t, "Breakfast ideas for trimester 1", fx.reply.embeds[2].Title)
	assert.Equal(t, []string{"", "breakfast", "breakfast"}, fx.events.slots)
}

func TestHistoryCommand(t *testing.T) {
	fx := newFixture(defaultFoods()...)
	cmd := NewHistoryCommand(fx.svc)

	require.NoError(t, cmd.Execute(context.Background(), fx.request()))
	assert.Equal(t, []string{"No recommendations yet. Try `recommend`."}, fx.reply.texts)

	require.NoError(t, NewRecommendCommand(fx.svc).Execute(context.Background(), fx.request("2")))
	require.NoError(t, NewFeedbackCommand(fx.svc, models.InteractionLike).Execute(context.Background(), fx.request("rice")))
	require.NoError(t, cmd.Execute(context.Background(), fx.request()))

	embed := fx.reply.embeds[len(fx.reply.embeds)-1]
	assert.Equal(t, "Recent recommendations", embed.Title)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Recent activity", embed.Fields[1].Name)
	assert.Equal(t, "like Rice", embed.Fields[1].Value)
}

func TestMealPlanCommand(t *testing.T) {
	fx := newFixture(defaultFoods()...)
	cmd := NewMealPlanCommand(fx.svc)

	require.NoError(t, cmd.Execute(context.Background(), fx.request("2")))
	require.Len(t, fx.reply.embeds, 1)
	assert.Equal(t, "2-day meal plan", fx.reply.embeds[0].Title)
	assert.Len(t, fx.reply.embeds[0].Fields, 2)
	require.Len(t, fx.interactions.log, 1)
	assert.Equal(t, models.InteractionMealPlanGeneration, fx.interactions.log[0].Kind)

	require.NoError(t, cmd.Execute(context.Background(), fx.request("3", "Atlantis")))
	assert.Contains(t, fx.reply.embeds[1].Description, "No suitable foods")
	assert.Equal(t, []bool{false, true}, fx.events.plans)
}

func TestPrefsCommand(t *testing.T) {
	foods := defaultFoods()
	foods[0].Region = "North India"
	fx := newFixture(foods...)

	require.NoError(t, NewPrefsCommand(fx.svc).Execute(context.Background(), fx.request()))
	fields := fx.reply.embeds[0].Fields
	assert.Equal(t, "North India", fields[0].Value)
	assert.Equal(t, "vegetarian, non-vegetarian, vegan", fields[1].Value)
	assert.Equal(t, "1 to 30", fields[2].Value)
}

func TestProfileCommand(t *testing.T) {
	fx := newFixture()
	cmd := NewProfileCommand(fx.svc)

	require.NoError(t, cmd.Execute(context.Background(), fx.request()))
	assert.Equal(t, 0, fx.users.saves)

	require.NoError(t, cmd.Execute(context.Background(), fx.request("trimester", "2")))
	assert.Equal(t, 1, fx.users.saves)
	assert.Equal(t, 2, fx.users.byID["u1"].Trimester)
	embed := fx.reply.embeds[1]
	assert.Equal(t, "2", embed.Fields[0].Value)
	assert.Equal(t, "Focus nutrients: calcium, vitamin_d", embed.Description)

	require.NoError(t, cmd.Execute(context.Background(), fx.request("trimester", "9")))
	assert.Equal(t, []string{"trimester must be 1, 2 or 3"}, fx.reply.texts)
	assert.Equal(t, 1, fx.users.saves)
}

func TestFoodCommand(t *testing.T) {
	fx := newFixture(defaultFoods()...)
	cmd := NewFoodCommand(fx.svc)

	require.NoError(t, cmd.Execute(context.Background(), fx.request("papita")))
	embed := fx.reply.embeds[0]
	assert.Equal(t, "Papaya (Papita)", embed.Title)
	assert.Equal(t, colorWarning, embed.Color)
	assert.Equal(t, "⚠️ Not recommended in trimester 1", embed.Fields[0].Value)
	assert.Equal(t, "Goes well with", embed.Fields[len(embed.Fields)-1].Name)
	assert.Equal(t, "Spinach, Rice, Milk", embed.Fields[len(embed.Fields)-1].Value)
	require.Len(t, fx.interactions.log, 1)
	assert.Equal(t, models.InteractionView, fx.interactions.log[0].Kind)

	fx.users.byID["u1"].Health.Allergies = []string{"milk"}
	require.NoError(t, cmd.Execute(context.Background(), fx.request("Milk")))
	assert.Equal(t, colorError, fx.reply.embeds[1].Color)
	assert.Contains(t, fx.reply.embeds[1].Fields[0].Value, "Contains allergen: milk")

	require.NoError(t, cmd.Execute(context.Background(), fx.request("durian")))
	assert.Equal(t, []string{`I couldn't find "durian" in the catalog.`}, fx.reply.texts)

	require.NoError(t, cmd.Execute(context.Background(), fx.request()))
	assert.Contains(t, fx.reply.texts[1], "Please name a food")
}

func TestFeedbackCommand(t *testing.T) {
	fx := newFixture(defaultFoods()...)
	cmd := NewFeedbackCommand(fx.svc, models.InteractionDislike)

	require.NoError(t, cmd.Execute(context.Background(), fx.request("spinach")))
	require.Len(t, fx.interactions.log, 1)
	assert.Equal(t, models.InteractionDislike, fx.interactions.log[0].Kind)
	assert.Equal(t, "Noted: dislike → Spinach", fx.reply.texts[0])

	fx.interactions.err = errors.New("write failed")
	err := cmd.Execute(context.Background(), fx.request("spinach"))
	assert.ErrorContains(t, err, "failed to record dislike")
}

func TestSearchCommand(t *testing.T) {
	fx := newFixture(defaultFoods()...)
	cmd := NewSearchCommand(fx.svc)

	require.NoError(t, cmd.Execute(context.Background(), fx.request("papita")))
	require.Len(t, fx.reply.embeds, 1)
	assert.Equal(t, "Search: papita", fx.reply.embeds[0].Title)
	require.Len(t, fx.reply.embeds[0].Fields, 1)
	assert.Equal(t, "Papaya (Papita)", fx.reply.embeds[0].Fields[0].Name)

	require.NoError(t, cmd.Execute(context.Background(), fx.request("GOOD", "for")))
	assert.Len(t, fx.reply.embeds[1].Fields, 4)

	require.NoError(t, cmd.Execute(context.Background(), fx.request("durian")))
	assert.Equal(t, []string{`No foods match "durian".`}, fx.reply.texts)

	require.Len(t, fx.interactions.log, 3)
	for _, in := range fx.interactions.log {
		assert.Equal(t, models.InteractionSearch, in.Kind)
		assert.Nil(t, in.FoodID)
	}
	assert.Equal(t, "papita", fx.interactions.log[0].Details["query"])
	assert.Equal(t, 0, fx.interactions.log[2].Details["results"])

	require.NoError(t, cmd.Execute(context.Background(), fx.request()))
	assert.Contains(t, fx.reply.texts[1], "something to search for")
	assert.Len(t, fx.interactions.log, 3)
}

func TestStatsCommand(t *testing.T) {
	fx := newFixture(defaultFoods()...)
	cmd := NewStatsCommand(fx.svc)
	spinach, rice, milk := fx.catalog.foods[0].ID, fx.catalog.foods[1].ID, fx.catalog.foods[2].ID

	require.NoError(t, cmd.Execute(context.Background(), fx.request()))
	assert.Equal(t, []string{"No activity in the last 30 days."}, fx.reply.texts)

	at := func(in *models.Interaction, day time.Time) {
		in.Timestamp = day
		fx.interactions.log = append(fx.interactions.log, *in)
	}
	at(models.NewFoodInteraction("u1", models.InteractionView, spinach), time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC))
	at(models.NewFoodInteraction("u1", models.InteractionView, spinach), time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC))
	at(models.NewFoodInteraction("u1", models.InteractionView, rice), time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC))
	at(models.NewFoodInteraction("u1", models.InteractionLike, milk), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	at(models.NewEventInteraction("u1", models.InteractionSearch, nil), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))
	at(models.NewFoodInteraction("u2", models.InteractionView, rice), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))

	require.NoError(t, cmd.Execute(context.Background(), fx.request()))
	require.Len(t, fx.reply.embeds, 1)
	embed := fx.reply.embeds[0]
	assert.Equal(t, "Your activity, last 30 days", embed.Title)
	assert.Equal(t, "4 interactions", embed.Description)
	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "search: 1\nview: 3", embed.Fields[0].Value)
	assert.Equal(t, "Spinach ×2\nRice ×1", embed.Fields[1].Value)
	assert.Equal(t, "grains: 1\nvegetables: 2", embed.Fields[2].Value)
	assert.Equal(t, "Liked", embed.Fields[3].Name)
	assert.Equal(t, "Milk", embed.Fields[3].Value)

	require.NoError(t, cmd.Execute(context.Background(), fx.request("7")))
	assert.Equal(t, "2 interactions", fx.reply.embeds[1].Description)

	require.NoError(t, cmd.Execute(context.Background(), fx.request("forever")))
	assert.Equal(t, "days must be a number from 1 to 365", fx.reply.texts[1])
}
