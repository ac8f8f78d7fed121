package bot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/omarshaarawi/trophybot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCard() models.Card {
	card := models.Card{
		Title:       "Trophies of the Week - Week 3",
		Description: "Justice League Fantasy Football",
		Color:       0x0B1F35,
		Footer:      &models.CardFooter{Text: "Generated 2025-09-30 07:30 MDT"},
	}
	card.AddField("👑 High score 👑", "Gotham Knights with 120.00 points")
	card.AddField("\u200b", "**Gotham Knights** vs **Metropolis Supers**")
	return card
}

func TestRenderMarkdown(t *testing.T) {
	want := "*Trophies of the Week - Week 3*\n" +
		"Justice League Fantasy Football\n" +
		"\n*👑 High score 👑*\n" +
		"Gotham Knights with 120.00 points\n" +
		"\n*Gotham Knights* vs *Metropolis Supers*\n" +
		"\n_Generated 2025-09-30 07:30 MDT_"

	assert.Equal(t, want, RenderMarkdown(sampleCard()))
}

func TestRenderMarkdownEscapesLeagueData(t *testing.T) {
	card := models.Card{
		Title:       "Week 4 Matchup Preview",
		Description: "_No scores posted for week 4 yet_",
	}
	card.AddField("\u200b", "**Dr_Fate*s [Helm]** vs **`Sandman`**")
	card.AddField("🍀 Lucky 🍀", "Mr_Terrific was 1-2 in all-play but still got the win")

	want := "*Week 4 Matchup Preview*\n" +
		"_No scores posted for week 4 yet_\n" +
		"\n*Dr\\_Fate\\*s \\[Helm]* vs *\\`Sandman\\`*\n" +
		"\n*🍀 Lucky 🍀*\n" +
		"Mr\\_Terrific was 1-2 in all-play but still got the win"

	assert.Equal(t, want, RenderMarkdown(card))
}

func TestWebhookNotifierSend(t *testing.T) {
	var got webhookPayload
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, "Justice League Bot", time.Second)
	require.NoError(t, notifier.Send(context.Background(), sampleCard()))

	assert.Equal(t, 1, calls)
	assert.Equal(t, "Justice League Bot", got.Username)
	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "Trophies of the Week - Week 3", got.Embeds[0].Title)
	assert.Equal(t, 0x0B1F35, got.Embeds[0].Color)
	assert.Len(t, got.Embeds[0].Fields, 2)
}

func TestWebhookNotifierRejectsErrorStatus(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "invalid embed", http.StatusBadRequest)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, "", time.Second)
	err := notifier.Send(context.Background(), sampleCard())

	assert.ErrorContains(t, err, "status 400")
	assert.ErrorContains(t, err, "invalid embed")
	assert.Equal(t, 1, calls)
}

type recordingNotifier struct {
	err   error
	cards []models.Card
}

func (r *recordingNotifier) Send(_ context.Context, card models.Card) error {
	r.cards = append(r.cards, card)
	return r.err
}

func TestNotifiersAttemptEverySink(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("telegram down")}
	ok := &recordingNotifier{}

	err := Notifiers{failing, ok}.Send(context.Background(), sampleCard())

	assert.ErrorContains(t, err, "telegram down")
	assert.Len(t, failing.cards, 1)
	assert.Len(t, ok.cards, 1)
	assert.NoError(t, Notifiers{}.Send(context.Background(), sampleCard()))
}

type fakeCards struct {
	weeks       []int
	projections []string
	err         error
}

func (f *fakeCards) AwardsCard(_ context.Context, week int) (models.Card, error) {
	f.weeks = append(f.weeks, week)
	return sampleCard(), f.err
}

func (f *fakeCards) PowerRankingsCard(context.Context) (models.Card, error) {
	return models.Card{Title: "Power Rankings", Description: "**1. Metropolis Supers** - PF: 450.0 (Record 3-0-0)"}, f.err
}

func (f *fakeCards) PreviewCard(_ context.Context, week int) (models.Card, error) {
	f.weeks = append(f.weeks, week)
	return models.Card{Title: "Week 4 Matchup Preview"}, f.err
}

func (f *fakeCards) ProjectionReport(_ context.Context, team string, week int) (string, error) {
	f.projections = append(f.projections, team)
	f.weeks = append(f.weeks, week)
	return "report for " + team, f.err
}

func TestHandlerRespond(t *testing.T) {
	cards := &fakeCards{}
	h := NewHandler(cards)
	ctx := context.Background()

	assert.Contains(t, h.Respond(ctx, "help", ""), "/projections <team> [week]")
	assert.Contains(t, h.Respond(ctx, "awards", ""), "*Trophies of the Week - Week 3*")
	assert.Equal(t, "*Power Rankings*\n*1. Metropolis Supers* - PF: 450.0 (Record 3-0-0)", h.Respond(ctx, "POWER", ""))
	assert.Equal(t, "*Week 4 Matchup Preview*", h.Respond(ctx, "preview", "4"))
	assert.Equal(t, "Week must be a positive number, got 'next'", h.Respond(ctx, "preview", " next "))
	assert.Equal(t, "Unknown command. Use /help to see available commands.", h.Respond(ctx, "scores", ""))

	assert.Equal(t, []int{0, 4}, cards.weeks)
}

func TestHandlerProjections(t *testing.T) {
	cards := &fakeCards{}
	h := NewHandler(cards)
	ctx := context.Background()

	assert.Contains(t, h.Respond(ctx, "projections", ""), "Usage: /projections")
	assert.Equal(t, "report for Gotham Knights", h.Respond(ctx, "projections", "Gotham Knights 3"))
	assert.Equal(t, "report for Atlantis", h.Respond(ctx, "projections", "Atlantis"))
	assert.Equal(t, "report for Team 0", h.Respond(ctx, "projections", "Team 0"))

	assert.Equal(t, []string{"Gotham Knights", "Atlantis", "Team 0"}, cards.projections)
	assert.Equal(t, []int{3, 0, 0}, cards.weeks)
}

func TestHandlerEscapesProjectionReport(t *testing.T) {
	h := NewHandler(&fakeCards{})

	assert.Equal(t, "report for Dr\\_Fate", h.Respond(context.Background(), "projections", "Dr_Fate"))
	assert.Equal(t, "Week must be a positive number, got 'wk\\_1'", h.Respond(context.Background(), "awards", "wk_1"))
}

func TestHandlerReportsErrors(t *testing.T) {
	h := NewHandler(&fakeCards{err: errors.New("espn down")})

	assert.Equal(t, "Error fetching league data: espn down", h.Respond(context.Background(), "power", ""))
	assert.Equal(t, "Error building projection report: espn down", h.Respond(context.Background(), "projections", "gotham"))
}
