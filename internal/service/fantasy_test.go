package service

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/omarshaarawi/trophybot/internal/api/espn"
	"github.com/omarshaarawi/trophybot/internal/api/fantasy"
	"github.com/omarshaarawi/trophybot/internal/awards"
	"github.com/omarshaarawi/trophybot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeague struct {
	metadata    models.LeagueMetadata
	teams       []models.Team
	matchups    map[int][]models.Matchup
	rosters     map[int][]models.RosterEntry
	snapshotErr error
	rosterErr   error
	rosterCalls int
}

func (f *fakeLeague) LoadSnapshot(_ context.Context, pick fantasy.WeekSelector) (*models.Snapshot, error) {
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	week := max(1, pick(f.metadata))
	snap := &models.Snapshot{
		Metadata:      f.metadata,
		Week:          week,
		ScoringPeriod: f.metadata.ScoringPeriod(week),
		Teams:         models.TeamRegistry{},
		Matchups:      f.matchups[week],
	}
	for _, t := range f.teams {
		snap.Teams[t.ID] = t
		snap.TeamOrder = append(snap.TeamOrder, t.ID)
	}
	return snap, nil
}

func (f *fakeLeague) GetTeams(context.Context) ([]models.Team, error) {
	return f.teams, nil
}

func (f *fakeLeague) Rosters(context.Context, int) (map[int][]models.RosterEntry, error) {
	f.rosterCalls++
	return f.rosters, f.rosterErr
}

func starter(name string, points, projected float64) models.RosterEntry {
	return models.RosterEntry{PlayerName: name, Slot: models.LineupSlot{ID: 4, Known: true}, Points: points, Projected: projected, HasProjection: true}
}

func benched(name string, points float64) models.RosterEntry {
	return models.RosterEntry{PlayerName: name, Slot: models.LineupSlot{ID: models.SlotBench, Known: true}, Points: points}
}

func justiceLeague() *fakeLeague {
	return &fakeLeague{
		metadata: models.LeagueMetadata{CurrentWeek: 4},
		teams: []models.Team{
			{ID: 1, Name: "Gotham Knights", Abbreviation: "GOT", PointsFor: 400, Wins: 2, Losses: 1},
			{ID: 2, Name: "Metropolis Supers", Abbreviation: "MET", PointsFor: 450, Wins: 3},
			{ID: 3, Name: "Central City Speedsters", Abbreviation: "CCS", PointsFor: 400, Wins: 1, Losses: 2},
			{ID: 4, Name: "Atlantis Tridents", Abbreviation: "ATL", PointsFor: 300, Losses: 3},
		},
		matchups: map[int][]models.Matchup{
			3: {
				{
					ID: 1,
					Home: &models.Side{TeamID: 1, Score: 120, Projected: 100, Entries: []models.RosterEntry{
						starter("Bruce Wayne", 70, 50), starter("Dick Grayson", 50, 50), benched("Jason Todd", 30),
					}},
					Away: &models.Side{TeamID: 2, Score: 100, Projected: 110, Entries: []models.RosterEntry{
						starter("Clark Kent", 60, 60), starter("Lois Lane", 40, 50), benched("Jimmy Olsen", 45),
					}},
				},
				{
					ID:   2,
					Home: &models.Side{TeamID: 3, Score: 90, Projected: 95, Entries: []models.RosterEntry{starter("Barry Allen", 90, 95)}},
					Away: &models.Side{TeamID: 4, Score: 85, Projected: 80, Entries: []models.RosterEntry{starter("Arthur Curry", 85, 80)}},
				},
			},
			4: {
				{ID: 3, Home: &models.Side{TeamID: 1}, Away: &models.Side{TeamID: 3}},
				{ID: 4, Home: &models.Side{TeamID: 2}},
			},
		},
	}
}

func newTestService(api LeagueAPI) *FantasyService {
	denver, _ := time.LoadLocation("America/Denver")
	svc := NewFantasyService(api, Settings{
		LeagueTitle: "Justice League Fantasy Football",
		Location:    denver,
		Awards:      awards.Options{ComputeOptimal: true},
	})
	svc.now = func() time.Time { return time.Date(2025, 9, 30, 13, 30, 0, 0, time.UTC) }
	return svc
}

func fieldValues(card models.Card) map[string]string {
	out := make(map[string]string, len(card.Fields))
	for _, f := range card.Fields {
		out[f.Name] = f.Value
	}
	return out
}

func TestAwardsCard(t *testing.T) {
	svc := newTestService(justiceLeague())

	card, err := svc.AwardsCard(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, "Trophies of the Week - Week 3", card.Title)
	assert.Equal(t, "Justice League Fantasy Football", card.Description)
	assert.Equal(t, 0x0B1F35, card.Color)
	require.NotNil(t, card.Footer)
	assert.Equal(t, "Generated 2025-09-30 07:30 MDT", card.Footer.Text)

	fields := fieldValues(card)
	assert.Equal(t, "Gotham Knights with 120.00 points", fields["👑 High score 👑"])
	assert.Equal(t, "Atlantis Tridents with 85.00 points", fields["💩 Low score 💩"])
	assert.Equal(t, "Gotham Knights blew out Metropolis Supers by 20.00 points", fields["😱 Blow out 😱"])
	assert.Equal(t, "Central City Speedsters barely beat Atlantis Tridents by 5.00 points", fields["😅 Close win 😅"])
	assert.Equal(t, "Central City Speedsters was 1-2 in all-play but still got the win", fields["🍀 Lucky 🍀"])
	assert.Equal(t, "Metropolis Supers was 2-1 in all-play but still took the L", fields["😡 Unlucky 😡"])
	assert.Equal(t, "Gotham Knights was 20.00 points over projection", fields["📈 Overachiever 📈"])
	assert.Equal(t, "Metropolis Supers was 10.00 points under projection", fields["📉 Underachiever 📉"])
	assert.Equal(t, "Gotham Knights scored 100.00% of optimal", fields["🤖 Best Manager 🤖"])
	assert.Equal(t, "Metropolis Supers left 5.00 points on the bench", fields["🤡 Worst Manager 🤡"])

	assert.Equal(t, "👑 High score 👑", card.Fields[0].Name)
	assert.Equal(t, "🤡 Worst Manager 🤡", card.Fields[len(card.Fields)-1].Name)
}

func TestAwardsCardNoDataYet(t *testing.T) {
	league := justiceLeague()
	svc := newTestService(league)

	card, err := svc.AwardsCard(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, "Trophies of the Week - Week 4", card.Title)
	assert.Contains(t, card.Description, "No scores posted for week 4")
	assert.Empty(t, card.Fields)
	assert.Zero(t, league.rosterCalls)
}

func TestAwardsCardFetchFailure(t *testing.T) {
	league := justiceLeague()
	league.snapshotErr = espn.ErrFetchFailure
	svc := newTestService(league)

	_, err := svc.AwardsCard(context.Background(), 0)
	assert.ErrorIs(t, err, espn.ErrFetchFailure)
}

func TestAwardsCardFallbackFetchFailure(t *testing.T) {
	league := justiceLeague()
	league.matchups[3][0].Home.Projected = 0
	league.matchups[3][0].Home.Entries = nil
	league.rosterErr = errors.New("espn down")
	svc := newTestService(league)

	_, err := svc.AwardsCard(context.Background(), 0)
	assert.ErrorContains(t, err, "espn down")
	assert.Equal(t, 1, league.rosterCalls)
}

func TestPowerRankingsCard(t *testing.T) {
	svc := newTestService(justiceLeague())

	card, err := svc.PowerRankingsCard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Power Rankings", card.Title)
	assert.Equal(t, 0xFFD166, card.Color)
	assert.Equal(t, "**1. Metropolis Supers** - PF: 450.0 (Record 3-0-0)\n"+
		"**2. Gotham Knights** - PF: 400.0 (Record 2-1-0)\n"+
		"**3. Central City Speedsters** - PF: 400.0 (Record 1-2-0)\n"+
		"**4. Atlantis Tridents** - PF: 300.0 (Record 0-3-0)", card.Description)
}

func TestPreviewCard(t *testing.T) {
	svc := newTestService(justiceLeague())

	card, err := svc.PreviewCard(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, "Week 4 Matchup Preview", card.Title)
	assert.Equal(t, 0x1F8B4C, card.Color)
	require.Len(t, card.Fields, 2)
	assert.Equal(t, "\u200b", card.Fields[0].Name)
	assert.Equal(t, "**Gotham Knights** vs **Central City Speedsters**", card.Fields[0].Value)
	assert.Equal(t, "**Metropolis Supers** has a bye", card.Fields[1].Value)
}

func TestPreviewCardEmpty(t *testing.T) {
	svc := newTestService(justiceLeague())

	card, err := svc.PreviewCard(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, "Week 9 Matchup Preview", card.Title)
	assert.Empty(t, card.Fields)
	assert.Equal(t, "_No scheduled matchups found for this week yet_", card.Description)
}
