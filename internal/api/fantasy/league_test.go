package fantasy

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/omarshaarawi/trophybot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu          sync.Mutex
	metadata    models.LeagueMetadata
	teams       []models.Team
	matchups    map[int][]models.Matchup
	rosters     map[int][]models.RosterEntry
	teamsErr    error
	weeksLoaded []int
	periods     []int
}

func (f *fakeSource) GetLeagueMetadata(context.Context) (models.LeagueMetadata, error) {
	return f.metadata, nil
}

func (f *fakeSource) GetTeams(context.Context) ([]models.Team, error) {
	return f.teams, f.teamsErr
}

func (f *fakeSource) GetMatchups(_ context.Context, week, scoringPeriod int) ([]models.Matchup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.weeksLoaded = append(f.weeksLoaded, week)
	f.periods = append(f.periods, scoringPeriod)
	return f.matchups[week], nil
}

func (f *fakeSource) GetRosters(context.Context, int) (map[int][]models.RosterEntry, error) {
	return f.rosters, nil
}

func TestLoadSnapshotRecapWeek(t *testing.T) {
	src := &fakeSource{
		metadata: models.LeagueMetadata{CurrentWeek: 6},
		teams:    []models.Team{{ID: 3, Name: "C"}, {ID: 1, Name: "A"}},
		matchups: map[int][]models.Matchup{5: {{ID: 11, MatchupPeriodID: 5}}},
	}
	api := NewAPI(src)
	fixed := time.Date(2025, 10, 14, 7, 30, 0, 0, time.UTC)
	api.now = func() time.Time { return fixed }

	snap, err := api.LoadSnapshot(context.Background(), RecapWeek)
	require.NoError(t, err)

	assert.Equal(t, 5, snap.Week)
	assert.Equal(t, []int{5}, src.weeksLoaded)
	assert.Equal(t, []int{3, 1}, snap.TeamOrder)
	assert.Equal(t, "A", snap.Teams.Name(1))
	assert.Equal(t, "Team 9", snap.Teams.Name(9))
	assert.Len(t, snap.Matchups, 1)
	assert.Equal(t, fixed, snap.FetchedAt)
}

func TestLoadSnapshotMultiPeriodRound(t *testing.T) {
	src := &fakeSource{
		metadata: models.LeagueMetadata{CurrentWeek: 16, MatchupPeriods: map[int][]int{14: {14}, 15: {15, 16}, 16: {17, 18}}},
		matchups: map[int][]models.Matchup{15: {{ID: 40, MatchupPeriodID: 15}}},
	}

	snap, err := NewAPI(src).LoadSnapshot(context.Background(), RecapWeek)
	require.NoError(t, err)

	assert.Equal(t, 15, snap.Week)
	assert.Equal(t, 16, snap.ScoringPeriod)
	assert.Equal(t, []int{16}, src.periods)

	snap, err = NewAPI(src).LoadSnapshot(context.Background(), PreviewWeek)
	require.NoError(t, err)
	assert.Equal(t, 18, snap.ScoringPeriod)
	assert.Equal(t, []int{16, 18}, src.periods)
}

func TestLoadSnapshotWeekFloor(t *testing.T) {
	src := &fakeSource{metadata: models.LeagueMetadata{CurrentWeek: 1}}
	snap, err := NewAPI(src).LoadSnapshot(context.Background(), RecapWeek)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Week)

	snap, err = NewAPI(src).LoadSnapshot(context.Background(), FixedWeek(0))
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Week)
}

func TestLoadSnapshotPropagatesFailure(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{metadata: models.LeagueMetadata{CurrentWeek: 4}, teamsErr: boom}

	_, err := NewAPI(src).LoadSnapshot(context.Background(), PreviewWeek)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, src.weeksLoaded)
}

func TestTeamRoster(t *testing.T) {
	src := &fakeSource{rosters: map[int][]models.RosterEntry{2: {{PlayerID: 5}}}}
	api := NewAPI(src)

	entries, ok, err := api.TeamRoster(context.Background(), 3, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, entries, 1)

	_, ok, err = api.TeamRoster(context.Background(), 3, 99)
	require.NoError(t, err)
	assert.False(t, ok)
}
