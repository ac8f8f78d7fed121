package fantasy

import (
	"context"
	"fmt"
	"time"

	"github.com/omarshaarawi/trophybot/internal/models"
	"golang.org/x/sync/errgroup"
)

// Source is the read-only ESPN surface the snapshot loader needs.
type Source interface {
	GetLeagueMetadata(ctx context.Context) (models.LeagueMetadata, error)
	GetTeams(ctx context.Context) ([]models.Team, error)
	GetMatchups(ctx context.Context, week, scoringPeriod int) ([]models.Matchup, error)
	GetRosters(ctx context.Context, period int) (map[int][]models.RosterEntry, error)
}

type API struct {
	source Source
	now    func() time.Time
}

func NewAPI(source Source) *API {
	return &API{source: source, now: time.Now}
}

// WeekSelector picks the target week from league metadata.
type WeekSelector func(models.LeagueMetadata) int

var (
	RecapWeek   WeekSelector = models.LeagueMetadata.RecapWeek
	PreviewWeek WeekSelector = models.LeagueMetadata.PreviewWeek
)

// FixedWeek ignores metadata and always returns week.
func FixedWeek(week int) WeekSelector {
	return func(models.LeagueMetadata) int { return week }
}

// LoadSnapshot fetches settings and teams concurrently, then the matchups
// of the week chosen by pick with stats for that week's scoring period.
func (a *API) LoadSnapshot(ctx context.Context, pick WeekSelector) (*models.Snapshot, error) {
	var (
		metadata models.LeagueMetadata
		teams    []models.Team
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		metadata, err = a.source.GetLeagueMetadata(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = a.source.GetTeams(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	week := max(1, pick(metadata))
	scoringPeriod := metadata.ScoringPeriod(week)
	matchups, err := a.source.GetMatchups(ctx, week, scoringPeriod)
	if err != nil {
		return nil, err
	}

	snapshot := &models.Snapshot{
		Metadata:  metadata,
		Week:          week,
		ScoringPeriod: scoringPeriod,
		Teams:         make(models.TeamRegistry, len(teams)),
		TeamOrder:     make([]int, 0, len(teams)),
		Matchups:      matchups,
		FetchedAt:     a.now(),
	}
	for _, t := range teams {
		snapshot.Teams[t.ID] = t
		snapshot.TeamOrder = append(snapshot.TeamOrder, t.ID)
	}
	return snapshot, nil
}

func (a *API) GetTeams(ctx context.Context) ([]models.Team, error) {
	return a.source.GetTeams(ctx)
}

// TeamRoster returns one team's roster for a scoring period.
func (a *API) TeamRoster(ctx context.Context, period, teamID int) ([]models.RosterEntry, bool, error) {
	rosters, err := a.source.GetRosters(ctx, period)
	if err != nil {
		return nil, false, fmt.Errorf("loading rosters for period %d: %w", period, err)
	}
	entries, ok := rosters[teamID]
	return entries, ok, nil
}

func (a *API) Rosters(ctx context.Context, period int) (map[int][]models.RosterEntry, error) {
	return a.source.GetRosters(ctx, period)
}
