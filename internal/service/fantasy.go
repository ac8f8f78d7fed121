package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/omarshaarawi/trophybot/internal/api/fantasy"
	"github.com/omarshaarawi/trophybot/internal/awards"
	"github.com/omarshaarawi/trophybot/internal/models"
)

// LeagueAPI is what the service reads from the league.
type LeagueAPI interface {
	LoadSnapshot(ctx context.Context, pick fantasy.WeekSelector) (*models.Snapshot, error)
	GetTeams(ctx context.Context) ([]models.Team, error)
	Rosters(ctx context.Context, period int) (map[int][]models.RosterEntry, error)
}

type Settings struct {
	LeagueTitle string
	Location    *time.Location
	Awards      awards.Options
	Logger      *slog.Logger
}

type FantasyService struct {
	api      LeagueAPI
	settings Settings
	now      func() time.Time
}

func NewFantasyService(api LeagueAPI, settings Settings) *FantasyService {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Logger == nil {
		settings.Logger = slog.Default()
	}
	return &FantasyService{api: api, settings: settings, now: time.Now}
}

func weekSelector(week int, fallback fantasy.WeekSelector) fantasy.WeekSelector {
	if week > 0 {
		return fantasy.FixedWeek(week)
	}
	return fallback
}

// GetAwards loads the target week and derives its awards. A week of 0
// recaps the week that just finished.
func (s *FantasyService) GetAwards(ctx context.Context, week int) (*awards.Result, *models.Snapshot, error) {
	snapshot, err := s.api.LoadSnapshot(ctx, weekSelector(week, fantasy.RecapWeek))
	if err != nil {
		return nil, nil, fmt.Errorf("error loading league snapshot: %w", err)
	}

	s.settings.Logger.Info("Deriving awards", "week", snapshot.Week, "matchups", len(snapshot.Matchups))

	deriver := awards.NewDeriver(s.api, s.settings.Awards, s.settings.Logger)
	result, err := deriver.Derive(ctx, snapshot.Week, snapshot.ScoringPeriod, snapshot.Matchups)
	if err != nil {
		return nil, nil, fmt.Errorf("error deriving awards: %w", err)
	}
	return result, snapshot, nil
}

func (s *FantasyService) AwardsCard(ctx context.Context, week int) (models.Card, error) {
	result, snapshot, err := s.GetAwards(ctx, week)
	if err != nil {
		return models.Card{}, err
	}
	return s.formatAwards(result, snapshot.Teams), nil
}

func (s *FantasyService) PowerRankingsCard(ctx context.Context) (models.Card, error) {
	teams, err := s.api.GetTeams(ctx)
	if err != nil {
		return models.Card{}, fmt.Errorf("error fetching teams: %w", err)
	}
	return s.formatPowerRankings(rankTeams(teams)), nil
}

// PreviewCard lists the matchups of the upcoming week. A week of 0 uses the
// league's current matchup period.
func (s *FantasyService) PreviewCard(ctx context.Context, week int) (models.Card, error) {
	snapshot, err := s.api.LoadSnapshot(ctx, weekSelector(week, fantasy.PreviewWeek))
	if err != nil {
		return models.Card{}, fmt.Errorf("error loading league snapshot: %w", err)
	}
	return s.formatPreview(snapshot), nil
}
