package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/omarshaarawi/trophybot/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) GetLeagueMetadata(ctx context.Context) (models.LeagueMetadata, error) {
	var espnResponse models.LeagueResponse
	params := map[string]string{
		"view": "mSettings",
	}

	if err := a.client.Get(ctx, params, nil, &espnResponse); err != nil {
		return models.LeagueMetadata{}, fmt.Errorf("fetching league metadata: %w", err)
	}

	return models.LeagueMetadata{
		LeagueID:             espnResponse.ID,
		Name:                 espnResponse.Settings.Name,
		CurrentWeek:          espnResponse.Status.CurrentMatchupPeriod,
		CurrentScoringPeriod: espnResponse.ScoringPeriodID,
		SeasonID:             espnResponse.SeasonID,
		FirstWeek:            espnResponse.Status.FirstScoringPeriod,
		LastWeek:             espnResponse.Status.FinalScoringPeriod,
		IsActive:             espnResponse.Status.IsActive,
		MatchupPeriods:       matchupPeriods(espnResponse.Settings.ScheduleSettings.MatchupPeriods),
	}, nil
}

func matchupPeriods(raw map[string][]int) map[int][]int {
	periods := make(map[int][]int, len(raw))
	for key, scoring := range raw {
		week, err := strconv.Atoi(key)
		if err != nil {
			slog.Warn("Ignoring malformed matchup period", "key", key)
			continue
		}
		periods[week] = scoring
	}
	return periods
}

// GetTeams returns the normalized teams in the order ESPN lists them.
func (a *API) GetTeams(ctx context.Context) ([]models.Team, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view": "mTeam",
	}

	if err := a.client.Get(ctx, params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}

	teams := make([]models.Team, len(leagueResponse.Teams))
	for i, team := range leagueResponse.Teams {
		teams[i] = normalizeTeam(team)
	}
	return teams, nil
}

// GetMatchups returns the schedule entries for one matchup period, with
// rosters and player stats for scoringPeriod.
func (a *API) GetMatchups(ctx context.Context, week, scoringPeriod int) ([]models.Matchup, error) {
	var scheduleResponse models.ScheduleResponse
	params := map[string]string{
		"view":            "mMatchup,mMatchupScore",
		"scoringPeriodId": strconv.Itoa(scoringPeriod),
	}

	headers, err := matchupFilter(week)
	if err != nil {
		return nil, err
	}

	if err := a.client.Get(ctx, params, headers, &scheduleResponse); err != nil {
		return nil, fmt.Errorf("fetching matchups: %w", err)
	}

	var matchups []models.Matchup
	for _, match := range scheduleResponse.Schedule {
		// The filter header is advisory; some hosts ignore it.
		if match.MatchupPeriodID != week {
			continue
		}
		matchups = append(matchups, normalizeMatchup(match, scoringPeriod))
	}
	return matchups, nil
}

func matchupFilter(week int) (map[string]string, error) {
	filters := map[string]interface{}{
		"schedule": map[string]interface{}{
			"filterMatchupPeriodIds": map[string]interface{}{
				"value": []int{week},
			},
		},
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("error marshalling filters: %w", err)
	}

	return map[string]string{
		"x-fantasy-filter": string(filtersJSON),
	}, nil
}

// GetRosters returns every team's roster for a scoring period, keyed by
// team id.
func (a *API) GetRosters(ctx context.Context, period int) (map[int][]models.RosterEntry, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view":            "mRoster",
		"scoringPeriodId": strconv.Itoa(period),
	}

	if err := a.client.Get(ctx, params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching league rosters: %w", err)
	}

	rosters := make(map[int][]models.RosterEntry, len(leagueResponse.Teams))
	for _, team := range leagueResponse.Teams {
		rosters[team.ID] = normalizeEntries(team.Roster.Entries, period)
	}
	return rosters, nil
}
